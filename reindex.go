package seedpress

import (
	"context"
	"fmt"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
)

const reindexJobName = "reindex-content"

// startReindexer re-runs Index every ReindexInterval so the preview server
// picks up edits. A failed run keeps the previous index. The returned
// scheduler must be shut down by the caller.
func (a *App) startReindexer(ctx context.Context) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler(
		gocron.WithGlobalJobOptions(
			gocron.WithEventListeners(
				gocron.AfterJobRunsWithPanic(func(jobID uuid.UUID, jobName string, recoverData any) {
					a.Logger.Error().
						Str("job_id", jobID.String()).
						Str("job_name", jobName).
						Interface("panic", recoverData).
						Msg("reindex job panicked")
				}),
			),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("seedpress: init scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(a.Config.ReindexInterval),
		gocron.NewTask(func() {
			if _, err := a.Index(ctx); err != nil {
				a.Logger.Warn().Err(err).Msg("reindex failed, keeping previous index")
			}
		}),
		gocron.WithName(reindexJobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, fmt.Errorf("seedpress: schedule reindex: %w", err)
	}

	sched.Start()
	a.Logger.Info().Dur("interval", a.Config.ReindexInterval).Msg("watching content")
	return sched, nil
}
