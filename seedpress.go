// Package seedpress builds and previews a blog whose colours are derived
// from seed colours: one for the site and one per post.
//
// An App indexes the Markdown posts into SQLite, writes the static theme,
// feed and preview-image artifacts, and serves the same artifacts from a
// preview server while writing.
package seedpress

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/eringen/seedpress/content"
	"github.com/eringen/seedpress/ogimage"
	"github.com/eringen/seedpress/theme"
)

const shutdownTimeout = 10 * time.Second

// App is the central seedpress application. It wires together the store,
// cache, theme, preview renderer, handlers and middleware.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Cache  *PostCache
	Logger zerolog.Logger

	theme         *theme.TokenSet
	renderer      *ogimage.Renderer
	renderLimiter *RenderLimiter
	customRoutes  []func(*App)
	staticDir     string
	now           func() time.Time

	openOnce  sync.Once
	openErr   error
	routeOnce sync.Once
}

// New creates a new App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	a := &App{
		Config:    cfg,
		Echo:      e,
		Logger:    NewLogger(cfg.Development),
		staticDir: "public",
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// NewLogger returns a JSON logger, or a console logger in development.
func NewLogger(development bool) zerolog.Logger {
	if development {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// Open derives the site theme and initializes the store, cache, preview
// renderer and render limiter. It runs once; later calls return the first
// result.
func (a *App) Open() error {
	a.openOnce.Do(func() {
		a.openErr = a.open()
	})
	return a.openErr
}

func (a *App) open() error {
	ts, err := theme.Derive(a.Config.Seed)
	if err != nil {
		return fmt.Errorf("seedpress: site theme: %w", err)
	}
	a.theme = ts

	fonts, err := loadFonts(a.Config)
	if err != nil {
		return fmt.Errorf("seedpress: %w", err)
	}
	renderer, err := ogimage.NewRenderer(fonts)
	if err != nil {
		return fmt.Errorf("seedpress: init renderer: %w", err)
	}
	a.renderer = renderer

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("seedpress: init store: %w", err)
	}
	a.Store = store

	a.Cache = NewPostCache(a.Store, a.Config.PostCacheTTL, a.Config.Drafts)
	a.renderLimiter = NewRenderLimiter(a.Config.RenderLimit, a.Config.RenderWindow)
	return nil
}

// Theme returns the site theme. It is nil until Open succeeds.
func (a *App) Theme() *theme.TokenSet {
	return a.theme
}

// Index loads every post under the content directory, drafts included, and
// replaces the store's index with them. Readers see drafts only when the
// site is configured to include them.
func (a *App) Index(ctx context.Context) ([]content.Post, error) {
	if err := a.Open(); err != nil {
		return nil, err
	}
	posts, err := content.Load(a.Config.ContentDir, content.Options{IncludeDrafts: true})
	if err != nil {
		return nil, fmt.Errorf("seedpress: load content: %w", err)
	}
	if err := a.Store.SyncPosts(ctx, posts); err != nil {
		return nil, fmt.Errorf("seedpress: index posts: %w", err)
	}
	a.Cache.Invalidate()

	drafts := 0
	for _, p := range posts {
		if p.Draft {
			drafts++
		}
	}
	a.Logger.Info().
		Str("dir", a.Config.ContentDir).
		Int("posts", len(posts)).
		Int("drafts", drafts).
		Msg("indexed content")
	return posts, nil
}

// Prepare indexes content and registers middleware and routes. Serve calls
// it; tests call it to drive a.Echo directly.
func (a *App) Prepare(ctx context.Context) error {
	if _, err := a.Index(ctx); err != nil {
		return err
	}
	a.routeOnce.Do(func() {
		a.setupMiddleware()
		a.setupRoutes()
		for _, fn := range a.customRoutes {
			fn(a)
		}
	})
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/rss.xml", a.handleFeed)

	e.GET("/theme.css", a.handleSiteTheme)
	e.GET("/tokens.json", a.handleTokens)

	e.GET("/:id/image.png", a.handlePreviewImage)
	e.GET("/:id/theme.css", a.handlePostTheme)
	e.GET("/:id/style.html", a.handlePostStyle)
}

// Serve runs the preview server until ctx is cancelled, then shuts it down
// gracefully.
func (a *App) Serve(ctx context.Context) error {
	if err := a.Prepare(ctx); err != nil {
		return err
	}

	if a.Config.ReindexInterval > 0 {
		sched, err := a.startReindexer(ctx)
		if err != nil {
			return err
		}
		defer func() {
			if err := sched.Shutdown(); err != nil {
				a.Logger.Warn().Err(err).Msg("scheduler shutdown")
			}
		}()
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.Info().Str("addr", a.Config.Addr).Msg("starting preview server")
		if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		a.Logger.Info().Msg("shutting down preview server")
		if err := a.Echo.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.renderLimiter != nil {
		a.renderLimiter.Stop()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
