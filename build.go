package seedpress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/eringen/seedpress/content"
	"github.com/eringen/seedpress/theme"
)

// Build indexes the content and writes every static artifact to the output
// directory: the site theme, utility tokens, feed, sitemap and robots file,
// plus a preview image and theme per post. Any failure stops the build.
func (a *App) Build(ctx context.Context) (BuildResult, error) {
	if _, err := a.Index(ctx); err != nil {
		return BuildResult{}, err
	}
	posts, err := a.Cache.ListPosts(ctx)
	if err != nil {
		return BuildResult{}, fmt.Errorf("seedpress: list posts: %w", err)
	}

	w := &outputWriter{dir: a.Config.OutputDir}

	css, err := theme.InjectIntoRoot(a.theme)
	if err != nil {
		return BuildResult{}, fmt.Errorf("seedpress: site theme: %w", err)
	}
	if err := w.write(ThemeFile, []byte(css)); err != nil {
		return BuildResult{}, err
	}

	tokens, err := json.MarshalIndent(theme.NewUtilityConfig(a.theme), "", "  ")
	if err != nil {
		return BuildResult{}, fmt.Errorf("seedpress: encode tokens: %w", err)
	}
	if err := w.write(TokensFile, append(tokens, '\n')); err != nil {
		return BuildResult{}, err
	}

	var feed bytes.Buffer
	if err := WriteRSS(&feed, a.Config, posts, a.now()); err != nil {
		return BuildResult{}, fmt.Errorf("seedpress: encode feed: %w", err)
	}
	if err := w.write(FeedFile, feed.Bytes()); err != nil {
		return BuildResult{}, err
	}

	var sitemap bytes.Buffer
	if err := WriteSitemap(&sitemap, a.Config, posts); err != nil {
		return BuildResult{}, fmt.Errorf("seedpress: encode sitemap: %w", err)
	}
	if err := w.write(SitemapFile, sitemap.Bytes()); err != nil {
		return BuildResult{}, err
	}

	if err := w.write(RobotsFile, []byte(RobotsTxt(a.Config))); err != nil {
		return BuildResult{}, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.Config.BuildWorkers)
	for _, p := range posts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return a.buildPost(w, p)
		})
	}
	if err := g.Wait(); err != nil {
		return BuildResult{}, err
	}

	files := w.written()
	a.Logger.Info().
		Str("dir", a.Config.OutputDir).
		Int("posts", len(posts)).
		Int("files", len(files)).
		Msg("build complete")
	return BuildResult{Posts: len(posts), Files: files}, nil
}

func (a *App) buildPost(w *outputWriter, p content.Post) error {
	img, err := a.drawPreview(p)
	if err != nil {
		return fmt.Errorf("seedpress: preview %s: %w", p.ID, err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("seedpress: encode preview %s: %w", p.ID, err)
	}
	if err := w.write(filepath.Join(p.ID, PostImageFile), buf.Bytes()); err != nil {
		return err
	}

	ts, err := theme.Derive(p.Color)
	if err != nil {
		return fmt.Errorf("seedpress: theme %s: %w", p.ID, err)
	}
	css, err := theme.InjectIntoRoot(ts)
	if err != nil {
		return fmt.Errorf("seedpress: theme %s: %w", p.ID, err)
	}
	if err := w.write(filepath.Join(p.ID, PostThemeFile), []byte(css)); err != nil {
		return err
	}
	a.Logger.Debug().Str("post", p.ID).Msg("built post artifacts")
	return nil
}

// outputWriter writes files under dir and records what it wrote. It is safe
// for concurrent use.
type outputWriter struct {
	dir   string
	mu    sync.Mutex
	files []string
}

func (w *outputWriter) write(rel string, data []byte) error {
	path := filepath.Join(w.dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("seedpress: create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("seedpress: write %s: %w", path, err)
	}
	w.mu.Lock()
	w.files = append(w.files, filepath.ToSlash(rel))
	w.mu.Unlock()
	return nil
}

func (w *outputWriter) written() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	files := append([]string(nil), w.files...)
	sort.Strings(files)
	return files
}
