package seedpress

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/eringen/seedpress/theme"
)

const envPrefix = "SEEDPRESS"

// SiteConfig holds all configuration for a seedpress site.
type SiteConfig struct {
	Name        string // Site name (default "Blog")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS
	Author      string
	Brand       string // Wordmark on preview images (default "ceo")

	Seed string // Site-wide seed colour (default theme.DefaultSeed)

	ContentDir   string // Markdown posts (default "content/blog")
	OutputDir    string // Build output (default "dist")
	DatabasePath string // SQLite index path (default "data/seedpress.db")
	Addr         string // Listen address (default ":3000")

	Drafts      bool // Include draft posts, as a development build does
	Development bool // Console logging and no caching headers

	PostCacheTTL time.Duration // Post cache TTL (default 5min)
	ImageAlpha   float64       // Alpha of preview image colours (default 1; see SetImageAlpha)
	HeadlineFont string        // Optional TTF/OTF path for preview headlines
	BodyFont     string        // Optional TTF/OTF path for preview body text
	BuildWorkers int           // Concurrent preview renders during Build (default 4)

	RenderLimit  int           // Image renders per client per window (default 30)
	RenderWindow time.Duration // Render limiter window (default 1min)

	ReindexInterval time.Duration // Preview server re-index period; 0 disables

	imageAlphaSet bool
}

// SetImageAlpha sets ImageAlpha and keeps it through defaulting, so an alpha
// of 0 survives. Values outside [0, 1] are rejected.
func (c *SiteConfig) SetImageAlpha(alpha float64) error {
	if alpha < 0 || alpha > 1 {
		return fmt.Errorf("image alpha %v out of range [0, 1]", alpha)
	}
	c.ImageAlpha = alpha
	c.imageAlphaSet = true
	return nil
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Brand == "" {
		c.Brand = "ceo"
	}
	if c.Seed == "" {
		c.Seed = theme.DefaultSeed
	}
	if c.ContentDir == "" {
		c.ContentDir = "content/blog"
	}
	if c.OutputDir == "" {
		c.OutputDir = "dist"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/seedpress.db"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.PostCacheTTL <= 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
	if c.ImageAlpha < 0 || c.ImageAlpha > 1 || (c.ImageAlpha == 0 && !c.imageAlphaSet) {
		c.ImageAlpha = 1
	}
	if c.BuildWorkers <= 0 {
		c.BuildWorkers = 4
	}
	if c.RenderLimit <= 0 {
		c.RenderLimit = 30
	}
	if c.RenderWindow <= 0 {
		c.RenderWindow = time.Minute
	}
	if c.ReindexInterval < 0 {
		c.ReindexInterval = 0
	}
}

func setViperDefaults(v *viper.Viper) {
	v.SetDefault("name", "Blog")
	v.SetDefault("url", "http://localhost:3000")
	v.SetDefault("brand", "ceo")
	v.SetDefault("seed", theme.DefaultSeed)
	v.SetDefault("content_dir", "content/blog")
	v.SetDefault("output_dir", "dist")
	v.SetDefault("database_path", "data/seedpress.db")
	v.SetDefault("addr", ":3000")
	v.SetDefault("drafts", false)
	v.SetDefault("development", false)
	v.SetDefault("post_cache_ttl", 5*time.Minute)
	v.SetDefault("headline_font", "")
	v.SetDefault("body_font", "")
	v.SetDefault("build_workers", 4)
	v.SetDefault("render_limit", 30)
	v.SetDefault("render_window", time.Minute)
	v.SetDefault("reindex_interval", time.Duration(0))
	v.SetDefault("description", "")
	v.SetDefault("author", "")
}

// LoadConfig reads a YAML config file, a .env file in the working directory
// and SEEDPRESS_* environment variables, in increasing precedence. A missing
// file at path is not an error.
func LoadConfig(path string) (SiteConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return SiteConfig{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	setViperDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := mergeConfigFile(v, path); err != nil {
		return SiteConfig{}, err
	}

	cfg := SiteConfig{
		Name:         v.GetString("name"),
		URL:          v.GetString("url"),
		Description:  v.GetString("description"),
		Author:       v.GetString("author"),
		Brand:        v.GetString("brand"),
		Seed:         v.GetString("seed"),
		ContentDir:   v.GetString("content_dir"),
		OutputDir:    v.GetString("output_dir"),
		DatabasePath: v.GetString("database_path"),
		Addr:         v.GetString("addr"),
		Drafts:       v.GetBool("drafts"),
		Development:  v.GetBool("development"),
		PostCacheTTL: v.GetDuration("post_cache_ttl"),
		HeadlineFont: v.GetString("headline_font"),
		BodyFont:     v.GetString("body_font"),
		BuildWorkers: v.GetInt("build_workers"),
		RenderLimit:  v.GetInt("render_limit"),
		RenderWindow: v.GetDuration("render_window"),

		ReindexInterval: v.GetDuration("reindex_interval"),
	}
	if !theme.IsHexColor(cfg.Seed) {
		return SiteConfig{}, fmt.Errorf("seed %q: %w", cfg.Seed, theme.ErrInvalidInput)
	}
	if v.IsSet("image_alpha") {
		if err := cfg.SetImageAlpha(v.GetFloat64("image_alpha")); err != nil {
			return SiteConfig{}, err
		}
	}
	cfg.setDefaults()
	return cfg, nil
}

func mergeConfigFile(v *viper.Viper, path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("config path %s is a directory", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := v.MergeConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory served under /public (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithLogger replaces the App's logger.
func WithLogger(l zerolog.Logger) Option {
	return func(a *App) {
		a.Logger = l
	}
}
