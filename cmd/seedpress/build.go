package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Write the theme, tokens, feed, sitemap and preview images",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		res, err := app.Build(cmd.Context())
		if err != nil {
			return err
		}
		for _, f := range res.Files {
			fmt.Fprintf(cmd.OutOrStdout(), "  wrote %s\n", f)
		}
		return nil
	},
}

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Validate the content and rebuild the SQLite post index",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		_, err = app.Index(cmd.Context())
		return err
	},
}

var (
	serveAddr    string
	serveReindex time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the preview server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			cfg.Addr = serveAddr
		}
		switch {
		case cmd.Flags().Changed("reindex"):
			cfg.ReindexInterval = serveReindex
		case development && cfg.ReindexInterval == 0:
			cfg.ReindexInterval = 2 * time.Second
		}
		app := newAppFromConfig(cfg)
		defer app.Close()
		return app.Serve(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":3000", "Listen address (overrides config)")
	serveCmd.Flags().DurationVar(&serveReindex, "reindex", 0, "Re-index content this often; 0 disables (default 2s with --dev)")
}
