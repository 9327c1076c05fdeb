package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/eringen/seedpress"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	configPath  string
	development bool
)

var rootCmd = &cobra.Command{
	Use:           "seedpress",
	Short:         "seedpress builds seed-colour themed blogs",
	Long:          "seedpress derives a Material colour theme from a seed colour and builds the theme, feed and preview images of a Markdown blog.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger(development)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the seedpress version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "seedpress %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "seedpress.yaml", "Config file")
	rootCmd.PersistentFlags().BoolVar(&development, "dev", false, "Development mode: include drafts, console logs, no caching")
	rootCmd.AddCommand(versionCmd, buildCmd, indexCmd, serveCmd, themeCmd, checkCmd, newCmd, showCmd)
}

func setupLogger(dev bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if dev {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// loadConfig reads the site config and applies command-line overrides.
func loadConfig() (seedpress.SiteConfig, error) {
	cfg, err := seedpress.LoadConfig(configPath)
	if err != nil {
		return seedpress.SiteConfig{}, err
	}
	if development {
		cfg.Development = true
		cfg.Drafts = true
	}
	return cfg, nil
}

func newApp() (*seedpress.App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return newAppFromConfig(cfg), nil
}

func newAppFromConfig(cfg seedpress.SiteConfig) *seedpress.App {
	return seedpress.New(cfg, seedpress.WithLogger(log.Logger))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("seedpress failed")
		stop()
		os.Exit(1)
	}
}
