package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/seedpress"
	"github.com/eringen/seedpress/content"
	"github.com/eringen/seedpress/scaffold"
	"github.com/eringen/seedpress/theme"
)

var (
	newColor  string
	newDate   string
	newBundle bool
)

var newCmd = &cobra.Command{
	Use:   "new <title>",
	Short: "Create a draft post",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		title := strings.Join(args, " ")
		data, err := newPostData(title, newColor, newDate, cfg.Seed, time.Now())
		if err != nil {
			return err
		}
		created, err := scaffold.NewPost(cfg.ContentDir, data, newBundle)
		if err != nil {
			return err
		}
		for _, p := range created {
			fmt.Fprintf(cmd.OutOrStdout(), "  created %s\n", p)
		}
		return nil
	},
}

func init() {
	newCmd.Flags().StringVar(&newColor, "color", "", "Seed colour of the post (default: the site seed)")
	newCmd.Flags().StringVar(&newDate, "date", "", "Publication date as yyyy-MM-dd (default: today)")
	newCmd.Flags().BoolVar(&newBundle, "bundle", false, "Create a directory post with a package.json")
}

func newPostData(title, color, date, fallbackColor string, now time.Time) (scaffold.PostData, error) {
	id := seedpress.Slugify(title)
	if id == "" {
		return scaffold.PostData{}, fmt.Errorf("title %q has no characters usable in an id", title)
	}
	if color == "" {
		color = fallbackColor
	}
	if !theme.IsHexColor(color) {
		return scaffold.PostData{}, fmt.Errorf("color %q: %w", color, theme.ErrInvalidInput)
	}
	if date == "" {
		date = now.Format(content.DateLayout)
	} else if _, err := time.Parse(content.DateLayout, date); err != nil {
		return scaffold.PostData{}, fmt.Errorf("date %q must be yyyy-MM-dd", date)
	}
	return scaffold.PostData{ID: id, Title: strings.TrimSpace(title), Date: date, Color: color}, nil
}
