package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/eringen/seedpress/content"
)

var (
	showWidth int
	showStyle string
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a post with its metadata in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		posts, err := content.Load(cfg.ContentDir, content.Options{IncludeDrafts: true})
		if err != nil {
			return err
		}
		post, err := content.Find(posts, args[0])
		if err != nil {
			return err
		}
		deps, err := content.Dependencies(post)
		if err != nil {
			return err
		}
		out, err := renderPost(post, deps, showStyle, showWidth)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	showCmd.Flags().IntVar(&showWidth, "width", 80, "Word wrap width")
	showCmd.Flags().StringVar(&showStyle, "style", "dark", "Glamour style: dark, light, notty or ascii")
}

func renderPost(p content.Post, deps []content.Dependency, style string, width int) (string, error) {
	var b strings.Builder
	b.WriteString(styleHeading.Render(p.Title) + "\n")
	meta := fmt.Sprintf("%s  %s", p.Date.Format(content.DateLayout), p.Color)
	if p.Draft {
		meta += "  draft"
	}
	b.WriteString(styleValue.Render(meta) + "\n")
	if p.Description != "" {
		b.WriteString(p.Description + "\n")
	}
	if len(p.Related) > 0 {
		b.WriteString(styleValue.Render("related: "+strings.Join(p.Related, ", ")) + "\n")
	}
	for _, d := range deps {
		b.WriteString(styleValue.Render("uses "+d.Name+"@"+d.Version) + "\n")
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("init markdown renderer: %w", err)
	}
	body, err := renderer.Render(p.Body)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", p.ID, err)
	}
	b.WriteString(body)
	return b.String(), nil
}
