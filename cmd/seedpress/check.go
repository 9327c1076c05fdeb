package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eringen/seedpress/content"
	"github.com/eringen/seedpress/theme"
)

var checkStrict bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate content and report theme contrast",
	Long:  "Validate every post, drafts included, and report the WCAG contrast of the site theme and each post theme.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		posts, err := content.Load(cfg.ContentDir, content.Options{IncludeDrafts: true})
		if err != nil {
			return err
		}
		report, failures, err := contrastReport(cfg.Seed, posts)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), report)
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d posts valid, %d contrast pairs below %.1f:1\n", len(posts), failures, theme.MinContrastAA)
		if checkStrict && failures > 0 {
			return fmt.Errorf("%d contrast pairs below %.1f:1", failures, theme.MinContrastAA)
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "Fail when any contrast pair is below AA")
}

// contrastReport measures the site seed and every post seed. Seeds shared by
// several posts are measured once.
func contrastReport(siteSeed string, posts []content.Post) (string, int, error) {
	type subject struct {
		label string
		seed  string
	}
	subjects := []subject{{"site", siteSeed}}
	for _, p := range posts {
		subjects = append(subjects, subject{p.ID, p.Color})
	}

	var (
		b        strings.Builder
		failures int
		seen     = make(map[string][]theme.ContrastResult)
	)
	for _, s := range subjects {
		results, ok := seen[strings.ToLower(s.seed)]
		if !ok {
			ts, err := theme.Derive(s.seed)
			if err != nil {
				return "", 0, fmt.Errorf("%s: %w", s.label, err)
			}
			results, err = theme.CheckContrast(ts, theme.ContrastPairs)
			if err != nil {
				return "", 0, fmt.Errorf("%s: %w", s.label, err)
			}
			seen[strings.ToLower(s.seed)] = results
		}
		b.WriteString(styleHeading.Render(s.label+" "+s.seed) + "\n")
		for _, r := range results {
			status := stylePass.Render("pass")
			if !r.Passes() {
				status = styleFail.Render("FAIL")
				failures++
			}
			pair := fmt.Sprintf("%-5s %s on %s", r.Scheme, r.Pair.Foreground, r.Pair.Background)
			b.WriteString("  " + status + " " + styleRole.Width(40).Render(pair) + styleValue.Render(fmt.Sprintf("%.2f:1", r.Ratio)) + "\n")
		}
	}
	return b.String(), failures, nil
}
