package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/eringen/seedpress/theme"
)

var (
	cGray   = lipgloss.Color("240")
	cWhite  = lipgloss.Color("255")
	cGreen  = lipgloss.Color("118")
	cRed    = lipgloss.Color("196")
	cPurple = lipgloss.Color("99")

	styleHeading = lipgloss.NewStyle().Foreground(cPurple).Bold(true)
	styleRole    = lipgloss.NewStyle().Foreground(cWhite).Width(28)
	styleValue   = lipgloss.NewStyle().Foreground(cGray)
	stylePass    = lipgloss.NewStyle().Foreground(cGreen).Bold(true)
	styleFail    = lipgloss.NewStyle().Foreground(cRed).Bold(true)
)

// Theme output formats.
const (
	formatCSS      = "css"
	formatMinified = "minified"
	formatUtility  = "utility"
	formatJSON     = "json"
	formatPreview  = "preview"
)

var (
	themeSeed   string
	themeFormat string
	themeCopy   bool
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Print the theme derived from a seed colour",
	Long: `Print the theme derived from a seed colour.

Formats:
  css       custom properties with the light and dark schemes
  minified  the same CSS, minified for inlining into <head>
  utility   utility-class colour and font-size tokens as JSON
  json      the channel strings of every role, per scheme
  preview   coloured swatches for the terminal`,
	RunE: func(cmd *cobra.Command, args []string) error {
		seed := themeSeed
		if !cmd.Flags().Changed("seed") {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			seed = cfg.Seed
		}
		out, err := renderTheme(seed, themeFormat)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		if themeCopy {
			if themeFormat == formatPreview {
				return fmt.Errorf("--copy does not support the %s format", formatPreview)
			}
			if err := clipboard.WriteAll(out); err != nil {
				return fmt.Errorf("copy to clipboard: %w", err)
			}
			cmd.PrintErrln("copied to clipboard")
		}
		return nil
	},
}

func init() {
	themeCmd.Flags().StringVar(&themeSeed, "seed", theme.DefaultSeed, "Seed colour as #RRGGBB (default: the configured seed)")
	themeCmd.Flags().StringVar(&themeFormat, "format", formatCSS, "Output format: css, minified, utility, json or preview")
	themeCmd.Flags().BoolVar(&themeCopy, "copy", false, "Also copy the output to the clipboard")
}

func renderTheme(seed, format string) (string, error) {
	ts, err := theme.Derive(seed)
	if err != nil {
		return "", err
	}
	switch format {
	case formatCSS:
		return theme.RootCSS(ts)
	case formatMinified:
		css, err := theme.InjectIntoRoot(ts)
		if err != nil {
			return "", err
		}
		return css + "\n", nil
	case formatUtility:
		return marshalJSON(theme.NewUtilityConfig(ts))
	case formatJSON:
		return marshalJSON(ts.CSSVariables())
	case formatPreview:
		return previewTheme(ts)
	default:
		return "", fmt.Errorf("unknown format %q", format)
	}
}

func marshalJSON(v any) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b) + "\n", nil
}

// palette is the part of a token set the preview draws from.
type palette interface {
	Seed() theme.Seed
	Roles() []string
	Lookup(scheme theme.Scheme, role string) (theme.Channels, error)
}

func previewTheme(p palette) (string, error) {
	var b strings.Builder
	b.WriteString(styleHeading.Render("seed "+p.Seed().String()) + "\n")
	for _, scheme := range theme.Schemes {
		b.WriteString("\n" + styleHeading.Render(string(scheme)) + "\n")
		for _, role := range p.Roles() {
			c, err := p.Lookup(scheme, role)
			if err != nil {
				return "", err
			}
			swatch := lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Render("      ")
			b.WriteString(swatch + " " + styleRole.Render(role) + styleValue.Render(c.Hex()+"  "+c.String()) + "\n")
		}
	}
	return b.String(), nil
}
