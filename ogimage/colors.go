// Package ogimage renders the social preview image for a post. It only
// consumes pre-formatted colour strings taken from the dark scheme of a
// derived theme; it never derives colours itself.
package ogimage

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/eringen/seedpress/theme"
)

// Colors are the four fills the card uses, as CSS rgb() strings.
type Colors struct {
	Background string // --background
	Title      string // --on-background
	Date       string // --on-surface-variant
	Accent     string // --primary
}

// ColorsFromTokens is ColorsFromTokensAlpha with an alpha of 1.
func ColorsFromTokens(dark map[string]string) (Colors, error) {
	return ColorsFromTokensAlpha(dark, 1)
}

// ColorsFromTokensAlpha looks the card roles up in the CSS-form dark scheme
// ("--role" to "R G B") and formats each with alpha. A missing role is an
// error wrapping theme.ErrLookupMiss; there is no fallback colour.
func ColorsFromTokensAlpha(dark map[string]string, alpha float64) (Colors, error) {
	get := func(role string) (string, error) {
		v, ok := dark[theme.VariableName(role)]
		if !ok {
			return "", fmt.Errorf("%w: %s/%s", theme.ErrLookupMiss, theme.Dark, role)
		}
		return FormatRGB(v, alpha), nil
	}
	var (
		c   Colors
		err error
	)
	if c.Background, err = get("background"); err != nil {
		return Colors{}, err
	}
	if c.Title, err = get("on-background"); err != nil {
		return Colors{}, err
	}
	if c.Date, err = get("on-surface-variant"); err != nil {
		return Colors{}, err
	}
	if c.Accent, err = get("primary"); err != nil {
		return Colors{}, err
	}
	return c, nil
}

// FormatRGB wraps a channel string as "rgb(R G B / alpha)".
func FormatRGB(channels string, alpha float64) string {
	return "rgb(" + channels + " / " + strconv.FormatFloat(alpha, 'f', -1, 64) + ")"
}

// ParseRGB parses the output of FormatRGB into a raster colour.
func ParseRGB(s string) (color.NRGBA, error) {
	inner, ok := strings.CutPrefix(strings.TrimSpace(s), "rgb(")
	if !ok {
		return color.NRGBA{}, fmt.Errorf("parse %q: missing rgb(", s)
	}
	inner, ok = strings.CutSuffix(inner, ")")
	if !ok {
		return color.NRGBA{}, fmt.Errorf("parse %q: missing )", s)
	}
	channels, alphaStr, hasAlpha := strings.Cut(inner, "/")
	c, err := theme.ParseChannels(channels)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parse %q: %w", s, err)
	}
	alpha := 1.0
	if hasAlpha {
		alpha, err = strconv.ParseFloat(strings.TrimSpace(alphaStr), 64)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("parse %q: alpha: %w", s, err)
		}
		alpha = math.Max(0, math.Min(1, alpha))
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(alpha * 255))}, nil
}
