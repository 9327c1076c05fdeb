package theme

import (
	"encoding/json"
	"strconv"
)

// UtilityColors returns the flat role to colour-template mapping consumed by
// a utility-class framework's colour palette. The templates reference CSS
// variables, so a single mapping serves both schemes.
func UtilityColors(t *TokenSet) map[string]string {
	out := make(map[string]string)
	for _, roles := range t.UtilityVariables() {
		for name, tmpl := range roles {
			out[name] = tmpl
		}
	}
	return out
}

// TypeScale is one entry of the Material type scale, in pixels.
type TypeScale struct {
	LineHeight float64
	Size       float64
	Tracking   float64
	Weight     int
}

// MaterialTypeScale is the Material 3 type scale plus icon sizes.
var MaterialTypeScale = map[string]TypeScale{
	"body-large":      {LineHeight: 24, Size: 16, Tracking: 0.5, Weight: 400},
	"body-medium":     {LineHeight: 20, Size: 14, Tracking: 0.25, Weight: 400},
	"body-small":      {LineHeight: 16, Size: 12, Tracking: 0.4, Weight: 400},
	"display-large":   {LineHeight: 64, Size: 57, Tracking: 0, Weight: 400},
	"display-medium":  {LineHeight: 52, Size: 45, Tracking: 0, Weight: 400},
	"display-small":   {LineHeight: 44, Size: 36, Tracking: 0, Weight: 400},
	"headline-large":  {LineHeight: 40, Size: 32, Tracking: 0, Weight: 400},
	"headline-medium": {LineHeight: 36, Size: 28, Tracking: 0, Weight: 400},
	"headline-small":  {LineHeight: 32, Size: 24, Tracking: 0, Weight: 400},
	"label-large":     {LineHeight: 20, Size: 14, Tracking: 0.1, Weight: 500},
	"label-medium":    {LineHeight: 16, Size: 12, Tracking: 0.5, Weight: 500},
	"label-small":     {LineHeight: 16, Size: 11, Tracking: 0.5, Weight: 500},
	"title-large":     {LineHeight: 28, Size: 22, Tracking: 0, Weight: 400},
	"title-medium":    {LineHeight: 24, Size: 16, Tracking: 0.15, Weight: 500},
	"title-small":     {LineHeight: 20, Size: 14, Tracking: 0.1, Weight: 500},
	"icon-small":      {LineHeight: 16, Size: 18, Tracking: 0, Weight: 400},
	"icon-medium":     {LineHeight: 16, Size: 24, Tracking: 0, Weight: 400},
	"icon-large":      {LineHeight: 16, Size: 36, Tracking: 0, Weight: 400},
}

// Rem converts a pixel value to rem against a 16px root.
func Rem(px float64) string {
	return strconv.FormatFloat(px/16, 'f', -1, 64) + "rem"
}

// FontSize is a utility font-size token: a size plus its line definitions.
// It encodes as the [size, {fontWeight, letterSpacing, lineHeight}] tuple
// utility frameworks expect.
type FontSize struct {
	Size          string
	FontWeight    string
	LetterSpacing string
	LineHeight    string
}

// MarshalJSON implements json.Marshaler.
func (f FontSize) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{
		f.Size,
		map[string]string{
			"fontWeight":    f.FontWeight,
			"letterSpacing": f.LetterSpacing,
			"lineHeight":    f.LineHeight,
		},
	})
}

// TypographyTokens converts a type scale to font-size tokens.
func TypographyTokens(scale map[string]TypeScale) map[string]FontSize {
	out := make(map[string]FontSize, len(scale))
	for name, s := range scale {
		out[name] = FontSize{
			Size:          Rem(s.Size),
			FontWeight:    strconv.Itoa(s.Weight),
			LetterSpacing: Rem(s.Tracking),
			LineHeight:    Rem(s.LineHeight),
		}
	}
	return out
}

// UtilityConfig is the theme section of a utility-class framework config.
type UtilityConfig struct {
	Seed     string              `json:"seed"`
	Colors   map[string]string   `json:"colors"`
	FontSize map[string]FontSize `json:"fontSize"`
}

// NewUtilityConfig builds the utility config for t with the Material scale.
func NewUtilityConfig(t *TokenSet) UtilityConfig {
	return UtilityConfig{
		Seed:     t.Seed().String(),
		Colors:   UtilityColors(t),
		FontSize: TypographyTokens(MaterialTypeScale),
	}
}
