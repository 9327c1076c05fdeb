package theme

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// MinContrastAA is the WCAG AA contrast ratio for body text.
const MinContrastAA = 4.5

// Luminance returns the WCAG relative luminance of c.
func Luminance(c Channels) float64 {
	r, g, b := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// Contrast returns the WCAG contrast ratio between two colours, from 1 to 21.
func Contrast(a, b Channels) float64 {
	la, lb := Luminance(a), Luminance(b)
	return (math.Max(la, lb) + 0.05) / (math.Min(la, lb) + 0.05)
}

// ContrastPair names a foreground role drawn on a background role.
type ContrastPair struct {
	Foreground string
	Background string
}

// ContrastPairs are the role pairings a blog page actually draws.
var ContrastPairs = []ContrastPair{
	{"on-background", "background"},
	{"on-surface", "surface"},
	{"on-surface-variant", "background"},
	{"primary", "background"},
	{"on-tertiary", "tertiary"},
}

// ContrastResult is the measured ratio of one pair in one scheme.
type ContrastResult struct {
	Scheme Scheme
	Pair   ContrastPair
	Ratio  float64
}

// Passes reports whether the ratio meets MinContrastAA.
func (r ContrastResult) Passes() bool { return r.Ratio >= MinContrastAA }

// CheckContrast measures every pair in both schemes. Pairs whose roles the
// token set lacks are reported as lookup misses.
func CheckContrast(t *TokenSet, pairs []ContrastPair) ([]ContrastResult, error) {
	results := make([]ContrastResult, 0, len(pairs)*len(Schemes))
	for _, scheme := range Schemes {
		for _, p := range pairs {
			fg, err := t.Lookup(scheme, p.Foreground)
			if err != nil {
				return nil, err
			}
			bg, err := t.Lookup(scheme, p.Background)
			if err != nil {
				return nil, err
			}
			results = append(results, ContrastResult{Scheme: scheme, Pair: p, Ratio: Contrast(fg, bg)})
		}
	}
	return results, nil
}
