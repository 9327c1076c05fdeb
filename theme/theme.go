// Package theme derives a Material-style colour theme from a single seed
// colour and formats it for the consumers that need it: CSS custom
// properties, utility-class colour tokens and the social preview image.
//
// Derivation is a pure function of the seed. Callers that need the theme in
// several places derive it again rather than sharing a package-level value.
package theme

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// DefaultSeed is the seed colour used when a site does not configure one.
const DefaultSeed = "#FFC100"

var (
	// ErrInvalidInput is returned when a seed is not a #RRGGBB string.
	ErrInvalidInput = errors.New("baseColor must be a hex color string")
	// ErrIntegrity is returned when the colour source produces dark and
	// light schemes that do not agree on their role names.
	ErrIntegrity = errors.New("theme: scheme integrity violated")
	// ErrLookupMiss is returned when a consumer asks for a role that the
	// token set does not contain.
	ErrLookupMiss = errors.New("theme: role not found")
)

// Scheme is an appearance mode.
type Scheme string

const (
	Dark  Scheme = "dark"
	Light Scheme = "light"
)

// Schemes lists every supported scheme in output order.
var Schemes = [...]Scheme{Light, Dark}

var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// IsHexColor reports whether value is a strict #RRGGBB colour.
func IsHexColor(value string) bool {
	return hexColorRegex.MatchString(value)
}

// Seed is a validated seed colour.
type Seed struct {
	hex  string
	argb uint32
}

// ParseSeed validates s and packs it into an opaque ARGB integer.
func ParseSeed(s string) (Seed, error) {
	if !IsHexColor(s) {
		return Seed{}, fmt.Errorf("%w: %q", ErrInvalidInput, s)
	}
	rgb, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return Seed{}, fmt.Errorf("%w: %q", ErrInvalidInput, s)
	}
	return Seed{hex: s, argb: 0xFF<<24 | uint32(rgb)}, nil
}

// String returns the seed as it was given.
func (s Seed) String() string { return s.hex }

// ARGB returns the packed colour: alpha in bits 24-31, then red, green, blue.
func (s Seed) ARGB() uint32 { return s.argb }

// Channels returns the seed's red, green and blue channels.
func (s Seed) Channels() Channels { return ChannelsFromARGB(s.argb) }
