package theme

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Channels is an opaque RGB colour decomposed from a packed ARGB integer.
// Every output format is built from Channels so that all consumers agree on
// the numeric value of each token.
type Channels struct {
	R, G, B uint8
}

// ChannelsFromARGB drops the alpha byte and splits the colour into channels.
func ChannelsFromARGB(argb uint32) Channels {
	return Channels{
		R: uint8(argb >> 16),
		G: uint8(argb >> 8),
		B: uint8(argb),
	}
}

// ParseChannels parses a channel string of the form "R G B".
func ParseChannels(s string) (Channels, error) {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return Channels{}, fmt.Errorf("channel string %q: want 3 values, got %d", s, len(fields))
	}
	var out [3]uint8
	for i, f := range fields {
		v, err := strconv.ParseUint(f, 10, 8)
		if err != nil {
			return Channels{}, fmt.Errorf("channel string %q: %w", s, err)
		}
		out[i] = uint8(v)
	}
	return Channels{R: out[0], G: out[1], B: out[2]}, nil
}

// ARGB packs the channels back into a fully opaque ARGB integer.
func (c Channels) ARGB() uint32 {
	return 0xFF<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// String returns the channel string, e.g. "255 193 0".
func (c Channels) String() string {
	return strconv.Itoa(int(c.R)) + " " + strconv.Itoa(int(c.G)) + " " + strconv.Itoa(int(c.B))
}

// Hex returns the colour as #rrggbb.
func (c Channels) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RGBA returns the colour as an opaque color.RGBA.
func (c Channels) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
}
