package theme

import (
	"image/color"

	"cogentcore.org/core/colors/matcolor"
)

// materialRole maps a Material role to one of the six tonal palettes and the
// tone it takes in the light and dark schemes.
type materialRole struct {
	name        string
	palette     func(p *matcolor.Palette) *matcolor.Tones
	light, dark int
}

func primaryTones(p *matcolor.Palette) *matcolor.Tones        { return &p.Primary }
func secondaryTones(p *matcolor.Palette) *matcolor.Tones      { return &p.Secondary }
func tertiaryTones(p *matcolor.Palette) *matcolor.Tones       { return &p.Tertiary }
func errorTones(p *matcolor.Palette) *matcolor.Tones          { return &p.Error }
func neutralTones(p *matcolor.Palette) *matcolor.Tones        { return &p.Neutral }
func neutralVariantTones(p *matcolor.Palette) *matcolor.Tones { return &p.NeutralVariant }

var materialRoles = []materialRole{
	{"primary", primaryTones, 40, 80},
	{"onPrimary", primaryTones, 100, 20},
	{"primaryContainer", primaryTones, 90, 30},
	{"onPrimaryContainer", primaryTones, 10, 90},
	{"secondary", secondaryTones, 40, 80},
	{"onSecondary", secondaryTones, 100, 20},
	{"secondaryContainer", secondaryTones, 90, 30},
	{"onSecondaryContainer", secondaryTones, 10, 90},
	{"tertiary", tertiaryTones, 40, 80},
	{"onTertiary", tertiaryTones, 100, 20},
	{"tertiaryContainer", tertiaryTones, 90, 30},
	{"onTertiaryContainer", tertiaryTones, 10, 90},
	{"error", errorTones, 40, 80},
	{"onError", errorTones, 100, 20},
	{"errorContainer", errorTones, 90, 30},
	{"onErrorContainer", errorTones, 10, 90},
	{"background", neutralTones, 99, 10},
	{"onBackground", neutralTones, 10, 90},
	{"surface", neutralTones, 99, 10},
	{"onSurface", neutralTones, 10, 90},
	{"surfaceVariant", neutralVariantTones, 90, 30},
	{"onSurfaceVariant", neutralVariantTones, 30, 80},
	{"surfaceDim", neutralTones, 87, 6},
	{"surfaceBright", neutralTones, 98, 24},
	{"surfaceContainerLowest", neutralTones, 100, 4},
	{"surfaceContainerLow", neutralTones, 96, 10},
	{"surfaceContainer", neutralTones, 94, 12},
	{"surfaceContainerHigh", neutralTones, 92, 17},
	{"surfaceContainerHighest", neutralTones, 90, 22},
	{"surfaceTint", primaryTones, 40, 80},
	{"outline", neutralVariantTones, 50, 60},
	{"outlineVariant", neutralVariantTones, 80, 30},
	{"shadow", neutralTones, 0, 0},
	{"scrim", neutralTones, 0, 0},
	{"inverseSurface", neutralTones, 20, 90},
	{"inverseOnSurface", neutralTones, 95, 20},
	{"inversePrimary", primaryTones, 80, 40},
}

// Material is the default Source. Tonal palettes come from the HCT colour
// space implementation in cogentcore's matcolor package; the role table
// above assigns tones to roles.
type Material struct{}

// Schemes implements Source.
func (Material) Schemes(argb uint32) (RawSchemes, error) {
	key := matcolor.KeyFromPrimary(ChannelsFromARGB(argb).RGBA())
	p := matcolor.NewPalette(key)

	raw := RawSchemes{
		Dark:  make(map[string]uint32, len(materialRoles)),
		Light: make(map[string]uint32, len(materialRoles)),
	}
	for _, r := range materialRoles {
		tones := r.palette(p)
		raw.Light[r.name] = argbFromColor(tones.AbsTone(r.light))
		raw.Dark[r.name] = argbFromColor(tones.AbsTone(r.dark))
	}
	return raw, nil
}

func argbFromColor(c color.RGBA) uint32 {
	return 0xFF<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}
