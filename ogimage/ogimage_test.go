package ogimage

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/eringen/seedpress/theme"
)

func darkTokens() map[string]string {
	return map[string]string{
		"--background":         "20 18 10",
		"--on-background":      "234 225 212",
		"--on-surface-variant": "208 197 176",
		"--primary":            "248 189 42",
		"--secondary":          "1 2 3",
	}
}

func TestColorsFromTokens(t *testing.T) {
	c, err := ColorsFromTokens(darkTokens())
	if err != nil {
		t.Fatalf("ColorsFromTokens failed: %v", err)
	}
	want := Colors{
		Background: "rgb(20 18 10 / 1)",
		Title:      "rgb(234 225 212 / 1)",
		Date:       "rgb(208 197 176 / 1)",
		Accent:     "rgb(248 189 42 / 1)",
	}
	if c != want {
		t.Errorf("ColorsFromTokens = %+v, want %+v", c, want)
	}
}

func TestColorsFromTokensAlpha(t *testing.T) {
	c, err := ColorsFromTokensAlpha(darkTokens(), 0.5)
	if err != nil {
		t.Fatalf("ColorsFromTokensAlpha failed: %v", err)
	}
	if c.Accent != "rgb(248 189 42 / 0.5)" {
		t.Errorf("Accent = %q", c.Accent)
	}
}

func TestColorsFromTokensLookupMiss(t *testing.T) {
	for _, role := range []string{"--background", "--on-background", "--on-surface-variant", "--primary"} {
		tokens := darkTokens()
		delete(tokens, role)
		_, err := ColorsFromTokens(tokens)
		if !errors.Is(err, theme.ErrLookupMiss) {
			t.Errorf("without %s: expected ErrLookupMiss, got %v", role, err)
		}
	}
}

func TestParseRGB(t *testing.T) {
	tests := []struct {
		input string
		want  color.NRGBA
	}{
		{"rgb(255 193 0 / 1)", color.NRGBA{R: 255, G: 193, B: 0, A: 255}},
		{"rgb(10 20 30 / 0)", color.NRGBA{R: 10, G: 20, B: 30, A: 0}},
		{"rgb(10 20 30 / 0.5)", color.NRGBA{R: 10, G: 20, B: 30, A: 128}},
		{"rgb(10 20 30)", color.NRGBA{R: 10, G: 20, B: 30, A: 255}},
	}
	for _, tt := range tests {
		got, err := ParseRGB(tt.input)
		if err != nil {
			t.Fatalf("ParseRGB(%q) failed: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseRGB(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
	for _, bad := range []string{"", "#fff", "rgb(1 2 / 1)", "rgb(1 2 3 / x)", "rgb(1 2 3 / 1"} {
		if _, err := ParseRGB(bad); err == nil {
			t.Errorf("ParseRGB(%q) should fail", bad)
		}
	}
}

func TestDrawUsesThemeColors(t *testing.T) {
	ts, err := theme.Derive("#FFC100")
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	colors, err := ColorsFromTokens(ts.CSSVariables()[theme.Dark])
	if err != nil {
		t.Fatalf("ColorsFromTokens failed: %v", err)
	}
	r, err := NewRenderer(Fonts{})
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	img, err := r.Draw(Card{
		Title:  "Deriving a whole palette from one colour",
		Date:   time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
		Brand:  "ceo",
		Colors: colors,
	})
	if err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != Width || b.Dy() != Height {
		t.Fatalf("bounds = %v", b)
	}
	bg, _ := ts.Lookup(theme.Dark, "background")
	if got := img.RGBAAt(1, 1); got != bg.RGBA() {
		t.Errorf("corner pixel = %+v, want %+v", got, bg.RGBA())
	}

	title, _ := ts.Lookup(theme.Dark, "on-background")
	found := false
	for y := padY; y < padY+headlineLineHeight && !found; y++ {
		for x := padX; x < Width-padX; x++ {
			if img.RGBAAt(x, y) == title.RGBA() {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("no title-coloured pixel in the first headline line")
	}
}

func TestDrawRejectsMalformedColors(t *testing.T) {
	r, err := NewRenderer(Fonts{})
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	_, err = r.Draw(Card{Title: "x", Colors: Colors{Background: "nope"}})
	if err == nil {
		t.Fatal("expected error for malformed colours")
	}
}

func TestRenderPNG(t *testing.T) {
	r, err := NewRenderer(Fonts{Headline: goregular.TTF})
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	colors, _ := ColorsFromTokens(darkTokens())
	var buf bytes.Buffer
	if err := r.Render(&buf, Card{Title: "Hello", Brand: "ceo", Colors: colors}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != Width || b.Dy() != Height {
		t.Errorf("decoded bounds = %v", b)
	}
}

func TestNewRendererRejectsBadFont(t *testing.T) {
	if _, err := NewRenderer(Fonts{Body: []byte("not a font")}); err == nil {
		t.Fatal("expected error for invalid font data")
	}
}

func TestScale(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, Width, Height))
	got := Scale(src, 600)
	if b := got.Bounds(); b.Dx() != 600 || b.Dy() != 315 {
		t.Errorf("scaled bounds = %v, want 600x315", b)
	}
	if Scale(src, 2000) != image.Image(src) {
		t.Error("Scale should not enlarge")
	}
}

func TestWrap(t *testing.T) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: headlineSize, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		t.Fatal(err)
	}
	defer face.Close()

	if lines := wrap(face, "Short", 1000, 3); len(lines) != 1 || lines[0] != "Short" {
		t.Errorf("wrap short = %q", lines)
	}
	if lines := wrap(face, "   ", 1000, 3); lines != nil {
		t.Errorf("wrap blank = %q", lines)
	}

	long := strings.Repeat("palette tones ", 20)
	lines := wrap(face, long, Width-2*padX, maxTitleLines)
	if len(lines) != maxTitleLines {
		t.Fatalf("got %d lines, want %d", len(lines), maxTitleLines)
	}
	if !strings.HasSuffix(lines[maxTitleLines-1], "…") {
		t.Errorf("last line %q should end with an ellipsis", lines[maxTitleLines-1])
	}
	for _, l := range lines {
		if font.MeasureString(face, l) > fixed.I(Width-2*padX) {
			t.Errorf("line %q is wider than the card", l)
		}
	}
}
