package ogimage

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"time"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	Width  = 1200
	Height = 630

	padX = 56
	padY = 40

	headlineSize       = 74
	headlineLineHeight = 96
	bodySize           = 48
	bodyLineHeight     = 72
	titleDateGap       = 4
	maxTitleLines      = 3

	dateLayout = "January 2, 2006"
)

// Fonts holds TrueType or OpenType font data. Empty fields fall back to the
// Go fonts: Go Medium for the headline and Go Regular for the body.
type Fonts struct {
	Headline []byte
	Body     []byte
}

// Card is everything drawn on one preview image.
type Card struct {
	Title  string
	Date   time.Time
	Brand  string
	Colors Colors
}

// Renderer draws cards. It is safe for concurrent use.
type Renderer struct {
	headline *opentype.Font
	body     *opentype.Font
}

// NewRenderer parses fonts once for reuse across cards.
func NewRenderer(fonts Fonts) (*Renderer, error) {
	if len(fonts.Headline) == 0 {
		fonts.Headline = gomedium.TTF
	}
	if len(fonts.Body) == 0 {
		fonts.Body = goregular.TTF
	}
	headline, err := opentype.Parse(fonts.Headline)
	if err != nil {
		return nil, fmt.Errorf("parse headline font: %w", err)
	}
	body, err := opentype.Parse(fonts.Body)
	if err != nil {
		return nil, fmt.Errorf("parse body font: %w", err)
	}
	return &Renderer{headline: headline, body: body}, nil
}

type palette struct {
	background, title, date, accent color.NRGBA
}

func parsePalette(c Colors) (palette, error) {
	var (
		p   palette
		err error
	)
	if p.background, err = ParseRGB(c.Background); err != nil {
		return palette{}, fmt.Errorf("background: %w", err)
	}
	if p.title, err = ParseRGB(c.Title); err != nil {
		return palette{}, fmt.Errorf("title: %w", err)
	}
	if p.date, err = ParseRGB(c.Date); err != nil {
		return palette{}, fmt.Errorf("date: %w", err)
	}
	if p.accent, err = ParseRGB(c.Accent); err != nil {
		return palette{}, fmt.Errorf("accent: %w", err)
	}
	return p, nil
}

// Draw renders card into a new Width x Height image.
func (r *Renderer) Draw(card Card) (*image.RGBA, error) {
	p, err := parsePalette(card.Colors)
	if err != nil {
		return nil, err
	}
	headline, err := opentype.NewFace(r.headline, &opentype.FaceOptions{Size: headlineSize, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("headline face: %w", err)
	}
	defer headline.Close()
	body, err := opentype.NewFace(r.body, &opentype.FaceOptions{Size: bodySize, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("body face: %w", err)
	}
	defer body.Close()

	dst := image.NewRGBA(image.Rect(0, 0, Width, Height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(p.background), image.Point{}, draw.Src)

	top := padY
	for _, line := range wrap(headline, card.Title, Width-2*padX, maxTitleLines) {
		drawText(dst, headline, p.title, padX, baseline(headline, top, headlineLineHeight), line)
		top += headlineLineHeight
	}
	top += titleDateGap
	if !card.Date.IsZero() {
		drawText(dst, body, p.date, padX, baseline(body, top, bodyLineHeight), card.Date.Format(dateLayout))
	}

	if card.Brand != "" {
		brandTop := Height - padY - headlineLineHeight
		dotWidth := font.MeasureString(headline, ".").Ceil()
		brandWidth := font.MeasureString(headline, card.Brand).Ceil()
		x := Width - padX - dotWidth - brandWidth
		y := baseline(headline, brandTop, headlineLineHeight)
		drawText(dst, headline, p.title, x, y, card.Brand)
		drawText(dst, headline, p.accent, x+brandWidth, y, ".")
	}
	return dst, nil
}

// Render draws card and encodes it as PNG to w.
func (r *Renderer) Render(w io.Writer, card Card) error {
	img, err := r.Draw(card)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Scale resizes img to width, keeping the aspect ratio. Images already no
// wider than width are returned unchanged.
func Scale(img image.Image, width int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if width <= 0 || w <= width {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, h*width/w))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

// baseline centres a line of face inside a box of lineHeight starting at top.
func baseline(face font.Face, top, lineHeight int) int {
	m := face.Metrics()
	return top + (lineHeight+m.Ascent.Ceil()-m.Descent.Ceil())/2
}

func drawText(dst draw.Image, face font.Face, c color.Color, x, y int, s string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// wrap breaks s into lines no wider than maxWidth. Words wider than a line
// stay on a line of their own. Past maxLines the last line ends in an
// ellipsis.
func wrap(face font.Face, s string, maxWidth, maxLines int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	limit := fixed.I(maxWidth)
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		candidate := line + " " + w
		if font.MeasureString(face, candidate) <= limit {
			line = candidate
			continue
		}
		lines = append(lines, line)
		line = w
	}
	lines = append(lines, line)

	if len(lines) > maxLines {
		lines = lines[:maxLines]
		last := lines[maxLines-1] + "…"
		for font.MeasureString(face, last) > limit {
			trimmed := strings.TrimSpace(strings.TrimSuffix(last, "…"))
			i := strings.LastIndex(trimmed, " ")
			if i < 0 {
				break
			}
			last = trimmed[:i] + "…"
		}
		lines[maxLines-1] = last
	}
	return lines
}
