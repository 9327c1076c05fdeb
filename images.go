package seedpress

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"os"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/eringen/seedpress/content"
	"github.com/eringen/seedpress/ogimage"
	"github.com/eringen/seedpress/theme"
)

// minPreviewWidth is the smallest ?w= accepted. Widths above Width are
// served at full size.
const minPreviewWidth = 64

// loadFonts reads the configured preview fonts. Unset paths fall back to the
// renderer's built-in fonts.
func loadFonts(cfg SiteConfig) (ogimage.Fonts, error) {
	var fonts ogimage.Fonts
	if cfg.HeadlineFont != "" {
		data, err := os.ReadFile(cfg.HeadlineFont)
		if err != nil {
			return ogimage.Fonts{}, fmt.Errorf("read headline font: %w", err)
		}
		fonts.Headline = data
	}
	if cfg.BodyFont != "" {
		data, err := os.ReadFile(cfg.BodyFont)
		if err != nil {
			return ogimage.Fonts{}, fmt.Errorf("read body font: %w", err)
		}
		fonts.Body = data
	}
	return fonts, nil
}

// PreviewCard builds the preview card for p. Colours come from the dark
// scheme of the theme derived from the post's own seed.
func PreviewCard(cfg SiteConfig, p content.Post) (ogimage.Card, error) {
	ts, err := theme.Derive(p.Color)
	if err != nil {
		return ogimage.Card{}, fmt.Errorf("post %s: %w", p.ID, err)
	}
	colors, err := ogimage.ColorsFromTokensAlpha(ts.CSSVariables()[theme.Dark], cfg.ImageAlpha)
	if err != nil {
		return ogimage.Card{}, fmt.Errorf("post %s: %w", p.ID, err)
	}
	return ogimage.Card{
		Title:  p.Title,
		Date:   p.Date,
		Brand:  cfg.Brand,
		Colors: colors,
	}, nil
}

func (a *App) drawPreview(p content.Post) (*image.RGBA, error) {
	card, err := PreviewCard(a.Config, p)
	if err != nil {
		return nil, err
	}
	return a.renderer.Draw(card)
}

func (a *App) handlePreviewImage(c echo.Context) error {
	if !a.renderLimiter.Allow(c.RealIP()) {
		return echo.NewHTTPError(http.StatusTooManyRequests, "too many image renders")
	}

	width := 0
	if raw := c.QueryParam("w"); raw != "" {
		w, err := strconv.Atoi(raw)
		if err != nil || w < minPreviewWidth {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid width")
		}
		width = w
	}

	post, err := a.Cache.GetPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return err
	}

	img, err := a.drawPreview(post)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, ogimage.Scale(img, width)); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}
