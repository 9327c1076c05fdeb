package seedpress

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/seedpress/content"
	"github.com/eringen/seedpress/theme"
)

const mimeCSS = "text/css; charset=utf-8"

func (a *App) handleSiteTheme(c echo.Context) error {
	css, err := theme.InjectIntoRoot(a.theme)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, mimeCSS, []byte(css))
}

func (a *App) handleTokens(c echo.Context) error {
	return c.JSONPretty(http.StatusOK, theme.NewUtilityConfig(a.theme), "  ")
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Cache.ListPosts(c.Request().Context())
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts)
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Cache.ListPosts(c.Request().Context())
	if err != nil {
		return err
	}
	return a.renderSitemap(c, posts)
}

func (a *App) handleRobots(c echo.Context) error {
	return c.String(http.StatusOK, RobotsTxt(a.Config))
}

// postTheme derives the theme for the post named by the :id parameter.
func (a *App) postTheme(c echo.Context) (*theme.TokenSet, error) {
	post, err := a.Cache.GetPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound)
		}
		return nil, err
	}
	return theme.Derive(post.Color)
}

func (a *App) handlePostTheme(c echo.Context) error {
	ts, err := a.postTheme(c)
	if err != nil {
		return err
	}
	css, err := theme.InjectIntoRoot(ts)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, mimeCSS, []byte(css))
}

// handlePostStyle serves the post theme as a <style> element for pages that
// inline it into <head>.
func (a *App) handlePostStyle(c echo.Context) error {
	ts, err := a.postTheme(c)
	if err != nil {
		return err
	}
	css, err := theme.InjectIntoRoot(ts)
	if err != nil {
		return err
	}
	return Render(c, theme.StyleTag(css))
}
