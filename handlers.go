package postshelf

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/postshelf/catalog"
	"github.com/eringen/postshelf/markdown"
)

func (a *App) handleList(c echo.Context) error {
	posts, err := a.Posts.List()
	if err != nil {
		return catalogError(err)
	}
	return c.JSON(http.StatusOK, posts.Metadata())
}

func (a *App) handleMetadata(c echo.Context) error {
	id := c.Param("id")
	meta, err := a.Posts.Metadata(id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.Logger().Warnf("no such post %q", id)
		}
		return catalogError(err)
	}
	return c.JSON(http.StatusOK, meta)
}

func (a *App) handleContent(c echo.Context) error {
	path, err := a.Posts.ContentPath(c.Param("id"))
	if err != nil {
		return catalogError(err)
	}
	f, fi, err := openRegular(path)
	if err != nil {
		return fileError(c, path, err)
	}
	defer f.Close()
	if filepath.Ext(path) == ".md" {
		c.Response().Header().Set(echo.HeaderContentType, "text/markdown; charset=utf-8")
	}
	http.ServeContent(c.Response(), c.Request(), fi.Name(), fi.ModTime(), f)
	return nil
}

func (a *App) handleView(c echo.Context) error {
	path, err := a.Posts.ContentPath(c.Param("id"))
	if err != nil {
		return catalogError(err)
	}
	f, _, err := openRegular(path)
	if err != nil {
		return fileError(c, path, err)
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
	}
	return Render(c, markdown.Markdown(content))
}

type healthResponse struct {
	Status        string `json:"status"`
	Posts         int    `json:"posts"`
	LastRefreshed string `json:"last_refreshed,omitempty"`
	Error         string `json:"error,omitempty"`
}

func (a *App) handleHealth(c echo.Context) error {
	posts, err := a.Posts.List()
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, healthResponse{Status: "unavailable", Error: err.Error()})
	}
	return c.JSON(http.StatusOK, healthResponse{
		Status:        "ok",
		Posts:         len(posts),
		LastRefreshed: a.Posts.Cache().LastRefreshed().UTC().Format(time.RFC3339),
	})
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Posts.List()
	if err != nil {
		return catalogError(err)
	}
	return a.renderRSS(c, posts.Sorted())
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Posts.List()
	if err != nil {
		return catalogError(err)
	}
	return a.renderSitemap(c, posts.Sorted())
}

// openRegular opens path for reading. Directories count as missing.
func openRegular(path string) (*os.File, os.FileInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	if fi.IsDir() {
		f.Close()
		return nil, nil, fmt.Errorf("%s is a directory: %w", path, fs.ErrNotExist)
	}
	return f, fi, nil
}

// catalogError maps a catalog lookup failure to an HTTP error.
func catalogError(err error) error {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "post not found").SetInternal(err)
	case errors.Is(err, catalog.ErrFatalConfig):
		return echo.NewHTTPError(http.StatusInternalServerError, "catalog unavailable").SetInternal(err)
	default:
		return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
	}
}

// fileError maps a failure to open a post file. A file that vanished after
// the scan is reported as not found.
func fileError(c echo.Context, path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		c.Logger().Warnf("could not find %s", path)
		return echo.NewHTTPError(http.StatusNotFound, "post not found").SetInternal(err)
	}
	return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
	}
	if code >= 500 {
		if errors.Is(err, catalog.ErrFatalConfig) {
			c.Logger().Errorf("catalog unavailable: %v", err)
		} else {
			c.Logger().Errorf("server error: %v", err)
		}
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
