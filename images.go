package postshelf

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	maxImageWidth = 1600
	jpegQuality   = 80
)

var errAssetOutsidePost = errors.New("asset path escapes the post directory")

// handleImage serves a post's cover image as a JPEG, downscaled to the
// requested width.
func (a *App) handleImage(c echo.Context) error {
	rec, err := a.Posts.Record(c.Param("id"))
	if err != nil {
		return catalogError(err)
	}
	if rec.Meta.Image == "" {
		return echo.NewHTTPError(http.StatusNotFound, "post has no image")
	}
	width := maxImageWidth
	if w := c.QueryParam("w"); w != "" {
		n, err := strconv.Atoi(w)
		if err != nil || n <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "w must be a positive integer")
		}
		if n < width {
			width = n
		}
	}
	path, err := resolveAsset(rec.Dir, rec.Meta.Image)
	if err != nil {
		c.Logger().Warnf("post %q: image %q: %v", rec.Meta.ID, rec.Meta.Image, err)
		return echo.NewHTTPError(http.StatusNotFound, "image not found").SetInternal(err)
	}

	f, _, err := openRegular(path)
	if err != nil {
		return fileError(c, path, err)
	}
	defer f.Close()

	data, err := processImage(f, width)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(fmt.Errorf("%s: %w", path, err))
	}
	return c.Blob(http.StatusOK, "image/jpeg", data)
}

// resolveAsset joins a post-relative asset path onto dir, refusing absolute
// paths and anything that climbs out of dir.
func resolveAsset(dir, rel string) (string, error) {
	if rel == "" || filepath.IsAbs(rel) || strings.HasPrefix(rel, "/") {
		return "", errAssetOutsidePost
	}
	joined := filepath.Join(dir, filepath.FromSlash(rel))
	r, err := filepath.Rel(dir, joined)
	if err != nil || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
		return "", errAssetOutsidePost
	}
	return joined, nil
}

// processImage decodes src, shrinks it to at most maxWidth pixels wide
// keeping the aspect ratio, flattens it onto white and encodes it as JPEG.
func processImage(src io.Reader, maxWidth int) ([]byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxWidth {
		h = h * maxWidth / w
		if h < 1 {
			h = 1
		}
		w = maxWidth
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	if w == bounds.Dx() {
		draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Over)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
