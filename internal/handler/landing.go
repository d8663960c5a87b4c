package handler

import (
	"fmt"
	"io/fs"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/touch-of-elegance/internal/server"
)

// LandingHandler serves the site's landing page from the embedded assets.
type LandingHandler struct {
	Handler
	assets fs.FS
}

// NewLandingHandler takes the asset tree rooted at the public directory.
func NewLandingHandler(s *server.Server, assets fs.FS) *LandingHandler {
	return &LandingHandler{
		Handler: NewHandler(s),
		assets:  assets,
	}
}

// ServeIndex writes index.html. Cache-Control is "no-cache" so a new
// deploy shows up on the next visit.
func (h *LandingHandler) ServeIndex(c echo.Context) error {
	page, err := fs.ReadFile(h.assets, "index.html")
	if err != nil {
		return fmt.Errorf("failed to read landing page: %w", err)
	}

	c.Response().Header().Set("Cache-Control", "no-cache")

	if err := c.HTMLBlob(http.StatusOK, page); err != nil {
		return fmt.Errorf("failed to write HTML response: %w", err)
	}

	return nil
}
