// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"io/fs"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/deppfellow/touch-of-elegance/internal/handler"
	"github.com/deppfellow/touch-of-elegance/internal/middleware"
	"github.com/deppfellow/touch-of-elegance/internal/server"
)

// NewRouter builds the echo instance with the full middleware chain and
// route table. assets is the public asset tree served as static files.
//
// Every request passes through, in order: panic recovery, security
// headers, gzip, CORS, request id, tracing, request logger setup,
// metrics, request log line, body limit, JSON check and static files.
// Rate limits are attached per route.
func NewRouter(s *server.Server, h *handler.Handlers, assets fs.FS) *echo.Echo {
	mw := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	// No proxy sits in front of the service, so a client is its socket
	// peer. X-Forwarded-For is ignored.
	router.IPExtractor = echo.ExtractIPDirect()
	router.HTTPErrorHandler = mw.Global.GlobalErrorHandler

	router.Use(
		mw.Global.Recover(),
		mw.Global.Secure(),
		mw.Global.Gzip(),
		mw.Global.CORS(),
		middleware.RequestID(),
		mw.Tracing.NewRelicMiddleware(),
		mw.Tracing.EnhanceTracing(),
		mw.ContextEnhancer.EnhanceContext(),
		mw.Metrics.Collect(),
		mw.Global.RequestLogger(),
		mw.Global.BodyLimit(),
		middleware.JSONBody(),
		staticFiles(assets),
	)

	registerSystemRoutes(router, h)
	registerAPIRoutes(router, h, mw)

	return router
}

// staticFiles serves the public assets. A hit ends the request; a miss
// falls through to routing. The landing page and the API never touch
// the file system.
func staticFiles(assets fs.FS) echo.MiddlewareFunc {
	return echoMiddleware.StaticWithConfig(echoMiddleware.StaticConfig{
		Filesystem: http.FS(assets),
		Index:      "index.html",
		Skipper: func(c echo.Context) bool {
			req := c.Request()
			if req.Method != http.MethodGet && req.Method != http.MethodHead {
				return true
			}
			p := req.URL.Path
			return p == "/" ||
				p == "/api" ||
				strings.HasPrefix(p, "/api/") ||
				p == "/health" ||
				p == "/metrics"
		},
	})
}
