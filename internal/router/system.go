package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/deppfellow/touch-of-elegance/internal/handler"
)

// registerSystemRoutes registers the endpoints that are not part of the API:
//  1. Health endpoint
//  2. Prometheus metrics
//  3. Landing page
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.Match(readMethods, "/health", h.Health.CheckHealth)

	r.Match(readMethods, "/metrics", echo.WrapHandler(promhttp.Handler()))

	r.Match(readMethods, "/", h.Landing.ServeIndex)
}
