package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/touch-of-elegance/internal/handler"
	"github.com/deppfellow/touch-of-elegance/internal/middleware"
)

// readMethods is used for every read route. Echo does not answer HEAD
// for a GET route on its own.
var readMethods = []string{http.MethodGet, http.MethodHead}

// registerAPIRoutes registers the /api routes.
//
// Every route, unmatched ones included, counts against the general
// window. Contact submissions also count against the contact window,
// which is checked first.
func registerAPIRoutes(r *echo.Echo, h *handler.Handlers, mw *middleware.Middlewares) {
	api := r.Group("/api")
	limit := mw.RateLimit.API()

	info := handler.Handle(h.Info.Handler, h.Info.GetInfo, http.StatusOK)
	api.Match(readMethods, "", info, limit)
	api.Match(readMethods, "/", info, limit)

	// Services
	api.Match(readMethods, "/services", handler.Handle(h.Catalog.Handler, h.Catalog.List, http.StatusOK), limit)
	api.Match(readMethods, "/services/:id", handler.Handle(h.Catalog.Handler, h.Catalog.Get, http.StatusOK), limit)

	// Contact
	api.POST("/contact", handler.Handle(h.Contact.Handler, h.Contact.Submit, http.StatusOK),
		mw.RateLimit.Contact(), limit)

	// Customers
	api.Match(readMethods, "/customers", handler.Handle(h.Customer.Handler, h.Customer.List, http.StatusOK), limit)
	api.Match(readMethods, "/customers/:id", handler.Handle(h.Customer.Handler, h.Customer.Get, http.StatusOK), limit)
	api.POST("/customers", handler.Handle(h.Customer.Handler, h.Customer.Create, http.StatusCreated), limit)

	api.RouteNotFound("/*", func(c echo.Context) error {
		return echo.ErrNotFound
	}, limit)
}
