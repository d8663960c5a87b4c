package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/deppfellow/touch-of-elegance/internal/server"
)

// TracingMiddleware owns the New Relic middleware of the site.
//
// It has two layers:
//  1. NewRelicMiddleware() starts a transaction per request
//  2. EnhanceTracing()     tags it with request, route and rate-limit data
//
// With New Relic disabled (no license key) nrApp is nil and both layers
// pass requests through untouched.
type TracingMiddleware struct {
	server *server.Server
	nrApp  *newrelic.Application
}

func NewTracingMiddleware(s *server.Server, nrApp *newrelic.Application) *TracingMiddleware {
	return &TracingMiddleware{
		server: s,
		nrApp:  nrApp,
	}
}

// NewRelicMiddleware returns the nrecho middleware, which puts the
// transaction on the request context for newrelic.FromContext.
func (tm *TracingMiddleware) NewRelicMiddleware() echo.MiddlewareFunc {
	if tm.nrApp == nil {
		// No-op: hand back the next handler as is.
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}
	return nrecho.Middleware(tm.nrApp)
}

// EnhanceTracing adds custom attributes to the running transaction.
//
// Must run after NewRelicMiddleware and RequestID. It adds:
//   - client IP and user agent
//   - request id, to join traces with log lines
//   - matched route and final status, once the handler returned
//   - the limiter that rejected the request, for 429s
func (tm *TracingMiddleware) EnhanceTracing() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// nil when APM is off or the middleware order is wrong.
			txn := newrelic.FromContext(c.Request().Context())
			if txn == nil {
				return next(c)
			}

			txn.AddAttribute("http.real_ip", c.RealIP())
			txn.AddAttribute("http.user_agent", c.Request().UserAgent())
			if requestID := GetRequestID(c); requestID != "" {
				txn.AddAttribute("request.id", requestID)
			}

			err := next(c)

			// The error still goes back up to the global error handler;
			// NoticeError only records it. nrpkgerrors keeps the pkg/errors stack.
			if err != nil {
				txn.NoticeError(nrpkgerrors.Wrap(err))
			}

			// Unmatched requests have no route, and static files are served
			// before routing, so only tag what echo matched.
			if route := c.Path(); route != "" {
				txn.AddAttribute("http.route", route)
			}
			if limiter := GetRateLimiter(c); limiter != "" {
				txn.AddAttribute("ratelimit.limiter", limiter)
			}
			txn.AddAttribute("http.status_code", statusOf(c, err))

			return err
		}
	}
}
