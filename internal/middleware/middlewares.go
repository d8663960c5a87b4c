package middleware

import (
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/deppfellow/touch-of-elegance/internal/server"
)

// Middlewares groups every middleware component used by the router.
//
// Each one is built once here with the shared *server.Server and reused
// during route registration.
type Middlewares struct {
	// Global holds middleware applied to every request plus the global error handler.
	Global *GlobalMiddlewares

	// ContextEnhancer attaches the request-scoped logger.
	ContextEnhancer *ContextEnhancer

	// Tracing wraps requests in New Relic transactions when APM is enabled.
	Tracing *TracingMiddleware

	// RateLimit enforces the per-IP request windows on the API routes.
	RateLimit *RateLimitMiddleware

	// Metrics records Prometheus RED metrics.
	Metrics *MetricsMiddleware
}

// NewMiddlewares constructs all middleware components.
//
// When New Relic is not configured nrApp stays nil and the tracing
// middleware degrades into a pass-through.
func NewMiddlewares(s *server.Server) *Middlewares {
	var nrApp *newrelic.Application
	if s.LoggerService != nil {
		nrApp = s.LoggerService.GetApplication()
	}

	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, nrApp),
		RateLimit:       NewRateLimitMiddleware(s),
		Metrics:         NewMetricsMiddleware(),
	}
}
