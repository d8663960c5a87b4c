package middleware

import (
	"math"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/touch-of-elegance/internal/errs"
	"github.com/deppfellow/touch-of-elegance/internal/lib/ratelimit"
	"github.com/deppfellow/touch-of-elegance/internal/server"
)

const (
	HeaderRateLimitLimit     = "RateLimit-Limit"
	HeaderRateLimitRemaining = "RateLimit-Remaining"
	HeaderRateLimitReset     = "RateLimit-Reset"
	HeaderRetryAfter         = "Retry-After"

	APIRateLimitMessage     = "Too many requests from this IP, please try again later."
	ContactRateLimitMessage = "Too many contact form submissions from this IP, please try again later."

	// RateLimiterKey is the echo context key naming the window that rejected the request.
	RateLimiterKey = "rate_limiter"

	limiterAPI     = "api"
	limiterContact = "contact"
)

// RateLimitMiddleware enforces the per-IP request windows.
//
// The API window covers every /api route; the contact window covers
// contact form submissions and is mounted in front of the API one.
// Clients are keyed by c.RealIP(), so the router's IPExtractor decides
// what a client is.
type RateLimitMiddleware struct {
	server  *server.Server
	api     *ratelimit.Window
	contact *ratelimit.Window
}

// NewRateLimitMiddleware builds both windows from config. opts apply to both.
func NewRateLimitMiddleware(s *server.Server, opts ...ratelimit.Option) *RateLimitMiddleware {
	cfg := s.Config.RateLimit
	return &RateLimitMiddleware{
		server:  s,
		api:     ratelimit.NewWindow(cfg.Max, cfg.Window, opts...),
		contact: ratelimit.NewWindow(cfg.ContactMax, cfg.ContactWindow, opts...),
	}
}

// API limits the general API routes.
func (r *RateLimitMiddleware) API() echo.MiddlewareFunc {
	return r.limit(limiterAPI, r.api, APIRateLimitMessage)
}

// Contact limits contact form submissions.
func (r *RateLimitMiddleware) Contact() echo.MiddlewareFunc {
	return r.limit(limiterContact, r.contact, ContactRateLimitMessage)
}

func (r *RateLimitMiddleware) limit(name string, w *ratelimit.Window, message string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			res := w.Hit(c.RealIP())
			resetAfter := seconds(res.ResetAfter(w.Now()))

			// The first limiter in the chain sets the headers, unless a later
			// one rejects the request: then the rejecting window describes it.
			h := c.Response().Header()
			if h.Get(HeaderRateLimitLimit) == "" || !res.Allowed {
				h.Set(HeaderRateLimitLimit, strconv.Itoa(res.Limit))
				h.Set(HeaderRateLimitRemaining, strconv.Itoa(res.Remaining))
				h.Set(HeaderRateLimitReset, resetAfter)
			}

			if res.Allowed {
				return next(c)
			}

			h.Set(HeaderRetryAfter, resetAfter)
			c.Set(RateLimiterKey, name)
			rateLimitRejects.WithLabelValues(name).Inc()
			r.RecordRateLimitHit(name, c.Path())

			GetLogger(c).Warn().
				Str("limiter", name).
				Int("limit", res.Limit).
				Time("reset_at", res.ResetAt).
				Msg("rate limit exceeded")

			return errs.NewTooManyRequestsError(message)
		}
	}
}

// GetRateLimiter returns the name of the window that rejected the request,
// or "" when it was let through.
func GetRateLimiter(c echo.Context) string {
	if limiter, ok := c.Get(RateLimiterKey).(string); ok {
		return limiter
	}
	return ""
}

// RecordRateLimitHit sends a RateLimitHit custom event to New Relic.
func (r *RateLimitMiddleware) RecordRateLimitHit(limiter, endpoint string) {
	r.server.RecordEvent("RateLimitHit", map[string]interface{}{
		"limiter":  limiter,
		"endpoint": endpoint,
	})
}

// seconds rounds d up to whole seconds.
func seconds(d time.Duration) string {
	return strconv.Itoa(int(math.Ceil(d.Seconds())))
}
