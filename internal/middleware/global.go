package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/deppfellow/touch-of-elegance/internal/errs"
	"github.com/deppfellow/touch-of-elegance/internal/server"
)

const (
	// ContentSecurityPolicy allows same-origin scripts, inline styles and
	// images from data: and https: sources.
	ContentSecurityPolicy = "default-src 'self'; style-src 'self' 'unsafe-inline'; script-src 'self'; img-src 'self' data: https:"

	// BodyLimit caps request bodies.
	BodyLimit = "100K"
)

// GlobalMiddlewares groups the middleware applied to every request and the
// global error handler. They all read config from *server.Server.
type GlobalMiddlewares struct {
	server *server.Server
}

func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

// Secure sets the security headers: nosniff, frame options, XSS
// protection, referrer policy, HSTS (TLS only) and the CSP.
func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "0",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "SAMEORIGIN",
		HSTSMaxAge:            15552000,
		ReferrerPolicy:        "no-referrer",
		ContentSecurityPolicy: ContentSecurityPolicy,
	})
}

// Gzip compresses responses. /metrics is skipped because the Prometheus
// handler negotiates its own compression.
func (global *GlobalMiddlewares) Gzip() echo.MiddlewareFunc {
	return middleware.GzipWithConfig(middleware.GzipConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/metrics"
		},
	})
}

// CORS allows the origins listed in CORS_ORIGIN ("*" by default).
func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: global.server.Config.Server.CORSAllowedOrigins,
	})
}

// RequestLogger writes one "API" log line per request with the final
// status, picking the level from it: 5xx error, 4xx warn, else info.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogError:     true,
		LogLatency:   true,
		LogHost:      true,
		LogMethod:    true,
		LogURIPath:   true,
		LogUserAgent: true,
		LogRemoteIP:  true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			statusCode := statusOf(c, v.Error)

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("ip", v.RemoteIP).
				Str("user_agent", v.UserAgent).
				Msg("API")

			return nil
		},
	})
}

// Recover turns handler panics into errors for the global error handler.
func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			GetLogger(c).Error().
				Err(err).
				Str("stack", string(stack)).
				Msg("recovered from panic")
			return errors.WithStack(err)
		},
	})
}

// BodyLimit rejects request bodies larger than BodyLimit with 413.
func (global *GlobalMiddlewares) BodyLimit() echo.MiddlewareFunc {
	return middleware.BodyLimit(BodyLimit)
}

// GlobalErrorHandler is the terminal error funnel.
//
// Errors owned by a handler never get here: the handler pipeline renders
// them itself. Everything else is logged with the request logger and
// rendered as
//
//	{ "error": { "message": "...", "status": 500 } }
//
// with a "stack" field in development. Unmatched routes and methods get
// the plain { "error": "Not Found" } body.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	var (
		status   int
		code     string
		message  string
		notFound bool
	)

	var httpErr *errs.HTTPError
	var echoErr *echo.HTTPError

	switch {
	case errors.As(err, &httpErr):
		status = httpErr.Status
		code = httpErr.Code
		message = httpErr.Message

	case errors.As(err, &echoErr):
		status = echoErr.Code
		code = errs.MakeUpperCaseWithUnderscores(http.StatusText(status))

		if status == http.StatusNotFound || status == http.StatusMethodNotAllowed {
			notFound = true
			status = http.StatusNotFound
		}

		if msg, ok := echoErr.Message.(string); ok && msg != "" {
			message = msg
		} else {
			message = http.StatusText(status)
		}

	default:
		status = http.StatusInternalServerError
		code = errs.MakeUpperCaseWithUnderscores(http.StatusText(status))
		message = http.StatusText(status)
	}

	logger := GetLogger(c)

	var event *zerolog.Event
	if status >= http.StatusInternalServerError {
		event = logger.Error().Stack()
	} else {
		event = logger.Warn()
	}
	event.
		Err(err).
		Int("status", status).
		Str("error_code", code).
		Msg(message)

	if c.Response().Committed {
		return
	}

	if notFound {
		writeErr(c, c.JSON(http.StatusNotFound, errs.NotFoundResponse{Error: "Not Found"}))
		return
	}

	body := errs.ErrorBody{
		Message: message,
		Status:  status,
	}
	if global.server.Config.IsDevelopment() {
		body.Stack = stackOf(err)
	}

	if c.Request().Method == http.MethodHead {
		writeErr(c, c.NoContent(status))
		return
	}
	writeErr(c, c.JSON(status, errs.ErrorResponse{Error: body}))
}

// stackOf renders err with its pkg/errors stack trace, adding one at this
// point when err does not carry any.
func stackOf(err error) string {
	type stackTracer interface {
		StackTrace() errors.StackTrace
	}

	var st stackTracer
	if !errors.As(err, &st) {
		err = errors.WithStack(err)
	}
	return strings.TrimSpace(fmt.Sprintf("%+v", err))
}

func writeErr(c echo.Context, err error) {
	if err != nil {
		GetLogger(c).Error().Err(err).Msg("failed to write error response")
	}
}
