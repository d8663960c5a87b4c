package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// RequestIDHeader is the header carrying the correlation id, both on the
	// way in (from a proxy or the site's own scripts) and on the way out.
	RequestIDHeader = "X-Request-ID"

	// RequestIDKey is the echo context key holding the id.
	RequestIDKey = "request_id"

	// maxRequestIDLength bounds ids accepted from the client.
	maxRequestIDLength = 128
)

// RequestID returns a middleware that gives every request a correlation id.
//
// Behavior:
//   - An X-Request-ID sent upstream is reused when it is a short printable token.
//   - Otherwise a new UUID is generated.
//   - The id is stored on the echo context and echoed in the response header.
//
// The id ends up in every log line and in the New Relic transaction, so a
// contact form complaint can be traced back to one request.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Take the id from the incoming header, if it looks sane.
			requestID := c.Request().Header.Get(RequestIDHeader)
			if !validRequestID(requestID) {
				requestID = uuid.New().String()
			}

			// Store it so the context enhancer and the tracing middleware can read it.
			c.Set(RequestIDKey, requestID)

			// Echo it back so the client can quote it when something goes wrong.
			c.Response().Header().Set(RequestIDHeader, requestID)

			return next(c)
		}
	}
}

// validRequestID rejects ids that would end up garbling log lines.
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		// Printable ASCII only, space excluded.
		if id[i] <= ' ' || id[i] > '~' {
			return false
		}
	}
	return true
}

// GetRequestID retrieves the request ID from the echo context.
//
// Returns an empty string if RequestID did not run.
func GetRequestID(c echo.Context) string {
	if requestID, ok := c.Get(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}
