package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/touch-of-elegance/internal/errs"
)

// MalformedJSONMessage is reported for an application/json body that does not parse.
const MalformedJSONMessage = "Malformed JSON in request body"

// JSONBody rejects requests whose body claims to be JSON but is not
// well-formed, before any route sees them. An empty body passes: it binds
// as an empty object. The body is buffered and restored for the binder.
//
// Must run after BodyLimit so the buffer is bounded.
func JSONBody() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Body == nil || req.Body == http.NoBody || !isJSON(req.Header.Get(echo.HeaderContentType)) {
				return next(c)
			}

			body, err := io.ReadAll(req.Body)
			if err != nil {
				// BodyLimit reports oversized bodies through the reader.
				return err
			}
			_ = req.Body.Close()
			req.Body = io.NopCloser(bytes.NewReader(body))

			if len(bytes.TrimSpace(body)) > 0 && !json.Valid(body) {
				return errs.NewBadRequestError(MalformedJSONMessage)
			}

			return next(c)
		}
	}
}

func isJSON(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == echo.MIMEApplicationJSON
}
