package errs

import "strings"

// FieldError represents a field-level validation error.
// Example:
//
//	{ "field": "lastName", "error": "Last name is required" }
type FieldError struct {
	// Field is the JSON name of the offending field.
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// HTTPError is the main custom error type of the API.
//
// Fields:
//   - Code: machine-friendly error code (e.g. "BAD_REQUEST"), logged, not rendered.
//   - Message: human-friendly message sent to the client.
//   - Status: HTTP status code.
//   - Handled: the owning handler renders it in the {success:false} envelope
//     instead of deferring to the global error handler.
//   - Errors: per-field validation errors, logged for debugging.
//   - Err: optional underlying cause.
type HTTPError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Status  int          `json:"status"`
	Handled bool         `json:"-"`
	Errors  []FieldError `json:"errors,omitempty"`

	Err error `json:"-"`
}

// Error makes *HTTPError satisfy the built-in `error` interface.
func (e *HTTPError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is / errors.As.
func (e *HTTPError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *HTTPError with the same code.
// A target with an empty Code matches any *HTTPError.
func (e *HTTPError) Is(target error) bool {
	t, ok := target.(*HTTPError)
	if !ok {
		return false
	}
	return t.Code == "" || t.Code == e.Code
}

// WithMessage returns a *copy* of this HTTPError with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:    e.Code,
		Message: message,
		Status:  e.Status,
		Handled: e.Handled,
		Errors:  e.Errors,
		Err:     e.Err,
	}
}

// WithCause returns a copy of this HTTPError wrapping err.
func (e *HTTPError) WithCause(err error) *HTTPError {
	cp := e.WithMessage(e.Message)
	cp.Err = err
	return cp
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
// Example:
//
//	"Bad Request" -> "BAD_REQUEST"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
