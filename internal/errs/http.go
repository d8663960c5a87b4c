package errs

import (
	"net/http"
)

const (
	CodeInvalidInput = "INVALID_INPUT"
	CodeRateLimited  = "RATE_LIMITED"
)

// ErrorBody is the payload of the global error response.
//
// Stack is only filled in development.
type ErrorBody struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
	Stack   string `json:"stack,omitempty"`
}

// ErrorResponse is the body written by the global error handler:
//
//	{ "error": { "message": "...", "status": 500 } }
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// NotFoundResponse is the body written for unmatched routes.
type NotFoundResponse struct {
	Error string `json:"error"`
}

// NewInvalidInputError creates a handled 400 for missing or malformed request fields.
func NewInvalidInputError(message string, fieldErrors []FieldError) *HTTPError {
	return &HTTPError{
		Code:    CodeInvalidInput,
		Message: message,
		Status:  http.StatusBadRequest,
		Handled: true,
		Errors:  fieldErrors,
	}
}

// NewNotFoundError creates a handled 404 for an unknown identifier.
func NewNotFoundError(message string) *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound)),
		Message: message,
		Status:  http.StatusNotFound,
		Handled: true,
	}
}

// NewBadRequestError creates a 400 for an unparseable request (bad JSON, wrong types).
// It is not handled locally; the global error handler renders it.
func NewBadRequestError(message string) *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusBadRequest)),
		Message: message,
		Status:  http.StatusBadRequest,
	}
}

// NewTooManyRequestsError creates a 429 for an exceeded rate-limit window.
func NewTooManyRequestsError(message string) *HTTPError {
	return &HTTPError{
		Code:    CodeRateLimited,
		Message: message,
		Status:  http.StatusTooManyRequests,
	}
}

// NewInternalServerError creates a 500 Internal Server Error HTTPError.
//
// The message is the generic status text, never the real internal error.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
		Message: http.StatusText(http.StatusInternalServerError),
		Status:  http.StatusInternalServerError,
	}
}

// NewHandledInternalError creates a 500 the owning handler reports itself
// with a domain specific message.
func NewHandledInternalError(message string) *HTTPError {
	err := NewInternalServerError()
	err.Message = message
	err.Handled = true
	return err
}
