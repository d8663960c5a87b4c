package validation

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/touch-of-elegance/internal/errs"
)

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Typical pattern:
//   - Define a request struct with validator tags (`validate:"notblank"`)
//   - Implement Validate() error that calls validation.Struct(req, messages)
//   - Return CustomValidationErrors, first failure first
type Validatable interface {
	Validate() error
}

// CustomValidationError represents a single validation issue for a specific field.
type CustomValidationError struct {
	Field   string
	Tag     string
	Message string
}

// CustomValidationErrors is an ordered slice of validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	if len(c) == 0 {
		return "Validation failed"
	}
	return c[0].Message
}

// WithTag returns the subset of errors raised by the given tag, in order.
func (c CustomValidationErrors) WithTag(tag string) CustomValidationErrors {
	var out CustomValidationErrors
	for _, e := range c {
		if e.Tag == tag {
			out = append(out, e)
		}
	}
	return out
}

// Messages overrides generated error messages. Keys are "<field>.<tag>"
// or just "<field>", using json field names.
type Messages map[string]string

func (m Messages) lookup(field, tag string) (string, bool) {
	if msg, ok := m[field+"."+tag]; ok {
		return msg, true
	}
	msg, ok := m[field]
	return msg, ok
}

// Struct validates v against its `validate` tags.
//
// Failures come back as CustomValidationErrors in struct field order, so
// the first element is always the first failing field. Each field reports
// only its first failing tag.
func Struct(v interface{}, messages Messages) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	out := make(CustomValidationErrors, 0, len(validationErrors))
	for _, fe := range validationErrors {
		msg, ok := messages.lookup(fe.Field(), fe.Tag())
		if !ok {
			msg = defaultMessage(fe)
		}
		out = append(out, CustomValidationError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: msg,
		})
	}
	return out
}

// defaultMessage builds a generic message for tags without an override.
func defaultMessage(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", field)

	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())

	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must not exceed %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must not exceed %s", field, fe.Param())

	case "email", "simpleemail":
		return fmt.Sprintf("%s must be a valid email address", field)

	default:
		if fe.Param() != "" {
			return fmt.Sprintf("%s: %s:%s", field, fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("%s: %s", field, fe.Tag())
	}
}

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
//  1. c.Bind(payload) populates the struct from path params, query and body.
//     A body that cannot be decoded (wrong types, broken syntax) is a
//     BadRequest for the global error handler. A body in a content type the
//     binder does not understand is treated as empty, so the caller still
//     gets the field-level message.
//  2. payload.Validate() applies validation rules. A failure becomes a handled
//     InvalidInput error whose message is the first failing field's message.
//
// NOTE: payload must be a pointer so c.Bind can populate it.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		var echoErr *echo.HTTPError
		if !errors.As(err, &echoErr) || echoErr.Code != http.StatusUnsupportedMediaType {
			return bindError(err)
		}
	}

	if err := payload.Validate(); err != nil {
		return ToHTTPError(err)
	}

	return nil
}

// ToHTTPError converts an error returned by Validate into a handled InvalidInput error.
func ToHTTPError(err error) *errs.HTTPError {
	var custom CustomValidationErrors
	if !errors.As(err, &custom) || len(custom) == 0 {
		return errs.NewInvalidInputError("Validation failed", nil).WithCause(err)
	}

	fieldErrors := make([]errs.FieldError, 0, len(custom))
	for _, e := range custom {
		fieldErrors = append(fieldErrors, errs.FieldError{Field: e.Field, Error: e.Message})
	}

	return errs.NewInvalidInputError(custom[0].Message, fieldErrors)
}

// bindError hides decoder details from the client; the cause keeps them for the logs.
func bindError(err error) *errs.HTTPError {
	return errs.NewBadRequestError("Invalid request body").WithCause(err)
}
