// Package validation contains the logic for validating
// request data.
//
// It uses the `validator` library to enforce rules (like
// required fields or email formats) defined in struct tags
// and extracts validation errors into a format the client can
// understand
package validation

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// jsSpace is the set of characters ECMAScript's \s matches. RE2's \s is
// ASCII only, and the contact form has always been checked with the
// ECMAScript definition.
const jsSpace = `\t\n\x0B\f\r \x{00A0}\x{1680}\x{2000}-\x{200A}\x{2028}\x{2029}\x{202F}\x{205F}\x{3000}\x{FEFF}`

// emailRegex is the deliberately simple local@domain.tld shape the
// contact form accepts: no whitespace, exactly one @ between non-empty
// parts, and a dot somewhere after it. It rejects some valid addresses
// and accepts some invalid ones; the boundary is intentional.
var emailRegex = regexp.MustCompile(`^[^` + jsSpace + `@]+@[^` + jsSpace + `@]+\.[^` + jsSpace + `@]+$`)

// IsValidEmail checks whether s has the accepted email shape.
func IsValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator instance.
//
// Besides the built-in tags it knows:
//   - notblank:  string is non-empty after trimming whitespace
//   - simpleemail: string matches IsValidEmail
//
// Field names in errors are the `json` names of the struct fields.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})

		// Registration only fails on empty tags or nil funcs.
		_ = v.RegisterValidation("notblank", validators.NotBlank)
		_ = v.RegisterValidation("simpleemail", func(fl validator.FieldLevel) bool {
			return IsValidEmail(fl.Field().String())
		})

		validate = v
	})
	return validate
}
