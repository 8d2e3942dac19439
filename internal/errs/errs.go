package errs

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrForbidden   = errors.New("forbidden")
	ErrPersistence = errors.New("persistence failure")
)

// FieldError is one violation at one path. Paths use dotted JSON notation,
// e.g. "elements[0].children[2].id" or a plain field name for flat inputs.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Path + ": " + e.Message
}

// ValidationErrors carries the FULL set of violations for one input.
// Callers must return all of them to the client, never just the first.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	msgs := make([]string, 0, len(v))
	for _, f := range v {
		msgs = append(msgs, f.Error())
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// AsValidation unwraps err into ValidationErrors if possible.
func AsValidation(err error) (ValidationErrors, bool) {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

var structValidator = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New()
	// Report violations under the json wire name, not the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// ValidateStruct runs `validate` tags over s and returns every violation.
// A nil return means valid.
func ValidateStruct(s any) ValidationErrors {
	err := structValidator.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ValidationErrors{{Path: "body", Message: err.Error()}}
	}
	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Path: fe.Field(), Message: ruleMessage(fe)})
	}
	return out
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "uuid4", "uuid":
		return "must be a valid identifier"
	case "url":
		return "must be a valid URL"
	default:
		return fmt.Sprintf("failed rule %q", fe.Tag())
	}
}
