// Package validation is the form layer's check before anything is
// submitted. Rules live in `validate` struct tags; `label` names the field in
// messages and `msg` overrides the message for any rule other than required.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var phonePattern = regexp.MustCompile(`^[0-9()\-\s+]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if l := f.Tag.Get("label"); l != "" {
			return l
		}
		return f.Name
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return v
}

// Error reports the first failing field.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string { return e.Message }

// Struct validates s and returns *Error for the first failing field.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validate: %w", err)
	}
	fe := verrs[0]
	return &Error{Field: fe.Field(), Message: message(s, fe)}
}

func message(s any, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " required"
	case "email":
		return "Invalid email"
	}
	if msg := customMessage(s, fe.StructNamespace()); msg != "" {
		return msg
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}

// customMessage walks the struct namespace ("Form.Embedded.Field") to find
// the msg tag of the failing field.
func customMessage(s any, namespace string) string {
	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	parts := strings.Split(namespace, ".")
	if len(parts) < 2 {
		return ""
	}
	var field reflect.StructField
	for _, name := range parts[1:] {
		if t.Kind() != reflect.Struct {
			return ""
		}
		f, ok := t.FieldByName(name)
		if !ok {
			return ""
		}
		field = f
		t = f.Type
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
	}
	return field.Tag.Get("msg")
}
