package model

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// GetValidator returns the shared validator instance.
func GetValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// ValidationError reports the first failing field of a request payload.
type ValidationError struct {
	Field string
	Tag   string
}

func (e *ValidationError) Error() string {
	return "field validation for '" + e.Field + "' failed on the '" + e.Tag + "' tag"
}

// FormatValidationError converts validator errors into a *ValidationError.
func FormatValidationError(err error) error {
	if err == nil {
		return nil
	}
	if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
		e := validationErrors[0]
		return &ValidationError{Field: e.Field(), Tag: e.Tag()}
	}
	return err
}
