package services

import (
	"errors"
	"fmt"

	"herbalgarden/internal/apperr"

	"github.com/go-playground/validator/v10"
)

// validateStruct runs struct-tag validation and converts failures into a
// field-keyed validation error.
func validateStruct(v *validator.Validate, s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("validate: %w", err)
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return apperr.ValidationFields("Validation failed", errorMessages)
}
