package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateStruct runs struct tag validation and folds field errors into ErrValidation
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		messages := make([]string, 0, len(validationErrors))
		for _, fieldErr := range validationErrors {
			messages = append(messages, fmt.Sprintf("%s: %s", fieldErr.Field(), fieldErr.Tag()))
		}
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(messages, ", "))
	}
	return fmt.Errorf("%w: %v", ErrValidation, err)
}
