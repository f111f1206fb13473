package utils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	return v
}

// ValidateStruct runs validator tags over a request payload and maps
// failures to field errors the response envelope understands.
func ValidateStruct(payload interface{}) []FieldError {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "payload", Message: err.Error()}}
	}

	fieldErrors := make([]FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fieldErrors = append(fieldErrors, FieldError{
			Field:   lowerFirst(fe.Field()),
			Message: validationMessage(fe),
		})
	}
	return fieldErrors
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", lowerFirst(fe.Field()))
	case "email":
		return "Invalid email format"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", lowerFirst(fe.Field()), fe.Param())
	case "max":
		return fmt.Sprintf("%s must not exceed %s characters", lowerFirst(fe.Field()), fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", lowerFirst(fe.Field()))
	case "uuid":
		return fmt.Sprintf("%s must be a valid UUID", lowerFirst(fe.Field()))
	default:
		return fmt.Sprintf("%s failed validation (%s)", lowerFirst(fe.Field()), fe.Tag())
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
