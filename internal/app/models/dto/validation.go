package dto

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// HandleValidationError converts a gin binding error into an ErrorDetail.
// validator.ValidationErrors get a per-field message; anything else is
// reported as a generic invalid-request-format failure.
func HandleValidationError(err error) *ErrorDetail {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return NewErrorDetail(ErrorCodeValidationFailed, "Invalid request format").WithDetails(err.Error())
	}

	messages := make([]string, 0, len(validationErrors))
	var firstField string
	for _, fieldErr := range validationErrors {
		if firstField == "" {
			firstField = fieldErr.Field()
		}
		messages = append(messages, formatFieldError(fieldErr))
	}

	detail := NewErrorDetail(ErrorCodeValidationFailed, "Validation failed").
		WithDetails(strings.Join(messages, "; "))
	if firstField != "" {
		detail = detail.WithField(firstField)
	}
	return detail
}

// formatFieldError creates a human-readable message for one field failure
func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "email":
		return e.Field() + " must be a valid email address"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	default:
		return e.Field() + " is invalid"
	}
}
