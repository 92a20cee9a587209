package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps JSON field names to user-friendly labels
var FieldLabels = map[string]string{
	"name":    "Name",
	"phone":   "Phone",
	"email":   "Email",
	"service": "Service",
	"message": "Message",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Not a validation error, return generic message
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

// MissingFields lists the fields that failed a presence rule.
func MissingFields(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	var fields []string
	for _, e := range validationErrors {
		switch e.Tag() {
		case "required", "notblank":
			fields = append(fields, e.Field())
		}
	}
	return fields
}

func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())

	switch e.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s: is required", label)
	case "email":
		return fmt.Sprintf("%s: invalid email format", label)
	default:
		return fmt.Sprintf("%s: validation failed (%s)", label, e.Tag())
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return fieldName
}
