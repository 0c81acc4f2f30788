package validation

import "unicode/utf8"

// FieldError represents a validation error on a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func tooLong(s string, max int) bool {
	return utf8.RuneCountInString(s) > max
}
