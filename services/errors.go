package services

import "fmt"

// ValidationError marks client input the service refused: a missing
// required field, an unknown enum value, or an over-length SEO field.
// Handlers surface it as a 400 with the message verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalidf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
