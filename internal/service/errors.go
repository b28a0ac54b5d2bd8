package service

import (
	"errors"
	"fmt"
)

// ValidationError reports bad user input. Handlers map it to 400 and show
// Message to the user.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: err.Error()}
}

// IsValidation reports whether err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
