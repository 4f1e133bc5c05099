package wizard

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition is returned for events that are not allowed at the current step.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrSessionNotFound is returned by session stores for unknown ids.
	ErrSessionNotFound = errors.New("session not found")
)

// ValidationError is a gate failure on user input.
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

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// IsValidation reports whether err is a validation failure, including invalid transitions.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve) || errors.Is(err, ErrInvalidTransition)
}
