// Package services defines the business logic for questions and guesses.
// This file centralizes the service-level error taxonomy so that service
// methods return predictable values and callers (HTTP handlers, the chat
// integration) can translate them into transport-specific responses.
package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates that no question matches the identifier.
	ErrNotFound = errors.New("question not found")

	// ErrAmbiguous indicates that a short identifier matches more than one
	// question.
	ErrAmbiguous = errors.New("ambiguous question id")

	// ErrPinRequired is returned when revealing a PIN-protected question
	// without a PIN.
	ErrPinRequired = errors.New("PIN required (or ask the question creator to reveal)")

	// ErrInvalidPin is returned when the supplied PIN does not match.
	ErrInvalidPin = errors.New("invalid PIN")
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}

// OutOfRangeError reports a guess outside the question's inclusive bounds.
type OutOfRangeError struct {
	Min   float64
	Max   float64
	Value float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("value must be between %v and %v", e.Min, e.Max)
}

// PersistenceError wraps a failure reported by the data store.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string { return "failed to " + e.Op + ": " + e.Err.Error() }

func (e *PersistenceError) Unwrap() error { return e.Err }

func persistence(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}

// Kind names the category of a service error, for logs and metrics labels.
func Kind(err error) string {
	var (
		ve *ValidationError
		oe *OutOfRangeError
		pe *PersistenceError
	)
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrAmbiguous):
		return "ambiguous"
	case errors.Is(err, ErrPinRequired):
		return "pin_required"
	case errors.Is(err, ErrInvalidPin):
		return "invalid_pin"
	case errors.As(err, &ve):
		return "validation"
	case errors.As(err, &oe):
		return "out_of_range"
	case errors.As(err, &pe):
		return "persistence"
	default:
		return "internal"
	}
}
