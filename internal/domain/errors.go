package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// Every ValidationError matches it with errors.Is.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is missing or malformed.
	ErrInvalidID = errors.New("invalid ID")

	// ErrEmptyTitle is returned when a task title is blank.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrEmptyDescription is returned when a task description is blank.
	ErrEmptyDescription = errors.New("description cannot be empty")

	// ErrInvalidDueDate is returned when a due date is missing or cannot be parsed.
	ErrInvalidDueDate = errors.New("invalid due date")

	// ErrInvalidPriority is returned when a priority is not one of low, medium, high.
	ErrInvalidPriority = errors.New("invalid priority")

	// ErrInvalidStatus is returned when a status is not one of pending, in-progress, completed.
	ErrInvalidStatus = errors.New("invalid status")
)

// ValidationError describes a single field that failed validation.
// It matches both ErrValidation and its specific cause with errors.Is.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap exposes both ErrValidation and the specific cause.
func (e *ValidationError) Unwrap() []error {
	if e.Err == nil || e.Err == ErrValidation {
		return []error{ErrValidation}
	}
	return []error{ErrValidation, e.Err}
}
