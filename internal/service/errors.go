// Package service provides business logic for the application.
package service

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by a service matches exactly one of
// these via errors.Is, so callers can translate without knowing the
// specific cause.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrStorage      = errors.New("storage failure")
)

// Service errors.
var (
	ErrUserNotFound       = fmt.Errorf("user %w", ErrNotFound)
	ErrPantryNotFound     = fmt.Errorf("pantry %w", ErrNotFound)
	ErrRecipeNotFound     = fmt.Errorf("recipe %w", ErrNotFound)
	ErrIngredientNotFound = fmt.Errorf("ingredient %w", ErrNotFound)

	ErrEmailTaken = fmt.Errorf("%w: email already registered", ErrConflict)

	ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
)

// ValidationError reports a malformed input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Unwrap lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// storageErr marks err as a persistence failure while keeping the cause.
func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}
