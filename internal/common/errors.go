// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
	"strings"
)

// Common application errors.
var (
	// Store errors.
	ErrIndexOutOfRange = errors.New("index out of range")

	// Forecast errors.
	ErrInvalidHorizon = errors.New("forecast horizon must be at least one month")
	ErrUnknownField   = errors.New("unknown projection field")

	// Import errors.
	ErrNoSheets   = errors.New("no recognizable sheets in workbook")
	ErrEmptyTable = errors.New("table has no data rows")

	// Configuration errors.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ValidationError reports a record or edit that violates a field constraint.
// The offending value never reaches the store.
type ValidationError struct {
	Value      any
	Field      string
	Constraint string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s (got %v)", e.Field, e.Constraint, e.Value)
}

// NewValidationError creates a validation error for a single field.
func NewValidationError(field, constraint string, value any) error {
	return &ValidationError{Field: field, Constraint: constraint, Value: value}
}

// MappingError reports canonical fields that could not be resolved from
// source columns during ingestion. Import is refused as a whole.
type MappingError struct {
	Missing []string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("could not map required columns: %s", strings.Join(e.Missing, ", "))
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
