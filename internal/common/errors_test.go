package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserError_WrapsCause(t *testing.T) {
	cause := errors.New("no such file")
	err := NewUserError("could not read workbook books.xlsx", cause)

	assert.Equal(t, "could not read workbook books.xlsx: no such file", err.Error())
	assert.True(t, errors.Is(err, cause))

	var userErr *UserError
	require.True(t, errors.As(err, &userErr))
	assert.Equal(t, "could not read workbook books.xlsx", userErr.UserMessage)
}

func TestUserError_WithoutCause(t *testing.T) {
	err := &UserError{UserMessage: "nothing to export"}
	assert.Equal(t, "nothing to export", err.Error())
	assert.Nil(t, errors.Unwrap(err))
}

func TestValidationError_Message(t *testing.T) {
	err := NewValidationError("amount", "must be non-negative and finite", -50.0)
	assert.Equal(t, "invalid amount: must be non-negative and finite (got -50)", err.Error())

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "amount", vErr.Field)
}

func TestMappingError_ListsMissingFields(t *testing.T) {
	err := &MappingError{Missing: []string{"date", "amount"}}
	assert.Equal(t, "could not map required columns: date, amount", err.Error())
}

func TestSentinelsWrapCleanly(t *testing.T) {
	wrapped := fmt.Errorf("forecast.months must be at least 1: %w", ErrInvalidConfig)
	assert.True(t, errors.Is(wrapped, ErrInvalidConfig))
}
