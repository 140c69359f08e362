package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Schema errors
	ErrMissingColumn  = errors.New("required column missing")
	ErrMalformedValue = errors.New("malformed numeric value")
	ErrRateOutOfRange = errors.New("rate outside [0,1]")

	// Condition errors
	ErrUnknownCondition = errors.New("unknown condition label")
	ErrMissingCondition = errors.New("condition absent from table")

	// Statistics errors
	ErrInsufficientData = errors.New("insufficient data for analysis")
	ErrZeroVariance     = errors.New("zero variance in both groups")
)

// Error constructors with context
func NewMissingColumnError(column string) error {
	return fmt.Errorf("%w: %s", ErrMissingColumn, column)
}

func NewMalformedValueError(column string, row int, raw string) error {
	return fmt.Errorf("%w: column %q row %d value %q", ErrMalformedValue, column, row, raw)
}

func NewRateOutOfRangeError(column string, row int, value float64) error {
	return fmt.Errorf("%w: column %q row %d value %g", ErrRateOutOfRange, column, row, value)
}

func NewInsufficientDataError(context string, n int) error {
	return fmt.Errorf("%w: %s has %d observations, need at least 2", ErrInsufficientData, context, n)
}

// Error checking helpers
func IsSchemaError(err error) bool {
	return errors.Is(err, ErrMissingColumn) ||
		errors.Is(err, ErrMalformedValue) ||
		errors.Is(err, ErrRateOutOfRange) ||
		errors.Is(err, ErrUnknownCondition)
}

func IsInsufficientDataError(err error) bool {
	return errors.Is(err, ErrInsufficientData) ||
		errors.Is(err, ErrZeroVariance) ||
		errors.Is(err, ErrMissingCondition)
}
