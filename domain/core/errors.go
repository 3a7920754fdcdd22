package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Degenerate statistical inputs
	ErrEmptySample      = errors.New("empty sample")
	ErrZeroVariance     = errors.New("zero variance in sample")
	ErrDegenerateTable  = errors.New("degenerate contingency table")
	ErrInsufficientData = errors.New("insufficient data for analysis")

	// Configuration errors
	ErrUnsupportedAdjustment = errors.New("unsupported p-value adjustment method")
	ErrUnknownStrategy       = errors.New("unknown statistical strategy")

	// Lookup errors
	ErrFieldNotFound    = errors.New("field not found")
	ErrFieldNotAnalyzed = errors.New("field was not analyzed")
)

// NewDegenerateInputError annotates a degenerate-input error with the offending field
func NewDegenerateInputError(field string, err error) error {
	return fmt.Errorf("field %q: %w", field, err)
}

// IsDegenerateInput reports whether err stems from a degenerate statistical input
func IsDegenerateInput(err error) bool {
	return errors.Is(err, ErrEmptySample) ||
		errors.Is(err, ErrZeroVariance) ||
		errors.Is(err, ErrDegenerateTable) ||
		errors.Is(err, ErrInsufficientData)
}
