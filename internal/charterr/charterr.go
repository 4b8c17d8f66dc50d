// Package charterr defines the errors reported by chart layout, aggregation
// and dataset ingestion.
package charterr

import (
	"errors"
	"fmt"
	"math"
)

// ErrNonFinite indicates a NaN or infinite numeric value.
var ErrNonFinite = errors.New("value is not finite")

// ErrNegative indicates a negative value where only non-negative ones are allowed.
var ErrNegative = errors.New("value is negative")

// InvalidLayoutError reports a non-positive pixel dimension or axis length.
type InvalidLayoutError struct {
	Field string
	Value float64
}

func (e *InvalidLayoutError) Error() string {
	return fmt.Sprintf("invalid layout: %s = %g", e.Field, e.Value)
}

// DegenerateRangeError reports an axis range whose max does not exceed its min.
type DegenerateRangeError struct {
	Min float64
	Max float64
}

func (e *DegenerateRangeError) Error() string {
	return fmt.Sprintf("degenerate range [%g, %g]", e.Min, e.Max)
}

// EmptyDatasetError reports a chart rendered without categories or buckets.
type EmptyDatasetError struct {
	Chart string
}

func (e *EmptyDatasetError) Error() string {
	return fmt.Sprintf("%s: empty dataset", e.Chart)
}

// InvalidInputError reports a malformed value rejected at ingestion.
type InvalidInputError struct {
	Field string
	Value any
	Err   error
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %v", e.Field, e.Value, e.Err)
}

func (e *InvalidInputError) Unwrap() error {
	return e.Err
}

// NewInvalidInput creates a new InvalidInputError.
func NewInvalidInput(field string, value any, err error) *InvalidInputError {
	return &InvalidInputError{
		Field: field,
		Value: value,
		Err:   err,
	}
}

// CheckFinite returns an InvalidInputError naming field when v is NaN or infinite.
func CheckFinite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NewInvalidInput(field, v, ErrNonFinite)
	}
	return nil
}

// CheckNonNegative is CheckFinite that additionally rejects negative values.
func CheckNonNegative(field string, v float64) error {
	if err := CheckFinite(field, v); err != nil {
		return err
	}
	if v < 0 {
		return NewInvalidInput(field, v, ErrNegative)
	}
	return nil
}
