package schema

import (
	"errors"
	"fmt"
)

var (
	// ErrNoInput is returned when the cleaner receives no input at all.
	ErrNoInput = errors.New("no input rows provided")

	// ErrEmptyInput is returned when a stage needs at least one record and got none.
	ErrEmptyInput = errors.New("no valid records to analyze")

	// ErrUnknownDimension is returned for grouping dimensions outside product, region, month.
	ErrUnknownDimension = errors.New("unknown dimension")

	// ErrQuantityOverflow is returned when a quantity total no longer fits in an int64.
	ErrQuantityOverflow = errors.New("quantity total overflows int64")
)

// RowValidationError describes why a single raw row was rejected.
// It is reported, never fatal.
type RowValidationError struct {
	Line   int          `json:"line"`
	Field  string       `json:"field"`
	Value  string       `json:"value"`
	Reason RejectReason `json:"reason"`
}

func (e RowValidationError) Error() string {
	return fmt.Sprintf("row %d: %s (%s=%q)", e.Line, e.Reason, e.Field, e.Value)
}

// InsufficientDataError is returned when a forecast has fewer than two observations.
type InsufficientDataError struct {
	Observations int `json:"observations"`
	Required     int `json:"required"`
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data for forecast: got %d observations, need at least %d", e.Observations, e.Required)
}

// InvalidHorizonError is returned when a forecast horizon is not positive.
type InvalidHorizonError struct {
	Horizon int `json:"horizon"`
}

func (e *InvalidHorizonError) Error() string {
	return fmt.Sprintf("forecast horizon must be greater than 0 (received %d)", e.Horizon)
}

// InvalidWeightsError is returned when scoring weights are negative or do not sum to 1.
type InvalidWeightsError struct {
	Weights ScoreWeights `json:"weights"`
	Reason  string       `json:"reason"`
}

func (e *InvalidWeightsError) Error() string {
	return fmt.Sprintf("invalid scoring weights (revenue=%.3f, quantity=%.3f, orders=%.3f): %s",
		e.Weights.Revenue, e.Weights.Quantity, e.Weights.Orders, e.Reason)
}
