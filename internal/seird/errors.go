package seird

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidDimension indicates mismatched batch row counts.
	ErrInvalidDimension = errors.New("seird: dimension mismatch between state batches")

	// ErrInvalidStepSize indicates a non-positive dt or tolerance.
	ErrInvalidStepSize = errors.New("seird: step size and tolerances must be positive")

	// ErrInvalidState indicates NaN or Inf in a state vector.
	ErrInvalidState = errors.New("seird: invalid state (NaN or Inf detected)")
)

// SimError wraps an error with the day and simulated time it occurred at.
type SimError struct {
	Day     int
	Time    float64
	Wrapped error
}

func (e *SimError) Error() string {
	return fmt.Sprintf("day %d (t=%.4f): %v", e.Day, e.Time, e.Wrapped)
}

func (e *SimError) Unwrap() error {
	return e.Wrapped
}
