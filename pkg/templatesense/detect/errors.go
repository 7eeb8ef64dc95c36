package detect

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParameter is returned when a detection parameter is out of range.
var ErrInvalidParameter = errors.New("invalid detection parameter")

// ValidationError reports which parameter was rejected and why.
type ValidationError struct {
	Param  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s must be %s, got %v", e.Param, e.Reason, e.Value)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidParameter
}

func validateMinScore(name string, v float64) error {
	if math.IsNaN(v) || v < 0.0 || v > 1.0 {
		return &ValidationError{Param: name, Value: v, Reason: "in range 0.0-1.0"}
	}
	return nil
}
