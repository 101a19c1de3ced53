package core

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is the sentinel matched by every [InvalidParameterError].
var ErrInvalidParameter = errors.New("invalid parameter")

// InvalidParameterError reports a parameter that violates its constraint.
// Values are never clamped or substituted; the caller has to supply a valid one.
type InvalidParameterError struct {
	Param      string
	Value      float64
	Constraint string
}

// InvalidParameter returns an error describing which parameter failed which constraint.
func InvalidParameter(param string, value float64, constraint string) error {
	return &InvalidParameterError{Param: param, Value: value, Constraint: constraint}
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("%s must be %s: %g", e.Param, e.Constraint, e.Value)
}

// Is makes errors.Is(err, ErrInvalidParameter) hold for wrapped errors.
func (e *InvalidParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}
