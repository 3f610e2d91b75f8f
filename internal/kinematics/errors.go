package kinematics

import (
	"errors"
	"fmt"
)

// Domain errors for chain construction.
var (
	// ErrInvalidParameter indicates a malformed joint tuple: wrong arity,
	// a field type that does not fit the mode, or a non-finite number.
	ErrInvalidParameter = errors.New("kinematics: invalid DH parameter")

	// ErrEmptyTable indicates a parameter table with no joints.
	ErrEmptyTable = errors.New("kinematics: empty DH parameter table")

	// ErrNonFiniteResult indicates a numeric transform entry is NaN or Inf.
	ErrNonFiniteResult = errors.New("kinematics: non-finite transform entry")
)

// ParameterError wraps ErrInvalidParameter with the offending joint.
// Field is empty when the whole tuple is at fault.
type ParameterError struct {
	Joint  int
	Field  string
	Value  any
	Reason string
}

func (e *ParameterError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%v: joint %d: %s", ErrInvalidParameter, e.Joint, e.Reason)
	}
	return fmt.Sprintf("%v: joint %d %s=%v: %s", ErrInvalidParameter, e.Joint, e.Field, e.Value, e.Reason)
}

func (e *ParameterError) Unwrap() error {
	return ErrInvalidParameter
}

// ResultError wraps ErrNonFiniteResult with the entry position.
type ResultError struct {
	Row   int
	Col   int
	Value float64
}

func (e *ResultError) Error() string {
	return fmt.Sprintf("%v: [%d][%d] = %v", ErrNonFiniteResult, e.Row, e.Col, e.Value)
}

func (e *ResultError) Unwrap() error {
	return ErrNonFiniteResult
}
