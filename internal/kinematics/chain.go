package kinematics

import (
	"github.com/san-kum/dhkin/internal/symbolic"
	"go.uber.org/multierr"
)

var fieldNames = [4]string{"theta", "d", "a", "alpha"}

// Fields returns the joint parameters in (theta, d, a, alpha) order.
func (j Joint[T]) Fields() [4]T {
	return [4]T{j.Theta, j.D, j.A, j.Alpha}
}

// Build composes the end-effector transform of table.
func Build[T any](f Field[T], table Table[T]) (Transform[T], error) {
	frames, err := Frames(f, table)
	if err != nil {
		return Transform[T]{}, err
	}
	return frames[len(frames)-1], nil
}

// Frames returns the cumulative transform after each joint; the last
// entry is the end-effector pose.
func Frames[T any](f Field[T], table Table[T]) ([]Transform[T], error) {
	if len(table) == 0 {
		return nil, ErrEmptyTable
	}

	fc, checked := f.(finiteChecker[T])
	if checked {
		if err := checkInputs(fc, table); err != nil {
			return nil, err
		}
	}

	frames := make([]Transform[T], 0, len(table))
	acc := JointTransform(f, table[0])
	frames = append(frames, acc)
	for _, j := range table[1:] {
		acc = Mul(f, acc, JointTransform(f, j))
		frames = append(frames, acc)
	}

	if checked {
		for _, m := range frames {
			if err := checkResult(fc, m); err != nil {
				return nil, err
			}
		}
	}
	return frames, nil
}

func checkInputs[T any](fc finiteChecker[T], table Table[T]) error {
	var errs error
	for i, j := range table {
		for k, v := range j.Fields() {
			if !fc.IsFinite(v) {
				errs = multierr.Append(errs, &ParameterError{
					Joint: i, Field: fieldNames[k], Value: v, Reason: "not a finite number",
				})
			}
		}
	}
	return errs
}

func checkResult[T any](fc finiteChecker[T], m Transform[T]) error {
	for i := range m {
		for j := range m[i] {
			if !fc.IsFinite(m[i][j]) {
				var v float64
				if f, ok := any(m[i][j]).(float64); ok {
					v = f
				}
				return &ResultError{Row: i, Col: j, Value: v}
			}
		}
	}
	return nil
}

// BuildNumeric is Build over float64.
func BuildNumeric(table Table[float64]) (Transform[float64], error) {
	return Build(Float, table)
}

// BuildSymbolic is Build over closed-form expressions.
func BuildSymbolic(table Table[symbolic.Expr]) (Transform[symbolic.Expr], error) {
	return Build(Symbolic, table)
}
