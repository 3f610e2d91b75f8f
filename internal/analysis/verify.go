package analysis

import (
	"fmt"

	"github.com/san-kum/dhkin/internal/kinematics"
	"github.com/san-kum/dhkin/internal/symbolic"
)

// Check is the outcome of one verification step.
type Check struct {
	Name   string
	Passed bool
	Detail string
}

// Report collects the checks run against one chain.
type Report struct {
	Joints        int
	Symbols       []string
	Numeric       kinematics.Transform[float64]
	Pose          kinematics.Pose
	RotationError float64
	RoundTripDiff float64
	Checks        []Check
}

// OK reports whether every check passed.
func (r *Report) OK() bool {
	for _, c := range r.Checks {
		if !c.Passed {
			return false
		}
	}
	return true
}

func (r *Report) add(name string, passed bool, format string, args ...any) {
	r.Checks = append(r.Checks, Check{Name: name, Passed: passed, Detail: fmt.Sprintf(format, args...)})
}

// VerifyChain binds env into table, builds the chain both ways and checks
// that every cumulative frame is homogeneous, that splitting the table
// composes to the same result, and that evaluating the closed form
// matches the numeric build within tol.
func VerifyChain(table kinematics.Table[symbolic.Expr], env map[string]float64, tol float64) (*Report, error) {
	numTable, err := kinematics.Bind(table, env)
	if err != nil {
		return nil, err
	}
	frames, err := kinematics.Frames(kinematics.Float, numTable)
	if err != nil {
		return nil, err
	}
	h := frames[len(frames)-1]

	r := &Report{
		Joints:        len(table),
		Symbols:       kinematics.FreeSymbols(table),
		Numeric:       h,
		Pose:          kinematics.PoseOf(h),
		RotationError: kinematics.RotationError(h),
	}

	r.add("bottom row", kinematics.BottomRowExact(h), "%v", h[3])

	worst, worstAt := 0.0, 0
	for i, f := range frames {
		if e := kinematics.RotationError(f); e > worst {
			worst, worstAt = e, i
		}
	}
	homogeneous := true
	for _, f := range frames {
		if !kinematics.IsHomogeneous(f, tol) {
			homogeneous = false
			break
		}
	}
	r.add("homogeneous", homogeneous, "max |RᵀR-I| = %.3g at joint %d", worst, worstAt)

	if len(numTable) > 1 {
		k := len(numTable) / 2
		head, err := kinematics.BuildNumeric(numTable[:k])
		if err != nil {
			return nil, err
		}
		tail, err := kinematics.BuildNumeric(numTable[k:])
		if err != nil {
			return nil, err
		}
		d := kinematics.MaxAbsDiff(kinematics.Mul(kinematics.Float, head, tail), h)
		r.add("composable", d <= tol, "split at %d, max diff %.3g", k, d)
	}

	sym, err := kinematics.BuildSymbolic(table)
	if err != nil {
		return nil, err
	}
	evaluated, err := kinematics.Evaluate(sym, env)
	if err != nil {
		return nil, err
	}
	r.RoundTripDiff = kinematics.MaxAbsDiff(evaluated, h)
	r.add("round trip", r.RoundTripDiff <= tol, "max diff %.3g", r.RoundTripDiff)

	return r, nil
}
