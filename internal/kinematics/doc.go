// Package kinematics builds forward-kinematics transforms from
// Denavit-Hartenberg parameter tables.
//
// The builder is generic over a scalar [Field]:
//
//   - [Float]: float64 entries (numeric mode)
//   - [Symbolic]: closed-form [symbolic.Expr] entries (symbolic mode)
//
// Each joint (theta, d, a, alpha) becomes
//
//	RotZ(theta) · TransZ(d) · TransX(a) · RotX(alpha)
//
// and [Build] multiplies the joint transforms left to right, base first.
//
// # Example
//
//	table := kinematics.Table[float64]{
//	    {Theta: math.Pi / 4, A: 1},
//	    {Theta: math.Pi / 4, A: 1},
//	}
//	h, err := kinematics.BuildNumeric(table)
//
// All functions are pure; nothing here logs, prints or keeps state.
package kinematics
