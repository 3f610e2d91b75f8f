// Package symbolic provides the closed-form scalar used by symbolic
// forward kinematics.
//
// An [Expr] is a polynomial from zappem.net/pub/math/algex/terms: a sum
// of products with exact rational coefficients. The factors are named
// symbols, created explicitly with [Symbol], the constant pi, and trig
// atoms. sin(x) and cos(x) enter the polynomial as opaque factors named
// after their argument, such as "cos(q1)", and the package keeps the map
// from name back to argument so they can be evaluated, substituted into
// and simplified.
//
// [Sin] and [Cos] fold multiples of pi/2 exactly and pick one sign for
// the argument, so equal expressions print the same and [Expr.Equal]
// compares the printed canonical form.
//
// # Example
//
//	q1, l1 := symbolic.Symbol("q1"), symbolic.Symbol("l1")
//	x := symbolic.Mul(l1, symbolic.Cos(q1))
//	v, _ := x.Eval(map[string]float64{"q1": 0.5, "l1": 2})
package symbolic
