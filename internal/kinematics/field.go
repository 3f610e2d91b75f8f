package kinematics

import (
	"math"

	"github.com/san-kum/dhkin/internal/symbolic"
)

// Field is the scalar algebra a transform is built over.
type Field[T any] interface {
	Zero() T
	One() T
	Add(a, b T) T
	Sub(a, b T) T
	Mul(a, b T) T
	Neg(a T) T
	Sin(a T) T
	Cos(a T) T
}

// finiteChecker is implemented by fields whose values can overflow.
type finiteChecker[T any] interface {
	IsFinite(v T) bool
}

type floatField struct{}

func (floatField) Zero() float64            { return 0 }
func (floatField) One() float64             { return 1 }
func (floatField) Add(a, b float64) float64 { return a + b }
func (floatField) Sub(a, b float64) float64 { return a - b }
func (floatField) Mul(a, b float64) float64 { return a * b }
func (floatField) Neg(a float64) float64    { return -a }
func (floatField) Sin(a float64) float64    { return math.Sin(a) }
func (floatField) Cos(a float64) float64    { return math.Cos(a) }
func (floatField) IsFinite(v float64) bool  { return !math.IsNaN(v) && !math.IsInf(v, 0) }

type symbolicField struct{}

func (symbolicField) Zero() symbolic.Expr                  { return symbolic.Expr{} }
func (symbolicField) One() symbolic.Expr                   { return symbolic.Int(1) }
func (symbolicField) Add(a, b symbolic.Expr) symbolic.Expr { return symbolic.Add(a, b) }
func (symbolicField) Sub(a, b symbolic.Expr) symbolic.Expr { return symbolic.Sub(a, b) }
func (symbolicField) Mul(a, b symbolic.Expr) symbolic.Expr { return symbolic.Mul(a, b) }
func (symbolicField) Neg(a symbolic.Expr) symbolic.Expr    { return symbolic.Neg(a) }
func (symbolicField) Sin(a symbolic.Expr) symbolic.Expr    { return symbolic.Sin(a) }
func (symbolicField) Cos(a symbolic.Expr) symbolic.Expr    { return symbolic.Cos(a) }

var (
	// Float is the numeric field.
	Float Field[float64] = floatField{}

	// Symbolic is the closed-form field.
	Symbolic Field[symbolic.Expr] = symbolicField{}
)
