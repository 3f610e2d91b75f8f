package kinematics

import (
	"math"
	"testing"

	"github.com/san-kum/dhkin/internal/symbolic"
)

func BenchmarkBuildNumeric(b *testing.B) {
	table := Table[float64]{
		{Theta: math.Pi / 4, A: 1},
		{Theta: math.Pi / 4, A: 1, Alpha: math.Pi},
		{D: 0.3},
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		BuildNumeric(table)
	}
}

func BenchmarkBuildSymbolic(b *testing.B) {
	s := symbolic.Symbols("q1", "q2", "l1", "l2", "d3")
	zero := symbolic.Int(0)
	table := Table[symbolic.Expr]{
		{Theta: s[0], D: zero, A: s[2], Alpha: zero},
		{Theta: s[1], D: zero, A: s[3], Alpha: symbolic.Pi()},
		{Theta: zero, D: s[4], A: zero, Alpha: zero},
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		BuildSymbolic(table)
	}
}

func TestCheckResultReportsPosition(t *testing.T) {
	m := Identity(Float)
	m[1][2] = math.NaN()
	err := checkResult[float64](floatField{}, m)
	re, ok := err.(*ResultError)
	if !ok {
		t.Fatalf("expected *ResultError, got %T", err)
	}
	if re.Row != 1 || re.Col != 2 {
		t.Errorf("position = [%d][%d], want [1][2]", re.Row, re.Col)
	}
}
