package symbolic

import (
	"errors"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	q1, l1 := Symbol("q1"), Symbol("l1")

	tests := []struct {
		in   string
		want Expr
	}{
		{"0", Expr{}},
		{"180", Int(180)},
		{"1.5", Rational(3, 2)},
		{"1e-3", Rational(1, 1000)},
		{"pi/2", Mul(Rational(1, 2), Pi())},
		{"-pi/4", Mul(Rational(-1, 4), Pi())},
		{"q1", q1},
		{"l1*cos(q1)", Mul(l1, Cos(q1))},
		{"2*(q1 + l1)", Add(Mul(Int(2), q1), Mul(Int(2), l1))},
		{"q1^2 - -q1", Add(Pow(q1, 2), q1)},
		{"sin(q1)^2 + cos(q1)^2", Add(Pow(Sin(q1), 2), Pow(Cos(q1), 2))},
		{"q1 / 4", Mul(Rational(1, 4), q1)},
		{"PI", Pi()},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.in, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Parse(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	inputs := []string{
		"",
		"q1 +",
		"(q1",
		"q1 / q2",
		"1/0",
		"tan(q1)",
		"q1 ^ x",
		"2 pi",
		"1.2.3",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			if !errors.Is(err, ErrSyntax) {
				t.Errorf("Parse(%q) error = %v, want ErrSyntax", in, err)
			}
			var se *SyntaxError
			if err != nil && !errors.As(err, &se) {
				t.Errorf("Parse(%q) error is not a *SyntaxError", in)
			}
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	q1, q2, l2 := Symbol("q1"), Symbol("q2"), Symbol("l2")
	exprs := []Expr{
		Sub(Mul(l2, Mul(Cos(q1), Cos(q2))), Mul(l2, Mul(Sin(q1), Sin(q2)))),
		Add(Mul(Rational(-3, 7), Pow(q1, 3)), Int(5)),
		Cos(Sub(q1, q2)),
		Mul(Rational(1, 4), Pi()),
		Add(Cos(Int(180)), Neg(Sin(Int(180)))),
		Mul(Const(0.1), q1),
		Add(Const(-2.5e-7), Cos(Mul(Const(0.3), q2))),
	}

	for _, e := range exprs {
		s := e.String()
		back, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q): %v", s, err)
		}
		if !back.Equal(e) {
			t.Errorf("round trip of %q gave %s", s, back)
		}
	}
}

func TestLaTeX(t *testing.T) {
	q1, l1 := Symbol("q1"), Symbol("l1")

	tests := []struct {
		e    Expr
		want string
	}{
		{l1, `l_{1}`},
		{Cos(q1), `\cos\left(q_{1}\right)`},
		{Pow(Sin(q1), 2), `\sin^{2}\left(q_{1}\right)`},
		{Pi(), `\pi`},
		{Expr{}, "0"},
	}

	for _, tt := range tests {
		if got := tt.e.LaTeX(); got != tt.want {
			t.Errorf("LaTeX() = %q, want %q", got, tt.want)
		}
	}

	prod := Mul(Rational(1, 2), Mul(l1, Cos(q1))).LaTeX()
	for _, part := range []string{`\frac{1}{2}`, `l_{1}`, `\cos\left(q_{1}\right)`} {
		if !strings.Contains(prod, part) {
			t.Errorf("LaTeX() = %q, missing %q", prod, part)
		}
	}
}

func TestLatexRewrite(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"-3/4*q1^2+l2", `-\frac{3}{4} q_{1}^{2} + l_{2}`},
		{"cos(q1-q2)^2", `\cos^{2}\left(q_{1} - q_{2}\right)`},
		{"sin(-pi)", `\sin\left(-\pi\right)`},
	}
	for _, tt := range tests {
		if got := latex(tt.in); got != tt.want {
			t.Errorf("latex(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
