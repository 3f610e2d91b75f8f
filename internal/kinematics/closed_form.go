package kinematics

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/san-kum/dhkin/internal/symbolic"
)

// Evaluate substitutes env into a symbolic transform and returns its
// numeric value. Every free symbol must be bound.
func Evaluate(t Transform[symbolic.Expr], env map[string]float64) (Transform[float64], error) {
	out, err := MapErr(t, func(e symbolic.Expr) (float64, error) {
		return e.Eval(env)
	})
	if err != nil {
		return Transform[float64]{}, err
	}
	if err := checkResult[float64](floatField{}, out); err != nil {
		return Transform[float64]{}, err
	}
	return out, nil
}

// Substitute replaces bound symbols in every entry.
func Substitute(t Transform[symbolic.Expr], bind map[string]symbolic.Expr) Transform[symbolic.Expr] {
	return Map(t, func(e symbolic.Expr) symbolic.Expr { return e.Subs(bind) })
}

// Simplify applies symbolic.Simplify to every entry.
func Simplify(t Transform[symbolic.Expr]) Transform[symbolic.Expr] {
	return Map(t, symbolic.Simplify)
}

// FreeSymbols lists the symbols appearing anywhere in the table, sorted.
func FreeSymbols(table Table[symbolic.Expr]) []string {
	seen := make(map[string]struct{})
	for _, j := range table {
		for _, v := range j.Fields() {
			for _, n := range v.Symbols() {
				seen[n] = struct{}{}
			}
		}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Bind substitutes constants into a symbolic table and converts it to a
// numeric one. Symbols left unbound are reported as invalid parameters.
func Bind(table Table[symbolic.Expr], env map[string]float64) (Table[float64], error) {
	for name, v := range env {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: binding %s=%v is not finite", ErrInvalidParameter, name, v)
		}
	}
	rows := make([][]any, len(table))
	for i, j := range table {
		row := make([]any, 4)
		for k, v := range j.Fields() {
			row[k] = v.SubsFloat(env)
		}
		rows[i] = row
	}
	return NumericRows(rows)
}

// LaTeX renders a symbolic transform as a bmatrix.
func LaTeX(t Transform[symbolic.Expr]) string {
	var sb strings.Builder
	sb.WriteString(`\begin{bmatrix}` + "\n")
	for i := range t {
		for j := range t[i] {
			if j > 0 {
				sb.WriteString(" & ")
			}
			sb.WriteString(t[i][j].LaTeX())
		}
		if i < 3 {
			sb.WriteString(` \\`)
		}
		sb.WriteString("\n")
	}
	sb.WriteString(`\end{bmatrix}`)
	return sb.String()
}
