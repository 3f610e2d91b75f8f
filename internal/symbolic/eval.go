package symbolic

import (
	"fmt"
	"math"
	"sort"
)

// Symbols returns the sorted names of the free symbols in e, including
// those inside trig arguments.
func (x Expr) Symbols() []string {
	seen := make(map[string]struct{})
	x.collectSymbols(seen)
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (x Expr) collectSymbols(seen map[string]struct{}) {
	for _, n := range x.factorNames() {
		if n == piName {
			continue
		}
		if a, ok := lookupAtom(n); ok {
			a.arg.collectSymbols(seen)
			continue
		}
		seen[n] = struct{}{}
	}
}

// Eval evaluates e with the given symbol values.
func (x Expr) Eval(env map[string]float64) (float64, error) {
	names := x.factorNames()
	repl := make(map[string]Expr, len(names))
	for _, n := range names {
		v, err := factorValue(n, env)
		if err != nil {
			return 0, err
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%w: %s = %v", ErrNonFinite, n, v)
		}
		repl[n] = Const(v)
	}

	r, ok := x.substitute(repl).Rat()
	if !ok {
		return 0, fmt.Errorf("symbolic: cannot reduce %s to a number", x)
	}
	f, _ := r.Float64()
	return f, nil
}

func factorValue(name string, env map[string]float64) (float64, error) {
	if name == piName {
		return math.Pi, nil
	}
	if a, ok := lookupAtom(name); ok {
		v, err := a.arg.Eval(env)
		if err != nil {
			return 0, err
		}
		if a.kind == kindSin {
			return math.Sin(v), nil
		}
		return math.Cos(v), nil
	}
	v, ok := env[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnboundSymbol, name)
	}
	return v, nil
}

// Float returns the numeric value of a constant expression.
func (x Expr) Float() (float64, bool) {
	v, err := x.Eval(nil)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Subs replaces symbols by expressions, all at once, and re-canonicalises
// the result. Symbols missing from bind are left free.
func (x Expr) Subs(bind map[string]Expr) Expr {
	if len(bind) == 0 {
		return x
	}
	repl := make(map[string]Expr)
	for _, n := range x.factorNames() {
		if a, ok := lookupAtom(n); ok {
			if arg := a.arg.Subs(bind); !arg.Equal(a.arg) {
				repl[n] = trig(a.kind, arg)
			}
			continue
		}
		if v, ok := bind[n]; ok && n != piName {
			repl[n] = v
		}
	}
	return x.substitute(repl)
}

// SubsFloat substitutes exact constants for the bound symbols.
func (x Expr) SubsFloat(env map[string]float64) Expr {
	bind := make(map[string]Expr, len(env))
	for k, v := range env {
		bind[k] = Const(v)
	}
	return x.Subs(bind)
}
