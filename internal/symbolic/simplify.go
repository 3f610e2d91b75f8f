package symbolic

// Simplify applies sin(x)^2 + cos(x)^2 = 1, including inside trig
// arguments. A rewrite is kept only when it lowers the number of terms, so
// the result is never longer than e and is equal to it.
func Simplify(x Expr) Expr {
	repl := make(map[string]Expr)
	for _, n := range x.factorNames() {
		if a, ok := lookupAtom(n); ok {
			if arg := Simplify(a.arg); !arg.Equal(a.arg) {
				repl[n] = trig(a.kind, arg)
			}
		}
	}
	x = x.substitute(repl)

	for {
		next, changed := pythagorean(x)
		if !changed {
			return x
		}
		x = next
	}
}

// pythagorean tries sin^2 -> 1 - cos^2 and cos^2 -> 1 - sin^2 for every
// trig atom whose partner is also present, and returns the shortest result.
func pythagorean(x Expr) (Expr, bool) {
	raw := x.raw()
	present := make(map[string]bool)
	for _, n := range x.factorNames() {
		present[n] = true
	}

	best, bestLen := x, x.Len()
	for _, n := range x.factorNames() {
		a, ok := lookupAtom(n)
		if !ok || !hasSquare(raw, n) {
			continue
		}
		other := kindCos
		if a.kind == kindCos {
			other = kindSin
		}
		partner := trigAtom{kind: other, arg: a.arg}.name()
		if !present[partner] {
			continue
		}

		complement := Sub(Int(1), Pow(fromName(partner), 2))
		cand := rewritePower(x, n, 2, complement)
		if l := cand.Len(); l < bestLen {
			best, bestLen = cand, l
		}
	}
	return best, bestLen < x.Len()
}

func hasSquare(raw, name string) bool {
	for _, p := range factorPowers(raw, name) {
		if p >= 2 {
			return true
		}
	}
	return false
}
