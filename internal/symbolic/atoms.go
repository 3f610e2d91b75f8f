package symbolic

import (
	"sort"
	"strconv"
	"sync"
)

const piName = "pi"

type atomKind uint8

const (
	kindSin atomKind = iota
	kindCos
)

func (k atomKind) String() string {
	if k == kindCos {
		return "cos"
	}
	return "sin"
}

// trigAtom is sin or cos of a canonical argument. The term algebra sees it
// as an opaque factor named after its printed form, e.g. "cos(q1)".
type trigAtom struct {
	kind atomKind
	arg  Expr
}

func (a trigAtom) name() string {
	return a.kind.String() + "(" + a.arg.raw() + ")"
}

// atoms maps factor names back to the trig atoms they stand for.
var atoms sync.Map

func atomOf(kind atomKind, arg Expr) Expr {
	a := trigAtom{kind: kind, arg: arg}
	n := a.name()
	atoms.LoadOrStore(n, a)
	return fromName(n)
}

func lookupAtom(name string) (trigAtom, bool) {
	v, ok := atoms.Load(name)
	if !ok {
		return trigAtom{}, false
	}
	return v.(trigAtom), true
}

// factorRef is one occurrence of a named factor in printed form.
type factorRef struct {
	name string
	pow  int
}

// scanFactors lists the named factors of a printed expression. A sin or
// cos factor is read up to its matching parenthesis.
func scanFactors(s string) []factorRef {
	var out []factorRef
	for i := 0; i < len(s); {
		c := s[i]
		if !isLetter(rune(c)) {
			i++
			continue
		}
		start := i
		for i < len(s) && isIdentByte(s[i]) {
			i++
		}
		name := s[start:i]
		if (name == "sin" || name == "cos") && i < len(s) && s[i] == '(' {
			depth := 0
			for i < len(s) {
				if s[i] == '(' {
					depth++
				} else if s[i] == ')' {
					depth--
					if depth == 0 {
						i++
						break
					}
				}
				i++
			}
			name = s[start:i]
		}

		pow := 1
		if i < len(s) && s[i] == '^' {
			j := i + 1
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			if n, err := strconv.Atoi(s[i+1 : j]); err == nil && n > 0 {
				pow = n
				i = j
			}
		}
		out = append(out, factorRef{name: name, pow: pow})
	}
	return out
}

// factorNames returns the distinct factor names of x in first-seen order.
func (x Expr) factorNames() []string {
	seen := make(map[string]struct{})
	var names []string
	for _, f := range scanFactors(x.raw()) {
		if _, ok := seen[f.name]; ok {
			continue
		}
		seen[f.name] = struct{}{}
		names = append(names, f.name)
	}
	return names
}

// factorPowers returns the distinct powers of name in s, highest first.
func factorPowers(s, name string) []int {
	seen := make(map[int]struct{})
	var pows []int
	for _, f := range scanFactors(s) {
		if f.name != name {
			continue
		}
		if _, ok := seen[f.pow]; !ok {
			seen[f.pow] = struct{}{}
			pows = append(pows, f.pow)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(pows)))
	return pows
}

// termCount counts the top-level summands of a printed expression.
func termCount(s string) int {
	n, depth := 1, 0
	var prev byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ' ':
			continue
		case c == '(':
			depth++
		case c == ')':
			depth--
		case (c == '+' || c == '-') && depth == 0 && prev != 0:
			switch prev {
			case '^', '*', '/', '+', '-', '(':
			default:
				n++
			}
		}
		prev = c
	}
	return n
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func isLetter(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentByte(c byte) bool {
	return isLetter(rune(c)) || isDigit(c)
}
