package symbolic

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"zappem.net/pub/math/algex/factor"
	"zappem.net/pub/math/algex/terms"
)

var one = terms.NewExp([]factor.Value{factor.D(1, 1)})

var minusOne = terms.NewExp([]factor.Value{factor.D(-1, 1)})

// Expr is an immutable closed-form expression. The zero value is 0.
type Expr struct {
	e *terms.Exp
}

func (x Expr) exp() *terms.Exp {
	if x.e == nil {
		return terms.NewExp()
	}
	return x.e
}

func wrap(e *terms.Exp) Expr {
	return Expr{e: e}
}

func fromRat(r *big.Rat) Expr {
	if r.Sign() == 0 {
		return Expr{}
	}
	return wrap(terms.NewExp([]factor.Value{factor.R(new(big.Rat).Set(r))}))
}

// fromName returns the single factor called name.
func fromName(name string) Expr {
	return wrap(terms.NewExp([]factor.Value{factor.S(name)}))
}

// Symbol returns the free variable name.
func Symbol(name string) Expr {
	return fromName(name)
}

// Symbols returns one free variable per name, in order.
func Symbols(names ...string) []Expr {
	out := make([]Expr, len(names))
	for i, n := range names {
		out[i] = Symbol(n)
	}
	return out
}

// Int returns the integer constant n.
func Int(n int64) Expr {
	if n == 0 {
		return Expr{}
	}
	return wrap(terms.NewExp([]factor.Value{factor.D(n, 1)}))
}

// Rational returns the exact constant p/q. It panics when q is zero.
func Rational(p, q int64) Expr {
	if q == 0 {
		panic("symbolic: zero denominator")
	}
	if p == 0 {
		return Expr{}
	}
	return wrap(terms.NewExp([]factor.Value{factor.D(p, q)}))
}

// Const returns the shortest decimal that reads back as f, as an exact
// rational. It panics on NaN or Inf.
func Const(f float64) Expr {
	return fromRat(ratOf(f))
}

func ratOf(f float64) *big.Rat {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		panic("symbolic: non-finite constant")
	}
	r, ok := new(big.Rat).SetString(strconv.FormatFloat(f, 'g', -1, 64))
	if !ok {
		return new(big.Rat).SetFloat64(f)
	}
	return r
}

// Pi returns the constant pi.
func Pi() Expr {
	return fromName(piName)
}

// Add returns a + b.
func Add(a, b Expr) Expr {
	return wrap(terms.Add(a.exp(), b.exp()))
}

// Sum returns the sum of xs; the empty sum is 0.
func Sum(xs ...Expr) Expr {
	acc := Expr{}
	for _, x := range xs {
		acc = Add(acc, x)
	}
	return acc
}

// Neg returns -a.
func Neg(a Expr) Expr {
	return wrap(terms.Mul(minusOne, a.exp()))
}

// Sub returns a - b.
func Sub(a, b Expr) Expr {
	return Add(a, Neg(b))
}

// Mul returns a * b, distributed into canonical form.
func Mul(a, b Expr) Expr {
	return wrap(terms.Mul(a.exp(), b.exp()))
}

// Pow returns a raised to the non-negative integer n.
func Pow(a Expr, n int) Expr {
	acc := wrap(one)
	for i := 0; i < n; i++ {
		acc = Mul(acc, a)
	}
	return acc
}

// Scale returns r * a.
func Scale(a Expr, r *big.Rat) Expr {
	return Mul(fromRat(r), a)
}

// raw is the canonical text of e as the term algebra prints it.
func (x Expr) raw() string {
	s := strings.TrimSpace(x.exp().String())
	if s == "" {
		return "0"
	}
	return s
}

// IsZero reports whether e is identically 0.
func (x Expr) IsZero() bool {
	r, ok := x.Rat()
	return ok && r.Sign() == 0
}

// Rat returns the value of e when it is a rational constant.
func (x Expr) Rat() (*big.Rat, bool) {
	s := x.raw()
	for len(s) > 1 && s[0] == '(' && s[len(s)-1] == ')' {
		s = s[1 : len(s)-1]
	}
	if strings.IndexFunc(s, isLetter) >= 0 {
		return nil, false
	}
	return new(big.Rat).SetString(s)
}

// IsConst reports whether e contains no free symbols.
func (x Expr) IsConst() bool {
	return len(x.Symbols()) == 0
}

// Equal reports whether e and o are the same canonical expression.
func (x Expr) Equal(o Expr) bool {
	return x.raw() == o.raw()
}

// Len returns the number of terms in the canonical sum.
func (x Expr) Len() int {
	if x.IsZero() {
		return 0
	}
	return termCount(x.raw())
}

// substitute replaces the named factors of e simultaneously. Keys are
// symbol or atom names; values must not mention each other's keys.
func (x Expr) substitute(repl map[string]Expr) Expr {
	if len(repl) == 0 {
		return x
	}
	e := x.exp()
	names := sortedKeys(repl)

	// Park every key on a placeholder first so a value that mentions
	// another key is not rewritten twice.
	holders := make([]string, len(names))
	for i, n := range names {
		holders[i] = placeholder(i)
		e = replaceFactor(e, n, fromName(holders[i]).exp())
	}
	for i, n := range names {
		e = replaceFactor(e, holders[i], repl[n].exp())
	}
	return wrap(e)
}

func placeholder(i int) string {
	return "__subst" + strconv.Itoa(i) + "__"
}

// maxRewrites bounds the fixed-point loop in replaceFactor.
const maxRewrites = 32

// replaceFactor rewrites every power of the factor name in e, highest
// power first, until name no longer appears.
func replaceFactor(e *terms.Exp, name string, v *terms.Exp) *terms.Exp {
	for i := 0; i < maxRewrites; i++ {
		pows := factorPowers(e.String(), name)
		if len(pows) == 0 {
			return e
		}
		for _, p := range pows {
			e = e.Substitute([]factor.Value{factor.Sp(name, p)}, Pow(wrap(v), p).exp())
		}
	}
	return e
}

// rewritePower replaces name^p by v wherever it divides a term.
func rewritePower(e Expr, name string, p int, v Expr) Expr {
	return wrap(e.exp().Substitute([]factor.Value{factor.Sp(name, p)}, v.exp()))
}
