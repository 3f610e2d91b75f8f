package symbolic

import (
	"math/big"
	"strings"
)

// Sin returns sin(x). Multiples of pi/2 in x are folded out exactly.
func Sin(x Expr) Expr {
	return trig(kindSin, x)
}

// Cos returns cos(x). Multiples of pi/2 in x are folded out exactly.
func Cos(x Expr) Expr {
	return trig(kindCos, x)
}

func trig(kind atomKind, x Expr) Expr {
	k, rest, ok := splitPi(x)
	if !ok {
		return trigBase(kind, x)
	}
	quarter := new(big.Rat).Mul(k, big.NewRat(2, 1))
	if !quarter.IsInt() {
		return trigBase(kind, x)
	}

	// sin(r + n*pi/2) and cos(r + n*pi/2) by the angle-sum identities.
	s, c := quarterTurn(quarter.Num())
	sr, cr := trigBase(kindSin, rest), trigBase(kindCos, rest)
	if kind == kindSin {
		return Add(Mul(sr, Int(c)), Mul(cr, Int(s)))
	}
	return Sub(Mul(cr, Int(c)), Mul(sr, Int(s)))
}

// splitPi writes x as k*pi + rest when pi appears only linearly at the top
// level. ok is false when there is no such pi term.
func splitPi(x Expr) (k *big.Rat, rest Expr, ok bool) {
	if len(factorPowers(x.raw(), piName)) == 0 {
		return nil, x, false
	}
	rest = x.substitute(map[string]Expr{piName: {}})
	diff := Sub(x, rest)
	k, ok = diff.substitute(map[string]Expr{piName: Int(1)}).Rat()
	if !ok || k.Sign() == 0 || !Mul(fromRat(k), Pi()).Equal(diff) {
		return nil, x, false
	}
	return k, rest, true
}

// trigBase handles the zero argument and sign parity, then wraps x in an atom.
func trigBase(kind atomKind, x Expr) Expr {
	if x.IsZero() {
		if kind == kindSin {
			return Expr{}
		}
		return Int(1)
	}
	if neg := Neg(x); preferNeg(x, neg) {
		if kind == kindSin {
			return Neg(atomOf(kindSin, neg))
		}
		return atomOf(kindCos, neg)
	}
	return atomOf(kind, x)
}

// preferNeg picks the representative of {x, -x} used inside an atom: the
// one without a leading minus, then the lexically smaller.
func preferNeg(x, neg Expr) bool {
	xs, ns := x.raw(), neg.raw()
	xm, nm := strings.HasPrefix(xs, "-"), strings.HasPrefix(ns, "-")
	if xm != nm {
		return xm
	}
	return ns < xs
}

// quarterTurn returns sin and cos of n*pi/2.
func quarterTurn(n *big.Int) (sin, cos int64) {
	m := new(big.Int).Mod(n, big.NewInt(4)).Int64()
	switch m {
	case 0:
		return 0, 1
	case 1:
		return 1, 0
	case 2:
		return 0, -1
	default:
		return -1, 0
	}
}
