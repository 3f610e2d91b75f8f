package symbolic

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"unicode"
)

// Parse reads an expression made of numbers, identifiers, pi, the
// operators + - * / ^, parentheses and the functions sin and cos.
// Division and exponents must be constants.
func Parse(input string) (Expr, error) {
	p := &parser{src: input}
	p.next()
	e, err := p.expr()
	if err != nil {
		return Expr{}, err
	}
	if p.tok.kind != tokEOF {
		return Expr{}, p.errorf("unexpected %q", p.tok.text)
	}
	return e, nil
}

// MustParse is like Parse but panics on error. It is meant for literals.
func MustParse(input string) Expr {
	e, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return e
}

type tokKind int

const (
	tokEOF tokKind = iota
	tokNum
	tokIdent
	tokOp
)

type token struct {
	kind tokKind
	text string
	pos  int
}

type parser struct {
	src string
	off int
	tok token
}

func (p *parser) errorf(msg string, args ...any) error {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &SyntaxError{Input: p.src, Pos: p.tok.pos, Message: msg}
}

func (p *parser) next() {
	for p.off < len(p.src) && unicode.IsSpace(rune(p.src[p.off])) {
		p.off++
	}
	start := p.off
	if p.off >= len(p.src) {
		p.tok = token{kind: tokEOF, pos: start}
		return
	}

	c := p.src[p.off]
	switch {
	case isDigit(c) || c == '.':
		p.off++
		for p.off < len(p.src) && (isDigit(p.src[p.off]) || p.src[p.off] == '.') {
			p.off++
		}
		if p.off < len(p.src) && (p.src[p.off] == 'e' || p.src[p.off] == 'E') {
			q := p.off + 1
			if q < len(p.src) && (p.src[q] == '+' || p.src[q] == '-') {
				q++
			}
			if q < len(p.src) && isDigit(p.src[q]) {
				p.off = q
				for p.off < len(p.src) && isDigit(p.src[p.off]) {
					p.off++
				}
			}
		}
		p.tok = token{kind: tokNum, text: p.src[start:p.off], pos: start}
	case isLetter(rune(c)):
		p.off++
		for p.off < len(p.src) && isIdentByte(p.src[p.off]) {
			p.off++
		}
		p.tok = token{kind: tokIdent, text: p.src[start:p.off], pos: start}
	default:
		p.off++
		p.tok = token{kind: tokOp, text: string(c), pos: start}
	}
}

func (p *parser) isOp(op string) bool {
	return p.tok.kind == tokOp && p.tok.text == op
}

// expr := term (('+' | '-') term)*
func (p *parser) expr() (Expr, error) {
	acc, err := p.term()
	if err != nil {
		return Expr{}, err
	}
	for p.isOp("+") || p.isOp("-") {
		op := p.tok.text
		p.next()
		rhs, err := p.term()
		if err != nil {
			return Expr{}, err
		}
		if op == "+" {
			acc = Add(acc, rhs)
		} else {
			acc = Sub(acc, rhs)
		}
	}
	return acc, nil
}

// term := unary (('*' | '/') unary)*
func (p *parser) term() (Expr, error) {
	acc, err := p.unary()
	if err != nil {
		return Expr{}, err
	}
	for p.isOp("*") || p.isOp("/") {
		op := p.tok.text
		p.next()
		rhs, err := p.unary()
		if err != nil {
			return Expr{}, err
		}
		if op == "*" {
			acc = Mul(acc, rhs)
			continue
		}
		r, ok := rhs.Rat()
		if !ok {
			return Expr{}, p.errorf("division by non-constant %s", rhs)
		}
		if r.Sign() == 0 {
			return Expr{}, p.errorf("division by zero")
		}
		acc = Scale(acc, new(big.Rat).Inv(r))
	}
	return acc, nil
}

// unary := ('-' | '+') unary | power
func (p *parser) unary() (Expr, error) {
	if p.isOp("-") {
		p.next()
		e, err := p.unary()
		if err != nil {
			return Expr{}, err
		}
		return Neg(e), nil
	}
	if p.isOp("+") {
		p.next()
		return p.unary()
	}
	return p.power()
}

// power := primary ('^' integer)?
func (p *parser) power() (Expr, error) {
	base, err := p.primary()
	if err != nil {
		return Expr{}, err
	}
	if !p.isOp("^") {
		return base, nil
	}
	p.next()
	if p.tok.kind != tokNum {
		return Expr{}, p.errorf("exponent must be a non-negative integer")
	}
	n, err := strconv.Atoi(p.tok.text)
	if err != nil || n < 0 {
		return Expr{}, p.errorf("exponent must be a non-negative integer")
	}
	p.next()
	return Pow(base, n), nil
}

func (p *parser) primary() (Expr, error) {
	switch p.tok.kind {
	case tokNum:
		r, ok := new(big.Rat).SetString(p.tok.text)
		if !ok {
			return Expr{}, p.errorf("bad number %q", p.tok.text)
		}
		p.next()
		return fromRat(r), nil
	case tokIdent:
		name := p.tok.text
		p.next()
		if p.isOp("(") {
			return p.call(name)
		}
		if strings.EqualFold(name, "pi") {
			return Pi(), nil
		}
		return Symbol(name), nil
	case tokOp:
		if p.isOp("(") {
			p.next()
			e, err := p.expr()
			if err != nil {
				return Expr{}, err
			}
			if !p.isOp(")") {
				return Expr{}, p.errorf("expected )")
			}
			p.next()
			return e, nil
		}
		return Expr{}, p.errorf("unexpected %q", p.tok.text)
	}
	return Expr{}, p.errorf("unexpected end of input")
}

func (p *parser) call(name string) (Expr, error) {
	var fn func(Expr) Expr
	switch name {
	case "sin":
		fn = Sin
	case "cos":
		fn = Cos
	default:
		return Expr{}, p.errorf("unknown function %s", name)
	}
	p.next()
	arg, err := p.expr()
	if err != nil {
		return Expr{}, err
	}
	if !p.isOp(")") {
		return Expr{}, p.errorf("expected )")
	}
	p.next()
	return fn(arg), nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

