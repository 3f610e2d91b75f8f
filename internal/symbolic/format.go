package symbolic

import (
	"strings"
	"unicode"
)

// String renders e with exact rational coefficients, in a form Parse
// reads back to an equal expression.
func (x Expr) String() string {
	return x.raw()
}

// LaTeX renders e for typesetting; symbol digits become subscripts.
func (x Expr) LaTeX() string {
	return latex(x.raw())
}

func latex(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == ' ':
			i++
		case isLetter(rune(c)):
			start := i
			for i < len(s) && isIdentByte(s[i]) {
				i++
			}
			name := s[start:i]
			if (name == "sin" || name == "cos") && i < len(s) && s[i] == '(' {
				end := matchParen(s, i)
				inner := s[i+1 : end]
				i = end + 1
				sb.WriteString(`\` + name)
				if i < len(s) && s[i] == '^' {
					var pow string
					pow, i = digitsAt(s, i+1)
					sb.WriteString("^{" + pow + "}")
				}
				sb.WriteString(`\left(` + latex(inner) + `\right)`)
				continue
			}
			if name == piName {
				sb.WriteString(`\pi`)
			} else {
				sb.WriteString(latexSymbol(name))
			}
		case isDigit(c):
			var num string
			num, i = digitsAt(s, i)
			if i+1 < len(s) && s[i] == '/' && isDigit(s[i+1]) {
				var den string
				den, i = digitsAt(s, i+1)
				sb.WriteString(`\frac{` + num + "}{" + den + "}")
				continue
			}
			sb.WriteString(num)
		case c == '*':
			sb.WriteString(" ")
			i++
		case c == '^':
			var pow string
			pow, i = digitsAt(s, i+1)
			sb.WriteString("^{" + pow + "}")
		case c == '+' || c == '-':
			out := sb.String()
			if out == "" || strings.HasSuffix(out, `\left(`) || strings.HasSuffix(out, "(") {
				sb.WriteByte(c)
			} else {
				sb.WriteString(" " + string(c) + " ")
			}
			i++
		default:
			sb.WriteByte(c)
			i++
		}
	}
	return sb.String()
}

// matchParen returns the index of the parenthesis closing the one at open.
func matchParen(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return len(s) - 1
}

func digitsAt(s string, i int) (string, int) {
	start := i
	for i < len(s) && (isDigit(s[i]) || s[i] == '.') {
		i++
	}
	return s[start:i], i
}

func latexSymbol(name string) string {
	i := strings.IndexFunc(name, unicode.IsDigit)
	if i <= 0 {
		return name
	}
	return name[:i] + "_{" + name[i:] + "}"
}
