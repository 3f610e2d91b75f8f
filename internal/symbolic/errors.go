package symbolic

import (
	"errors"
	"fmt"
)

var (
	// ErrUnboundSymbol indicates evaluation reached a symbol with no value.
	ErrUnboundSymbol = errors.New("symbolic: unbound symbol")

	// ErrNonFinite indicates evaluation was given a NaN or Inf value.
	ErrNonFinite = errors.New("symbolic: non-finite value")

	// ErrSyntax indicates an expression string could not be parsed.
	ErrSyntax = errors.New("symbolic: syntax error")
)

// SyntaxError wraps ErrSyntax with the offending input position.
type SyntaxError struct {
	Input   string
	Pos     int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("symbolic: syntax error at %d in %q: %s", e.Pos, e.Input, e.Message)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}
