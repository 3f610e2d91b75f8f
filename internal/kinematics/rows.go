package kinematics

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/dhkin/internal/symbolic"
	"go.uber.org/multierr"
)

// Mode selects the scalar field a dynamic table is built over.
type Mode int

const (
	ModeNumeric Mode = iota
	ModeSymbolic
)

func (m Mode) String() string {
	switch m {
	case ModeNumeric:
		return "numeric"
	case ModeSymbolic:
		return "symbolic"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode accepts "numeric" or "symbolic".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "numeric", "num":
		return ModeNumeric, nil
	case "symbolic", "sym":
		return ModeSymbolic, nil
	}
	return 0, fmt.Errorf("unknown mode: %s (want numeric or symbolic)", s)
}

// Result carries the transform of whichever mode was built.
type Result struct {
	Mode     Mode
	Numeric  Transform[float64]
	Symbolic Transform[symbolic.Expr]
}

// Cells renders every entry as text.
func (r Result) Cells() [4][4]string {
	if r.Mode == ModeSymbolic {
		return Map(r.Symbolic, symbolic.Expr.String)
	}
	return Map(r.Numeric, func(v float64) string {
		return fmt.Sprintf("%.6g", v)
	})
}

// BuildRows validates untyped rows of (theta, d, a, alpha) and builds them
// in the given mode. Every malformed field is reported.
func BuildRows(rows [][]any, mode Mode) (Result, error) {
	switch mode {
	case ModeNumeric:
		table, err := NumericRows(rows)
		if err != nil {
			return Result{}, err
		}
		h, err := BuildNumeric(table)
		if err != nil {
			return Result{}, err
		}
		return Result{Mode: mode, Numeric: h}, nil
	case ModeSymbolic:
		table, err := SymbolicRows(rows)
		if err != nil {
			return Result{}, err
		}
		h, err := BuildSymbolic(table)
		if err != nil {
			return Result{}, err
		}
		return Result{Mode: mode, Symbolic: h}, nil
	}
	return Result{}, fmt.Errorf("unknown mode: %v", mode)
}

// NumericRows converts rows to a float table. Symbols are rejected.
func NumericRows(rows [][]any) (Table[float64], error) {
	return convertRows(rows, toFloat)
}

// SymbolicRows converts rows to an expression table.
func SymbolicRows(rows [][]any) (Table[symbolic.Expr], error) {
	return convertRows(rows, toExpr)
}

func convertRows[T any](rows [][]any, conv func(any) (T, string)) (Table[T], error) {
	if len(rows) == 0 {
		return nil, ErrEmptyTable
	}

	var errs error
	table := make(Table[T], len(rows))
	for i, row := range rows {
		if len(row) != 4 {
			errs = multierr.Append(errs, &ParameterError{
				Joint: i, Reason: fmt.Sprintf("want 4 fields (theta, d, a, alpha), got %d", len(row)),
			})
			continue
		}
		var vals [4]T
		for k, raw := range row {
			v, reason := conv(raw)
			if reason != "" {
				errs = multierr.Append(errs, &ParameterError{
					Joint: i, Field: fieldNames[k], Value: raw, Reason: reason,
				})
				continue
			}
			vals[k] = v
		}
		table[i] = Joint[T]{Theta: vals[0], D: vals[1], A: vals[2], Alpha: vals[3]}
	}
	if errs != nil {
		return nil, errs
	}
	return table, nil
}

// toFloat returns a non-empty reason when v cannot be a finite number.
func toFloat(v any) (float64, string) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int8:
		f = float64(x)
	case int16:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case uint:
		f = float64(x)
	case uint8:
		f = float64(x)
	case uint16:
		f = float64(x)
	case uint32:
		f = float64(x)
	case uint64:
		f = float64(x)
	case symbolic.Expr:
		val, ok := x.Float()
		if !ok {
			return 0, fmt.Sprintf("symbolic value in numeric mode (free symbols %v)", x.Symbols())
		}
		f = val
	case string:
		e, err := symbolic.Parse(x)
		if err != nil {
			return 0, err.Error()
		}
		return toFloat(e)
	default:
		return 0, fmt.Sprintf("unsupported type %T", v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, "not a finite number"
	}
	return f, ""
}

func toExpr(v any) (symbolic.Expr, string) {
	switch x := v.(type) {
	case symbolic.Expr:
		return x, ""
	case string:
		e, err := symbolic.Parse(x)
		if err != nil {
			return symbolic.Expr{}, err.Error()
		}
		return e, ""
	}
	f, reason := toFloat(v)
	if reason != "" {
		return symbolic.Expr{}, reason
	}
	return symbolic.Const(f), ""
}
