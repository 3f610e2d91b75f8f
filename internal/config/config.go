package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/san-kum/dhkin/internal/kinematics"
	"github.com/san-kum/dhkin/internal/symbolic"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

const (
	UnitRad = "rad"
	UnitDeg = "deg"

	DefaultMode      = "numeric"
	DefaultAngleUnit = UnitRad
)

var ErrInvalidConfig = errors.New("config: invalid robot")

// Param is one DH field as written in YAML: a number or an expression
// such as "q1" or "pi/4".
type Param struct {
	text string
	expr symbolic.Expr
}

// P parses an expression parameter. It panics on malformed input and is
// meant for literals.
func P(text string) Param {
	return Param{text: text, expr: symbolic.MustParse(text)}
}

// Num wraps a numeric parameter.
func Num(v float64) Param {
	return Param{text: strconv.FormatFloat(v, 'g', -1, 64), expr: symbolic.Const(v)}
}

func (p Param) Expr() symbolic.Expr { return p.expr }

func (p Param) String() string {
	if p.text == "" {
		return "0"
	}
	return p.text
}

func (p *Param) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: DH parameter must be a number or expression", node.Line)
	}
	e, err := symbolic.Parse(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	p.text, p.expr = node.Value, e
	return nil
}

func (p Param) MarshalYAML() (interface{}, error) {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: p.String()}, nil
}

type JointConfig struct {
	Theta Param `yaml:"theta"`
	D     Param `yaml:"d"`
	A     Param `yaml:"a"`
	Alpha Param `yaml:"alpha"`
}

type Config struct {
	Name      string             `yaml:"name"`
	Mode      string             `yaml:"mode"`
	AngleUnit string             `yaml:"angle_unit"`
	Joints    []JointConfig      `yaml:"joints"`
	Bindings  map[string]float64 `yaml:"bindings,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:      "planar2r",
		Mode:      DefaultMode,
		AngleUnit: DefaultAngleUnit,
		Joints: []JointConfig{
			{Theta: P("pi/4"), D: Num(0), A: Num(1), Alpha: Num(0)},
			{Theta: P("pi/4"), D: Num(0), A: Num(1), Alpha: Num(0)},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	cfg.Name = ""
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.Name == "" {
		cfg.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the mode, the angle unit, the joint list and the
// bindings. Every problem is reported.
func (c *Config) Validate() error {
	var errs error
	if _, err := kinematics.ParseMode(c.Mode); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("%w: %v", ErrInvalidConfig, err))
	}
	if c.AngleUnit != UnitRad && c.AngleUnit != UnitDeg {
		errs = multierr.Append(errs, fmt.Errorf("%w: angle_unit %q (want rad or deg)", ErrInvalidConfig, c.AngleUnit))
	}
	if len(c.Joints) == 0 {
		errs = multierr.Append(errs, kinematics.ErrEmptyTable)
	}
	for name, v := range c.Bindings {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			errs = multierr.Append(errs, fmt.Errorf("%w: binding %s is not finite", ErrInvalidConfig, name))
		}
	}
	return errs
}

// BuildMode returns the parsed mode, falling back to numeric.
func (c *Config) BuildMode() kinematics.Mode {
	m, err := kinematics.ParseMode(c.Mode)
	if err != nil {
		return kinematics.ModeNumeric
	}
	return m
}

// Rows returns the joint table as expressions with angles in radians.
func (c *Config) Rows() [][]any {
	rows := make([][]any, len(c.Joints))
	for i, j := range c.Joints {
		rows[i] = []any{c.angle(j.Theta.Expr()), j.D.Expr(), j.A.Expr(), c.angle(j.Alpha.Expr())}
	}
	return rows
}

func (c *Config) angle(e symbolic.Expr) symbolic.Expr {
	if c.AngleUnit != UnitDeg {
		return e
	}
	return symbolic.Mul(e, symbolic.Mul(symbolic.Pi(), symbolic.Rational(1, 180)))
}

func (c *Config) SymbolicTable() (kinematics.Table[symbolic.Expr], error) {
	return kinematics.SymbolicRows(c.Rows())
}

// NumericTable substitutes the bindings and converts to floats. Symbols
// left unbound are invalid parameters.
func (c *Config) NumericTable() (kinematics.Table[float64], error) {
	table, err := c.SymbolicTable()
	if err != nil {
		return nil, err
	}
	return kinematics.Bind(table, c.Bindings)
}

// FreeSymbols lists the joint variables and link symbols of the table.
func (c *Config) FreeSymbols() []string {
	table, err := c.SymbolicTable()
	if err != nil {
		return nil
	}
	return kinematics.FreeSymbols(table)
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Joints = append([]JointConfig(nil), c.Joints...)
	if c.Bindings != nil {
		out.Bindings = make(map[string]float64, len(c.Bindings))
		for k, v := range c.Bindings {
			out.Bindings[k] = v
		}
	}
	return &out
}
