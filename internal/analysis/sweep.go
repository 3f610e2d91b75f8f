package analysis

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/dhkin/internal/kinematics"
	"github.com/san-kum/dhkin/internal/symbolic"
	"golang.org/x/sync/errgroup"
)

const minChunk = 16

// SweepSpec varies Var linearly from From to To over Samples points.
// Workers bounds the fan-out; zero means GOMAXPROCS.
type SweepSpec struct {
	Var     string
	From    float64
	To      float64
	Samples int
	Workers int
}

// Sample is the chain evaluated at one value of the swept variable.
type Sample struct {
	Value     float64
	Position  mgl64.Vec3
	Transform kinematics.Transform[float64]
}

func (s SweepSpec) validate(table kinematics.Table[symbolic.Expr]) error {
	if s.Samples < 1 {
		return fmt.Errorf("sweep: samples must be positive, got %d", s.Samples)
	}
	for _, name := range kinematics.FreeSymbols(table) {
		if name == s.Var {
			return nil
		}
	}
	return fmt.Errorf("sweep: %q is not a variable of the table", s.Var)
}

func (s SweepSpec) value(i int) float64 {
	if s.Samples == 1 {
		return s.From
	}
	return s.From + (s.To-s.From)*float64(i)/float64(s.Samples-1)
}

// Sweep holds every symbol except spec.Var at its env value and returns
// the end-effector pose at each sample, in order. Samples are split into
// contiguous chunks evaluated concurrently.
func Sweep(ctx context.Context, table kinematics.Table[symbolic.Expr], env map[string]float64, spec SweepSpec) ([]Sample, error) {
	if err := spec.validate(table); err != nil {
		return nil, err
	}

	fixed := make(map[string]symbolic.Expr, len(env))
	for k, v := range env {
		if k == spec.Var {
			continue
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: binding %s=%v is not finite", kinematics.ErrInvalidParameter, k, v)
		}
		fixed[k] = symbolic.Const(v)
	}
	partial := make(kinematics.Table[symbolic.Expr], len(table))
	for i, j := range table {
		partial[i] = kinematics.Joint[symbolic.Expr]{
			Theta: j.Theta.Subs(fixed),
			D:     j.D.Subs(fixed),
			A:     j.A.Subs(fixed),
			Alpha: j.Alpha.Subs(fixed),
		}
	}

	workers := spec.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if n := spec.Samples / minChunk; n < workers {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}
	chunkSize := (spec.Samples + workers - 1) / workers

	out := make([]Sample, spec.Samples)
	g, ctx := errgroup.WithContext(ctx)
	for start := 0; start < spec.Samples; start += chunkSize {
		end := start + chunkSize
		if end > spec.Samples {
			end = spec.Samples
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				v := spec.value(i)
				numTable, err := kinematics.Bind(partial, map[string]float64{spec.Var: v})
				if err != nil {
					return fmt.Errorf("sample %d (%s=%g): %w", i, spec.Var, v, err)
				}
				h, err := kinematics.BuildNumeric(numTable)
				if err != nil {
					return fmt.Errorf("sample %d (%s=%g): %w", i, spec.Var, v, err)
				}
				out[i] = Sample{Value: v, Position: kinematics.PoseOf(h).Position, Transform: h}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Axis returns one coordinate of every sample position.
func Axis(samples []Sample, axis int) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.Position[axis]
	}
	return out
}
