package experiment

import (
	"context"
	"time"

	"github.com/san-kum/dhkin/internal/config"
	"github.com/san-kum/dhkin/internal/kinematics"
	"github.com/san-kum/dhkin/internal/storage"
	"go.uber.org/zap"
)

// Options adjust a single build.
type Options struct {
	// Mode overrides the robot's configured mode when non-empty.
	Mode     string
	Simplify bool
}

type Experiment struct {
	cfg    *config.Config
	opts   Options
	logger *zap.SugaredLogger
}

// Result is one built chain plus the numbers needed to save it.
type Result struct {
	kinematics.Result
	Frames  []kinematics.Transform[float64]
	Pose    kinematics.Pose
	Symbols []string
	Elapsed time.Duration
}

func New(cfg *config.Config, opts Options, logger *zap.SugaredLogger) *Experiment {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Experiment{cfg: cfg, opts: opts, logger: logger}
}

func (e *Experiment) mode() (kinematics.Mode, error) {
	if e.opts.Mode != "" {
		return kinematics.ParseMode(e.opts.Mode)
	}
	return e.cfg.BuildMode(), nil
}

func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	mode, err := e.mode()
	if err != nil {
		return nil, err
	}

	e.logger.Debugw("building chain", "robot", e.cfg.Name, "mode", mode, "joints", len(e.cfg.Joints), "angle_unit", e.cfg.AngleUnit)
	start := time.Now()

	res := &Result{Symbols: e.cfg.FreeSymbols()}
	res.Mode = mode
	switch mode {
	case kinematics.ModeSymbolic:
		table, err := e.cfg.SymbolicTable()
		if err != nil {
			return nil, err
		}
		h, err := kinematics.BuildSymbolic(table)
		if err != nil {
			return nil, err
		}
		if e.opts.Simplify {
			h = kinematics.Simplify(h)
		}
		res.Symbolic = h
	default:
		table, err := e.cfg.NumericTable()
		if err != nil {
			return nil, err
		}
		frames, err := kinematics.Frames(kinematics.Float, table)
		if err != nil {
			return nil, err
		}
		res.Frames = frames
		res.Numeric = frames[len(frames)-1]
		res.Pose = kinematics.PoseOf(res.Numeric)
	}
	res.Elapsed = time.Since(start)

	e.logger.Debugw("chain built", "robot", e.cfg.Name, "elapsed", res.Elapsed)
	return res, nil
}

// Metadata describes res for the run store.
func (e *Experiment) Metadata(res *Result) storage.RunMetadata {
	joints := make([][4]string, len(e.cfg.Joints))
	for i, j := range e.cfg.Joints {
		joints[i] = [4]string{j.Theta.String(), j.D.String(), j.A.String(), j.Alpha.String()}
	}
	return storage.RunMetadata{
		Robot:     e.cfg.Name,
		Mode:      res.Mode.String(),
		AngleUnit: e.cfg.AngleUnit,
		Joints:    joints,
		Bindings:  e.cfg.Bindings,
		Symbols:   res.Symbols,
		Elapsed:   res.Elapsed,
	}
}
