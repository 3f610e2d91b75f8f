package experiment

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/san-kum/dhkin/internal/config"
	"github.com/san-kum/dhkin/internal/kinematics"
	"github.com/san-kum/dhkin/internal/storage"
	"github.com/san-kum/dhkin/internal/symbolic"
)

func TestRunNumeric(t *testing.T) {
	cfg, err := Resolve("planar2r", "")
	if err != nil {
		t.Fatal(err)
	}
	res, err := New(cfg, Options{}, nil).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Mode != kinematics.ModeNumeric {
		t.Fatalf("expected numeric mode, got %v", res.Mode)
	}
	if len(res.Frames) != 2 {
		t.Errorf("expected 2 frames, got %d", len(res.Frames))
	}
	if math.Abs(res.Pose.Position.Y()-(1+math.Sqrt2/2)) > 1e-12 {
		t.Errorf("y = %v", res.Pose.Position.Y())
	}
}

func TestRunSymbolic(t *testing.T) {
	cfg, err := Resolve("scara3-deg", "")
	if err != nil {
		t.Fatal(err)
	}
	res, err := New(cfg, Options{Simplify: true}, nil).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Mode != kinematics.ModeSymbolic {
		t.Fatalf("expected symbolic mode, got %v", res.Mode)
	}
	if !res.Symbolic[2][2].Equal(symbolic.Int(-1)) {
		t.Errorf("[2][2] = %s, want -1", res.Symbolic[2][2])
	}
	if len(res.Symbols) != 5 {
		t.Errorf("expected 5 symbols, got %v", res.Symbols)
	}
}

func TestRunModeOverride(t *testing.T) {
	cfg, _ := Resolve("scara3-deg", "")
	res, err := New(cfg, Options{Mode: "numeric"}, nil).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Mode != kinematics.ModeNumeric {
		t.Fatalf("expected numeric mode, got %v", res.Mode)
	}
	if res.Numeric[2][3] != -0.1 {
		t.Errorf("z = %v, want -0.1", res.Numeric[2][3])
	}

	if _, err := New(cfg, Options{Mode: "bogus"}, nil).Run(context.Background()); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(config.DefaultConfig(), Options{}, nil).Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestResolve(t *testing.T) {
	if _, err := Resolve("nope", ""); err == nil {
		t.Error("expected error for unknown preset")
	}

	cfg, err := Resolve("", "")
	if err != nil || cfg.Name != "planar2r" {
		t.Errorf("expected default robot, got %v, %v", cfg, err)
	}

	path := filepath.Join(t.TempDir(), "robot.yaml")
	if err := config.Save(path, config.GetPreset("identity")); err != nil {
		t.Fatal(err)
	}
	cfg, err = Resolve("scara3", path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Name != "identity" {
		t.Errorf("expected file to win over preset, got %s", cfg.Name)
	}
}

func TestMetadataRoundTrip(t *testing.T) {
	cfg, _ := Resolve("scara3", "")
	exp := New(cfg, Options{}, nil)
	res, err := exp.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	st := storage.New(t.TempDir())
	runID, err := st.Save(exp.Metadata(res), res.Cells())
	if err != nil {
		t.Fatal(err)
	}
	cells, err := st.LoadMatrix(runID)
	if err != nil {
		t.Fatal(err)
	}
	if cells[2][2] != "cos(180)" {
		t.Errorf("expected cos(180), got %s", cells[2][2])
	}
	meta, err := st.Load(runID)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Joints[1][3] != "180" || meta.Mode != "symbolic" {
		t.Errorf("unexpected metadata %+v", meta)
	}
}
