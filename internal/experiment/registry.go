package experiment

import (
	"fmt"

	"github.com/san-kum/dhkin/internal/config"
)

// Resolve returns the robot loaded from path, or the named preset when
// path is empty. An empty name selects the default robot.
func Resolve(preset, path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	if preset == "" {
		return config.DefaultConfig(), nil
	}
	cfg := config.GetPreset(preset)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
	}
	return cfg, nil
}
