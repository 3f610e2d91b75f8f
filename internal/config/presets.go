package config

import "sort"

func scaraJoints() []JointConfig {
	return []JointConfig{
		{Theta: P("q1"), D: Num(0), A: P("l1"), Alpha: Num(0)},
		{Theta: P("q2"), D: Num(0), A: P("l2"), Alpha: Num(180)},
		{Theta: Num(0), D: P("d3"), A: Num(0), Alpha: Num(0)},
	}
}

var Presets = map[string]*Config{
	"planar2r": DefaultConfig(),
	"scara3": {
		Name: "scara3", Mode: "symbolic", AngleUnit: UnitRad,
		Joints: scaraJoints(),
		Bindings: map[string]float64{
			"q1": 0.5, "q2": 0.8, "l1": 0.4, "l2": 0.3, "d3": 0.1,
		},
	},
	"scara3-deg": {
		Name: "scara3-deg", Mode: "symbolic", AngleUnit: UnitDeg,
		Joints: scaraJoints(),
		Bindings: map[string]float64{
			"q1": 30, "q2": 45, "l1": 0.4, "l2": 0.3, "d3": 0.1,
		},
	},
	"scara3-num": {
		Name: "scara3-num", Mode: "numeric", AngleUnit: UnitDeg,
		Joints: scaraJoints(),
		Bindings: map[string]float64{
			"q1": 30, "q2": 45, "l1": 0.4, "l2": 0.3, "d3": 0.1,
		},
	},
	"identity": {
		Name: "identity", Mode: "numeric", AngleUnit: UnitRad,
		Joints: []JointConfig{{Theta: Num(0), D: Num(0), A: Num(0), Alpha: Num(0)}},
	},
}

// GetPreset returns a copy of the named robot, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
