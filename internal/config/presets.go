package config

var Presets = map[string]map[string]*Config{
	"pendulum": {
		"small": {
			Model: "pendulum", Solver: "rk4", Dt: 0.01, Duration: 20.0,
			InitState: InitStateConfig{Angle: 0.2, Omega: 0.0},
		},
		"large": {
			Model: "pendulum", Solver: "rk4", Dt: 0.01, Duration: 20.0,
			InitState: InitStateConfig{Angle: 2.5, Omega: 0.0},
		},
		"spinning": {
			Model: "pendulum", Solver: "adaptive", Dt: 0.01, Duration: 30.0,
			Adaptive:  AdaptiveConfig{Enabled: true, Tolerance: 1e-5},
			InitState: InitStateConfig{Angle: 0.1, Omega: 8.0},
		},
	},
	"spring_mass": {
		"bounce": {
			Model: "spring_mass", Solver: "rk4", Dt: 0.01, Duration: 20.0,
			InitState: InitStateConfig{Pos: 2.0, Vel: 0.0},
		},
		"fast": {
			Model: "spring_mass", Solver: "heun", Dt: 0.005, Duration: 10.0,
			InitState: InitStateConfig{Pos: 1.0, Vel: 5.0},
		},
	},
	"magnet_wheel": {
		"slow": {
			Model: "magnet_wheel", Solver: "adaptive", Dt: 0.01, Duration: 10.0,
			Adaptive:  AdaptiveConfig{Enabled: true, Tolerance: 1e-4},
			InitState: InitStateConfig{Angle: 0.4, Omega: 1.5},
		},
		"spun": {
			Model: "magnet_wheel", Solver: "adaptive", Dt: 0.005, Duration: 10.0,
			Adaptive:  AdaptiveConfig{Enabled: true, Tolerance: 1e-4},
			InitState: InitStateConfig{Angle: 0.0, Omega: 6.0},
		},
	},
}

func GetPreset(model, name string) *Config {
	group, ok := Presets[model]
	if !ok {
		return nil
	}
	return group[name]
}

func ListPresets(model string) []string {
	group, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(group))
	for name := range group {
		names = append(names, name)
	}
	return names
}
