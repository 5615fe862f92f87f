package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt       = 0.01
	DefaultDuration = 10.0
	DefaultAngle    = 0.5
	DefaultModel    = "pendulum"
	DefaultSolver   = "rk4"
)

type Config struct {
	Model     string          `yaml:"model"`
	Solver    string          `yaml:"solver"`
	Dt        float64         `yaml:"dt"`
	Duration  float64         `yaml:"duration"`
	Adaptive  AdaptiveConfig  `yaml:"adaptive"`
	InitState InitStateConfig `yaml:"init_state"`
}

// AdaptiveConfig mirrors the adaptive solver's knobs; zero values fall back
// to the solver's own defaults.
type AdaptiveConfig struct {
	Enabled      bool    `yaml:"enabled"`
	Tolerance    float64 `yaml:"tolerance"`
	GrowFactor   float64 `yaml:"grow_factor"`
	ShrinkFactor float64 `yaml:"shrink_factor"`
	MaxRetries   int     `yaml:"max_retries"`
	MinStep      float64 `yaml:"min_step"`
	MaxStep      float64 `yaml:"max_step"`
}

type InitStateConfig struct {
	Angle float64 `yaml:"angle"`
	Omega float64 `yaml:"omega"`
	Pos   float64 `yaml:"pos"`
	Vel   float64 `yaml:"vel"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:    DefaultModel,
		Solver:   DefaultSolver,
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		InitState: InitStateConfig{
			Angle: DefaultAngle,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
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
