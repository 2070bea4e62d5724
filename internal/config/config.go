package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt       = 0.016
	DefaultDuration = 10.0
	DefaultCoupling = 1.0
	DefaultMass     = 1.0
	DefaultSize     = 8
	DefaultFPS      = 30
)

// Known model names.
const (
	ModelStrings = "strings"
	ModelMatrix  = "matrix"
)

type Config struct {
	Model    string  `yaml:"model"`
	Dt       float64 `yaml:"dt"`
	Duration float64 `yaml:"duration"`
	Seed     int64   `yaml:"seed"`
	Coupling float64 `yaml:"coupling"`
	Mass     float64 `yaml:"mass"`
	Size     int     `yaml:"size"`
	FPS      int     `yaml:"fps"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:    ModelStrings,
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Coupling: DefaultCoupling,
		Mass:     DefaultMass,
		Size:     DefaultSize,
		FPS:      DefaultFPS,
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
	if err := cfg.Validate(); err != nil {
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

// Validate catches configuration mistakes before they turn into
// undefined behavior in the engines.
func (c *Config) Validate() error {
	switch c.Model {
	case ModelStrings, ModelMatrix:
	default:
		return fmt.Errorf("unknown model: %q", c.Model)
	}
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", c.Duration)
	}
	if c.Model == ModelMatrix && c.Size < 1 {
		return fmt.Errorf("matrix model needs size >= 1, got %d", c.Size)
	}
	return nil
}
