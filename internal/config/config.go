package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Harshavardhan3015/cranksim/internal/engine"
)

const (
	DefaultRPM      = 1000.0
	DefaultDt       = 1.0 / 60.0
	DefaultDuration = 5.0

	// Offset table names for BankConfig.Offsets.
	OffsetsFiring = "firing"
	OffsetsIndex  = "index"
)

type Config struct {
	RPM      float64         `yaml:"rpm"`
	Dt       float64         `yaml:"dt"`
	Duration float64         `yaml:"duration"`
	Geometry engine.Geometry `yaml:"geometry"`
	Bank     BankConfig      `yaml:"bank"`
}

// BankConfig selects the cylinder bank. Offsets picks the phase table:
// "firing" is the canonical 1-3-4-2 inline-4 table; "index" spaces n
// cylinders evenly in index order.
type BankConfig struct {
	Cylinders int    `yaml:"cylinders"`
	Offsets   string `yaml:"offsets"`
}

func DefaultConfig() *Config {
	return &Config{
		RPM:      DefaultRPM,
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Geometry: engine.DefaultGeometry(),
		Bank: BankConfig{
			Cylinders: 4,
			Offsets:   OffsetsFiring,
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

func (c *Config) Validate() error {
	if err := c.Geometry.Validate(); err != nil {
		return err
	}
	if c.RPM < 0 {
		return fmt.Errorf("%w: %g", engine.ErrRPMRange, c.RPM)
	}
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %g", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %g", c.Duration)
	}
	switch c.Bank.Offsets {
	case OffsetsFiring, OffsetsIndex:
	default:
		return fmt.Errorf("unknown offset table: %q", c.Bank.Offsets)
	}
	if c.Bank.Cylinders < 1 {
		return fmt.Errorf("%w: %d configured", engine.ErrNoCylinders, c.Bank.Cylinders)
	}
	if c.Bank.Offsets == OffsetsFiring && c.Bank.Cylinders != 4 {
		return fmt.Errorf("firing-order offsets are defined for 4 cylinders, got %d", c.Bank.Cylinders)
	}
	return nil
}

// Cylinders materializes the configured bank.
func (c *Config) Cylinders() []engine.Cylinder {
	if c.Bank.Offsets == OffsetsIndex {
		return engine.IndexOrdered(c.Bank.Cylinders)
	}
	return engine.InlineFour()
}

// BuildEngine validates the configuration and constructs the engine.
func (c *Config) BuildEngine() (*engine.Engine, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return engine.New(c.Geometry, c.Cylinders(), c.RPM)
}
