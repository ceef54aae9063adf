package config

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config captures the runtime knobs for a training run.
type Config struct {
	DataDir   string             `yaml:"data_dir"`
	BatchSize int                `yaml:"batch_size"`
	Epochs    int                `yaml:"epochs"`
	Shuffle   bool               `yaml:"shuffle"`
	Seed      int64              `yaml:"seed"`
	LogEvery  int                `yaml:"log_every"`
	Verbose   bool               `yaml:"verbose"`
	LearnRate float64            `yaml:"learn_rate"`
	NoiseStd  map[string]float64 `yaml:"noise_std"`
	NoiseMean map[string]float64 `yaml:"noise_mean"`
}

// Overrides captures CLI supplied values.
type Overrides struct {
	DataDir   string
	BatchSize int
	Epochs    int
	Seed      int64
	LogEvery  int
}

// Load reads and validates a Config from YAML.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open config")
	}
	defer f.Close()

	cfg := &Config{}
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyOverrides updates cfg using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.DataDir != "" {
		c.DataDir = o.DataDir
	}
	if o.BatchSize > 0 {
		c.BatchSize = o.BatchSize
	}
	if o.Epochs > 0 {
		c.Epochs = o.Epochs
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.LogEvery > 0 {
		c.LogEvery = o.LogEvery
	}
}

// Validate verifies the config is runnable and fills defaults.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.DataDir == "" {
		return errors.New("data_dir must be set")
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be > 0 (got %d)", c.BatchSize)
	}
	if c.Epochs <= 0 {
		return fmt.Errorf("epochs must be > 0 (got %d)", c.Epochs)
	}
	if c.LearnRate < 0 {
		return fmt.Errorf("learn_rate must be >= 0 (got %g)", c.LearnRate)
	}
	if c.LearnRate == 0 {
		c.LearnRate = 0.01
	}
	if c.LogEvery <= 0 {
		c.LogEvery = 50
	}
	return nil
}
