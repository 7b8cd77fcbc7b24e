package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config captures the runtime knobs for a solver run.
type Config struct {
	Qubits       int     `mapstructure:"qubits"`
	Depth        int     `mapstructure:"depth"`
	Inputs       int     `mapstructure:"inputs"`
	ColPoints    int     `mapstructure:"colpoints"`
	LearningRate float64 `mapstructure:"learning_rate"`
	Steps        int     `mapstructure:"steps"`
	Seed         int64   `mapstructure:"seed"`
	LogEvery     int     `mapstructure:"log_every"`
	GridPoints   int     `mapstructure:"grid_points"`
	Out          string  `mapstructure:"out"`
}

// Overrides captures CLI supplied values.
type Overrides struct {
	Qubits       int
	Depth        int
	ColPoints    int
	LearningRate float64
	Steps        int
	Seed         int64
	LogEvery     int
	GridPoints   int
	Out          string
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("qubits", 5)
	v.SetDefault("depth", 3)
	v.SetDefault("inputs", 2)
	v.SetDefault("colpoints", 100)
	v.SetDefault("learning_rate", 0.001)
	v.SetDefault("steps", 1000)
	v.SetDefault("seed", 42)
	v.SetDefault("log_every", 50)
	v.SetDefault("grid_points", 150)
	v.SetDefault("out", "laplace.png")

	v.SetEnvPrefix("LAPLACE_DQC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads configuration from defaults, environment variables and an
// optional YAML file. An empty path skips the file entirely; a missing
// file at an explicit path is an error.
func Load(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// ApplyOverrides updates cfg using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.Qubits > 0 {
		c.Qubits = o.Qubits
	}
	if o.Depth > 0 {
		c.Depth = o.Depth
	}
	if o.ColPoints > 0 {
		c.ColPoints = o.ColPoints
	}
	if o.LearningRate > 0 {
		c.LearningRate = o.LearningRate
	}
	if o.Steps > 0 {
		c.Steps = o.Steps
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.LogEvery > 0 {
		c.LogEvery = o.LogEvery
	}
	if o.GridPoints > 0 {
		c.GridPoints = o.GridPoints
	}
	if o.Out != "" {
		c.Out = o.Out
	}
}

// Validate verifies the config is runnable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Qubits <= 0 {
		return fmt.Errorf("qubits must be > 0 (got %d)", c.Qubits)
	}
	if c.Depth <= 0 {
		return fmt.Errorf("depth must be > 0 (got %d)", c.Depth)
	}
	if c.Inputs < 2 {
		return fmt.Errorf("inputs must be >= 2 (got %d)", c.Inputs)
	}
	if c.Inputs > c.Qubits {
		return fmt.Errorf("inputs must not exceed qubits (%d > %d)", c.Inputs, c.Qubits)
	}
	if c.ColPoints <= 0 {
		return fmt.Errorf("colpoints must be > 0 (got %d)", c.ColPoints)
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("learning_rate must be > 0 (got %g)", c.LearningRate)
	}
	if c.Steps <= 0 {
		return fmt.Errorf("steps must be > 0 (got %d)", c.Steps)
	}
	if c.GridPoints <= 1 {
		return fmt.Errorf("grid_points must be > 1 (got %d)", c.GridPoints)
	}
	if c.Out == "" {
		return errors.New("out path must be set")
	}
	if c.LogEvery <= 0 {
		c.LogEvery = 50
	}
	return nil
}
