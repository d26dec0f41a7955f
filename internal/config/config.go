// Package config provides configuration loading and structs for normbench.
package config

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/katalvlaran/normbench/normalize"
	"github.com/katalvlaran/normbench/report"
	"gopkg.in/yaml.v3"
)

// ErrInvalid marks a configuration value that fails validation.
var ErrInvalid = errors.New("invalid configuration")

// Config holds all configuration for a benchmark run.
type Config struct {
	Debug  bool         `yaml:"debug"`
	Format string       `yaml:"format"`
	Rows   RowsConfig   `yaml:"rows"`
	Primes PrimesConfig `yaml:"primes"`
}

// RowsConfig holds the row normalization benchmark settings.
type RowsConfig struct {
	Rows             int    `yaml:"rows"`
	Cols             int    `yaml:"cols"`
	Passes           int    `yaml:"passes"`
	Seed             int64  `yaml:"seed"`
	Warmup           int    `yaml:"warmup"`
	Workers          int    `yaml:"workers"`
	Policy           string `yaml:"policy"`
	Kernel           string `yaml:"kernel"`
	CopyOut          bool   `yaml:"copy_out"`
	StopOnDegenerate bool   `yaml:"stop_on_degenerate"`
}

// PrimesConfig holds the trial-division benchmark settings.
type PrimesConfig struct {
	Limit      int  `yaml:"limit"`
	Passes     int  `yaml:"passes"`
	Exhaustive bool `yaml:"exhaustive"`
}

// explicitPasses records pass counts written in the file, so an explicit 0
// survives ApplyDefaults and reaches the runner.
type explicitPasses struct {
	Rows struct {
		Passes *int `yaml:"passes"`
	} `yaml:"rows"`
	Primes struct {
		Passes *int `yaml:"passes"`
	} `yaml:"primes"`
}

// Default returns a Config with every default applied.
func Default() *Config {
	var cfg Config
	ApplyDefaults(&cfg)
	return &cfg
}

// Load reads and parses the config file at path and applies defaults.
// An empty path returns Default().
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config %s", path)
	}
	var explicit explicitPasses
	if err := yaml.Unmarshal(data, &explicit); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config %s", path)
	}
	ApplyDefaults(&cfg)
	if explicit.Rows.Passes != nil {
		cfg.Rows.Passes = *explicit.Rows.Passes
	}
	if explicit.Primes.Passes != nil {
		cfg.Primes.Passes = *explicit.Primes.Passes
	}

	return &cfg, nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.Wrap(err, "failed to write config")
	}
	return nil
}

// invalid tags err with ErrInvalid while keeping err itself in the chain.
func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalid, err)
}

// Validate checks ranges and enum spellings. Passes == 0 is left to the runner,
// which reports it as bench.ErrNoPasses.
func (c *Config) Validate() error {
	if _, err := report.ParseFormat(c.Format); err != nil {
		return invalid(err)
	}
	r := c.Rows
	switch {
	case r.Rows <= 0:
		return errors.Wrapf(ErrInvalid, "rows.rows must be > 0, got %d", r.Rows)
	case r.Cols <= 0:
		return errors.Wrapf(ErrInvalid, "rows.cols must be > 0, got %d", r.Cols)
	case r.Passes < 0:
		return errors.Wrapf(ErrInvalid, "rows.passes must be >= 0, got %d", r.Passes)
	case r.Warmup < 0:
		return errors.Wrapf(ErrInvalid, "rows.warmup must be >= 0, got %d", r.Warmup)
	case r.Workers < 1:
		return errors.Wrapf(ErrInvalid, "rows.workers must be >= 1, got %d", r.Workers)
	}
	if _, err := normalize.ParsePolicy(r.Policy); err != nil {
		return invalid(err)
	}
	if _, err := normalize.ParseKernel(r.Kernel); err != nil {
		return invalid(err)
	}

	p := c.Primes
	switch {
	case p.Limit < 0:
		return errors.Wrapf(ErrInvalid, "primes.limit must be >= 0, got %d", p.Limit)
	case p.Passes < 0:
		return errors.Wrapf(ErrInvalid, "primes.passes must be >= 0, got %d", p.Passes)
	}

	return nil
}

// NormalizerOptions converts the rows settings into normalize options.
// Call Validate first; unknown spellings fall back to the defaults here.
func (r RowsConfig) NormalizerOptions() []normalize.Option {
	policy, err := normalize.ParsePolicy(r.Policy)
	if err != nil {
		policy = normalize.DefaultPolicy
	}
	kernel, err := normalize.ParseKernel(r.Kernel)
	if err != nil {
		kernel = normalize.DefaultKernel
	}
	workers := r.Workers
	if workers < 1 {
		workers = normalize.DefaultWorkers
	}

	return []normalize.Option{
		normalize.WithPolicy(policy),
		normalize.WithKernel(kernel),
		normalize.WithWorkers(workers),
	}
}
