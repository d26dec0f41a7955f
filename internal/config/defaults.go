package config

import (
	"github.com/katalvlaran/normbench/bench"
	"github.com/katalvlaran/normbench/matrix"
	"github.com/katalvlaran/normbench/normalize"
	"github.com/katalvlaran/normbench/primes"
	"github.com/katalvlaran/normbench/report"
)

// Reference benchmark shape.
const (
	DefaultRows = 1024
	DefaultCols = 60000

	// DefaultPrimesPasses: the reference primes sweep is timed once.
	DefaultPrimesPasses = 1
)

// ApplyDefaults sets default values for any zero values in cfg.
// Load keeps pass counts the file sets explicitly, including 0.
func ApplyDefaults(cfg *Config) {
	if cfg.Format == "" {
		cfg.Format = string(report.FormatPlain)
	}
	if cfg.Rows.Rows == 0 {
		cfg.Rows.Rows = DefaultRows
	}
	if cfg.Rows.Cols == 0 {
		cfg.Rows.Cols = DefaultCols
	}
	if cfg.Rows.Passes == 0 {
		cfg.Rows.Passes = bench.DefaultPasses
	}
	if cfg.Rows.Seed == 0 {
		cfg.Rows.Seed = matrix.DefaultSeed
	}
	if cfg.Rows.Workers == 0 {
		cfg.Rows.Workers = normalize.DefaultWorkers
	}
	if cfg.Rows.Policy == "" {
		cfg.Rows.Policy = normalize.DefaultPolicy.String()
	}
	if cfg.Rows.Kernel == "" {
		cfg.Rows.Kernel = normalize.DefaultKernel.String()
	}
	if cfg.Primes.Limit == 0 {
		cfg.Primes.Limit = primes.DefaultLimit
	}
	if cfg.Primes.Passes == 0 {
		cfg.Primes.Passes = DefaultPrimesPasses
	}
}
