package bench

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/montanaflynn/stats"
)

// Result is the outcome of one Run.
type Result struct {
	RunID     string          `yaml:"run_id"`
	Workload  string          `yaml:"workload"`
	Rows      int             `yaml:"rows"`
	Cols      int             `yaml:"cols"`
	Seed      int64           `yaml:"seed"`
	Warmup    int             `yaml:"warmup"`
	Passes    int             `yaml:"passes"`
	Total     time.Duration   `yaml:"total"`
	PerPass   []time.Duration `yaml:"per_pass"`
	Footprint uint64          `yaml:"footprint_bytes,omitempty"`
	Host      string          `yaml:"host,omitempty"`

	// AvgSeconds is Total/Passes in seconds: the single figure the benchmark reports.
	AvgSeconds float64 `yaml:"avg_seconds"`
	Summary    Summary `yaml:"summary"`

	// Items is the item count of the last pass; DegenerateRows is summed over
	// all timed passes.
	Items           int `yaml:"items"`
	DegenerateRows  int `yaml:"degenerate_rows"`
	FirstDegenerate int `yaml:"first_degenerate"`
}

// Summary describes the spread of per-pass durations, all in seconds.
type Summary struct {
	Min    float64 `yaml:"min"`
	Median float64 `yaml:"median"`
	Mean   float64 `yaml:"mean"`
	P95    float64 `yaml:"p95"`
	Max    float64 `yaml:"max"`
	StdDev float64 `yaml:"stddev"`
}

// Summarize computes a Summary over per-pass durations.
// An empty input returns stats.EmptyInputErr (wrapped).
func Summarize(perPass []time.Duration) (Summary, error) {
	data := make(stats.Float64Data, len(perPass))
	for i, d := range perPass {
		data[i] = d.Seconds()
	}

	var (
		s   Summary
		err error
	)
	if s.Min, err = data.Min(); err != nil {
		return Summary{}, errors.Wrap(err, "summary min")
	}
	if s.Max, err = data.Max(); err != nil {
		return Summary{}, errors.Wrap(err, "summary max")
	}
	if s.Mean, err = data.Mean(); err != nil {
		return Summary{}, errors.Wrap(err, "summary mean")
	}
	if s.Median, err = data.Median(); err != nil {
		return Summary{}, errors.Wrap(err, "summary median")
	}
	if s.P95, err = data.Percentile(95); err != nil {
		return Summary{}, errors.Wrap(err, "summary p95")
	}
	if s.StdDev, err = data.StandardDeviationPopulation(); err != nil {
		return Summary{}, errors.Wrap(err, "summary stddev")
	}

	return s, nil
}

// average returns total/passes in seconds; passes must be > 0.
func average(total time.Duration, passes int) float64 {
	return total.Seconds() / float64(passes)
}
