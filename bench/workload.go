// Package bench times repeated passes of a workload and summarizes them.
package bench

import (
	"context"
	"math/rand"

	"github.com/cockroachdb/errors"
	"github.com/katalvlaran/normbench/matrix"
	"github.com/katalvlaran/normbench/normalize"
	"github.com/katalvlaran/normbench/primes"
)

// PassStats is what one timed pass reports back to the runner.
type PassStats struct {
	Items           int // rows normalized, or primes found
	Degenerate      int // rows with zero or non-finite std
	FirstDegenerate int // -1 when none
}

// Workload is one benchmarked unit of work.
// Setup prepares state outside the timed region; Pass runs one timed pass and
// may mutate the state left by earlier passes.
type Workload interface {
	Name() string
	Setup(rng *rand.Rand) error
	Pass(ctx context.Context) (PassStats, error)
	Shape() (rows, cols int)
}

// footprinter is implemented by workloads that hold a sizable buffer.
type footprinter interface {
	Footprint() uint64
}

// RowsWorkload normalizes the rows of a random R×C matrix on every pass.
// In-place mode compounds passes over one matrix; copy-out mode reads a fixed
// source and writes a separate destination each time.
type RowsWorkload struct {
	rows, cols int
	norm       *normalize.Normalizer
	copyOut    bool

	src *matrix.Dense
	dst *matrix.Dense
}

// NewRowsWorkload returns a rows workload. A nil normalizer means normalize.New().
func NewRowsWorkload(rows, cols int, n *normalize.Normalizer, copyOut bool) *RowsWorkload {
	if n == nil {
		n = normalize.New()
	}
	return &RowsWorkload{rows: rows, cols: cols, norm: n, copyOut: copyOut}
}

// Name implements Workload.
func (w *RowsWorkload) Name() string {
	if w.copyOut {
		return "rows/copy-out"
	}
	return "rows"
}

// Shape implements Workload.
func (w *RowsWorkload) Shape() (int, int) { return w.rows, w.cols }

// Footprint is the number of matrix bytes held during the run.
func (w *RowsWorkload) Footprint() uint64 {
	n := uint64(w.rows) * uint64(w.cols) * 8
	if w.copyOut {
		n *= 2
	}
	return n
}

// Setup fills a fresh matrix with uniform [0,1) values drawn from rng.
func (w *RowsWorkload) Setup(rng *rand.Rand) error {
	src, err := matrix.RandomDense(w.rows, w.cols, rng, matrix.WithNoValidateNaNInf())
	if err != nil {
		return errors.Wrapf(err, "setup %dx%d matrix", w.rows, w.cols)
	}
	w.src = src
	w.dst = nil
	if w.copyOut {
		if w.dst, err = matrix.ZerosLike(src); err != nil {
			return errors.Wrap(err, "setup copy-out destination")
		}
	}

	return nil
}

// Pass implements Workload.
func (w *RowsWorkload) Pass(ctx context.Context) (PassStats, error) {
	if w.src == nil {
		return PassStats{FirstDegenerate: -1}, ErrNotSetUp
	}
	if err := ctx.Err(); err != nil {
		return PassStats{FirstDegenerate: -1}, err
	}

	var (
		st  normalize.PassStats
		err error
	)
	if w.copyOut {
		st, err = w.norm.PassTo(w.dst, w.src)
	} else {
		st, err = w.norm.Pass(w.src)
	}

	return PassStats{Items: st.Rows, Degenerate: st.Degenerate, FirstDegenerate: st.FirstDegenerate}, err
}

// Matrix returns the matrix holding the latest output: the source in in-place
// mode, the destination in copy-out mode. Nil before Setup.
func (w *RowsWorkload) Matrix() *matrix.Dense {
	if w.copyOut {
		return w.dst
	}
	return w.src
}

// Source returns the matrix filled by Setup.
func (w *RowsWorkload) Source() *matrix.Dense { return w.src }

// PrimesWorkload counts primes below a limit by trial division.
type PrimesWorkload struct {
	limit      int
	exhaustive bool
	ready      bool
	last       int
}

// NewPrimesWorkload returns a primes workload; limit 0 means primes.DefaultLimit.
func NewPrimesWorkload(limit int) *PrimesWorkload {
	if limit == 0 {
		limit = primes.DefaultLimit
	}
	return &PrimesWorkload{limit: limit}
}

// Exhaustive makes every candidate try all divisors up to its square root
// instead of stopping at the first one.
func (w *PrimesWorkload) Exhaustive(on bool) *PrimesWorkload {
	w.exhaustive = on
	return w
}

// Name implements Workload.
func (w *PrimesWorkload) Name() string {
	if w.exhaustive {
		return "primes/exhaustive"
	}
	return "primes"
}

// Shape reports the candidate range as limit×1.
func (w *PrimesWorkload) Shape() (int, int) { return w.limit, 1 }

// Setup validates the limit; the generator is unused.
func (w *PrimesWorkload) Setup(*rand.Rand) error {
	if w.limit < 0 {
		return errors.Wrapf(ErrBadLimit, "limit %d", w.limit)
	}
	w.ready = true

	return nil
}

// Pass implements Workload.
func (w *PrimesWorkload) Pass(ctx context.Context) (PassStats, error) {
	if !w.ready {
		return PassStats{FirstDegenerate: -1}, ErrNotSetUp
	}
	if err := ctx.Err(); err != nil {
		return PassStats{FirstDegenerate: -1}, err
	}
	if w.exhaustive {
		w.last = primes.CountExhaustive(w.limit)
	} else {
		w.last = primes.Count(w.limit)
	}

	return PassStats{Items: w.last, FirstDegenerate: -1}, nil
}

// Found returns the prime count of the latest pass.
func (w *PrimesWorkload) Found() int { return w.last }
