// SPDX-License-Identifier: MIT
// Package: normalize
//
// Purpose:
//   - Standardize every row of a matrix in place: subtract the row mean, then
//     divide by the row population standard deviation (divisor = column count).
//   - Mean and std are both taken from the row as it was at the start of the pass;
//     the two updates are then applied in sequence.
//   - Repeated passes compound: nothing resets the matrix between calls.
//
// Determinism & Performance:
//   - Rows are visited in ascending order; each worker owns a disjoint contiguous
//     block of rows, so multi-worker output is bit-identical to one worker.
//   - The loop kernel works on row views of the flat buffer; no allocations per row.

package normalize

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/normbench/matrix"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	opPass   = "Normalizer.Pass"
	opPassTo = "Normalizer.PassTo"
)

// Normalizer runs row-normalization passes with a fixed configuration.
// A Normalizer is immutable after New and safe to share; the matrices it is
// given are not (a pass owns its matrix for the duration of the call).
type Normalizer struct {
	opts options
}

// New returns a Normalizer; with no options it reproduces the reference benchmark.
func New(opts ...Option) *Normalizer {
	return &Normalizer{opts: gatherOptions(opts...)}
}

// Policy reports the configured degenerate-row policy.
func (n *Normalizer) Policy() Policy { return n.opts.policy }

// Kernel reports the configured row kernel.
func (n *Normalizer) Kernel() Kernel { return n.opts.kernel }

// Workers reports the configured worker count.
func (n *Normalizer) Workers() int { return n.opts.workers }

// NormalizeRows runs one pass over m with default options.
func NormalizeRows(m *matrix.Dense) (PassStats, error) {
	return New().Pass(m)
}

// RowStats returns the mean and population std of row without mutating it.
func RowStats(row []float64) (mean, std float64) {
	return matrix.PopMeanStd(row)
}

// Row normalizes one row in place with the literal kernel and returns the
// statistics it used. A constant row becomes all NaN.
func Row(row []float64) (mean, std float64) {
	mean, std = loopStats(row)
	loopApply(row, mean, std)

	return mean, std
}

// loopStats and loopApply split Row so the policy check can sit in between.
func loopStats(row []float64) (mean, std float64) { return matrix.PopMeanStd(row) }

func loopApply(row []float64, mean, std float64) {
	matrix.SubConst(row, mean)
	matrix.DivConst(row, std)
}

func floatsStats(row []float64) (mean, std float64) {
	mean, variance := stat.PopMeanVariance(row, nil)

	return mean, math.Sqrt(variance)
}

func floatsApply(row []float64, mean, std float64) {
	floats.AddConst(-mean, row)
	floats.Scale(1/std, row)
}

// degenerate reports whether normalizing with (mean, std) cannot produce finite values.
func degenerate(mean, std float64) error {
	switch {
	case math.IsNaN(mean) || math.IsInf(mean, 0) || math.IsNaN(std) || math.IsInf(std, 0):
		return ErrNonFiniteStats
	case std == 0:
		return ErrZeroVariance
	}

	return nil
}

// Pass normalizes every row of m in place, once.
// MAIN DESCRIPTION:
//   - For each row i: mean(i), std(i) from the current values; M[i] -= mean(i);
//     M[i] /= std(i).
//
// Implementation:
//   - Stage 1: Validate m (non-nil, at least one row and one column).
//   - Stage 2: Single worker: walk rows in order. Several workers: split rows into
//     contiguous blocks and run them under an errgroup.
//   - Stage 3: Merge per-block PassStats.
//
// Behavior highlights:
//   - PolicyPropagate never fails on data; degenerate rows are counted and turn NaN.
//   - PolicyReject returns a *RowError; with several workers, rows in other blocks
//     may already be normalized when the error surfaces.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrEmptyMatrix (wrapped).
//   - *RowError wrapping ErrZeroVariance / ErrNonFiniteStats under PolicyReject.
//
// Complexity:
//   - Time O(r*c), Space O(workers).
func (n *Normalizer) Pass(m *matrix.Dense) (PassStats, error) {
	if err := matrix.ValidateNonEmpty(m); err != nil {
		return PassStats{FirstDegenerate: -1}, fmt.Errorf("%s: %w", opPass, err)
	}

	rows := m.Rows()
	workers := n.opts.workers
	if workers > rows {
		workers = rows
	}
	if workers == 1 {
		st, err := n.block(context.Background(), m, 0, rows)
		if err != nil {
			return st, fmt.Errorf("%s: %w", opPass, err)
		}
		return st, nil
	}

	parts := make([]PassStats, workers)
	g, gctx := errgroup.WithContext(context.Background())
	g.SetLimit(workers)
	chunk := (rows + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > rows {
			hi = rows
		}
		if lo >= hi {
			parts[w] = PassStats{FirstDegenerate: -1}
			continue
		}
		w := w
		g.Go(func() error {
			st, err := n.block(gctx, m, lo, hi)
			parts[w] = st
			return err
		})
	}
	err := g.Wait()

	total := PassStats{FirstDegenerate: -1}
	for _, p := range parts {
		total.merge(p)
	}
	if err != nil {
		return total, fmt.Errorf("%s: %w", opPass, err)
	}

	return total, nil
}

// block normalizes rows [lo, hi) of m. ctx is only checked between rows so a
// rejected row in another block stops this one early.
func (n *Normalizer) block(ctx context.Context, m *matrix.Dense, lo, hi int) (PassStats, error) {
	stats, apply := loopStats, loopApply
	if n.opts.kernel == KernelFloats {
		stats, apply = floatsStats, floatsApply
	}

	st := PassStats{FirstDegenerate: -1}
	var mean, std float64
	for i := lo; i < hi; i++ {
		if err := ctx.Err(); err != nil {
			return st, err
		}
		row, err := m.Row(i)
		if err != nil {
			return st, err
		}
		mean, std = stats(row)
		st.Rows++

		if derr := degenerate(mean, std); derr != nil {
			st.Degenerate++
			if st.FirstDegenerate < 0 {
				st.FirstDegenerate = i
			}
			switch n.opts.policy {
			case PolicyReject:
				return st, &RowError{Row: i, Mean: mean, Std: std, Err: derr}
			case PolicySkip:
				continue
			}
		}
		apply(row, mean, std)
	}

	return st, nil
}

// PassTo writes the normalized rows of src into dst, leaving src untouched.
// Repeating PassTo from the same src therefore does not compound.
//
// Errors: matrix.ErrNilMatrix, matrix.ErrEmptyMatrix, matrix.ErrDimensionMismatch,
// plus the Pass errors.
func (n *Normalizer) PassTo(dst, src *matrix.Dense) (PassStats, error) {
	if err := matrix.ValidateNonEmpty(src); err != nil {
		return PassStats{FirstDegenerate: -1}, fmt.Errorf("%s: %w", opPassTo, err)
	}
	if err := matrix.ValidateSameShape(dst, src); err != nil {
		return PassStats{FirstDegenerate: -1}, fmt.Errorf("%s: %w", opPassTo, err)
	}
	if err := dst.CopyFrom(src); err != nil {
		return PassStats{FirstDegenerate: -1}, fmt.Errorf("%s: %w", opPassTo, err)
	}

	return n.Pass(dst)
}
