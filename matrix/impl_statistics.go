// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide per-row statistics (mean, population standard deviation) and the
//     copy-based row transforms built on them (CenterRows, ScaleRows).
//   - Provide numeric diagnostics used to detect NaN/Inf propagation after
//     normalization (HasNonFinite, NonFiniteRows, RowsStandardized).
//
// Exposed API:
//   - PopMeanStd(x)           -> (mean, std)        // population std, divisor len(x)
//   - RowMeans(X)             -> means
//   - RowPopStds(X)           -> stds
//   - CenterRows(X)           -> (Xc, means)        // subtract per-row mean (copy)
//   - ScaleRows(X, s)         -> Y                  // Y[i,j] = X[i,j]*s[i] (copy)
//   - HasNonFinite(X)         -> bool
//   - NonFiniteRows(X)        -> []int
//   - RowsStandardized(X,...) -> bool               // every finite row has mean≈0, std≈1
//
// Determinism & Performance:
//   - Fixed i→j traversal; two-pass mean/variance (no running-sum shortcuts), so
//     results match the textbook definition bit for bit on the same platform.
//   - Dense fast-paths operate on row views of the flat buffer.

package matrix

import "math"

// Operation name constants for unified error wrapping.
const (
	opRowMeans         = "RowMeans"
	opRowPopStds       = "RowPopStds"
	opCenterRows       = "CenterRows"
	opScaleRows        = "ScaleRows"
	opHasNonFinite     = "HasNonFinite"
	opNonFiniteRows    = "NonFiniteRows"
	opRowsStandardized = "RowsStandardized"
)

// PopMeanStd returns the arithmetic mean and the population standard deviation
// (divisor n, not n-1) of x. Two passes: sum for the mean, then the sum of
// squared deviations from that mean.
//
// An empty x yields (NaN, NaN). A constant x yields std == 0.
// Complexity: O(n), no allocations.
func PopMeanStd(x []float64) (mean, std float64) {
	n := float64(len(x))
	var s float64
	for _, v := range x {
		s += v
	}
	mean = s / n

	var ss, d float64
	for _, v := range x {
		d = v - mean
		ss += d * d
	}
	std = math.Sqrt(ss / n)

	return mean, std
}

// rowsOf yields a row accessor for X: Dense rows are views, other matrices are
// copied into a scratch buffer via At.
func rowsOf(X Matrix, op string, f func(i int, row []float64)) error {
	r, c := X.Rows(), X.Cols()
	if d, ok := X.(*Dense); ok {
		for i := 0; i < r; i++ {
			f(i, d.rowUnchecked(i))
		}
		return nil
	}

	buf := make([]float64, c)
	var v float64
	var err error
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v, err = X.At(i, j); err != nil {
				return matrixErrorf(op, err)
			}
			buf[j] = v
		}
		f(i, buf)
	}

	return nil
}

// RowMeans returns the arithmetic mean of every row (len == Rows()).
//
// Errors: ErrNilMatrix, ErrEmptyMatrix, wrapped At errors on the fallback path.
// Complexity: O(r*c).
func RowMeans(X Matrix) ([]float64, error) {
	if err := ValidateNonEmpty(X); err != nil {
		return nil, matrixErrorf(opRowMeans, err)
	}
	means := make([]float64, X.Rows())
	err := rowsOf(X, opRowMeans, func(i int, row []float64) {
		means[i], _ = PopMeanStd(row)
	})
	if err != nil {
		return nil, err
	}

	return means, nil
}

// RowPopStds returns the population standard deviation of every row.
//
// Errors: ErrNilMatrix, ErrEmptyMatrix, wrapped At errors on the fallback path.
// Complexity: O(r*c).
func RowPopStds(X Matrix) ([]float64, error) {
	if err := ValidateNonEmpty(X); err != nil {
		return nil, matrixErrorf(opRowPopStds, err)
	}
	stds := make([]float64, X.Rows())
	err := rowsOf(X, opRowPopStds, func(i int, row []float64) {
		_, stds[i] = PopMeanStd(row)
	})
	if err != nil {
		return nil, err
	}

	return stds, nil
}

// CenterRows subtracts the per-row mean from every element (row-wise centering).
// Implementation:
//   - Stage 1: Validate X (non-nil, non-empty).
//   - Stage 2: Compute row means deterministically (Dense fast-path; At fallback).
//   - Stage 3: Apply ewBroadcastSubRows to produce a centered copy.
//
// Returns:
//   - *Dense: centered copy (r×c); X is not modified.
//   - []float64: row means (len=r).
//
// Errors:
//   - ErrNilMatrix, ErrEmptyMatrix, wrapped At errors.
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for output (+ O(r) means).
func CenterRows(X Matrix) (*Dense, []float64, error) {
	means, err := RowMeans(X)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterRows, err)
	}
	Xc, err := ewBroadcastSubRows(X, means)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterRows, err)
	}

	return Xc, means, nil
}

// ScaleRows returns a copy with out[i,j] = X[i,j] * scale[i].
// With scale[i] = 1/std[i] over a centered input this is the z-score transform.
//
// Errors: ErrNilMatrix, ErrEmptyMatrix, ErrDimensionMismatch (len(scale) != Rows()).
// Complexity: O(r*c).
func ScaleRows(X Matrix, scale []float64) (*Dense, error) {
	if err := ValidateNonEmpty(X); err != nil {
		return nil, matrixErrorf(opScaleRows, err)
	}
	Y, err := ewScaleRows(X, scale)
	if err != nil {
		return nil, matrixErrorf(opScaleRows, err)
	}

	return Y, nil
}

// HasNonFinite reports whether any element of X is NaN or ±Inf.
// Stops at the first hit. Complexity: O(r*c) worst case.
func HasNonFinite(X Matrix) (bool, error) {
	if err := ValidateNotNil(X); err != nil {
		return false, matrixErrorf(opHasNonFinite, err)
	}
	if d, ok := X.(*Dense); ok {
		for _, v := range d.data {
			if isNonFinite(v) {
				return true, nil
			}
		}
		return false, nil
	}

	r, c := X.Rows(), X.Cols()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, err := X.At(i, j)
			if err != nil {
				return false, matrixErrorf(opHasNonFinite, err)
			}
			if isNonFinite(v) {
				return true, nil
			}
		}
	}

	return false, nil
}

// NonFiniteRows returns the ascending indices of rows holding at least one NaN or ±Inf.
// Complexity: O(r*c).
func NonFiniteRows(X Matrix) ([]int, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opNonFiniteRows, err)
	}
	var idx []int
	err := rowsOf(X, opNonFiniteRows, func(i int, row []float64) {
		for _, v := range row {
			if isNonFinite(v) {
				idx = append(idx, i)
				return
			}
		}
	})
	if err != nil {
		return nil, err
	}

	return idx, nil
}

// RowsStandardized reports whether every row without NaN/Inf has
// |mean| ≤ eps and |std − 1| ≤ eps (eps from WithEpsilon, DefaultEpsilon otherwise).
// Rows containing non-finite values are skipped; use NonFiniteRows to find them.
//
// Errors: ErrNilMatrix, ErrEmptyMatrix.
// Complexity: O(r*c).
func RowsStandardized(X Matrix, opts ...Option) (bool, error) {
	if err := ValidateNonEmpty(X); err != nil {
		return false, matrixErrorf(opRowsStandardized, err)
	}
	eps := gatherOptions(opts...).eps
	ok := true
	err := rowsOf(X, opRowsStandardized, func(i int, row []float64) {
		if !ok {
			return
		}
		mean, std := PopMeanStd(row)
		if isNonFinite(mean) || isNonFinite(std) {
			return // non-finite row, reported separately
		}
		if math.Abs(mean) > eps || math.Abs(std-1) > eps {
			ok = false
		}
	})
	if err != nil {
		return false, err
	}

	return ok, nil
}
