// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide small element-wise and broadcast kernels to avoid duplicating tight
//     loops across higher-level ops (row statistics, normalization).
//   - Keep all loops deterministic and cache-friendly with Dense fast-paths.
//
// Design:
//   - ew* copy kernels are UNEXPORTED (internal micro-kernels behind CenterRows/ScaleRows).
//   - SubConst/DivConst are the exported in-place vector kernels used on row views.
//
// Determinism & Performance:
//   - Fixed loop orders (i→j or flat 0..n-1).
//   - In-place kernels allocate nothing.

package matrix

// SubConst computes x[j] -= c for every j, in place. Complexity: O(n).
func SubConst(x []float64, c float64) {
	for j := range x {
		x[j] -= c
	}
}

// DivConst computes x[j] /= c for every j, in place.
// Division (not multiplication by 1/c) keeps results bit-identical to a naive
// per-element divide; c==0 yields ±Inf or NaN per IEEE-754. Complexity: O(n).
func DivConst(x []float64, c float64) {
	for j := range x {
		x[j] /= c
	}
}

// ewBroadcastSubRows computes out[i,j] = X[i,j] - rowMeans[i].
// Time: O(r*c). Space: O(r*c). Deterministic i→j loops.
func ewBroadcastSubRows(X Matrix, rowMeans []float64) (*Dense, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf("broadcastSubRows", err)
	}
	r, c := X.Rows(), X.Cols()
	if err := ValidateVecLen(rowMeans, r); err != nil {
		return nil, matrixErrorf("broadcastSubRows", err)
	}
	out, err := NewDense(r, c, WithNoValidateNaNInf())
	if err != nil {
		return nil, matrixErrorf("broadcastSubRows", err)
	}

	// Dense fast-path.
	if d, ok := X.(*Dense); ok {
		for i := 0; i < r; i++ {
			base := i * c
			rm := rowMeans[i] // cache row mean once per row
			for j := 0; j < c; j++ {
				out.data[base+j] = d.data[base+j] - rm
			}
		}
		return out, nil
	}

	// Generic fallback.
	for i := 0; i < r; i++ {
		rm := rowMeans[i]
		for j := 0; j < c; j++ {
			v, e := X.At(i, j)
			if e != nil {
				return nil, matrixErrorf("broadcastSubRows", e)
			}
			out.data[i*c+j] = v - rm
		}
	}
	return out, nil
}

// ewScaleRows computes out[i,j] = X[i,j] * scale[i].
// Time: O(r*c). Space: O(r*c). Deterministic i→j loops.
func ewScaleRows(X Matrix, scale []float64) (*Dense, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf("scaleRows", err)
	}
	r, c := X.Rows(), X.Cols()
	if err := ValidateVecLen(scale, r); err != nil {
		return nil, matrixErrorf("scaleRows", err)
	}
	out, err := NewDense(r, c, WithNoValidateNaNInf())
	if err != nil {
		return nil, matrixErrorf("scaleRows", err)
	}

	if d, ok := X.(*Dense); ok {
		for i := 0; i < r; i++ {
			base := i * c
			sf := scale[i]
			for j := 0; j < c; j++ {
				out.data[base+j] = d.data[base+j] * sf
			}
		}
		return out, nil
	}

	for i := 0; i < r; i++ {
		sf := scale[i]
		for j := 0; j < c; j++ {
			v, e := X.At(i, j)
			if e != nil {
				return nil, matrixErrorf("scaleRows", e)
			}
			out.data[i*c+j] = v * sf
		}
	}
	return out, nil
}
