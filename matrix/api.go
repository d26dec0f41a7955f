// SPDX-License-Identifier: MIT
// Package matrix: public API facades.
//
// Purpose:
//   - Provide thin entry points for common tasks across the package.
//   - Each facade delegates to the canonical implementation.

package matrix

import "math"

// ZerosLike returns a new zero matrix with the same shape and numeric policy as m.
// Handy to preallocate the destination of a copy-out normalization.
func ZerosLike(m *Dense) (*Dense, error) {
	if m == nil {
		return nil, matrixErrorf("ZerosLike", ErrNilMatrix)
	}
	if m.validateNaNInf {
		return NewDense(m.r, m.c)
	}

	return NewDense(m.r, m.c, WithNoValidateNaNInf())
}

// AllClose reports whether |a[i,j] − b[i,j]| ≤ atol + rtol·|b[i,j]| for every element.
// NaN equals NaN and same-signed infinities are equal, so matrices that carry
// the same propagated non-finite values still compare as close.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch, wrapped At errors.
// Complexity: O(r*c).
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if err := ValidateSameShape(a, b); err != nil {
		return false, matrixErrorf("AllClose", err)
	}
	r, c := a.Rows(), a.Cols()
	var x, y float64
	var err error
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if x, err = a.At(i, j); err != nil {
				return false, matrixErrorf("AllClose", err)
			}
			if y, err = b.At(i, j); err != nil {
				return false, matrixErrorf("AllClose", err)
			}
			if !closeScalar(x, y, rtol, atol) {
				return false, nil
			}
		}
	}

	return true, nil
}

// closeScalar is the element rule shared by AllClose.
func closeScalar(x, y, rtol, atol float64) bool {
	switch {
	case math.IsNaN(x) || math.IsNaN(y):
		return math.IsNaN(x) && math.IsNaN(y)
	case math.IsInf(x, 0) || math.IsInf(y, 0):
		return x == y
	}

	return math.Abs(x-y) <= atol+rtol*math.Abs(y)
}
