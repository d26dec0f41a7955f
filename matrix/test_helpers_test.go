// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic test fixtures and utilities for kernels.
//   • Keep helper failures fatal so table tests stay short.

package matrix_test

import (
	"testing"

	"github.com/katalvlaran/normbench/matrix"
)

// hide WRAPS any Matrix to hide its concrete type from type assertions.
// Use hide{X} in tests to force the non-*Dense (fallback) paths and assert
// fast-path == fallback.
type hide struct{ matrix.Matrix }

// MustDense ALLOCATES an r×c *Dense or fails the test (fatal on error).
func MustDense(t *testing.T, r, c int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(r, c)
	if err != nil {
		t.Fatalf("NewDense(%d,%d): %v", r, c, err)
	}
	return m
}

// NewFilledDense BUILDS an r×c *Dense from row-major vals (len must be r*c).
// The returned matrix does not validate NaN/Inf so fixtures may carry them.
func NewFilledDense(t *testing.T, r, c int, vals []float64) *matrix.Dense {
	t.Helper()
	if len(vals) != r*c {
		t.Fatalf("NewFilledDense: len(vals)=%d, want %d", len(vals), r*c)
	}
	m, err := matrix.NewDense(r, c, matrix.WithNoValidateNaNInf())
	if err != nil {
		t.Fatalf("NewDense(%d,%d): %v", r, c, err)
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if err = m.Set(i, j, vals[i*c+j]); err != nil {
				t.Fatalf("Set(%d,%d): %v", i, j, err)
			}
		}
	}
	return m
}

// MustAt READS m[i,j] or fails the test.
func MustAt(t *testing.T, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	if err != nil {
		t.Fatalf("At(%d,%d): %v", i, j, err)
	}
	return v
}

// CompareClose ASSERTS AllClose(a,b,rtol,atol).
func CompareClose(t *testing.T, a, b matrix.Matrix, rtol, atol float64) {
	t.Helper()
	ok, err := matrix.AllClose(a, b, rtol, atol)
	if err != nil {
		t.Fatalf("AllClose err: %v", err)
	}
	if !ok {
		t.Fatalf("AllClose=false (rtol=%g, atol=%g)", rtol, atol)
	}
}

// sliceClose ASSERTS |a[i]-b[i]| ≤ atol + rtol*|b[i]| element-wise.
func sliceClose(t *testing.T, a, b []float64, rtol, atol float64) {
	t.Helper()
	if len(a) != len(b) {
		t.Fatalf("slice lengths: %d vs %d", len(a), len(b))
	}
	var diff, absb float64
	for i := range a {
		diff = a[i] - b[i]
		if diff < 0 {
			diff = -diff
		}
		absb = b[i]
		if absb < 0 {
			absb = -absb
		}
		if diff > (atol + rtol*absb) {
			t.Fatalf("sliceClose idx=%d: got=%g want=%g (rtol=%g atol=%g)", i, a[i], b[i], rtol, atol)
		}
	}
}

func mustDense(b *testing.B, r, c int) *matrix.Dense {
	b.Helper()
	m, err := matrix.NewDense(r, c)
	if err != nil {
		b.Fatal(err)
	}
	return m
}

func fillDenseRand(b *testing.B, d *matrix.Dense, seed int64) {
	b.Helper()
	if err := matrix.FillUniform(d, matrix.NewRand(seed)); err != nil {
		b.Fatal(err)
	}
}
