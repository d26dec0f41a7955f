// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set/Row return errors instead of panicking.
//   - Hand out no-copy row views (Row, EachRow) so row kernels run on contiguous slices.
//   - Enforce a numeric policy (optional rejection of NaN/Inf) from a single source of truth.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set/Row: O(1); Clone: O(r*c); CopyFrom: O(r*c).

package matrix

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt       = "At"       // method tag used in error wrappers
	ctxSet      = "Set"      // method tag used in error wrappers
	ctxApply    = "Apply"    // method tag used in error wrappers
	ctxRow      = "Row"      // method tag used in error wrappers
	ctxCopyFrom = "CopyFrom" // method tag used in error wrappers
	ctxFromRows = "NewDenseFromRows"
)

// ---------- Formatting literals  ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
// Stable, human-friendly messages; preserves the sentinel via %w.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
//   - validateNaNInf enables optional NaN/Inf rejection in Set/Apply.
type Dense struct {
	r, c           int       // row and column counts (>=0; zero allowed only for internal zero-OK constructors)
	data           []float64 // contiguous row-major storage (len == r*c)
	validateNaNInf bool      // numeric guard: reject NaN/Inf in Set/Apply when true
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates an r×c zero matrix using row-major storage.
// MAIN DESCRIPTION:
//   - Public constructor for Dense with strict shape validation and default numeric policy.
//
// Implementation:
//   - Stage 1: validate rows>0 && cols>0; else ErrInvalidDimensions.
//   - Stage 2: allocate zero-filled buffer.
//   - Stage 3: resolve numeric policy from opts (defaults when none).
//
// Inputs:
//   - rows, cols: positive dimensions.
//   - opts: numeric policy (WithNoValidateNaNInf, ...).
//
// Errors:
//   - ErrInvalidDimensions (shape contract violation).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int, opts ...Option) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	o := gatherOptions(opts...)

	return &Dense{
		r:              rows,
		c:              cols,
		data:           make([]float64, rows*cols), // make() zero-fills deterministically
		validateNaNInf: o.validateNaNInf,
	}, nil
}

// newDenseZeroOK is an internal constructor that allows rows==0 or cols==0.
// Used by tests (via export) to exercise empty-matrix guards in kernels.
func newDenseZeroOK(rows, cols int) (*Dense, error) {
	if rows < 0 || cols < 0 {
		return nil, ErrInvalidDimensions
	}

	return &Dense{
		r:              rows,
		c:              cols,
		data:           make([]float64, rows*cols),
		validateNaNInf: DefaultValidateNaNInf,
	}, nil
}

// NewDenseFromRows builds a Dense from a rectangular [][]float64 literal.
// The literal is copied; later edits to vals do not affect the matrix.
//
// Errors:
//   - ErrBadShape when vals is empty, has an empty first row, or is ragged.
//   - ErrNaNInf when the policy validates and a value is not finite.
//
// Complexity: O(r*c).
func NewDenseFromRows(vals [][]float64, opts ...Option) (*Dense, error) {
	if len(vals) == 0 || len(vals[0]) == 0 {
		return nil, fmt.Errorf("%s: %w", ctxFromRows, ErrBadShape)
	}
	r, c := len(vals), len(vals[0])
	m, err := NewDense(r, c, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ctxFromRows, err)
	}

	var i, j int
	for i = 0; i < r; i++ {
		if len(vals[i]) != c {
			return nil, fmt.Errorf("%s: row %d has %d cols, want %d: %w", ctxFromRows, i, len(vals[i]), c, ErrBadShape)
		}
		for j = 0; j < c; j++ {
			if m.validateNaNInf && isNonFinite(vals[i][j]) {
				return nil, denseErrorf(ctxFromRows, i, j, ErrNaNInf)
			}
		}
		copy(m.data[i*c:(i+1)*c], vals[i])
	}

	return m, nil
}

// Rows returns the row count. No side effects.
// Complexity: O(1).
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count. No side effects.
// Complexity: O(1).
func (m *Dense) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call for convenience.
// Complexity: O(1).
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// ValidatesNaNInf reports whether Set/Apply reject non-finite values.
func (m *Dense) ValidatesNaNInf() bool { return m.validateNaNInf }

// indexOf computes the row-major offset or returns ErrOutOfRange.
// Public methods wrap the sentinel with coordinates and method name.
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	// Row-major offset: i*c + j.
	return row*m.c + col, nil
}

// At returns the value at (row, col) or ErrOutOfRange.
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[off], nil
}

// Set stores v at (row, col) or returns an error (bounds or numeric policy).
// MAIN DESCRIPTION:
//   - Safe element write with optional finite-only policy.
//
// Implementation:
//   - Stage 1: compute offset via indexOf (bounds check).
//   - Stage 2: enforce numeric policy (reject NaN/±Inf when enabled).
//   - Stage 3: write into flat buffer.
//
// Errors:
//   - ErrOutOfRange for bounds; ErrNaNInf for invalid numbers.
//
// Complexity:
//   - Time O(1), Space O(1).
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	if m.validateNaNInf && isNonFinite(v) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[off] = v

	return nil
}

// Row returns row i as a slice sharing the matrix storage.
// MAIN DESCRIPTION:
//   - No-copy view of one row; writes through the slice mutate the matrix.
//
// Behavior highlights:
//   - The slice is capped (three-index slice) so append on it never spills
//     into the next row.
//   - Writes through the view bypass the NaN/Inf policy by contract.
//
// Errors:
//   - ErrOutOfRange when i is outside [0, Rows()).
//
// Complexity:
//   - Time O(1), Space O(1).
func (m *Dense) Row(i int) ([]float64, error) {
	if i < 0 || i >= m.r {
		return nil, denseErrorf(ctxRow, i, 0, ErrOutOfRange)
	}

	return m.rowUnchecked(i), nil
}

// rowUnchecked is the hot-path variant of Row for callers that already bounded i.
func (m *Dense) rowUnchecked(i int) []float64 {
	lo := i * m.c
	hi := lo + m.c

	return m.data[lo:hi:hi]
}

// EachRow visits rows in ascending order, passing a view sharing storage.
// Stops early when f returns false. Complexity: O(r) calls, O(1) extra space.
func (m *Dense) EachRow(f RowVisitor) {
	for i := 0; i < m.r; i++ {
		if !f(i, m.rowUnchecked(i)) {
			return
		}
	}
}

// Clone returns a deep copy (new buffer, same numeric policy).
// Complexity: O(r*c).
func (m *Dense) Clone() Matrix {
	return m.cloneDense()
}

// CloneDense is Clone with the concrete return type.
func (m *Dense) CloneDense() *Dense {
	return m.cloneDense()
}

func (m *Dense) cloneDense() *Dense {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{
		r:              m.r,
		c:              m.c,
		data:           cp,
		validateNaNInf: m.validateNaNInf, // preserve guard policy
	}
}

// CopyFrom overwrites m with the contents of src. Shapes must match.
// The numeric policy of m is kept; values are copied verbatim.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(r*c).
func (m *Dense) CopyFrom(src *Dense) error {
	if src == nil {
		return denseErrorf(ctxCopyFrom, 0, 0, ErrNilMatrix)
	}
	if src.r != m.r || src.c != m.c {
		return denseErrorf(ctxCopyFrom, src.r, src.c, ErrDimensionMismatch)
	}
	copy(m.data, src.data)

	return nil
}

// String provides a readable row-wise dump for diagnostics.
// Not for hot paths; for large matrices print a few rows instead.
func (m *Dense) String() string {
	var b strings.Builder
	var i, j, base int
	for i = 0; i < m.r; i++ {
		b.WriteString(_fmtRowOpen)
		base = i * m.c
		for j = 0; j < m.c; j++ {
			b.WriteString(strconv.FormatFloat(m.data[base+j], 'g', -1, 64))
			if j+1 < m.c {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}

// Apply replaces each element with f(i,j,v) in-place.
// MAIN DESCRIPTION:
//   - In-place map with policy enforcement and deterministic order.
//
// Behavior highlights:
//   - Deterministic row-major order; no extra allocations.
//   - Respects validateNaNInf (rejects NaN/±Inf when enabled).
//   - Early error aborts; elements written before the error remain updated.
//
// Complexity:
//   - Time O(r*c), Space O(1).
func (m *Dense) Apply(f func(i, j int, v float64) float64) error {
	var i, j, base int
	var nv float64

	for i = 0; i < m.r; i++ {
		base = i * m.c
		for j = 0; j < m.c; j++ {
			nv = f(i, j, m.data[base+j])
			if m.validateNaNInf && (math.IsNaN(nv) || math.IsInf(nv, 0)) {
				return denseErrorf(ctxApply, i, j, ErrNaNInf)
			}
			m.data[base+j] = nv
		}
	}

	return nil
}
