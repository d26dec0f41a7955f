// Policies, kernels and per-pass statistics for row normalization.

package normalize

import (
	"errors"
	"fmt"
)

// Policy controls what a pass does with a degenerate row, i.e. a row whose
// population standard deviation is zero (constant row) or whose mean/std is
// NaN or ±Inf (a row already corrupted by an earlier pass).
//
//   - PolicyPropagate: divide anyway; 0/0 yields NaN and the row turns
//     non-finite. Matches the reference benchmark exactly. Default.
//   - PolicyReject: rows must have non-zero, finite variance; the first
//     degenerate row aborts the pass with a *RowError. That row is left
//     untouched; rows processed before it are already normalized.
//   - PolicySkip: leave degenerate rows unchanged and keep going.
type Policy int

const (
	// PolicyPropagate lets non-finite values flow through silently.
	PolicyPropagate Policy = iota

	// PolicyReject enforces the non-zero variance precondition.
	PolicyReject

	// PolicySkip leaves degenerate rows as they are.
	PolicySkip
)

// String returns the flag spelling of p.
func (p Policy) String() string {
	switch p {
	case PolicyPropagate:
		return "propagate"
	case PolicyReject:
		return "reject"
	case PolicySkip:
		return "skip"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy maps a flag/config spelling to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "propagate", "":
		return PolicyPropagate, nil
	case "reject":
		return PolicyReject, nil
	case "skip":
		return PolicySkip, nil
	}

	return 0, fmt.Errorf("normalize: policy %q: %w", s, ErrUnknownPolicy)
}

// Kernel selects the row implementation.
//
//   - KernelLoop: literal loops: two-pass mean/std, subtract, divide.
//   - KernelFloats: gonum stat.PopMeanVariance + floats.AddConst + floats.Scale(1/std).
//     Same contract; last-bit differences are possible because it multiplies by
//     the reciprocal and gonum compensates the variance sum.
type Kernel int

const (
	// KernelLoop is the literal double loop. Default.
	KernelLoop Kernel = iota

	// KernelFloats delegates to gonum vector routines.
	KernelFloats
)

// String returns the flag spelling of k.
func (k Kernel) String() string {
	switch k {
	case KernelLoop:
		return "loop"
	case KernelFloats:
		return "floats"
	default:
		return fmt.Sprintf("Kernel(%d)", int(k))
	}
}

// ParseKernel maps a flag/config spelling to a Kernel.
func ParseKernel(s string) (Kernel, error) {
	switch s {
	case "loop", "":
		return KernelLoop, nil
	case "floats":
		return KernelFloats, nil
	}

	return 0, fmt.Errorf("normalize: kernel %q: %w", s, ErrUnknownKernel)
}

// PassStats summarizes one full pass over a matrix.
type PassStats struct {
	Rows            int // rows visited
	Degenerate      int // rows with zero or non-finite std (or non-finite mean)
	FirstDegenerate int // smallest degenerate row index, -1 when none
}

// merge folds o into s; used to combine per-worker stats.
func (s *PassStats) merge(o PassStats) {
	s.Rows += o.Rows
	s.Degenerate += o.Degenerate
	if o.FirstDegenerate >= 0 && (s.FirstDegenerate < 0 || o.FirstDegenerate < s.FirstDegenerate) {
		s.FirstDegenerate = o.FirstDegenerate
	}
}

var (
	// ErrZeroVariance is returned under PolicyReject for a constant row.
	ErrZeroVariance = errors.New("normalize: row has zero variance")

	// ErrNonFiniteStats is returned under PolicyReject when a row mean or std is NaN/±Inf.
	ErrNonFiniteStats = errors.New("normalize: row mean or std is not finite")

	// ErrUnknownPolicy reports an unrecognized policy spelling.
	ErrUnknownPolicy = errors.New("normalize: unknown policy")

	// ErrUnknownKernel reports an unrecognized kernel spelling.
	ErrUnknownKernel = errors.New("normalize: unknown kernel")
)

// RowError locates a rejected row. It unwraps to ErrZeroVariance or ErrNonFiniteStats.
type RowError struct {
	Row  int
	Mean float64
	Std  float64
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d (mean=%g, std=%g): %v", e.Row, e.Mean, e.Std, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }
