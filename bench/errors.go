package bench

import "github.com/cockroachdb/errors"

var (
	// ErrNoPasses is returned when a run asks for zero or a negative number of timed passes.
	// An average over zero passes is undefined.
	ErrNoPasses = errors.New("bench: at least one timed pass is required")

	// ErrNilWorkload is returned when Run is given no workload.
	ErrNilWorkload = errors.New("bench: nil workload")

	// ErrNotSetUp is returned by a workload Pass called before Setup.
	ErrNotSetUp = errors.New("bench: workload not set up")

	// ErrDegenerate stops a run configured WithStopOnDegenerate once a pass reports
	// degenerate rows.
	ErrDegenerate = errors.New("bench: degenerate rows produced")

	// ErrBadLimit reports a negative primes limit.
	ErrBadLimit = errors.New("bench: primes limit must be >= 0")
)
