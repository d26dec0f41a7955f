package bench

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/katalvlaran/normbench/matrix"
	"go.uber.org/zap"
)

// DefaultPasses is the number of timed passes of the reference benchmark.
const DefaultPasses = 20

// Runner times workloads. Build one with NewRunner; a Runner holds no per-run
// state and can run several workloads in sequence.
type Runner struct {
	clock            clock.Clock
	logger           *zap.Logger
	seed             int64
	warmup           int
	stopOnDegenerate bool
	host             string
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithClock replaces the wall clock, typically with clock.NewMock() in tests.
func WithClock(c clock.Clock) RunnerOption {
	return func(r *Runner) {
		if c != nil {
			r.clock = c
		}
	}
}

// WithLogger sets the logger; nil keeps the no-op logger.
func WithLogger(l *zap.Logger) RunnerOption {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithSeed sets the seed of the generator handed to Workload.Setup.
// 0 selects matrix.DefaultSeed.
func WithSeed(seed int64) RunnerOption {
	return func(r *Runner) { r.seed = seed }
}

// WithWarmup runs n untimed passes after Setup. Warm-up passes mutate the
// workload state like timed ones do. Negative n is treated as 0.
func WithWarmup(n int) RunnerOption {
	return func(r *Runner) {
		if n < 0 {
			n = 0
		}
		r.warmup = n
	}
}

// WithStopOnDegenerate ends the run with ErrDegenerate after the first timed
// pass that reports degenerate rows.
func WithStopOnDegenerate(on bool) RunnerOption {
	return func(r *Runner) { r.stopOnDegenerate = on }
}

// WithHost records a host description in every Result.
func WithHost(desc string) RunnerOption {
	return func(r *Runner) { r.host = desc }
}

// NewRunner returns a Runner using the wall clock and a no-op logger unless
// configured otherwise.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		clock:  clock.New(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Run sets w up, runs the warm-up passes, then times passes full passes.
//
// Only the pass loop is timed. The average is the total elapsed time of the
// loop divided by passes. ctx is checked before each pass; a cancelled run
// returns the wrapped ctx error and no Result.
//
// With WithStopOnDegenerate, a pass reporting degenerate rows ends the run; the
// partial Result (covering completed passes) is returned together with
// ErrDegenerate.
func (r *Runner) Run(ctx context.Context, w Workload, passes int) (*Result, error) {
	if w == nil {
		return nil, ErrNilWorkload
	}
	if passes <= 0 {
		return nil, errors.Wrapf(ErrNoPasses, "%s: passes=%d", w.Name(), passes)
	}

	rows, cols := w.Shape()
	seed := r.seed
	if seed == 0 {
		seed = matrix.DefaultSeed
	}
	res := &Result{
		RunID:           uuid.NewString(),
		Workload:        w.Name(),
		Rows:            rows,
		Cols:            cols,
		Seed:            seed,
		Warmup:          r.warmup,
		Host:            r.host,
		PerPass:         make([]time.Duration, 0, passes),
		FirstDegenerate: -1,
	}
	if f, ok := w.(footprinter); ok {
		res.Footprint = f.Footprint()
	}
	log := r.logger.With(zap.String("run_id", res.RunID), zap.String("workload", res.Workload))

	start := r.clock.Now()
	if err := w.Setup(matrix.NewRand(seed)); err != nil {
		return nil, errors.Wrapf(err, "%s: setup", w.Name())
	}
	log.Debug("setup done",
		zap.Int("rows", rows), zap.Int("cols", cols), zap.Int64("seed", seed),
		zap.Duration("elapsed", r.clock.Since(start)))

	for i := 0; i < r.warmup; i++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrapf(err, "%s: warm-up %d", w.Name(), i)
		}
		if _, err := w.Pass(ctx); err != nil {
			return nil, errors.Wrapf(err, "%s: warm-up %d", w.Name(), i)
		}
	}
	if r.warmup > 0 {
		log.Debug("warm-up done", zap.Int("passes", r.warmup))
	}

	var runErr error
	loopStart := r.clock.Now()
	for i := 0; i < passes; i++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrapf(err, "%s: pass %d", w.Name(), i)
		}

		t0 := r.clock.Now()
		st, err := w.Pass(ctx)
		d := r.clock.Since(t0)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: pass %d", w.Name(), i)
		}
		res.PerPass = append(res.PerPass, d)
		res.Items = st.Items
		log.Debug("pass", zap.Int("pass", i), zap.Duration("elapsed", d), zap.Int("degenerate", st.Degenerate))

		if st.Degenerate > 0 {
			if res.DegenerateRows == 0 {
				res.FirstDegenerate = st.FirstDegenerate
				log.Warn("degenerate rows: zero or non-finite std",
					zap.Int("pass", i), zap.Int("rows", st.Degenerate), zap.Int("first_row", st.FirstDegenerate))
			}
			res.DegenerateRows += st.Degenerate
			if r.stopOnDegenerate {
				runErr = errors.Wrapf(ErrDegenerate, "%s: pass %d: %d rows", w.Name(), i, st.Degenerate)
				break
			}
		}
	}
	res.Total = r.clock.Since(loopStart)
	res.Passes = len(res.PerPass)
	res.AvgSeconds = average(res.Total, res.Passes)

	summary, err := Summarize(res.PerPass)
	if err != nil {
		return nil, errors.Wrap(err, w.Name())
	}
	res.Summary = summary

	log.Info("run complete",
		zap.Int("passes", res.Passes),
		zap.Duration("total", res.Total),
		zap.Float64("avg_seconds", res.AvgSeconds),
		zap.Int("degenerate_rows", res.DegenerateRows))

	return res, runErr
}
