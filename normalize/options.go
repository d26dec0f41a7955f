package normalize

import "fmt"

// Defaults reproduce the reference benchmark: faithful NaN propagation,
// literal loops, one goroutine.
const (
	DefaultPolicy  = PolicyPropagate
	DefaultKernel  = KernelLoop
	DefaultWorkers = 1
)

// Option configures a Normalizer.
type Option func(*options)

type options struct {
	policy  Policy
	kernel  Kernel
	workers int
}

// WithPolicy sets the degenerate-row policy. Panics on an undefined value.
func WithPolicy(p Policy) Option {
	if p < PolicyPropagate || p > PolicySkip {
		panic(fmt.Sprintf("normalize: WithPolicy: undefined policy %d", int(p)))
	}
	return func(o *options) { o.policy = p }
}

// WithKernel sets the row kernel. Panics on an undefined value.
func WithKernel(k Kernel) Option {
	if k < KernelLoop || k > KernelFloats {
		panic(fmt.Sprintf("normalize: WithKernel: undefined kernel %d", int(k)))
	}
	return func(o *options) { o.kernel = k }
}

// WithWorkers splits rows into n contiguous blocks processed concurrently.
// n must be ≥ 1; 1 keeps the pass single-threaded.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("normalize: WithWorkers: n must be >= 1, got %d", n))
	}
	return func(o *options) { o.workers = n }
}

func gatherOptions(opts ...Option) options {
	o := options{
		policy:  DefaultPolicy,
		kernel:  DefaultKernel,
		workers: DefaultWorkers,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
