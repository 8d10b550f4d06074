package compute

// DeviceInfo describes the substrate a backend executes on.
type DeviceInfo struct {
	Name    string `json:"name"`
	Arch    string `json:"arch"`
	Workers int    `json:"workers"`
	SIMD    string `json:"simd"`
}

// Backend is the execution substrate the solvers run on. It bundles the dense
// vector kernels with a parallel-for primitive so the same solver logic runs
// unchanged on a single thread or across a worker pool.
//
// Implementation notes:
//   - Dot and AddScaled must be safe for concurrent calls on disjoint slices;
//     ParallelFor callbacks rely on that.
//   - ParallelFor must not return before every invocation of fn has completed.
//     That return is the synchronization barrier callers order their merges
//     against.
//   - Close releases any workers the backend holds. A closed backend must not
//     be used again.
type Backend interface {
	// Dot returns the inner product of x and y. The slices must have equal
	// length.
	Dot(x, y []float64) float64

	// AddScaled sets dst = dst + alpha*x, in place.
	AddScaled(dst []float64, alpha float64, x []float64)

	// ParallelFor invokes fn(i) exactly once for every i in [0, n) and
	// returns only after all invocations have completed. Invocations may run
	// concurrently and in any order, so fn must be safe for concurrent use at
	// distinct indices.
	ParallelFor(n int, fn func(i int))

	// Info reports the device the backend executes on.
	Info() DeviceInfo

	// Name returns a short backend identifier ("serial", "parallel").
	Name() string

	// Close releases backend resources.
	Close() error
}
