package compute

import (
	"fmt"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/floats"
)

// minParallelSpan is the smallest index range worth handing to the pool.
// Below it the scheduling overhead outweighs the work.
const minParallelSpan = 4

// ParallelBackend spreads ParallelFor ranges across a persistent pool of
// worker goroutines. The vector kernels themselves stay single-threaded; the
// parallelism seam is the index range, which is where the blocked solver
// needs it.
type ParallelBackend struct {
	workers int
	tasks   chan func()
	wg      sync.WaitGroup
	once    sync.Once
}

// NewParallelBackend starts a pool with the given number of workers.
// workers <= 0 uses runtime.NumCPU().
func NewParallelBackend(workers int) *ParallelBackend {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	p := &ParallelBackend{
		workers: workers,
		tasks:   make(chan func(), workers*2),
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

func (p *ParallelBackend) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		task()
	}
}

// Dot returns the inner product of x and y.
func (p *ParallelBackend) Dot(x, y []float64) float64 {
	return floats.Dot(x, y)
}

// AddScaled sets dst = dst + alpha*x.
func (p *ParallelBackend) AddScaled(dst []float64, alpha float64, x []float64) {
	floats.AddScaled(dst, alpha, x)
}

// ParallelFor chunks [0, n) across the pool and blocks until every fn(i) has
// run. Ranges too small to amortize the handoff run inline on the caller.
func (p *ParallelBackend) ParallelFor(n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	if n < minParallelSpan*2 || p.workers == 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	chunks := p.workers
	if n < chunks*minParallelSpan {
		chunks = n / minParallelSpan
	}
	span := (n + chunks - 1) / chunks

	var barrier sync.WaitGroup
	for lo := 0; lo < n; lo += span {
		hi := lo + span
		if hi > n {
			hi = n
		}
		barrier.Add(1)
		lo, hi := lo, hi
		p.tasks <- func() {
			defer barrier.Done()
			for i := lo; i < hi; i++ {
				fn(i)
			}
		}
	}
	barrier.Wait()
}

// Info reports the device the backend executes on.
func (p *ParallelBackend) Info() DeviceInfo {
	return DeviceInfo{
		Name:    fmt.Sprintf("cpu pool (%s, %d workers)", runtime.GOARCH, p.workers),
		Arch:    runtime.GOARCH,
		Workers: p.workers,
		SIMD:    simdSummary(),
	}
}

// Name returns the backend identifier.
func (p *ParallelBackend) Name() string { return "parallel" }

// Close stops the worker pool and waits for the workers to drain. Safe to
// call more than once.
func (p *ParallelBackend) Close() error {
	p.once.Do(func() {
		close(p.tasks)
		p.wg.Wait()
	})
	return nil
}
