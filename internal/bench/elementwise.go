package bench

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/solvelabs/descent/internal/compute"
	"github.com/solvelabs/descent/internal/synth"
)

// AxpyRunner streams repeated y += alpha*x updates through the backend, once
// whole-vector and once chunked across workers. The two paths touch each
// element with identical arithmetic, so their outputs must match exactly;
// any divergence is reported as a failure.
type AxpyRunner struct {
	Length int
	Reps   int
	Seed   int64
}

func (r *AxpyRunner) Name() string { return "axpy" }

func (r *AxpyRunner) Run(be compute.Backend, log *zap.Logger) (*Report, error) {
	if r.Length < 1 || r.Reps < 1 {
		return nil, fmt.Errorf("need positive length and reps, got %d/%d", r.Length, r.Reps)
	}

	gen := synth.NewGenerator(r.Seed)
	x := gen.Vector(r.Length)
	seed := gen.Vector(r.Length)

	y := make([]float64, r.Length)
	copy(y, seed)
	// Small alpha keeps the accumulator in range over many reps.
	const alpha = 1e-4

	start := time.Now()
	for rep := 0; rep < r.Reps; rep++ {
		be.AddScaled(y, alpha, x)
	}
	serialElapsed := time.Since(start)

	y2 := make([]float64, r.Length)
	copy(y2, seed)
	chunks := be.Info().Workers
	if chunks < 1 {
		chunks = 1
	}
	span := (r.Length + chunks - 1) / chunks

	start = time.Now()
	for rep := 0; rep < r.Reps; rep++ {
		be.ParallelFor(chunks, func(c int) {
			lo := c * span
			hi := lo + span
			if hi > r.Length {
				hi = r.Length
			}
			if lo >= hi {
				return
			}
			floats.AddScaled(y2[lo:hi], alpha, x[lo:hi])
		})
	}
	parallelElapsed := time.Since(start)

	if !floats.Equal(y, y2) {
		return nil, fmt.Errorf("whole-vector and chunked updates diverged")
	}

	log.Debug("axpy paths agree",
		zap.Int("length", r.Length),
		zap.Int("reps", r.Reps),
		zap.Int("chunks", chunks))

	flops := 2 * float64(r.Length) * float64(r.Reps)
	return &Report{
		Name:    r.Name(),
		Elapsed: serialElapsed + parallelElapsed,
		GFLOPS:  gflops(flops, serialElapsed),
		Details: map[string]interface{}{
			"length":          r.Length,
			"reps":            r.Reps,
			"serial_ms":       millis(serialElapsed),
			"serial_gflops":   gflops(flops, serialElapsed),
			"parallel_ms":     millis(parallelElapsed),
			"parallel_gflops": gflops(flops, parallelElapsed),
			"consistent":      true,
		},
	}, nil
}
