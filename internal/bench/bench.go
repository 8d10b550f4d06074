// Package bench runs named micro-benchmarks over the compute backends and
// reports timing, throughput and verification outcomes.
package bench

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/solvelabs/descent/internal/compute"
	"github.com/solvelabs/descent/internal/metrics"
)

// Runner is a single named benchmark.
type Runner interface {
	Name() string
	Run(be compute.Backend, log *zap.Logger) (*Report, error)
}

// Report is the outcome of one runner.
type Report struct {
	Name    string                 `json:"name"`
	Elapsed time.Duration          `json:"elapsed"`
	GFLOPS  float64                `json:"gflops,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Options carries the knobs shared by the built-in runners.
type Options struct {
	MatrixSize   int
	VectorLength int
	VectorReps   int
	Obs          int
	Vars         int
	Passes       int
	Blocks       []int
	Seed         int64
}

// NewRunner creates a runner by name.
func NewRunner(kind string, opts Options) (Runner, error) {
	switch kind {
	case "matmul":
		return &MatMulRunner{Size: opts.MatrixSize, Seed: opts.Seed}, nil
	case "axpy":
		return &AxpyRunner{Length: opts.VectorLength, Reps: opts.VectorReps, Seed: opts.Seed}, nil
	case "solve":
		return &SolveRunner{Obs: opts.Obs, Vars: opts.Vars, Passes: opts.Passes, Blocks: opts.Blocks, Seed: opts.Seed}, nil
	default:
		return nil, fmt.Errorf("unknown benchmark: %s", kind)
	}
}

// RunSuite executes the runners in order. Every result is recorded to the
// Prometheus instruments before the next runner starts; the first failure
// aborts the suite and returns the reports gathered so far.
func RunSuite(runners []Runner, be compute.Backend, log *zap.Logger) ([]*Report, error) {
	reports := make([]*Report, 0, len(runners))
	for _, r := range runners {
		log.Info("Running benchmark...", zap.String("runner", r.Name()))

		rep, err := r.Run(be, log)
		if err != nil {
			log.Error("Benchmark failed", zap.String("runner", r.Name()), zap.Error(err))
			return reports, fmt.Errorf("bench: %s: %w", r.Name(), err)
		}

		metrics.BenchDuration.WithLabelValues(r.Name()).Observe(float64(rep.Elapsed) / float64(time.Millisecond))
		if rep.GFLOPS > 0 {
			metrics.BenchGFLOPS.WithLabelValues(r.Name()).Set(rep.GFLOPS)
		}

		log.Info("Benchmark complete",
			zap.String("runner", r.Name()),
			zap.Duration("elapsed", rep.Elapsed),
			zap.Float64("gflops", rep.GFLOPS))
		reports = append(reports, rep)
	}
	return reports, nil
}

func gflops(flops float64, elapsed time.Duration) float64 {
	s := elapsed.Seconds()
	if s <= 0 {
		return 0
	}
	return flops / s / 1e9
}

func millis(elapsed time.Duration) float64 {
	return float64(elapsed) / float64(time.Millisecond)
}
