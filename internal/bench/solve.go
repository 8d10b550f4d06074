package bench

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/solvelabs/descent/internal/compute"
	"github.com/solvelabs/descent/internal/solver"
	"github.com/solvelabs/descent/internal/synth"
)

// solveDriftTol is how much residual bookkeeping drift a benchmark-sized
// solve may accumulate before it counts as a failure.
const solveDriftTol = 1e-6

// SolveRunner fits a synthetic linear system sequentially and at several
// block widths, reporting timing alongside the accuracy ladder. Every solve
// is checked against a residual recomputed from scratch.
type SolveRunner struct {
	Obs    int
	Vars   int
	Passes int
	Blocks []int
	Seed   int64
}

func (r *SolveRunner) Name() string { return "solve" }

func (r *SolveRunner) Run(be compute.Backend, log *zap.Logger) (*Report, error) {
	if r.Passes < 1 {
		return nil, fmt.Errorf("need at least one pass, got %d", r.Passes)
	}

	gen := synth.NewGenerator(r.Seed)
	x, aTrue, y := gen.LinearSystem(r.Obs, r.Vars)
	sys, err := solver.NewSystem(x, y)
	if err != nil {
		return nil, err
	}

	// One coordinate visit is a dot plus an axpy over the observations.
	flops := 4 * float64(r.Obs) * float64(r.Vars) * float64(r.Passes)

	start := time.Now()
	seq, err := solver.SolveSequential(sys, r.Passes, be)
	if err != nil {
		return nil, err
	}
	seqElapsed := time.Since(start)
	if err := solver.Verify(sys, seq, solveDriftTol); err != nil {
		return nil, err
	}

	total := seqElapsed
	ladder := make([]map[string]interface{}, 0, len(r.Blocks))
	for _, width := range r.Blocks {
		start = time.Now()
		st, err := solver.SolveBlocked(sys, r.Passes, width, be)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", width, err)
		}
		elapsed := time.Since(start)
		if err := solver.Verify(sys, st, solveDriftTol); err != nil {
			return nil, fmt.Errorf("block %d: %w", width, err)
		}

		total += elapsed
		ladder = append(ladder, map[string]interface{}{
			"block":    width,
			"ms":       millis(elapsed),
			"residual": st.ResidualNorm(),
			"mae":      synth.MeanAbsError(st.Coef, aTrue),
		})
	}

	log.Debug("solve ladder complete",
		zap.Int("obs", r.Obs),
		zap.Int("vars", r.Vars),
		zap.Int("passes", r.Passes),
		zap.Float64("sequentialResidual", seq.ResidualNorm()))

	return &Report{
		Name:    r.Name(),
		Elapsed: total,
		GFLOPS:  gflops(flops, seqElapsed),
		Details: map[string]interface{}{
			"obs":                 r.Obs,
			"vars":                r.Vars,
			"passes":              r.Passes,
			"sequential_ms":       millis(seqElapsed),
			"sequential_residual": seq.ResidualNorm(),
			"sequential_mae":      synth.MeanAbsError(seq.Coef, aTrue),
			"blocked":             ladder,
		},
	}, nil
}
