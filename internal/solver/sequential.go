package solver

import (
	"github.com/solvelabs/descent/internal/compute"
)

// SolveSequential runs passes full Gauss–Seidel coordinate-descent sweeps
// over sys and returns the resulting state.
//
// Within a sweep each column j takes the one-dimensional least-squares step
// da = ⟨X_j, e⟩ / ⟨X_j, X_j⟩ and folds it into the shared residual before the
// next column is visited, so later columns always see the fully updated
// residual. The caller controls accuracy solely through the pass count; no
// convergence check is performed.
//
// The backend supplies the dense kernels only; this variant has no
// parallelism to exploit, every step depends on the previous one. A nil
// backend uses the serial kernels.
func SolveSequential(sys *System, passes int, be compute.Backend) (*State, error) {
	if err := checkSolve(sys, passes); err != nil {
		return nil, err
	}
	if be == nil {
		be = compute.NewSerialBackend()
	}

	st := newState(sys)
	for pass := 0; pass < passes; pass++ {
		for j := 0; j < sys.vars; j++ {
			col := sys.cols[j]
			da := be.Dot(col, st.Residual) / sys.norms[j]
			be.AddScaled(st.Residual, -da, col)
			st.Coef[j] += da
		}
		st.Passes++
	}
	return st, nil
}
