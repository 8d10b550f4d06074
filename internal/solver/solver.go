// Package solver implements coordinate-descent least-squares solving for
// dense overdetermined systems X·a ≈ y.
//
// Two variants share one data model: SolveSequential folds every coefficient
// correction into the shared residual before the next coefficient is touched
// (Gauss–Seidel order), while SolveBlocked computes all corrections inside a
// fixed-size block against one residual snapshot and merges them at the block
// boundary, which turns the in-block work into independent reductions a
// compute backend may run in parallel.
package solver

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// minColumnNorm is the smallest column self dot product the correction step
// can divide by without drifting into subnormal territory. Anything below it
// is treated as a degenerate column.
const minColumnNorm = 2.2250738585072014e-308

// System is an immutable least-squares problem X·a ≈ y. X is stored
// column-major because every solver step touches exactly one column; the
// per-column norms ⟨X_j, X_j⟩ are cached at construction and never change.
type System struct {
	obs, vars int
	cols      [][]float64
	y         []float64
	norms     []float64
}

// NewSystem builds a System from a dense matrix and its target vector. The
// matrix is repacked into column-major storage; x and y are not retained.
func NewSystem(x mat.Matrix, y []float64) (*System, error) {
	obs, vars := x.Dims()
	if obs < 1 || vars < 1 {
		return nil, fmt.Errorf("%w: matrix is %dx%d", ErrShapeMismatch, obs, vars)
	}
	cols := make([][]float64, vars)
	for j := 0; j < vars; j++ {
		col := make([]float64, obs)
		mat.Col(col, j, x)
		cols[j] = col
	}
	target := make([]float64, len(y))
	copy(target, y)
	return NewSystemFromColumns(cols, target)
}

// NewSystemFromColumns builds a System directly from column slices, taking
// ownership of both arguments. Callers that assemble the design matrix column
// by column (the trainer does) use this to avoid a second copy.
func NewSystemFromColumns(cols [][]float64, y []float64) (*System, error) {
	if len(cols) < 1 {
		return nil, fmt.Errorf("%w: no columns", ErrShapeMismatch)
	}
	obs := len(cols[0])
	if obs < 1 {
		return nil, fmt.Errorf("%w: empty columns", ErrShapeMismatch)
	}
	for j, col := range cols {
		if len(col) != obs {
			return nil, fmt.Errorf("%w: column %d has length %d, want %d",
				ErrShapeMismatch, j, len(col), obs)
		}
	}
	if len(y) != obs {
		return nil, fmt.Errorf("%w: y has length %d, want %d rows",
			ErrShapeMismatch, len(y), obs)
	}
	norms := make([]float64, len(cols))
	for j, col := range cols {
		norms[j] = floats.Dot(col, col)
	}
	return &System{
		obs:   obs,
		vars:  len(cols),
		cols:  cols,
		y:     y,
		norms: norms,
	}, nil
}

// Dims returns the observation and variable counts of the system.
func (s *System) Dims() (obs, vars int) { return s.obs, s.vars }

// State carries a solve's mutable triple: the coefficient estimate, the
// residual y - X·Coef, and the number of completed passes. A State is created
// per solve call and handed to the caller on return; between any two solver
// steps Residual equals y - X·Coef up to float accumulation error.
type State struct {
	Coef     []float64
	Residual []float64
	Passes   int
}

func newState(sys *System) *State {
	residual := make([]float64, sys.obs)
	copy(residual, sys.y)
	return &State{
		Coef:     make([]float64, sys.vars),
		Residual: residual,
	}
}

// checkSolve validates the shared solve preconditions: a usable system, a
// non-negative pass count and no degenerate columns. Degeneracy is rejected
// up front so a failing call leaves no partially updated state behind.
func checkSolve(sys *System, passes int) error {
	if sys == nil {
		return fmt.Errorf("%w: nil system", ErrShapeMismatch)
	}
	if passes < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPassCount, passes)
	}
	for j, n := range sys.norms {
		// the negated comparison also catches NaN norms
		if !(n >= minColumnNorm) {
			return fmt.Errorf("%w: column %d has norm %g", ErrDegenerateColumn, j, n)
		}
	}
	return nil
}

// ResidualNorm returns the Euclidean norm of the state's residual.
func (st *State) ResidualNorm() float64 {
	return floats.Norm(st.Residual, 2)
}
