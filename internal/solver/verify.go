package solver

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Verify recomputes y - X·Coef from scratch and checks that the state's
// residual matches it within tol (Euclidean norm of the difference). It
// returns ErrShapeMismatch for a state whose vectors do not fit sys and
// ErrResidualDrift when the invariant is violated.
func Verify(sys *System, st *State, tol float64) error {
	if sys == nil || st == nil {
		return fmt.Errorf("%w: nil system or state", ErrShapeMismatch)
	}
	if len(st.Coef) != sys.vars || len(st.Residual) != sys.obs {
		return fmt.Errorf("%w: state is %dx%d, system is %dx%d",
			ErrShapeMismatch, len(st.Residual), len(st.Coef), sys.obs, sys.vars)
	}

	want := make([]float64, sys.obs)
	copy(want, sys.y)
	for j := 0; j < sys.vars; j++ {
		floats.AddScaled(want, -st.Coef[j], sys.cols[j])
	}

	floats.Sub(want, st.Residual)
	if drift := floats.Norm(want, 2); drift > tol {
		return fmt.Errorf("%w: drift %.3e exceeds %.3e", ErrResidualDrift, drift, tol)
	}
	return nil
}
