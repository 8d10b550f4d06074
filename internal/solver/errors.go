package solver

import "errors"

var (
	// ErrShapeMismatch is returned when matrix, target or state dimensions
	// disagree.
	ErrShapeMismatch = errors.New("solver: dimension mismatch")

	// ErrDegenerateColumn is returned when a column of the system matrix has
	// zero (or numerically vanishing) self dot product, which leaves the
	// correction step undefined.
	ErrDegenerateColumn = errors.New("solver: degenerate column")

	// ErrInvalidBlockSize is returned when the blocked solver is asked for a
	// block size outside [1, vars].
	ErrInvalidBlockSize = errors.New("solver: block size out of range")

	// ErrInvalidPassCount is returned when a negative pass count is requested.
	ErrInvalidPassCount = errors.New("solver: negative pass count")

	// ErrResidualDrift is returned by Verify when the residual no longer
	// matches y - X·a within the given tolerance.
	ErrResidualDrift = errors.New("solver: residual inconsistent with coefficients")
)
