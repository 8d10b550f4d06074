// Package synth generates the synthetic dense workloads the solve, bench and
// train commands run against: gaussian matrices, linear systems with a known
// ground truth, and index sampling for sparse random connectivity.
package synth

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Generator produces deterministic random workloads from a fixed seed.
// It is not safe for concurrent use; give each goroutine its own.
type Generator struct {
	rnd *rand.Rand
}

// NewGenerator creates a generator seeded with seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Matrix returns a rows×cols dense matrix with standard gaussian entries.
func (g *Generator) Matrix(rows, cols int) *mat.Dense {
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = g.rnd.NormFloat64()
	}
	return mat.NewDense(rows, cols, data)
}

// Vector returns a length-n vector with standard gaussian entries.
func (g *Generator) Vector(n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = g.rnd.NormFloat64()
	}
	return v
}

// LinearSystem returns a gaussian obs×vars matrix X, a ground-truth
// coefficient vector aTrue and the exactly consistent target y = X·aTrue.
// Gaussian columns are full rank with probability one, which is what the
// solver's convergence guarantees assume.
func (g *Generator) LinearSystem(obs, vars int) (x *mat.Dense, aTrue, y []float64) {
	x = g.Matrix(obs, vars)
	aTrue = g.Vector(vars)

	y = make([]float64, obs)
	yVec := mat.NewVecDense(obs, y)
	yVec.MulVec(x, mat.NewVecDense(vars, aTrue))
	return x, aTrue, y
}

// NoisyLinearSystem is LinearSystem with gaussian noise of standard
// deviation sigma added to every target entry.
func (g *Generator) NoisyLinearSystem(obs, vars int, sigma float64) (x *mat.Dense, aTrue, y []float64) {
	x, aTrue, y = g.LinearSystem(obs, vars)
	for i := range y {
		y[i] += sigma * g.rnd.NormFloat64()
	}
	return x, aTrue, y
}

// MeanAbsError returns mean(|a - b|), or NaN when the lengths differ or the
// vectors are empty. Callers use it to report solve accuracy against a known
// ground truth.
func MeanAbsError(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return math.NaN()
	}
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		if d < 0 {
			d = -d
		}
		sum += d
	}
	return sum / float64(len(a))
}
