package bench

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// freivaldsTol bounds the per-entry drift accepted by the product check.
const freivaldsTol = 1e-9

// FreivaldsCheck probabilistically verifies that c == a*b. Each round
// multiplies both sides by a random 0/1 vector, so a wrong product is caught
// with probability at least 1/2 per round; agreement over all rounds leaves a
// false-positive rate of at most 1/2^rounds. Far cheaper than recomputing the
// product when the matrices are large.
func FreivaldsCheck(a, b, c mat.Matrix, rounds int, rnd *rand.Rand) bool {
	ar, ak := a.Dims()
	bk, bc := b.Dims()
	cr, cc := c.Dims()
	if ak != bk || cr != ar || cc != bc {
		return false
	}

	r := mat.NewVecDense(bc, nil)
	for round := 0; round < rounds; round++ {
		for j := 0; j < bc; j++ {
			r.SetVec(j, float64(rnd.Intn(2)))
		}

		var br, abr, cv mat.VecDense
		br.MulVec(b, r)
		abr.MulVec(a, &br)
		cv.MulVec(c, r)

		for i := 0; i < ar; i++ {
			if math.Abs(abr.AtVec(i)-cv.AtVec(i)) > freivaldsTol {
				return false
			}
		}
	}
	return true
}
