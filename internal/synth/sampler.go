package synth

import (
	"fmt"
	"math/rand"
)

// Sampler draws k distinct indices from [0, n) without replacement. The
// trainer uses it to pick which inputs feed each hidden neuron; it is an
// interface so deterministic samplers can be injected in tests.
type Sampler interface {
	Sample(k, n int) ([]int, error)
}

// RandSampler samples via a partial Fisher–Yates shuffle, so a draw costs
// O(n) setup and O(k) swaps.
type RandSampler struct {
	rnd *rand.Rand
}

// NewRandSampler creates a sampler seeded with seed.
func NewRandSampler(seed int64) *RandSampler {
	return &RandSampler{rnd: rand.New(rand.NewSource(seed))}
}

// Sample returns k distinct indices from [0, n) in random order.
func (s *RandSampler) Sample(k, n int) ([]int, error) {
	if k < 0 || k > n {
		return nil, fmt.Errorf("synth: cannot draw %d distinct indices from [0, %d)", k, n)
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + s.rnd.Intn(n-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx[:k], nil
}
