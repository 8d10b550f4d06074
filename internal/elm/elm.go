// Package elm trains extreme-learning-machine style regression models: a
// fixed random hidden layer with sparse fan-in projects the inputs, and only
// the output weights are fitted, by blocked coordinate descent over the
// hidden design matrix.
package elm

import (
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/solvelabs/descent/internal/compute"
	"github.com/solvelabs/descent/internal/solver"
	"github.com/solvelabs/descent/internal/synth"
)

// Params configures a training run.
type Params struct {
	// Neurons is the hidden-layer width. Known up front, so every per-neuron
	// array is allocated to exactly this capacity.
	Neurons int
	// FanIn is how many input features feed each neuron.
	FanIn int
	// Passes and Block parameterize the output-layer solve.
	Passes int
	Block  int
}

// Stats reports how the output-layer solve went.
type Stats struct {
	ResidualNorm float64
	TrainMAE     float64
	Passes       int
}

// Model is a trained network: per-neuron input indices, weights and biases,
// plus the fitted output weights Beta.
type Model struct {
	inputs  int
	indices [][]int
	weights [][]float64
	bias    []float64

	Beta  []float64
	Stats Stats
}

// Trainer wires the random sources, the compute backend and the logger a
// training run needs.
type Trainer struct {
	params  Params
	gen     *synth.Generator
	sampler synth.Sampler
	backend compute.Backend
	log     *zap.Logger
}

// NewTrainer creates a trainer. gen supplies hidden weights and biases,
// sampler the per-neuron input indices. A nil backend runs serially; a nil
// logger is silent.
func NewTrainer(p Params, gen *synth.Generator, sampler synth.Sampler, be compute.Backend, log *zap.Logger) *Trainer {
	if be == nil {
		be = compute.NewSerialBackend()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Trainer{params: p, gen: gen, sampler: sampler, backend: be, log: log}
}

// Train fits the output layer for the given samples. x is samples×features,
// y the regression target per sample.
func (t *Trainer) Train(x mat.Matrix, y []float64) (*Model, error) {
	rows, feats := x.Dims()
	p := t.params
	if rows < 1 || feats < 1 {
		return nil, fmt.Errorf("elm: empty input matrix %dx%d", rows, feats)
	}
	if len(y) != rows {
		return nil, fmt.Errorf("elm: target has length %d, want %d", len(y), rows)
	}
	if p.Neurons < 1 {
		return nil, fmt.Errorf("elm: need at least one neuron, got %d", p.Neurons)
	}
	if p.FanIn < 1 || p.FanIn > feats {
		return nil, fmt.Errorf("elm: fan-in %d not in [1, %d]", p.FanIn, feats)
	}
	// Block 0 keeps the output solve fully sequential; callers opt in to
	// wider blocks explicitly.
	block := p.Block
	if block == 0 {
		block = 1
	}

	m := &Model{
		inputs:  feats,
		indices: make([][]int, p.Neurons),
		weights: make([][]float64, p.Neurons),
		bias:    t.gen.Vector(p.Neurons),
	}
	for n := 0; n < p.Neurons; n++ {
		idx, err := t.sampler.Sample(p.FanIn, feats)
		if err != nil {
			return nil, fmt.Errorf("elm: sampling inputs for neuron %d: %w", n, err)
		}
		m.indices[n] = idx
		m.weights[n] = t.gen.Vector(p.FanIn)
	}

	// Hidden design matrix, one column per neuron. Columns are independent,
	// so the backend may fill them in parallel.
	cols := make([][]float64, p.Neurons)
	t.backend.ParallelFor(p.Neurons, func(n int) {
		col := make([]float64, rows)
		for i := 0; i < rows; i++ {
			col[i] = m.activate(x, i, n)
		}
		cols[n] = col
	})

	target := make([]float64, rows)
	copy(target, y)
	sys, err := solver.NewSystemFromColumns(cols, target)
	if err != nil {
		return nil, fmt.Errorf("elm: building hidden system: %w", err)
	}

	st, err := solver.SolveBlocked(sys, p.Passes, block, t.backend)
	if err != nil {
		return nil, fmt.Errorf("elm: output-layer solve: %w", err)
	}

	m.Beta = st.Coef
	m.Stats = Stats{
		ResidualNorm: st.ResidualNorm(),
		TrainMAE:     meanAbs(st.Residual),
		Passes:       st.Passes,
	}
	t.log.Info("output layer fitted",
		zap.Int("neurons", p.Neurons),
		zap.Int("fanIn", p.FanIn),
		zap.Int("passes", st.Passes),
		zap.Int("block", block),
		zap.Float64("residualNorm", m.Stats.ResidualNorm),
		zap.Float64("trainMAE", m.Stats.TrainMAE))
	return m, nil
}

// Predict evaluates the network for every row of x.
func (m *Model) Predict(x mat.Matrix) ([]float64, error) {
	rows, feats := x.Dims()
	if feats != m.inputs {
		return nil, fmt.Errorf("elm: input has %d features, model was trained on %d", feats, m.inputs)
	}

	out := make([]float64, rows)
	for i := 0; i < rows; i++ {
		var sum float64
		for n := range m.Beta {
			sum += m.Beta[n] * m.activate(x, i, n)
		}
		out[i] = sum
	}
	return out, nil
}

// activate computes neuron n's tanh response for row i of x.
func (m *Model) activate(x mat.Matrix, i, n int) float64 {
	pre := m.bias[n]
	for t, j := range m.indices[n] {
		pre += m.weights[n][t] * x.At(i, j)
	}
	return math.Tanh(pre)
}

func meanAbs(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	var sum float64
	for _, e := range v {
		sum += math.Abs(e)
	}
	return sum / float64(len(v))
}
