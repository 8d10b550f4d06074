//go:build integration
// +build integration

package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"

	"github.com/solvelabs/descent/internal/compute"
	"github.com/solvelabs/descent/internal/config"
	"github.com/solvelabs/descent/internal/elm"
	"github.com/solvelabs/descent/internal/logger"
	"github.com/solvelabs/descent/internal/solver"
	"github.com/solvelabs/descent/internal/synth"
)

// TestWorkbench_EndToEnd wires config, logger and the compute manager the way
// the CLI does, then pushes a full workload through the stack: generate a
// system, solve it sequentially and blocked, and train a model on the same
// backend.
func TestWorkbench_EndToEnd(t *testing.T) {
	var cfg *config.Config
	var log *zap.Logger
	var manager *compute.Manager

	app := fxtest.New(t,
		fx.Provide(
			func() *config.Config {
				c := config.Default()
				c.Logger.Verbosity = "debug"
				c.Compute.Mode = "parallel"
				c.Compute.Workers = 4
				return c
			},
			func(c *config.Config) (*zap.Logger, error) {
				return logger.New(c.Logger.Verbosity)
			},
			func(c *config.Config, l *zap.Logger) (*compute.Manager, error) {
				return compute.NewManager(c.Compute.Mode, c.Compute.Workers, l)
			},
		),
		fx.Invoke(func(lc fx.Lifecycle, m *compute.Manager) {
			lc.Append(fx.Hook{
				OnStop: func(ctx context.Context) error { return m.Close() },
			})
		}),
		fx.Populate(&cfg, &log, &manager),
	)

	app.RequireStart()
	defer app.RequireStop()

	be := manager.Backend()
	require.Equal(t, "parallel", be.Name())
	require.Equal(t, 4, manager.Info().Workers)

	gen := synth.NewGenerator(21)
	x, aTrue, y := gen.LinearSystem(300, 40)
	sys, err := solver.NewSystem(x, y)
	require.NoError(t, err)

	seq, err := solver.SolveSequential(sys, 30, be)
	require.NoError(t, err)
	require.NoError(t, solver.Verify(sys, seq, 1e-8))

	one, err := solver.SolveBlocked(sys, 30, 1, be)
	require.NoError(t, err)
	assert.Equal(t, seq.Coef, one.Coef, "block size 1 must reproduce the sequential schedule")
	assert.Equal(t, seq.Residual, one.Residual)

	blk, err := solver.SolveBlocked(sys, 30, 8, be)
	require.NoError(t, err)
	require.NoError(t, solver.Verify(sys, blk, 1e-8))

	assert.Less(t, synth.MeanAbsError(seq.Coef, aTrue), 1e-5)

	// Training reuses the pool the solves just ran on.
	samples := 120
	xTrain := gen.Matrix(samples, 4)
	yTrain := make([]float64, samples)
	for i := 0; i < samples; i++ {
		yTrain[i] = xTrain.At(i, 0) * xTrain.At(i, 1)
	}

	trainer := elm.NewTrainer(
		elm.Params{Neurons: 32, FanIn: 3, Passes: 80, Block: 4},
		synth.NewGenerator(5),
		synth.NewRandSampler(6),
		be,
		log,
	)
	model, err := trainer.Train(xTrain, yTrain)
	require.NoError(t, err)
	require.Len(t, model.Beta, 32)

	pred, err := model.Predict(xTrain)
	require.NoError(t, err)
	assert.InDelta(t, model.Stats.TrainMAE, synth.MeanAbsError(pred, yTrain), 1e-8)
}
