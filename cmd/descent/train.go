package main

import (
	"math"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/solvelabs/descent/internal/elm"
	"github.com/solvelabs/descent/internal/metrics"
	"github.com/solvelabs/descent/internal/synth"
)

func trainCommand() *cli.Command {
	return &cli.Command{
		Name:  "train",
		Usage: "Fit a random-feature model to a nonlinear synthetic target",
		Action: func(c *cli.Context) error {
			log := rootLogger.Named("train")
			tc := cfg.Train

			manager, err := newManager()
			if err != nil {
				return err
			}
			defer manager.Close()

			gen := synth.NewGenerator(tc.Seed)
			x := gen.Matrix(tc.Samples, tc.Features)
			y := nonlinearTarget(x)

			params := elm.Params{
				Neurons: tc.Neurons,
				FanIn:   tc.FanIn,
				Passes:  tc.Passes,
				Block:   tc.Block,
			}
			trainer := elm.NewTrainer(params, gen, synth.NewRandSampler(tc.Seed+1), manager.Backend(), log)

			model, err := trainer.Train(x, y)
			if err != nil {
				return err
			}
			metrics.TrainMAE.Set(model.Stats.TrainMAE)

			// Held-out samples from the same distribution.
			xTest := synth.NewGenerator(tc.Seed + 2).Matrix(tc.Samples/4+1, tc.Features)
			pred, err := model.Predict(xTest)
			if err != nil {
				return err
			}
			testMAE := synth.MeanAbsError(pred, nonlinearTarget(xTest))

			log.Info("Training complete",
				zap.Int("samples", tc.Samples),
				zap.Int("neurons", tc.Neurons),
				zap.Float64("residualNorm", model.Stats.ResidualNorm),
				zap.Float64("trainMAE", model.Stats.TrainMAE),
				zap.Float64("testMAE", testMAE))
			return nil
		},
	}
}

// nonlinearTarget maps each row to a smooth function no linear model can fit.
func nonlinearTarget(x *mat.Dense) []float64 {
	rows, feats := x.Dims()
	y := make([]float64, rows)
	for i := 0; i < rows; i++ {
		var s float64
		for j := 0; j < feats; j++ {
			s += math.Sin(x.At(i, j))
		}
		y[i] = s
	}
	return y
}
