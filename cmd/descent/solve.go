package main

import (
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/solvelabs/descent/internal/config"
	"github.com/solvelabs/descent/internal/metrics"
	"github.com/solvelabs/descent/internal/solver"
	"github.com/solvelabs/descent/internal/synth"
)

func solveCommand() *cli.Command {
	var preset string
	var presetsPath string
	var sequential bool

	return &cli.Command{
		Name:  "solve",
		Usage: "Fit a synthetic least-squares system by coordinate descent",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "preset",
				Usage:       "Named workload from the presets file",
				Destination: &preset,
			},
			&cli.StringFlag{
				Name:        "presets",
				Value:       "presets.yaml",
				Usage:       "Path to the presets file",
				Destination: &presetsPath,
			},
			&cli.BoolFlag{
				Name:        "sequential",
				Usage:       "Force block size 1",
				Destination: &sequential,
			},
		},
		Action: func(c *cli.Context) error {
			log := rootLogger.Named("solve")

			p := config.Preset{
				Observations: cfg.Solve.Observations,
				Variables:    cfg.Solve.Variables,
				Passes:       cfg.Solve.Passes,
				Block:        cfg.Solve.Block,
				Noise:        cfg.Solve.Noise,
				Seed:         cfg.Solve.Seed,
			}
			if preset != "" {
				presets, err := config.LoadPresetConfig(presetsPath)
				if err != nil {
					return err
				}
				p, err = presets.Get(preset, log)
				if err != nil {
					return err
				}
			}
			if sequential {
				p.Block = 1
			}

			manager, err := newManager()
			if err != nil {
				return err
			}
			defer manager.Close()
			be := manager.Backend()

			gen := synth.NewGenerator(p.Seed)
			var x *mat.Dense
			var aTrue, y []float64
			if p.Noise > 0 {
				x, aTrue, y = gen.NoisyLinearSystem(p.Observations, p.Variables, p.Noise)
			} else {
				x, aTrue, y = gen.LinearSystem(p.Observations, p.Variables)
			}

			sys, err := solver.NewSystem(x, y)
			if err != nil {
				return err
			}

			log.Info("Solving system...",
				zap.Int("observations", p.Observations),
				zap.Int("variables", p.Variables),
				zap.Int("passes", p.Passes),
				zap.Int("block", p.Block),
				zap.String("backend", be.Name()))

			variant := "blocked"
			start := time.Now()
			var st *solver.State
			if p.Block == 1 {
				variant = "sequential"
				st, err = solver.SolveSequential(sys, p.Passes, be)
			} else {
				st, err = solver.SolveBlocked(sys, p.Passes, p.Block, be)
			}
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			if err := solver.Verify(sys, st, 1e-6); err != nil {
				return err
			}

			metrics.SolveDuration.WithLabelValues(variant).Observe(float64(elapsed) / float64(time.Millisecond))
			metrics.SolveResidualNorm.Set(st.ResidualNorm())
			metrics.SolvePassesTotal.Add(float64(st.Passes))
			metrics.SolveBackendRuns.WithLabelValues(be.Name()).Inc()
			metrics.ComputeWorkers.Set(float64(manager.Info().Workers))

			log.Info("Solve complete",
				zap.String("variant", variant),
				zap.Duration("elapsed", elapsed),
				zap.Float64("residualNorm", st.ResidualNorm()),
				zap.Float64("mae", synth.MeanAbsError(st.Coef, aTrue)))
			return nil
		},
	}
}
