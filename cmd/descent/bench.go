package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/solvelabs/descent/internal/bench"
	"github.com/solvelabs/descent/internal/metrics"
)

func benchCommand() *cli.Command {
	var listen string

	return &cli.Command{
		Name:  "bench",
		Usage: "Run the benchmark suite",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "only",
				Usage: "Run only the named benchmarks (matmul, axpy, solve)",
			},
			&cli.StringFlag{
				Name:        "listen",
				Usage:       "Expose Prometheus metrics on this address during the run",
				Destination: &listen,
			},
		},
		Action: func(c *cli.Context) error {
			log := rootLogger.Named("bench")

			kinds := c.StringSlice("only")
			if len(kinds) == 0 {
				kinds = []string{"matmul", "axpy", "solve"}
			}

			opts := bench.Options{
				MatrixSize:   cfg.Bench.MatrixSize,
				VectorLength: cfg.Bench.VectorLength,
				VectorReps:   cfg.Bench.VectorReps,
				Obs:          cfg.Bench.Observations,
				Vars:         cfg.Bench.Variables,
				Passes:       cfg.Bench.Passes,
				Blocks:       cfg.Bench.Blocks,
				Seed:         cfg.Bench.Seed,
			}
			runners := make([]bench.Runner, 0, len(kinds))
			for _, kind := range kinds {
				r, err := bench.NewRunner(kind, opts)
				if err != nil {
					return err
				}
				runners = append(runners, r)
			}

			addr := listen
			if addr == "" {
				addr = cfg.Bench.MetricsListen
			}
			if addr != "" {
				mux := http.NewServeMux()
				mux.Handle("/metrics", metrics.Handler())
				srv := &http.Server{Addr: addr, Handler: mux}
				go func() {
					log.Info("Serving metrics", zap.String("address", addr))
					if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
						log.Error("metrics server failed", zap.Error(err))
					}
				}()
				defer srv.Close()
			}

			manager, err := newManager()
			if err != nil {
				return err
			}
			defer manager.Close()

			reports, err := bench.RunSuite(runners, manager.Backend(), log)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(reports, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
}
