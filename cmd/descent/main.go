package main

import (
	"fmt"
	"os"

	"github.com/solvelabs/descent/internal/compute"
	"github.com/solvelabs/descent/internal/config"
	"github.com/solvelabs/descent/internal/logger"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var (
	cfg        *config.Config
	rootLogger *zap.Logger
)

func main() {
	var configPath string

	app := &cli.App{
		Name:  "descent",
		Usage: "A workbench for coordinate-descent least-squares solvers",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Value:       "config.yaml",
				Usage:       "Path to the descent config file",
				EnvVars:     []string{"DESCENT_CONFIG"},
				Destination: &configPath,
			},
		},
		Before: func(c *cli.Context) error {
			var err error
			cfg, err = loadConfig(configPath, c.IsSet("config"))
			if err != nil {
				return err
			}
			zapLogger, err := logger.New(cfg.Logger.Verbosity)
			if err != nil {
				return err
			}
			rootLogger = zapLogger.Named("cli")
			return nil
		},
		Commands: []*cli.Command{
			solveCommand(),
			benchCommand(),
			trainCommand(),
			probeCommand(),
			initCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		if rootLogger != nil {
			rootLogger.Fatal("failed to run app", zap.Error(err))
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

// loadConfig returns built-in defaults when the implicit config file is
// absent. A file named explicitly via flag or env must exist.
func loadConfig(path string, explicit bool) (*config.Config, error) {
	c, err := config.LoadConfig(path)
	if err == nil {
		return c, nil
	}
	if !explicit && os.IsNotExist(err) {
		return config.Default(), nil
	}
	return nil, err
}

// newManager builds the configured compute backend for a command run.
func newManager() (*compute.Manager, error) {
	return compute.NewManager(cfg.Compute.Mode, cfg.Compute.Workers, rootLogger)
}
