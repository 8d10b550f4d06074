package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/solvelabs/descent/fixtures"
)

func initCommand() *cli.Command {
	var force bool

	return &cli.Command{
		Name:  "init",
		Usage: "Write the default config and presets files",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "force",
				Usage:       "Overwrite existing files",
				Destination: &force,
			},
		},
		Action: func(c *cli.Context) error {
			files := []struct {
				name string
				data []byte
			}{
				{"config.yaml", fixtures.ConfigTemplate},
				{"presets.yaml", fixtures.PresetsTemplate},
			}
			for _, f := range files {
				if !force {
					if _, err := os.Stat(f.name); err == nil {
						return fmt.Errorf("%s already exists (use --force to overwrite)", f.name)
					}
				}
				if err := os.WriteFile(f.name, f.data, 0o644); err != nil {
					return err
				}
				rootLogger.Info("Wrote file", zap.String("path", f.name))
			}
			return nil
		},
	}
}
