package main

import (
	"fmt"

	"github.com/common-nighthawk/go-figure"
	"github.com/urfave/cli/v2"

	"github.com/solvelabs/descent/internal/compute"
)

func probeCommand() *cli.Command {
	return &cli.Command{
		Name:  "probe",
		Usage: "Show the compute substrate available on this machine",
		Action: func(c *cli.Context) error {
			banner := figure.NewFigure("descent", "", true)
			banner.Print()
			fmt.Println("")

			info := compute.Probe()
			fmt.Printf("CPU:     %s\n", info.Name)
			fmt.Printf("Arch:    %s\n", info.Arch)
			fmt.Printf("Workers: %d\n", info.Workers)
			fmt.Printf("SIMD:    %s\n", info.SIMD)

			manager, err := newManager()
			if err != nil {
				return err
			}
			defer manager.Close()

			sel := manager.Info()
			fmt.Println("-----------------------------------------------")
			fmt.Printf("Configured backend: %s (%d workers)\n", manager.Backend().Name(), sel.Workers)
			return nil
		},
	}
}
