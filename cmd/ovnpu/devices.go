package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/ovinfer/openvino-purego/openvino"
)

func devicesCmd() *cli.Command {
	return &cli.Command{
		Name:  "devices",
		Usage: "List the devices the OpenVINO runtime enumerates",
		Flags: commonRuntimeFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			applyRuntimeConfig(cmd, LoadConfig())

			r, err := openvino.NewRuntime(libraryPath)
			if err != nil {
				return err
			}
			defer r.Close()

			version, err := r.Version()
			if err != nil {
				return err
			}
			fmt.Printf("runtime: %s (%s)\n", version.BuildNumber, version.Description)

			core, err := r.NewCore()
			if err != nil {
				return err
			}
			defer core.Close()

			devices, err := core.AvailableDevices()
			if err != nil {
				return err
			}
			if len(devices) == 0 {
				fmt.Println("no devices found")
				return nil
			}
			for _, d := range devices {
				fmt.Println(d)
			}
			return nil
		},
	}
}
