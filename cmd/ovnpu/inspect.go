package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/ovinfer/openvino-purego/onnxinfo"
)

func inspectCmd() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "Print the header of an ONNX model",
		ArgsUsage: "<model.onnx>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("expected exactly one model path")
			}

			info, err := onnxinfo.InspectFile(cmd.Args().First())
			if err != nil {
				return err
			}

			fmt.Printf("ir version:  %d\n", info.IRVersion)
			if info.ProducerName != "" {
				fmt.Printf("producer:    %s %s\n", info.ProducerName, info.ProducerVersion)
			}
			if info.Domain != "" {
				fmt.Printf("domain:      %s\n", info.Domain)
			}
			if len(info.Opsets) > 0 {
				opsets := make([]string, len(info.Opsets))
				for i, o := range info.Opsets {
					opsets[i] = o.String()
				}
				fmt.Printf("opsets:      %s\n", strings.Join(opsets, ", "))
			}
			fmt.Printf("graph:       %s (%d nodes)\n", info.GraphName, info.NodeCount)
			fmt.Printf("inputs:      %s\n", strings.Join(info.Inputs, ", "))
			fmt.Printf("outputs:     %s\n", strings.Join(info.Outputs, ", "))
			return nil
		},
	}
}
