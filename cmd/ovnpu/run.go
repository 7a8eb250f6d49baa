package main

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/ovinfer/openvino-purego/openvino"
	"github.com/ovinfer/openvino-purego/postprocess"
	"github.com/ovinfer/openvino-purego/preprocess"
)

func runCmd() *cli.Command {
	var (
		imagePath  string
		labelsPath string
		topK       int64
	)

	return &cli.Command{
		Name:  "run",
		Usage: "Run a single inference and print the top predictions",
		Flags: append(commonRuntimeFlags(),
			modelFlag(),
			&cli.StringFlag{
				Name:        "image",
				Aliases:     []string{"i"},
				Usage:       "input image (PNG or JPEG)",
				Destination: &imagePath,
			},
			&cli.StringFlag{
				Name:        "labels",
				Usage:       "class labels file, one label per line",
				Destination: &labelsPath,
			},
			&cli.Int64Flag{
				Name:        "top-k",
				Aliases:     []string{"k"},
				Usage:       "number of predictions to print",
				Value:       5,
				Destination: &topK,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			applyRuntimeConfig(cmd, LoadConfig())
			log := newLogger(logLevel, logFormat)

			if modelPath == "" {
				return fmt.Errorf("--model is required")
			}
			if imagePath == "" {
				return fmt.Errorf("--image is required")
			}

			plugin, err := openvino.NewPlugin(openvino.PluginConfig{
				LibraryPath: libraryPath,
				Device:      device,
				Properties:  pluginProperties(),
			})
			if err != nil {
				return err
			}
			defer plugin.Close()

			compileStart := time.Now()
			exec, err := plugin.Compile(modelPath)
			if err != nil {
				return err
			}
			defer exec.Close()
			log.Info("model compiled",
				"device", plugin.Device(),
				"duration", time.Since(compileStart))

			inputs := exec.Inputs()
			if len(inputs) == 0 {
				return fmt.Errorf("model has no inputs")
			}
			input, err := loadImageTensor(imagePath, inputs[0])
			if err != nil {
				return err
			}

			outputs := exec.Outputs()
			if len(outputs) == 0 {
				return fmt.Errorf("model has no outputs")
			}
			output := make([]float32, outputs[0].ElementCount())

			inferStart := time.Now()
			if err := plugin.ExecuteContext(ctx, exec, input, output); err != nil {
				return err
			}
			log.Info("inference completed", "duration", time.Since(inferStart))

			labels, err := loadLabels(labelsPath)
			if err != nil {
				return err
			}

			for _, pred := range postprocess.Classify(output, int(topK)) {
				label := fmt.Sprintf("class %d", pred.Index)
				if pred.Index < len(labels) {
					label = labels[pred.Index]
				}
				fmt.Printf("%6.2f%%  %s\n", pred.Score*100, label)
			}
			return nil
		},
	}
}

// loadImageTensor decodes the image and converts it to a float tensor
// shaped for the given input port. The port shape is assumed NCHW.
func loadImageTensor(path string, port openvino.PortInfo) ([]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	if len(port.Shape) != 4 {
		return nil, fmt.Errorf("input %q has shape %v, expected a 4-dimensional image input", port.Name, port.Shape)
	}

	opts := preprocess.ImageNet
	opts.Height = int(port.Shape[2])
	opts.Width = int(port.Shape[3])
	data, _, err := preprocess.ToTensor(img, opts)
	return data, err
}

func loadLabels(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read labels: %w", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	labels := make([]string, 0, len(lines))
	for _, line := range lines {
		labels = append(labels, strings.TrimSpace(line))
	}
	return labels, nil
}
