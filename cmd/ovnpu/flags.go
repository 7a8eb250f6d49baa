package main

import (
	"github.com/urfave/cli/v3"

	"github.com/ovinfer/openvino-purego/openvino"
)

var (
	libraryPath string
	device      string
	modelPath   string
	cacheDir    string
	logLevel    string
	logFormat   string
)

func commonRuntimeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "library",
			Aliases:     []string{"l"},
			Usage:       "path to the OpenVINO C shared library",
			Destination: &libraryPath,
		},
		&cli.StringFlag{
			Name:        "device",
			Aliases:     []string{"d"},
			Usage:       "target device (NPU, GPU, CPU, AUTO)",
			Value:       "NPU",
			Destination: &device,
		},
		&cli.StringFlag{
			Name:        "cache-dir",
			Usage:       "directory for compiled model blobs",
			Destination: &cacheDir,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (text, json)",
			Value:       "text",
			Destination: &logFormat,
		},
	}
}

func modelFlag() cli.Flag {
	return &cli.StringFlag{
		Name:        "model",
		Aliases:     []string{"m"},
		Usage:       "path to the model file (.onnx or OpenVINO IR .xml)",
		Destination: &modelPath,
	}
}

// pluginProperties maps the shared flags onto device properties.
func pluginProperties() map[string]string {
	props := map[string]string{}
	if cacheDir != "" {
		props[openvino.PropertyCacheDir] = cacheDir
	}
	if len(props) == 0 {
		return nil
	}
	return props
}
