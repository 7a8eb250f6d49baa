package server

import (
	"context"
	"fmt"

	"github.com/ovinfer/openvino-purego/openvino"
)

// Engine runs inference for the HTTP surface. The indirection keeps
// handlers testable without hardware.
type Engine interface {
	// Infer runs input through the model and returns the output
	// buffer. outputLen sizes the result; zero means the model's
	// first output port decides.
	Infer(ctx context.Context, input []float32, outputLen int) ([]float32, error)

	// Describe reports the loaded model's ports and device.
	Describe() ModelDescription

	// Devices lists the accelerator devices the runtime sees.
	Devices() ([]string, error)

	Close()
}

// PortDescription describes one model port over the wire.
type PortDescription struct {
	Name        string  `json:"name"`
	Shape       []int64 `json:"shape"`
	ElementType string  `json:"element_type"`
}

// ModelDescription describes the served model.
type ModelDescription struct {
	ModelPath string            `json:"model_path"`
	Device    string            `json:"device"`
	Inputs    []PortDescription `json:"inputs"`
	Outputs   []PortDescription `json:"outputs"`
}

// PluginEngine serves one compiled model through a request pool.
type PluginEngine struct {
	plugin    *openvino.Plugin
	pool      *openvino.RequestPool
	modelPath string
	outputLen int
}

// PluginEngineConfig configures NewPluginEngine.
type PluginEngineConfig struct {
	LibraryPath string
	Device      string
	ModelPath   string
	PoolSize    int
	Properties  map[string]string
	Hooks       []openvino.Hook
}

// NewPluginEngine binds to the configured device, compiles the model
// and prepares a pool of PoolSize requests (default 1).
func NewPluginEngine(cfg PluginEngineConfig) (*PluginEngine, error) {
	if cfg.ModelPath == "" {
		return nil, fmt.Errorf("model path cannot be empty")
	}
	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = 1
	}

	plugin, err := openvino.NewPlugin(openvino.PluginConfig{
		LibraryPath: cfg.LibraryPath,
		Device:      cfg.Device,
		Properties:  cfg.Properties,
	})
	if err != nil {
		return nil, err
	}

	pool, err := openvino.NewRequestPool(plugin, cfg.ModelPath, poolSize, &openvino.PoolConfig{
		Hooks: cfg.Hooks,
	})
	if err != nil {
		plugin.Close()
		return nil, err
	}

	outputLen := 0
	if outputs := pool.Outputs(); len(outputs) > 0 {
		outputLen = outputs[0].ElementCount()
	}

	return &PluginEngine{
		plugin:    plugin,
		pool:      pool,
		modelPath: cfg.ModelPath,
		outputLen: outputLen,
	}, nil
}

func (e *PluginEngine) Infer(ctx context.Context, input []float32, outputLen int) ([]float32, error) {
	if outputLen <= 0 {
		outputLen = e.outputLen
	}
	if outputLen <= 0 {
		return nil, fmt.Errorf("cannot size output buffer: model output shape is dynamic, pass output_size")
	}

	output := make([]float32, outputLen)
	if err := e.pool.Run(ctx, input, output); err != nil {
		return nil, err
	}
	return output, nil
}

func (e *PluginEngine) Describe() ModelDescription {
	return ModelDescription{
		ModelPath: e.modelPath,
		Device:    e.plugin.Device(),
		Inputs:    portDescriptions(e.pool.Inputs()),
		Outputs:   portDescriptions(e.pool.Outputs()),
	}
}

func (e *PluginEngine) Devices() ([]string, error) {
	return e.plugin.Devices()
}

// Stats exposes the pool's run statistics.
func (e *PluginEngine) Stats() openvino.PoolStats {
	return e.pool.Stats()
}

func (e *PluginEngine) Close() {
	e.pool.Close()
	e.plugin.Close()
}

func portDescriptions(ports []openvino.PortInfo) []PortDescription {
	out := make([]PortDescription, len(ports))
	for i, p := range ports {
		out[i] = PortDescription{
			Name:        p.Name,
			Shape:       p.Shape,
			ElementType: openvino.ElementTypeName(p.ElementType),
		}
	}
	return out
}
