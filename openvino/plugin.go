package openvino

import (
	"context"
	"fmt"
	"strings"
)

// PluginConfig configures a Plugin.
type PluginConfig struct {
	// LibraryPath is an explicit path to the OpenVINO C library. When
	// empty the platform default names are tried.
	LibraryPath string

	// Device is the compilation target, e.g. "NPU" or "CPU". Defaults
	// to DeviceNPU.
	Device string

	// Properties are applied to the device before any model is
	// compiled, e.g. PropertyCacheDir to enable the compiled-blob
	// cache.
	Properties map[string]string
}

// Plugin is a high-level facade over a Runtime and Core bound to a
// single accelerator device. It fails fast at construction when the
// device is not present, so callers never discover a missing
// accelerator at inference time.
type Plugin struct {
	runtime *Runtime
	core    *Core
	device  string
	closed  bool
}

// Executable is a model compiled by a Plugin, paired with a dedicated
// inference request. An Executable is not safe for concurrent use; use
// a RequestPool to run one model from multiple goroutines.
type Executable struct {
	compiled *CompiledModel
	request  *InferRequest
	inputs   []PortInfo
	outputs  []PortInfo
	closed   bool
}

// NewPlugin loads the OpenVINO runtime, creates a core and verifies
// that the configured device is available. The returned Plugin owns the
// runtime and must be closed.
func NewPlugin(cfg PluginConfig) (*Plugin, error) {
	device := cfg.Device
	if device == "" {
		device = DeviceNPU
	}

	r, err := NewRuntime(cfg.LibraryPath)
	if err != nil {
		return nil, err
	}

	core, err := r.NewCore()
	if err != nil {
		r.Close()
		return nil, err
	}

	devices, err := core.AvailableDevices()
	if err != nil {
		core.Close()
		r.Close()
		return nil, err
	}

	if !deviceListed(devices, device) {
		core.Close()
		r.Close()
		if len(devices) == 0 {
			return nil, fmt.Errorf("device %q not available: no devices enumerated", device)
		}
		return nil, fmt.Errorf("device %q not available: found %s", device, strings.Join(devices, ", "))
	}

	for key, value := range cfg.Properties {
		if err := core.SetProperty(device, key, value); err != nil {
			core.Close()
			r.Close()
			return nil, fmt.Errorf("failed to apply property %s: %w", key, err)
		}
	}

	return &Plugin{
		runtime: r,
		core:    core,
		device:  device,
	}, nil
}

// deviceListed reports whether target matches one of the enumerated
// device names. A name like "NPU.0" still matches target "NPU".
func deviceListed(devices []string, target string) bool {
	for _, d := range devices {
		if d == target || strings.HasPrefix(d, target+".") {
			return true
		}
	}
	return false
}

// Device returns the compilation target this plugin is bound to.
func (p *Plugin) Device() string {
	return p.device
}

// Devices returns the device names the runtime enumerates.
func (p *Plugin) Devices() ([]string, error) {
	if p.closed {
		return nil, ErrPluginClosed
	}
	return p.core.AvailableDevices()
}

// Core exposes the underlying core for callers that need operations the
// facade does not cover.
func (p *Plugin) Core() *Core {
	return p.core
}

// Runtime exposes the underlying runtime.
func (p *Plugin) Runtime() *Runtime {
	return p.runtime
}

// Compile reads the model at modelPath, compiles it for the plugin's
// device and prepares one inference request.
func (p *Plugin) Compile(modelPath string) (*Executable, error) {
	if p.closed {
		return nil, ErrPluginClosed
	}
	if modelPath == "" {
		return nil, fmt.Errorf("model path cannot be empty")
	}

	model, err := p.core.ReadModel(modelPath)
	if err != nil {
		return nil, err
	}
	defer model.Close()

	return p.compile(model)
}

// CompileFromMemory compiles a model already held in memory.
func (p *Plugin) CompileFromMemory(data []byte) (*Executable, error) {
	if p.closed {
		return nil, ErrPluginClosed
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("model data cannot be empty")
	}

	model, err := p.core.ReadModelFromMemory(data)
	if err != nil {
		return nil, err
	}
	defer model.Close()

	return p.compile(model)
}

func (p *Plugin) compile(model *Model) (*Executable, error) {
	compiled, err := p.core.CompileModel(model, p.device, nil)
	if err != nil {
		return nil, err
	}

	inputs, err := compiled.Inputs()
	if err != nil {
		compiled.Close()
		return nil, err
	}
	outputs, err := compiled.Outputs()
	if err != nil {
		compiled.Close()
		return nil, err
	}

	request, err := compiled.CreateInferRequest()
	if err != nil {
		compiled.Close()
		return nil, err
	}

	return &Executable{
		compiled: compiled,
		request:  request,
		inputs:   inputs,
		outputs:  outputs,
	}, nil
}

// Execute copies input into the model's first input tensor, runs a
// synchronous inference and copies the first output tensor into output.
// Both copies are clamped to the smaller of the caller buffer and the
// tensor's byte size; a short copy is not an error.
func (p *Plugin) Execute(exec *Executable, input, output []float32) error {
	return p.ExecuteContext(context.Background(), exec, input, output)
}

// ExecuteContext is Execute with context cancellation. Cancelling the
// context aborts the inference and returns the context's error.
func (p *Plugin) ExecuteContext(ctx context.Context, exec *Executable, input, output []float32) error {
	if p.closed {
		return ErrPluginClosed
	}
	if exec == nil {
		return fmt.Errorf("compiled model cannot be nil")
	}
	if exec.closed {
		return ErrCompiledModelClosed
	}
	if input == nil {
		return fmt.Errorf("input buffer cannot be nil")
	}
	if output == nil {
		return fmt.Errorf("output buffer cannot be nil")
	}

	in, err := exec.request.GetInputTensor(0)
	if err != nil {
		return err
	}
	defer in.Close()

	if _, err := in.CopyFrom(input); err != nil {
		return err
	}

	if err := exec.request.Infer(ctx); err != nil {
		return err
	}

	out, err := exec.request.GetOutputTensor(0)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = out.CopyTo(output)
	return err
}

// Inputs describes the compiled model's input ports.
func (e *Executable) Inputs() []PortInfo {
	return e.inputs
}

// Outputs describes the compiled model's output ports.
func (e *Executable) Outputs() []PortInfo {
	return e.outputs
}

// Request exposes the executable's inference request for callers that
// want to bind named tensors directly.
func (e *Executable) Request() *InferRequest {
	return e.request
}

// Export writes the compiled blob to path for later cache warm-up.
func (e *Executable) Export(path string) error {
	if e.closed {
		return ErrCompiledModelClosed
	}
	return e.compiled.Export(path)
}

// Close releases the executable's request and compiled model. It is
// safe to call Close multiple times.
func (e *Executable) Close() {
	if e.closed {
		return
	}
	e.closed = true
	e.request.Close()
	e.compiled.Close()
}

// FreeModel is a no-op kept for callers porting from the C surface,
// where compiled-model lifetime is owned by the plugin handle. The
// executable stays usable after FreeModel; release it with
// Executable.Close.
func (p *Plugin) FreeModel(exec *Executable) {}

// Close releases the core and runtime. It is safe to call Close
// multiple times. Executables compiled by the plugin must be closed
// before the plugin.
func (p *Plugin) Close() {
	if p.closed {
		return
	}
	p.closed = true
	p.core.Close()
	p.runtime.Close()
}
