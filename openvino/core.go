package openvino

import (
	"fmt"
	"os"
	"strings"
	"unsafe"

	"github.com/ovinfer/openvino-purego/openvino/internal/api"
)

// Core represents an OpenVINO runtime core (ov_core_t). It discovers
// inference devices, reads models, and compiles them for a device.
//
// A Core is safe for concurrent use for read operations, but CompileModel
// and SetProperty must not race with each other.
type Core struct {
	ptr     api.OVCore
	runtime *Runtime
}

// NewCore creates a new OpenVINO core.
func (r *Runtime) NewCore() (*Core, error) {
	var corePtr api.OVCore
	status := r.funcs.CoreCreate(&corePtr)
	if err := r.statusError(status); err != nil {
		return nil, fmt.Errorf("failed to create core: %w", err)
	}

	return &Core{
		ptr:     corePtr,
		runtime: r,
	}, nil
}

// AvailableDevices returns the inference devices the runtime can see,
// for example ["CPU", "GPU", "NPU"].
func (c *Core) AvailableDevices() ([]string, error) {
	if c.ptr == 0 {
		return nil, ErrCoreClosed
	}

	var cDevices api.AvailableDevices
	status := c.runtime.funcs.CoreGetAvailableDevices(c.ptr, &cDevices)
	if err := c.runtime.statusError(status); err != nil {
		return nil, fmt.Errorf("failed to get available devices: %w", err)
	}

	devices := make([]string, 0, cDevices.Size)
	if cDevices.Devices != nil {
		for _, ptr := range unsafe.Slice(cDevices.Devices, cDevices.Size) {
			devices = append(devices, cStringToString(ptr))
		}
	}
	c.runtime.funcs.AvailableDevicesFree(&cDevices)

	return devices, nil
}

// HasDevice reports whether any available device name contains the given
// device string. Matching is by substring so "NPU" matches "NPU.0".
func (c *Core) HasDevice(device string) (bool, error) {
	devices, err := c.AvailableDevices()
	if err != nil {
		return false, err
	}
	for _, d := range devices {
		if strings.Contains(d, device) {
			return true, nil
		}
	}
	return false, nil
}

// ReadModel reads a model from a file. Supported formats are whatever the
// runtime's frontends support, typically ONNX and OpenVINO IR (.xml with a
// sibling .bin).
func (c *Core) ReadModel(modelPath string) (*Model, error) {
	if c.ptr == 0 {
		return nil, ErrCoreClosed
	}
	if modelPath == "" {
		return nil, fmt.Errorf("model path cannot be empty")
	}

	// Check the file Go side before handing the path to C.
	info, err := os.Stat(modelPath)
	if err != nil {
		return nil, fmt.Errorf("model file is not readable: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("model path %s is a directory", modelPath)
	}

	pathBytes := append([]byte(modelPath), 0)
	var modelPtr api.OVModel

	status := c.runtime.funcs.CoreReadModel(c.ptr, &pathBytes[0], nil, &modelPtr)
	if err := c.runtime.statusError(status); err != nil {
		return nil, fmt.Errorf("failed to read model %s: %w", modelPath, err)
	}

	return &Model{
		ptr:     modelPtr,
		runtime: c.runtime,
	}, nil
}

// ReadModelFromMemory reads a model from an in-memory buffer.
func (c *Core) ReadModelFromMemory(data []byte) (*Model, error) {
	if c.ptr == 0 {
		return nil, ErrCoreClosed
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("model data cannot be empty")
	}

	var modelPtr api.OVModel
	status := c.runtime.funcs.CoreReadModelFromMemory(c.ptr, &data[0], uintptr(len(data)), 0, &modelPtr)
	if err := c.runtime.statusError(status); err != nil {
		return nil, fmt.Errorf("failed to read model from memory: %w", err)
	}

	return &Model{
		ptr:     modelPtr,
		runtime: c.runtime,
	}, nil
}

// SetProperty sets one runtime property for a device, for example
// (DeviceNPU, PropertyCacheDir, "/var/cache/ov").
func (c *Core) SetProperty(device, key, value string) error {
	if c.ptr == 0 {
		return ErrCoreClosed
	}

	deviceBytes := append([]byte(device), 0)
	keyBytes := append([]byte(key), 0)
	valueBytes := append([]byte(value), 0)

	status := c.runtime.funcs.CoreSetProperty(c.ptr, &deviceBytes[0], &keyBytes[0], &valueBytes[0])
	if err := c.runtime.statusError(status); err != nil {
		return fmt.Errorf("failed to set property %s=%s for %s: %w", key, value, device, err)
	}
	return nil
}

// CompileModel compiles a model for the given device. Properties are
// applied to the device before compilation.
func (c *Core) CompileModel(model *Model, device string, properties map[string]string) (*CompiledModel, error) {
	if c.ptr == 0 {
		return nil, ErrCoreClosed
	}
	if model == nil || model.ptr == 0 {
		return nil, ErrModelClosed
	}
	if device == "" {
		return nil, fmt.Errorf("device cannot be empty")
	}

	for key, value := range properties {
		if err := c.SetProperty(device, key, value); err != nil {
			return nil, err
		}
	}

	deviceBytes := append([]byte(device), 0)
	var compiledPtr api.OVCompiledModel

	status := c.runtime.funcs.CoreCompileModel(c.ptr, model.ptr, &deviceBytes[0], 0, &compiledPtr)
	if err := c.runtime.statusError(status); err != nil {
		return nil, fmt.Errorf("failed to compile model for %s: %w", device, err)
	}

	return &CompiledModel{
		ptr:     compiledPtr,
		runtime: c.runtime,
	}, nil
}

// Close releases the core. It is safe to call Close multiple times.
func (c *Core) Close() {
	if c.ptr != 0 && c.runtime != nil && c.runtime.funcs != nil {
		c.runtime.funcs.CoreFree(c.ptr)
		c.ptr = 0
	}
}
