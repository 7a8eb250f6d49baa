package openvino

import (
	"fmt"

	"github.com/ovinfer/openvino-purego/openvino/internal/api"
)

// CompiledModel represents a model compiled for a specific device
// (ov_compiled_model_t). It is the factory for infer requests.
type CompiledModel struct {
	ptr     api.OVCompiledModel
	runtime *Runtime
}

// CreateInferRequest creates a new inference request bound to this
// compiled model. Requests are independent: create one per goroutine for
// concurrent inference, or use RequestPool.
func (cm *CompiledModel) CreateInferRequest() (*InferRequest, error) {
	if cm.ptr == 0 {
		return nil, ErrCompiledModelClosed
	}

	var reqPtr api.OVInferRequest
	status := cm.runtime.funcs.CompiledModelCreateInferRequest(cm.ptr, &reqPtr)
	if err := cm.runtime.statusError(status); err != nil {
		return nil, fmt.Errorf("failed to create infer request: %w", err)
	}

	return &InferRequest{
		ptr:     reqPtr,
		runtime: cm.runtime,
	}, nil
}

// Inputs returns the name, shape and element type of every compiled input.
func (cm *CompiledModel) Inputs() ([]PortInfo, error) {
	if cm.ptr == 0 {
		return nil, ErrCompiledModelClosed
	}

	var count uintptr
	status := cm.runtime.funcs.CompiledModelInputsSize(cm.ptr, &count)
	if err := cm.runtime.statusError(status); err != nil {
		return nil, fmt.Errorf("failed to get input count: %w", err)
	}

	infos := make([]PortInfo, 0, count)
	for i := uintptr(0); i < count; i++ {
		var portPtr api.OVOutputConstPort
		status := cm.runtime.funcs.CompiledModelInputByIndex(cm.ptr, i, &portPtr)
		if err := cm.runtime.statusError(status); err != nil {
			return nil, fmt.Errorf("failed to get input port %d: %w", i, err)
		}

		info, err := portInfo(cm.runtime, portPtr)
		if err != nil {
			return nil, fmt.Errorf("failed to describe input port %d: %w", i, err)
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// Outputs returns the name, shape and element type of every compiled output.
func (cm *CompiledModel) Outputs() ([]PortInfo, error) {
	if cm.ptr == 0 {
		return nil, ErrCompiledModelClosed
	}

	var count uintptr
	status := cm.runtime.funcs.CompiledModelOutputsSize(cm.ptr, &count)
	if err := cm.runtime.statusError(status); err != nil {
		return nil, fmt.Errorf("failed to get output count: %w", err)
	}

	infos := make([]PortInfo, 0, count)
	for i := uintptr(0); i < count; i++ {
		var portPtr api.OVOutputConstPort
		status := cm.runtime.funcs.CompiledModelOutputByIndex(cm.ptr, i, &portPtr)
		if err := cm.runtime.statusError(status); err != nil {
			return nil, fmt.Errorf("failed to get output port %d: %w", i, err)
		}

		info, err := portInfo(cm.runtime, portPtr)
		if err != nil {
			return nil, fmt.Errorf("failed to describe output port %d: %w", i, err)
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// Export writes the compiled blob to a file. The blob can be reimported
// on the same device to skip compilation, which matters on NPUs where
// compilation dominates startup time.
func (cm *CompiledModel) Export(path string) error {
	if cm.ptr == 0 {
		return ErrCompiledModelClosed
	}
	if path == "" {
		return fmt.Errorf("export path cannot be empty")
	}

	pathBytes := append([]byte(path), 0)
	status := cm.runtime.funcs.CompiledModelExportModel(cm.ptr, &pathBytes[0])
	if err := cm.runtime.statusError(status); err != nil {
		return fmt.Errorf("failed to export compiled model: %w", err)
	}
	return nil
}

// Close releases the compiled model. Infer requests created from it must
// be closed first. It is safe to call Close multiple times.
func (cm *CompiledModel) Close() {
	if cm.ptr != 0 && cm.runtime != nil && cm.runtime.funcs != nil {
		cm.runtime.funcs.CompiledModelFree(cm.ptr)
		cm.ptr = 0
	}
}
