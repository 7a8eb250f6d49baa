package openvino

import (
	"fmt"
	"unsafe"

	"github.com/ovinfer/openvino-purego/openvino/internal/api"
)

// Model represents a model read by the core but not yet compiled for a
// device (ov_model_t).
type Model struct {
	ptr     api.OVModel
	runtime *Runtime
}

// FriendlyName returns the model's friendly name.
func (m *Model) FriendlyName() (string, error) {
	if m.ptr == 0 {
		return "", ErrModelClosed
	}

	var namePtr *byte
	status := m.runtime.funcs.ModelGetFriendlyName(m.ptr, &namePtr)
	if err := m.runtime.statusError(status); err != nil {
		return "", fmt.Errorf("failed to get friendly name: %w", err)
	}

	name := cStringToString(namePtr)
	m.runtime.funcs.Free(unsafe.Pointer(namePtr))

	return name, nil
}

// IsDynamic reports whether any model shape is dynamic.
func (m *Model) IsDynamic() (bool, error) {
	if m.ptr == 0 {
		return false, ErrModelClosed
	}
	return m.runtime.funcs.ModelIsDynamic(m.ptr), nil
}

// InputCount returns the number of model inputs.
func (m *Model) InputCount() (int, error) {
	if m.ptr == 0 {
		return 0, ErrModelClosed
	}

	var count uintptr
	status := m.runtime.funcs.ModelInputsSize(m.ptr, &count)
	if err := m.runtime.statusError(status); err != nil {
		return 0, fmt.Errorf("failed to get input count: %w", err)
	}
	return int(count), nil
}

// OutputCount returns the number of model outputs.
func (m *Model) OutputCount() (int, error) {
	if m.ptr == 0 {
		return 0, ErrModelClosed
	}

	var count uintptr
	status := m.runtime.funcs.ModelOutputsSize(m.ptr, &count)
	if err := m.runtime.statusError(status); err != nil {
		return 0, fmt.Errorf("failed to get output count: %w", err)
	}
	return int(count), nil
}

// Inputs returns the name, shape and element type of every model input.
func (m *Model) Inputs() ([]PortInfo, error) {
	count, err := m.InputCount()
	if err != nil {
		return nil, err
	}

	infos := make([]PortInfo, 0, count)
	for i := range count {
		var portPtr api.OVOutputConstPort
		status := m.runtime.funcs.ModelConstInputByIndex(m.ptr, uintptr(i), &portPtr)
		if err := m.runtime.statusError(status); err != nil {
			return nil, fmt.Errorf("failed to get input port %d: %w", i, err)
		}

		info, err := portInfo(m.runtime, portPtr)
		if err != nil {
			return nil, fmt.Errorf("failed to describe input port %d: %w", i, err)
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// Outputs returns the name, shape and element type of every model output.
func (m *Model) Outputs() ([]PortInfo, error) {
	count, err := m.OutputCount()
	if err != nil {
		return nil, err
	}

	infos := make([]PortInfo, 0, count)
	for i := range count {
		var portPtr api.OVOutputConstPort
		status := m.runtime.funcs.ModelConstOutputByIndex(m.ptr, uintptr(i), &portPtr)
		if err := m.runtime.statusError(status); err != nil {
			return nil, fmt.Errorf("failed to get output port %d: %w", i, err)
		}

		info, err := portInfo(m.runtime, portPtr)
		if err != nil {
			return nil, fmt.Errorf("failed to describe output port %d: %w", i, err)
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// Close releases the model. It is safe to call Close multiple times.
// A compiled model does not depend on the source model staying alive.
func (m *Model) Close() {
	if m.ptr != 0 && m.runtime != nil && m.runtime.funcs != nil {
		m.runtime.funcs.ModelFree(m.ptr)
		m.ptr = 0
	}
}
