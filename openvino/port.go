package openvino

import (
	"fmt"
	"unsafe"

	"github.com/ovinfer/openvino-purego/openvino/internal/api"
)

// PortInfo describes one model or compiled-model input/output.
type PortInfo struct {
	Name        string
	Shape       []int64
	ElementType ElementType
}

// ElementCount returns the number of elements implied by the port shape,
// or 0 when any dimension is dynamic.
func (p PortInfo) ElementCount() int {
	count := 1
	for _, d := range p.Shape {
		if d <= 0 {
			return 0
		}
		count *= int(d)
	}
	return count
}

// ByteSize returns the buffer size in bytes implied by the port shape
// and element type, or 0 when either is dynamic.
func (p PortInfo) ByteSize() int {
	return p.ElementCount() * elementByteSize(p.ElementType)
}

func (p PortInfo) String() string {
	return fmt.Sprintf("%s %s%v", p.Name, ElementTypeName(p.ElementType), p.Shape)
}

// portInfo reads name, shape and element type from a const port and
// releases the port.
func portInfo(r *Runtime, port api.OVOutputConstPort) (PortInfo, error) {
	defer r.funcs.OutputConstPortFree(port)

	var info PortInfo

	var namePtr *byte
	status := r.funcs.PortGetAnyName(port, &namePtr)
	if err := r.statusError(status); err != nil {
		return info, fmt.Errorf("failed to get port name: %w", err)
	}
	info.Name = cStringToString(namePtr)
	r.funcs.Free(unsafe.Pointer(namePtr))

	var cShape api.Shape
	status = r.funcs.ConstPortGetShape(port, &cShape)
	if err := r.statusError(status); err != nil {
		return info, fmt.Errorf("failed to get port shape: %w", err)
	}
	info.Shape = copyShape(&cShape)
	r.funcs.ShapeFree(&cShape)

	status = r.funcs.PortGetElementType(port, &info.ElementType)
	if err := r.statusError(status); err != nil {
		return info, fmt.Errorf("failed to get port element type: %w", err)
	}

	return info, nil
}

// copyShape copies a C shape into a Go-owned slice.
func copyShape(s *api.Shape) []int64 {
	if s.Dims == nil || s.Rank <= 0 {
		return nil
	}
	dims := make([]int64, s.Rank)
	copy(dims, unsafe.Slice(s.Dims, s.Rank))
	return dims
}
