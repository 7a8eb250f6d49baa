package openvino

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/x448/float16"

	"github.com/ovinfer/openvino-purego/openvino/internal/api"
)

// Float16 is an IEEE 754 half-precision value as stored in F16 tensors.
type Float16 = float16.Float16

// TensorData is a type constraint for supported tensor element types.
type TensorData interface {
	~float32 | ~float64 |
		~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~bool
}

// Tensor represents an OpenVINO tensor (ov_tensor_t).
//
// A Tensor is NOT safe for concurrent use. While a cleanup is registered
// as a safety net, always call Close explicitly to release native memory
// promptly.
type Tensor struct {
	ptr     api.OVTensor
	runtime *Runtime

	// keeps host-pointer backed tensors' Go memory reachable
	hostData any
}

func (r *Runtime) newTensorFromPtr(ptr api.OVTensor) *Tensor {
	t := &Tensor{
		ptr:     ptr,
		runtime: r,
	}
	runtime.AddCleanup(t, func(_ struct{}) { t.Close() }, struct{}{})
	return t
}

// elementTypeOf maps a Go element type onto the OpenVINO element type.
func elementTypeOf[T TensorData]() (ElementType, error) {
	var zero T
	switch any(zero).(type) {
	case float32:
		return ElementF32, nil
	case float64:
		return ElementF64, nil
	case int8:
		return ElementI8, nil
	case int16:
		return ElementI16, nil
	case int32:
		return ElementI32, nil
	case int64:
		return ElementI64, nil
	case uint8:
		return ElementU8, nil
	case Float16:
		return ElementF16, nil
	case uint16:
		return ElementU16, nil
	case uint32:
		return ElementU32, nil
	case uint64:
		return ElementU64, nil
	case bool:
		return ElementBoolean, nil
	default:
		return ElementUndefined, fmt.Errorf("unsupported tensor data type %T", zero)
	}
}

// NewTensor creates a tensor backed by the given Go slice without
// copying. The slice must stay untouched while the tensor is in use; the
// Tensor keeps it reachable for the garbage collector.
func NewTensor[T TensorData](r *Runtime, data []T, shape []int64) (*Tensor, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("data cannot be empty")
	}

	elemType, err := elementTypeOf[T]()
	if err != nil {
		return nil, err
	}

	count := int64(1)
	for _, d := range shape {
		count *= d
	}
	if count != int64(len(data)) {
		return nil, fmt.Errorf("shape %v implies %d elements, data has %d", shape, count, len(data))
	}

	var shapePtr *int64
	if len(shape) > 0 {
		shapePtr = &shape[0]
	}

	var tensorPtr api.OVTensor
	status := r.funcs.TensorCreateFromHostPtr(elemType, int64(len(shape)), shapePtr, unsafe.Pointer(&data[0]), &tensorPtr)
	if err := r.statusError(status); err != nil {
		return nil, fmt.Errorf("failed to create tensor: %w", err)
	}

	t := r.newTensorFromPtr(tensorPtr)
	t.hostData = data
	return t, nil
}

// NewEmptyTensor creates a runtime-allocated tensor of the given element
// type and shape.
func NewEmptyTensor(r *Runtime, elemType ElementType, shape []int64) (*Tensor, error) {
	var shapePtr *int64
	if len(shape) > 0 {
		shapePtr = &shape[0]
	}

	var tensorPtr api.OVTensor
	status := r.funcs.TensorCreate(elemType, int64(len(shape)), shapePtr, &tensorPtr)
	if err := r.statusError(status); err != nil {
		return nil, fmt.Errorf("failed to create tensor: %w", err)
	}
	return r.newTensorFromPtr(tensorPtr), nil
}

// Shape returns the tensor dimensions.
func (t *Tensor) Shape() ([]int64, error) {
	if t.ptr == 0 {
		return nil, ErrTensorClosed
	}

	var cShape api.Shape
	status := t.runtime.funcs.TensorGetShape(t.ptr, &cShape)
	if err := t.runtime.statusError(status); err != nil {
		return nil, fmt.Errorf("failed to get tensor shape: %w", err)
	}
	shape := copyShape(&cShape)
	t.runtime.funcs.ShapeFree(&cShape)
	return shape, nil
}

// ElementType returns the data type of the tensor's elements.
func (t *Tensor) ElementType() (ElementType, error) {
	if t.ptr == 0 {
		return ElementUndefined, ErrTensorClosed
	}

	var elemType ElementType
	status := t.runtime.funcs.TensorGetElementType(t.ptr, &elemType)
	if err := t.runtime.statusError(status); err != nil {
		return ElementUndefined, fmt.Errorf("failed to get element type: %w", err)
	}
	return elemType, nil
}

// ByteSize returns the size of the tensor buffer in bytes.
func (t *Tensor) ByteSize() (int, error) {
	if t.ptr == 0 {
		return 0, ErrTensorClosed
	}

	var size uintptr
	status := t.runtime.funcs.TensorGetByteSize(t.ptr, &size)
	if err := t.runtime.statusError(status); err != nil {
		return 0, fmt.Errorf("failed to get byte size: %w", err)
	}
	return int(size), nil
}

// ElementCount returns the total number of elements in the tensor.
func (t *Tensor) ElementCount() (int, error) {
	if t.ptr == 0 {
		return 0, ErrTensorClosed
	}

	var count uintptr
	status := t.runtime.funcs.TensorGetSize(t.ptr, &count)
	if err := t.runtime.statusError(status); err != nil {
		return 0, fmt.Errorf("failed to get element count: %w", err)
	}
	return int(count), nil
}

// bytes returns the tensor buffer as a byte slice backed by native memory.
func (t *Tensor) bytes() ([]byte, error) {
	if t.ptr == 0 {
		return nil, ErrTensorClosed
	}

	var dataPtr unsafe.Pointer
	status := t.runtime.funcs.TensorData(t.ptr, &dataPtr)
	if err := t.runtime.statusError(status); err != nil {
		return nil, fmt.Errorf("failed to get tensor data: %w", err)
	}

	size, err := t.ByteSize()
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*byte)(dataPtr), size), nil
}

// CopyFrom copies src floats into the tensor buffer. The copy is clamped
// to the smaller of the caller data and the tensor's byte size; a short
// write is not an error. Returns the number of bytes copied.
func (t *Tensor) CopyFrom(src []float32) (int, error) {
	dst, err := t.bytes()
	if err != nil {
		return 0, err
	}
	return copy(dst, floatsAsBytes(src)), nil
}

// CopyTo copies the tensor buffer into dst floats, clamped to the smaller
// of the tensor's byte size and the caller buffer. Returns the number of
// bytes copied.
func (t *Tensor) CopyTo(dst []float32) (int, error) {
	src, err := t.bytes()
	if err != nil {
		return 0, err
	}
	return copy(floatsAsBytes(dst), src), nil
}

// GetTensorData extracts the tensor data as a copied slice along with its
// shape. The element type must match T exactly.
func GetTensorData[T TensorData](t *Tensor) ([]T, []int64, error) {
	shape, err := t.Shape()
	if err != nil {
		return nil, nil, err
	}

	elemType, err := t.ElementType()
	if err != nil {
		return nil, nil, err
	}
	expectedType, err := elementTypeOf[T]()
	if err != nil {
		return nil, nil, err
	}
	if elemType != expectedType {
		return nil, nil, fmt.Errorf("element type mismatch: tensor is %s, requested %s",
			ElementTypeName(elemType), ElementTypeName(expectedType))
	}

	raw, err := t.bytes()
	if err != nil {
		return nil, nil, err
	}

	count, err := t.ElementCount()
	if err != nil {
		return nil, nil, err
	}

	data := unsafe.Slice((*T)(unsafe.Pointer(&raw[0])), count)
	result := make([]T, count)
	copy(result, data)

	return result, shape, nil
}

// FloatData returns the tensor contents as float32 values. F32 tensors
// are copied directly, F16 tensors are converted.
func (t *Tensor) FloatData() ([]float32, error) {
	elemType, err := t.ElementType()
	if err != nil {
		return nil, err
	}

	switch elemType {
	case ElementF32:
		data, _, err := GetTensorData[float32](t)
		return data, err
	case ElementF16:
		raw, err := t.bytes()
		if err != nil {
			return nil, err
		}
		count, err := t.ElementCount()
		if err != nil {
			return nil, err
		}
		bits := unsafe.Slice((*uint16)(unsafe.Pointer(&raw[0])), count)
		return float16ToFloat32(bits), nil
	default:
		return nil, fmt.Errorf("cannot convert %s tensor to float32", ElementTypeName(elemType))
	}
}

// Close releases the tensor wrapper. It is safe to call Close multiple
// times. For tensors obtained from an InferRequest this releases only the
// wrapper, not the request's underlying buffer.
func (t *Tensor) Close() {
	if t.ptr != 0 && t.runtime != nil && t.runtime.funcs != nil {
		t.runtime.funcs.TensorFree(t.ptr)
		t.ptr = 0
		t.hostData = nil
	}
}

// floatsAsBytes reinterprets a float32 slice as its backing bytes.
func floatsAsBytes(s []float32) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*4)
}
