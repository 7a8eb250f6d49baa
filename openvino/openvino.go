package openvino

import (
	"errors"
	"fmt"

	"github.com/ovinfer/openvino-purego/openvino/internal/api"
)

var (
	// ErrCoreClosed is returned when an operation is attempted on a closed core.
	ErrCoreClosed = errors.New("core is closed")
	// ErrModelClosed is returned when an operation is attempted on a released model.
	ErrModelClosed = errors.New("model is released")
	// ErrCompiledModelClosed is returned when an operation is attempted on a released compiled model.
	ErrCompiledModelClosed = errors.New("compiled model is released")
	// ErrRequestClosed is returned when an operation is attempted on a released infer request.
	ErrRequestClosed = errors.New("infer request is released")
	// ErrTensorClosed is returned when an operation is attempted on a released tensor.
	ErrTensorClosed = errors.New("tensor is released")
	// ErrPluginClosed is returned when an operation is attempted on a destroyed plugin.
	ErrPluginClosed = errors.New("plugin is destroyed")
)

// Status represents status codes returned by the OpenVINO C API.
type Status = api.OVStatus

// Status codes returned by the OpenVINO C API (ov_status_e).
const (
	// StatusOK indicates success.
	StatusOK Status = 0
	// StatusGeneralError indicates a generic failure inside the runtime.
	StatusGeneralError Status = -1
	// StatusNotImplemented indicates the requested feature is not implemented.
	StatusNotImplemented Status = -2
	// StatusNetworkNotLoaded indicates no model was loaded into the runtime.
	StatusNetworkNotLoaded Status = -3
	// StatusParameterMismatch indicates a parameter did not match the model.
	StatusParameterMismatch Status = -4
	// StatusNotFound indicates a requested object was not found.
	StatusNotFound Status = -5
	// StatusOutOfBounds indicates an index outside the valid range.
	StatusOutOfBounds Status = -6
	// StatusUnexpected indicates an unexpected internal condition.
	StatusUnexpected Status = -7
	// StatusRequestBusy indicates the infer request is still running.
	StatusRequestBusy Status = -8
	// StatusResultNotReady indicates the asynchronous result is not ready yet.
	StatusResultNotReady Status = -9
	// StatusNotAllocated indicates a tensor or blob was not allocated.
	StatusNotAllocated Status = -10
	// StatusInferNotStarted indicates Wait was called before inference started.
	StatusInferNotStarted Status = -11
	// StatusNetworkNotRead indicates the model file could not be read.
	StatusNetworkNotRead Status = -12
	// StatusInferCancelled indicates the inference was cancelled.
	StatusInferCancelled Status = -13
	// StatusInvalidCParam indicates an invalid argument at the C boundary.
	StatusInvalidCParam Status = -14
	// StatusUnknownCError indicates an unclassified C API failure.
	StatusUnknownCError Status = -15
	// StatusNotImplementCMethod indicates the C method is not implemented.
	StatusNotImplementCMethod Status = -16
	// StatusUnknownException indicates an unknown exception escaped the runtime.
	StatusUnknownException Status = -17
)

// ElementType represents the data type of tensor elements (ov_element_type_e).
type ElementType = api.ElementType

// Tensor element data types supported by OpenVINO.
const (
	ElementUndefined ElementType = 0
	ElementDynamic   ElementType = 1
	ElementBoolean   ElementType = 2
	ElementBF16      ElementType = 3
	ElementF16       ElementType = 4
	ElementF32       ElementType = 5
	ElementF64       ElementType = 6
	ElementI4        ElementType = 7
	ElementI8        ElementType = 8
	ElementI16       ElementType = 9
	ElementI32       ElementType = 10
	ElementI64       ElementType = 11
	ElementU1        ElementType = 12
	ElementU4        ElementType = 13
	ElementU8        ElementType = 14
	ElementU16       ElementType = 15
	ElementU32       ElementType = 16
	ElementU64       ElementType = 17
)

// Device name constants understood by the runtime.
const (
	DeviceCPU    = "CPU"
	DeviceGPU    = "GPU"
	DeviceNPU    = "NPU"
	DeviceAuto   = "AUTO"
	DeviceHetero = "HETERO"
	DeviceMulti  = "MULTI"
)

// Property keys accepted by Core.SetProperty and CompileModel properties.
const (
	PropertyCacheDir        = "CACHE_DIR"
	PropertyPerformanceHint = "PERFORMANCE_HINT"
	PropertyInferenceNum    = "INFERENCE_NUM_THREADS"
	PropertyLogLevel        = "LOG_LEVEL"
)

// ElementTypeName returns a readable name for an element type.
func ElementTypeName(t ElementType) string {
	switch t {
	case ElementUndefined:
		return "undefined"
	case ElementDynamic:
		return "dynamic"
	case ElementBoolean:
		return "boolean"
	case ElementBF16:
		return "bf16"
	case ElementF16:
		return "f16"
	case ElementF32:
		return "f32"
	case ElementF64:
		return "f64"
	case ElementI4:
		return "i4"
	case ElementI8:
		return "i8"
	case ElementI16:
		return "i16"
	case ElementI32:
		return "i32"
	case ElementI64:
		return "i64"
	case ElementU1:
		return "u1"
	case ElementU4:
		return "u4"
	case ElementU8:
		return "u8"
	case ElementU16:
		return "u16"
	case ElementU32:
		return "u32"
	case ElementU64:
		return "u64"
	default:
		return fmt.Sprintf("ElementType(%d)", t)
	}
}

// elementByteSize returns the size in bytes of one element, or 0 for
// sub-byte and non-fixed types.
func elementByteSize(t ElementType) int {
	switch t {
	case ElementBoolean, ElementI8, ElementU8:
		return 1
	case ElementBF16, ElementF16, ElementI16, ElementU16:
		return 2
	case ElementF32, ElementI32, ElementU32:
		return 4
	case ElementF64, ElementI64, ElementU64:
		return 8
	default:
		return 0
	}
}
