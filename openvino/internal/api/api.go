package api

import "unsafe"

// OVStatus is the ov_status_e value returned by every OpenVINO C API call.
type OVStatus int32

// OVCore is an opaque pointer to an ov_core_t.
type OVCore uintptr

// OVModel is an opaque pointer to an ov_model_t.
type OVModel uintptr

// OVCompiledModel is an opaque pointer to an ov_compiled_model_t.
type OVCompiledModel uintptr

// OVInferRequest is an opaque pointer to an ov_infer_request_t.
type OVInferRequest uintptr

// OVTensor is an opaque pointer to an ov_tensor_t.
type OVTensor uintptr

// OVOutputConstPort is an opaque pointer to an ov_output_const_port_t.
type OVOutputConstPort uintptr

// ElementType represents the ov_element_type_e enum.
type ElementType int32

// Version mirrors the ov_version C struct. Both fields point to
// library-owned C strings and must be released with VersionFree.
type Version struct {
	BuildNumber unsafe.Pointer
	Description unsafe.Pointer
}

// AvailableDevices mirrors the ov_available_devices_t C struct:
// an array of device name C strings and its length.
type AvailableDevices struct {
	Devices **byte
	Size    uintptr
}

// Shape mirrors the ov_shape_t C struct. Dims points to a C array of
// Rank int64 dimensions and must be released with ShapeFree.
type Shape struct {
	Rank int64
	Dims *int64
}

// Funcs is the set of OpenVINO C API functions the binding uses.
type Funcs interface {
	// Version and error reporting
	GetVersion(*Version) OVStatus
	VersionFree(*Version)
	// LastErrMsg returns the last error message recorded by the C API,
	// or nil when the loaded library does not export ov_get_last_err_msg.
	LastErrMsg() unsafe.Pointer

	// Core
	CoreCreate(*OVCore) OVStatus
	CoreFree(OVCore)
	CoreGetAvailableDevices(OVCore, *AvailableDevices) OVStatus
	AvailableDevicesFree(*AvailableDevices)
	CoreReadModel(OVCore, *byte, *byte, *OVModel) OVStatus
	CoreReadModelFromMemory(OVCore, *byte, uintptr, OVTensor, *OVModel) OVStatus
	CoreCompileModel(OVCore, OVModel, *byte, uintptr, *OVCompiledModel) OVStatus
	CoreSetProperty(OVCore, *byte, *byte, *byte) OVStatus

	// Model
	ModelFree(OVModel)
	ModelGetFriendlyName(OVModel, **byte) OVStatus
	ModelInputsSize(OVModel, *uintptr) OVStatus
	ModelOutputsSize(OVModel, *uintptr) OVStatus
	ModelConstInputByIndex(OVModel, uintptr, *OVOutputConstPort) OVStatus
	ModelConstOutputByIndex(OVModel, uintptr, *OVOutputConstPort) OVStatus
	ModelIsDynamic(OVModel) bool

	// Ports
	PortGetAnyName(OVOutputConstPort, **byte) OVStatus
	ConstPortGetShape(OVOutputConstPort, *Shape) OVStatus
	PortGetElementType(OVOutputConstPort, *ElementType) OVStatus
	OutputConstPortFree(OVOutputConstPort)

	// Compiled model
	CompiledModelFree(OVCompiledModel)
	CompiledModelCreateInferRequest(OVCompiledModel, *OVInferRequest) OVStatus
	CompiledModelInputsSize(OVCompiledModel, *uintptr) OVStatus
	CompiledModelOutputsSize(OVCompiledModel, *uintptr) OVStatus
	CompiledModelInputByIndex(OVCompiledModel, uintptr, *OVOutputConstPort) OVStatus
	CompiledModelOutputByIndex(OVCompiledModel, uintptr, *OVOutputConstPort) OVStatus
	CompiledModelExportModel(OVCompiledModel, *byte) OVStatus

	// Infer request
	InferRequestFree(OVInferRequest)
	InferRequestInfer(OVInferRequest) OVStatus
	InferRequestStartAsync(OVInferRequest) OVStatus
	InferRequestWait(OVInferRequest) OVStatus
	InferRequestWaitFor(OVInferRequest, int64) OVStatus
	InferRequestCancel(OVInferRequest) OVStatus
	InferRequestSetInputTensorByIndex(OVInferRequest, uintptr, OVTensor) OVStatus
	InferRequestSetTensor(OVInferRequest, *byte, OVTensor) OVStatus
	InferRequestGetInputTensorByIndex(OVInferRequest, uintptr, *OVTensor) OVStatus
	InferRequestGetOutputTensorByIndex(OVInferRequest, uintptr, *OVTensor) OVStatus
	InferRequestGetTensor(OVInferRequest, *byte, *OVTensor) OVStatus

	// Tensor
	TensorCreate(ElementType, int64, *int64, *OVTensor) OVStatus
	TensorCreateFromHostPtr(ElementType, int64, *int64, unsafe.Pointer, *OVTensor) OVStatus
	TensorFree(OVTensor)
	TensorData(OVTensor, *unsafe.Pointer) OVStatus
	TensorGetByteSize(OVTensor, *uintptr) OVStatus
	TensorGetSize(OVTensor, *uintptr) OVStatus
	TensorGetShape(OVTensor, *Shape) OVStatus
	TensorGetElementType(OVTensor, *ElementType) OVStatus

	// Memory owned by the C API
	Free(unsafe.Pointer)
	ShapeFree(*Shape)
}
