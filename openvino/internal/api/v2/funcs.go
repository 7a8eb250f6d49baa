// Package v2 binds the OpenVINO C API 2.0 exported by libopenvino_c.
//
// Unlike ONNX Runtime there is no function table to fetch: every entry
// point is a plain exported symbol, so each function is registered by
// name with purego.
package v2

import (
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/ovinfer/openvino-purego/openvino/internal/api"
)

// Funcs holds registered function pointers into libopenvino_c.
type Funcs struct {
	getVersion  func(*api.Version) api.OVStatus
	versionFree func(*api.Version)

	// nil when the loaded library predates ov_get_last_err_msg
	getLastErrMsg func() unsafe.Pointer

	coreCreate              func(*api.OVCore) api.OVStatus
	coreFree                func(api.OVCore)
	coreGetAvailableDevices func(api.OVCore, *api.AvailableDevices) api.OVStatus
	availableDevicesFree    func(*api.AvailableDevices)
	coreReadModel           func(api.OVCore, *byte, *byte, *api.OVModel) api.OVStatus
	coreReadModelFromMemory func(api.OVCore, *byte, uintptr, api.OVTensor, *api.OVModel) api.OVStatus
	// ov_core_compile_model is variadic; properties are applied through
	// ov_core_set_property instead, so the trailing count is always zero.
	coreCompileModel func(api.OVCore, api.OVModel, *byte, uintptr, *api.OVCompiledModel) api.OVStatus
	// ov_core_set_property consumes exactly one key/value pair per call.
	coreSetProperty func(api.OVCore, *byte, *byte, *byte) api.OVStatus

	modelFree               func(api.OVModel)
	modelGetFriendlyName    func(api.OVModel, **byte) api.OVStatus
	modelInputsSize         func(api.OVModel, *uintptr) api.OVStatus
	modelOutputsSize        func(api.OVModel, *uintptr) api.OVStatus
	modelConstInputByIndex  func(api.OVModel, uintptr, *api.OVOutputConstPort) api.OVStatus
	modelConstOutputByIndex func(api.OVModel, uintptr, *api.OVOutputConstPort) api.OVStatus
	modelIsDynamic          func(api.OVModel) bool

	portGetAnyName      func(api.OVOutputConstPort, **byte) api.OVStatus
	constPortGetShape   func(api.OVOutputConstPort, *api.Shape) api.OVStatus
	portGetElementType  func(api.OVOutputConstPort, *api.ElementType) api.OVStatus
	outputConstPortFree func(api.OVOutputConstPort)

	compiledModelFree               func(api.OVCompiledModel)
	compiledModelCreateInferRequest func(api.OVCompiledModel, *api.OVInferRequest) api.OVStatus
	compiledModelInputsSize         func(api.OVCompiledModel, *uintptr) api.OVStatus
	compiledModelOutputsSize        func(api.OVCompiledModel, *uintptr) api.OVStatus
	compiledModelInputByIndex       func(api.OVCompiledModel, uintptr, *api.OVOutputConstPort) api.OVStatus
	compiledModelOutputByIndex      func(api.OVCompiledModel, uintptr, *api.OVOutputConstPort) api.OVStatus
	compiledModelExportModel        func(api.OVCompiledModel, *byte) api.OVStatus

	inferRequestFree                   func(api.OVInferRequest)
	inferRequestInfer                  func(api.OVInferRequest) api.OVStatus
	inferRequestStartAsync             func(api.OVInferRequest) api.OVStatus
	inferRequestWait                   func(api.OVInferRequest) api.OVStatus
	inferRequestWaitFor                func(api.OVInferRequest, int64) api.OVStatus
	inferRequestCancel                 func(api.OVInferRequest) api.OVStatus
	inferRequestSetInputTensorByIndex  func(api.OVInferRequest, uintptr, api.OVTensor) api.OVStatus
	inferRequestSetTensor              func(api.OVInferRequest, *byte, api.OVTensor) api.OVStatus
	inferRequestGetInputTensorByIndex  func(api.OVInferRequest, uintptr, *api.OVTensor) api.OVStatus
	inferRequestGetOutputTensorByIndex func(api.OVInferRequest, uintptr, *api.OVTensor) api.OVStatus
	inferRequestGetTensor              func(api.OVInferRequest, *byte, *api.OVTensor) api.OVStatus

	// ov_shape_t is passed by value. Its two eightbytes (rank, dims) land
	// in separate integer registers on both amd64 SysV and arm64, so the
	// struct argument is registered as two scalar arguments.
	tensorCreate            func(api.ElementType, int64, *int64, *api.OVTensor) api.OVStatus
	tensorCreateFromHostPtr func(api.ElementType, int64, *int64, unsafe.Pointer, *api.OVTensor) api.OVStatus
	tensorFree              func(api.OVTensor)
	tensorData              func(api.OVTensor, *unsafe.Pointer) api.OVStatus
	tensorGetByteSize       func(api.OVTensor, *uintptr) api.OVStatus
	tensorGetSize           func(api.OVTensor, *uintptr) api.OVStatus
	tensorGetShape          func(api.OVTensor, *api.Shape) api.OVStatus
	tensorGetElementType    func(api.OVTensor, *api.ElementType) api.OVStatus

	free      func(unsafe.Pointer)
	shapeFree func(*api.Shape) api.OVStatus
}

// InitializeFuncs registers all required libopenvino_c symbols from the
// library handle. It is called once per loaded library.
func InitializeFuncs(libraryHandle uintptr) (*Funcs, error) {
	funcs := &Funcs{}

	purego.RegisterLibFunc(&funcs.getVersion, libraryHandle, "ov_get_openvino_version")
	purego.RegisterLibFunc(&funcs.versionFree, libraryHandle, "ov_version_free")

	// Optional: only present in recent releases.
	registerOptional(&funcs.getLastErrMsg, libraryHandle, "ov_get_last_err_msg")

	purego.RegisterLibFunc(&funcs.coreCreate, libraryHandle, "ov_core_create")
	purego.RegisterLibFunc(&funcs.coreFree, libraryHandle, "ov_core_free")
	purego.RegisterLibFunc(&funcs.coreGetAvailableDevices, libraryHandle, "ov_core_get_available_devices")
	purego.RegisterLibFunc(&funcs.availableDevicesFree, libraryHandle, "ov_available_devices_free")
	purego.RegisterLibFunc(&funcs.coreReadModel, libraryHandle, "ov_core_read_model")
	purego.RegisterLibFunc(&funcs.coreReadModelFromMemory, libraryHandle, "ov_core_read_model_from_memory_buffer")
	purego.RegisterLibFunc(&funcs.coreCompileModel, libraryHandle, "ov_core_compile_model")
	purego.RegisterLibFunc(&funcs.coreSetProperty, libraryHandle, "ov_core_set_property")

	purego.RegisterLibFunc(&funcs.modelFree, libraryHandle, "ov_model_free")
	purego.RegisterLibFunc(&funcs.modelGetFriendlyName, libraryHandle, "ov_model_get_friendly_name")
	purego.RegisterLibFunc(&funcs.modelInputsSize, libraryHandle, "ov_model_inputs_size")
	purego.RegisterLibFunc(&funcs.modelOutputsSize, libraryHandle, "ov_model_outputs_size")
	purego.RegisterLibFunc(&funcs.modelConstInputByIndex, libraryHandle, "ov_model_const_input_by_index")
	purego.RegisterLibFunc(&funcs.modelConstOutputByIndex, libraryHandle, "ov_model_const_output_by_index")
	purego.RegisterLibFunc(&funcs.modelIsDynamic, libraryHandle, "ov_model_is_dynamic")

	purego.RegisterLibFunc(&funcs.portGetAnyName, libraryHandle, "ov_port_get_any_name")
	purego.RegisterLibFunc(&funcs.constPortGetShape, libraryHandle, "ov_const_port_get_shape")
	purego.RegisterLibFunc(&funcs.portGetElementType, libraryHandle, "ov_port_get_element_type")
	purego.RegisterLibFunc(&funcs.outputConstPortFree, libraryHandle, "ov_output_const_port_free")

	purego.RegisterLibFunc(&funcs.compiledModelFree, libraryHandle, "ov_compiled_model_free")
	purego.RegisterLibFunc(&funcs.compiledModelCreateInferRequest, libraryHandle, "ov_compiled_model_create_infer_request")
	purego.RegisterLibFunc(&funcs.compiledModelInputsSize, libraryHandle, "ov_compiled_model_inputs_size")
	purego.RegisterLibFunc(&funcs.compiledModelOutputsSize, libraryHandle, "ov_compiled_model_outputs_size")
	purego.RegisterLibFunc(&funcs.compiledModelInputByIndex, libraryHandle, "ov_compiled_model_input_by_index")
	purego.RegisterLibFunc(&funcs.compiledModelOutputByIndex, libraryHandle, "ov_compiled_model_output_by_index")
	purego.RegisterLibFunc(&funcs.compiledModelExportModel, libraryHandle, "ov_compiled_model_export_model")

	purego.RegisterLibFunc(&funcs.inferRequestFree, libraryHandle, "ov_infer_request_free")
	purego.RegisterLibFunc(&funcs.inferRequestInfer, libraryHandle, "ov_infer_request_infer")
	purego.RegisterLibFunc(&funcs.inferRequestStartAsync, libraryHandle, "ov_infer_request_start_async")
	purego.RegisterLibFunc(&funcs.inferRequestWait, libraryHandle, "ov_infer_request_wait")
	purego.RegisterLibFunc(&funcs.inferRequestWaitFor, libraryHandle, "ov_infer_request_wait_for")
	purego.RegisterLibFunc(&funcs.inferRequestCancel, libraryHandle, "ov_infer_request_cancel")
	purego.RegisterLibFunc(&funcs.inferRequestSetInputTensorByIndex, libraryHandle, "ov_infer_request_set_input_tensor_by_index")
	purego.RegisterLibFunc(&funcs.inferRequestSetTensor, libraryHandle, "ov_infer_request_set_tensor")
	purego.RegisterLibFunc(&funcs.inferRequestGetInputTensorByIndex, libraryHandle, "ov_infer_request_get_input_tensor_by_index")
	purego.RegisterLibFunc(&funcs.inferRequestGetOutputTensorByIndex, libraryHandle, "ov_infer_request_get_output_tensor_by_index")
	purego.RegisterLibFunc(&funcs.inferRequestGetTensor, libraryHandle, "ov_infer_request_get_tensor")

	purego.RegisterLibFunc(&funcs.tensorCreate, libraryHandle, "ov_tensor_create")
	purego.RegisterLibFunc(&funcs.tensorCreateFromHostPtr, libraryHandle, "ov_tensor_create_from_host_ptr")
	purego.RegisterLibFunc(&funcs.tensorFree, libraryHandle, "ov_tensor_free")
	purego.RegisterLibFunc(&funcs.tensorData, libraryHandle, "ov_tensor_data")
	purego.RegisterLibFunc(&funcs.tensorGetByteSize, libraryHandle, "ov_tensor_get_byte_size")
	purego.RegisterLibFunc(&funcs.tensorGetSize, libraryHandle, "ov_tensor_get_size")
	purego.RegisterLibFunc(&funcs.tensorGetShape, libraryHandle, "ov_tensor_get_shape")
	purego.RegisterLibFunc(&funcs.tensorGetElementType, libraryHandle, "ov_tensor_get_element_type")

	purego.RegisterLibFunc(&funcs.free, libraryHandle, "ov_free")
	purego.RegisterLibFunc(&funcs.shapeFree, libraryHandle, "ov_shape_free")

	return funcs, nil
}

// registerOptional registers a symbol that older library builds do not
// export. RegisterLibFunc panics on a missing symbol, so the panic is
// swallowed and the function pointer stays nil.
func registerOptional[T any](fptr *T, handle uintptr, name string) {
	defer func() { _ = recover() }()
	purego.RegisterLibFunc(fptr, handle, name)
}

// Version and error reporting

func (f *Funcs) GetVersion(v *api.Version) api.OVStatus { return f.getVersion(v) }

func (f *Funcs) VersionFree(v *api.Version) { f.versionFree(v) }

func (f *Funcs) LastErrMsg() unsafe.Pointer {
	if f.getLastErrMsg == nil {
		return nil
	}
	return f.getLastErrMsg()
}

// Core

func (f *Funcs) CoreCreate(core *api.OVCore) api.OVStatus { return f.coreCreate(core) }

func (f *Funcs) CoreFree(core api.OVCore) { f.coreFree(core) }

func (f *Funcs) CoreGetAvailableDevices(core api.OVCore, devices *api.AvailableDevices) api.OVStatus {
	return f.coreGetAvailableDevices(core, devices)
}

func (f *Funcs) AvailableDevicesFree(devices *api.AvailableDevices) {
	f.availableDevicesFree(devices)
}

func (f *Funcs) CoreReadModel(core api.OVCore, path, binPath *byte, model *api.OVModel) api.OVStatus {
	return f.coreReadModel(core, path, binPath, model)
}

func (f *Funcs) CoreReadModelFromMemory(core api.OVCore, content *byte, size uintptr, weights api.OVTensor, model *api.OVModel) api.OVStatus {
	return f.coreReadModelFromMemory(core, content, size, weights, model)
}

func (f *Funcs) CoreCompileModel(core api.OVCore, model api.OVModel, device *byte, propCount uintptr, compiled *api.OVCompiledModel) api.OVStatus {
	return f.coreCompileModel(core, model, device, propCount, compiled)
}

func (f *Funcs) CoreSetProperty(core api.OVCore, device, key, value *byte) api.OVStatus {
	return f.coreSetProperty(core, device, key, value)
}

// Model

func (f *Funcs) ModelFree(model api.OVModel) { f.modelFree(model) }

func (f *Funcs) ModelGetFriendlyName(model api.OVModel, name **byte) api.OVStatus {
	return f.modelGetFriendlyName(model, name)
}

func (f *Funcs) ModelInputsSize(model api.OVModel, size *uintptr) api.OVStatus {
	return f.modelInputsSize(model, size)
}

func (f *Funcs) ModelOutputsSize(model api.OVModel, size *uintptr) api.OVStatus {
	return f.modelOutputsSize(model, size)
}

func (f *Funcs) ModelConstInputByIndex(model api.OVModel, index uintptr, port *api.OVOutputConstPort) api.OVStatus {
	return f.modelConstInputByIndex(model, index, port)
}

func (f *Funcs) ModelConstOutputByIndex(model api.OVModel, index uintptr, port *api.OVOutputConstPort) api.OVStatus {
	return f.modelConstOutputByIndex(model, index, port)
}

func (f *Funcs) ModelIsDynamic(model api.OVModel) bool { return f.modelIsDynamic(model) }

// Ports

func (f *Funcs) PortGetAnyName(port api.OVOutputConstPort, name **byte) api.OVStatus {
	return f.portGetAnyName(port, name)
}

func (f *Funcs) ConstPortGetShape(port api.OVOutputConstPort, shape *api.Shape) api.OVStatus {
	return f.constPortGetShape(port, shape)
}

func (f *Funcs) PortGetElementType(port api.OVOutputConstPort, elemType *api.ElementType) api.OVStatus {
	return f.portGetElementType(port, elemType)
}

func (f *Funcs) OutputConstPortFree(port api.OVOutputConstPort) { f.outputConstPortFree(port) }

// Compiled model

func (f *Funcs) CompiledModelFree(compiled api.OVCompiledModel) { f.compiledModelFree(compiled) }

func (f *Funcs) CompiledModelCreateInferRequest(compiled api.OVCompiledModel, request *api.OVInferRequest) api.OVStatus {
	return f.compiledModelCreateInferRequest(compiled, request)
}

func (f *Funcs) CompiledModelInputsSize(compiled api.OVCompiledModel, size *uintptr) api.OVStatus {
	return f.compiledModelInputsSize(compiled, size)
}

func (f *Funcs) CompiledModelOutputsSize(compiled api.OVCompiledModel, size *uintptr) api.OVStatus {
	return f.compiledModelOutputsSize(compiled, size)
}

func (f *Funcs) CompiledModelInputByIndex(compiled api.OVCompiledModel, index uintptr, port *api.OVOutputConstPort) api.OVStatus {
	return f.compiledModelInputByIndex(compiled, index, port)
}

func (f *Funcs) CompiledModelOutputByIndex(compiled api.OVCompiledModel, index uintptr, port *api.OVOutputConstPort) api.OVStatus {
	return f.compiledModelOutputByIndex(compiled, index, port)
}

func (f *Funcs) CompiledModelExportModel(compiled api.OVCompiledModel, path *byte) api.OVStatus {
	return f.compiledModelExportModel(compiled, path)
}

// Infer request

func (f *Funcs) InferRequestFree(request api.OVInferRequest) { f.inferRequestFree(request) }

func (f *Funcs) InferRequestInfer(request api.OVInferRequest) api.OVStatus {
	return f.inferRequestInfer(request)
}

func (f *Funcs) InferRequestStartAsync(request api.OVInferRequest) api.OVStatus {
	return f.inferRequestStartAsync(request)
}

func (f *Funcs) InferRequestWait(request api.OVInferRequest) api.OVStatus {
	return f.inferRequestWait(request)
}

func (f *Funcs) InferRequestWaitFor(request api.OVInferRequest, timeoutMs int64) api.OVStatus {
	return f.inferRequestWaitFor(request, timeoutMs)
}

func (f *Funcs) InferRequestCancel(request api.OVInferRequest) api.OVStatus {
	return f.inferRequestCancel(request)
}

func (f *Funcs) InferRequestSetInputTensorByIndex(request api.OVInferRequest, index uintptr, tensor api.OVTensor) api.OVStatus {
	return f.inferRequestSetInputTensorByIndex(request, index, tensor)
}

func (f *Funcs) InferRequestSetTensor(request api.OVInferRequest, name *byte, tensor api.OVTensor) api.OVStatus {
	return f.inferRequestSetTensor(request, name, tensor)
}

func (f *Funcs) InferRequestGetInputTensorByIndex(request api.OVInferRequest, index uintptr, tensor *api.OVTensor) api.OVStatus {
	return f.inferRequestGetInputTensorByIndex(request, index, tensor)
}

func (f *Funcs) InferRequestGetOutputTensorByIndex(request api.OVInferRequest, index uintptr, tensor *api.OVTensor) api.OVStatus {
	return f.inferRequestGetOutputTensorByIndex(request, index, tensor)
}

func (f *Funcs) InferRequestGetTensor(request api.OVInferRequest, name *byte, tensor *api.OVTensor) api.OVStatus {
	return f.inferRequestGetTensor(request, name, tensor)
}

// Tensor

func (f *Funcs) TensorCreate(elemType api.ElementType, rank int64, dims *int64, tensor *api.OVTensor) api.OVStatus {
	return f.tensorCreate(elemType, rank, dims, tensor)
}

func (f *Funcs) TensorCreateFromHostPtr(elemType api.ElementType, rank int64, dims *int64, data unsafe.Pointer, tensor *api.OVTensor) api.OVStatus {
	return f.tensorCreateFromHostPtr(elemType, rank, dims, data, tensor)
}

func (f *Funcs) TensorFree(tensor api.OVTensor) { f.tensorFree(tensor) }

func (f *Funcs) TensorData(tensor api.OVTensor, data *unsafe.Pointer) api.OVStatus {
	return f.tensorData(tensor, data)
}

func (f *Funcs) TensorGetByteSize(tensor api.OVTensor, size *uintptr) api.OVStatus {
	return f.tensorGetByteSize(tensor, size)
}

func (f *Funcs) TensorGetSize(tensor api.OVTensor, size *uintptr) api.OVStatus {
	return f.tensorGetSize(tensor, size)
}

func (f *Funcs) TensorGetShape(tensor api.OVTensor, shape *api.Shape) api.OVStatus {
	return f.tensorGetShape(tensor, shape)
}

func (f *Funcs) TensorGetElementType(tensor api.OVTensor, elemType *api.ElementType) api.OVStatus {
	return f.tensorGetElementType(tensor, elemType)
}

// Memory owned by the C API

func (f *Funcs) Free(ptr unsafe.Pointer) { f.free(ptr) }

func (f *Funcs) ShapeFree(shape *api.Shape) { f.shapeFree(shape) }
