// Package openvino provides Go bindings for the OpenVINO Runtime C API using purego.
//
// This package allows you to load and execute models on OpenVINO devices such as
// NPU, GPU and CPU in pure Go, without requiring cgo. It uses the purego library
// to call into the native OpenVINO shared library.
//
// The Plugin type is the quickest way in: it binds to one device, compiles a
// model and runs float32 buffers through it. The Runtime, Core, CompiledModel
// and InferRequest types expose the underlying API when more control is needed,
// and RequestPool serves one model from many goroutines.
package openvino
