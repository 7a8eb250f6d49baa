package openvino

import (
	"strings"
	"testing"
)

func TestRuntimeVersion(t *testing.T) {
	r := newTestRuntime(t)

	version, err := r.Version()
	if err != nil {
		t.Fatalf("Failed to get version: %v", err)
	}
	if version.BuildNumber == "" {
		t.Error("Expected a build number")
	}
	t.Logf("OpenVINO %s (%s)", version.BuildNumber, version.Description)
}

func TestRuntimeDoubleClose(t *testing.T) {
	r, err := NewRuntime(libraryPath())
	if err != nil {
		t.Skipf("OpenVINO library not available: %v", err)
	}
	r.Close()
	r.Close() // should not panic
}

func TestCoreAvailableDevices(t *testing.T) {
	core := newTestCore(t)

	devices, err := core.AvailableDevices()
	if err != nil {
		t.Fatalf("Failed to get devices: %v", err)
	}
	t.Logf("Available devices: %v", devices)

	hasCPU, err := core.HasDevice(DeviceCPU)
	if err != nil {
		t.Fatalf("HasDevice failed: %v", err)
	}
	if !hasCPU {
		t.Error("Expected CPU device to be available")
	}
}

func TestCoreDoubleClose(t *testing.T) {
	r := newTestRuntime(t)

	core, err := r.NewCore()
	if err != nil {
		t.Fatalf("Failed to create core: %v", err)
	}
	core.Close()
	core.Close() // should not panic
}

func TestCoreUseAfterClose(t *testing.T) {
	core := &Core{}

	if _, err := core.AvailableDevices(); err != ErrCoreClosed {
		t.Errorf("Expected ErrCoreClosed, got %v", err)
	}
	if _, err := core.ReadModel("model.onnx"); err != ErrCoreClosed {
		t.Errorf("Expected ErrCoreClosed, got %v", err)
	}
	if _, err := core.ReadModelFromMemory([]byte{1}); err != ErrCoreClosed {
		t.Errorf("Expected ErrCoreClosed, got %v", err)
	}
	if err := core.SetProperty(DeviceCPU, PropertyCacheDir, "/tmp"); err != ErrCoreClosed {
		t.Errorf("Expected ErrCoreClosed, got %v", err)
	}
	if _, err := core.CompileModel(nil, DeviceCPU, nil); err != ErrCoreClosed {
		t.Errorf("Expected ErrCoreClosed, got %v", err)
	}
}

func TestReadModelMissingFile(t *testing.T) {
	core := newTestCore(t)

	_, err := core.ReadModel("/nonexistent/model.onnx")
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
	if !strings.Contains(err.Error(), "not readable") {
		t.Errorf("Expected readability error, got %v", err)
	}
}

func TestReadModelDirectory(t *testing.T) {
	core := newTestCore(t)

	_, err := core.ReadModel(t.TempDir())
	if err == nil {
		t.Fatal("Expected error for directory path")
	}
	if !strings.Contains(err.Error(), "directory") {
		t.Errorf("Expected directory error, got %v", err)
	}
}

func TestCompileAndInfer(t *testing.T) {
	core := newTestCore(t)
	modelPath := testModelPath(t)

	model, err := core.ReadModel(modelPath)
	if err != nil {
		t.Fatalf("Failed to read model: %v", err)
	}
	defer model.Close()

	name, err := model.FriendlyName()
	if err != nil {
		t.Fatalf("Failed to get friendly name: %v", err)
	}
	t.Logf("Model: %s", name)

	inputs, err := model.Inputs()
	if err != nil {
		t.Fatalf("Failed to get inputs: %v", err)
	}
	if len(inputs) == 0 {
		t.Fatal("Expected at least one input")
	}
	for _, port := range inputs {
		t.Logf("Input: %s", port)
	}

	compiled, err := core.CompileModel(model, testDevice(), nil)
	if err != nil {
		t.Skipf("Cannot compile for %s: %v", testDevice(), err)
	}
	defer compiled.Close()

	request, err := compiled.CreateInferRequest()
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}
	defer request.Close()

	in, err := request.GetInputTensor(0)
	if err != nil {
		t.Fatalf("Failed to get input tensor: %v", err)
	}
	defer in.Close()

	count, err := in.ElementCount()
	if err != nil {
		t.Fatalf("Failed to get element count: %v", err)
	}
	if _, err := in.CopyFrom(make([]float32, count)); err != nil {
		t.Fatalf("CopyFrom failed: %v", err)
	}

	if err := request.Infer(t.Context()); err != nil {
		t.Fatalf("Infer failed: %v", err)
	}

	out, err := request.GetOutputTensor(0)
	if err != nil {
		t.Fatalf("Failed to get output tensor: %v", err)
	}
	defer out.Close()

	data, err := out.FloatData()
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if len(data) == 0 {
		t.Error("Expected output data")
	}
}
