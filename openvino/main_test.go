package openvino

import (
	"os"
	"testing"
)

// Tests that need the OpenVINO shared library read its location from
// OPENVINO_LIB_PATH (or the platform default names) and skip when it
// cannot be loaded. Tests that additionally need a model read its path
// from OPENVINO_TEST_MODEL, and use OPENVINO_TEST_DEVICE (default CPU)
// as compilation target.

func libraryPath() string {
	return os.Getenv("OPENVINO_LIB_PATH")
}

func isLibraryAvailable() bool {
	r, err := NewRuntime(libraryPath())
	if err != nil {
		return false
	}
	r.Close()
	return true
}

func newTestRuntime(t *testing.T) *Runtime {
	t.Helper()
	r, err := NewRuntime(libraryPath())
	if err != nil {
		t.Skipf("OpenVINO library not available: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func newTestCore(t *testing.T) *Core {
	t.Helper()
	r := newTestRuntime(t)

	core, err := r.NewCore()
	if err != nil {
		t.Fatalf("Failed to create core: %v", err)
	}
	t.Cleanup(func() { core.Close() })
	return core
}

func testModelPath(t *testing.T) string {
	t.Helper()
	path := os.Getenv("OPENVINO_TEST_MODEL")
	if path == "" {
		t.Skip("OPENVINO_TEST_MODEL not set")
	}
	return path
}

func testDevice() string {
	if d := os.Getenv("OPENVINO_TEST_DEVICE"); d != "" {
		return d
	}
	return DeviceCPU
}
