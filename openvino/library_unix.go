//go:build darwin || linux || freebsd

package openvino

import (
	"fmt"
	"runtime"

	"github.com/ebitengine/purego"
)

var defaultLibraryNames = func() []string {
	if runtime.GOOS == "darwin" {
		return []string{"libopenvino_c.dylib"}
	}
	return []string{"libopenvino_c.so", "libopenvino_c.so.2"}
}()

func openLibrary(path string) (uintptr, error) {
	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return 0, fmt.Errorf("dlopen %s: %w", path, err)
	}
	return handle, nil
}

func closeLibrary(handle uintptr) {
	_ = purego.Dlclose(handle)
}
