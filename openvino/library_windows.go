//go:build windows

package openvino

import (
	"fmt"
	"syscall"
)

var defaultLibraryNames = []string{"openvino_c.dll"}

func openLibrary(path string) (uintptr, error) {
	handle, err := syscall.LoadLibrary(path)
	if err != nil {
		return 0, fmt.Errorf("LoadLibrary %s: %w", path, err)
	}
	return uintptr(handle), nil
}

func closeLibrary(handle uintptr) {
	_ = syscall.FreeLibrary(syscall.Handle(handle))
}
