package openvino

import (
	"fmt"

	"github.com/ovinfer/openvino-purego/openvino/internal/api"
	v2 "github.com/ovinfer/openvino-purego/openvino/internal/api/v2"
)

// Runtime represents a loaded OpenVINO shared library (libopenvino_c).
// One Runtime can serve any number of cores, models, and infer requests.
type Runtime struct {
	libraryHandle uintptr
	funcs         api.Funcs
}

// NewRuntime loads the OpenVINO C shared library and registers its API
// functions. If libraryPath is empty, standard system library names are
// tried in order.
func NewRuntime(libraryPath string) (*Runtime, error) {
	paths := []string{libraryPath}
	if libraryPath == "" {
		paths = defaultLibraryNames
	}

	var handle uintptr
	var lastErr error
	for _, p := range paths {
		h, err := openLibrary(p)
		if err != nil {
			lastErr = err
			continue
		}
		handle = h
		break
	}
	if handle == 0 {
		return nil, fmt.Errorf("failed to load OpenVINO library: %w", lastErr)
	}

	funcs, err := v2.InitializeFuncs(handle)
	if err != nil {
		closeLibrary(handle)
		return nil, fmt.Errorf("failed to initialize OpenVINO API: %w", err)
	}

	return &Runtime{
		libraryHandle: handle,
		funcs:         funcs,
	}, nil
}

// Version holds the OpenVINO library version information.
type Version struct {
	BuildNumber string
	Description string
}

// Version returns the version of the loaded OpenVINO library.
func (r *Runtime) Version() (Version, error) {
	if r.funcs == nil {
		return Version{}, fmt.Errorf("runtime is closed")
	}

	var cVer api.Version
	status := r.funcs.GetVersion(&cVer)
	if err := r.statusError(status); err != nil {
		return Version{}, fmt.Errorf("failed to get version: %w", err)
	}

	ver := Version{
		BuildNumber: cStringToString((*byte)(cVer.BuildNumber)),
		Description: cStringToString((*byte)(cVer.Description)),
	}
	r.funcs.VersionFree(&cVer)

	return ver, nil
}

// statusError converts a C API status into an error, nil on StatusOK.
// When the library exports ov_get_last_err_msg the recorded message is
// attached to the error.
func (r *Runtime) statusError(status Status) error {
	if status == StatusOK {
		return nil
	}

	var msg string
	if ptr := r.funcs.LastErrMsg(); ptr != nil {
		msg = cStringToString((*byte)(ptr))
	}

	return &RuntimeError{
		Status:  status,
		Message: msg,
	}
}

// Close unloads the shared library. All cores, models, and requests
// created from this runtime must be closed first.
// It is safe to call Close multiple times.
func (r *Runtime) Close() {
	if r.libraryHandle != 0 {
		closeLibrary(r.libraryHandle)
		r.libraryHandle = 0
		r.funcs = nil
	}
}
