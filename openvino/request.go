package openvino

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ovinfer/openvino-purego/openvino/internal/api"
)

// InferRequest represents a reusable execution context bound to a
// compiled model (ov_infer_request_t). It holds the input and output
// tensor buffers between runs.
//
// An InferRequest is NOT safe for concurrent use from multiple
// goroutines. Create one request per goroutine, or use RequestPool.
type InferRequest struct {
	ptr     api.OVInferRequest
	runtime *Runtime
}

// SetInputTensor binds a tensor to the input port at the given index.
func (q *InferRequest) SetInputTensor(index int, t *Tensor) error {
	if q.ptr == 0 {
		return ErrRequestClosed
	}
	if t == nil || t.ptr == 0 {
		return ErrTensorClosed
	}
	if index < 0 {
		return fmt.Errorf("input index must be non-negative, got %d", index)
	}

	status := q.runtime.funcs.InferRequestSetInputTensorByIndex(q.ptr, uintptr(index), t.ptr)
	if err := q.runtime.statusError(status); err != nil {
		return fmt.Errorf("failed to set input tensor %d: %w", index, err)
	}
	return nil
}

// SetTensor binds a tensor to the port with the given name.
func (q *InferRequest) SetTensor(name string, t *Tensor) error {
	if q.ptr == 0 {
		return ErrRequestClosed
	}
	if t == nil || t.ptr == 0 {
		return ErrTensorClosed
	}

	nameBytes := append([]byte(name), 0)
	status := q.runtime.funcs.InferRequestSetTensor(q.ptr, &nameBytes[0], t.ptr)
	if err := q.runtime.statusError(status); err != nil {
		return fmt.Errorf("failed to set tensor %q: %w", name, err)
	}
	return nil
}

// GetInputTensor returns the input tensor at the given index. The
// returned Tensor wraps runtime-owned memory and must be closed after use;
// closing it does not invalidate the request's buffer.
func (q *InferRequest) GetInputTensor(index int) (*Tensor, error) {
	if q.ptr == 0 {
		return nil, ErrRequestClosed
	}

	var tensorPtr api.OVTensor
	status := q.runtime.funcs.InferRequestGetInputTensorByIndex(q.ptr, uintptr(index), &tensorPtr)
	if err := q.runtime.statusError(status); err != nil {
		return nil, fmt.Errorf("failed to get input tensor %d: %w", index, err)
	}
	return q.runtime.newTensorFromPtr(tensorPtr), nil
}

// GetOutputTensor returns the output tensor at the given index. The
// returned Tensor must be closed after use.
func (q *InferRequest) GetOutputTensor(index int) (*Tensor, error) {
	if q.ptr == 0 {
		return nil, ErrRequestClosed
	}

	var tensorPtr api.OVTensor
	status := q.runtime.funcs.InferRequestGetOutputTensorByIndex(q.ptr, uintptr(index), &tensorPtr)
	if err := q.runtime.statusError(status); err != nil {
		return nil, fmt.Errorf("failed to get output tensor %d: %w", index, err)
	}
	return q.runtime.newTensorFromPtr(tensorPtr), nil
}

// GetTensor returns the tensor bound to the port with the given name.
// The returned Tensor must be closed after use.
func (q *InferRequest) GetTensor(name string) (*Tensor, error) {
	if q.ptr == 0 {
		return nil, ErrRequestClosed
	}

	nameBytes := append([]byte(name), 0)
	var tensorPtr api.OVTensor
	status := q.runtime.funcs.InferRequestGetTensor(q.ptr, &nameBytes[0], &tensorPtr)
	if err := q.runtime.statusError(status); err != nil {
		return nil, fmt.Errorf("failed to get tensor %q: %w", name, err)
	}
	return q.runtime.newTensorFromPtr(tensorPtr), nil
}

// Infer runs inference synchronously. When ctx carries a deadline or can
// be cancelled, the run is started asynchronously and cancelled through
// the runtime when ctx is done.
func (q *InferRequest) Infer(ctx context.Context) error {
	if q.ptr == 0 {
		return ErrRequestClosed
	}

	if ctx == nil || ctx.Done() == nil {
		return q.runtime.statusError(q.runtime.funcs.InferRequestInfer(q.ptr))
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	status := q.runtime.funcs.InferRequestStartAsync(q.ptr)
	if err := q.runtime.statusError(status); err != nil {
		return fmt.Errorf("failed to start inference: %w", err)
	}

	// Watch for cancellation in a goroutine. The WaitGroup ensures the
	// goroutine has exited before the request can be reused or released,
	// so Cancel never races a freed handle.
	var wg sync.WaitGroup
	done := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		select {
		case <-ctx.Done():
			q.runtime.funcs.InferRequestCancel(q.ptr)
		case <-done:
		}
	}()

	err := q.runtime.statusError(q.runtime.funcs.InferRequestWait(q.ptr))
	close(done)
	wg.Wait()

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}
	return nil
}

// WaitFor blocks until the current asynchronous run finishes or the
// timeout elapses.
func (q *InferRequest) WaitFor(timeout time.Duration) error {
	if q.ptr == 0 {
		return ErrRequestClosed
	}
	return q.runtime.statusError(q.runtime.funcs.InferRequestWaitFor(q.ptr, timeout.Milliseconds()))
}

// Close releases the infer request. It is safe to call Close multiple times.
func (q *InferRequest) Close() {
	if q.ptr != 0 && q.runtime != nil && q.runtime.funcs != nil {
		q.runtime.funcs.InferRequestFree(q.ptr)
		q.ptr = 0
	}
}
