package openvino

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"
)

// RequestPool manages a fixed set of inference requests over one
// compiled model for safe concurrent use. Each goroutine borrows a
// request, runs inference, and returns it automatically.
//
// Example:
//
//	pool, err := openvino.NewRequestPool(plugin, "model.onnx", 4, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pool.Close()
//
//	// Safe to call from many goroutines:
//	err = pool.Run(ctx, input, output)
type RequestPool struct {
	requests chan *InferRequest
	compiled *CompiledModel
	closed   atomic.Bool
	hooks    []Hook

	inputs  []PortInfo
	outputs []PortInfo

	// metrics
	totalRuns    atomic.Int64
	totalErrors  atomic.Int64
	totalLatency atomic.Int64 // nanoseconds
}

// PoolConfig configures request pool behavior.
type PoolConfig struct {
	// Properties applied when compiling the model, e.g.
	// PropertyPerformanceHint set to "THROUGHPUT".
	Properties map[string]string

	// Hooks are called around every Run invocation.
	Hooks []Hook
}

// NewRequestPool compiles the model at modelPath on the plugin's device
// and creates a pool of n inference requests over it.
func NewRequestPool(plugin *Plugin, modelPath string, n int, config *PoolConfig) (*RequestPool, error) {
	if plugin == nil || plugin.closed {
		return nil, ErrPluginClosed
	}
	model, err := plugin.core.ReadModel(modelPath)
	if err != nil {
		return nil, err
	}
	defer model.Close()

	return newRequestPool(plugin, model, n, config)
}

// NewRequestPoolFromMemory is NewRequestPool for a model already held
// in memory.
func NewRequestPoolFromMemory(plugin *Plugin, modelData []byte, n int, config *PoolConfig) (*RequestPool, error) {
	if plugin == nil || plugin.closed {
		return nil, ErrPluginClosed
	}
	if len(modelData) == 0 {
		return nil, fmt.Errorf("model data cannot be empty")
	}
	model, err := plugin.core.ReadModelFromMemory(modelData)
	if err != nil {
		return nil, err
	}
	defer model.Close()

	return newRequestPool(plugin, model, n, config)
}

func newRequestPool(plugin *Plugin, model *Model, n int, config *PoolConfig) (*RequestPool, error) {
	if n <= 0 {
		return nil, fmt.Errorf("pool size must be positive, got %d", n)
	}

	var properties map[string]string
	var hooks []Hook
	if config != nil {
		properties = config.Properties
		hooks = config.Hooks
	}

	compiled, err := plugin.core.CompileModel(model, plugin.device, properties)
	if err != nil {
		return nil, err
	}

	inputs, err := compiled.Inputs()
	if err != nil {
		compiled.Close()
		return nil, err
	}
	outputs, err := compiled.Outputs()
	if err != nil {
		compiled.Close()
		return nil, err
	}

	pool := &RequestPool{
		requests: make(chan *InferRequest, n),
		compiled: compiled,
		hooks:    hooks,
		inputs:   inputs,
		outputs:  outputs,
	}

	for i := 0; i < n; i++ {
		request, err := compiled.CreateInferRequest()
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to create infer request %d: %w", i, err)
		}
		pool.requests <- request
	}

	return pool, nil
}

// Run borrows a request from the pool, copies input into its first
// input tensor, runs inference and copies the first output tensor into
// output. It blocks until a request is available or ctx is cancelled.
// This is safe to call from multiple goroutines concurrently.
func (p *RequestPool) Run(ctx context.Context, input, output []float32) error {
	return p.run(ctx, func(ctx context.Context, request *InferRequest) error {
		in, err := request.GetInputTensor(0)
		if err != nil {
			return err
		}
		defer in.Close()
		if _, err := in.CopyFrom(input); err != nil {
			return err
		}

		if err := request.Infer(ctx); err != nil {
			return err
		}

		out, err := request.GetOutputTensor(0)
		if err != nil {
			return err
		}
		defer out.Close()
		_, err = out.CopyTo(output)
		return err
	})
}

// RunTensors borrows a request, binds the given named tensors and runs
// inference, then extracts every output port as float32 data.
func (p *RequestPool) RunTensors(ctx context.Context, inputs map[string]*Tensor) (map[string][]float32, error) {
	results := make(map[string][]float32, len(p.outputs))
	err := p.run(ctx, func(ctx context.Context, request *InferRequest) error {
		for name, tensor := range inputs {
			if err := request.SetTensor(name, tensor); err != nil {
				return err
			}
		}

		if err := request.Infer(ctx); err != nil {
			return err
		}

		for i, port := range p.outputs {
			out, err := request.GetOutputTensor(i)
			if err != nil {
				return err
			}
			data, err := out.FloatData()
			out.Close()
			if err != nil {
				return err
			}
			results[port.Name] = data
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (p *RequestPool) run(ctx context.Context, fn func(context.Context, *InferRequest) error) error {
	if p.closed.Load() {
		return fmt.Errorf("request pool is closed")
	}

	// Borrow a request
	var request *InferRequest
	select {
	case request = <-p.requests:
	case <-ctx.Done():
		return ctx.Err()
	}

	// Always return the request to the pool
	defer func() {
		if !p.closed.Load() {
			p.requests <- request
		}
	}()

	info := &RunInfo{
		InputNames: portNames(p.inputs),
	}
	for _, h := range p.hooks {
		h.BeforeRun(info)
	}

	start := time.Now()
	err := fn(ctx, request)
	elapsed := time.Since(start)

	info.Duration = elapsed
	info.Error = err
	if err == nil {
		info.OutputNames = portNames(p.outputs)
	}

	p.totalRuns.Add(1)
	p.totalLatency.Add(int64(elapsed))
	if err != nil {
		p.totalErrors.Add(1)
	}

	for _, h := range p.hooks {
		h.AfterRun(info)
	}

	return err
}

// Inputs describes the compiled model's input ports.
func (p *RequestPool) Inputs() []PortInfo {
	return p.inputs
}

// Outputs describes the compiled model's output ports.
func (p *RequestPool) Outputs() []PortInfo {
	return p.outputs
}

// Size returns the total number of requests in the pool.
func (p *RequestPool) Size() int {
	return cap(p.requests)
}

// Available returns the number of idle requests currently available.
func (p *RequestPool) Available() int {
	return len(p.requests)
}

// Stats returns pool usage statistics.
func (p *RequestPool) Stats() PoolStats {
	return PoolStats{
		TotalRuns:         p.totalRuns.Load(),
		TotalErrors:       p.totalErrors.Load(),
		TotalLatency:      time.Duration(p.totalLatency.Load()),
		PoolSize:          cap(p.requests),
		AvailableRequests: len(p.requests),
	}
}

// PoolStats contains pool usage statistics.
type PoolStats struct {
	TotalRuns         int64
	TotalErrors       int64
	TotalLatency      time.Duration
	PoolSize          int
	AvailableRequests int
}

// AvgLatency returns the average inference latency, or 0 if no runs have completed.
func (s PoolStats) AvgLatency() time.Duration {
	if s.TotalRuns == 0 {
		return 0
	}
	return s.TotalLatency / time.Duration(s.TotalRuns)
}

// Close drains the pool, closes all requests and releases the compiled
// model.
func (p *RequestPool) Close() {
	if !p.closed.CompareAndSwap(false, true) {
		return
	}

	close(p.requests)
	for request := range p.requests {
		request.Close()
	}
	if p.compiled != nil {
		p.compiled.Close()
	}
}

func portNames(ports []PortInfo) []string {
	names := make([]string, len(ports))
	for i, p := range ports {
		names[i] = p.Name
	}
	return names
}
