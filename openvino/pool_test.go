package openvino

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestNewRequestPoolValidation(t *testing.T) {
	if _, err := NewRequestPool(nil, "model.onnx", 2, nil); err != ErrPluginClosed {
		t.Errorf("Expected ErrPluginClosed for nil plugin, got %v", err)
	}

	closedPlugin := &Plugin{closed: true}
	if _, err := NewRequestPool(closedPlugin, "model.onnx", 2, nil); err != ErrPluginClosed {
		t.Errorf("Expected ErrPluginClosed, got %v", err)
	}
	if _, err := NewRequestPoolFromMemory(closedPlugin, []byte{1}, 2, nil); err != ErrPluginClosed {
		t.Errorf("Expected ErrPluginClosed, got %v", err)
	}
}

// testPool builds a pool around fake requests, bypassing the runtime, so
// borrowing, hooks and stats can be exercised without hardware.
func testPool(size int, hooks ...Hook) *RequestPool {
	pool := &RequestPool{
		requests: make(chan *InferRequest, size),
		hooks:    hooks,
		inputs:   []PortInfo{{Name: "data"}},
		outputs:  []PortInfo{{Name: "prob"}},
	}
	for i := 0; i < size; i++ {
		pool.requests <- &InferRequest{}
	}
	return pool
}

func TestPoolRunClosed(t *testing.T) {
	pool := testPool(1)
	pool.closed.Store(true)

	err := pool.run(context.Background(), func(context.Context, *InferRequest) error { return nil })
	if err == nil {
		t.Error("Expected error on closed pool")
	}
}

func TestPoolRunContextCancelled(t *testing.T) {
	pool := testPool(1)

	// Hold the only request so Run must wait, then cancel.
	request := <-pool.requests
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := pool.run(ctx, func(context.Context, *InferRequest) error { return nil })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	pool.requests <- request
}

func TestPoolStatsAndHooks(t *testing.T) {
	var mu sync.Mutex
	var before, after int
	var lastInfo *RunInfo

	hook := &statsHook{
		before: func(info *RunInfo) {
			mu.Lock()
			before++
			mu.Unlock()
		},
		after: func(info *RunInfo) {
			mu.Lock()
			after++
			lastInfo = info
			mu.Unlock()
		},
	}
	pool := testPool(2, hook)

	runErr := errors.New("boom")
	if err := pool.run(context.Background(), func(context.Context, *InferRequest) error { return nil }); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if err := pool.run(context.Background(), func(context.Context, *InferRequest) error { return runErr }); !errors.Is(err, runErr) {
		t.Fatalf("Expected run error back, got %v", err)
	}

	stats := pool.Stats()
	if stats.TotalRuns != 2 {
		t.Errorf("Expected 2 runs, got %d", stats.TotalRuns)
	}
	if stats.TotalErrors != 1 {
		t.Errorf("Expected 1 error, got %d", stats.TotalErrors)
	}
	if stats.PoolSize != 2 || stats.AvailableRequests != 2 {
		t.Errorf("Unexpected pool occupancy: %+v", stats)
	}

	mu.Lock()
	defer mu.Unlock()
	if before != 2 || after != 2 {
		t.Errorf("Expected hooks called twice, got before=%d after=%d", before, after)
	}
	if lastInfo == nil || !errors.Is(lastInfo.Error, runErr) {
		t.Errorf("Expected hook to see run error, got %+v", lastInfo)
	}
	if len(lastInfo.InputNames) != 1 || lastInfo.InputNames[0] != "data" {
		t.Errorf("Expected input names in RunInfo, got %v", lastInfo.InputNames)
	}
	if lastInfo.OutputNames != nil {
		t.Errorf("Output names should be unset on failure, got %v", lastInfo.OutputNames)
	}
}

func TestPoolConcurrentBorrow(t *testing.T) {
	pool := testPool(4)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = pool.run(context.Background(), func(context.Context, *InferRequest) error {
				time.Sleep(time.Millisecond)
				return nil
			})
		}()
	}
	wg.Wait()

	if pool.Available() != 4 {
		t.Errorf("Expected all requests returned, got %d", pool.Available())
	}
	if got := pool.Stats().TotalRuns; got != 32 {
		t.Errorf("Expected 32 runs, got %d", got)
	}
}

func TestPoolAvgLatency(t *testing.T) {
	var s PoolStats
	if s.AvgLatency() != 0 {
		t.Error("Expected zero average for zero runs")
	}
	s = PoolStats{TotalRuns: 4, TotalLatency: 4 * time.Second}
	if s.AvgLatency() != time.Second {
		t.Errorf("Expected 1s average, got %v", s.AvgLatency())
	}
}

type statsHook struct {
	before func(*RunInfo)
	after  func(*RunInfo)
}

func (h *statsHook) BeforeRun(info *RunInfo) { h.before(info) }
func (h *statsHook) AfterRun(info *RunInfo)  { h.after(info) }
