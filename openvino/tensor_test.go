package openvino

import (
	"testing"
)

func TestElementTypeOf(t *testing.T) {
	if got, err := elementTypeOf[float32](); err != nil || got != ElementF32 {
		t.Errorf("elementTypeOf[float32] = %v, %v", got, err)
	}
	if got, err := elementTypeOf[Float16](); err != nil || got != ElementF16 {
		t.Errorf("elementTypeOf[Float16] = %v, %v", got, err)
	}
	if got, err := elementTypeOf[uint16](); err != nil || got != ElementU16 {
		t.Errorf("elementTypeOf[uint16] = %v, %v", got, err)
	}
	if got, err := elementTypeOf[bool](); err != nil || got != ElementBoolean {
		t.Errorf("elementTypeOf[bool] = %v, %v", got, err)
	}
}

func TestNewTensorValidation(t *testing.T) {
	// Validation happens before the runtime is touched.
	if _, err := NewTensor[float32](nil, nil, []int64{1}); err == nil {
		t.Error("Expected error for empty data")
	}
	if _, err := NewTensor(nil, []float32{1, 2, 3}, []int64{1, 2}); err == nil {
		t.Error("Expected error for shape/data mismatch")
	}
}

func TestFloatsAsBytes(t *testing.T) {
	if got := floatsAsBytes(nil); got != nil {
		t.Errorf("Expected nil for empty slice, got %v", got)
	}
	b := floatsAsBytes([]float32{1, 2, 3})
	if len(b) != 12 {
		t.Errorf("Expected 12 bytes, got %d", len(b))
	}
	// 1.0 is 0x3f800000 little-endian
	if b[3] != 0x3f || b[2] != 0x80 {
		t.Errorf("Unexpected byte layout: % x", b[:4])
	}
}

func TestTensorUseAfterClose(t *testing.T) {
	tensor := &Tensor{}
	if _, err := tensor.Shape(); err != ErrTensorClosed {
		t.Errorf("Expected ErrTensorClosed, got %v", err)
	}
	if _, err := tensor.ByteSize(); err != ErrTensorClosed {
		t.Errorf("Expected ErrTensorClosed, got %v", err)
	}
	if _, err := tensor.CopyFrom([]float32{1}); err != ErrTensorClosed {
		t.Errorf("Expected ErrTensorClosed, got %v", err)
	}
	if _, err := tensor.CopyTo(make([]float32, 1)); err != ErrTensorClosed {
		t.Errorf("Expected ErrTensorClosed, got %v", err)
	}
	tensor.Close() // should not panic
}

func TestTensorRoundTrip(t *testing.T) {
	r := newTestRuntime(t)

	data := []float32{1, 2, 3, 4, 5, 6}
	tensor, err := NewTensor(r, data, []int64{2, 3})
	if err != nil {
		t.Fatalf("Failed to create tensor: %v", err)
	}
	defer tensor.Close()

	shape, err := tensor.Shape()
	if err != nil {
		t.Fatalf("Failed to get shape: %v", err)
	}
	if len(shape) != 2 || shape[0] != 2 || shape[1] != 3 {
		t.Errorf("Expected shape [2 3], got %v", shape)
	}

	elemType, err := tensor.ElementType()
	if err != nil {
		t.Fatalf("Failed to get element type: %v", err)
	}
	if elemType != ElementF32 {
		t.Errorf("Expected f32, got %s", ElementTypeName(elemType))
	}

	size, err := tensor.ByteSize()
	if err != nil {
		t.Fatalf("Failed to get byte size: %v", err)
	}
	if size != 24 {
		t.Errorf("Expected 24 bytes, got %d", size)
	}

	got, gotShape, err := GetTensorData[float32](tensor)
	if err != nil {
		t.Fatalf("Failed to get data: %v", err)
	}
	if len(gotShape) != 2 {
		t.Errorf("Unexpected shape %v", gotShape)
	}
	for i, v := range data {
		if got[i] != v {
			t.Errorf("Data mismatch at %d: got %v, want %v", i, got[i], v)
		}
	}

	// Requesting the wrong element type must fail.
	if _, _, err := GetTensorData[int32](tensor); err == nil {
		t.Error("Expected element type mismatch error")
	}
}

func TestTensorClampedCopies(t *testing.T) {
	r := newTestRuntime(t)

	tensor, err := NewEmptyTensor(r, ElementF32, []int64{4})
	if err != nil {
		t.Fatalf("Failed to create tensor: %v", err)
	}
	defer tensor.Close()

	// Oversized source: only the tensor's 16 bytes are written.
	n, err := tensor.CopyFrom([]float32{1, 2, 3, 4, 5, 6})
	if err != nil {
		t.Fatalf("CopyFrom failed: %v", err)
	}
	if n != 16 {
		t.Errorf("Expected 16 bytes copied, got %d", n)
	}

	// Undersized destination: only the caller's 8 bytes are written.
	dst := make([]float32, 2)
	n, err = tensor.CopyTo(dst)
	if err != nil {
		t.Fatalf("CopyTo failed: %v", err)
	}
	if n != 8 {
		t.Errorf("Expected 8 bytes copied, got %d", n)
	}
	if dst[0] != 1 || dst[1] != 2 {
		t.Errorf("Expected [1 2], got %v", dst)
	}

	// Oversized destination: the tail is left untouched.
	big := []float32{-1, -1, -1, -1, -1, -1}
	n, err = tensor.CopyTo(big)
	if err != nil {
		t.Fatalf("CopyTo failed: %v", err)
	}
	if n != 16 {
		t.Errorf("Expected 16 bytes copied, got %d", n)
	}
	if big[4] != -1 || big[5] != -1 {
		t.Errorf("Tail should be untouched, got %v", big)
	}
}
