package openvino

import "testing"

func TestPortInfoElementCount(t *testing.T) {
	tests := []struct {
		shape []int64
		want  int
	}{
		{[]int64{1, 3, 224, 224}, 150528},
		{[]int64{1, 1000}, 1000},
		{[]int64{}, 1}, // scalar
		{[]int64{1, -1, 224}, 0},
		{[]int64{0}, 0},
	}
	for _, tt := range tests {
		p := PortInfo{Shape: tt.shape}
		if got := p.ElementCount(); got != tt.want {
			t.Errorf("ElementCount(%v) = %d, want %d", tt.shape, got, tt.want)
		}
	}
}

func TestPortInfoByteSize(t *testing.T) {
	p := PortInfo{Shape: []int64{1, 1000}, ElementType: ElementF32}
	if got := p.ByteSize(); got != 4000 {
		t.Errorf("ByteSize = %d, want 4000", got)
	}
	dynamic := PortInfo{Shape: []int64{-1, 1000}, ElementType: ElementF32}
	if got := dynamic.ByteSize(); got != 0 {
		t.Errorf("ByteSize for dynamic shape = %d, want 0", got)
	}
}

func TestPortInfoString(t *testing.T) {
	p := PortInfo{Name: "data", Shape: []int64{1, 3}, ElementType: ElementF32}
	if got := p.String(); got != "data f32[1 3]" {
		t.Errorf("Unexpected string: %q", got)
	}
}
