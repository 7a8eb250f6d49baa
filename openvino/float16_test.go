package openvino

import (
	"math"
	"testing"

	"github.com/x448/float16"
)

func TestFloat16Conversion(t *testing.T) {
	values := []float32{0, 1, -1, 0.5, 2, 65504, -65504, 0.00006103515625}

	bits := make([]uint16, len(values))
	for i, v := range values {
		bits[i] = float16.Fromfloat32(v).Bits()
	}

	got := float16ToFloat32(bits)
	for i, v := range values {
		if got[i] != v {
			t.Errorf("float16ToFloat32(%v) = %v, want %v", bits[i], got[i], v)
		}
	}
}

func TestFloat16TableMatchesDirectConversion(t *testing.T) {
	// Spot-check a spread of bit patterns, including NaN and both
	// infinities, against the conversion the table was built from.
	for _, bits := range []uint16{0x0000, 0x0001, 0x3c00, 0x7bff, 0x7c00, 0xfc00, 0x7e00, 0x8000, 0xffff} {
		got := float16ToFloat32([]uint16{bits})[0]
		want := float16.Frombits(bits).Float32()
		if got != want && !(math.IsNaN(float64(got)) && math.IsNaN(float64(want))) {
			t.Errorf("table[%#04x] = %v, want %v", bits, got, want)
		}
	}
}

func TestFloat32ToFloat16RoundTrip(t *testing.T) {
	in := []float32{0, 1, -2.5, 1024}
	out := Float32ToFloat16(in)

	back := make([]uint16, len(out))
	for i, h := range out {
		back[i] = h.Bits()
	}
	got := float16ToFloat32(back)
	for i, v := range in {
		if got[i] != v {
			t.Errorf("round trip of %v gave %v", v, got[i])
		}
	}
}
