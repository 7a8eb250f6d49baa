package openvino

import (
	"sync"

	"github.com/x448/float16"
)

// f16Table maps every possible half-precision bit pattern to its
// float32 value. Converting a large F16 tensor element by element is
// measurably slower than a table lookup, so the table is built once on
// first use.
var (
	f16Table     [65536]float32
	f16TableOnce sync.Once
)

func buildF16Table() {
	for i := range f16Table {
		f16Table[i] = float16.Frombits(uint16(i)).Float32()
	}
}

// float16ToFloat32 converts raw half-precision bit patterns to float32.
func float16ToFloat32(bits []uint16) []float32 {
	f16TableOnce.Do(buildF16Table)

	out := make([]float32, len(bits))
	for i, b := range bits {
		out[i] = f16Table[b]
	}
	return out
}

// Float32ToFloat16 converts float32 values to half-precision, rounding
// to nearest even. Useful for feeding F16 input tensors.
func Float32ToFloat16(values []float32) []Float16 {
	out := make([]Float16, len(values))
	for i, v := range values {
		out[i] = float16.Fromfloat32(v)
	}
	return out
}
