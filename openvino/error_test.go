package openvino

import (
	"strings"
	"testing"
)

func TestRuntimeErrorFormat(t *testing.T) {
	err := &RuntimeError{Status: StatusGeneralError, Message: "something broke"}
	got := err.Error()
	if !strings.Contains(got, "GeneralError") {
		t.Errorf("Expected status name in error, got %q", got)
	}
	if !strings.Contains(got, "something broke") {
		t.Errorf("Expected message in error, got %q", got)
	}
}

func TestRuntimeErrorWithoutMessage(t *testing.T) {
	err := &RuntimeError{Status: StatusInferCancelled}
	got := err.Error()
	if got != "openvino error (InferCancelled)" {
		t.Errorf("Unexpected error string: %q", got)
	}
}

func TestStatusName(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusOK, "OK"},
		{StatusGeneralError, "GeneralError"},
		{StatusNotFound, "NotFound"},
		{StatusRequestBusy, "RequestBusy"},
		{StatusInferCancelled, "InferCancelled"},
		{StatusUnknownException, "UnknownException"},
		{Status(-99), "Status(-99)"},
	}
	for _, tt := range tests {
		if got := statusName(tt.status); got != tt.want {
			t.Errorf("statusName(%d) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestElementTypeName(t *testing.T) {
	tests := []struct {
		elemType ElementType
		want     string
	}{
		{ElementF32, "f32"},
		{ElementF16, "f16"},
		{ElementBF16, "bf16"},
		{ElementU8, "u8"},
		{ElementI64, "i64"},
		{ElementBoolean, "boolean"},
		{ElementType(42), "ElementType(42)"},
	}
	for _, tt := range tests {
		if got := ElementTypeName(tt.elemType); got != tt.want {
			t.Errorf("ElementTypeName(%d) = %q, want %q", tt.elemType, got, tt.want)
		}
	}
}

func TestElementByteSize(t *testing.T) {
	tests := []struct {
		elemType ElementType
		want     int
	}{
		{ElementU8, 1},
		{ElementF16, 2},
		{ElementF32, 4},
		{ElementF64, 8},
		{ElementI4, 0},
		{ElementU1, 0},
		{ElementUndefined, 0},
	}
	for _, tt := range tests {
		if got := elementByteSize(tt.elemType); got != tt.want {
			t.Errorf("elementByteSize(%s) = %d, want %d", ElementTypeName(tt.elemType), got, tt.want)
		}
	}
}
