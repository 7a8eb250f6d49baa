package openvino

import (
	"fmt"
)

// RuntimeError represents an error returned from the OpenVINO C API.
type RuntimeError struct {
	Status  Status
	Message string
}

func (e *RuntimeError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("openvino error (%s)", statusName(e.Status))
	}
	return fmt.Sprintf("openvino error (%s): %s", statusName(e.Status), e.Message)
}

// statusName returns a human-readable name for a status code.
func statusName(status Status) string {
	switch status {
	case StatusOK:
		return "OK"
	case StatusGeneralError:
		return "GeneralError"
	case StatusNotImplemented:
		return "NotImplemented"
	case StatusNetworkNotLoaded:
		return "NetworkNotLoaded"
	case StatusParameterMismatch:
		return "ParameterMismatch"
	case StatusNotFound:
		return "NotFound"
	case StatusOutOfBounds:
		return "OutOfBounds"
	case StatusUnexpected:
		return "Unexpected"
	case StatusRequestBusy:
		return "RequestBusy"
	case StatusResultNotReady:
		return "ResultNotReady"
	case StatusNotAllocated:
		return "NotAllocated"
	case StatusInferNotStarted:
		return "InferNotStarted"
	case StatusNetworkNotRead:
		return "NetworkNotRead"
	case StatusInferCancelled:
		return "InferCancelled"
	case StatusInvalidCParam:
		return "InvalidCParam"
	case StatusUnknownCError:
		return "UnknownCError"
	case StatusNotImplementCMethod:
		return "NotImplementCMethod"
	case StatusUnknownException:
		return "UnknownException"
	default:
		return fmt.Sprintf("Status(%d)", status)
	}
}
