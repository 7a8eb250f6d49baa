// Package onnxinfo inspects ONNX model files without a generated
// protobuf schema. It walks the handful of ModelProto fields needed to
// describe a model (producer, opsets, graph inputs and outputs) using
// protowire directly, which keeps the module free of generated code for
// a format it only ever reads.
package onnxinfo

import (
	"fmt"
	"os"

	"google.golang.org/protobuf/encoding/protowire"
)

// ONNX ModelProto field numbers (onnx.proto3).
const (
	fieldIRVersion       = 1
	fieldProducerName    = 2
	fieldProducerVersion = 3
	fieldDomain          = 4
	fieldModelVersion    = 5
	fieldGraph           = 7
	fieldOpsetImport     = 8
)

// GraphProto field numbers.
const (
	fieldGraphNode   = 1
	fieldGraphName   = 2
	fieldGraphInput  = 11
	fieldGraphOutput = 12
)

// ValueInfoProto and OperatorSetIdProto field numbers.
const (
	fieldValueInfoName = 1
	fieldOpsetDomain   = 1
	fieldOpsetVersion  = 2
)

// Opset identifies an operator set the model imports. An empty Domain
// means the default ONNX domain.
type Opset struct {
	Domain  string
	Version int64
}

func (o Opset) String() string {
	if o.Domain == "" {
		return fmt.Sprintf("ai.onnx v%d", o.Version)
	}
	return fmt.Sprintf("%s v%d", o.Domain, o.Version)
}

// ModelInfo summarizes an ONNX model header.
type ModelInfo struct {
	IRVersion       int64
	ProducerName    string
	ProducerVersion string
	Domain          string
	ModelVersion    int64
	Opsets          []Opset

	GraphName string
	NodeCount int
	Inputs    []string
	Outputs   []string
}

// InspectFile reads and inspects the ONNX model at path.
func InspectFile(path string) (*ModelInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model: %w", err)
	}
	return Inspect(data)
}

// Inspect parses the given ONNX model bytes.
func Inspect(data []byte) (*ModelInfo, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("model data cannot be empty")
	}

	info := &ModelInfo{}
	if err := walkFields(data, func(num protowire.Number, typ protowire.Type, value []byte, varint uint64) error {
		switch num {
		case fieldIRVersion:
			info.IRVersion = int64(varint)
		case fieldProducerName:
			info.ProducerName = string(value)
		case fieldProducerVersion:
			info.ProducerVersion = string(value)
		case fieldDomain:
			info.Domain = string(value)
		case fieldModelVersion:
			info.ModelVersion = int64(varint)
		case fieldGraph:
			return parseGraph(value, info)
		case fieldOpsetImport:
			opset, err := parseOpset(value)
			if err != nil {
				return err
			}
			info.Opsets = append(info.Opsets, opset)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	if info.IRVersion == 0 {
		return nil, fmt.Errorf("not an ONNX model: missing ir_version")
	}
	return info, nil
}

func parseGraph(data []byte, info *ModelInfo) error {
	return walkFields(data, func(num protowire.Number, typ protowire.Type, value []byte, _ uint64) error {
		switch num {
		case fieldGraphNode:
			info.NodeCount++
		case fieldGraphName:
			info.GraphName = string(value)
		case fieldGraphInput:
			name, err := parseValueInfoName(value)
			if err != nil {
				return err
			}
			info.Inputs = append(info.Inputs, name)
		case fieldGraphOutput:
			name, err := parseValueInfoName(value)
			if err != nil {
				return err
			}
			info.Outputs = append(info.Outputs, name)
		}
		return nil
	})
}

func parseValueInfoName(data []byte) (string, error) {
	var name string
	err := walkFields(data, func(num protowire.Number, _ protowire.Type, value []byte, _ uint64) error {
		if num == fieldValueInfoName {
			name = string(value)
		}
		return nil
	})
	return name, err
}

func parseOpset(data []byte) (Opset, error) {
	var opset Opset
	err := walkFields(data, func(num protowire.Number, _ protowire.Type, value []byte, varint uint64) error {
		switch num {
		case fieldOpsetDomain:
			opset.Domain = string(value)
		case fieldOpsetVersion:
			opset.Version = int64(varint)
		}
		return nil
	})
	return opset, err
}

// walkFields iterates the top-level fields of one message. Length-
// delimited fields are handed to fn via value, varint fields via
// varint; other wire types are skipped.
func walkFields(data []byte, fn func(num protowire.Number, typ protowire.Type, value []byte, varint uint64) error) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return fmt.Errorf("malformed protobuf tag: %w", protowire.ParseError(n))
		}
		data = data[n:]

		switch typ {
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return fmt.Errorf("malformed varint for field %d: %w", num, protowire.ParseError(n))
			}
			data = data[n:]
			if err := fn(num, typ, nil, v); err != nil {
				return err
			}
		case protowire.BytesType:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return fmt.Errorf("malformed bytes for field %d: %w", num, protowire.ParseError(n))
			}
			data = data[n:]
			if err := fn(num, typ, v, 0); err != nil {
				return err
			}
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return fmt.Errorf("malformed field %d: %w", num, protowire.ParseError(n))
			}
			data = data[n:]
		}
	}
	return nil
}
