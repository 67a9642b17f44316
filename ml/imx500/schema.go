package imx500

import (
	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/pkg/errors"

	"go.viam.com/imx500/ml/imx500/apparams"
)

// Dimension describes one axis of an output tensor.
type Dimension struct {
	// Ordinal is the logical axis id declared by the schema.
	Ordinal uint8
	Size    uint16
	// SerializationIndex is the position of this axis in the raw byte order. Position 0 varies
	// fastest.
	SerializationIndex uint8
	Padding            uint8
}

// TensorDescriptor describes the shape and quantization of one output tensor.
type TensorDescriptor struct {
	ID             uint8
	Name           string
	Dims           []Dimension
	BitsPerElement uint8
	Format         TensorDataType
	Shift          uint16
	Scale          float32
}

// NeedsReorder reports whether the raw element order differs from the declared axis order.
func (td *TensorDescriptor) NeedsReorder() bool {
	for _, dim := range td.Dims {
		if dim.SerializationIndex != dim.Ordinal {
			return true
		}
	}
	return false
}

// Shape returns the declared dimension sizes.
func (td *TensorDescriptor) Shape() []int {
	shape := make([]int, len(td.Dims))
	for i, dim := range td.Dims {
		shape[i] = int(dim.Size)
	}
	return shape
}

// Network is the part of the apParams schema describing a single network.
type Network struct {
	ID                uint16
	Type              string
	InputTensorCount  int
	OutputDescriptors []TensorDescriptor
}

// ParseSchema returns the output tensor descriptors of the first network in the schema whose id
// is networkID, in declaration order. When no network matches the result is empty.
func ParseSchema(schema []byte, networkID uint16) ([]TensorDescriptor, error) {
	network, err := ParseNetwork(schema, networkID)
	if err != nil {
		return nil, err
	}
	if network == nil {
		return []TensorDescriptor{}, nil
	}
	return network.OutputDescriptors, nil
}

// ParseNetwork returns the first network in the schema whose id is networkID, or nil if there is
// none.
func ParseNetwork(schema []byte, networkID uint16) (network *Network, err error) {
	root, err := schemaRoot(schema)
	if err != nil {
		return nil, err
	}
	defer func() {
		if thePanic := recover(); thePanic != nil {
			network = nil
			err = errors.Wrapf(ErrInvalidSchema, "malformed apParams table: %v", thePanic)
		}
	}()

	numNetworks := root.NetworksLength()
	if err := checkVectorLen(numNetworks, len(schema), "networks"); err != nil {
		return nil, err
	}
	var fbNetwork apparams.FBNetwork
	for i := 0; i < numNetworks; i++ {
		if !root.Networks(&fbNetwork, i) {
			break
		}
		if fbNetwork.Id() != networkID {
			continue
		}
		return parseNetwork(&fbNetwork, len(schema))
	}
	return nil, nil
}

// NetworkIDs lists the id and type of every network in the schema.
func NetworkIDs(schema []byte) (ids map[uint16]string, err error) {
	root, err := schemaRoot(schema)
	if err != nil {
		return nil, err
	}
	defer func() {
		if thePanic := recover(); thePanic != nil {
			ids = nil
			err = errors.Wrapf(ErrInvalidSchema, "malformed apParams table: %v", thePanic)
		}
	}()

	numNetworks := root.NetworksLength()
	if err := checkVectorLen(numNetworks, len(schema), "networks"); err != nil {
		return nil, err
	}
	ids = make(map[uint16]string, numNetworks)
	var fbNetwork apparams.FBNetwork
	for i := 0; i < numNetworks; i++ {
		if !root.Networks(&fbNetwork, i) {
			break
		}
		if _, ok := ids[fbNetwork.Id()]; !ok {
			ids[fbNetwork.Id()] = string(fbNetwork.Type())
		}
	}
	return ids, nil
}

func schemaRoot(schema []byte) (*apparams.FBApParams, error) {
	if len(schema) < flatbuffers.SizeUOffsetT {
		return nil, errors.Wrapf(ErrInvalidSchema, "apParams is %d bytes", len(schema))
	}
	rootOffset := flatbuffers.GetUOffsetT(schema)
	if int(rootOffset) > len(schema)-flatbuffers.SizeSOffsetT {
		return nil, errors.Wrapf(ErrInvalidSchema, "root offset %d outside of %d byte apParams", rootOffset, len(schema))
	}
	return apparams.GetRootAsFBApParams(schema, 0), nil
}

// checkVectorLen rejects vector lengths that cannot fit in the buffer, since every element takes
// at least one offset.
func checkVectorLen(length, bufLen int, what string) error {
	if length < 0 || length*flatbuffers.SizeUOffsetT > bufLen {
		return errors.Wrapf(ErrInvalidSchema, "%s vector length %d does not fit in %d bytes", what, length, bufLen)
	}
	return nil
}

func parseNetwork(fbNetwork *apparams.FBNetwork, bufLen int) (*Network, error) {
	network := &Network{
		ID:               fbNetwork.Id(),
		Type:             string(fbNetwork.Type()),
		InputTensorCount: fbNetwork.InputTensorsLength(),
	}

	numOutputs := fbNetwork.OutputTensorsLength()
	if err := checkVectorLen(numOutputs, bufLen, "output tensors"); err != nil {
		return nil, err
	}
	network.OutputDescriptors = make([]TensorDescriptor, 0, numOutputs)

	var fbTensor apparams.FBOutputTensor
	for i := 0; i < numOutputs; i++ {
		if !fbNetwork.OutputTensors(&fbTensor, i) {
			break
		}
		desc, err := parseOutputTensor(&fbTensor, bufLen)
		if err != nil {
			return nil, errors.Wrapf(err, "output tensor %d", i)
		}
		network.OutputDescriptors = append(network.OutputDescriptors, desc)
	}
	return network, nil
}

func parseOutputTensor(fbTensor *apparams.FBOutputTensor, bufLen int) (TensorDescriptor, error) {
	desc := TensorDescriptor{
		ID:             fbTensor.Id(),
		Name:           string(fbTensor.Name()),
		BitsPerElement: fbTensor.BitsPerElement(),
		Format:         TensorDataType(fbTensor.Format()),
		Shift:          fbTensor.Shift(),
		Scale:          fbTensor.Scale(),
	}

	numDims := fbTensor.DimensionsLength()
	if err := checkVectorLen(numDims, bufLen, "dimensions"); err != nil {
		return desc, err
	}
	if int(fbTensor.NumOfDimensions()) != numDims {
		return desc, errors.Wrapf(ErrInvalidSchema, "tensor %q declares %d dimensions but lists %d",
			desc.Name, fbTensor.NumOfDimensions(), numDims)
	}

	desc.Dims = make([]Dimension, 0, numDims)
	seen := make([]bool, numDims)
	var fbDim apparams.FBDimension
	for k := 0; k < numDims; k++ {
		if !fbTensor.Dimensions(&fbDim, k) {
			break
		}
		dim := Dimension{
			Ordinal:            fbDim.Id(),
			Size:               fbDim.Size(),
			SerializationIndex: fbDim.SerializationIndex(),
			Padding:            fbDim.Padding(),
		}
		if dim.Padding != 0 {
			return desc, errors.Wrapf(ErrInvalidSchema, "tensor %q has non-zero padding %d for dimension %d",
				desc.Name, dim.Padding, k)
		}
		if int(dim.SerializationIndex) >= numDims || seen[dim.SerializationIndex] {
			return desc, errors.Wrapf(ErrInvalidSchema, "tensor %q serialization indices are not a permutation: dimension %d has index %d",
				desc.Name, k, dim.SerializationIndex)
		}
		seen[dim.SerializationIndex] = true
		desc.Dims = append(desc.Dims, dim)
	}
	return desc, nil
}
