package imx500

import (
	"encoding/binary"
	"math"

	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/pkg/errors"

	"go.viam.com/imx500/ml/imx500/apparams"
)

// FrameWriter builds output tensor buffers in the sensor layout. It is the inverse of Decoder and
// is used to synthesize frames.
type FrameWriter struct {
	Stride     int
	MaxLineLen uint16
	FrameCount uint8
	TensorType TensorDataType
	// Invalid clears the frame valid flag.
	Invalid bool
}

// BuildSchema serializes networks into an apParams blob.
func BuildSchema(networks []Network) []byte {
	builder := flatbuffers.NewBuilder(1024)
	netOffsets := make([]flatbuffers.UOffsetT, 0, len(networks))
	for i := range networks {
		netOffsets = append(netOffsets, buildNetwork(builder, &networks[i]))
	}
	apparams.FBApParamsStartNetworksVector(builder, len(netOffsets))
	for i := len(netOffsets) - 1; i >= 0; i-- {
		builder.PrependUOffsetT(netOffsets[i])
	}
	netVector := builder.EndVector(len(netOffsets))

	apparams.FBApParamsStart(builder)
	apparams.FBApParamsAddNetworks(builder, netVector)
	builder.Finish(apparams.FBApParamsEnd(builder))
	return builder.FinishedBytes()
}

func buildNetwork(builder *flatbuffers.Builder, network *Network) flatbuffers.UOffsetT {
	inputOffsets := make([]flatbuffers.UOffsetT, 0, network.InputTensorCount)
	for i := 0; i < network.InputTensorCount; i++ {
		name := builder.CreateString("input")
		apparams.FBInputTensorStart(builder)
		apparams.FBInputTensorAddId(builder, byte(i))
		apparams.FBInputTensorAddName(builder, name)
		inputOffsets = append(inputOffsets, apparams.FBInputTensorEnd(builder))
	}
	apparams.FBNetworkStartInputTensorsVector(builder, len(inputOffsets))
	for i := len(inputOffsets) - 1; i >= 0; i-- {
		builder.PrependUOffsetT(inputOffsets[i])
	}
	inputVector := builder.EndVector(len(inputOffsets))

	outputOffsets := make([]flatbuffers.UOffsetT, 0, len(network.OutputDescriptors))
	for i := range network.OutputDescriptors {
		outputOffsets = append(outputOffsets, buildOutputTensor(builder, &network.OutputDescriptors[i]))
	}
	apparams.FBNetworkStartOutputTensorsVector(builder, len(outputOffsets))
	for i := len(outputOffsets) - 1; i >= 0; i-- {
		builder.PrependUOffsetT(outputOffsets[i])
	}
	outputVector := builder.EndVector(len(outputOffsets))

	networkType := builder.CreateString(network.Type)
	apparams.FBNetworkStart(builder)
	apparams.FBNetworkAddId(builder, network.ID)
	apparams.FBNetworkAddType(builder, networkType)
	apparams.FBNetworkAddInputTensors(builder, inputVector)
	apparams.FBNetworkAddOutputTensors(builder, outputVector)
	return apparams.FBNetworkEnd(builder)
}

func buildOutputTensor(builder *flatbuffers.Builder, desc *TensorDescriptor) flatbuffers.UOffsetT {
	dimOffsets := make([]flatbuffers.UOffsetT, 0, len(desc.Dims))
	for _, dim := range desc.Dims {
		apparams.FBDimensionStart(builder)
		apparams.FBDimensionAddId(builder, dim.Ordinal)
		apparams.FBDimensionAddSize(builder, dim.Size)
		apparams.FBDimensionAddSerializationIndex(builder, dim.SerializationIndex)
		apparams.FBDimensionAddPadding(builder, dim.Padding)
		dimOffsets = append(dimOffsets, apparams.FBDimensionEnd(builder))
	}
	apparams.FBOutputTensorStartDimensionsVector(builder, len(dimOffsets))
	for i := len(dimOffsets) - 1; i >= 0; i-- {
		builder.PrependUOffsetT(dimOffsets[i])
	}
	dimVector := builder.EndVector(len(dimOffsets))

	name := builder.CreateString(desc.Name)
	apparams.FBOutputTensorStart(builder)
	apparams.FBOutputTensorAddId(builder, desc.ID)
	apparams.FBOutputTensorAddName(builder, name)
	apparams.FBOutputTensorAddNumOfDimensions(builder, byte(len(desc.Dims)))
	apparams.FBOutputTensorAddDimensions(builder, dimVector)
	apparams.FBOutputTensorAddBitsPerElement(builder, desc.BitsPerElement)
	apparams.FBOutputTensorAddShift(builder, desc.Shift)
	apparams.FBOutputTensorAddScale(builder, desc.Scale)
	apparams.FBOutputTensorAddFormat(builder, byte(desc.Format))
	return apparams.FBOutputTensorEnd(builder)
}

// Quantize maps values to raw elements of the tensor, saturating at the element range.
func Quantize(desc *TensorDescriptor, values []float32) []int32 {
	lo, hi := elementRange(desc)
	raw := make([]int32, len(values))
	for i, v := range values {
		q := float64(desc.Shift)
		if desc.Scale != 0 {
			q += math.Round(float64(v) / float64(desc.Scale))
		}
		raw[i] = int32(math.Max(lo, math.Min(hi, q)))
	}
	return raw
}

func elementRange(desc *TensorDescriptor) (float64, float64) {
	switch {
	case desc.BitsPerElement == 16 && desc.Format == Signed:
		return math.MinInt16, math.MaxInt16
	case desc.BitsPerElement == 16:
		return 0, math.MaxUint16
	case desc.Format == Signed:
		return math.MinInt8, math.MaxInt8
	default:
		return 0, math.MaxUint8
	}
}

// ToSerializationOrder rearranges raw elements given in declared order into the order they are
// stored in a frame.
func ToSerializationOrder(desc *TensorDescriptor, declared []int32) ([]int32, error) {
	serialized := make([]int32, len(declared))
	if !desc.NeedsReorder() {
		copy(serialized, declared)
		return serialized, nil
	}
	if len(desc.Dims) > MaxReorderRank {
		return nil, errors.Wrapf(ErrUnsupportedRank, "%d dimensions", len(desc.Dims))
	}
	if err := checkPermutation(desc.Dims); err != nil {
		return nil, err
	}
	count, err := elementCount(desc)
	if err != nil {
		return nil, err
	}
	if uint64(len(declared)) != count {
		return nil, errors.Errorf("have %d elements, tensor %q holds %d", len(declared), desc.Name, count)
	}
	forEachSerialized(desc.Dims, func(srcIdx, dstIdx int) {
		serialized[srcIdx] = declared[dstIdx]
	})
	return serialized, nil
}

// Write builds a frame for the given schema. raw holds the quantized elements of each tensor in
// serialization order.
func (fw *FrameWriter) Write(networkID uint16, schema []byte, descs []TensorDescriptor, raw [][]int32) ([]byte, error) {
	if fw.Stride < HeaderSize {
		return nil, errors.Wrapf(ErrInvalidStride, "stride %d is smaller than the %d byte header", fw.Stride, HeaderSize)
	}
	hdr := Header{
		FrameValid: !fw.Invalid,
		FrameCount: fw.FrameCount,
		MaxLineLen: fw.MaxLineLen,
		NetworkID:  networkID,
		TensorType: fw.TensorType,
	}
	if err := checkLineGeometry(hdr, fw.Stride); err != nil {
		return nil, err
	}
	if len(schema) > math.MaxUint16 {
		return nil, errors.Errorf("apParams of %d bytes does not fit the header", len(schema))
	}
	hdr.SchemaSize = uint16(len(schema))
	if len(raw) != len(descs) {
		return nil, errors.Errorf("have data for %d tensors, schema describes %d", len(raw), len(descs))
	}

	plan, err := PlanTensors(descs, fw.MaxLineLen)
	if err != nil {
		return nil, err
	}
	bodyStart := SchemaLines(hdr, fw.Stride) * fw.Stride
	frame := make([]byte, bodyStart+plan.TotalLines()*fw.Stride)

	if hdr.FrameValid {
		frame[0] = 1
	}
	frame[1] = hdr.FrameCount
	binary.LittleEndian.PutUint16(frame[2:4], hdr.MaxLineLen)
	binary.LittleEndian.PutUint16(frame[4:6], hdr.SchemaSize)
	binary.LittleEndian.PutUint16(frame[6:8], hdr.NetworkID)
	frame[8] = byte(hdr.TensorType)
	// Lines are contiguous, so the wrapped schema lands right after the header.
	copy(frame[HeaderSize:], schema)

	body := frame[bodyStart:]
	for i := range descs {
		if err := fw.writeTensor(body, &descs[i], plan.Tensors[i], raw[i]); err != nil {
			return nil, errors.Wrapf(err, "tensor %q", descs[i].Name)
		}
	}
	return frame, nil
}

func (fw *FrameWriter) writeTensor(body []byte, desc *TensorDescriptor, layout TensorLayout, raw []int32) error {
	if len(raw) != layout.ElementCount {
		return errors.Errorf("have %d elements, expected %d", len(raw), layout.ElementCount)
	}
	var elemBytes int
	switch desc.BitsPerElement {
	case 8:
		elemBytes = 1
	case 16:
		elemBytes = 2
	default:
		return errors.Wrapf(ErrUnsupportedElementWidth, "%d bits per element", desc.BitsPerElement)
	}
	perLine := int(fw.MaxLineLen) / elemBytes
	if perLine*int(layout.LineCount) < len(raw) {
		return errors.Wrapf(ErrInvalidFrame, "%d lines of %d bytes cannot hold %d elements",
			layout.LineCount, fw.MaxLineLen, len(raw))
	}

	for n, value := range raw {
		pos := (layout.FirstLine+n/perLine)*fw.Stride + (n%perLine)*elemBytes
		if elemBytes == 1 {
			body[pos] = byte(value)
		} else {
			binary.LittleEndian.PutUint16(body[pos:pos+2], uint16(value))
		}
	}
	return nil
}
