package imx500

import (
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"
)

func TestQuantizeSaturates(t *testing.T) {
	u8 := &TensorDescriptor{BitsPerElement: 8, Format: Unsigned, Shift: 128, Scale: 0.5}
	test.That(t, Quantize(u8, []float32{36, -64, 1000, -1000}), test.ShouldResemble, []int32{200, 0, 255, 0})

	s16 := &TensorDescriptor{BitsPerElement: 16, Format: Signed, Scale: 1}
	test.That(t, Quantize(s16, []float32{-40000, 12.4, 40000}), test.ShouldResemble, []int32{-32768, 12, 32767})

	u16 := &TensorDescriptor{BitsPerElement: 16, Format: Unsigned, Scale: ssdScoreScale}
	test.That(t, Quantize(u16, []float32{0.5, 7}), test.ShouldResemble, []int32{5000, 65535})
}

func TestToSerializationOrder(t *testing.T) {
	flat := &TensorDescriptor{Name: "flat", Dims: []Dimension{{Size: 3}}}
	out, err := ToSerializationOrder(flat, []int32{1, 2, 3})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldResemble, []int32{1, 2, 3})

	boxes := &SSDDescriptors()[0]
	declared := make([]int32, 4*SSDCandidates)
	for i := range declared {
		declared[i] = int32(i)
	}
	out, err = ToSerializationOrder(boxes, declared)
	test.That(t, err, test.ShouldBeNil)
	// Candidates are stored one after the other, four coordinates each.
	test.That(t, out[:8], test.ShouldResemble, []int32{0, 10, 20, 30, 1, 11, 21, 31})

	_, err = ToSerializationOrder(boxes, declared[:39])
	test.That(t, err, test.ShouldNotBeNil)

	bad := &TensorDescriptor{Name: "bad", Dims: []Dimension{
		{Ordinal: 0, Size: 2, SerializationIndex: 1},
		{Ordinal: 1, Size: 2, SerializationIndex: 1},
	}}
	_, err = ToSerializationOrder(bad, make([]int32, 4))
	test.That(t, errors.Is(err, ErrInvalidSchema), test.ShouldBeTrue)
}

func TestFrameWriterErrors(t *testing.T) {
	descs := SSDDescriptors()

	fw := &FrameWriter{Stride: HeaderSize - 1, MaxLineLen: 8}
	_, err := fw.Write(1, nil, descs, nil)
	test.That(t, errors.Is(err, ErrInvalidStride), test.ShouldBeTrue)

	fw = &FrameWriter{Stride: 32, MaxLineLen: 33}
	_, err = fw.Write(1, nil, descs, nil)
	test.That(t, errors.Is(err, ErrInvalidFrame), test.ShouldBeTrue)

	fw = &FrameWriter{Stride: 32, MaxLineLen: 32}
	_, err = fw.Write(1, nil, descs, make([][]int32, 2))
	test.That(t, err, test.ShouldNotBeNil)

	_, err = fw.WriteSSD(1, make([]SSDCandidate, SSDCandidates+1), 0)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestFrameWriterHeader(t *testing.T) {
	fw := &FrameWriter{Stride: 32, MaxLineLen: 24, FrameCount: 9, TensorType: Signed}
	frame, err := fw.WriteSSD(0x0405, nil, 0)
	test.That(t, err, test.ShouldBeNil)

	hdr, schema, err := ParseHeader(frame, 32)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, hdr.FrameCount, test.ShouldEqual, uint8(9))
	test.That(t, hdr.MaxLineLen, test.ShouldEqual, uint16(24))
	test.That(t, hdr.NetworkID, test.ShouldEqual, uint16(0x0405))
	test.That(t, hdr.TensorType, test.ShouldEqual, Signed)
	test.That(t, int(hdr.SchemaSize), test.ShouldEqual, len(schema))

	plan, err := PlanLayout(SSDDescriptors(), 24)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(frame), test.ShouldEqual, (SchemaLines(hdr, 32)+plan.TotalLines())*32)
}
