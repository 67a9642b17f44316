package imx500

import (
	"context"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"go.viam.com/imx500/logging"
)

const (
	testStride     = 64
	testMaxLineLen = 16
	testNetworkID  = 0x0302
)

func testCandidates() []SSDCandidate {
	return []SSDCandidate{
		{YMin: 0.1, XMin: 0.2, YMax: 0.5, XMax: 0.6, Class: 17, Score: 0.9},
		{YMin: 0, XMin: 0, YMax: 1, XMax: 1, Class: 0, Score: 0.25},
		{YMin: 0.3, XMin: 0.35, YMax: 0.4, XMax: 0.45, Class: 255, Score: 0.5},
	}
}

func testSSDFrame(t *testing.T) []byte {
	t.Helper()
	fw := &FrameWriter{Stride: testStride, MaxLineLen: testMaxLineLen, FrameCount: 3}
	frame, err := fw.WriteSSD(testNetworkID, testCandidates(), 3)
	test.That(t, err, test.ShouldBeNil)
	return frame
}

func TestDecodeSSDFrame(t *testing.T) {
	logger := logging.NewTestLogger(t)
	decoder, err := NewDecoder(testStride, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, decoder.Stride(), test.ShouldEqual, testStride)

	frame := testSSDFrame(t)
	out, err := decoder.Decode(context.Background(), frame)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, out.Header.FrameValid, test.ShouldBeTrue)
	test.That(t, out.Header.FrameCount, test.ShouldEqual, uint8(3))
	test.That(t, out.Header.NetworkID, test.ShouldEqual, uint16(testNetworkID))
	test.That(t, out.NetworkType, test.ShouldEqual, SSDNetworkType)
	test.That(t, out.InputTensorCount, test.ShouldEqual, 1)
	test.That(t, out.Descriptors, test.ShouldResemble, SSDDescriptors())
	test.That(t, out.Data, test.ShouldHaveLength, SSDRecordElements)

	const tol = 1e-4
	for i, c := range testCandidates() {
		test.That(t, out.Data[i], test.ShouldAlmostEqual, c.YMin, tol)
		test.That(t, out.Data[SSDCandidates+i], test.ShouldAlmostEqual, c.XMin, tol)
		test.That(t, out.Data[2*SSDCandidates+i], test.ShouldAlmostEqual, c.YMax, tol)
		test.That(t, out.Data[3*SSDCandidates+i], test.ShouldAlmostEqual, c.XMax, tol)
		test.That(t, out.Data[4*SSDCandidates+i], test.ShouldEqual, float32(c.Class))
		test.That(t, out.Data[5*SSDCandidates+i], test.ShouldAlmostEqual, c.Score, tol)
	}
	// Unused slots are zero.
	test.That(t, out.Data[9], test.ShouldEqual, float32(0))
	test.That(t, out.Data[5*SSDCandidates+9], test.ShouldEqual, float32(0))
	test.That(t, out.Data[60], test.ShouldEqual, float32(3))

	test.That(t, out.TensorData(3), test.ShouldResemble, []float32{3})
	test.That(t, out.TensorData(1), test.ShouldHaveLength, SSDCandidates)
}

func TestDecodeTensorViews(t *testing.T) {
	decoder, err := NewDecoder(testStride, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	out, err := decoder.Decode(context.Background(), testSSDFrame(t))
	test.That(t, err, test.ShouldBeNil)

	tensors := out.Tensors()
	test.That(t, tensors.Names(), test.ShouldResemble, []string{"boxes", "classes", "num_detections", "scores"})

	boxes, err := tensors.Lookup("boxes")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, []int(boxes.Shape()), test.ShouldResemble, []int{4, SSDCandidates})
	// Row 1 holds the x_min plane.
	xMin, err := boxes.At(1, 0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, xMin, test.ShouldAlmostEqual, float32(0.2), 1e-4)

	classes, err := tensors.Lookup("classes")
	test.That(t, err, test.ShouldBeNil)
	class, err := classes.At(2)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, class, test.ShouldEqual, float32(255))
	_, err = tensors.Lookup("missing")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "num_detections")
}

func TestDecodeScalarTensor(t *testing.T) {
	descs := SSDDescriptors()
	descs[3].Dims = nil
	schema := BuildSchema([]Network{{ID: testNetworkID, Type: SSDNetworkType, OutputDescriptors: descs}})
	raw := [][]int32{make([]int32, 4*SSDCandidates), make([]int32, SSDCandidates), make([]int32, SSDCandidates), {2}}
	fw := &FrameWriter{Stride: testStride, MaxLineLen: testMaxLineLen}
	frame, err := fw.Write(testNetworkID, schema, descs, raw)
	test.That(t, err, test.ShouldBeNil)

	decoder, err := NewDecoder(testStride, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	out, err := decoder.Decode(context.Background(), frame)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out.Data, test.ShouldHaveLength, SSDRecordElements)
	test.That(t, out.Descriptors[3].Dims, test.ShouldBeEmpty)
	test.That(t, out.Data[60], test.ShouldEqual, float32(2))

	num, err := out.Tensors().Lookup("num_detections")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, num.IsScalar(), test.ShouldBeTrue)
	test.That(t, num.Data(), test.ShouldEqual, float32(2))
}

func TestDecodeInvalidFrame(t *testing.T) {
	decoder, err := NewDecoder(testStride, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)

	fw := &FrameWriter{Stride: testStride, MaxLineLen: testMaxLineLen, Invalid: true}
	frame, err := fw.WriteSSD(testNetworkID, testCandidates(), 3)
	test.That(t, err, test.ShouldBeNil)

	out, err := decoder.Decode(context.Background(), frame)
	test.That(t, errors.Is(err, ErrInvalidFrame), test.ShouldBeTrue)
	test.That(t, out, test.ShouldBeNil)

	_, err = decoder.Decode(context.Background(), frame[:HeaderSize-1])
	test.That(t, errors.Is(err, ErrShortBuffer), test.ShouldBeTrue)
	_, err = decoder.Decode(context.Background(), nil)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestDecodeUnknownNetwork(t *testing.T) {
	decoder, err := NewDecoder(testStride, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)

	frame := testSSDFrame(t)
	// Point the header at a network the schema does not describe.
	frame[6] = 0x99
	_, err = decoder.Decode(context.Background(), frame)
	test.That(t, errors.Is(err, ErrEmptyLayout), test.ShouldBeTrue)
}

func TestDecodeTopologyGate(t *testing.T) {
	decoder, err := NewDecoder(testStride, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)

	descs := SSDDescriptors()
	descs[3].Dims[0].Size = 2
	schema := BuildSchema([]Network{{ID: testNetworkID, Type: SSDNetworkType, OutputDescriptors: descs}})
	raw := make([][]int32, len(descs))
	for i := range descs {
		count, err := elementCount(&descs[i])
		test.That(t, err, test.ShouldBeNil)
		raw[i] = make([]int32, count)
	}
	fw := &FrameWriter{Stride: testStride, MaxLineLen: testMaxLineLen}
	frame, err := fw.Write(testNetworkID, schema, descs, raw)
	test.That(t, err, test.ShouldBeNil)

	out, err := decoder.Decode(context.Background(), frame)
	test.That(t, errors.Is(err, ErrUnexpectedSize), test.ShouldBeTrue)
	test.That(t, out, test.ShouldBeNil)
}

func TestDecodeTruncatedBody(t *testing.T) {
	decoder, err := NewDecoder(testStride, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)

	frame := testSSDFrame(t)
	_, err = decoder.Decode(context.Background(), frame[:len(frame)-testStride])
	test.That(t, errors.Is(err, ErrShortBuffer), test.ShouldBeTrue)
}

func TestDecodeNoPanicOnNoise(t *testing.T) {
	decoder, err := NewDecoder(testStride, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)

	frame := testSSDFrame(t)
	for i := HeaderSize; i < len(frame); i += 5 {
		corrupt := make([]byte, len(frame))
		copy(corrupt, frame)
		corrupt[i] ^= 0xA5
		test.That(t, func() {
			_, _ = decoder.Decode(context.Background(), corrupt)
		}, test.ShouldNotPanic)
	}
}

func TestDecoderSchemaCache(t *testing.T) {
	decoder, err := NewDecoder(testStride, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)

	first, err := decoder.Decode(context.Background(), testSSDFrame(t))
	test.That(t, err, test.ShouldBeNil)
	second, err := decoder.Decode(context.Background(), testSSDFrame(t))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, &second.Descriptors[0], test.ShouldEqual, &first.Descriptors[0])

	// A different schema is parsed again.
	descs := SSDDescriptors()
	descs[2].Scale = 1
	schema := BuildSchema([]Network{{ID: testNetworkID, Type: SSDNetworkType, OutputDescriptors: descs}})
	raw := make([][]int32, len(descs))
	for i := range descs {
		count, err := elementCount(&descs[i])
		test.That(t, err, test.ShouldBeNil)
		raw[i] = make([]int32, count)
	}
	raw[2][0] = 5
	fw := &FrameWriter{Stride: testStride, MaxLineLen: testMaxLineLen}
	frame, err := fw.Write(testNetworkID, schema, descs, raw)
	test.That(t, err, test.ShouldBeNil)

	third, err := decoder.Decode(context.Background(), frame)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, third.Descriptors[2].Scale, test.ShouldEqual, float32(1))
	test.That(t, third.TensorData(2)[0], test.ShouldEqual, float32(5))
}

func TestDecodeConcurrent(t *testing.T) {
	decoder, err := NewDecoder(testStride, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	frame := testSSDFrame(t)

	var wg sync.WaitGroup
	results := make([]*Output, 8)
	errs := make([]error, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = decoder.Decode(context.Background(), frame)
		}(i)
	}
	wg.Wait()
	for i := range results {
		test.That(t, errs[i], test.ShouldBeNil)
		test.That(t, results[i].Data, test.ShouldResemble, results[0].Data)
	}
}

func TestDecodeDebugMode(t *testing.T) {
	logger, logs := logging.NewObservedTestLogger(t)
	logger.SetLevel(logging.INFO)
	decoder, err := NewDecoder(testStride, logger)
	test.That(t, err, test.ShouldBeNil)
	frame := testSSDFrame(t)

	_, err = decoder.Decode(context.Background(), frame)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, logs.FilterMessage("imx500 header").Len(), test.ShouldEqual, 0)

	_, err = decoder.Decode(logging.EnableDebugMode(context.Background(), "frame"), frame)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, logs.FilterMessage("imx500 header").Len(), test.ShouldEqual, 1)
	entry := logs.FilterMessage("imx500 header").All()[0]
	test.That(t, entry.ContextMap()["networkID"], test.ShouldEqual, uint16(testNetworkID))
	test.That(t, logs.FilterMessage("imx500 decoded output").Len(), test.ShouldEqual, 1)
}

func TestNewDecoderStride(t *testing.T) {
	_, err := NewDecoder(HeaderSize-1, logging.NewTestLogger(t))
	test.That(t, errors.Is(err, ErrInvalidStride), test.ShouldBeTrue)
}
