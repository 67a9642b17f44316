// Package imx500 decodes the output tensor stream of the IMX500 on-sensor accelerator. A frame
// holds a header, an apParams schema describing the output tensors, and the quantized tensor
// bodies, all laid out in fixed width lines.
package imx500

import (
	"bytes"
	"context"
	"sync"

	"github.com/pkg/errors"
	"gorgonia.org/tensor"

	"go.viam.com/imx500/logging"
	"go.viam.com/imx500/ml"
)

// Output is a fully decoded frame. Descriptors and Plan are shared with later frames using the
// same schema and must not be modified.
type Output struct {
	Header           Header
	NetworkType      string
	InputTensorCount int
	Descriptors      []TensorDescriptor
	Plan             *LayoutPlan
	// Data holds every output tensor back to back, in declaration order.
	Data []float32
}

// TensorData returns the decoded values of the i-th output tensor.
func (o *Output) TensorData(i int) []float32 {
	layout := o.Plan.Tensors[i]
	return o.Data[layout.Offset : layout.Offset+layout.ElementCount]
}

// Tensors returns views of the decoded output keyed by tensor name. Declared dimension 0 is the
// innermost axis of each view.
func (o *Output) Tensors() ml.Tensors {
	tensors := make(ml.Tensors, len(o.Descriptors))
	for i := range o.Descriptors {
		desc := &o.Descriptors[i]
		dims := desc.Shape()
		shape := make(tensor.Shape, len(dims))
		for j, size := range dims {
			shape[len(dims)-1-j] = size
		}
		var opts []tensor.ConsOpt
		if len(shape) > 0 {
			opts = append(opts, tensor.WithShape(shape...))
		}
		tensors[desc.Name] = tensor.New(append(opts, tensor.WithBacking(o.TensorData(i)))...)
	}
	return tensors
}

// A Decoder turns raw output tensor buffers into dequantized values. It keeps the last parsed
// schema so frames from the same network skip schema parsing. It is safe for concurrent use.
type Decoder struct {
	logger logging.Logger
	stride int

	mu              sync.Mutex
	cachedSchema    []byte
	cachedNetworkID uint16
	cachedNetwork   *Network
}

// NewDecoder returns a decoder for buffers with the given line stride.
func NewDecoder(stride int, logger logging.Logger) (*Decoder, error) {
	if stride < HeaderSize {
		return nil, errors.Wrapf(ErrInvalidStride, "stride %d is smaller than the %d byte header", stride, HeaderSize)
	}
	return &Decoder{logger: logger, stride: stride}, nil
}

// Stride returns the line stride the decoder expects.
func (d *Decoder) Stride() int {
	return d.stride
}

// Decode parses and dequantizes one frame. raw is only read during the call.
func (d *Decoder) Decode(ctx context.Context, raw []byte) (*Output, error) {
	hdr, schema, err := ParseHeader(raw, d.stride)
	if err != nil {
		return nil, err
	}
	d.logger.CDebugw(ctx, "imx500 header",
		"frameCount", hdr.FrameCount,
		"maxLineLen", hdr.MaxLineLen,
		"schemaSize", hdr.SchemaSize,
		"networkID", hdr.NetworkID,
		"tensorType", hdr.TensorType.String())
	if err := checkLineGeometry(hdr, d.stride); err != nil {
		return nil, err
	}

	network, err := d.network(schema, hdr.NetworkID)
	if err != nil {
		return nil, err
	}
	out := &Output{Header: hdr, Descriptors: []TensorDescriptor{}}
	if network != nil {
		out.NetworkType = network.Type
		out.InputTensorCount = network.InputTensorCount
		out.Descriptors = network.OutputDescriptors
		d.logger.CDebugw(ctx, "imx500 network",
			"type", network.Type,
			"inputTensors", network.InputTensorCount,
			"outputTensors", len(network.OutputDescriptors))
	} else {
		d.logger.CDebugw(ctx, "imx500 network not found in apParams", "networkID", hdr.NetworkID)
	}

	plan, err := PlanLayout(out.Descriptors, hdr.MaxLineLen)
	if err != nil {
		return nil, err
	}
	out.Plan = plan

	bodyStart := SchemaLines(hdr, d.stride) * d.stride
	if bodyStart > len(raw) {
		return nil, errors.Wrapf(ErrShortBuffer, "tensor bodies start at byte %d of a %d byte buffer", bodyStart, len(raw))
	}
	out.Data, err = DecodeBodies(ctx, raw[bodyStart:], d.stride, hdr, out.Descriptors, plan)
	if err != nil {
		return nil, err
	}
	d.logger.CDebugw(ctx, "imx500 decoded output", "elements", plan.TotalElements, "lines", plan.TotalLines())
	return out, nil
}

func (d *Decoder) network(schema []byte, networkID uint16) (*Network, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cachedSchema != nil && d.cachedNetworkID == networkID && bytes.Equal(d.cachedSchema, schema) {
		return d.cachedNetwork, nil
	}

	network, err := ParseNetwork(schema, networkID)
	if err != nil {
		return nil, err
	}
	d.cachedSchema = schema
	d.cachedNetworkID = networkID
	d.cachedNetwork = network
	return network, nil
}
