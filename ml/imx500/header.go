package imx500

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

const (
	// HeaderSize is the number of bytes of the frame header at the start of line 0.
	HeaderSize = 12
	// DefaultStride is the line stride of the sensor output tensor stream.
	DefaultStride = 4064
)

// TensorDataType is the signedness of quantized tensor elements.
type TensorDataType uint8

const (
	// Signed elements are two's complement integers.
	Signed TensorDataType = iota
	// Unsigned elements are plain unsigned integers.
	Unsigned
)

func (t TensorDataType) String() string {
	switch t {
	case Signed:
		return "signed"
	case Unsigned:
		return "unsigned"
	default:
		return "unknown"
	}
}

// Header is the frame header found at the start of every output tensor buffer.
type Header struct {
	FrameValid bool
	FrameCount uint8
	MaxLineLen uint16
	SchemaSize uint16
	NetworkID  uint16
	TensorType TensorDataType
}

// StrideForWidth returns the line stride of a 10-bit packed stream of the given pixel width,
// rounded up to a multiple of 16 bytes.
func StrideForWidth(width int) int {
	return ((width*10)>>3 + 15) &^ 15
}

// ParseHeader reads the frame header from buf and copies out the apParams schema that follows
// it. The schema starts right after the header and continues at the start of the next line each
// time it reaches the end of a line.
func ParseHeader(buf []byte, stride int) (Header, []byte, error) {
	if stride < HeaderSize {
		return Header{}, nil, errors.Wrapf(ErrInvalidStride, "stride %d is smaller than the %d byte header", stride, HeaderSize)
	}
	if len(buf) < HeaderSize {
		return Header{}, nil, errors.Wrapf(ErrShortBuffer, "have %d bytes, need %d for the header", len(buf), HeaderSize)
	}

	hdr := Header{
		FrameValid: buf[0] != 0,
		FrameCount: buf[1],
		MaxLineLen: binary.LittleEndian.Uint16(buf[2:4]),
		SchemaSize: binary.LittleEndian.Uint16(buf[4:6]),
		NetworkID:  binary.LittleEndian.Uint16(buf[6:8]),
		TensorType: TensorDataType(buf[8]),
	}
	if !hdr.FrameValid {
		return hdr, nil, errors.Wrapf(ErrInvalidFrame, "frame %d not valid", hdr.FrameCount)
	}

	schema := make([]byte, hdr.SchemaSize)
	lineStart, cursor := 0, HeaderSize
	for idx := range schema {
		if cursor >= stride {
			cursor = 0
			lineStart += stride
		}
		src := lineStart + cursor
		if src >= len(buf) {
			return hdr, nil, errors.Wrapf(ErrShortBuffer, "apParams byte %d of %d at offset %d", idx, len(schema), src)
		}
		schema[idx] = buf[src]
		cursor++
	}
	return hdr, schema, nil
}

// SchemaLines returns the number of lines taken by the header and the schema. Tensor bodies
// start on the line that follows.
func SchemaLines(hdr Header, stride int) int {
	if stride <= 0 {
		return 1
	}
	used := HeaderSize + int(hdr.SchemaSize)
	return (used + stride - 1) / stride
}

// checkLineGeometry verifies that maxLineLen describes a usable line.
func checkLineGeometry(hdr Header, stride int) error {
	if hdr.MaxLineLen == 0 {
		return errors.Wrap(ErrInvalidFrame, "max line length is zero")
	}
	if int(hdr.MaxLineLen) > stride {
		return errors.Wrapf(ErrInvalidFrame, "max line length %d exceeds stride %d", hdr.MaxLineLen, stride)
	}
	return nil
}
