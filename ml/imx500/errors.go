package imx500

import "github.com/pkg/errors"

var (
	// ErrInvalidFrame is returned when the header marks the frame invalid or carries unusable
	// line geometry.
	ErrInvalidFrame = errors.New("invalid imx500 frame")
	// ErrInvalidSchema is returned for apParams that are structurally malformed or violate the
	// dimension invariants.
	ErrInvalidSchema = errors.New("invalid imx500 apParams schema")
	// ErrLayoutOverflow is returned when a tensor size computation would overflow.
	ErrLayoutOverflow = errors.New("imx500 tensor layout overflows")
	// ErrEmptyLayout is returned when there are no output tensors or they hold no elements.
	ErrEmptyLayout = errors.New("imx500 tensor layout is empty")
	// ErrUnexpectedSize is returned when the output tensors do not add up to the SSD record.
	ErrUnexpectedSize = errors.New("unexpected imx500 output tensor size")
	// ErrUnsupportedElementWidth is returned for elements that are neither 8 nor 16 bits wide.
	ErrUnsupportedElementWidth = errors.New("unsupported imx500 tensor element width")
	// ErrUnsupportedRank is returned when a tensor that needs reordering has more than 3 dimensions.
	ErrUnsupportedRank = errors.New("unsupported imx500 tensor rank for reordering")
	// ErrShortBuffer is returned when the raw buffer ends before the data it describes.
	ErrShortBuffer = errors.New("imx500 buffer too short")
	// ErrInvalidStride is returned when the line stride cannot hold the frame header.
	ErrInvalidStride = errors.New("invalid imx500 line stride")
)
