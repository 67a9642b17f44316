package imx500

import (
	"math"

	"github.com/pkg/errors"
)

// SSDRecordElements is the number of values in the only supported output topology: 10 boxes of
// 4 coordinates, 10 classes, 10 scores and the detection count.
const SSDRecordElements = 61

// TensorLayout places one tensor in the source lines and in the decoded output.
type TensorLayout struct {
	ElementCount int
	// Offset is the index of the first element of this tensor in the decoded output.
	Offset int
	// LineCount is the number of source lines holding this tensor.
	LineCount uint16
	// FirstLine is the first source line of this tensor, relative to the start of the bodies.
	FirstLine int
}

// LayoutPlan is the placement of every output tensor, in declaration order.
type LayoutPlan struct {
	TotalElements int
	Tensors       []TensorLayout
}

// TotalLines returns the number of source lines spanned by all tensor bodies.
func (p *LayoutPlan) TotalLines() int {
	if len(p.Tensors) == 0 {
		return 0
	}
	last := p.Tensors[len(p.Tensors)-1]
	return last.FirstLine + int(last.LineCount)
}

// PlanLayout computes the tensor placement and checks that the tensors form the SSD record.
func PlanLayout(descs []TensorDescriptor, maxLineLen uint16) (*LayoutPlan, error) {
	plan, err := PlanTensors(descs, maxLineLen)
	if err != nil {
		return nil, err
	}
	if plan.TotalElements != SSDRecordElements {
		return nil, errors.Wrapf(ErrUnexpectedSize, "output tensors hold %d elements, expected %d",
			plan.TotalElements, SSDRecordElements)
	}
	return plan, nil
}

// PlanTensors computes the tensor placement for any topology. Every size product is checked
// against the uint32 range before it is computed.
func PlanTensors(descs []TensorDescriptor, maxLineLen uint16) (*LayoutPlan, error) {
	if len(descs) == 0 {
		return nil, errors.Wrap(ErrEmptyLayout, "no output tensors")
	}
	if maxLineLen == 0 {
		return nil, errors.Wrap(ErrInvalidFrame, "max line length is zero")
	}

	plan := &LayoutPlan{Tensors: make([]TensorLayout, 0, len(descs))}
	var total uint64
	firstLine := 0
	for _, desc := range descs {
		count, err := elementCount(&desc)
		if err != nil {
			return nil, err
		}
		if total > math.MaxUint32-count {
			return nil, errors.Wrapf(ErrLayoutOverflow, "total element count overflows at tensor %q", desc.Name)
		}

		// Elements never straddle lines, so an odd line length leaves its last byte unused by
		// 16-bit tensors.
		elemBytes := max(uint64(desc.BitsPerElement/8), 1)
		perLine := uint64(maxLineLen) / elemBytes
		if perLine == 0 {
			return nil, errors.Wrapf(ErrInvalidFrame, "max line length %d cannot hold a %d byte element of tensor %q",
				maxLineLen, elemBytes, desc.Name)
		}
		lines := (count + perLine - 1) / perLine
		if lines > math.MaxUint16 {
			return nil, errors.Wrapf(ErrLayoutOverflow, "tensor %q needs %d lines", desc.Name, lines)
		}

		plan.Tensors = append(plan.Tensors, TensorLayout{
			ElementCount: int(count),
			Offset:       int(total),
			LineCount:    uint16(lines),
			FirstLine:    firstLine,
		})
		total += count
		firstLine += int(lines)
	}

	if total == 0 {
		return nil, errors.Wrap(ErrEmptyLayout, "output tensors hold no elements")
	}
	plan.TotalElements = int(total)
	return plan, nil
}

func elementCount(desc *TensorDescriptor) (uint64, error) {
	// A tensor without dimensions is a scalar.
	count := uint64(1)
	for i, dim := range desc.Dims {
		if dim.Size == 0 {
			return 0, errors.Wrapf(ErrEmptyLayout, "tensor %q dimension %d has size 0", desc.Name, i)
		}
		if count > math.MaxUint32/uint64(dim.Size) {
			return 0, errors.Wrapf(ErrLayoutOverflow, "tensor %q element count overflows at dimension %d", desc.Name, i)
		}
		count *= uint64(dim.Size)
	}
	return count, nil
}
