package imx500

import (
	"context"
	"sort"

	"github.com/pkg/errors"

	"go.viam.com/imx500/utils"
)

// MaxReorderRank is the largest number of dimensions a reordered tensor may have.
const MaxReorderRank = 3

// AssembleUint16 builds an unsigned 16-bit element from its two bytes, low byte first.
func AssembleUint16(lo, hi byte) uint16 {
	return uint16(lo) | uint16(hi)<<8
}

// AssembleInt16 builds a two's complement 16-bit element from its two bytes, low byte first.
func AssembleInt16(lo, hi byte) int16 {
	return int16(AssembleUint16(lo, hi))
}

// tensorTask holds everything needed to decode one tensor. Each task writes only to dst.
type tensorTask struct {
	desc       *TensorDescriptor
	layout     TensorLayout
	src        []byte
	dst        []float32
	stride     int
	maxLineLen int
}

// DecodeBodies dequantizes every tensor body into one output slice laid out as plan describes.
// body starts at the first tensor line. Tensors are decoded concurrently, largest first; the call
// returns once all of them are done.
func DecodeBodies(
	ctx context.Context,
	body []byte,
	stride int,
	hdr Header,
	descs []TensorDescriptor,
	plan *LayoutPlan,
) ([]float32, error) {
	if plan == nil || len(plan.Tensors) != len(descs) {
		return nil, errors.Errorf("layout plan does not match the %d output tensors", len(descs))
	}
	if err := checkLineGeometry(hdr, stride); err != nil {
		return nil, err
	}

	out := make([]float32, plan.TotalElements)
	tasks := make([]*tensorTask, 0, len(descs))
	for i := range descs {
		layout := plan.Tensors[i]
		if layout.Offset+layout.ElementCount > len(out) {
			return nil, errors.Wrapf(ErrLayoutOverflow, "tensor %q ends past the %d element output",
				descs[i].Name, len(out))
		}
		start := layout.FirstLine * stride
		if start > len(body) {
			return nil, errors.Wrapf(ErrShortBuffer, "tensor %q starts at byte %d of a %d byte body",
				descs[i].Name, start, len(body))
		}
		tasks = append(tasks, &tensorTask{
			desc:       &descs[i],
			layout:     layout,
			src:        body[start:],
			dst:        out[layout.Offset : layout.Offset+layout.ElementCount],
			stride:     stride,
			maxLineLen: int(hdr.MaxLineLen),
		})
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].layout.LineCount > tasks[j].layout.LineCount
	})

	fs := make([]utils.SimpleFunc, 0, len(tasks))
	for _, task := range tasks {
		fs = append(fs, func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return errors.Wrapf(task.decode(), "tensor %q", task.desc.Name)
		})
	}
	if _, err := utils.RunInParallel(ctx, fs); err != nil {
		return nil, err
	}
	return out, nil
}

func (task *tensorTask) decode() error {
	if !task.desc.NeedsReorder() {
		return task.dequantize(task.dst)
	}
	if len(task.desc.Dims) > MaxReorderRank {
		return errors.Wrapf(ErrUnsupportedRank, "%d dimensions", len(task.desc.Dims))
	}
	if err := checkPermutation(task.desc.Dims); err != nil {
		return err
	}
	scratch := make([]float32, len(task.dst))
	if err := task.dequantize(scratch); err != nil {
		return err
	}
	reorder(task.dst, scratch, task.desc.Dims)
	return nil
}

// dequantize reads len(out) elements from the tensor lines, using at most maxLineLen bytes of each.
func (task *tensorTask) dequantize(out []float32) error {
	var elemBytes int
	switch task.desc.BitsPerElement {
	case 8:
		elemBytes = 1
	case 16:
		elemBytes = 2
	default:
		return errors.Wrapf(ErrUnsupportedElementWidth, "%d bits per element", task.desc.BitsPerElement)
	}
	perLine := task.maxLineLen / elemBytes
	if perLine == 0 {
		return errors.Wrapf(ErrInvalidFrame, "max line length %d cannot hold a %d byte element", task.maxLineLen, elemBytes)
	}

	shift := int32(task.desc.Shift)
	scale := task.desc.Scale
	signed := task.desc.Format == Signed

	n := 0
	for line := 0; line < int(task.layout.LineCount) && n < len(out); line++ {
		take := min(perLine, len(out)-n)
		lineStart := line * task.stride
		lineEnd := lineStart + take*elemBytes
		if lineEnd > len(task.src) {
			return errors.Wrapf(ErrShortBuffer, "line %d needs bytes up to %d, have %d", line, lineEnd, len(task.src))
		}
		row := task.src[lineStart:lineEnd]
		for i := 0; i < take; i++ {
			var raw int32
			if elemBytes == 1 {
				if signed {
					raw = int32(int8(row[i]))
				} else {
					raw = int32(row[i])
				}
			} else {
				lo, hi := row[2*i], row[2*i+1]
				if signed {
					raw = int32(AssembleInt16(lo, hi))
				} else {
					raw = int32(AssembleUint16(lo, hi))
				}
			}
			out[n] = float32(raw-shift) * scale
			n++
		}
	}
	if n < len(out) {
		return errors.Wrapf(ErrShortBuffer, "%d lines hold %d of %d elements", task.layout.LineCount, n, len(out))
	}
	return nil
}

// reorder permutes src, stored in serialization order, into dst in declared order.
func reorder(dst, src []float32, dims []Dimension) {
	forEachSerialized(dims, func(srcIdx, dstIdx int) {
		dst[dstIdx] = src[srcIdx]
	})
}

// forEachSerialized walks the elements of a tensor of at most 3 dimensions in serialization
// order, passing each element's serialized index and its declared order index. Declared
// dimension 0 varies fastest in declared order; serialization position 0 varies fastest in
// serialized order.
func forEachSerialized(dims []Dimension, visit func(srcIdx, dstIdx int)) {
	loopCnt := [MaxReorderRank]int{1, 1, 1}
	coef := [MaxReorderRank]int{1, 1, 1}
	for declared, dim := range dims {
		pos := dim.SerializationIndex
		loopCnt[pos] = int(dim.Size)
		for _, preceding := range dims[:declared] {
			coef[pos] *= int(preceding.Size)
		}
	}

	srcIdx := 0
	for i := 0; i < loopCnt[2]; i++ {
		for j := 0; j < loopCnt[1]; j++ {
			for k := 0; k < loopCnt[0]; k++ {
				visit(srcIdx, coef[2]*i+coef[1]*j+coef[0]*k)
				srcIdx++
			}
		}
	}
}

func checkPermutation(dims []Dimension) error {
	var seen [MaxReorderRank]bool
	for i, dim := range dims {
		if int(dim.SerializationIndex) >= len(dims) || seen[dim.SerializationIndex] {
			return errors.Wrapf(ErrInvalidSchema, "dimension %d has serialization index %d", i, dim.SerializationIndex)
		}
		seen[dim.SerializationIndex] = true
	}
	return nil
}
