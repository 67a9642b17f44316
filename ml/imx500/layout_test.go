package imx500

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"
)

func TestPlanLayoutSSD(t *testing.T) {
	plan, err := PlanLayout(SSDDescriptors(), 16)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, plan.TotalElements, test.ShouldEqual, SSDRecordElements)
	test.That(t, plan.Tensors, test.ShouldResemble, []TensorLayout{
		// 40 elements of 2 bytes over 16 byte lines.
		{ElementCount: 40, Offset: 0, LineCount: 5, FirstLine: 0},
		{ElementCount: 10, Offset: 40, LineCount: 1, FirstLine: 5},
		{ElementCount: 10, Offset: 50, LineCount: 2, FirstLine: 6},
		{ElementCount: 1, Offset: 60, LineCount: 1, FirstLine: 8},
	})
	test.That(t, plan.TotalLines(), test.ShouldEqual, 9)
}

func TestPlanLayoutTopologyGate(t *testing.T) {
	descs := SSDDescriptors()
	descs[3].Dims[0].Size = 2
	_, err := PlanLayout(descs, 64)
	test.That(t, errors.Is(err, ErrUnexpectedSize), test.ShouldBeTrue)

	plan, err := PlanTensors(descs, 64)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, plan.TotalElements, test.ShouldEqual, 62)

	_, err = PlanLayout(descs[:3], 64)
	test.That(t, errors.Is(err, ErrUnexpectedSize), test.ShouldBeTrue)
}

func TestPlanLayoutEmpty(t *testing.T) {
	_, err := PlanLayout(nil, 64)
	test.That(t, errors.Is(err, ErrEmptyLayout), test.ShouldBeTrue)

	_, err = PlanLayout([]TensorDescriptor{}, 64)
	test.That(t, errors.Is(err, ErrEmptyLayout), test.ShouldBeTrue)

	descs := SSDDescriptors()
	descs[1].Dims[0].Size = 0
	_, err = PlanLayout(descs, 64)
	test.That(t, errors.Is(err, ErrEmptyLayout), test.ShouldBeTrue)


	_, err = PlanLayout(SSDDescriptors(), 0)
	test.That(t, errors.Is(err, ErrInvalidFrame), test.ShouldBeTrue)
}

func TestPlanLayoutOverflow(t *testing.T) {
	big := Dimension{Size: math.MaxUint16}

	// 65535^3 does not fit in 32 bits.
	_, err := PlanLayout([]TensorDescriptor{{
		Name:           "cube",
		Dims:           []Dimension{big, big, big},
		BitsPerElement: 8,
	}}, 64)
	test.That(t, errors.Is(err, ErrLayoutOverflow), test.ShouldBeTrue)

	// 65535^2 fits, but two of them do not.
	square := TensorDescriptor{Name: "square", Dims: []Dimension{big, big}, BitsPerElement: 8}
	_, err = PlanLayout([]TensorDescriptor{square, square}, math.MaxUint16)
	test.That(t, errors.Is(err, ErrLayoutOverflow), test.ShouldBeTrue)

	// Fits in elements, but needs more lines than the 16-bit line count holds.
	_, err = PlanLayout([]TensorDescriptor{square}, 1)
	test.That(t, errors.Is(err, ErrLayoutOverflow), test.ShouldBeTrue)
}

func TestPlanLayoutOffsets(t *testing.T) {
	descs := []TensorDescriptor{
		{Name: "a", Dims: []Dimension{{Size: 3}, {Size: 7}}, BitsPerElement: 8},
		{Name: "b", Dims: []Dimension{{Size: 30}}, BitsPerElement: 16},
		{Name: "c", Dims: []Dimension{{Size: 10}}, BitsPerElement: 8},
	}
	plan, err := PlanLayout(descs, 8)
	test.That(t, err, test.ShouldBeNil)
	offsets := []int{}
	for _, layout := range plan.Tensors {
		offsets = append(offsets, layout.Offset)
		test.That(t, layout.Offset+layout.ElementCount, test.ShouldBeLessThanOrEqualTo, plan.TotalElements)
	}
	test.That(t, offsets, test.ShouldResemble, []int{0, 21, 51})
	test.That(t, plan.Tensors[0].LineCount, test.ShouldEqual, uint16(3))
	test.That(t, plan.Tensors[1].LineCount, test.ShouldEqual, uint16(8))
	test.That(t, plan.Tensors[2].LineCount, test.ShouldEqual, uint16(2))
}

func TestPlanLayoutScalar(t *testing.T) {
	descs := SSDDescriptors()
	descs[3].Dims = nil
	plan, err := PlanLayout(descs, 16)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, plan.TotalElements, test.ShouldEqual, SSDRecordElements)
	test.That(t, plan.Tensors[3], test.ShouldResemble, TensorLayout{ElementCount: 1, Offset: 60, LineCount: 1, FirstLine: 8})

	plan, err = PlanTensors([]TensorDescriptor{{Name: "scalar", BitsPerElement: 16}}, 16)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, plan.TotalElements, test.ShouldEqual, 1)
}

func TestPlanLayoutOddLineLength(t *testing.T) {
	// Three 16-bit elements fit a 7 byte line, so 7 elements take 3 lines.
	desc := TensorDescriptor{Name: "odd", Dims: []Dimension{{Size: 7}}, BitsPerElement: 16}
	plan, err := PlanTensors([]TensorDescriptor{desc}, 7)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, plan.Tensors[0].LineCount, test.ShouldEqual, uint16(3))

	desc.BitsPerElement = 8
	plan, err = PlanTensors([]TensorDescriptor{desc}, 7)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, plan.Tensors[0].LineCount, test.ShouldEqual, uint16(1))

	desc.BitsPerElement = 16
	_, err = PlanTensors([]TensorDescriptor{desc}, 1)
	test.That(t, errors.Is(err, ErrInvalidFrame), test.ShouldBeTrue)
}
