package ml

import (
	"testing"

	"go.viam.com/test"
	"gorgonia.org/tensor"
)

func TestTensorsLookup(t *testing.T) {
	tensors := Tensors{
		"scores": tensor.New(tensor.WithShape(4), tensor.WithBacking([]float32{0.1, 0.2, 0.3, 0.4})),
		"boxes":  tensor.New(tensor.WithShape(2, 2), tensor.WithBacking([]float32{1, 2, 3, 4})),
	}
	test.That(t, tensors.Names(), test.ShouldResemble, []string{"boxes", "scores"})

	scores, err := tensors.Lookup("scores")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, scores.Shape(), test.ShouldResemble, tensor.Shape{4})

	_, err = tensors.Lookup("classes")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "boxes, scores")
}

func TestSummarize(t *testing.T) {
	data := tensor.New(tensor.WithShape(4), tensor.WithBacking([]float32{1, 2, 3, 4}))
	summary, err := Summarize(data)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, summary.Count, test.ShouldEqual, 4)
	test.That(t, summary.Min, test.ShouldEqual, 1)
	test.That(t, summary.Max, test.ShouldEqual, 4)
	test.That(t, summary.Mean, test.ShouldAlmostEqual, 2.5)
	test.That(t, summary.Median, test.ShouldAlmostEqual, 2.5)
	test.That(t, summary.StdDev, test.ShouldAlmostEqual, 1.118033988749895, 1e-9)

	_, err = Summarize(tensor.New(tensor.WithShape(2), tensor.WithBacking([]bool{true, false})))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestSummarizeScalar(t *testing.T) {
	summary, err := Summarize(tensor.New(tensor.WithBacking([]float32{3})))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, summary.Count, test.ShouldEqual, 1)
	test.That(t, summary.Max, test.ShouldEqual, 3)
	test.That(t, summary.StdDev, test.ShouldEqual, 0)
}
