// Package ml provides the tensor container shared by the decoder and its consumers.
package ml

import (
	"sort"
	"strings"

	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
	"gorgonia.org/tensor"
)

// Tensors are a map of tensor names to their tensor data.
type Tensors map[string]*tensor.Dense

// Names returns the tensor names in sorted order.
func (t Tensors) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the named tensor, or an error listing the available names.
func (t Tensors) Lookup(name string) (*tensor.Dense, error) {
	data, ok := t[name]
	if !ok {
		return nil, errors.Errorf("no tensor named %q among output tensors [%s]", name, strings.Join(t.Names(), ", "))
	}
	return data, nil
}

// Summary describes the value distribution of a single tensor.
type Summary struct {
	Count  int
	Min    float64
	Max    float64
	Mean   float64
	Median float64
	StdDev float64
}

// Summarize computes the value distribution of a tensor.
func Summarize(data *tensor.Dense) (Summary, error) {
	values, err := convertToFloat64Slice(data.Data())
	if err != nil {
		return Summary{}, err
	}
	if len(values) == 0 {
		return Summary{}, errors.New("cannot summarize an empty tensor")
	}
	input := stats.Float64Data(values)

	var summary Summary
	summary.Count = input.Len()
	if summary.Min, err = input.Min(); err != nil {
		return Summary{}, err
	}
	if summary.Max, err = input.Max(); err != nil {
		return Summary{}, err
	}
	if summary.Mean, err = input.Mean(); err != nil {
		return Summary{}, err
	}
	if summary.Median, err = input.Median(); err != nil {
		return Summary{}, err
	}
	if summary.StdDev, err = input.StandardDeviation(); err != nil {
		return Summary{}, err
	}
	return summary, nil
}

// number interface for converting between numbers.
type number interface {
	constraints.Integer | constraints.Float
}

// convertNumberSlice converts any number slice into another number slice.
func convertNumberSlice[T1, T2 number](t1 []T1) []T2 {
	t2 := make([]T2, len(t1))
	for i := range t1 {
		t2[i] = T2(t1[i])
	}
	return t2
}

func convertToFloat64Slice(slice interface{}) ([]float64, error) {
	switch v := slice.(type) {
	case []float64:
		return v, nil
	case float64:
		return []float64{v}, nil
	case []float32:
		return convertNumberSlice[float32, float64](v), nil
	case float32:
		return []float64{float64(v)}, nil
	case []int8:
		return convertNumberSlice[int8, float64](v), nil
	case []uint8:
		return convertNumberSlice[uint8, float64](v), nil
	case []int16:
		return convertNumberSlice[int16, float64](v), nil
	case []uint16:
		return convertNumberSlice[uint16, float64](v), nil
	default:
		return nil, errors.Errorf("dont know how to convert slice of %T into a []float64", slice)
	}
}
