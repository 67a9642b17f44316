package imx500

import "github.com/pkg/errors"

const (
	// SSDCandidates is the number of candidate slots in the SSD record.
	SSDCandidates = 10
	// SSDNetworkType is the network type reported by the MobileNet SSD firmware.
	SSDNetworkType = "mobilenet_ssd"

	ssdCoordScale = float32(1.0 / 10000)
	ssdScoreScale = float32(1.0 / 10000)
)

// SSDCandidate is one detection slot of the SSD record with coordinates normalized to [0, 1].
type SSDCandidate struct {
	YMin  float32 `json:"y_min"`
	XMin  float32 `json:"x_min"`
	YMax  float32 `json:"y_max"`
	XMax  float32 `json:"x_max"`
	Class uint8   `json:"class"`
	Score float32 `json:"score"`
}

// SSDDescriptors returns the output tensors of the MobileNet SSD network as the sensor reports
// them. The boxes are stored candidate by candidate and reordered into coordinate planes.
func SSDDescriptors() []TensorDescriptor {
	return []TensorDescriptor{
		{
			ID:   0,
			Name: "boxes",
			Dims: []Dimension{
				{Ordinal: 0, Size: SSDCandidates, SerializationIndex: 1},
				{Ordinal: 1, Size: 4, SerializationIndex: 0},
			},
			BitsPerElement: 16,
			Format:         Unsigned,
			Scale:          ssdCoordScale,
		},
		{
			ID:             1,
			Name:           "classes",
			Dims:           []Dimension{{Ordinal: 0, Size: SSDCandidates}},
			BitsPerElement: 8,
			Format:         Unsigned,
			Scale:          1,
		},
		{
			ID:             2,
			Name:           "scores",
			Dims:           []Dimension{{Ordinal: 0, Size: SSDCandidates}},
			BitsPerElement: 16,
			Format:         Unsigned,
			Scale:          ssdScoreScale,
		},
		{
			ID:             3,
			Name:           "num_detections",
			Dims:           []Dimension{{Ordinal: 0, Size: 1}},
			BitsPerElement: 8,
			Format:         Unsigned,
			Scale:          1,
		},
	}
}

// WriteSSD builds a MobileNet SSD frame holding the candidates, padded with empty slots, and the
// self-reported detection count.
func (fw *FrameWriter) WriteSSD(networkID uint16, candidates []SSDCandidate, numDetections uint8) ([]byte, error) {
	if len(candidates) > SSDCandidates {
		return nil, errors.Errorf("have %d candidates, the record holds %d", len(candidates), SSDCandidates)
	}
	descs := SSDDescriptors()
	schema := BuildSchema([]Network{{
		ID:                networkID,
		Type:              SSDNetworkType,
		InputTensorCount:  1,
		OutputDescriptors: descs,
	}})

	boxes := make([]float32, 4*SSDCandidates)
	classes := make([]float32, SSDCandidates)
	scores := make([]float32, SSDCandidates)
	for i, c := range candidates {
		boxes[i] = c.YMin
		boxes[SSDCandidates+i] = c.XMin
		boxes[2*SSDCandidates+i] = c.YMax
		boxes[3*SSDCandidates+i] = c.XMax
		classes[i] = float32(c.Class)
		scores[i] = c.Score
	}

	values := [][]float32{boxes, classes, scores, {float32(numDetections)}}
	raw := make([][]int32, len(descs))
	for i := range descs {
		serialized, err := ToSerializationOrder(&descs[i], Quantize(&descs[i], values[i]))
		if err != nil {
			return nil, err
		}
		raw[i] = serialized
	}
	return fw.Write(networkID, schema, descs, raw)
}
