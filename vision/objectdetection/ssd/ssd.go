// Package ssd interprets the decoded MobileNet SSD output record as pixel space detections.
package ssd

import (
	"image"
	"math"

	"github.com/pkg/errors"

	"go.viam.com/imx500/logging"
	"go.viam.com/imx500/ml/imx500"
)

// Candidates is the number of candidate slots in the record.
const Candidates = imx500.SSDCandidates

// RecordSize is the number of values in a record: four box coordinate planes, classes, scores
// and the detection count.
const RecordSize = imx500.SSDRecordElements

// ErrInvalidImageSize is returned when the target image has no pixels to map boxes onto.
var ErrInvalidImageSize = errors.New("invalid image size")

// Params controls how a record is turned into detections.
type Params struct {
	// MaxDetections caps the number of detections kept, in record order.
	MaxDetections int
	// Threshold is the lowest score kept.
	Threshold float32
	// Width and Height are the size in pixels of the image the boxes are mapped onto.
	Width  int
	Height int
}

// PixelBox is a detection box in pixel coordinates, corners inclusive.
type PixelBox struct {
	XMin, YMin, XMax, YMax int
}

// Width is XMax - XMin.
func (b PixelBox) Width() int {
	return b.XMax - b.XMin
}

// Height is YMax - YMin.
func (b PixelBox) Height() int {
	return b.YMax - b.YMin
}

// Rect returns the box as a well formed rectangle.
func (b PixelBox) Rect() image.Rectangle {
	return image.Rect(b.XMin, b.YMin, b.XMax, b.YMax)
}

// DetectionSet holds the kept detections. The slices have equal length and share indices.
type DetectionSet struct {
	Boxes    []PixelBox
	Scores   []float32
	ClassIDs []uint8
}

// Count returns the number of detections.
func (s *DetectionSet) Count() int {
	return len(s.ClassIDs)
}

// Interpret reads a decoded SSD record. Only the first self-reported number of candidates are
// considered; those scoring below the threshold are dropped and the rest are kept in record
// order, up to MaxDetections.
func Interpret(data []float32, params Params, logger logging.Logger) (*DetectionSet, error) {
	if len(data) != RecordSize {
		return nil, errors.Wrapf(imx500.ErrUnexpectedSize, "record has %d values, expected %d", len(data), RecordSize)
	}
	if params.Width < 1 || params.Height < 1 {
		return nil, errors.Wrapf(ErrInvalidImageSize, "%dx%d", params.Width, params.Height)
	}

	var (
		yMin    = data[0:Candidates]
		xMin    = data[Candidates : 2*Candidates]
		yMax    = data[2*Candidates : 3*Candidates]
		xMax    = data[3*Candidates : 4*Candidates]
		classes = data[4*Candidates : 5*Candidates]
		scores  = data[5*Candidates : 6*Candidates]
	)
	num := detectionCount(data[6*Candidates], logger)

	set := &DetectionSet{
		Boxes:    []PixelBox{},
		Scores:   []float32{},
		ClassIDs: []uint8{},
	}
	for i := 0; i < num; i++ {
		score := scores[i]
		if math.IsNaN(float64(score)) || score < params.Threshold {
			continue
		}
		set.Boxes = append(set.Boxes, PixelBox{
			XMin: toPixel(xMin[i], params.Width),
			YMin: toPixel(yMin[i], params.Height),
			XMax: toPixel(xMax[i], params.Width),
			YMax: toPixel(yMax[i], params.Height),
		})
		set.Scores = append(set.Scores, score)
		set.ClassIDs = append(set.ClassIDs, classID(classes[i]))
	}

	if limit := max(params.MaxDetections, 0); set.Count() > limit {
		set.Boxes = set.Boxes[:limit]
		set.Scores = set.Scores[:limit]
		set.ClassIDs = set.ClassIDs[:limit]
	}

	logger.Debugf("Number of detections: %d", set.Count())
	for i := range set.ClassIDs {
		b := set.Boxes[i]
		logger.Debugw("detection", "index", i, "box", []int{b.XMin, b.XMax, b.YMin, b.YMax},
			"score", set.Scores[i], "class", set.ClassIDs[i])
	}
	return set, nil
}

// detectionCount returns the self-reported number of detections, clamped to the record size.
func detectionCount(reported float32, logger logging.Logger) int {
	switch {
	case math.IsNaN(float64(reported)) || reported < 0:
		logger.Warnw("unexpected value for numDetections, setting it to 0", "numDetections", reported)
		return 0
	case reported > Candidates:
		logger.Warnw("unexpected value for numDetections, clamping", "numDetections", reported, "clampedTo", Candidates)
		return Candidates
	default:
		return int(reported)
	}
}

// toPixel maps a normalized coordinate onto [0, dim-1]. Coordinates outside [0, 1] land outside
// the image; NaN maps to 0 and the result saturates at the int32 range.
func toPixel(normalized float32, dim int) int {
	n := float64(normalized)
	if math.IsNaN(n) {
		return 0
	}
	p := math.Round(n * float64(dim-1))
	return int(math.Max(math.MinInt32, math.Min(math.MaxInt32, p)))
}

// classID truncates a decoded class value to 8 bits.
func classID(v float32) uint8 {
	if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
		return 0
	}
	return uint8(int64(v))
}
