// Package objectdetection defines the detections produced from sensor output tensors and the
// helpers to filter and draw them.
package objectdetection

import (
	"fmt"
	"image"
)

// Detection returns a bounding box around the object and a confidence score of the detection.
type Detection interface {
	BoundingBox() *image.Rectangle
	Score() float64
	Label() string
	ClassID() uint8
}

// NewDetection creates a simple 2D detection.
func NewDetection(boundingBox image.Rectangle, score float64, label string) Detection {
	return &detection2D{boundingBox: boundingBox, score: score, label: label}
}

// NewClassDetection creates a 2D detection of a numbered class.
func NewClassDetection(classID uint8, boundingBox image.Rectangle, score float64, label string) Detection {
	return &detection2D{boundingBox: boundingBox, score: score, label: label, classID: classID}
}

// detection2D is a simple struct for storing 2D detections.
type detection2D struct {
	boundingBox image.Rectangle
	score       float64
	label       string
	classID     uint8
}

// BoundingBox returns a bounding box around the detected object.
func (d *detection2D) BoundingBox() *image.Rectangle {
	return &d.boundingBox
}

// Score returns a confidence score of the detection between 0.0 and 1.0.
func (d *detection2D) Score() float64 {
	return d.score
}

// Label returns the class label of the object in the bounding box.
func (d *detection2D) Label() string {
	return d.label
}

// ClassID returns the class number reported by the network.
func (d *detection2D) ClassID() uint8 {
	return d.classID
}

// String turns the detection into a string.
func (d *detection2D) String() string {
	return fmt.Sprintf("Label: %s (%d), Score: %.2f, Box: %v", d.label, d.classID, d.score, d.boundingBox)
}

// Result is the exported form of a detection. Box holds x, y, width and height in pixels.
type Result struct {
	Class      uint8   `json:"class"`
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Box        [4]int  `json:"box"`
}

// ToResults converts detections to their exported form, keeping their order.
func ToResults(dets []Detection) []Result {
	results := make([]Result, 0, len(dets))
	for _, d := range dets {
		bb := d.BoundingBox()
		results = append(results, Result{
			Class:      d.ClassID(),
			Label:      d.Label(),
			Confidence: d.Score(),
			Box:        [4]int{bb.Min.X, bb.Min.Y, bb.Dx(), bb.Dy()},
		})
	}
	return results
}
