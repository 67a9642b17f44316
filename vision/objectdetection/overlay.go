package objectdetection

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"
	"github.com/pkg/errors"

	"go.viam.com/imx500/rimage"
)

// Overlay returns a copy of img with the detections drawn on it. Boxes are clipped to the image;
// a box entirely outside it is an error.
func Overlay(img image.Image, dets []Detection) (image.Image, error) {
	gimg := gg.NewContextForImage(img)
	for _, det := range dets {
		bb := det.BoundingBox().Intersect(img.Bounds())
		if bb.Empty() {
			return nil, errors.Errorf("bounding box (%v) does not fit in image with bounds (%v)",
				det.BoundingBox(), img.Bounds())
		}
		drawDetection(gimg, bb, det)
	}
	return gimg.Image(), nil
}

func drawDetection(dc *gg.Context, bb image.Rectangle, d Detection) {
	rimage.DrawRectangleEmpty(dc, bb, rimage.Red, 2.0)
	text := fmt.Sprintf("%s: %.2f", d.Label(), d.Score())
	rimage.DrawString(dc, text, bb.Min, rimage.Green, 18)
}
