package rimage

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/fogleman/gg"
	"go.viam.com/test"
)

func nrgbaAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func isRed(c color.NRGBA) bool {
	return c.R > 200 && c.G < 60 && c.B < 60
}

func TestDrawRectangleEmpty(t *testing.T) {
	dc := gg.NewContext(40, 30)
	dc.SetColor(color.White)
	dc.Clear()
	DrawRectangleEmpty(dc, image.Rect(5, 5, 30, 20), Red, 2)
	img := dc.Image()

	// Edges are drawn, the inside is left alone.
	test.That(t, isRed(nrgbaAt(img, 15, 5)), test.ShouldBeTrue)
	test.That(t, isRed(nrgbaAt(img, 5, 12)), test.ShouldBeTrue)
	test.That(t, isRed(nrgbaAt(img, 30, 12)), test.ShouldBeTrue)
	test.That(t, isRed(nrgbaAt(img, 15, 20)), test.ShouldBeTrue)
	test.That(t, nrgbaAt(img, 15, 12), test.ShouldResemble, color.NRGBA{255, 255, 255, 255})
}

func TestDrawString(t *testing.T) {
	test.That(t, Font(), test.ShouldNotBeNil)
	dc := gg.NewContext(100, 40)
	DrawString(dc, "person: 0.91", image.Point{2, 2}, Green, 14)

	found := false
	bounds := dc.Image().Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y && !found; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if c := nrgbaAt(dc.Image(), x, y); c.G > 0 && c.A > 0 {
				found = true
				break
			}
		}
	}
	test.That(t, found, test.ShouldBeTrue)
}

func TestImageFileRoundTrip(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 8))
	img.Set(3, 3, Red)
	path := filepath.Join(t.TempDir(), "frame.png")
	test.That(t, WriteImageToFile(path, img), test.ShouldBeNil)

	read, err := ReadImageFromFile(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, read.Bounds(), test.ShouldResemble, img.Bounds())
	test.That(t, nrgbaAt(read, 3, 3), test.ShouldResemble, Red)

	_, err = ReadImageFromFile(filepath.Join(t.TempDir(), "missing.png"))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, WriteImageToFile(filepath.Join(t.TempDir(), "frame.unknown"), img), test.ShouldNotBeNil)
}
