package features

import (
	"image"
	"image/color"
	"math"
	"runtime"

	"gocv.io/x/gocv"
)

var (
	keypointGreen = color.RGBA{0, 255, 0, 255}
	keypointBlack = color.RGBA{0, 0, 0, 255}
)

// DrawKeypoints outlines each keypoint on dst with a circle of radius Size/2,
// alternating green and black. dst must be a display copy, never an analysis input.
func DrawKeypoints(dst *image.RGBA, kps []Keypoint) error {
	if dst == nil || len(kps) == 0 || dst.Bounds().Empty() {
		return nil
	}
	mat, backing, err := rgbaMat(dst)
	if err != nil {
		return err
	}
	defer mat.Close()
	for i, kp := range kps {
		c := keypointGreen
		if i%2 == 1 {
			c = keypointBlack
		}
		r := int(math.Round(kp.Size / 2))
		if r < 1 {
			r = 1
		}
		center := image.Pt(int(math.Round(kp.X)), int(math.Round(kp.Y)))
		gocv.Circle(&mat, center, r, rgbaScalar(c), 1)
	}

	// copy back; the Mat may or may not share memory with dst
	out := mat.ToBytes()
	runtime.KeepAlive(backing)
	b := dst.Bounds()
	row := 4 * b.Dx()
	for y := 0; y < b.Dy(); y++ {
		copy(dst.Pix[dst.PixOffset(b.Min.X, b.Min.Y+y):], out[y*row:(y+1)*row])
	}
	return nil
}
