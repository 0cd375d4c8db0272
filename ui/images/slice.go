package images

import (
	"errors"
	"image"
)

// ExtractSlice copies the full-height column band [x, x+width) out of frame.
// The band is clamped to the frame and is at least one pixel wide. The copy has
// a zero origin so later writes to frame do not show through.
func ExtractSlice(frame *image.RGBA, x, width int) (*image.RGBA, image.Rectangle, error) {
	if frame == nil {
		return nil, image.Rectangle{}, errors.New("nil frame")
	}
	b := frame.Bounds()
	if b.Empty() {
		return nil, image.Rectangle{}, errors.New("empty frame")
	}
	width = max(width, 1)
	x0 := min(max(b.Min.X+x, b.Min.X), b.Max.X-1)
	x1 := min(x0+width, b.Max.X)
	band := image.Rect(x0, b.Min.Y, x1, b.Max.Y)

	out := image.NewRGBA(image.Rect(0, 0, band.Dx(), band.Dy()))
	n := band.Dx() * 4
	for y := 0; y < band.Dy(); y++ {
		s := frame.PixOffset(band.Min.X, band.Min.Y+y)
		copy(out.Pix[y*out.Stride:y*out.Stride+n], frame.Pix[s:s+n])
	}
	return out, band, nil
}
