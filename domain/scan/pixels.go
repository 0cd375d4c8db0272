package scan

import (
	"image"
	"image/color"
)

var cursorGreen = color.RGBA{0, 255, 0, 255}

// invertRect complements the R, G and B bytes inside r. Alpha is untouched.
// Applying it twice restores the original pixels.
func invertRect(img *image.RGBA, r image.Rectangle) {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := img.Pix[img.PixOffset(r.Min.X, y):img.PixOffset(r.Max.X, y)]
		for i := 0; i < len(row); i += 4 {
			row[i] = ^row[i]
			row[i+1] = ^row[i+1]
			row[i+2] = ^row[i+2]
		}
	}
}

// cloneRGBA returns a deep copy of src with the same bounds.
func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copyRGBA(dst, src)
	return dst
}

// copyRGBA copies src pixels into dst; both must share bounds.
func copyRGBA(dst, src *image.RGBA) {
	b := src.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		copy(dst.Pix[dst.PixOffset(b.Min.X, y):dst.PixOffset(b.Max.X, y)], src.Pix[src.PixOffset(b.Min.X, y):src.PixOffset(b.Max.X, y)])
	}
}
