package features

import (
	"fmt"
	"image"
	"image/color"
	"runtime"

	"gocv.io/x/gocv"
	"golang.org/x/image/draw"
)

// packRGBA returns img as a zero-origin RGBA whose rows are contiguous.
// An image already in that shape is returned as is.
func packRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) && rgba.Stride == 4*b.Dx() {
		return rgba
	}
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// packGray is packRGBA for single-channel images.
func packGray(gray *image.Gray) *image.Gray {
	b := gray.Bounds()
	if b.Min == (image.Point{}) && gray.Stride == b.Dx() {
		return gray
	}
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		copy(out.Pix[y*out.Stride:], gray.Pix[gray.PixOffset(b.Min.X, b.Min.Y+y):gray.PixOffset(b.Max.X, b.Min.Y+y)])
	}
	return out
}

// grayMat wraps gray's pixels in a CV_8UC1 Mat. Callers close the Mat on success.
func grayMat(gray *image.Gray) (gocv.Mat, error) {
	b := gray.Bounds()
	if b.Empty() {
		return gocv.Mat{}, ErrEmptyRegion
	}
	gray = packGray(gray)
	mat, err := gocv.NewMatFromBytes(b.Dy(), b.Dx(), gocv.MatTypeCV8UC1, gray.Pix[:b.Dx()*b.Dy()])
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("features: gray to mat: %w", err)
	}
	return mat, nil
}

// rgbaMat wraps img's pixels in a CV_8UC4 Mat in R, G, B, A channel order.
// The returned image backs the Mat and must stay alive while it is used.
func rgbaMat(img image.Image) (gocv.Mat, *image.RGBA, error) {
	b := img.Bounds()
	if b.Empty() {
		return gocv.Mat{}, nil, ErrEmptyRegion
	}
	rgba := packRGBA(img)
	mat, err := gocv.NewMatFromBytes(b.Dy(), b.Dx(), gocv.MatTypeCV8UC4, rgba.Pix[:4*b.Dx()*b.Dy()])
	if err != nil {
		return gocv.Mat{}, nil, fmt.Errorf("features: rgba to mat: %w", err)
	}
	return mat, rgba, nil
}

// GrayMat converts img to a single-channel Mat with OpenCV's RGBA to gray
// weights. Callers close the Mat on success.
func GrayMat(img image.Image) (gocv.Mat, error) {
	if g, ok := img.(*image.Gray); ok {
		return grayMat(g)
	}
	src, backing, err := rgbaMat(img)
	if err != nil {
		return gocv.Mat{}, err
	}
	defer src.Close()
	gray := gocv.NewMat()
	gocv.CvtColor(src, &gray, gocv.ColorRGBAToGray)
	runtime.KeepAlive(backing)
	if gray.Empty() {
		gray.Close()
		return gocv.Mat{}, fmt.Errorf("features: rgba to gray produced no data")
	}
	return gray, nil
}

// Grayscale returns a contiguous single-channel copy of img, origin at 0,0.
func Grayscale(img image.Image) (*image.Gray, error) {
	mat, err := GrayMat(img)
	if err != nil {
		return nil, err
	}
	defer mat.Close()
	return grayImage(mat), nil
}

// grayImage copies a CV_8UC1 Mat into an *image.Gray.
func grayImage(mat gocv.Mat) *image.Gray {
	return &image.Gray{
		Pix:    mat.ToBytes(),
		Stride: mat.Cols(),
		Rect:   image.Rect(0, 0, mat.Cols(), mat.Rows()),
	}
}

// rgbaScalar reorders c for drawing on an RGBA-ordered Mat; gocv writes
// colours as B, G, R, A.
func rgbaScalar(c color.RGBA) color.RGBA {
	return color.RGBA{R: c.B, G: c.G, B: c.R, A: c.A}
}
