package capture

import (
	"fmt"
	"image"
	"time"

	"gocv.io/x/gocv"
)

// FileSource reads an image from disk and resizes it to the frame size.
type FileSource struct {
	Path   string
	Width  int
	Height int
}

func (f FileSource) Acquire() (FrameSnapshot, error) {
	img, native, err := LoadFile(f.Path, f.Width, f.Height)
	if err != nil {
		return FrameSnapshot{}, err
	}
	return FrameSnapshot{Image: img, Origin: f.Path, NativeSize: native, CapturedAt: time.Now()}, nil
}

// LoadFile decodes path as a colour image and resizes it to w x h with
// bilinear interpolation. The native size is returned alongside.
func LoadFile(path string, w, h int) (*image.RGBA, image.Point, error) {
	if w <= 0 || h <= 0 {
		return nil, image.Point{}, fmt.Errorf("capture: invalid frame size %dx%d", w, h)
	}
	mat := gocv.IMRead(path, gocv.IMReadColor)
	defer mat.Close()
	if mat.Empty() {
		return nil, image.Point{}, fmt.Errorf("%w: %s", ErrUnreadable, path)
	}
	native := image.Pt(mat.Cols(), mat.Rows())

	resized := gocv.NewMat()
	defer resized.Close()
	gocv.Resize(mat, &resized, image.Pt(w, h), 0, 0, gocv.InterpolationLinear)
	if resized.Empty() {
		return nil, native, fmt.Errorf("%w: resize %s", ErrEmptyFrame, path)
	}
	if !resized.IsContinuous() {
		cont := resized.Clone()
		defer cont.Close()
		return bgrToRGBA(cont.ToBytes(), w, h), native, nil
	}
	return bgrToRGBA(resized.ToBytes(), w, h), native, nil
}

// bgrToRGBA converts packed 8-bit BGR rows into an opaque RGBA image.
func bgrToRGBA(bgr []byte, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	n := w * h
	if len(bgr) < n*3 {
		n = len(bgr) / 3
	}
	for i := 0; i < n; i++ {
		s, d := i*3, i*4
		img.Pix[d+0] = bgr[s+2]
		img.Pix[d+1] = bgr[s+1]
		img.Pix[d+2] = bgr[s+0]
		img.Pix[d+3] = 0xFF
	}
	return img
}
