package capture

import (
	"image"
	"time"

	"github.com/vova616/screenshot"
	xdraw "golang.org/x/image/draw"
)

// ScreenSource grabs the screen (or Selection when set) and resizes the
// capture to the frame size.
type ScreenSource struct {
	Selection *image.Rectangle
	Width     int
	Height    int
}

func (s ScreenSource) Acquire() (FrameSnapshot, error) {
	var (
		img *image.RGBA
		err error
	)
	origin := "screen"
	if s.Selection != nil && !s.Selection.Empty() {
		img, err = screenshot.CaptureRect(*s.Selection)
		origin = "screen:" + s.Selection.String()
	} else {
		img, err = screenshot.CaptureScreen()
	}
	if err != nil {
		return FrameSnapshot{}, err
	}
	if img == nil || img.Bounds().Empty() {
		return FrameSnapshot{}, ErrEmptyFrame
	}
	native := img.Bounds().Size()
	return FrameSnapshot{
		Image:      Fit(img, s.Width, s.Height),
		Origin:     origin,
		NativeSize: native,
		CapturedAt: time.Now(),
	}, nil
}

// Fit returns a zero-origin copy of src scaled to exactly w x h. When src
// already has that size it is copied without resampling.
func Fit(src image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	b := src.Bounds()
	if b.Dx() == w && b.Dy() == h {
		xdraw.Draw(dst, dst.Bounds(), src, b.Min, xdraw.Src)
		return dst
	}
	xdraw.BiLinear.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst
}
