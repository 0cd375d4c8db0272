package capture

import (
	"errors"
	"image"
	"time"
)

var (
	ErrUnreadable = errors.New("capture: image could not be read")
	ErrEmptyFrame = errors.New("capture: empty frame")
)

// Source produces the frame a session works on.
type Source interface {
	Acquire() (FrameSnapshot, error)
}

// FrameSnapshot carries an acquired frame and metadata. Image is always a
// zero-origin *image.RGBA of the requested frame size.
type FrameSnapshot struct {
	Image      *image.RGBA
	Origin     string
	NativeSize image.Point
	CapturedAt time.Time
	Sequence   uint64
}
