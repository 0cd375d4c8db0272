package scan

import (
	"fmt"
	"image"
	"time"
)

// Geometry fixes the slice layout and cadence of one scan.
type Geometry struct {
	ImageWidth   int
	SliceWidth   int
	SliceHeight  int
	TotalSteps   int
	Duration     time.Duration
	StepDuration time.Duration
}

// NewGeometry validates the slice against the image and derives the step count
// (width - slice + 1) and per-step duration.
func NewGeometry(imageW, imageH, sliceW int, total time.Duration) (Geometry, error) {
	if imageW <= 0 || imageH <= 0 || sliceW <= 0 {
		return Geometry{}, fmt.Errorf("%w: image %dx%d slice %d", ErrInvalidGeometry, imageW, imageH, sliceW)
	}
	if total <= 0 {
		return Geometry{}, fmt.Errorf("%w: duration %v", ErrInvalidGeometry, total)
	}
	if sliceW > imageW {
		return Geometry{}, fmt.Errorf("%w: slice %d > image %d", ErrSliceTooWide, sliceW, imageW)
	}
	steps := imageW - sliceW + 1
	return Geometry{
		ImageWidth:   imageW,
		SliceWidth:   sliceW,
		SliceHeight:  imageH,
		TotalSteps:   steps,
		Duration:     total,
		StepDuration: total / time.Duration(steps),
	}, nil
}

// SliceRect returns the slice under cursor, clamped to the image width.
func (g Geometry) SliceRect(cursor int) image.Rectangle {
	x0 := cursor
	if x0 < 0 {
		x0 = 0
	}
	x1 := x0 + g.SliceWidth
	if x1 > g.ImageWidth {
		x1 = g.ImageWidth
	}
	return image.Rect(x0, 0, x1, g.SliceHeight)
}
