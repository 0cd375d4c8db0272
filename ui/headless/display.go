// Package headless provides a frame sink for running without a window.
package headless

import (
	"image"
	"os"
	"sync"

	"github.com/soocke/graph-score/ui/images"
)

// Display keeps the most recent frame and slice and counts updates. It
// satisfies the presenters' FrameView.
type Display struct {
	mu     sync.Mutex
	frame  image.Image
	slice  image.Image
	frames int
	slices int
}

func NewDisplay() *Display { return &Display{} }

func (d *Display) UpdateFrame(img image.Image) {
	d.mu.Lock()
	d.frame = img
	d.frames++
	d.mu.Unlock()
}

func (d *Display) UpdateSlice(img image.Image) {
	d.mu.Lock()
	d.slice = img
	d.slices++
	d.mu.Unlock()
}

// Last returns the most recent frame, or nil.
func (d *Display) Last() image.Image {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frame
}

// Counts returns the number of frame and slice updates.
func (d *Display) Counts() (frames, slices int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frames, d.slices
}

// Snapshot writes the most recent frame to path as PNG. It is a no-op when
// nothing was rendered.
func (d *Display) Snapshot(path string) error {
	img := d.Last()
	if img == nil {
		return nil
	}
	return os.WriteFile(path, images.EncodePNG(img), 0o644)
}
