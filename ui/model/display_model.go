package model

import (
	"image"
	"sync"

	"github.com/soocke/graph-score/ui/overlay"
)

// DisplayModel holds the frame shown while idle and the panel drawn over it.
// Scan frames are transient and never stored here. Safe for concurrent use;
// debug loggers read it off the UI thread.
type DisplayModel struct {
	mu    sync.RWMutex
	frame *image.RGBA
	panel overlay.Panel
	seq   uint64
}

func NewDisplayModel(frame *image.RGBA, panel overlay.Panel) *DisplayModel {
	return &DisplayModel{frame: frame, panel: panel}
}

// Set replaces the idle frame and panel. The model takes ownership of frame.
func (m *DisplayModel) Set(frame *image.RGBA, panel overlay.Panel) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.frame = frame
	m.panel = panel
	m.seq++
	m.mu.Unlock()
}

// Current returns the idle frame and panel. Callers must not modify the frame.
func (m *DisplayModel) Current() (*image.RGBA, overlay.Panel) {
	if m == nil {
		return nil, overlay.Panel{}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.frame, m.panel
}

// Sequence increments on every Set.
func (m *DisplayModel) Sequence() uint64 {
	if m == nil {
		return 0
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.seq
}
