package presenter

import (
	"image"
	"sync/atomic"
	"time"

	"github.com/soocke/graph-score/domain/scan"
	"github.com/soocke/graph-score/ui/images"
	"github.com/soocke/graph-score/ui/model"
	"github.com/soocke/graph-score/ui/overlay"
)

// FrameView is the UI surface showing the annotated frame and the slice under
// the cursor.
type FrameView interface {
	UpdateFrame(img image.Image)
	UpdateSlice(img image.Image)
}

// DisplayPresenter renders display copies with the metrics panel. Idle frames
// come from the DisplayModel; scan frames are rendered straight from the
// controller's working buffer and optionally paced to MinInterval.
type DisplayPresenter struct {
	model      *model.DisplayModel
	renderer   *overlay.Renderer
	view       FrameView
	sliceWidth int

	// MinInterval drops intermediate scan frames rendered closer together than
	// this. The first and last step are always shown. Zero renders every step.
	MinInterval time.Duration
	Now         func() time.Time

	lastScan time.Time
	rendered atomic.Uint64
	dropped  atomic.Uint64
}

func NewDisplayPresenter(m *model.DisplayModel, r *overlay.Renderer, view FrameView, sliceWidth int) *DisplayPresenter {
	if r == nil {
		r = overlay.NewRenderer(overlay.DefaultWidth)
	}
	return &DisplayPresenter{model: m, renderer: r, view: view, sliceWidth: sliceWidth, Now: time.Now}
}

// Show replaces the idle frame and panel and renders them. The presenter takes
// ownership of frame.
func (p *DisplayPresenter) Show(frame *image.RGBA, panel overlay.Panel) {
	if p == nil {
		return
	}
	p.model.Set(frame, panel)
	p.Refresh()
}

// Refresh re-renders the idle frame with its current panel.
func (p *DisplayPresenter) Refresh() {
	if p == nil || p.view == nil {
		return
	}
	frame, panel := p.model.Current()
	if frame == nil {
		return
	}
	p.view.UpdateFrame(p.renderer.Render(frame, panel))
	p.rendered.Add(1)
}

// ShowScan implements scan.View.
func (p *DisplayPresenter) ShowScan(frame *image.RGBA, sp scan.Panel) {
	if p == nil || p.view == nil || frame == nil {
		return
	}
	now := p.Now()
	edge := sp.Cursor == 0 || sp.Cursor >= sp.TotalSteps-1
	if !edge && p.MinInterval > 0 && !p.lastScan.IsZero() && now.Sub(p.lastScan) < p.MinInterval {
		p.dropped.Add(1)
		return
	}
	p.lastScan = now
	p.view.UpdateFrame(p.renderer.Render(frame, overlay.FromScan(sp)))
	width := sp.SliceWidth
	if width <= 0 {
		width = p.sliceWidth
	}
	if slice, _, err := images.ExtractSlice(frame, sp.Cursor, width); err == nil {
		p.view.UpdateSlice(slice)
	}
	p.rendered.Add(1)
}

// Stats reports rendered and dropped frame counts.
func (p *DisplayPresenter) Stats() (rendered, dropped uint64) {
	if p == nil {
		return 0, 0
	}
	return p.rendered.Load(), p.dropped.Load()
}
