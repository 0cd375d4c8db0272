// Package overlay draws the metrics panel onto display copies of a frame.
package overlay

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/soocke/graph-score/domain/features"
	"github.com/soocke/graph-score/domain/scan"
)

const (
	DefaultWidth  = 140
	DefaultHeight = 130
	linePitch     = 20
	textInset     = 5
)

// Mode selects the panel's text block.
type Mode int

const (
	ModeFull Mode = iota
	ModeScan
)

// Panel is the content of the metrics box. Full mode uses Contrast, Objects
// and Proximity; scan mode uses TotalObjects, ScanMean, ScanStd, ScanMax and
// ScanObjects.
type Panel struct {
	Mode     Mode
	Duration time.Duration

	Contrast  float64
	Objects   int
	Proximity float64

	TotalObjects int
	ScanMean     float64
	ScanStd      float64
	ScanMax      float64
	ScanObjects  int
}

// Idle is the panel shown before any analysis: zeros except the duration.
func Idle(d time.Duration) Panel { return Panel{Mode: ModeFull, Duration: d} }

// FromMetrics builds a full-frame panel. An undefined proximity shows as 0.
func FromMetrics(d time.Duration, m features.Metrics) Panel {
	p := Panel{Mode: ModeFull, Duration: d, Contrast: m.Contrast, Objects: m.ObjectCount}
	if m.ProximityValid {
		p.Proximity = m.Proximity
	}
	return p
}

// FromScan builds a scan-mode panel from a controller step.
func FromScan(sp scan.Panel) Panel {
	return Panel{
		Mode:         ModeScan,
		Duration:     sp.Duration,
		TotalObjects: sp.TotalObjects,
		ScanMean:     sp.Slice.Mean,
		ScanStd:      sp.Slice.Std,
		ScanMax:      sp.Slice.Max,
		ScanObjects:  sp.SliceObjects,
	}
}

// Lines returns the text block for the panel's mode.
func (p Panel) Lines() []string {
	dur := fmt.Sprintf("Duration: %.1fs", p.Duration.Seconds())
	if p.Mode == ModeScan {
		return []string{
			dur,
			fmt.Sprintf("Total Objects: %d", p.TotalObjects),
			fmt.Sprintf("Scan Mean: %.1f", p.ScanMean),
			fmt.Sprintf("Scan Std: %.1f", p.ScanStd),
			fmt.Sprintf("Scan Max: %.1f", p.ScanMax),
			fmt.Sprintf("Scan Objects: %d", p.ScanObjects),
		}
	}
	return []string{
		dur,
		fmt.Sprintf("Contrast: %.1f", p.Contrast),
		fmt.Sprintf("Objects: %d", p.Objects),
		fmt.Sprintf("Proximity: %.1f", p.Proximity),
	}
}

// Renderer draws an opaque black box anchored bottom-right with white text.
type Renderer struct {
	Width  int
	Height int
	Face   font.Face
}

// NewRenderer returns a renderer for a panel of the given width (<= 0 selects
// the default). The height fits the six line scan block.
func NewRenderer(width int) *Renderer {
	if width <= 0 {
		width = DefaultWidth
	}
	return &Renderer{Width: width, Height: DefaultHeight, Face: basicfont.Face7x13}
}

var defaultRenderer = NewRenderer(DefaultWidth)

// Render draws p onto a copy of frame using the default panel size.
func Render(frame *image.RGBA, p Panel) *image.RGBA { return defaultRenderer.Render(frame, p) }

// Render returns a zero-origin copy of frame with the panel drawn on it.
// frame is never modified.
func (r *Renderer) Render(frame *image.RGBA, p Panel) *image.RGBA {
	if frame == nil {
		return nil
	}
	b := frame.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), frame, b.Min, draw.Src)
	r.Draw(out, p)
	return out
}

// PanelRect is the panel's rectangle within bounds, clipped to them.
func (r *Renderer) PanelRect(bounds image.Rectangle) image.Rectangle {
	return image.Rect(bounds.Max.X-r.Width, bounds.Max.Y-r.Height, bounds.Max.X, bounds.Max.Y).Intersect(bounds)
}

// Draw paints the panel into dst in place.
func (r *Renderer) Draw(dst *image.RGBA, p Panel) {
	rect := r.PanelRect(dst.Bounds())
	if rect.Empty() {
		return
	}
	box := dst.SubImage(rect).(*image.RGBA)
	draw.Draw(box, rect, image.NewUniform(color.RGBA{0, 0, 0, 255}), image.Point{}, draw.Src)

	d := &font.Drawer{Dst: box, Src: image.White, Face: r.Face}
	// the panel is anchored at its nominal origin even when clipped
	x0 := dst.Bounds().Max.X - r.Width + textInset
	y0 := dst.Bounds().Max.Y - r.Height
	for i, line := range p.Lines() {
		d.Dot = fixed.P(x0, y0+linePitch+i*linePitch)
		d.DrawString(line)
	}
}
