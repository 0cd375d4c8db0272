package presenter

import (
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/soocke/graph-score/domain/scan"
	"github.com/soocke/graph-score/ui/model"
	"github.com/soocke/graph-score/ui/overlay"
)

type mockFrameView struct {
	frames []image.Image
	slices []image.Image
}

func (v *mockFrameView) UpdateFrame(img image.Image) { v.frames = append(v.frames, img) }
func (v *mockFrameView) UpdateSlice(img image.Image) { v.slices = append(v.slices, img) }

type mockStateView struct {
	labels   []string
	editable []bool
}

func (v *mockStateView) SetStateLabel(s string)  { v.labels = append(v.labels, s) }
func (v *mockStateView) SetConfigEditable(b bool) { v.editable = append(v.editable, b) }

type mockSessionView struct {
	scan, total     time.Duration
	scans, analyses int
}

func (v *mockSessionView) SetSession(s, t time.Duration) { v.scan, v.total = s, t }
func (v *mockSessionView) SetCounts(s, a int)            { v.scans, v.analyses = s, a }

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestDisplayPresenter_ShowAndRefresh(t *testing.T) {
	view := &mockFrameView{}
	m := model.NewDisplayModel(nil, overlay.Idle(time.Second))
	p := NewDisplayPresenter(m, nil, view, 10)

	p.Refresh()
	if len(view.frames) != 0 {
		t.Fatalf("refresh without frame should not render")
	}

	frame := solid(300, 200, color.RGBA{50, 50, 50, 255})
	p.Show(frame, overlay.Panel{Objects: 2})
	p.Refresh()
	if len(view.frames) != 2 {
		t.Fatalf("expected 2 renders, got %d", len(view.frames))
	}
	out := view.frames[1].(*image.RGBA)
	if out == frame {
		t.Fatalf("render must draw on a copy")
	}
	if got := frame.RGBAAt(299, 199); got != (color.RGBA{50, 50, 50, 255}) {
		t.Fatalf("idle frame mutated: %v", got)
	}
	if got := out.RGBAAt(299, 199); got != (color.RGBA{0, 0, 0, 255}) {
		t.Fatalf("panel missing in render: %v", got)
	}
}

func TestDisplayPresenter_ScanPacing(t *testing.T) {
	view := &mockFrameView{}
	p := NewDisplayPresenter(model.NewDisplayModel(nil, overlay.Panel{}), nil, view, 5)
	p.MinInterval = 30 * time.Millisecond
	now := time.Unix(0, 0)
	p.Now = func() time.Time { return now }

	frame := solid(40, 10, color.RGBA{1, 2, 3, 255})
	for cursor := 0; cursor < 10; cursor++ {
		p.ShowScan(frame, scan.Panel{Cursor: cursor, TotalSteps: 10})
		now = now.Add(10 * time.Millisecond)
	}
	// cursor 0 at t=0, 3 at t=30, 6 at t=60, then the last step
	rendered, dropped := p.Stats()
	if rendered != 4 || dropped != 6 {
		t.Fatalf("expected 4 rendered / 6 dropped, got %d / %d", rendered, dropped)
	}
	if len(view.slices) != 4 {
		t.Fatalf("expected a slice preview per rendered frame, got %d", len(view.slices))
	}
	if b := view.slices[0].Bounds(); b.Dx() != 5 || b.Dy() != 10 {
		t.Fatalf("unexpected slice preview bounds %v", b)
	}
}

func TestDisplayPresenter_ScanWithoutPacing(t *testing.T) {
	view := &mockFrameView{}
	p := NewDisplayPresenter(model.NewDisplayModel(nil, overlay.Panel{}), nil, view, 5)
	frame := solid(40, 10, color.RGBA{})
	for cursor := 0; cursor < 7; cursor++ {
		p.ShowScan(frame, scan.Panel{Cursor: cursor, TotalSteps: 7})
	}
	if len(view.frames) != 7 {
		t.Fatalf("expected every step rendered, got %d", len(view.frames))
	}

	// the panel's slice width wins over the constructor default
	p.ShowScan(frame, scan.Panel{Cursor: 2, SliceWidth: 12, TotalSteps: 29})
	if b := view.slices[len(view.slices)-1].Bounds(); b.Dx() != 12 {
		t.Fatalf("expected a 12px slice preview, got %v", b)
	}
}

func TestStatePresenter_TickReflectsLatest(t *testing.T) {
	view := &mockStateView{}
	p := NewStatePresenter(view)
	p.Tick(time.Now())
	if len(view.labels) != 1 || view.labels[0] != "State: idle" || !view.editable[0] {
		t.Fatalf("expected initial idle label, got %v %v", view.labels, view.editable)
	}

	p.OnTransition(scan.StateIdle, scan.StateScanning)
	p.Tick(time.Now())
	if view.labels[len(view.labels)-1] != "State: scanning" || view.editable[len(view.editable)-1] {
		t.Fatalf("expected scanning + locked config, got %v %v", view.labels, view.editable)
	}

	// coalesced: scanning -> idle -> scanning within one tick shows no change
	p.OnTransition(scan.StateScanning, scan.StateIdle)
	p.OnTransition(scan.StateIdle, scan.StateScanning)
	before := len(view.labels)
	p.Tick(time.Now())
	if len(view.labels) != before {
		t.Fatalf("expected no update for unchanged state")
	}
}

func TestSessionPresenter_Tick(t *testing.T) {
	sess := model.NewSessionModel()
	view := &mockSessionView{}
	base := time.Unix(0, 0)
	clock := base
	p := NewSessionPresenter(sess, func() time.Time { return clock }, view)

	p.OnTransition(scan.StateIdle, scan.StateScanning)
	p.Tick(base.Add(2 * time.Second))
	clock = base.Add(3 * time.Second)
	p.OnTransition(scan.StateScanning, scan.StateIdle)
	sess.RecordAnalysis()
	p.Tick(base.Add(4 * time.Second))
	if view.scan != 3*time.Second || view.total != 3*time.Second {
		t.Fatalf("unexpected durations %v / %v", view.scan, view.total)
	}
	if view.scans != 1 || view.analyses != 1 {
		t.Fatalf("unexpected counts %d / %d", view.scans, view.analyses)
	}
}

func TestSessionPresenter_CountsScanShorterThanTick(t *testing.T) {
	sess := model.NewSessionModel()
	view := &mockSessionView{}
	base := time.Unix(0, 0)
	clock := base
	p := NewSessionPresenter(sess, func() time.Time { return clock }, view)

	p.Tick(base)
	p.OnTransition(scan.StateIdle, scan.StateScanning)
	clock = base.Add(5 * time.Millisecond)
	p.OnTransition(scan.StateScanning, scan.StateIdle)
	p.Tick(base.Add(30 * time.Millisecond))
	if view.scans != 1 {
		t.Fatalf("expected the short scan counted, got %d", view.scans)
	}
	if view.scan != 5*time.Millisecond {
		t.Fatalf("unexpected scan duration %v", view.scan)
	}

	var nilP *SessionPresenter
	nilP.OnTransition(scan.StateIdle, scan.StateScanning)
	nilP.Tick(base)
}

func TestLoop_TickOrder(t *testing.T) {
	var calls []string
	l := &Loop{
		Idle:     func() { calls = append(calls, "idle") },
		Schedule: func() { calls = append(calls, "schedule") },
	}
	l.Tick()
	if len(calls) != 2 || calls[0] != "idle" || calls[1] != "schedule" {
		t.Fatalf("unexpected call order %v", calls)
	}
	var nilLoop *Loop
	nilLoop.Tick()
}
