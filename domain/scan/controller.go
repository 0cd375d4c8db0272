package scan

import (
	"image"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/soocke/graph-score/domain/features"
	"github.com/soocke/graph-score/domain/message"
)

// Controller owns the working buffer and cursor of a strip scan.
//
// Each step inverts the slice under the cursor, draws the cursor marker,
// extracts features from the marked slice, emits the four scan messages and
// renders. Restore then undoes the inversion and advances the cursor. It is
// not safe for concurrent use; the scan runs on one control thread.
type Controller struct {
	source    *image.RGBA
	work      *image.RGBA
	extractor Extractor
	sink      Sink
	view      View
	logger    *slog.Logger

	state      State
	geom       Geometry
	cursor     int
	inverted   bool
	markerSave []uint8
	cumulative int
	listeners  []StateListener

	scanID       string
	scanStart    time.Time
	stats        Stats
	extractNanos uint64
}

// NewController copies source into a working buffer. view may be nil.
func NewController(source *image.RGBA, extractor Extractor, sink Sink, view View, logger *slog.Logger) *Controller {
	return &Controller{
		source:    cloneRGBA(source),
		work:      cloneRGBA(source),
		extractor: extractor,
		sink:      sink,
		view:      view,
		logger:    logger,
		state:     StateIdle,
	}
}

// AddListener registers a listener for state transitions.
func (c *Controller) AddListener(l StateListener) { c.listeners = append(c.listeners, l) }

// SetView replaces the render target.
func (c *Controller) SetView(v View) { c.view = v }

func (c *Controller) State() State         { return c.state }
func (c *Controller) Cursor() int          { return c.cursor }
func (c *Controller) Geometry() Geometry   { return c.geom }
func (c *Controller) CumulativeCount() int { return c.cumulative }

// ScanID identifies the current or last scan in logs. Empty before the first scan.
func (c *Controller) ScanID() string { return c.scanID }

// Working returns the live working buffer. Callers must not modify it.
func (c *Controller) Working() *image.RGBA { return c.work }

// Source returns the untouched source image. Callers must not modify it.
func (c *Controller) Source() *image.RGBA { return c.source }

// Stats returns a snapshot of the counters.
func (c *Controller) Stats() Stats {
	s := c.stats
	if s.Steps > 0 {
		s.AvgExtract = time.Duration(c.extractNanos / s.Steps)
	}
	return s
}

// Begin resets the working buffer, captures the cumulative object count of
// the whole source and enters the scanning state.
func (c *Controller) Begin(g Geometry) error {
	if c.state != StateIdle {
		return ErrNotIdle
	}
	b := c.source.Bounds()
	if g.ImageWidth != b.Dx() || g.SliceHeight != b.Dy() {
		return ErrInvalidGeometry
	}
	if g.SliceWidth > g.ImageWidth {
		return ErrSliceTooWide
	}
	copyRGBA(c.work, c.source)
	c.geom = g
	c.cursor = 0
	c.inverted = false
	c.cumulative = c.extractor.Extract(c.source).ObjectCount
	c.scanID = uuid.NewString()
	c.scanStart = time.Now()
	c.stats.Scans++
	if c.logger != nil {
		c.logger.Info("scan started",
			"scan_id", c.scanID,
			"total_steps", g.TotalSteps,
			"step_duration", g.StepDuration,
			"slice_width", g.SliceWidth,
			"total_objects", c.cumulative,
		)
	}
	c.transition(StateScanning)
	return nil
}

// Step runs invert, marker, extract, emit and render for the current cursor.
func (c *Controller) Step() (StepResult, error) {
	if c.state != StateScanning {
		return StepResult{}, ErrNotScanning
	}
	if c.inverted {
		return StepResult{}, ErrStepPending
	}
	rect := c.geom.SliceRect(c.cursor)
	invertRect(c.work, rect)
	c.inverted = true
	c.drawMarker(rect)

	slice := c.work.SubImage(rect).(*image.RGBA)
	start := time.Now()
	m := c.extractor.Extract(slice)
	c.extractNanos += uint64(time.Since(start).Nanoseconds())

	c.emit(m)

	panel := Panel{
		Duration:     c.geom.Duration,
		TotalObjects: c.cumulative,
		Slice:        features.ChannelStats(slice),
		SliceObjects: m.ObjectCount,
		Cursor:       c.cursor,
		SliceWidth:   c.geom.SliceWidth,
		TotalSteps:   c.geom.TotalSteps,
	}
	if c.view != nil {
		c.view.ShowScan(c.work, panel)
	}
	c.stats.Steps++
	return StepResult{Cursor: c.cursor, Rect: rect, Metrics: m, Panel: panel}, nil
}

// Restore undoes the current step's inversion, then advances the cursor. After
// the last slice the controller returns to idle.
func (c *Controller) Restore() error {
	if !c.inverted {
		return ErrNothingToRestore
	}
	c.undoStep()
	if c.cursor >= c.geom.TotalSteps-1 {
		c.finish(true)
		return nil
	}
	c.cursor++
	return nil
}

// Abort restores any inverted slice and returns to idle without finishing.
func (c *Controller) Abort() {
	if c.state != StateScanning {
		return
	}
	if c.inverted {
		c.undoStep()
	}
	c.finish(false)
}

func (c *Controller) undoStep() {
	rect := c.geom.SliceRect(c.cursor)
	c.eraseMarker(rect)
	invertRect(c.work, rect)
	c.inverted = false
}

// drawMarker paints the one pixel cursor row across the top of the slice,
// keeping the covered (already inverted) bytes for eraseMarker.
func (c *Controller) drawMarker(rect image.Rectangle) {
	row := c.work.Pix[c.work.PixOffset(rect.Min.X, rect.Min.Y):c.work.PixOffset(rect.Max.X, rect.Min.Y)]
	c.markerSave = append(c.markerSave[:0], row...)
	for x := rect.Min.X; x < rect.Max.X; x++ {
		c.work.SetRGBA(x, rect.Min.Y, cursorGreen)
	}
}

func (c *Controller) eraseMarker(rect image.Rectangle) {
	row := c.work.Pix[c.work.PixOffset(rect.Min.X, rect.Min.Y):c.work.PixOffset(rect.Max.X, rect.Min.Y)]
	copy(row, c.markerSave)
}

func (c *Controller) emit(m features.Metrics) {
	if c.sink == nil {
		return
	}
	c.sink.Emit(message.PathScanObjectCount, m.ObjectCount)
	c.sink.Emit(message.PathScanMinSize, m.MinSize)
	c.sink.Emit(message.PathScanAvgSize, m.AvgSize)
	c.sink.Emit(message.PathScanMaxSize, m.MaxSize)
	c.stats.Emitted += 4
}

func (c *Controller) finish(completed bool) {
	c.stats.LastScan = time.Since(c.scanStart)
	if completed {
		c.stats.Completed++
	} else {
		c.stats.Cancelled++
	}
	if c.logger != nil {
		c.logger.Info("scan finished",
			"scan_id", c.scanID,
			"completed", completed,
			"cursor", c.cursor,
			"elapsed", c.stats.LastScan,
			"avg_extract", c.Stats().AvgExtract,
		)
	}
	c.transition(StateIdle)
}

func (c *Controller) transition(next State) {
	prev := c.state
	if prev == next {
		return
	}
	c.state = next
	if c.logger != nil {
		c.logger.Debug("scan state transition", "from", prev.String(), "to", next.String())
	}
	for _, l := range c.listeners {
		func() {
			defer recoverLog(c.logger, "scan listener panic")
			l(prev, next)
		}()
	}
}

func recoverLog(logger *slog.Logger, msg string) {
	if r := recover(); r != nil {
		if logger != nil {
			logger.Error(msg, "error", r)
		}
	}
}
