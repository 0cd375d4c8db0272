package scan

import (
	"errors"
	"image"
	"time"

	"github.com/soocke/graph-score/domain/features"
)

// State enumerates the controller states.
type State int

const (
	StateIdle State = iota
	StateScanning
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateScanning:
		return "scanning"
	default:
		return "unknown"
	}
}

var (
	ErrSliceTooWide     = errors.New("scan: slice width exceeds image width")
	ErrInvalidGeometry  = errors.New("scan: invalid geometry")
	ErrNotIdle          = errors.New("scan: controller is not idle")
	ErrNotScanning      = errors.New("scan: controller is not scanning")
	ErrStepPending      = errors.New("scan: previous step not restored")
	ErrNothingToRestore = errors.New("scan: no inverted slice to restore")
)

// StateListener is called on each state transition.
type StateListener func(prev, next State)

// Extractor is the feature extraction capability used per slice.
type Extractor interface {
	Extract(region image.Image) features.Metrics
}

// Sink receives the per-step control messages.
type Sink interface {
	Emit(path string, value any)
}

// View renders a scan frame. frame is the live working buffer: implementations
// must copy it before drawing anything.
type View interface {
	ShowScan(frame *image.RGBA, panel Panel)
}

// Panel is the scan-mode overlay content.
type Panel struct {
	Duration     time.Duration
	TotalObjects int
	Slice        features.PixelStats
	SliceObjects int
	Cursor       int
	SliceWidth   int
	TotalSteps   int
}

// StepResult describes one executed step.
type StepResult struct {
	Cursor  int
	Rect    image.Rectangle
	Metrics features.Metrics
	Panel   Panel
}

// Stats summarises controller activity for instrumentation.
type Stats struct {
	Scans      uint64
	Completed  uint64
	Cancelled  uint64
	Steps      uint64
	Emitted    uint64
	AvgExtract time.Duration
	LastScan   time.Duration
}

// Views fans a scan frame out to several views in order. Nil entries are skipped.
type Views []View

func (vs Views) ShowScan(frame *image.RGBA, panel Panel) {
	for _, v := range vs {
		if v != nil {
			v.ShowScan(frame, panel)
		}
	}
}
