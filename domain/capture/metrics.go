package capture

import (
	"log/slog"
	"sync/atomic"
	"time"
)

// CaptureStats summarises acquisition behaviour for instrumentation.
type CaptureStats struct {
	Captures    uint64
	Failed      uint64
	AvgCapture  time.Duration
	LastCapture time.Time
	Sequence    uint64
}

// Instrumented wraps a Source, numbering frames and keeping timing counters.
type Instrumented struct {
	source       Source
	logger       *slog.Logger
	captures     atomic.Uint64
	failed       atomic.Uint64
	captureNanos atomic.Uint64
	sequence     atomic.Uint64
	lastCapture  atomic.Int64
}

func NewInstrumented(source Source, logger *slog.Logger) *Instrumented {
	return &Instrumented{source: source, logger: logger}
}

func (s *Instrumented) Acquire() (FrameSnapshot, error) {
	start := time.Now()
	snap, err := s.source.Acquire()
	if err != nil {
		s.failed.Add(1)
		if s.logger != nil {
			s.logger.Error("capture frame", "error", err)
		}
		return FrameSnapshot{}, err
	}
	s.captureNanos.Add(uint64(time.Since(start).Nanoseconds()))
	s.captures.Add(1)
	snap.Sequence = s.sequence.Add(1)
	if snap.CapturedAt.IsZero() {
		snap.CapturedAt = time.Now()
	}
	s.lastCapture.Store(snap.CapturedAt.UnixNano())
	if s.logger != nil {
		s.logger.Info("frame acquired",
			"origin", snap.Origin,
			"native", snap.NativeSize,
			"size", snap.Image.Bounds().Size(),
			"elapsed", time.Since(start),
		)
	}
	return snap, nil
}

func (s *Instrumented) Stats() CaptureStats {
	captures := s.captures.Load()
	var avg time.Duration
	if captures > 0 {
		avg = time.Duration(s.captureNanos.Load() / captures)
	}
	var last time.Time
	if ns := s.lastCapture.Load(); ns != 0 {
		last = time.Unix(0, ns)
	}
	return CaptureStats{
		Captures:    captures,
		Failed:      s.failed.Load(),
		AvgCapture:  avg,
		LastCapture: last,
		Sequence:    s.sequence.Load(),
	}
}
