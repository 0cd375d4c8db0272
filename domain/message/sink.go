package message

import (
	"log/slog"
	"sync"
	"sync/atomic"
)

// Outbound OSC address paths.
const (
	PathObjectCount     = "/image/object_count"
	PathScanObjectCount = "/image/scan_object_count"
	PathScanMinSize     = "/image/scan_min_size"
	PathScanAvgSize     = "/image/scan_avg_size"
	PathScanMaxSize     = "/image/scan_max_size"
)

// Sink accepts fire-and-forget control messages. Emit never blocks on delivery
// and never reports failure to the caller.
type Sink interface {
	Emit(path string, value any)
}

// SinkStats counts emission outcomes.
type SinkStats struct {
	Sent   uint64
	Failed uint64
}

// Message is one recorded emission.
type Message struct {
	Path  string
	Value any
}

// Recorder is an in-memory Sink that keeps every emission in order.
// The zero value is ready to use.
type Recorder struct {
	mu   sync.Mutex
	msgs []Message
}

func (r *Recorder) Emit(path string, value any) {
	r.mu.Lock()
	r.msgs = append(r.msgs, Message{Path: path, Value: value})
	r.mu.Unlock()
}

// Messages returns a copy of the recorded emissions.
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.msgs...)
}

// Reset drops all recorded emissions.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.msgs = nil
	r.mu.Unlock()
}

// LogSink writes every emission to a logger instead of the network.
type LogSink struct {
	Logger *slog.Logger
	sent   atomic.Uint64
}

func (s *LogSink) Emit(path string, value any) {
	s.sent.Add(1)
	if s.Logger != nil {
		s.Logger.Info("osc dry-run", "path", path, "value", value)
	}
}

func (s *LogSink) Stats() SinkStats { return SinkStats{Sent: s.sent.Load()} }
