package scan

import (
	"context"
	"sync"
	"time"
)

// Scheduler paces the scan. WaitUntil blocks until deadline or ctx is done;
// a deadline already in the past returns immediately.
type Scheduler interface {
	Now() time.Time
	WaitUntil(ctx context.Context, deadline time.Time) error
}

// RealScheduler waits on the wall clock.
type RealScheduler struct{}

func (RealScheduler) Now() time.Time { return time.Now() }

func (RealScheduler) WaitUntil(ctx context.Context, deadline time.Time) error {
	d := time.Until(deadline)
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// VirtualScheduler advances a virtual clock instead of waiting. It records
// every requested wait and is safe for concurrent use.
type VirtualScheduler struct {
	mu    sync.Mutex
	now   time.Time
	waits []time.Duration
	// OnWait, when set, runs before each wait returns (e.g. to inject a cancel).
	OnWait func(n int)
}

// NewVirtualScheduler starts the virtual clock at start.
func NewVirtualScheduler(start time.Time) *VirtualScheduler {
	return &VirtualScheduler{now: start}
}

func (s *VirtualScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

func (s *VirtualScheduler) WaitUntil(ctx context.Context, deadline time.Time) error {
	s.mu.Lock()
	d := deadline.Sub(s.now)
	if d < 0 {
		d = 0
	}
	s.now = s.now.Add(d)
	s.waits = append(s.waits, d)
	n := len(s.waits)
	hook := s.OnWait
	s.mu.Unlock()
	if hook != nil {
		hook(n)
	}
	return ctx.Err()
}

// Advance moves the virtual clock forward, simulating work time.
func (s *VirtualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now = s.now.Add(d)
	s.mu.Unlock()
}

// Waits returns the recorded wait durations.
func (s *VirtualScheduler) Waits() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]time.Duration(nil), s.waits...)
}
