package view

import (
	"context"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// TkScheduler paces a scan on the Tk thread. While waiting it keeps processing
// Tk events so frames repaint and Escape can cancel the scan.
type TkScheduler struct {
	// Poll bounds the sleep between event pumps.
	Poll time.Duration
}

func (TkScheduler) Now() time.Time { return time.Now() }

func (s TkScheduler) WaitUntil(ctx context.Context, deadline time.Time) error {
	poll := s.Poll
	if poll <= 0 {
		poll = 2 * time.Millisecond
	}
	for {
		Update()
		if err := ctx.Err(); err != nil {
			return err
		}
		d := time.Until(deadline)
		if d <= 0 {
			return nil
		}
		time.Sleep(min(d, poll))
	}
}
