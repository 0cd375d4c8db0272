package scan

import (
	"context"
	"time"
)

// Run drives a complete scan: Begin, then for every cursor position Step,
// wait for the step deadline and Restore. Deadlines are anchored at the scan
// start so processing time does not accumulate as drift.
//
// ctx is checked once per step. On cancellation the current slice is restored
// and the controller returns to idle before ctx.Err() is returned.
func Run(ctx context.Context, c *Controller, g Geometry, sched Scheduler) error {
	if err := c.Begin(g); err != nil {
		return err
	}
	start := sched.Now()
	for i := 0; i < g.TotalSteps; i++ {
		if err := ctx.Err(); err != nil {
			c.Abort()
			return err
		}
		if _, err := c.Step(); err != nil {
			c.Abort()
			return err
		}
		deadline := start.Add(time.Duration(i+1) * g.StepDuration)
		if err := sched.WaitUntil(ctx, deadline); err != nil {
			// Abort restores the pending slice; the scan counts as cancelled
			// even when this was the last step
			c.Abort()
			return err
		}
		if err := c.Restore(); err != nil {
			c.Abort()
			return err
		}
	}
	return nil
}
