package app

import (
	"context"
	"time"
)

// RunHeadless runs script against the container without a window and logs the
// session summary.
func RunHeadless(ctx context.Context, c *AppContainer, script []Command) error {
	loop := c.Interaction
	loop.Start()
	var err error
	for _, cmd := range script {
		if loop.Done() {
			break
		}
		if err = ctx.Err(); err != nil {
			break
		}
		err = loop.Dispatch(ctx, cmd)
		c.StatePresenter.Tick(time.Now())
		if err != nil {
			break
		}
		loop.Tick()
	}
	c.LogSummary()
	return err
}
