package app

import (
	"context"
	"time"

	"github.com/rook-computer/clockface/internal/clock"
)

// untilNextMinute is the time left until the next whole minute after now.
func untilNextMinute(now time.Time) time.Duration {
	return now.Truncate(time.Minute).Add(time.Minute).Sub(now)
}

// RunMinuteTicks plays the host's once-a-minute time tick: it calls
// NotifyTimeTick on every minute boundary until ctx is done.
func (app *App) RunMinuteTicks(ctx context.Context, c clock.Clock) {
	if c == nil {
		c = app.clock
	}
	fired := make(chan struct{}, 1)
	for {
		t := c.AfterFunc(untilNextMinute(c.Now()), func() {
			select {
			case fired <- struct{}{}:
			default:
			}
		})
		select {
		case <-ctx.Done():
			t.Stop()
			return
		case <-fired:
			app.NotifyTimeTick()
		}
	}
}
