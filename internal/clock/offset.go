package clock

import (
	"sync/atomic"
	"time"
)

// Offset is a Clock that runs Base shifted by an adjustable amount. Timer
// durations are not affected, only the reported wall time.
type Offset struct {
	Base  Clock
	shift atomic.Int64
}

func NewOffset(base Clock) *Offset {
	if base == nil {
		base = Real{}
	}
	return &Offset{Base: base}
}

func (c *Offset) Now() time.Time { return c.Base.Now().Add(c.Shift()) }

func (c *Offset) AfterFunc(d time.Duration, f func()) Timer { return c.Base.AfterFunc(d, f) }

func (c *Offset) Shift() time.Duration { return time.Duration(c.shift.Load()) }

func (c *Offset) SetShift(d time.Duration) { c.shift.Store(int64(d)) }

// AddShift moves the clock by d and returns the new shift.
func (c *Offset) AddShift(d time.Duration) time.Duration {
	return time.Duration(c.shift.Add(int64(d)))
}

// SetNow shifts the clock so that Now reports t at this instant.
func (c *Offset) SetNow(t time.Time) { c.SetShift(t.Sub(c.Base.Now())) }
