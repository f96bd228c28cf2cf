package clock

import "time"

// Clock abstracts wall time and one-shot timers so the scheduler can be
// driven deterministically in tests.
type Clock interface {
	Now() time.Time
	// AfterFunc calls f after d elapses. f may run on another goroutine.
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a pending AfterFunc call.
type Timer interface {
	// Stop reports whether the call was cancelled before it ran.
	Stop() bool
}

// Real is the system clock.
type Real struct{}

func (Real) Now() time.Time { return time.Now() }

func (Real) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }
