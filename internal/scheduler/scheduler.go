// Package scheduler drives the per-second redraw while the face is
// interactive, keeping each fire on a wall-clock second boundary.
package scheduler

import (
	"time"

	"github.com/rook-computer/clockface/internal/clock"
)

// Interval is the interactive redraw cadence.
const Interval = time.Second

// Dispatch runs f on the engine's event loop.
type Dispatch func(f func())

// Scheduler requests a redraw on every second boundary while shouldRun
// holds. Start, Stop and OnTick must be called from the event loop; timer
// callbacks are routed back onto it through dispatch.
type Scheduler struct {
	clock     clock.Clock
	dispatch  Dispatch
	shouldRun func() bool
	redraw    func()

	running bool
	pending clock.Timer
	// gen invalidates fires that were dispatched before being cancelled.
	gen uint64
}

// New returns a stopped Scheduler. A nil dispatch runs fires directly on the
// timer's goroutine.
func New(c clock.Clock, dispatch Dispatch, shouldRun func() bool, redraw func()) *Scheduler {
	if c == nil {
		c = clock.Real{}
	}
	if dispatch == nil {
		dispatch = func(f func()) { f() }
	}
	return &Scheduler{clock: c, dispatch: dispatch, shouldRun: shouldRun, redraw: redraw}
}

// Update starts or stops the timer to match shouldRun.
func (s *Scheduler) Update() {
	if s.shouldRun != nil && s.shouldRun() {
		s.Start()
		return
	}
	s.Stop()
}

// Start begins ticking with an immediate fire. It does nothing while a fire
// is already pending.
func (s *Scheduler) Start() {
	if s.running && s.pending != nil {
		return
	}
	s.cancel()
	s.running = true
	s.arm(0)
}

// Stop cancels any pending fire. An in-flight render is not interrupted.
func (s *Scheduler) Stop() {
	s.cancel()
	s.running = false
}

func (s *Scheduler) Running() bool { return s.running }

// Pending reports whether a fire is scheduled.
func (s *Scheduler) Pending() bool { return s.pending != nil }

// OnTick requests a redraw and schedules the next fire at the following
// second boundary, measured after the redraw so render time never
// accumulates.
func (s *Scheduler) OnTick() {
	if !s.running {
		return
	}
	s.pending = nil
	if s.redraw != nil {
		s.redraw()
	}
	if s.shouldRun != nil && !s.shouldRun() {
		s.running = false
		return
	}
	s.arm(NextDelay(s.clock.Now()))
}

// NextDelay is the time left until the next whole second after now.
func NextDelay(now time.Time) time.Duration {
	ms := now.UnixMilli()
	return time.Duration(int64(Interval/time.Millisecond)-ms%int64(Interval/time.Millisecond)) * time.Millisecond
}

func (s *Scheduler) arm(delay time.Duration) {
	s.gen++
	gen := s.gen
	s.pending = s.clock.AfterFunc(delay, func() {
		s.dispatch(func() {
			if gen != s.gen {
				return
			}
			s.OnTick()
		})
	})
}

func (s *Scheduler) cancel() {
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
	s.gen++
}
