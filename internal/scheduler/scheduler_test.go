package scheduler

import (
	"testing"
	"time"

	"github.com/rook-computer/clockface/internal/clock"
)

var epoch = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

type harness struct {
	clock   *clock.Fake
	sched   *Scheduler
	run     bool
	redraws []time.Time
	// renderCost is added to the clock inside every redraw.
	renderCost time.Duration
}

func newHarness(start time.Time) *harness {
	h := &harness{clock: clock.NewFake(start), run: true}
	h.sched = New(h.clock, nil, func() bool { return h.run }, func() {
		h.redraws = append(h.redraws, h.clock.Now())
		if h.renderCost > 0 {
			h.clock.Advance(h.renderCost)
		}
	})
	return h
}

func TestNextDelay(t *testing.T) {
	tests := []struct {
		offset time.Duration
		want   time.Duration
	}{
		{0, time.Second},
		{1 * time.Millisecond, 999 * time.Millisecond},
		{250 * time.Millisecond, 750 * time.Millisecond},
		{999 * time.Millisecond, 1 * time.Millisecond},
		{999*time.Millisecond + 900*time.Microsecond, 1 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := NextDelay(epoch.Add(tt.offset)); got != tt.want {
			t.Errorf("NextDelay(+%v) = %v want %v", tt.offset, got, tt.want)
		}
	}
}

func TestFiresOnSecondBoundaries(t *testing.T) {
	h := newHarness(epoch.Add(370 * time.Millisecond))
	h.renderCost = 40 * time.Millisecond

	h.sched.Start()
	h.clock.Advance(5 * time.Second)

	if len(h.redraws) != 6 {
		t.Fatalf("expected 6 redraws, got %d", len(h.redraws))
	}
	if !h.redraws[0].Equal(epoch.Add(370 * time.Millisecond)) {
		t.Errorf("first redraw should be immediate, got %v", h.redraws[0].Sub(epoch))
	}
	for k, at := range h.redraws[1:] {
		want := epoch.Add(time.Duration(k+1) * time.Second)
		if !at.Equal(want) {
			t.Errorf("fire %d at %v, want %v", k+1, at.Sub(epoch), want.Sub(epoch))
		}
	}
}

func TestNoDriftUnderRenderLatency(t *testing.T) {
	h := newHarness(epoch)
	h.renderCost = 180 * time.Millisecond

	h.sched.Start()
	h.clock.Advance(0)
	for k := 1; k <= 120; k++ {
		h.clock.Advance(time.Second)
	}

	for k, at := range h.redraws {
		ideal := epoch.Add(time.Duration(k) * time.Second)
		if d := at.Sub(ideal); d < 0 || d > h.renderCost {
			t.Fatalf("fire %d drifted by %v", k, d)
		}
	}
	if len(h.redraws) < 120 {
		t.Errorf("expected at least 120 fires, got %d", len(h.redraws))
	}
}

func TestAtMostOnePendingFire(t *testing.T) {
	h := newHarness(epoch)
	h.sched.Start()
	h.sched.Start()
	h.sched.Update()
	if n := h.clock.Pending(); n != 1 {
		t.Fatalf("pending timers = %d", n)
	}
	h.clock.Advance(2500 * time.Millisecond)
	if n := h.clock.Pending(); n != 1 {
		t.Errorf("pending timers after ticking = %d", n)
	}
	h.sched.Stop()
	h.sched.Start()
	if n := h.clock.Pending(); n != 1 {
		t.Errorf("pending timers after restart = %d", n)
	}
}

func TestStopSuppressesTicks(t *testing.T) {
	h := newHarness(epoch)
	h.sched.Start()
	h.clock.Advance(1500 * time.Millisecond)
	before := len(h.redraws)

	h.sched.Stop()
	h.sched.Stop()
	for i := 0; i < 5; i++ {
		h.sched.OnTick()
	}
	h.clock.Advance(10 * time.Second)

	if len(h.redraws) != before {
		t.Errorf("redraws after stop: %d", len(h.redraws)-before)
	}
	if h.sched.Pending() || h.clock.Pending() != 0 {
		t.Error("stop must leave nothing pending")
	}
}

func TestUpdateFollowsRunCondition(t *testing.T) {
	h := newHarness(epoch)
	h.run = false
	h.sched.Update()
	if h.sched.Running() || h.clock.Pending() != 0 {
		t.Fatal("scheduler must stay stopped when it should not run")
	}

	h.run = true
	h.sched.Update()
	h.clock.Advance(0)
	if len(h.redraws) != 1 {
		t.Fatalf("expected immediate redraw, got %d", len(h.redraws))
	}

	h.run = false
	h.clock.Advance(time.Second)
	if h.sched.Running() || h.sched.Pending() {
		t.Error("tick must not reschedule once the run condition fails")
	}
}

func TestStaleDispatchedFireIsDropped(t *testing.T) {
	c := clock.NewFake(epoch)
	var queued []func()
	redraws := 0
	s := New(c, func(f func()) { queued = append(queued, f) }, func() bool { return true }, func() { redraws++ })

	s.Start()
	c.Advance(0)
	if len(queued) != 1 {
		t.Fatalf("queued = %d", len(queued))
	}
	// The timer already fired into the queue; stopping must still win.
	s.Stop()
	for _, f := range queued {
		f()
	}
	if redraws != 0 {
		t.Errorf("stale fire produced %d redraws", redraws)
	}
}
