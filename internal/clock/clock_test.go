package clock

import (
	"testing"
	"time"
)

func TestSampleAt(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want Sample
	}{
		{
			name: "midnight is twelve",
			in:   time.Date(2024, 3, 10, 0, 5, 7, 250_000_000, time.UTC),
			want: Sample{Hour24: 0, Hour12: 12, Minute: 5, Second: 7.25, Year: 2024, Month: 3, Day: 10, Weekday: 0},
		},
		{
			name: "afternoon",
			in:   time.Date(2023, 12, 30, 15, 59, 59, 999_000_000, time.UTC),
			want: Sample{Hour24: 15, Hour12: 3, Minute: 59, Second: 59.999, Year: 2023, Month: 12, Day: 30, Weekday: 6},
		},
		{
			name: "noon",
			in:   time.Date(2025, 1, 6, 12, 0, 0, 0, time.UTC),
			want: Sample{Hour24: 12, Hour12: 12, Minute: 0, Second: 0, Year: 2025, Month: 1, Day: 6, Weekday: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SampleAt(tt.in)
			if got.Second-tt.want.Second > 1e-6 || tt.want.Second-got.Second > 1e-6 {
				t.Fatalf("second: got %v want %v", got.Second, tt.want.Second)
			}
			got.Second = tt.want.Second
			if got != tt.want {
				t.Errorf("got %+v want %+v", got, tt.want)
			}
		})
	}
}

func TestSamplerUsesLocation(t *testing.T) {
	fake := NewFake(time.Date(2024, 6, 1, 23, 30, 0, 0, time.UTC))
	tokyo := time.FixedZone("JST", 9*3600)
	s := NewSampler(fake, tokyo, nil)

	got := s.Sample()
	if got.Hour24 != 8 || got.Day != 2 {
		t.Errorf("expected 08:30 on the 2nd, got %02d:%02d on the %d", got.Hour24, got.Minute, got.Day)
	}
}

func TestSamplerReloadKeepsZoneOnError(t *testing.T) {
	fake := NewFake(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	calls := 0
	s := NewSampler(fake, time.UTC, func() (*time.Location, error) {
		calls++
		if calls == 1 {
			return time.FixedZone("X", 3600), nil
		}
		return nil, errTest
	})

	if err := s.Reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if s.Sample().Hour24 != 13 {
		t.Errorf("expected reloaded zone to apply")
	}
	if err := s.Reload(); err == nil {
		t.Fatal("expected error from second reload")
	}
	if s.Sample().Hour24 != 13 {
		t.Errorf("failed reload must keep the previous zone")
	}
}

type testError string

func (e testError) Error() string { return string(e) }

const errTest = testError("boom")

func TestLoadZoneFromTZ(t *testing.T) {
	loc, err := loadZone("UTC", "/nonexistent")
	if err != nil {
		t.Fatalf("loadZone: %v", err)
	}
	if loc.String() != "UTC" {
		t.Errorf("got %s", loc)
	}
	if _, err := loadZone("", "/nonexistent/localtime"); err == nil {
		t.Error("expected error for missing localtime file")
	}
}

func TestFakeAdvanceFiresInOrder(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewFake(start)
	var order []int
	var firedAt []time.Duration
	c.AfterFunc(300*time.Millisecond, func() {
		order = append(order, 2)
		firedAt = append(firedAt, c.Now().Sub(start))
	})
	c.AfterFunc(100*time.Millisecond, func() {
		order = append(order, 1)
		firedAt = append(firedAt, c.Now().Sub(start))
		c.AfterFunc(500*time.Millisecond, func() { order = append(order, 3) })
	})
	stopped := c.AfterFunc(200*time.Millisecond, func() { order = append(order, 99) })
	if !stopped.Stop() {
		t.Fatal("expected Stop to cancel pending timer")
	}

	c.Advance(time.Second)

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Fatalf("unexpected fire order %v", order)
	}
	if firedAt[0] != 100*time.Millisecond || firedAt[1] != 300*time.Millisecond {
		t.Errorf("timers saw wrong Now: %v", firedAt)
	}
	if c.Now().Sub(start) != time.Second {
		t.Errorf("clock should end at target, got %v", c.Now().Sub(start))
	}
	if stopped.Stop() {
		t.Error("second Stop should report false")
	}
}

func TestOffsetClock(t *testing.T) {
	base := NewFake(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	c := NewOffset(base)
	if !c.Now().Equal(base.Now()) {
		t.Fatal("zero shift should report the base time")
	}

	c.AddShift(90 * time.Minute)
	if got := c.Now(); !got.Equal(time.Date(2024, 1, 1, 13, 30, 0, 0, time.UTC)) {
		t.Errorf("shifted now = %v", got)
	}

	want := time.Date(2030, 6, 15, 8, 0, 0, 0, time.UTC)
	c.SetNow(want)
	if !c.Now().Equal(want) {
		t.Errorf("SetNow = %v", c.Now())
	}
	base.Advance(time.Second)
	if !c.Now().Equal(want.Add(time.Second)) {
		t.Error("shifted clock should keep running with its base")
	}

	fired := false
	c.AfterFunc(time.Second, func() { fired = true })
	base.Advance(time.Second)
	if !fired {
		t.Error("timers run on the base clock")
	}
}
