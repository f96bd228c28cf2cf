package state

import (
	"testing"
	"time"
)

func TestStoreSnapshotIsACopy(t *testing.T) {
	store := NewStore()
	if got := store.Snapshot().Phase; got != BOOTING {
		t.Fatalf("initial phase = %v", got)
	}
	store.UpdateMode(ModeInfo{Visible: true, Muted: true})
	snap := store.Snapshot()
	snap.Mode.Visible = false
	if !store.Snapshot().Mode.Visible {
		t.Error("mutating a snapshot changed the store")
	}
	store.SetPhase(TICKING)
	store.UpdateFrame(FrameInfo{Count: 3, Time: "10:00:00"})
	if s := store.Snapshot(); s.Phase != TICKING || s.Frame.Count != 3 || s.Phase.String() != "ticking" {
		t.Errorf("snapshot = %+v", s)
	}
}

func TestPowerSet(t *testing.T) {
	p := &Power{percent: UnknownPercent}
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if !p.Set(55, "BAT0", now) {
		t.Error("first reading should be a change")
	}
	if p.Set(55, "BAT0", now.Add(time.Minute)) {
		t.Error("same percentage is not a change")
	}
	if p.Set(120, "BAT0", now); p.Snapshot().Percent != 100 {
		t.Errorf("percent = %d, want clamp to 100", p.Snapshot().Percent)
	}
	p.Set(-7, "", now)
	if p.Snapshot().Percent != UnknownPercent {
		t.Error("negative readings mean unknown")
	}
	p.Reset()
	if s := p.Snapshot(); s.Percent != UnknownPercent || s.Source != "" {
		t.Errorf("reset = %+v", s)
	}
}

func TestGetPowerIsShared(t *testing.T) {
	if GetPower() != GetPower() {
		t.Error("GetPower must return one instance")
	}
}
