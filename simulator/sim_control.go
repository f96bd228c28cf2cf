package main

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rook-computer/clockface/internal/clock"
	"github.com/rook-computer/clockface/internal/render"
	"github.com/rook-computer/clockface/internal/state"
)

// simFace is the part of the engine the simulator pokes at directly.
type simFace interface {
	NotifyCapabilities(lowBitAmbient, burnInProtection bool)
	NotifyBackground(img image.Image)
	NotifyBatteryChanged(percent int)
	RequestRedraw()
}

// SimControl owns the simulated host: a shiftable wall clock, a fake battery
// and the background image.
type SimControl struct {
	processCtx context.Context
	face       simFace
	clock      *clock.Offset
	power      *state.Power

	// defaultBackground is restored by Reset.
	defaultBackground image.Image

	drainSeq int64
}

const simBatterySource = "simulator"

func NewSimControl(processCtx context.Context, face simFace, c *clock.Offset, power *state.Power, background image.Image) *SimControl {
	if processCtx == nil {
		processCtx = context.Background()
	}
	if c == nil {
		c = clock.NewOffset(nil)
	}
	if power == nil {
		power = state.GetPower()
	}
	return &SimControl{processCtx: processCtx, face: face, clock: c, power: power, defaultBackground: background}
}

// Reset puts the clock back to real time, refills the battery and restores
// the default background.
func (c *SimControl) Reset() {
	atomic.AddInt64(&c.drainSeq, 1)
	c.clock.SetShift(0)
	c.SetBattery(100)
	c.face.NotifyBackground(c.defaultBackground)
	c.face.RequestRedraw()
}

// SetBattery stores percent and tells the face about it.
func (c *SimControl) SetBattery(percent int) int {
	c.power.Set(percent, simBatterySource, c.clock.Now())
	p := c.power.Snapshot().Percent
	c.face.NotifyBatteryChanged(p)
	return p
}

// AdjustBattery moves the battery by delta. Going below zero wraps to a full
// battery, so the key binding can cycle through every colour.
func (c *SimControl) AdjustBattery(delta int) int {
	p := c.power.Snapshot().Percent
	if p == state.UnknownPercent {
		p = 100
	}
	p += delta
	if p < 0 {
		p = 100
	}
	return c.SetBattery(min(p, 100))
}

// ShiftClock moves the simulated wall time by d.
func (c *SimControl) ShiftClock(d time.Duration) time.Duration {
	shift := c.clock.AddShift(d)
	c.face.RequestRedraw()
	return shift
}

// Drain lowers the battery by step every interval until it reaches zero or
// a later Drain or Reset replaces it. A zero step stops draining.
func (c *SimControl) Drain(step int, every time.Duration) {
	seq := atomic.AddInt64(&c.drainSeq, 1)
	if step <= 0 || every <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-c.processCtx.Done():
				return
			case <-ticker.C:
			}
			if atomic.LoadInt64(&c.drainSeq) != seq {
				return
			}
			p := c.power.Snapshot().Percent
			if p == state.UnknownPercent || p == 0 {
				return
			}
			c.SetBattery(max(p-step, 0))
		}
	}()
}

type simTimeResponse struct {
	Now   string `json:"now"`
	Shift string `json:"shift"`
}

func (c *SimControl) timeResponse() simTimeResponse {
	return simTimeResponse{Now: c.clock.Now().Format(time.RFC3339), Shift: c.clock.Shift().String()}
}

const maxBackgroundBytes = 16 << 20

func registerSimEndpoints(mux *http.ServeMux, control *SimControl) {
	mux.HandleFunc("/sim/reset", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		control.Reset()
		writeSimJSON(w, http.StatusOK, control.timeResponse())
	})

	mux.HandleFunc("/sim/time", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeSimJSON(w, http.StatusOK, control.timeResponse())
		case http.MethodPost:
			var req struct {
				At    string `json:"at"`
				Shift string `json:"shift"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeSimError(w, http.StatusBadRequest, "invalid json")
				return
			}
			switch {
			case req.At != "":
				at, err := time.Parse(time.RFC3339, req.At)
				if err != nil {
					writeSimError(w, http.StatusBadRequest, "at must be RFC 3339")
					return
				}
				control.clock.SetNow(at)
				control.face.RequestRedraw()
			case req.Shift != "":
				d, err := time.ParseDuration(req.Shift)
				if err != nil {
					writeSimError(w, http.StatusBadRequest, "shift must be a duration like -1h30m")
					return
				}
				control.ShiftClock(d)
			default:
				writeSimError(w, http.StatusBadRequest, "need at or shift")
				return
			}
			writeSimJSON(w, http.StatusOK, control.timeResponse())
		default:
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	})

	mux.HandleFunc("/sim/capabilities", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		var req struct {
			LowBitAmbient    bool `json:"lowBitAmbient"`
			BurnInProtection bool `json:"burnInProtection"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeSimError(w, http.StatusBadRequest, "invalid json")
			return
		}
		// Ignored by the face once the first frame is out.
		control.face.NotifyCapabilities(req.LowBitAmbient, req.BurnInProtection)
		writeSimJSON(w, http.StatusAccepted, map[string]any{"ok": true})
	})

	mux.HandleFunc("/sim/background", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			img, err := render.DecodeImage(io.LimitReader(r.Body, maxBackgroundBytes))
			if err != nil {
				writeSimError(w, http.StatusBadRequest, fmt.Sprintf("decode image: %v", err))
				return
			}
			control.face.NotifyBackground(img)
			writeSimJSON(w, http.StatusAccepted, map[string]any{"ok": true})
		case http.MethodDelete:
			control.face.NotifyBackground(nil)
			writeSimJSON(w, http.StatusAccepted, map[string]any{"ok": true})
		default:
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	})

	mux.HandleFunc("/sim/battery/drain", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		var req struct {
			Step  int    `json:"step"`
			Every string `json:"every"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeSimError(w, http.StatusBadRequest, "invalid json")
			return
		}
		every := time.Second
		if s := strings.TrimSpace(req.Every); s != "" {
			d, err := time.ParseDuration(s)
			if err != nil || d <= 0 {
				writeSimError(w, http.StatusBadRequest, "every must be a positive duration")
				return
			}
			every = d
		}
		control.Drain(req.Step, every)
		writeSimJSON(w, http.StatusAccepted, map[string]any{"ok": true, "step": req.Step, "every": every.String()})
	})
}

func writeSimJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSimError(w http.ResponseWriter, status int, message string) {
	writeSimJSON(w, status, map[string]any{"error": message})
}
