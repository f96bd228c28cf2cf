package system

import (
	"context"
	"fmt"
	"os"
	"time"
)

// DefaultLocaltime is the system zone file.
const DefaultLocaltime = "/etc/localtime"

// TimezoneWatcher polls TZ and the localtime file and calls OnChange when
// either changes.
type TimezoneWatcher struct {
	Path     string
	Interval time.Duration
	Getenv   func(string) string
	OnChange func()
	Logger   logger

	last string
}

// fingerprint identifies the current zone configuration. A relinked or
// rewritten localtime changes its target or its size and mtime.
func (w *TimezoneWatcher) fingerprint() string {
	getenv := w.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	path := w.Path
	if path == "" {
		path = DefaultLocaltime
	}
	target, _ := os.Readlink(path)
	var size int64
	var mod time.Time
	if st, err := os.Stat(path); err == nil {
		size, mod = st.Size(), st.ModTime()
	}
	return fmt.Sprintf("%s|%s|%d|%d", getenv("TZ"), target, size, mod.UnixNano())
}

// Check compares against the previous fingerprint and reports a change.
// The first call only records the baseline.
func (w *TimezoneWatcher) Check() bool {
	fp := w.fingerprint()
	if w.last == "" {
		w.last = fp
		return false
	}
	if fp == w.last {
		return false
	}
	w.last = fp
	if w.Logger != nil {
		w.Logger.Infof("tz", "timezone configuration changed")
	}
	if w.OnChange != nil {
		w.OnChange()
	}
	return true
}

func (w *TimezoneWatcher) Run(ctx context.Context) {
	interval := w.Interval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	w.Check()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Check()
		}
	}
}
