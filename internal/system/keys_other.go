//go:build !linux

package system

import "context"

// WatchKeys is a no-op where evdev is unavailable.
func WatchKeys(ctx context.Context, l logger, onKey func(Key)) {
	if l != nil {
		l.Infof("input", "face keys need evdev; not watching")
	}
}
