//go:build linux

package system

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// WatchKeys watches Linux evdev devices under /dev/input/event* and calls
// onKey for every F1-F4 press until ctx is done. onKey runs on reader
// goroutines.
//
// It is best-effort: if no input devices are available, it logs and returns.
func WatchKeys(ctx context.Context, l logger, onKey func(Key)) {
	if onKey == nil {
		return
	}
	if l == nil {
		l = nopLogger{}
	}

	// input_event = timeval + u16 type + u16 code + s32 value.
	tvSize := int(binary.Size(unix.Timeval{}))

	paths, err := filepath.Glob("/dev/input/event*")
	if err != nil || len(paths) == 0 {
		l.Infof("input", "no evdev devices found for face keys")
		return
	}

	for _, path := range paths {
		go readKeys(ctx, path, tvSize, l, onKey)
	}
}

func readKeys(ctx context.Context, path string, tvSize int, l logger, onKey func(Key)) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return
	}
	f := os.NewFile(uintptr(fd), path)
	defer func() {
		_ = f.Close()
	}()

	buf := make([]byte, 4096)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		pollFds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		if _, err := unix.Poll(pollFds, 250); err != nil {
			if err == unix.EINTR {
				continue
			}
			// Device might have gone away.
			return
		}
		if pollFds[0].Revents&unix.POLLIN == 0 {
			continue
		}

		n, err := unix.Read(fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			return
		}
		for _, k := range parseKeyPresses(buf[:n], tvSize) {
			l.Infof("input", "%s key pressed on %s", k, path)
			onKey(k)
			if k == KeyExit {
				return
			}
		}
	}
}
