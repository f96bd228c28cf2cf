package display

import (
	"errors"
	"image"
	"image/png"
	"io"
	"sync"
)

// ErrNoFrame is returned before the first frame was shown.
var ErrNoFrame = errors.New("no frame rendered yet")

// Latest keeps a copy of the most recent frame for readers on other
// goroutines, such as the control API.
type Latest struct {
	mu    sync.RWMutex
	frame *image.RGBA
}

func NewLatest() *Latest { return &Latest{} }

func (l *Latest) Show(img *image.RGBA) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.frame == nil || l.frame.Bounds() != img.Bounds() {
		l.frame = image.NewRGBA(img.Bounds())
	}
	copy(l.frame.Pix, img.Pix)
	return nil
}

func (l *Latest) Close() error { return nil }

// Frame returns a copy of the latest frame, or nil.
func (l *Latest) Frame() *image.RGBA {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.frame == nil {
		return nil
	}
	out := image.NewRGBA(l.frame.Bounds())
	copy(out.Pix, l.frame.Pix)
	return out
}

// WritePNG encodes the latest frame.
func (l *Latest) WritePNG(w io.Writer) error {
	frame := l.Frame()
	if frame == nil {
		return ErrNoFrame
	}
	return png.Encode(w, frame)
}
