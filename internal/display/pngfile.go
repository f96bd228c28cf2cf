package display

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// PNGFile writes each frame to Path, replacing the previous one atomically.
type PNGFile struct {
	Path string
}

func (p PNGFile) Show(img *image.RGBA) error {
	tmp, err := os.CreateTemp(filepath.Dir(p.Path), ".frame-*.png")
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())
	if err := png.Encode(tmp, img); err != nil {
		tmp.Close()
		return fmt.Errorf("snapshot encode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), p.Path); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	return nil
}

func (PNGFile) Close() error { return nil }
