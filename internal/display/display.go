// Package display presents rendered face frames.
package display

import (
	"errors"
	"image"
)

// Display receives every completed frame. Show is called from the engine
// goroutine and must not keep img after returning.
type Display interface {
	Show(img *image.RGBA) error
	Close() error
}

// Multi fans a frame out to several displays. Every display sees the frame
// even if an earlier one fails.
type Multi []Display

func (m Multi) Show(img *image.RGBA) error {
	var errs []error
	for _, d := range m {
		if err := d.Show(img); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) Close() error {
	var errs []error
	for _, d := range m {
		if err := d.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Discard drops frames.
type Discard struct{}

func (Discard) Show(*image.RGBA) error { return nil }
func (Discard) Close() error           { return nil }
