package palette

import "image/color"

// Palette holds the semantic colours used for hands, ticks and text.
// Every field is an opaque colour.
type Palette struct {
	Hand      color.RGBA // text and labels
	Pin       color.RGBA // hour/minute hands and ticks
	Highlight color.RGBA // seconds hand
	Shadow    color.RGBA // glow behind hands and ticks
}

var (
	White = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	Gray  = color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xFF}
	Red   = color.RGBA{R: 0xFF, G: 0x00, B: 0x00, A: 0xFF}
	Black = color.RGBA{A: 0xFF}
)

// Default is the palette used until a background has been analysed.
var Default = Palette{Hand: White, Pin: Gray, Highlight: Red, Shadow: Black}

// Ambient is the fixed two-colour scheme for low-power frames.
var Ambient = Palette{Hand: White, Pin: Gray, Highlight: Gray, Shadow: Black}

// Source provides a palette, typically extracted from a background image.
// ok is false when no palette could be produced.
type Source interface {
	Palette() (p Palette, ok bool)
}

// Store holds the current palette. It is only touched from the engine's
// event loop.
type Store struct {
	current Palette
}

func NewStore() *Store { return &Store{current: Default} }

func (s *Store) Current() Palette { return s.current }

// Apply replaces the palette with the one from src. When src is nil or has
// nothing to offer the previous palette stays.
func (s *Store) Apply(src Source) bool {
	if src == nil {
		return false
	}
	p, ok := src.Palette()
	if !ok {
		return false
	}
	s.current = p.opaque()
	return true
}

// Reset restores Default.
func (s *Store) Reset() { s.current = Default }

func (p Palette) opaque() Palette {
	p.Hand.A = 0xFF
	p.Pin.A = 0xFF
	p.Highlight.A = 0xFF
	p.Shadow.A = 0xFF
	return p
}
