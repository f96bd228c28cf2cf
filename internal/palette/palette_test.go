package palette

import (
	"image"
	"image/color"
	"testing"
)

type staticSource struct {
	p  Palette
	ok bool
}

func (s staticSource) Palette() (Palette, bool) { return s.p, s.ok }

func TestStoreKeepsPriorOnMissingPalette(t *testing.T) {
	s := NewStore()
	if s.Current() != Default {
		t.Fatalf("new store should hold the default palette")
	}

	custom := Palette{Hand: Red, Pin: Red, Highlight: White, Shadow: Gray}
	if !s.Apply(staticSource{p: custom, ok: true}) {
		t.Fatal("expected apply to succeed")
	}
	if s.Current() != custom {
		t.Errorf("got %+v", s.Current())
	}

	if s.Apply(staticSource{ok: false}) {
		t.Error("apply without palette should report false")
	}
	if s.Apply(nil) {
		t.Error("nil source should report false")
	}
	if s.Current() != custom {
		t.Errorf("failed apply must keep prior palette, got %+v", s.Current())
	}

	s.Reset()
	if s.Current() != Default {
		t.Error("reset should restore default")
	}
}

func TestStoreForcesOpaque(t *testing.T) {
	s := NewStore()
	s.Apply(staticSource{p: Palette{Hand: color.RGBA{R: 10, A: 10}}, ok: true})
	p := s.Current()
	for _, c := range []color.RGBA{p.Hand, p.Pin, p.Highlight, p.Shadow} {
		if c.A != 0xFF {
			t.Errorf("colour %v is not opaque", c)
		}
	}
}

func fill(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

func TestExtractPicksVibrantAndDarkMuted(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	// Strong blue (vibrant), pale pink (light vibrant), dark slate (dark muted).
	fill(img, image.Rect(0, 0, 40, 14), color.RGBA{R: 0x10, G: 0x40, B: 0xF0, A: 0xFF})
	fill(img, image.Rect(0, 14, 40, 27), color.RGBA{R: 0xFF, G: 0xA0, B: 0xC0, A: 0xFF})
	fill(img, image.Rect(0, 27, 40, 40), color.RGBA{R: 0x30, G: 0x38, B: 0x40, A: 0xFF})

	p, ok := Extract(img).Palette()
	if !ok {
		t.Fatal("expected a palette")
	}
	if p.Highlight.B < 0xC0 || p.Highlight.R > 0x40 {
		t.Errorf("highlight should be the blue swatch, got %v", p.Highlight)
	}
	if p.Hand.R < 0xE0 || p.Hand.G < 0x80 {
		t.Errorf("hand should be the pink swatch, got %v", p.Hand)
	}
	if p.Hand != p.Pin {
		t.Errorf("pin and hand come from the same swatch: %v vs %v", p.Pin, p.Hand)
	}
	if p.Shadow.R > 0x50 || p.Shadow.B > 0x50 {
		t.Errorf("shadow should be the dark slate swatch, got %v", p.Shadow)
	}
}

func TestExtractFallsBackPerSwatch(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	fill(img, img.Bounds(), color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF})

	p, ok := Extract(img).Palette()
	if !ok {
		t.Fatal("expected a palette")
	}
	if p.Highlight != Red || p.Hand != White || p.Pin != Gray {
		t.Errorf("gray image has no vibrant swatches, got %+v", p)
	}
}

func TestExtractEmptyImage(t *testing.T) {
	if _, ok := Extract(nil).Palette(); ok {
		t.Error("nil image should produce no palette")
	}
	if _, ok := Extract(image.NewRGBA(image.Rectangle{})).Palette(); ok {
		t.Error("empty image should produce no palette")
	}
}
