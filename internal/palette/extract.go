package palette

import (
	"image"
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// maxSamplesPerSide bounds the work done on large photographs.
const maxSamplesPerSide = 96

type target struct {
	minSat, wantSat, maxSat       float64
	minLight, wantLight, maxLight float64
}

var (
	vibrant      = target{minSat: 0.35, wantSat: 1, maxSat: 1, minLight: 0.3, wantLight: 0.5, maxLight: 0.7}
	lightVibrant = target{minSat: 0.35, wantSat: 1, maxSat: 1, minLight: 0.55, wantLight: 0.74, maxLight: 1}
	darkMuted    = target{minSat: 0, wantSat: 0.3, maxSat: 0.4, minLight: 0, wantLight: 0.26, maxLight: 0.45}
)

type swatch struct {
	c          colorful.Color
	h, s, l    float64
	population int
}

// Extractor derives a Palette from an image. It implements Source.
type Extractor struct {
	Image image.Image
}

// Extract returns a Source for img.
func Extract(img image.Image) Extractor { return Extractor{Image: img} }

// Palette picks a vibrant colour for the seconds hand, a light vibrant one for
// the other hands and text, and a dark muted one for the shadow. Swatches the
// image cannot supply fall back to the defaults.
func (e Extractor) Palette() (Palette, bool) {
	if e.Image == nil || e.Image.Bounds().Empty() {
		return Palette{}, false
	}
	swatches := quantize(e.Image)
	if len(swatches) == 0 {
		return Palette{}, false
	}
	return Palette{
		Highlight: pick(swatches, vibrant, Red),
		Hand:      pick(swatches, lightVibrant, White),
		Pin:       pick(swatches, lightVibrant, Gray),
		Shadow:    pick(swatches, darkMuted, Black),
	}, true
}

// quantize buckets sampled pixels to 5 bits per channel and averages each
// bucket.
func quantize(img image.Image) []swatch {
	b := img.Bounds()
	stepX := max(1, b.Dx()/maxSamplesPerSide)
	stepY := max(1, b.Dy()/maxSamplesPerSide)

	type acc struct {
		r, g, b float64
		n       int
	}
	buckets := make(map[uint16]*acc)
	for y := b.Min.Y; y < b.Max.Y; y += stepY {
		for x := b.Min.X; x < b.Max.X; x += stepX {
			c, ok := colorful.MakeColor(img.At(x, y))
			if !ok {
				continue
			}
			r, g, bl := c.RGB255()
			key := uint16(r>>3)<<10 | uint16(g>>3)<<5 | uint16(bl>>3)
			a := buckets[key]
			if a == nil {
				a = &acc{}
				buckets[key] = a
			}
			a.r += c.R
			a.g += c.G
			a.b += c.B
			a.n++
		}
	}

	out := make([]swatch, 0, len(buckets))
	for _, a := range buckets {
		n := float64(a.n)
		c := colorful.Color{R: a.r / n, G: a.g / n, B: a.b / n}
		h, s, l := c.Hsl()
		out = append(out, swatch{c: c, h: h, s: s, l: l, population: a.n})
	}
	return out
}

func pick(swatches []swatch, t target, fallback color.RGBA) color.RGBA {
	maxPop := 0
	for _, sw := range swatches {
		maxPop = max(maxPop, sw.population)
	}
	best := -1.0
	var chosen *swatch
	for i := range swatches {
		sw := &swatches[i]
		if sw.s < t.minSat || sw.s > t.maxSat || sw.l < t.minLight || sw.l > t.maxLight {
			continue
		}
		score := 3*(1-math.Abs(sw.s-t.wantSat)) +
			6*(1-math.Abs(sw.l-t.wantLight)) +
			float64(sw.population)/float64(maxPop)
		if score > best {
			best = score
			chosen = sw
		}
	}
	if chosen == nil {
		return fallback
	}
	r, g, b := chosen.c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}
