package render

import (
	"image"
	"image/draw"

	"github.com/disintegration/imaging"
)

// shadowDownscale shrinks the layer before blurring; a wide glow has no
// detail worth blurring at full resolution.
const shadowDownscale = 4

// blurSigma converts a shadow radius to a Gaussian sigma.
func blurSigma(radius float64) float64 { return radius*0.57735 + 0.5 }

// shadowLayer is a transparent scratch canvas whose contents are blurred
// and composited under the real drawing.
type shadowLayer struct {
	img    *image.RGBA
	canvas *Canvas
}

func (l *shadowLayer) reset(width, height int) *Canvas {
	if l.img == nil || l.img.Bounds().Dx() != width || l.img.Bounds().Dy() != height {
		l.img = image.NewRGBA(image.Rect(0, 0, width, height))
		l.canvas = NewCanvas(l.img)
	} else {
		l.canvas.Clear()
	}
	return l.canvas
}

// composite blurs the layer and draws it over dst.
func (l *shadowLayer) composite(dst *Canvas, radius float64) {
	if l.img == nil {
		return
	}
	b := l.img.Bounds()
	w := max(1, b.Dx()/shadowDownscale)
	h := max(1, b.Dy()/shadowDownscale)
	small := imaging.Resize(l.img, w, h, imaging.Box)
	small = imaging.Blur(small, blurSigma(radius)/shadowDownscale)
	glow := imaging.Resize(small, b.Dx(), b.Dy(), imaging.Linear)
	draw.Draw(dst.Image(), dst.Image().Bounds(), glow, glow.Bounds().Min, draw.Over)
}
