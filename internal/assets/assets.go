package assets

import (
	"embed"
	"image"
	"image/color"
	"io/fs"
	"math"

	"golang.org/x/image/font/gofont/gobold"
)

// FontTTF is the default face typeface.
var FontTTF = gobold.TTF

//go:embed web
var webFS embed.FS

// WebUI is an embedded filesystem rooted at internal/assets/web.
// It contains the control page served at '/'.
var WebUI fs.FS

func init() {
	// Embed paths include the leading directory; strip it for serving at '/'.
	sub, err := fs.Sub(webFS, "web")
	if err != nil {
		panic(err)
	}
	WebUI = sub
}

// Background generates the built-in background: a dusk gradient with a soft
// light spot, so palette extraction has distinct swatches to find.
func Background(width, height int) *image.RGBA {
	if width <= 0 || height <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	top := [3]float64{24, 38, 92}
	bottom := [3]float64{196, 84, 64}
	spotX, spotY := float64(width)*0.7, float64(height)*0.3
	spotR := float64(min(width, height)) * 0.35

	for y := 0; y < height; y++ {
		t := float64(y) / float64(max(height-1, 1))
		for x := 0; x < width; x++ {
			var c [3]float64
			for i := range c {
				c[i] = top[i] + (bottom[i]-top[i])*t
			}
			d := math.Hypot(float64(x)-spotX, float64(y)-spotY) / spotR
			if d < 1 {
				glow := (1 - d) * (1 - d)
				c[0] += (250 - c[0]) * glow
				c[1] += (214 - c[1]) * glow
				c[2] += (120 - c[2]) * glow
			}
			img.SetRGBA(x, y, color.RGBA{R: uint8(c[0]), G: uint8(c[1]), B: uint8(c[2]), A: 0xFF})
		}
	}
	return img
}
