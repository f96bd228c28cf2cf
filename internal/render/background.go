package render

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Layers are the background bitmaps for one surface size. Gray is nil when
// the display cannot show it in ambient.
type Layers struct {
	Color *image.RGBA
	Gray  *image.RGBA
}

// PrepareLayers scales src to the surface width, keeping its aspect ratio,
// and derives the grayscale copy when needGray is set. This is expensive and
// only runs on resize or when the background changes.
func PrepareLayers(src image.Image, width, height int, needGray bool) Layers {
	if src == nil || width <= 0 || height <= 0 || src.Bounds().Empty() {
		return Layers{}
	}
	sb := src.Bounds()
	scale := float64(width) / float64(sb.Dx())
	scaledH := max(1, int(float64(sb.Dy())*scale))

	colorLayer := image.NewRGBA(image.Rect(0, 0, width, scaledH))
	xdraw.ApproxBiLinear.Scale(colorLayer, colorLayer.Bounds(), src, sb, xdraw.Src, nil)

	layers := Layers{Color: colorLayer}
	if needGray {
		gray := imaging.Grayscale(colorLayer)
		grayLayer := image.NewRGBA(colorLayer.Bounds())
		draw.Draw(grayLayer, grayLayer.Bounds(), gray, gray.Bounds().Min, draw.Src)
		layers.Gray = grayLayer
	}
	return layers
}

// DecodeImage decodes a PNG, JPEG, BMP, TIFF or WebP image.
func DecodeImage(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode background: %w", err)
	}
	return img, nil
}

// LoadImage reads and decodes the image at path.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := DecodeImage(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}
