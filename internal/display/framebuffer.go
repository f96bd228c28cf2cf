package display

import (
	"image"
	"image/color"
	"image/draw"

	fb "github.com/gonutz/framebuffer"

	"github.com/rook-computer/clockface/internal/render/layout"
)

// Framebuffer shows frames on a Linux framebuffer device, letterboxed and
// scaled with nearest-neighbour sampling.
type Framebuffer struct {
	dev    *fb.Device
	bounds image.Rectangle
	// lastBox is the letterbox of the previous frame; the border is only
	// cleared when it changes.
	lastBox image.Rectangle
	Logger  interface {
		Infof(string, string, ...interface{})
		Errorf(string, string, ...interface{})
	}
}

// OpenFramebuffer opens path, usually /dev/fb0.
func OpenFramebuffer(path string) (*Framebuffer, error) {
	dev, err := fb.Open(path)
	if err != nil {
		return nil, err
	}
	return &Framebuffer{dev: dev, bounds: dev.Bounds()}, nil
}

// Bounds is the device resolution.
func (f *Framebuffer) Bounds() image.Rectangle { return f.bounds }

func (f *Framebuffer) Show(img *image.RGBA) error {
	if f.dev == nil {
		return nil
	}
	b := img.Bounds()
	box := layout.Letterbox(f.bounds, b.Dx(), b.Dy())
	if box != f.lastBox {
		draw.Draw(f.dev, f.bounds, image.NewUniform(color.Black), image.Point{}, draw.Src)
		f.lastBox = box
		if f.Logger != nil {
			f.Logger.Infof("fb", "frame %dx%d letterboxed to %v", b.Dx(), b.Dy(), box)
		}
	}
	blit(f.dev, box, img)
	return nil
}

func (f *Framebuffer) Close() error {
	if f.dev == nil {
		return nil
	}
	f.dev.Close()
	f.dev = nil
	return nil
}

// blit copies src into rect of dst with nearest-neighbour sampling.
func blit(dst draw.Image, rect image.Rectangle, src *image.RGBA) {
	sb := src.Bounds()
	dw, dh := rect.Dx(), rect.Dy()
	if dw <= 0 || dh <= 0 || sb.Empty() {
		return
	}
	for y := 0; y < dh; y++ {
		sy := sb.Min.Y + (y*sb.Dy())/dh
		for x := 0; x < dw; x++ {
			sx := sb.Min.X + (x*sb.Dx())/dw
			pixel := src.RGBAAt(sx, sy)
			dst.Set(rect.Min.X+x, rect.Min.Y+y, color.RGBA{R: pixel.R, G: pixel.G, B: pixel.B, A: 0xFF})
		}
	}
}
