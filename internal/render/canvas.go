package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/golang/freetype/raster"
	"golang.org/x/image/font"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"

	"github.com/rook-computer/clockface/internal/geometry"
)

var identity = f64.Aff3{1, 0, 0, 0, 1, 0}

// Canvas draws onto an RGBA image through a saved/restored affine transform.
type Canvas struct {
	img   *image.RGBA
	xform f64.Aff3
	stack []f64.Aff3

	ras   *raster.Rasterizer
	spans []raster.Span
}

func NewCanvas(img *image.RGBA) *Canvas {
	b := img.Bounds()
	return &Canvas{
		img:   img,
		xform: identity,
		ras:   raster.NewRasterizer(b.Dx(), b.Dy()),
	}
}

func (c *Canvas) Image() *image.RGBA { return c.img }

// Size returns the canvas size in pixels.
func (c *Canvas) Size() (width, height int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

// Save pushes the current transform.
func (c *Canvas) Save() { c.stack = append(c.stack, c.xform) }

// Restore pops the most recent transform. Unbalanced calls are ignored.
func (c *Canvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.xform = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

// Depth is the number of unrestored saves.
func (c *Canvas) Depth() int { return len(c.stack) }

// Transform returns the current transform.
func (c *Canvas) Transform() f64.Aff3 { return c.xform }

// Rotate turns later drawing clockwise by deg degrees around (px, py).
func (c *Canvas) Rotate(deg, px, py float64) {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	local := f64.Aff3{
		cos, -sin, px - cos*px + sin*py,
		sin, cos, py - sin*px - cos*py,
	}
	c.xform = mul(c.xform, local)
}

// mul returns m∘n: n is applied first.
func mul(m, n f64.Aff3) f64.Aff3 {
	return f64.Aff3{
		m[0]*n[0] + m[1]*n[3], m[0]*n[1] + m[1]*n[4], m[0]*n[2] + m[1]*n[5] + m[2],
		m[3]*n[0] + m[4]*n[3], m[3]*n[1] + m[4]*n[4], m[3]*n[2] + m[4]*n[5] + m[5],
	}
}

func (c *Canvas) apply(p geometry.Point) geometry.Point {
	m := c.xform
	return geometry.Point{X: m[0]*p.X + m[1]*p.Y + m[2], Y: m[3]*p.X + m[4]*p.Y + m[5]}
}

// Fill paints the whole canvas, ignoring the transform.
func (c *Canvas) Fill(col color.Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

// Clear makes the whole canvas transparent.
func (c *Canvas) Clear() {
	clear(c.img.Pix)
}

// DrawImage composites src with its top-left at the canvas origin.
func (c *Canvas) DrawImage(src image.Image) {
	if src == nil {
		return
	}
	b := c.img.Bounds()
	draw.Draw(c.img, b, src, src.Bounds().Min, draw.Over)
}

// DrawLines strokes each consecutive pair of points as its own segment, the
// way a line-list draw does.
func (c *Canvas) DrawLines(pts []geometry.Point, s Stroke) {
	if s.Width <= 0 || s.Color.A == 0 {
		return
	}
	capper := raster.ButtCapper
	if s.Cap == CapRound {
		capper = raster.RoundCapper
	}
	var painter raster.Painter
	rgba := raster.NewRGBAPainter(c.img)
	rgba.SetColor(s.Color)
	painter = rgba
	if !s.AntiAlias {
		painter = &aliasedPainter{next: rgba, buf: c.spans[:0]}
	}
	width := toFixed(s.Width)

	for i := 0; i+1 < len(pts); i += 2 {
		a, b := c.apply(pts[i]), c.apply(pts[i+1])
		if a == b {
			continue
		}
		var path raster.Path
		path.Start(toPoint(a))
		path.Add1(toPoint(b))

		c.ras.Clear()
		c.ras.UseNonZeroWinding = true
		raster.Stroke(c.ras, path, width, capper, raster.RoundJoiner)
		c.ras.Rasterize(painter)
	}
	if ap, ok := painter.(*aliasedPainter); ok {
		c.spans = ap.buf
	}
}

// DrawText draws text with its baseline at (x, y). Only the anchor point is
// transformed; glyphs are never rotated. It returns the advance width.
func (c *Canvas) DrawText(face font.Face, text string, x, y float64, style TextStyle) float64 {
	if face == nil || text == "" {
		return 0
	}
	d := &font.Drawer{Dst: c.img, Src: image.NewUniform(style.Color), Face: face}
	width := d.MeasureString(text)
	anchor := c.apply(geometry.Point{X: x, Y: y})
	dot := fixed.Point26_6{X: fixed.Int26_6(math.Round(anchor.X * 64)), Y: fixed.Int26_6(math.Round(anchor.Y * 64))}
	switch style.Align {
	case TextAlignCenter:
		dot.X -= width / 2
	case TextAlignRight:
		dot.X -= width
	}
	d.Dot = dot
	d.DrawString(text)
	return float64(width) / 64
}

// MeasureText returns the advance width of text in pixels.
func MeasureText(face font.Face, text string) float64 {
	if face == nil {
		return 0
	}
	return float64(font.MeasureString(face, text)) / 64
}

// aliasedPainter snaps coverage to on/off so strokes have hard edges.
type aliasedPainter struct {
	next raster.Painter
	buf  []raster.Span
}

func (p *aliasedPainter) Paint(ss []raster.Span, done bool) {
	p.buf = p.buf[:0]
	for _, s := range ss {
		if s.Alpha < 0x8000 {
			continue
		}
		s.Alpha = 0xFFFF
		p.buf = append(p.buf, s)
	}
	p.next.Paint(p.buf, done)
}

func toFixed(v float64) fixed.Int26_6 { return fixed.Int26_6(math.Round(v * 64)) }

func toPoint(p geometry.Point) fixed.Point26_6 {
	return fixed.Point26_6{X: toFixed(p.X), Y: toFixed(p.Y)}
}
