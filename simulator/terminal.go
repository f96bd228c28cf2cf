package main

import (
	"image"
	"image/color"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/rook-computer/clockface/internal/render/layout"
)

// halfBlock paints the upper half of a cell in the foreground colour and the
// lower half in the background colour, so each cell carries two pixels.
const halfBlock = '▀'

// terminal is a display that draws frames into a tcell screen. The bottom row
// is kept for a status line.
type terminal struct {
	screen tcell.Screen
	status func() string

	mu sync.Mutex
}

func newTerminal(screen tcell.Screen, status func() string) *terminal {
	return &terminal{screen: screen, status: status}
}

func (t *terminal) Show(img *image.RGBA) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	cols, rows := t.screen.Size()
	faceRows := rows - 1
	if cols <= 0 || faceRows <= 0 {
		return nil
	}

	black := tcell.NewRGBColor(0, 0, 0)
	b := img.Bounds()
	box := layout.Letterbox(image.Rect(0, 0, cols, faceRows*2), b.Dx(), b.Dy())
	for y := 0; y < faceRows; y++ {
		for x := 0; x < cols; x++ {
			top, okTop := samplePixel(img, box, x, 2*y)
			bottom, okBottom := samplePixel(img, box, x, 2*y+1)
			if !okTop && !okBottom {
				t.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault.Background(black))
				continue
			}
			style := tcell.StyleDefault.Foreground(rgb(top)).Background(rgb(bottom))
			t.screen.SetContent(x, y, halfBlock, nil, style)
		}
	}
	t.drawStatus(cols, rows-1)
	t.screen.Show()
	return nil
}

func (t *terminal) drawStatus(cols, row int) {
	text := ""
	if t.status != nil {
		text = t.status()
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	x := 0
	for _, r := range text {
		if x >= cols {
			break
		}
		t.screen.SetContent(x, row, r, nil, style)
		x++
	}
	for ; x < cols; x++ {
		t.screen.SetContent(x, row, ' ', nil, style)
	}
}

func (t *terminal) Close() error { return nil }

// samplePixel maps the half-cell pixel (x, y) through box onto img by
// nearest neighbour. ok is false outside the box; the colour is then black.
func samplePixel(img *image.RGBA, box image.Rectangle, x, y int) (c color.RGBA, ok bool) {
	if !image.Pt(x, y).In(box) {
		return color.RGBA{A: 0xFF}, false
	}
	b := img.Bounds()
	sx := b.Min.X + (x-box.Min.X)*b.Dx()/box.Dx()
	sy := b.Min.Y + (y-box.Min.Y)*b.Dy()/box.Dy()
	return img.RGBAAt(sx, sy), true
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
