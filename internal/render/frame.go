package render

import (
	"image/color"

	"github.com/rook-computer/clockface/internal/clock"
	"github.com/rook-computer/clockface/internal/geometry"
	"github.com/rook-computer/clockface/internal/mode"
)

// Frame is everything one render reads.
type Frame struct {
	Sample  clock.Sample
	Flags   mode.Flags
	Style   Style
	Lengths geometry.HandLengths
	Layers  Layers
	Battery int
}

// Renderer composes face frames. It is used from one goroutine only.
type Renderer struct {
	Fonts    *Fonts
	FontSize float64
	Weekdays Weekdays

	glow     shadowLayer
	textGlow shadowLayer
}

func NewRenderer(fonts *Fonts, fontSize float64, days Weekdays) *Renderer {
	if fontSize <= 0 {
		fontSize = DefaultFontSize
	}
	return &Renderer{Fonts: fonts, FontSize: fontSize, Weekdays: days}
}

// Render draws one complete frame onto c. The canvas transform is saved once
// at the start and restored at the end, and each hand draws inside its own
// save/rotate/restore.
func (r *Renderer) Render(c *Canvas, f Frame) FrameInfo {
	c.Save()
	defer c.Restore()

	w, h := c.Size()
	center := geometry.Center(w, h)
	ticks := geometry.Ticks(center, f.Lengths.Radius, r.FontSize)
	rot := geometry.RotationsFor(f.Sample)
	withSecond := !f.Flags.Ambient

	info := FrameInfo{
		Background: r.drawBackground(c, f),
		SecondHand: withSecond,
		Shadows:    f.Style.Shadows,
		Date:       FormatDate(f.Sample, r.Weekdays),
		Time:       FormatTime(f.Sample, f.Flags.Ambient),
		Battery:    FormatBattery(f.Battery),
	}

	if f.Style.Shadows {
		glow := r.glow.reset(w, h)
		shadow := f.Style.silhouette()
		r.drawDial(glow, ticks, shadow)
		r.drawHands(glow, center, f.Lengths, rot, shadow, withSecond)
		r.glow.composite(c, ShadowRadius)
	}
	r.drawDial(c, ticks, f.Style)
	r.drawHands(c, center, f.Lengths, rot, f.Style, withSecond)
	r.drawText(c, center, f, info)
	return info
}

func (r *Renderer) drawBackground(c *Canvas, f Frame) BackgroundPath {
	c.Fill(Black)
	switch {
	case f.Flags.UseBlack():
		return BackgroundBlack
	case f.Flags.Ambient:
		if f.Layers.Gray == nil {
			return BackgroundBlack
		}
		c.DrawImage(f.Layers.Gray)
		return BackgroundGray
	default:
		if f.Layers.Color == nil {
			return BackgroundBlack
		}
		c.DrawImage(f.Layers.Color)
		return BackgroundColor
	}
}

func (r *Renderer) drawDial(c *Canvas, ticks [12]geometry.Tick, s Style) {
	for _, t := range ticks {
		c.DrawLines([]geometry.Point{t.Inner, t.Outer}, s.Tick)
		pos := t.LabelPos()
		c.DrawText(r.Fonts.Face(t.FontSize), t.Label, pos.X, pos.Y, TextStyle{
			Color: s.Text,
			Size:  t.FontSize,
			Align: alignFor(t.Align),
		})
	}
}

func (r *Renderer) drawHands(c *Canvas, center geometry.Point, l geometry.HandLengths, rot geometry.Rotations, s Style, withSecond bool) {
	r.drawHand(c, center, l.Hour, rot.Hour, s.Hour)
	r.drawHand(c, center, l.Minute, rot.Minute, s.Minute)
	if withSecond {
		r.drawHand(c, center, l.Second, rot.Second, s.Second)
	}
}

func (r *Renderer) drawHand(c *Canvas, center geometry.Point, length, deg float64, s Stroke) {
	c.Save()
	c.Rotate(deg, center.X, center.Y)
	c.DrawLines(geometry.Points(geometry.Outline(center, length, geometry.HandWidth)), s)
	c.Restore()
}

// Text sizes relative to the label font size.
const (
	dateScale    = 0.5 * 1.1
	timeScale    = 1.1
	batteryScale = 0.5
	// textShadowOffset is the drop-shadow offset for time and battery.
	textShadowOffset = 5
)

type textItem struct {
	text    string
	x, y    float64
	size    float64
	align   TextAlign
	color   color.NRGBA
	shadowD float64
}

func (r *Renderer) drawText(c *Canvas, center geometry.Point, f Frame, info FrameInfo) {
	fs := r.FontSize
	dateSize := fs * dateScale
	timeSize := fs * timeScale
	batterySize := fs * batteryScale

	// The time is left-aligned from where a full HH:MM:SS would start, so
	// neither ticking digits nor the blank ambient seconds move it.
	timeLeft := center.X - MeasureText(r.Fonts.Face(timeSize), timeTemplate)/2

	items := []textItem{
		{text: info.Date, x: center.X, y: center.Y - dateSize, size: dateSize, align: TextAlignCenter, color: f.Style.Text},
		{text: info.Time, x: timeLeft, y: center.Y + fs, size: timeSize, align: TextAlignLeft, color: f.Style.Text, shadowD: textShadowOffset},
		{text: info.Battery, x: center.X, y: center.Y + 2*fs, size: batterySize, align: TextAlignCenter, color: f.Style.battery(f.Battery), shadowD: textShadowOffset},
	}

	if f.Style.TextShadows {
		w, h := c.Size()
		glow := r.textGlow.reset(w, h)
		for _, it := range items {
			glow.DrawText(r.Fonts.Face(it.size), it.text, it.x+it.shadowD, it.y+it.shadowD, TextStyle{Color: f.Style.textShadow(), Size: it.size, Align: it.align})
		}
		r.textGlow.composite(c, ShadowRadius)
	}
	for _, it := range items {
		c.DrawText(r.Fonts.Face(it.size), it.text, it.x, it.y, TextStyle{Color: it.color, Size: it.size, Align: it.align})
	}
}
