package render

import (
	"image/color"

	"github.com/rook-computer/clockface/internal/mode"
	"github.com/rook-computer/clockface/internal/palette"
)

// Style is the paint configuration for one mode state. It is recomputed on
// visibility, ambient, mute and palette changes and never mutated while
// drawing.
type Style struct {
	Hour   Stroke
	Minute Stroke
	Second Stroke
	Tick   Stroke

	Text color.NRGBA
	// TextAlpha also dims the battery colour and the text shadow.
	TextAlpha uint8

	// Shadows enables the glow behind hands, ticks and labels.
	Shadows     bool
	ShadowColor color.NRGBA
	// TextShadows enables the drop shadow behind the date, time and battery.
	TextShadows bool
}

// StyleFor derives the style for flags and the current palette.
func StyleFor(f mode.Flags, p palette.Palette) Style {
	colors := p
	if f.Ambient {
		colors = palette.Ambient
	}

	handAlpha, secondAlpha, textAlpha := uint8(OpaqueAlpha), uint8(OpaqueAlpha), uint8(OpaqueAlpha)
	if f.Muted {
		handAlpha, secondAlpha, textAlpha = MutedHandAlpha, MutedSecondAlpha, MutedSecondAlpha
	}

	antiAlias := !f.Ambient
	hand := func(c color.RGBA, alpha uint8) Stroke {
		return Stroke{Color: withAlpha(c, alpha), Width: HandStrokeWidth, Cap: CapRound, AntiAlias: antiAlias}
	}
	tickColor := colors.Pin
	if f.Ambient {
		tickColor = palette.White
	}

	return Style{
		Hour:        hand(colors.Pin, handAlpha),
		Minute:      hand(colors.Pin, handAlpha),
		Second:      hand(colors.Highlight, secondAlpha),
		Tick:        Stroke{Color: withAlpha(tickColor, OpaqueAlpha), Width: TickStrokeWidth, Cap: CapButt, AntiAlias: antiAlias},
		Text:        withAlpha(colors.Hand, textAlpha),
		TextAlpha:   textAlpha,
		Shadows:     f.UseShadows(),
		ShadowColor: withAlpha(p.Shadow, OpaqueAlpha),
		TextShadows: !f.UseBlack(),
	}
}

func withAlpha(c color.RGBA, a uint8) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: a}
}

// battery picks the battery text colour, dimmed like the other text.
func (s Style) battery(percent int) color.NRGBA {
	c := White
	if percent >= 0 && percent <= BatteryLowPercent {
		c = BatteryLow
	}
	c.A = s.TextAlpha
	return c
}

// textShadow is the colour of the drop shadow behind text.
func (s Style) textShadow() color.NRGBA {
	c := Black
	c.A = s.TextAlpha
	return c
}

// silhouette repaints every hand, tick and label in the shadow colour for
// the glow layer. Each glow is dimmed as far as the stroke it sits behind.
func (s Style) silhouette() Style {
	out := s
	for _, st := range []*Stroke{&out.Hour, &out.Minute, &out.Second, &out.Tick} {
		st.Color = scaleAlpha(s.ShadowColor, st.Color.A)
		st.AntiAlias = true
	}
	out.Text = scaleAlpha(s.ShadowColor, s.Text.A)
	return out
}

func scaleAlpha(c color.NRGBA, a uint8) color.NRGBA {
	c.A = uint8(uint16(c.A) * uint16(a) / 0xFF)
	return c
}
