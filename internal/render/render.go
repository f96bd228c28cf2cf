package render

import (
	"image/color"

	"github.com/rook-computer/clockface/internal/geometry"
)

type TextAlign int

const (
	TextAlignLeft TextAlign = iota
	TextAlignCenter
	TextAlignRight
)

// alignFor maps a tick layout alignment to a text alignment.
func alignFor(a geometry.Align) TextAlign {
	switch a {
	case geometry.AlignLeft:
		return TextAlignLeft
	case geometry.AlignRight:
		return TextAlignRight
	}
	return TextAlignCenter
}

// TextStyle describes how to render text. The y coordinate passed to
// DrawText is the baseline; Align controls how x is interpreted.
type TextStyle struct {
	Color color.NRGBA
	Size  float64 // pixels; 0 means DefaultFontSize
	Align TextAlign
}

type Cap int

const (
	CapButt Cap = iota
	CapRound
)

// Stroke describes how line segments are drawn.
type Stroke struct {
	Color     color.NRGBA
	Width     float64
	Cap       Cap
	AntiAlias bool
}

// BackgroundPath records which background branch a frame took.
type BackgroundPath int

const (
	BackgroundBlack BackgroundPath = iota
	BackgroundGray
	BackgroundColor
)

func (p BackgroundPath) String() string {
	switch p {
	case BackgroundGray:
		return "gray"
	case BackgroundColor:
		return "color"
	}
	return "black"
}

// FrameInfo summarises what a rendered frame contains.
type FrameInfo struct {
	Background BackgroundPath
	SecondHand bool
	Shadows    bool
	Date       string
	Time       string
	Battery    string
}
