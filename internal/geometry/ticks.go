package geometry

import (
	"math"
	"strconv"
)

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Tick is one of the twelve hour marks and the label drawn at its inner end.
type Tick struct {
	Index    int // 0..11, 0 at the top
	Label    string
	Inner    Point
	Outer    Point
	Align    Align
	FontSize float64
	// OffsetY moves the label baseline down from Inner.Y.
	OffsetY float64
}

// LabelPos is the label baseline anchor.
func (t Tick) LabelPos() Point { return Point{X: t.Inner.X, Y: t.Inner.Y + t.OffsetY} }

// Ticks lays out the hour marks on a circle of the given radius around
// center. fontSize is the full label size used at 3, 6, 9 and 12.
func Ticks(center Point, radius, fontSize float64) [12]Tick {
	inner := max(radius-TickLength, 0)
	outer := max(radius, 0)

	var ticks [12]Tick
	for i := range ticks {
		rad := float64(i) * math.Pi * 2 / 12
		sin, cos := math.Sincos(rad)
		hour := i
		if hour == 0 {
			hour = 12
		}
		ticks[i] = Tick{
			Index:    i,
			Label:    strconv.Itoa(hour),
			Inner:    Point{X: center.X + sin*inner, Y: center.Y - cos*inner},
			Outer:    Point{X: center.X + sin*outer, Y: center.Y - cos*outer},
			Align:    labelAlign(hour),
			FontSize: labelSize(hour, fontSize),
			OffsetY:  labelOffset(hour, fontSize),
		}
	}
	return ticks
}

// Labels on the right half hang left of their tick, labels on the left half
// hang right, and 12 and 6 sit centred.
func labelAlign(hour int) Align {
	switch {
	case hour == 12 || hour == 6:
		return AlignCenter
	case hour >= 1 && hour <= 5:
		return AlignRight
	default:
		return AlignLeft
	}
}

func labelSize(hour int, fontSize float64) float64 {
	switch hour {
	case 3, 6, 9, 12:
		return fontSize
	}
	return fontSize * 2 / 3
}

// Offsets are truncated to whole pixels.
func labelOffset(hour int, fontSize float64) float64 {
	switch hour {
	case 11, 12, 1, 2:
		return math.Trunc(fontSize * 2 / 3)
	case 3, 9:
		return math.Trunc(fontSize / 3)
	}
	return 0
}
