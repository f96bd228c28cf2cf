// Package geometry computes hand outlines and tick layout for the analog
// face. Everything here is a pure function of its inputs.
package geometry

import (
	"math"

	"github.com/rook-computer/clockface/internal/clock"
)

// Screen-space conventions: +X right, +Y down, 0 degrees points straight up,
// positive angles turn clockwise.

const (
	// HandWidth is the width of the stub and waist of every hand outline.
	HandWidth = 10.0
	// TickLength is the distance from a tick's outer to inner end.
	TickLength = 10.0

	hourRatio   = 0.65
	minuteRatio = 0.85
	secondRatio = 0.90
)

type Point struct{ X, Y float64 }

type Segment struct{ A, B Point }

// HandLengths are derived once per surface size.
type HandLengths struct {
	Radius float64
	Hour   float64
	Minute float64
	Second float64
}

// Center returns the centre of a width x height surface.
func Center(width, height int) Point {
	return Point{X: float64(width) / 2, Y: float64(height) / 2}
}

// LengthsFor sizes the hands from half the shorter surface side. Degenerate
// sizes collapse to zero lengths.
func LengthsFor(width, height int) HandLengths {
	r := float64(min(width, height)) / 2
	if r < 0 || math.IsNaN(r) {
		r = 0
	}
	return HandLengths{
		Radius: r,
		Hour:   r * hourRatio,
		Minute: r * minuteRatio,
		Second: r * secondRatio,
	}
}

// Rotations are clockwise angles in degrees from 12 o'clock.
type Rotations struct {
	Hour   float64
	Minute float64
	Second float64
}

// RotationsFor converts a sample to hand angles. The hour hand advances
// half a degree per elapsed minute, so it sweeps between hour marks.
func RotationsFor(s clock.Sample) Rotations {
	return Rotations{
		Hour:   float64(s.Hour12%12)*30 + float64(s.Minute)/2,
		Minute: float64(s.Minute) * 6,
		Second: s.Second * 6,
	}
}

// Outline returns the closed six-segment silhouette of an upright hand. The
// stub runs across the centre in two halves, the sides rise to a waist at a
// third of the length, and the outline then tapers to the tip.
func Outline(center Point, length, width float64) [6]Segment {
	half := width / 2
	waist := center.Y - length/3
	tip := Point{X: center.X, Y: center.Y - length}
	leftBase := Point{X: center.X - half, Y: center.Y}
	rightBase := Point{X: center.X + half, Y: center.Y}
	leftWaist := Point{X: center.X - half, Y: waist}
	rightWaist := Point{X: center.X + half, Y: waist}
	return [6]Segment{
		{center, rightBase},
		{rightBase, rightWaist},
		{rightWaist, tip},
		{tip, leftWaist},
		{leftWaist, leftBase},
		{leftBase, center},
	}
}

// Rotate turns p clockwise by deg degrees around c.
func Rotate(p, c Point, deg float64) Point {
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	dx, dy := p.X-c.X, p.Y-c.Y
	return Point{
		X: c.X + dx*cos - dy*sin,
		Y: c.Y + dx*sin + dy*cos,
	}
}

// RotateOutline rotates every vertex of o around c.
func RotateOutline(o [6]Segment, c Point, deg float64) [6]Segment {
	for i := range o {
		o[i] = Segment{A: Rotate(o[i].A, c, deg), B: Rotate(o[i].B, c, deg)}
	}
	return o
}

// HandSet holds the rotated outlines of the three hands.
type HandSet struct {
	Hour   [6]Segment
	Minute [6]Segment
	Second [6]Segment
}

// Hands computes rotated outlines for every hand at sample s.
func Hands(center Point, lengths HandLengths, s clock.Sample) HandSet {
	rot := RotationsFor(s)
	return HandSet{
		Hour:   RotateOutline(Outline(center, lengths.Hour, HandWidth), center, rot.Hour),
		Minute: RotateOutline(Outline(center, lengths.Minute, HandWidth), center, rot.Minute),
		Second: RotateOutline(Outline(center, lengths.Second, HandWidth), center, rot.Second),
	}
}

// Points flattens an outline to the start/end pairs a line-list draw takes.
func Points(o [6]Segment) []Point {
	pts := make([]Point, 0, 2*len(o))
	for _, s := range o {
		pts = append(pts, s.A, s.B)
	}
	return pts
}
