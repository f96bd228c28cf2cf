package render

import "image/color"

// Drawing constants for the face. Sizes are in canvas pixels.
const (
	// DefaultFontSize is the full tick-label size; text sizes derive from it.
	DefaultFontSize = 60.0

	// ShadowRadius is the glow radius for hands, ticks and text.
	ShadowRadius = 60.0

	HandStrokeWidth = 2.0
	TickStrokeWidth = 10.0

	// BatteryLowPercent and below is drawn in red.
	BatteryLowPercent = 40
)

// Alphas used while the device is muted.
const (
	MutedHandAlpha   = 100 // hour and minute
	MutedSecondAlpha = 80  // seconds hand and text
	OpaqueAlpha      = 0xFF
)

var (
	Black      = color.NRGBA{A: 0xFF}
	White      = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	BatteryLow = color.NRGBA{R: 0xFF, A: 0xFF}
)
