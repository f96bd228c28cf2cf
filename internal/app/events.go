package app

import (
	"image"

	"github.com/rook-computer/clockface/internal/geometry"
	"github.com/rook-computer/clockface/internal/palette"
	"github.com/rook-computer/clockface/internal/render"
)

// The Notify methods are the host's inbound events. They may be called from
// any goroutine; each one is queued and applied on the engine loop.

func (app *App) NotifyVisible(visible bool) {
	app.post(func() { app.applyVisible(visible) })
}

func (app *App) NotifyAmbient(ambient bool) {
	app.post(func() { app.applyAmbient(ambient) })
}

func (app *App) NotifyMuted(muted bool) {
	app.post(func() { app.applyMuted(muted) })
}

func (app *App) applyVisible(visible bool) {
	if !app.mode.SetVisible(visible) {
		return
	}
	app.Logger.Infof("mode", "visible=%v", visible)
	if visible {
		// The zone may have changed while nobody was looking.
		app.reloadZone()
	}
	app.publishMode()
}

func (app *App) applyAmbient(ambient bool) {
	if !app.mode.SetAmbient(ambient) {
		return
	}
	app.Logger.Infof("mode", "ambient=%v", ambient)
	app.publishMode()
}

func (app *App) applyMuted(muted bool) {
	if !app.mode.SetMuted(muted) {
		return
	}
	app.Logger.Infof("mode", "muted=%v", muted)
	app.publishMode()
}

// NotifyCapabilities sets the display capabilities. Once the first frame is
// drawn they are fixed and later calls are ignored.
func (app *App) NotifyCapabilities(lowBitAmbient, burnInProtection bool) {
	app.post(func() {
		before := app.mode.Flags().NeedsGrayLayer()
		if !app.mode.SetCapabilities(lowBitAmbient, burnInProtection) {
			app.Logger.Infof("mode", "capabilities after first frame ignored (lowBit=%v burnIn=%v)", lowBitAmbient, burnInProtection)
			return
		}
		if app.mode.Flags().NeedsGrayLayer() != before {
			app.relayout()
		}
		app.refreshStyle()
		app.requestRedraw()
		app.publishMode()
	})
}

// NotifyResize sets the surface size. Non-positive sizes leave the engine
// without a surface until the next valid resize.
func (app *App) NotifyResize(width, height int) {
	app.post(func() {
		app.lengths = geometry.LengthsFor(width, height)
		if width <= 0 || height <= 0 {
			app.Logger.Errorf("surface", "invalid size %dx%d; not drawing", width, height)
			app.canvas = nil
		} else {
			app.canvas = render.NewCanvas(image.NewRGBA(image.Rect(0, 0, width, height)))
		}
		app.Store.SetSize(max(width, 0), max(height, 0))
		app.relayout()
		app.requestRedraw()
	})
}

func (app *App) NotifyTimezoneChanged() {
	app.post(func() {
		app.reloadZone()
		app.requestRedraw()
	})
}

// NotifyTimeTick is the host's once-a-minute tick. It is what keeps an
// ambient face current.
func (app *App) NotifyTimeTick() {
	app.post(app.requestRedraw)
}

// NotifyBatteryChanged records a battery percentage; -1 means unknown.
func (app *App) NotifyBatteryChanged(percent int) {
	app.post(func() {
		if percent == app.battery {
			return
		}
		app.battery = percent
		app.requestRedraw()
	})
}

// NotifyBackground replaces the background photograph and re-derives the
// palette from it. A nil image clears the background and restores the
// default palette.
func (app *App) NotifyBackground(img image.Image) {
	app.post(func() {
		app.background = img
		if img == nil {
			app.palettes.Reset()
		} else if !app.palettes.Apply(palette.Extract(img)) {
			app.Logger.Infof("palette", "no palette in background; keeping current colours")
		}
		app.relayout()
		app.refreshStyle()
		app.publishPalette()
		app.requestRedraw()
	})
}

func (app *App) reloadZone() {
	if err := app.sampler.Reload(); err != nil {
		app.Logger.Errorf("tz", "reload zone: %v", err)
		return
	}
	app.Store.SetTimezone(app.sampler.Location().String())
}

// ToggleAmbient, ToggleMuted and ToggleVisible flip a flag on the loop, for
// key bindings that have no state of their own.
func (app *App) ToggleAmbient() {
	app.post(func() { app.applyAmbient(!app.mode.Flags().Ambient) })
}

func (app *App) ToggleMuted() {
	app.post(func() { app.applyMuted(!app.mode.Flags().Muted) })
}

func (app *App) ToggleVisible() {
	app.post(func() { app.applyVisible(!app.mode.Flags().Visible) })
}
