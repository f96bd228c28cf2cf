package app

import (
	"context"
	"errors"
	"image"
	"image/color"
	"sync/atomic"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/rook-computer/clockface/internal/clock"
	"github.com/rook-computer/clockface/internal/display"
	"github.com/rook-computer/clockface/internal/geometry"
	"github.com/rook-computer/clockface/internal/mode"
	"github.com/rook-computer/clockface/internal/palette"
	"github.com/rook-computer/clockface/internal/render"
	"github.com/rook-computer/clockface/internal/scheduler"
	"github.com/rook-computer/clockface/internal/state"
)

// eventQueue bounds how many host events may wait for the loop.
const eventQueue = 64

// Options configure an App. Zero values get working defaults.
type Options struct {
	Clock    clock.Clock
	Zone     clock.ZoneLoader
	Display  display.Display
	Store    *state.Store
	Logger   Logger
	Fonts    *render.Fonts
	FontSize float64
	Weekdays render.Weekdays
	Battery  int
}

// App is the face engine. Every event and every scheduler fire runs on the
// goroutine executing Run, so none of the fields below need locking.
type App struct {
	Store   *state.Store
	Display display.Display
	Logger  Logger

	clock    clock.Clock
	mode     *mode.State
	palettes *palette.Store
	sampler  *clock.Sampler
	renderer *render.Renderer
	sched    *scheduler.Scheduler

	canvas     *render.Canvas
	lengths    geometry.HandLengths
	background image.Image
	layers     render.Layers
	style      render.Style
	battery    int

	dirty  bool
	frames int64

	events   chan func()
	done     chan struct{}
	stopOnce atomic.Bool
	exitOnce atomic.Bool
	exitCh   chan error
}

func New(opts Options) *App {
	if opts.Clock == nil {
		opts.Clock = clock.Real{}
	}
	if opts.Display == nil {
		opts.Display = display.Discard{}
	}
	if opts.Store == nil {
		opts.Store = state.NewStore()
	}
	if opts.Logger == nil {
		opts.Logger = NoopLogger{}
	}
	if opts.Fonts == nil {
		opts.Fonts = render.LoadFonts(nil, opts.Logger)
	}
	if opts.Weekdays == (render.Weekdays{}) {
		opts.Weekdays = render.WeekdaysEN
	}

	app := &App{
		Store:    opts.Store,
		Display:  opts.Display,
		Logger:   opts.Logger,
		clock:    opts.Clock,
		palettes: palette.NewStore(),
		renderer: render.NewRenderer(opts.Fonts, opts.FontSize, opts.Weekdays),
		battery:  opts.Battery,
		events:   make(chan func(), eventQueue),
		done:     make(chan struct{}),
		exitCh:   make(chan error, 1),
	}
	var loc *time.Location
	if opts.Zone != nil {
		if l, err := opts.Zone(); err == nil {
			loc = l
		} else {
			app.Logger.Errorf("tz", "initial zone: %v; using local", err)
		}
	}
	app.sampler = clock.NewSampler(opts.Clock, loc, opts.Zone)
	app.mode = mode.New(app)
	app.sched = scheduler.New(opts.Clock, app.post, app.mode.ShouldRun, app.requestRedraw)
	app.refreshStyle()
	app.publishMode()
	app.publishPalette()
	app.Store.SetTimezone(app.sampler.Location().String())
	return app
}

// Exit requests the app to stop running.
func (app *App) Exit(err error) {
	if !app.exitOnce.CompareAndSwap(false, true) {
		return
	}
	select {
	case app.exitCh <- err:
	default:
	}
}

// Run processes events until ctx is done or Exit is called. Events that
// queue up while a batch runs are folded into the same frame.
func (app *App) Run(ctx context.Context) error {
	defer app.shutdown()
	app.Logger.Infof("app", "engine running")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-app.exitCh:
			return err
		case ev := <-app.events:
			ev()
			app.drain()
		}
	}
}

// drain runs every queued event, then renders once if anything asked for it.
func (app *App) drain() {
	for {
		select {
		case ev := <-app.events:
			ev()
			continue
		default:
		}
		break
	}
	if app.dirty {
		app.render()
	}
}

func (app *App) shutdown() {
	if !app.stopOnce.CompareAndSwap(false, true) {
		return
	}
	close(app.done)
	app.sched.Stop()
	app.Store.SetPhase(state.STOPPED)
	app.Logger.Infof("app", "engine stopped after %d frames", app.frames)
}

// post queues f for the loop. After shutdown events are dropped.
func (app *App) post(f func()) {
	select {
	case app.events <- f:
	case <-app.done:
	}
}

// RequestRedraw asks for a frame from any goroutine.
func (app *App) RequestRedraw() { app.post(app.requestRedraw) }

func (app *App) requestRedraw() { app.dirty = true }

// RunStateChanged, StyleChanged and MuteChanged make App the mode listener.
func (app *App) RunStateChanged(run bool) {
	app.sched.Update()
	if run {
		app.Store.SetPhase(state.TICKING)
	} else {
		app.Store.SetPhase(state.IDLE)
	}
}

func (app *App) StyleChanged() {
	app.refreshStyle()
	app.requestRedraw()
}

func (app *App) MuteChanged(muted bool) {
	app.refreshStyle()
	app.requestRedraw()
}

func (app *App) refreshStyle() {
	app.style = render.StyleFor(app.mode.Flags(), app.palettes.Current())
}

// relayout rebuilds everything that depends on the surface size or the
// background. It is the only place bitmaps are scaled.
func (app *App) relayout() {
	if app.canvas == nil {
		app.layers = render.Layers{}
		return
	}
	w, h := app.canvas.Size()
	app.layers = render.PrepareLayers(app.background, w, h, app.mode.Flags().NeedsGrayLayer())
}

func (app *App) render() {
	app.dirty = false
	if app.canvas == nil {
		return
	}
	if !app.mode.Frozen() {
		app.mode.Freeze()
		app.publishMode()
	}
	frame := render.Frame{
		Sample:  app.sampler.Sample(),
		Flags:   app.mode.Flags(),
		Style:   app.style,
		Lengths: app.lengths,
		Layers:  app.layers,
		Battery: app.battery,
	}
	info := app.renderer.Render(app.canvas, frame)
	app.frames++
	if err := app.Display.Show(app.canvas.Image()); err != nil {
		app.Logger.Errorf("display", "show frame %d: %v", app.frames, err)
	}
	app.Store.UpdateFrame(state.FrameInfo{
		Count:      app.frames,
		At:         app.clock.Now(),
		Background: info.Background.String(),
		SecondHand: info.SecondHand,
		Date:       info.Date,
		Time:       info.Time,
		Battery:    info.Battery,
	})
}

func (app *App) publishMode() {
	f := app.mode.Flags()
	app.Store.UpdateMode(state.ModeInfo{
		Visible:          f.Visible,
		Ambient:          f.Ambient,
		Muted:            f.Muted,
		LowBitAmbient:    f.LowBitAmbient,
		BurnInProtection: f.BurnInProtection,
		Frozen:           app.mode.Frozen(),
	})
}

func (app *App) publishPalette() {
	p := app.palettes.Current()
	app.Store.UpdatePalette(state.PaletteInfo{
		Hand:      hex(p.Hand),
		Pin:       hex(p.Pin),
		Highlight: hex(p.Highlight),
		Shadow:    hex(p.Shadow),
	})
}

func hex(c color.RGBA) string {
	cc, ok := colorful.MakeColor(c)
	if !ok {
		return ""
	}
	return cc.Hex()
}

// ErrExitKey is passed to Exit when the exit key is pressed.
var ErrExitKey = errors.New("exit key pressed")
