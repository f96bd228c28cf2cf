package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/rook-computer/clockface/internal/app"
	"github.com/rook-computer/clockface/internal/assets"
	"github.com/rook-computer/clockface/internal/clock"
	"github.com/rook-computer/clockface/internal/config"
	"github.com/rook-computer/clockface/internal/display"
	"github.com/rook-computer/clockface/internal/render"
	"github.com/rook-computer/clockface/internal/state"
	"github.com/rook-computer/clockface/internal/web"
)

const helpLine = "a ambient  m mute  v visible  b battery-10  +/- hour  r reset  q quit"

func main() {
	cfg, err := config.Load(os.Getenv("CLOCKFACE_CONFIG"))
	if err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = ":8080"
	}

	listenAddr := flag.String("listen", cfg.Server.ListenAddr, "http listen address; also configurable via "+config.EnvListenAddr)
	devMode := flag.Bool("dev", cfg.Server.DevMode, "enable dev mode; also configurable via "+config.EnvDevMode)
	staticDir := flag.String("static-dir", "", "serve static UI from this directory (optional); when empty, the embedded control page is served")
	snapshot := flag.String("snapshot", "", "also write every frame to this PNG file")
	logPath := flag.String("log", "", "write the engine log to this file (the terminal is taken by the face)")
	flag.Parse()

	var logger app.Logger = app.NoopLogger{}
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			fmt.Println("log open error:", err)
			os.Exit(2)
		}
		defer f.Close()
		logger = app.NewFileLogger(f)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Println("terminal error:", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Println("terminal init error:", err)
		os.Exit(1)
	}

	err = run(cfg, screen, logger, simOptions{listen: *listenAddr, devMode: *devMode, staticDir: *staticDir, snapshot: *snapshot})
	screen.Fini()
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Println("simulator stopped:", err)
		os.Exit(1)
	}
}

type simOptions struct {
	listen    string
	devMode   bool
	staticDir string
	snapshot  string
}

func run(cfg *config.Config, screen tcell.Screen, logger app.Logger, opts simOptions) error {
	processCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The simulator always starts on a full battery.
	power := state.GetPower()
	power.Reset()
	power.Set(100, simBatterySource, time.Now())

	simClock := clock.NewOffset(clock.Real{})
	store := state.NewStore()
	term := newTerminal(screen, func() string { return statusLine(store.Snapshot()) })

	latest := display.NewLatest()
	outputs := display.Multi{latest, term}
	if opts.snapshot != "" {
		outputs = append(outputs, display.PNGFile{Path: opts.snapshot})
	}

	weekdays, _ := render.LookupWeekdays(cfg.Face.WeekdayLocale)
	a := app.New(app.Options{
		Clock:    simClock,
		Zone:     clock.LoadLocalZone,
		Display:  outputs,
		Store:    store,
		Logger:   logger,
		Fonts:    render.LoadFonts(assets.FontTTF, logger),
		FontSize: cfg.Face.FontSize,
		Weekdays: weekdays,
		Battery:  power.Snapshot().Percent,
	})

	background := loadBackground(cfg, logger)
	control := NewSimControl(processCtx, a, simClock, power, background)

	a.NotifyCapabilities(cfg.Face.LowBitAmbient, cfg.Face.BurnInProtection)
	a.NotifyResize(cfg.Face.Width, cfg.Face.Height)
	a.NotifyBackground(background)
	a.NotifyVisible(true)

	server := web.NewHTTPServer(opts.listen, web.APIV1Deps{Face: a, State: store, Frames: latest})
	server.StaticDir = opts.staticDir
	server.DevMode = opts.devMode
	server.Logger = logger
	server.ExtraRoutes = func(mux *http.ServeMux) { registerSimEndpoints(mux, control) }
	if err := server.Start(processCtx); err != nil {
		return err
	}
	defer server.Stop()
	logger.Infof("sim", "control page: http://%s/", displayAddr(opts.listen))

	go a.RunMinuteTicks(processCtx, simClock)
	go pollKeys(processCtx, screen, a, control)

	return a.Run(processCtx)
}

// pollKeys feeds terminal events into the face until ctx is done.
func pollKeys(ctx context.Context, screen tcell.Screen, a *app.App, control *SimControl) {
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
				a.RequestRedraw()
			case *tcell.EventKey:
				handleKey(ev, a, control)
			}
		}
	}
}

func handleKey(ev *tcell.EventKey, a *app.App, control *SimControl) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		a.Exit(nil)
		return
	case tcell.KeyRune:
	default:
		return
	}
	switch ev.Rune() {
	case 'q':
		a.Exit(nil)
	case 'a':
		a.ToggleAmbient()
	case 'm':
		a.ToggleMuted()
	case 'v':
		a.ToggleVisible()
	case 'b':
		control.AdjustBattery(-10)
	case '+':
		control.ShiftClock(time.Hour)
	case '-':
		control.ShiftClock(-time.Hour)
	case 'r':
		control.Reset()
	}
}

func statusLine(s state.State) string {
	var flags []string
	for _, f := range []struct {
		on   bool
		name string
	}{
		{s.Mode.Visible, "visible"},
		{s.Mode.Ambient, "ambient"},
		{s.Mode.Muted, "muted"},
	} {
		if f.on {
			flags = append(flags, f.name)
		}
	}
	return fmt.Sprintf("%s [%s] %s %s | %s", s.Phase, strings.Join(flags, ","), s.Frame.Time, s.Frame.Battery, helpLine)
}

func loadBackground(cfg *config.Config, logger app.Logger) image.Image {
	if cfg.Face.Background != "" {
		img, err := render.LoadImage(cfg.Face.Background)
		if err == nil {
			return img
		}
		logger.Errorf("background", "%v; using built-in gradient", err)
	}
	return assets.Background(cfg.Face.Width, cfg.Face.Height)
}

func displayAddr(addr string) string {
	if addr == "" {
		return "127.0.0.1:8080"
	}
	if strings.HasPrefix(addr, ":") {
		return "127.0.0.1" + addr
	}
	return addr
}
