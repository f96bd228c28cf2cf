package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"os"
	"os/signal"
	"syscall"

	"github.com/rook-computer/clockface/internal/app"
	"github.com/rook-computer/clockface/internal/assets"
	"github.com/rook-computer/clockface/internal/clock"
	"github.com/rook-computer/clockface/internal/config"
	"github.com/rook-computer/clockface/internal/display"
	"github.com/rook-computer/clockface/internal/render"
	"github.com/rook-computer/clockface/internal/state"
	"github.com/rook-computer/clockface/internal/system"
	"github.com/rook-computer/clockface/internal/web"
)

// envStdioLog names the file stdout and stderr are redirected to.
const envStdioLog = "CLOCKFACE_STDIO_LOG"

func main() {
	fmt.Println("Clockface starting")

	configPath := flag.String("config", config.FileName, "path to the optional YAML config")
	debug := flag.Bool("debug", false, "enable debug logging (device.debug_log or ./clockface-debug.log)")
	stdioLog := flag.String("stdio-log", "", "redirect stdout+stderr (including panics) to this file; also configurable via "+envStdioLog)
	flag.Parse()

	// The console sits in graphics mode while we run, so crashes are only
	// readable from a file.
	logPath := *stdioLog
	if logPath == "" {
		logPath = os.Getenv(envStdioLog)
	}
	if logPath != "" {
		if err := redirectStdIO(logPath); err != nil {
			fmt.Println("stdio log redirect error:", err)
		}
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}

	var logger app.Logger = app.NoopLogger{}
	if *debug {
		path := cfg.Device.DebugLog
		if path == "" {
			path = "./clockface-debug.log"
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			defer f.Close()
			logger = app.NewFileLogger(f)
			logger.Infof("main", "debug logging enabled")
		} else {
			fmt.Println("debug log open error:", err)
		}
	}

	if err := run(cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Println("clockface stopped:", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger app.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	latest := display.NewLatest()
	outputs := display.Multi{latest}
	if fb, err := display.OpenFramebuffer(cfg.Device.Framebuffer); err != nil {
		logger.Errorf("fb", "%v; running headless", err)
	} else {
		fb.Logger = logger
		outputs = append(outputs, fb)
		restore := system.TakeConsole(logger)
		defer restore()
	}

	weekdays, ok := render.LookupWeekdays(cfg.Face.WeekdayLocale)
	if !ok {
		logger.Errorf("main", "no weekday names for %q; using English", cfg.Face.WeekdayLocale)
	}

	power := state.GetPower()
	a := app.New(app.Options{
		Clock:    clock.Real{},
		Zone:     clock.LoadLocalZone,
		Display:  outputs,
		Logger:   logger,
		Fonts:    render.LoadFonts(loadFont(cfg.Face.Font, logger), logger),
		FontSize: cfg.Face.FontSize,
		Weekdays: weekdays,
		Battery:  power.Snapshot().Percent,
	})

	a.NotifyCapabilities(cfg.Face.LowBitAmbient, cfg.Face.BurnInProtection)
	a.NotifyResize(cfg.Face.Width, cfg.Face.Height)
	a.NotifyBackground(loadBackground(cfg, logger))
	a.NotifyVisible(true)

	battery := &system.BatteryPoller{
		Root:     cfg.Device.BatteryRoot,
		Interval: cfg.Device.BatteryInterval,
		Power:    power,
		OnChange: a.NotifyBatteryChanged,
		Logger:   logger,
	}
	go battery.Run(ctx)

	tz := &system.TimezoneWatcher{
		Path:     system.DefaultLocaltime,
		Interval: cfg.Device.TimezoneInterval,
		OnChange: a.NotifyTimezoneChanged,
		Logger:   logger,
	}
	go tz.Run(ctx)

	go a.RunMinuteTicks(ctx, clock.Real{})

	system.WatchKeys(ctx, logger, func(k system.Key) {
		logger.Infof("keys", "%s pressed", k)
		switch k {
		case system.KeyAmbient:
			a.ToggleAmbient()
		case system.KeyMute:
			a.ToggleMuted()
		case system.KeyVisible:
			a.ToggleVisible()
		case system.KeyExit:
			a.Exit(app.ErrExitKey)
		}
	})

	var server web.Server = web.NoopServer{}
	if cfg.Server.ListenAddr != "" {
		srv := web.NewHTTPServer(cfg.Server.ListenAddr, web.APIV1Deps{Face: a, State: a.Store, Frames: latest})
		srv.DevMode = cfg.Server.DevMode
		srv.Logger = logger
		server = srv
	}
	if err := server.Start(ctx); err != nil {
		logger.Errorf("web", "start: %v", err)
	}
	defer server.Stop()

	err := a.Run(ctx)
	if cerr := outputs.Close(); cerr != nil {
		logger.Errorf("main", "close displays: %v", cerr)
	}
	if errors.Is(err, app.ErrExitKey) {
		return nil
	}
	return err
}

func loadFont(path string, logger app.Logger) []byte {
	if path == "" {
		return assets.FontTTF
	}
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Errorf("font", "%v; using built-in font", err)
		return assets.FontTTF
	}
	return data
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
