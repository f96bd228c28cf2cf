package system

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rook-computer/clockface/internal/state"
)

// ErrNoBattery is returned when no power supply reports a capacity.
var ErrNoBattery = errors.New("no battery found")

type BatteryReading struct {
	Percent int
	// Source is the power_supply entry name, e.g. BAT0.
	Source string
}

// ReadBattery reads the first battery under a sysfs power_supply root.
// Supplies whose type is "Battery" win over others that expose a capacity.
func ReadBattery(root string) (BatteryReading, error) {
	paths, err := filepath.Glob(filepath.Join(root, "*", "capacity"))
	if err != nil {
		return BatteryReading{}, err
	}
	sort.Strings(paths)

	var fallback string
	for _, p := range paths {
		dir := filepath.Dir(p)
		typ, _ := os.ReadFile(filepath.Join(dir, "type"))
		if strings.TrimSpace(string(typ)) == "Battery" {
			return readCapacity(p)
		}
		if fallback == "" {
			fallback = p
		}
	}
	if fallback == "" {
		return BatteryReading{}, ErrNoBattery
	}
	return readCapacity(fallback)
}

func readCapacity(path string) (BatteryReading, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return BatteryReading{}, err
	}
	percent, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil {
		return BatteryReading{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return BatteryReading{Percent: percent, Source: filepath.Base(filepath.Dir(path))}, nil
}

// BatteryPoller reads the battery every Interval, stores it in Power and
// calls OnChange when the percentage moves.
type BatteryPoller struct {
	Root     string
	Interval time.Duration
	Power    *state.Power
	OnChange func(percent int)
	Logger   logger

	lastErr string
}

func (p *BatteryPoller) Run(ctx context.Context) {
	if p.Power == nil {
		p.Power = state.GetPower()
	}
	if p.Logger == nil {
		p.Logger = nopLogger{}
	}
	interval := p.Interval
	if interval <= 0 {
		interval = 30 * time.Second
	}

	p.Poll(time.Now())
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			p.Poll(now)
		}
	}
}

// Poll takes one reading.
func (p *BatteryPoller) Poll(now time.Time) {
	if p.Power == nil {
		p.Power = state.GetPower()
	}
	if p.Logger == nil {
		p.Logger = nopLogger{}
	}
	r, err := ReadBattery(p.Root)
	if err != nil {
		// Log each distinct failure once; a desktop without a battery
		// would otherwise log every interval.
		if msg := err.Error(); msg != p.lastErr {
			p.Logger.Errorf("battery", "read failed: %v", err)
			p.lastErr = msg
		}
		r = BatteryReading{Percent: state.UnknownPercent}
	} else {
		p.lastErr = ""
	}
	if p.Power.Set(r.Percent, r.Source, now) && p.OnChange != nil {
		p.Logger.Infof("battery", "level %d%% (%s)", r.Percent, r.Source)
		p.OnChange(p.Power.Snapshot().Percent)
	}
}
