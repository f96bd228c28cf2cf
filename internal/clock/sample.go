package clock

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Sample holds the calendar fields a frame needs. It is derived fresh for
// every frame and never cached.
type Sample struct {
	Hour24  int     // 0-23
	Hour12  int     // 1-12
	Minute  int     // 0-59
	Second  float64 // 0 to just under 60, fraction included
	Year    int
	Month   int // 1-12
	Day     int
	Weekday int // 0=Sunday .. 6=Saturday
}

// SampleAt converts t, in its own location, to a Sample.
func SampleAt(t time.Time) Sample {
	hour12 := t.Hour() % 12
	if hour12 == 0 {
		hour12 = 12
	}
	return Sample{
		Hour24:  t.Hour(),
		Hour12:  hour12,
		Minute:  t.Minute(),
		Second:  float64(t.Second()) + float64(t.Nanosecond())/1e9,
		Year:    t.Year(),
		Month:   int(t.Month()),
		Day:     t.Day(),
		Weekday: int(t.Weekday()),
	}
}

// ZoneLoader resolves the current local time zone.
type ZoneLoader func() (*time.Location, error)

// Sampler reads the clock in the current local zone.
type Sampler struct {
	clock  Clock
	loc    *time.Location
	loader ZoneLoader
}

// NewSampler returns a Sampler in loc. A nil loader disables Reload.
func NewSampler(c Clock, loc *time.Location, loader ZoneLoader) *Sampler {
	if c == nil {
		c = Real{}
	}
	if loc == nil {
		loc = time.Local
	}
	return &Sampler{clock: c, loc: loc, loader: loader}
}

// Sample returns the current time as a Sample.
func (s *Sampler) Sample() Sample { return SampleAt(s.clock.Now().In(s.loc)) }

func (s *Sampler) Location() *time.Location { return s.loc }

// Reload re-resolves the local zone. On failure the previous zone is kept.
func (s *Sampler) Reload() error {
	if s.loader == nil {
		return nil
	}
	loc, err := s.loader()
	if err != nil {
		return err
	}
	if loc != nil {
		s.loc = loc
	}
	return nil
}

// LoadLocalZone resolves the zone named by TZ, or the one in /etc/localtime.
// time.Local is fixed at process start, so it cannot be used to observe a
// zone change.
func LoadLocalZone() (*time.Location, error) {
	return loadZone(os.Getenv("TZ"), "/etc/localtime")
}

func loadZone(tz, localtimePath string) (*time.Location, error) {
	if tz != "" {
		name := strings.TrimPrefix(tz, ":")
		loc, err := time.LoadLocation(name)
		if err != nil {
			return nil, fmt.Errorf("load zone %q: %w", name, err)
		}
		return loc, nil
	}
	data, err := os.ReadFile(localtimePath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", localtimePath, err)
	}
	loc, err := time.LoadLocationFromTZData("Local", data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", localtimePath, err)
	}
	return loc, nil
}
