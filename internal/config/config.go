// Package config loads the optional clockface.yaml and environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up when no path is given.
const FileName = "clockface.yaml"

const (
	EnvListenAddr  = "CLOCKFACE_LISTEN"
	EnvDevMode     = "CLOCKFACE_DEV"
	EnvBackground  = "CLOCKFACE_BACKGROUND"
	EnvFont        = "CLOCKFACE_FONT"
	EnvLocale      = "CLOCKFACE_LOCALE"
	EnvLowBit      = "CLOCKFACE_LOW_BIT"
	EnvBurnIn      = "CLOCKFACE_BURN_IN"
	EnvFramebuffer = "CLOCKFACE_FB"
)

// Config is the clockface.yaml layout.
type Config struct {
	Face   FaceConfig   `yaml:"face"`
	Device DeviceConfig `yaml:"device"`
	Server ServerConfig `yaml:"server"`
}

type FaceConfig struct {
	Width  int `yaml:"width,omitempty"`
	Height int `yaml:"height,omitempty"`
	// Background is an image path; empty uses the built-in gradient.
	Background string `yaml:"background,omitempty"`
	// Font is an OpenType or TrueType file; empty uses Go Bold.
	Font          string  `yaml:"font,omitempty"`
	FontSize      float64 `yaml:"font_size,omitempty"`
	WeekdayLocale string  `yaml:"weekday_locale,omitempty"`

	LowBitAmbient    bool `yaml:"low_bit_ambient,omitempty"`
	BurnInProtection bool `yaml:"burn_in_protection,omitempty"`
}

type DeviceConfig struct {
	Framebuffer      string        `yaml:"framebuffer,omitempty"`
	BatteryRoot      string        `yaml:"battery_root,omitempty"`
	BatteryInterval  time.Duration `yaml:"battery_interval,omitempty"`
	TimezoneInterval time.Duration `yaml:"timezone_interval,omitempty"`
	DebugLog         string        `yaml:"debug_log,omitempty"`
}

// ServerConfig contains settings for running the control API.
//
// The intended defaults differ per binary:
// - real device: disabled unless configured
// - simulator:   :8080
type ServerConfig struct {
	ListenAddr string `yaml:"listen,omitempty"`
	DevMode    bool   `yaml:"dev_mode,omitempty"`
}

// Defaults.
const (
	DefaultSize             = 400
	DefaultFontSize         = 60
	DefaultLocale           = "en"
	DefaultFramebuffer      = "/dev/fb0"
	DefaultBatteryRoot      = "/sys/class/power_supply"
	DefaultBatteryInterval  = 30 * time.Second
	DefaultTimezoneInterval = 10 * time.Second
)

// LoadOptional reads the file at path if present. A missing file yields an
// empty Config.
func LoadOptional(path string) (*Config, error) {
	if path == "" {
		path = FileName
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Load reads path, applies environment overrides and fills defaults.
func Load(path string) (*Config, error) {
	cfg, err := LoadOptional(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	cfg.Resolve()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from CLOCKFACE_* variables.
func (cfg *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	boolean := func(key string, dst *bool) error {
		raw, ok := lookup(key)
		if !ok || raw == "" {
			return nil
		}
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%s must be a boolean (got %q): %w", key, raw, err)
		}
		*dst = parsed
		return nil
	}

	str(EnvListenAddr, &cfg.Server.ListenAddr)
	str(EnvBackground, &cfg.Face.Background)
	str(EnvFont, &cfg.Face.Font)
	str(EnvLocale, &cfg.Face.WeekdayLocale)
	str(EnvFramebuffer, &cfg.Device.Framebuffer)
	for key, dst := range map[string]*bool{
		EnvDevMode: &cfg.Server.DevMode,
		EnvLowBit:  &cfg.Face.LowBitAmbient,
		EnvBurnIn:  &cfg.Face.BurnInProtection,
	} {
		if err := boolean(key, dst); err != nil {
			return err
		}
	}
	return nil
}

// Resolve fills unset fields with defaults.
func (cfg *Config) Resolve() {
	if cfg.Face.Width <= 0 {
		cfg.Face.Width = DefaultSize
	}
	if cfg.Face.Height <= 0 {
		cfg.Face.Height = cfg.Face.Width
	}
	if cfg.Face.FontSize <= 0 {
		cfg.Face.FontSize = DefaultFontSize
	}
	cfg.Face.WeekdayLocale = strings.TrimSpace(cfg.Face.WeekdayLocale)
	if cfg.Face.WeekdayLocale == "" {
		cfg.Face.WeekdayLocale = DefaultLocale
	}
	if cfg.Device.Framebuffer == "" {
		cfg.Device.Framebuffer = DefaultFramebuffer
	}
	if cfg.Device.BatteryRoot == "" {
		cfg.Device.BatteryRoot = DefaultBatteryRoot
	}
	if cfg.Device.BatteryInterval <= 0 {
		cfg.Device.BatteryInterval = DefaultBatteryInterval
	}
	if cfg.Device.TimezoneInterval <= 0 {
		cfg.Device.TimezoneInterval = DefaultTimezoneInterval
	}
}

func (cfg *Config) Validate() error {
	if cfg.Face.Width > 8192 || cfg.Face.Height > 8192 {
		return fmt.Errorf("face size %dx%d is too large", cfg.Face.Width, cfg.Face.Height)
	}
	return nil
}
