package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestLoadOptionalMissingFile(t *testing.T) {
	cfg, err := LoadOptional(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Face.Width != 0 {
		t.Errorf("missing file should give an empty config: %+v", cfg)
	}
}

func TestLoadOptionalParses(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	data := `
face:
  width: 320
  font_size: 48
  weekday_locale: ja
  low_bit_ambient: true
device:
  battery_interval: 1m
server:
  listen: ":9000"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadOptional(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Resolve()
	if cfg.Face.Width != 320 || cfg.Face.Height != 320 {
		t.Errorf("size = %dx%d", cfg.Face.Width, cfg.Face.Height)
	}
	if cfg.Face.FontSize != 48 || cfg.Face.WeekdayLocale != "ja" || !cfg.Face.LowBitAmbient {
		t.Errorf("face = %+v", cfg.Face)
	}
	if cfg.Device.BatteryInterval != time.Minute || cfg.Device.TimezoneInterval != DefaultTimezoneInterval {
		t.Errorf("device = %+v", cfg.Device)
	}
	if cfg.Server.ListenAddr != ":9000" {
		t.Errorf("listen = %q", cfg.Server.ListenAddr)
	}
}

func TestLoadOptionalRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("face: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOptional(path); err == nil || !strings.Contains(err.Error(), "failed to parse") {
		t.Errorf("err = %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := &Config{Face: FaceConfig{WeekdayLocale: "ja"}}
	err := cfg.ApplyEnv(envMap(map[string]string{
		EnvListenAddr: ":1234",
		EnvDevMode:    "true",
		EnvBurnIn:     "1",
		EnvLocale:     "",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.ListenAddr != ":1234" || !cfg.Server.DevMode || !cfg.Face.BurnInProtection {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Face.WeekdayLocale != "ja" {
		t.Error("empty variables must not override")
	}

	if err := cfg.ApplyEnv(envMap(map[string]string{EnvLowBit: "maybe"})); err == nil {
		t.Error("non-boolean value should fail")
	}
}

func TestResolveDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.Resolve()
	if cfg.Face.Width != DefaultSize || cfg.Face.Height != DefaultSize || cfg.Face.FontSize != DefaultFontSize {
		t.Errorf("face = %+v", cfg.Face)
	}
	if cfg.Face.WeekdayLocale != DefaultLocale || cfg.Device.Framebuffer != DefaultFramebuffer {
		t.Errorf("cfg = %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Error(err)
	}
	cfg.Face.Width = 100000
	if err := cfg.Validate(); err == nil {
		t.Error("huge faces should be rejected")
	}
}
