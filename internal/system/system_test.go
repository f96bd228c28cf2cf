package system

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rook-computer/clockface/internal/state"
)

func writeSupply(t *testing.T, root, name, typ, capacity string) {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if typ != "" {
		if err := os.WriteFile(filepath.Join(dir, "type"), []byte(typ+"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if capacity != "" {
		if err := os.WriteFile(filepath.Join(dir, "capacity"), []byte(capacity+"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestReadBatteryPrefersBatteryType(t *testing.T) {
	root := t.TempDir()
	writeSupply(t, root, "AC", "Mains", "")
	writeSupply(t, root, "hid-mouse", "Device", "90")
	writeSupply(t, root, "BAT1", "Battery", "37")

	r, err := ReadBattery(root)
	if err != nil {
		t.Fatal(err)
	}
	if r.Percent != 37 || r.Source != "BAT1" {
		t.Errorf("reading = %+v", r)
	}
}

func TestReadBatteryErrors(t *testing.T) {
	if _, err := ReadBattery(t.TempDir()); err != ErrNoBattery {
		t.Errorf("err = %v", err)
	}
	root := t.TempDir()
	writeSupply(t, root, "BAT0", "Battery", "lots")
	if _, err := ReadBattery(root); err == nil {
		t.Error("non-numeric capacity should fail")
	}
}

type countingLogger struct{ errors int }

func (l *countingLogger) Infof(string, string, ...interface{})  {}
func (l *countingLogger) Errorf(string, string, ...interface{}) { l.errors++ }

func TestBatteryPollerNotifiesOnChange(t *testing.T) {
	root := t.TempDir()
	writeSupply(t, root, "BAT0", "Battery", "80")

	var got []int
	log := &countingLogger{}
	p := &BatteryPoller{
		Root:     root,
		Power:    &state.Power{},
		OnChange: func(percent int) { got = append(got, percent) },
		Logger:   log,
	}
	p.Power.Reset()
	now := time.Now()
	p.Poll(now)
	p.Poll(now)
	writeSupply(t, root, "BAT0", "Battery", "79")
	p.Poll(now)

	if len(got) != 2 || got[0] != 80 || got[1] != 79 {
		t.Errorf("changes = %v", got)
	}

	if err := os.RemoveAll(filepath.Join(root, "BAT0")); err != nil {
		t.Fatal(err)
	}
	p.Poll(now)
	p.Poll(now)
	if got[len(got)-1] != state.UnknownPercent {
		t.Errorf("a vanished battery should report unknown, got %v", got)
	}
	if log.errors != 1 {
		t.Errorf("repeated failure logged %d times", log.errors)
	}
}

func TestTimezoneWatcher(t *testing.T) {
	dir := t.TempDir()
	zone := filepath.Join(dir, "localtime")
	if err := os.WriteFile(zone, []byte("zone-a"), 0o644); err != nil {
		t.Fatal(err)
	}
	tz := "Asia/Tokyo"
	changes := 0
	w := &TimezoneWatcher{
		Path:     zone,
		Getenv:   func(string) string { return tz },
		OnChange: func() { changes++ },
	}
	if w.Check() {
		t.Error("first check only records the baseline")
	}
	if w.Check() {
		t.Error("nothing changed")
	}
	tz = "Europe/Berlin"
	if !w.Check() || changes != 1 {
		t.Error("TZ change not detected")
	}
	if err := os.WriteFile(zone, []byte("zone-b-longer"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !w.Check() || changes != 2 {
		t.Error("localtime rewrite not detected")
	}
}

func event(tvSize int, typ, code uint16, value int32) []byte {
	rec := make([]byte, tvSize+8)
	binary.LittleEndian.PutUint16(rec[tvSize:], typ)
	binary.LittleEndian.PutUint16(rec[tvSize+2:], code)
	binary.LittleEndian.PutUint32(rec[tvSize+4:], uint32(value))
	return rec
}

func TestParseKeyPresses(t *testing.T) {
	const tv = 16
	var buf []byte
	buf = append(buf, event(tv, evKey, keyF1, 1)...)
	buf = append(buf, event(tv, evKey, keyF1, 0)...) // release
	buf = append(buf, event(tv, evKey, keyF2, 2)...) // autorepeat
	buf = append(buf, event(tv, 0x00, 0, 0)...)      // EV_SYN
	buf = append(buf, event(tv, evKey, 30, 1)...)    // KEY_A
	buf = append(buf, event(tv, evKey, keyF3, 1)...)
	buf = append(buf, event(tv, evKey, keyF4, 1)...)
	buf = append(buf, 1, 2, 3) // partial record

	got := parseKeyPresses(buf, tv)
	want := []Key{KeyAmbient, KeyVisible, KeyExit}
	if len(got) != len(want) {
		t.Fatalf("keys = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("key %d = %v want %v", i, got[i], want[i])
		}
	}
}
