package render

import (
	"testing"

	"github.com/rook-computer/clockface/internal/clock"
	"github.com/rook-computer/clockface/internal/mode"
	"github.com/rook-computer/clockface/internal/palette"
)

func TestStyleInteractiveUsesPalette(t *testing.T) {
	p := palette.Palette{Hand: palette.Red, Pin: green, Highlight: palette.White, Shadow: palette.Gray}
	s := StyleFor(mode.Flags{Visible: true}, p)

	if s.Hour.Color != withAlpha(green, 0xFF) || s.Tick.Color != withAlpha(green, 0xFF) {
		t.Errorf("hour/tick should use the pin colour: %v %v", s.Hour.Color, s.Tick.Color)
	}
	if s.Second.Color != withAlpha(palette.White, 0xFF) {
		t.Errorf("second = %v", s.Second.Color)
	}
	if s.Text != withAlpha(palette.Red, 0xFF) {
		t.Errorf("text = %v", s.Text)
	}
	if !s.Shadows || !s.Hour.AntiAlias || !s.Tick.AntiAlias {
		t.Error("interactive style needs shadows and anti-aliasing")
	}
	if s.ShadowColor != withAlpha(palette.Gray, 0xFF) {
		t.Errorf("shadow = %v", s.ShadowColor)
	}
}

func TestStyleAmbientIsMonochrome(t *testing.T) {
	p := palette.Palette{Hand: palette.Red, Pin: green, Highlight: green, Shadow: palette.Gray}
	s := StyleFor(mode.Flags{Visible: true, Ambient: true}, p)

	for name, st := range map[string]Stroke{"hour": s.Hour, "minute": s.Minute, "second": s.Second} {
		if st.Color != withAlpha(palette.Gray, 0xFF) {
			t.Errorf("%s = %v, want gray", name, st.Color)
		}
		if st.AntiAlias {
			t.Errorf("%s must not be anti-aliased in ambient", name)
		}
	}
	if s.Tick.Color != White {
		t.Errorf("tick = %v, want white", s.Tick.Color)
	}
	if s.Shadows {
		t.Error("ambient strips hand and tick shadows")
	}
	if !s.TextShadows {
		t.Error("plain ambient keeps text shadows")
	}
	if lowBit := StyleFor(mode.Flags{Ambient: true, LowBitAmbient: true}, p); lowBit.TextShadows {
		t.Error("low-bit ambient cannot blend text shadows")
	}
}

func TestStyleMuted(t *testing.T) {
	s := StyleFor(mode.Flags{Visible: true, Muted: true}, palette.Default)
	if s.Hour.Color.A != MutedHandAlpha || s.Minute.Color.A != MutedHandAlpha {
		t.Errorf("hour/minute alpha = %d/%d", s.Hour.Color.A, s.Minute.Color.A)
	}
	if s.Second.Color.A != MutedSecondAlpha || s.Text.A != MutedSecondAlpha {
		t.Errorf("second/text alpha = %d/%d", s.Second.Color.A, s.Text.A)
	}
	if s.Tick.Color.A != 0xFF {
		t.Error("ticks are not dimmed")
	}

	ambientMuted := StyleFor(mode.Flags{Ambient: true, Muted: true}, palette.Default)
	if ambientMuted.Hour.Color.A != MutedHandAlpha || ambientMuted.Hour.AntiAlias {
		t.Error("mute dimming layers on top of ambient styling")
	}
}

func TestBatteryColour(t *testing.T) {
	s := StyleFor(mode.Flags{Visible: true}, palette.Default)
	tests := []struct {
		percent int
		want    uint8 // green channel: 0 for red, 0xFF for white
	}{
		{0, 0}, {40, 0}, {41, 0xFF}, {100, 0xFF}, {-1, 0xFF},
	}
	for _, tt := range tests {
		if got := s.battery(tt.percent); got.R != 0xFF || got.G != tt.want {
			t.Errorf("battery(%d) = %v", tt.percent, got)
		}
	}
	muted := StyleFor(mode.Flags{Muted: true}, palette.Default)
	if muted.battery(10).A != MutedSecondAlpha {
		t.Error("battery text dims with mute")
	}
	if s.Text != withAlpha(palette.White, 0xFF) {
		t.Error("battery colour must not leak into the text colour")
	}
}

func TestZeroPad(t *testing.T) {
	for n := 0; n < 100; n++ {
		got := ZeroPad(n)
		if len(got) != 2 {
			t.Fatalf("ZeroPad(%d) = %q", n, got)
		}
	}
	for in, want := range map[int]string{0: "00", 5: "05", 42: "42", 99: "99"} {
		if got := ZeroPad(in); got != want {
			t.Errorf("ZeroPad(%d) = %q want %q", in, got, want)
		}
	}
}

func TestFormats(t *testing.T) {
	s := clock.Sample{Hour24: 7, Hour12: 7, Minute: 3, Second: 9.9, Year: 2025, Month: 2, Day: 1, Weekday: 6}
	if got := FormatDate(s, WeekdaysJA); got != "2025/02/01(土)" {
		t.Errorf("date = %q", got)
	}
	if got := FormatDate(clock.Sample{Year: 2025, Month: 2, Day: 2, Weekday: 0}, WeekdaysJA); got != "2025/02/02(日)" {
		t.Errorf("sunday = %q", got)
	}
	interactive, ambient := FormatTime(s, false), FormatTime(s, true)
	if interactive != "07:03:09" {
		t.Errorf("time = %q", interactive)
	}
	if ambient != "07:03   " || len(ambient) != len(interactive) {
		t.Errorf("ambient time = %q", ambient)
	}
	for in, want := range map[int]string{73: "73%", 0: "0%", 100: "100%", 140: "100%", -1: "--%"} {
		if got := FormatBattery(in); got != want {
			t.Errorf("FormatBattery(%d) = %q want %q", in, got, want)
		}
	}
}

func TestLookupWeekdays(t *testing.T) {
	if w, ok := LookupWeekdays("ja_JP.UTF-8"); !ok || w != WeekdaysJA {
		t.Error("ja_JP should map to the Japanese table")
	}
	if w, ok := LookupWeekdays("EN"); !ok || w != WeekdaysEN {
		t.Error("EN should map to the English table")
	}
	if w, ok := LookupWeekdays("xx"); ok || w != WeekdaysEN {
		t.Error("unknown locale falls back to English and reports false")
	}
}

func TestMutedGlowIsDimmed(t *testing.T) {
	glow := StyleFor(mode.Flags{Visible: true, Muted: true}, palette.Default).silhouette()
	if glow.Hour.Color.A != MutedHandAlpha || glow.Minute.Color.A != MutedHandAlpha {
		t.Errorf("hour/minute glow alpha = %d/%d", glow.Hour.Color.A, glow.Minute.Color.A)
	}
	if glow.Second.Color.A != MutedSecondAlpha || glow.Text.A != MutedSecondAlpha {
		t.Errorf("second/text glow alpha = %d/%d", glow.Second.Color.A, glow.Text.A)
	}
	if glow.Tick.Color.A != 0xFF {
		t.Error("tick glow follows the undimmed ticks")
	}
	if c := glow.Hour.Color; c.R != palette.Default.Shadow.R || c.G != palette.Default.Shadow.G || c.B != palette.Default.Shadow.B {
		t.Errorf("glow colour = %v", c)
	}

	loud := StyleFor(mode.Flags{Visible: true}, palette.Default).silhouette()
	if loud.Hour.Color.A != 0xFF || loud.Second.Color.A != 0xFF {
		t.Error("unmuted glow stays opaque")
	}
}
