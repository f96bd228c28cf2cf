package render

import (
	"strconv"
	"strings"

	"github.com/rook-computer/clockface/internal/clock"
)

// Weekdays holds one glyph per weekday, indexed 0=Sunday..6=Saturday.
type Weekdays [7]string

var (
	WeekdaysJA = Weekdays{"日", "月", "火", "水", "木", "金", "土"}
	WeekdaysEN = Weekdays{"S", "M", "T", "W", "T", "F", "S"}
)

// LookupWeekdays returns the table for a locale name such as "ja" or "en_US".
func LookupWeekdays(locale string) (Weekdays, bool) {
	lang := strings.ToLower(locale)
	if i := strings.IndexAny(lang, "_-."); i >= 0 {
		lang = lang[:i]
	}
	switch lang {
	case "ja":
		return WeekdaysJA, true
	case "en":
		return WeekdaysEN, true
	}
	return WeekdaysEN, false
}

// ZeroPad renders the last two digits of n, padding with zeros.
func ZeroPad(n int) string {
	s := "00" + strconv.Itoa(n)
	return s[len(s)-2:]
}

// FormatDate renders YYYY/MM/DD(W).
func FormatDate(s clock.Sample, days Weekdays) string {
	w := ""
	if s.Weekday >= 0 && s.Weekday < len(days) {
		w = days[s.Weekday]
	}
	return strconv.Itoa(s.Year) + "/" + ZeroPad(s.Month) + "/" + ZeroPad(s.Day) + "(" + w + ")"
}

// ambientSecondsPad replaces ":SS" in ambient so the string keeps its length.
const ambientSecondsPad = "   "

// FormatTime renders HH:MM:SS on the 24-hour clock. In ambient the seconds
// are blanked so the text only changes once a minute.
func FormatTime(s clock.Sample, ambient bool) string {
	hm := ZeroPad(s.Hour24) + ":" + ZeroPad(s.Minute)
	if ambient {
		return hm + ambientSecondsPad
	}
	return hm + ":" + ZeroPad(int(s.Second))
}

// FormatBattery renders a battery level. Unknown (negative) levels render as
// "--%".
func FormatBattery(percent int) string {
	if percent < 0 {
		return "--%"
	}
	return strconv.Itoa(min(percent, 100)) + "%"
}

// timeTemplate is measured to pin the time string's left edge.
const timeTemplate = "00:00:00"
