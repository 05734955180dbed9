// Package datekey renders calendar dates as fixed-width UTC day keys.
// A day key is the canonical identity of a calendar day ("2024-02-01") and
// doubles as a sort key: because every field is zero-padded, lexicographic
// order equals chronological order.
package datekey

import (
	"strconv"
	"time"
)

// Layout is the day key format understood by Parse.
const Layout = "2006-01-02"

// PadZero formats n as a two-digit zero-padded string.
// Values of 100 or more are returned unpadded as-is.
func PadZero(n int) string {
	if n >= 0 && n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// FromTime returns the UTC day key for t, e.g. "2024-02-01".
func FromTime(t time.Time) string {
	u := t.UTC()
	return strconv.Itoa(u.Year()) + "-" + PadZero(int(u.Month())) + "-" + PadZero(u.Day())
}

// Parse converts a day key back to midnight UTC of that day.
// FromTime and Parse round-trip: Parse(FromTime(t)) is the start of t's UTC day.
func Parse(key string) (time.Time, error) {
	return time.ParseInLocation(Layout, key, time.UTC)
}

// FormatClock renders an elapsed duration as "HH:MM:SS" for the recorder
// counter. Negative durations render as "00:00:00".
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	h := total / 3600
	m := total / 60 % 60
	s := total % 60
	return PadZero(h) + ":" + PadZero(m) + ":" + PadZero(s)
}
