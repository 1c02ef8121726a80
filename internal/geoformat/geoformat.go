// Package geoformat converts between the text shown in a measurement row and
// the numeric values stored on the model.
package geoformat

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Placeholder is shown for a computed value that is not available.
const Placeholder = "—"

// ASCIIPlaceholder replaces Placeholder with the ascii glyph set.
const ASCIIPlaceholder = "-"

// Seconds of arc are kept to 1/1000.
const milliArcSecondsPerDegree = 3600 * 1000

// DMS is an angle split into whole degrees, whole minutes and seconds.
type DMS struct {
	Degrees int     `json:"degrees"`
	Minutes int     `json:"minutes"`
	Seconds float64 `json:"seconds"`
}

// Strings returns the three input texts for the angle.
func (d DMS) Strings() [3]string {
	return [3]string{
		strconv.Itoa(d.Degrees),
		strconv.Itoa(d.Minutes),
		strconv.FormatFloat(d.Seconds, 'f', -1, 64),
	}
}

func (d DMS) String() string {
	s := d.Strings()
	return fmt.Sprintf("%s° %s' %s\"", s[0], s[1], s[2])
}

func DMSToDecimal(deg, min, sec float64) float64 {
	return deg + min/60 + sec/3600
}

// DecimalToDMS rounds to the nearest 1/1000 second and carries into minutes
// and degrees, so 59.9999 seconds never shows up as "60".
func DecimalToDMS(decimal float64) DMS {
	neg := decimal < 0
	milli := int64(math.Round(math.Abs(decimal) * milliArcSecondsPerDegree))

	deg := milli / milliArcSecondsPerDegree
	rem := milli % milliArcSecondsPerDegree
	min := rem / (60 * 1000)
	ms := rem % (60 * 1000)

	out := DMS{Degrees: int(deg), Minutes: int(min), Seconds: float64(ms) / 1000}
	if neg {
		out.Degrees = -out.Degrees
	}
	return out
}

// ParseClock splits an HH:MM:SS clock time.
func ParseClock(text string) (h, m, s int, err error) {
	parts := strings.Split(strings.TrimSpace(text), ":")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid clock time: %q", text)
	}
	vals := [3]int{}
	limits := [3]int{23, 59, 59}
	for i, p := range parts {
		n, convErr := strconv.Atoi(p)
		if convErr != nil || n < 0 || n > limits[i] {
			return 0, 0, 0, fmt.Errorf("invalid clock time: %q", text)
		}
		vals[i] = n
	}
	return vals[0], vals[1], vals[2], nil
}

// ParseRelativeTime resolves a clock time against ref. The result is the
// instant with that UTC time of day closest to ref: the same date, or the
// day before/after when that is within twelve hours (sessions that cross
// midnight).
func ParseRelativeTime(text string, ref time.Time) (time.Time, error) {
	h, m, s, err := ParseClock(text)
	if err != nil {
		return time.Time{}, err
	}
	ref = ref.UTC()
	t := time.Date(ref.Year(), ref.Month(), ref.Day(), h, m, s, 0, time.UTC)
	switch d := t.Sub(ref); {
	case d < -12*time.Hour:
		t = t.AddDate(0, 0, 1)
	case d > 12*time.Hour:
		t = t.AddDate(0, 0, -1)
	}
	return t, nil
}

// Time renders the UTC time of day.
func Time(t time.Time) string {
	return t.UTC().Format("15:04:05")
}

// Nanoteslas renders a field intensity.
func Nanoteslas(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + " nT"
}

// Degrees renders decimal degrees.
func Degrees(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64) + "°"
}
