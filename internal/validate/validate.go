// Package validate holds the predicates that decide whether free-text input
// is an acceptable angle component or clock time.
//
// Every predicate is pure. Blank or non-numeric text is invalid; nothing here
// returns an error or panics on bad input.
package validate

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Kind classifies a validation failure.
type Kind string

const (
	KindSyntax Kind = "syntax"
	KindRange  Kind = "range"
	KindFuture Kind = "future"
)

// Messages stored on the model when validation fails.
const (
	MsgDegrees    = "Invalid Degrees. Must be between, 0-360."
	MsgMinutes    = "Invalid Minutes. Must be between, 0-60."
	MsgSeconds    = "Invalid Seconds. Must be between, 0-60."
	MsgTime       = "Invalid Time. HH24:MI:SS"
	MsgFutureTime = "Time is in the future.  Check your dates."
)

// decimalPattern is the plain decimal notation, optionally with an exponent.
// ParseFloat alone would also take hex floats, underscores and "Inf".
var decimalPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

var clockTimePattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5]?[0-9]:[0-5]?[0-9]$`)

// parseNumber parses a finite decimal number.
func parseNumber(text string) (float64, bool) {
	text = strings.TrimSpace(text)
	if !decimalPattern.MatchString(text) {
		return 0, false
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func inRange(text string, lo, hi float64) bool {
	v, ok := parseNumber(text)
	return ok && v >= lo && v <= hi
}

// ValidDegrees accepts numbers in [0, 360].
func ValidDegrees(text string) bool { return inRange(text, 0, 360) }

// ValidMinutes accepts numbers in [0, 60].
func ValidMinutes(text string) bool { return inRange(text, 0, 60) }

// ValidSeconds accepts numbers in [0, 60].
func ValidSeconds(text string) bool { return inRange(text, 0, 60) }

// ValidTime accepts a 24-hour HH:MM:SS clock time. Single digit fields are
// allowed ("9:05:00").
func ValidTime(text string) bool {
	return clockTimePattern.MatchString(strings.TrimSpace(text))
}

// ValidAbsoluteTime rejects times after now.
func ValidAbsoluteTime(resolved, now time.Time) bool {
	return !resolved.After(now)
}

// Number parses text already accepted by one of the range predicates.
func Number(text string) float64 {
	v, _ := parseNumber(text)
	return v
}

// Result is a single predicate outcome, as reported by the CLI.
type Result struct {
	Valid   bool   `json:"valid"`
	Kind    Kind   `json:"kind,omitempty"`
	Message string `json:"message,omitempty"`
}

// Check runs the predicate named by field ("degrees", "minutes", "seconds",
// "time") and classifies a failure. ok is false for an unknown field.
func Check(field, text string) (r Result, ok bool) {
	var pred func(string) bool
	var msg string
	switch strings.ToLower(strings.TrimSpace(field)) {
	case "degrees", "deg":
		pred, msg = ValidDegrees, MsgDegrees
	case "minutes", "min":
		pred, msg = ValidMinutes, MsgMinutes
	case "seconds", "sec":
		pred, msg = ValidSeconds, MsgSeconds
	case "time":
		if ValidTime(text) {
			return Result{Valid: true}, true
		}
		return Result{Kind: KindSyntax, Message: MsgTime}, true
	default:
		return Result{}, false
	}
	if pred(text) {
		return Result{Valid: true}, true
	}
	kind := KindRange
	if _, isNum := parseNumber(text); !isNum {
		kind = KindSyntax
	}
	return Result{Kind: kind, Message: msg}, true
}
