package cli

import (
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"
)

var (
	reDateOnly = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	reDateTime = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[ T]\d{2}:\d{2}(?::\d{2})?$`)
)

// parseInstant parses an observation begin or a "now" override. All forms
// are UTC unless an RFC3339 offset says otherwise:
// - "" or "now" (now, truncated to the minute)
// - YYYY-MM-DD (midnight)
// - YYYY-MM-DD HH:MM[:SS] or YYYY-MM-DDTHH:MM[:SS]
// - RFC3339 / RFC3339Nano
func parseInstant(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "now") {
		return now.UTC().Truncate(time.Minute), nil
	}

	if reDateOnly.MatchString(s) {
		return time.ParseInLocation("2006-01-02", s, time.UTC)
	}

	if reDateTime.MatchString(s) {
		s = strings.Replace(s, " ", "T", 1)
		layout := "2006-01-02T15:04"
		if len(s) > len(layout) {
			layout = "2006-01-02T15:04:05"
		}
		return time.ParseInLocation(layout, s, time.UTC)
	}

	if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return ts.UTC(), nil
	}

	return time.Time{}, errors.Errorf("invalid datetime %q (expected YYYY-MM-DD, YYYY-MM-DD HH:MM, or RFC3339)", s)
}
