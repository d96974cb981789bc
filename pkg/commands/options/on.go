package options

import (
	"fmt"
	"strings"
	"time"

	"tableflip.dev/quadplan/pkg/timeutil"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

// ParseDay reads a day as "2026-1-14", "1/14", "today" or "tomorrow" and
// returns it as YYYY-MM-DD. An empty value stays empty.
func ParseDay(raw string, now time.Time) (string, error) {
	raw = strings.TrimSpace(raw)
	switch strings.ToLower(raw) {
	case "":
		return "", nil
	case "today":
		return timeutil.FormatDate(now), nil
	case "tomorrow":
		return timeutil.FormatDate(now.AddDate(0, 0, 1)), nil
	}
	t, err := time.ParseInLocation(layoutISO, raw, time.Local)
	if err != nil {
		// Let the year be the same.
		t, err = time.ParseInLocation(layoutISOShort, raw, time.Local)
		if err != nil {
			return "", fmt.Errorf("invalid date %q, want YYYY-MM-DD or M/D", raw)
		}
		t = t.AddDate(now.Year(), 0, 0)
		// I am gonna assume if you said 1/3 on 12/5, you meant next year, not 11 months ago.
		if t.Before(timeutil.Midnight(now)) {
			t = t.AddDate(1, 0, 0)
		}
	}
	return timeutil.FormatDate(t), nil
}
