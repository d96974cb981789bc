package options

import (
	"testing"
	"time"
)

func TestParseDay(t *testing.T) {
	now := time.Date(2026, time.December, 5, 15, 0, 0, 0, time.Local)
	tests := map[string]string{
		"":          "",
		"today":     "2026-12-05",
		"Tomorrow":  "2026-12-06",
		"2027-1-3":  "2027-01-03",
		"12/24":     "2026-12-24",
		"12/5":      "2026-12-05",
		"1/3":       "2027-01-03",
		"2026-12-5": "2026-12-05",
	}
	for in, want := range tests {
		got, err := ParseDay(in, now)
		if err != nil {
			t.Fatalf("ParseDay(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseDay(%q) = %q, want %q", in, got, want)
		}
	}

	if _, err := ParseDay("next week", now); err == nil {
		t.Fatalf("expected an error for an unknown day")
	}
}
