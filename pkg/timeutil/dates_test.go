package timeutil

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestParseDateIsLocalMidnight(t *testing.T) {
	d, err := ParseDate("2025-12-27")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Location() != time.Local {
		t.Fatalf("expected local location, got %v", d.Location())
	}
	if d.Hour() != 0 || d.Day() != 27 {
		t.Fatalf("expected local midnight on the 27th, got %v", d)
	}
	if got := FormatDate(d); got != "2025-12-27" {
		t.Fatalf("round trip mismatch: %s", got)
	}
}

func TestParseDateInvalid(t *testing.T) {
	if _, err := ParseDate("27/12/2025"); err == nil {
		t.Fatalf("expected error for malformed date")
	}
}

func TestDateRangeInclusive(t *testing.T) {
	got, err := DateRange("2025-12-30", "2026-01-02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"2025-12-30", "2025-12-31", "2026-01-01", "2026-01-02"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestDatesRestartable(t *testing.T) {
	seq, err := Dates("2025-03-01", "2025-03-03")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	count := func() int {
		n := 0
		for range seq {
			n++
		}
		return n
	}
	if a, b := count(), count(); a != 3 || b != 3 {
		t.Fatalf("expected 3 dates on both passes, got %d and %d", a, b)
	}

	// Early exit must not panic.
	for d := range seq {
		if d != "2025-03-01" {
			t.Fatalf("unexpected first date %s", d)
		}
		break
	}
}

func TestDatesInvalidRange(t *testing.T) {
	_, err := Dates("2025-03-02", "2025-03-01")
	var rangeErr *InvalidRangeError
	if !errors.As(err, &rangeErr) {
		t.Fatalf("expected InvalidRangeError, got %v", err)
	}
	if rangeErr.Start != "2025-03-02" || rangeErr.End != "2025-03-01" {
		t.Fatalf("unexpected bounds: %+v", rangeErr)
	}
}

func TestWeekBoundariesMondayStart(t *testing.T) {
	cases := map[string]string{
		"2025-12-22": "2025-12-22", // Monday
		"2025-12-24": "2025-12-22", // Wednesday
		"2025-12-28": "2025-12-22", // Sunday belongs to the week before it
		"2025-12-29": "2025-12-29",
	}
	for in, want := range cases {
		if got := FormatDate(WeekStart(MustDate(in))); got != want {
			t.Fatalf("WeekStart(%s): expected %s, got %s", in, want, got)
		}
	}
	if got := FormatDate(WeekEnd(MustDate("2025-12-24"))); got != "2025-12-28" {
		t.Fatalf("expected Sunday 2025-12-28, got %s", got)
	}
}

func TestWeekdayIndex(t *testing.T) {
	if got := WeekdayIndex(MustDate("2025-12-22")); got != 0 {
		t.Fatalf("Monday should be 0, got %d", got)
	}
	if got := WeekdayIndex(MustDate("2025-12-24")); got != 2 {
		t.Fatalf("Wednesday should be 2, got %d", got)
	}
	if got := WeekdayIndex(MustDate("2025-12-28")); got != 6 {
		t.Fatalf("Sunday should be 6, got %d", got)
	}
}

func TestWeekDates(t *testing.T) {
	got, err := WeekDates("2025-12-27")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 7 || got[0] != "2025-12-22" || got[6] != "2025-12-28" {
		t.Fatalf("unexpected week: %v", got)
	}
}

func TestDaysBetweenAcrossDST(t *testing.T) {
	// Spans the March daylight saving change in most northern timezones.
	if got := DaysBetween(MustDate("2025-03-01"), MustDate("2025-04-01")); got != 31 {
		t.Fatalf("expected 31 days, got %d", got)
	}
	if got := DaysBetween(MustDate("2025-03-05"), MustDate("2025-03-01")); got != -4 {
		t.Fatalf("expected -4 days, got %d", got)
	}
}

func TestNextMondayAlwaysAhead(t *testing.T) {
	if got := FormatDate(NextMonday(MustDate("2025-12-22"))); got != "2025-12-29" {
		t.Fatalf("from a Monday expected the following Monday, got %s", got)
	}
	if got := FormatDate(NextMonday(MustDate("2025-12-28"))); got != "2025-12-29" {
		t.Fatalf("from a Sunday expected the next day, got %s", got)
	}
}

func TestFormatHours(t *testing.T) {
	cases := map[float64]string{2: "2h", 2.5: "2.5h", 8: "8h", 0: "0h"}
	for in, want := range cases {
		if got := FormatHours(in); got != want {
			t.Fatalf("FormatHours(%v): expected %s, got %s", in, want, got)
		}
	}
}

func TestFormatRange(t *testing.T) {
	if got := FormatRange("2026-01-05", "2026-01-11"); got != "Jan 5–11" {
		t.Fatalf("unexpected label %q", got)
	}
	if got := FormatRange("2026-01-29", "2026-02-04"); got != "Jan 29 – Feb 4" {
		t.Fatalf("unexpected label %q", got)
	}
	if got := FormatRange("2026-01-05", "2026-01-05"); got != "Jan 5" {
		t.Fatalf("unexpected label %q", got)
	}
}
