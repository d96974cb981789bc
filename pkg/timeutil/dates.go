// Package timeutil holds the local-calendar date helpers shared by the planner.
//
// Dates travel through the planner as "2006-01-02" strings. Parsing always
// happens in time.Local so a date never shifts by a day when the process runs
// in a timezone west of UTC.
package timeutil

import (
	"fmt"
	"iter"
	"math"
	"strconv"
	"time"
)

const (
	// DateLayout is the canonical on-the-wire form of a calendar date.
	DateLayout = "2006-01-02"

	// DaysInWeek is the length of a Monday..Sunday week.
	DaysInWeek = 7
)

// InvalidRangeError reports a date range whose end precedes its start.
type InvalidRangeError struct {
	Start string
	End   string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("timeutil: invalid range: end %s is before start %s", e.End, e.Start)
}

// ParseDate parses a YYYY-MM-DD string into local midnight of that day.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("timeutil: parse date %q: %w", s, err)
	}
	return t, nil
}

// MustDate is ParseDate for fixtures; it panics on malformed input.
func MustDate(s string) time.Time {
	t, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

// FormatDate renders the local calendar date of t.
func FormatDate(t time.Time) string {
	return t.In(time.Local).Format(DateLayout)
}

// Midnight truncates t to the start of its local calendar day.
func Midnight(t time.Time) time.Time {
	l := t.In(time.Local)
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, time.Local)
}

// Dates returns the inclusive, ascending sequence of dates between start and
// end. The sequence is lazy and can be ranged over any number of times.
func Dates(start, end string) (iter.Seq[string], error) {
	s, err := ParseDate(start)
	if err != nil {
		return nil, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return nil, err
	}
	if e.Before(s) {
		return nil, &InvalidRangeError{Start: start, End: end}
	}
	return func(yield func(string) bool) {
		for cur := s; !cur.After(e); cur = cur.AddDate(0, 0, 1) {
			if !yield(FormatDate(cur)) {
				return
			}
		}
	}, nil
}

// DateRange collects Dates into a slice.
func DateRange(start, end string) ([]string, error) {
	seq, err := Dates(start, end)
	if err != nil {
		return nil, err
	}
	var out []string
	for d := range seq {
		out = append(out, d)
	}
	return out, nil
}

// WeekdayIndex maps t to Monday=0 .. Sunday=6.
func WeekdayIndex(t time.Time) int {
	return (int(t.In(time.Local).Weekday()) + 6) % DaysInWeek
}

// WeekStart returns local midnight of the Monday on or before t.
func WeekStart(t time.Time) time.Time {
	m := Midnight(t)
	return m.AddDate(0, 0, -WeekdayIndex(m))
}

// WeekEnd returns local midnight of the Sunday on or after t.
func WeekEnd(t time.Time) time.Time {
	return WeekStart(t).AddDate(0, 0, DaysInWeek-1)
}

// WeekDates lists the Monday..Sunday dates of the week containing date.
func WeekDates(date string) ([]string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	start := WeekStart(t)
	out := make([]string, 0, DaysInWeek)
	for i := 0; i < DaysInWeek; i++ {
		out = append(out, FormatDate(start.AddDate(0, 0, i)))
	}
	return out, nil
}

// AddDays shifts a date string by n calendar days.
func AddDays(date string, n int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return FormatDate(t.AddDate(0, 0, n)), nil
}

// DaysBetween counts calendar days from a to b; it is negative when b is
// before a. Daylight saving transitions do not affect the count.
func DaysBetween(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

// NextMonday returns the Monday strictly after now, at least one day ahead.
func NextMonday(now time.Time) time.Time {
	m := Midnight(now)
	diff := (8 - int(m.Weekday())) % DaysInWeek
	if diff == 0 {
		diff = DaysInWeek
	}
	return m.AddDate(0, 0, diff)
}

// FormatHours renders hours without a trailing ".0": 2h, 2.5h, 8h.
func FormatHours(h float64) string {
	if h == math.Trunc(h) {
		return strconv.FormatFloat(h, 'f', 0, 64) + "h"
	}
	return strconv.FormatFloat(h, 'f', 1, 64) + "h"
}

// FormatRange renders a compact label for a date range, like "Jan 5–11" or
// "Jan 29 – Feb 4". Unparseable input is returned as-is.
func FormatRange(start, end string) string {
	s, err := ParseDate(start)
	if err != nil {
		return start + " – " + end
	}
	e, err := ParseDate(end)
	if err != nil {
		return start + " – " + end
	}
	switch {
	case s.Equal(e):
		return s.Format("Jan 2")
	case s.Month() == e.Month() && s.Year() == e.Year():
		return fmt.Sprintf("%s %d–%d", s.Format("Jan"), s.Day(), e.Day())
	default:
		return fmt.Sprintf("%s – %s", s.Format("Jan 2"), e.Format("Jan 2"))
	}
}
