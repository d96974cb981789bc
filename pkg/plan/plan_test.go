package plan

import (
	"errors"
	"testing"
	"time"

	"tableflip.dev/quadplan/pkg/task"
	"tableflip.dev/quadplan/pkg/timeutil"
)

func at(date string, hour, min int) time.Time {
	d := timeutil.MustDate(date)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, min, 0, 0, time.Local)
}

func TestNewWindow(t *testing.T) {
	w, err := NewWindow("2025-12-22", "2025-12-28", 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Days != 7 || w.TotalHours != 56 {
		t.Fatalf("expected 7 days and 56h, got %d days and %vh", w.Days, w.TotalHours)
	}
}

func TestNewWindowRejects(t *testing.T) {
	_, err := NewWindow("2025-12-28", "2025-12-22", 8)
	var rangeErr *timeutil.InvalidRangeError
	if !errors.As(err, &rangeErr) {
		t.Fatalf("expected InvalidRangeError, got %v", err)
	}
	for _, hours := range []float64{0, -1, 25, 7.25} {
		if _, err := NewWindow("2025-12-22", "2025-12-28", hours); err == nil {
			t.Fatalf("expected %vh per day to be rejected", hours)
		}
	}
}

func TestCurrentWeekMorning(t *testing.T) {
	w, err := CurrentWeek(at("2025-12-24", 10, 0), 8, CurrentWeekOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.StartDate != "2025-12-24" || w.EndDate != "2025-12-28" {
		t.Fatalf("unexpected bounds %s..%s", w.StartDate, w.EndDate)
	}
	if w.Days != 5 || w.TotalHours != 40 {
		t.Fatalf("expected 5 days and 40h, got %d and %vh", w.Days, w.TotalHours)
	}
}

func TestCurrentWeekLateEvening(t *testing.T) {
	now := at("2025-12-24", 20, 20)
	if got := HoursLeftToday(now); got != 3.5 {
		t.Fatalf("expected 3.5h left, got %v", got)
	}

	w, err := CurrentWeek(now, 8, CurrentWeekOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.TotalHours != 35.5 {
		t.Fatalf("expected 3.5h today plus 4 full days, got %vh", w.TotalHours)
	}

	two := 2.0
	w, err = CurrentWeek(now, 8, CurrentWeekOptions{TodayHours: &two})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.TotalHours != 34 {
		t.Fatalf("expected 34h, got %vh", w.TotalHours)
	}

	w, err = CurrentWeek(now, 8, CurrentWeekOptions{StartTomorrow: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.StartDate != "2025-12-25" || w.Days != 4 || w.TotalHours != 32 {
		t.Fatalf("unexpected tomorrow window %+v", w)
	}
}

func TestCurrentWeekOnSunday(t *testing.T) {
	w, err := CurrentWeek(at("2025-12-28", 9, 0), 6, CurrentWeekOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.StartDate != w.EndDate || w.Days != 1 {
		t.Fatalf("expected a one day window, got %+v", w)
	}
}

func TestFutureWeekSnapsToMonday(t *testing.T) {
	w, err := FutureWeek("2026-01-07", 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.StartDate != "2026-01-05" || w.EndDate != "2026-01-11" || w.TotalHours != 42 {
		t.Fatalf("unexpected window %+v", w)
	}
}

func TestCustom(t *testing.T) {
	w, err := Custom("2025-12-30", 10, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.EndDate != "2026-01-08" || w.Days != 10 {
		t.Fatalf("unexpected window %+v", w)
	}
	if _, err := Custom("2025-12-30", 0, 4); err == nil {
		t.Fatalf("expected empty span to fail")
	}
}

func TestAllocatedHours(t *testing.T) {
	w, _ := NewWindow("2025-12-22", "2025-12-28", 8)
	tasks := []task.Task{
		{ID: "a", EstimatedHours: 10, StartDate: "2025-12-20", DueDate: "2025-12-23"},
		{ID: "r", EstimatedHours: 2, StartDate: "2025-12-26", DueDate: "2026-01-02", IsRecurring: true},
		{ID: "out", EstimatedHours: 5, StartDate: "2025-12-29", DueDate: "2025-12-30"},
	}
	// a counts once, r counts for the 26th..28th.
	if got := AllocatedHours(w, tasks); got != 16 {
		t.Fatalf("expected 16h, got %v", got)
	}
	if got := TasksIn(w, tasks); len(got) != 2 || got[0].ID != "a" || got[1].ID != "r" {
		t.Fatalf("unexpected tasks %v", got)
	}
	if got := w.WithAllocated(tasks).AllocatedHours; got != 16 {
		t.Fatalf("expected WithAllocated to set 16h, got %v", got)
	}
}

func TestPlansUpsertKeepsOrder(t *testing.T) {
	var p Plans
	w1, _ := FutureWeek("2026-01-12", 8)
	w2, _ := FutureWeek("2026-01-05", 8)
	w3, _ := FutureWeek("2026-01-19", 8)

	if i, replaced := p.Upsert(w1); i != 0 || replaced {
		t.Fatalf("first insert: got %d %v", i, replaced)
	}
	if i, _ := p.Upsert(w2); i != 0 {
		t.Fatalf("earlier week should land first, got %d", i)
	}
	if i, _ := p.Upsert(w3); i != 2 {
		t.Fatalf("later week should land last, got %d", i)
	}

	w2.HoursPerDay = 4
	if i, replaced := p.Upsert(w2); i != 0 || !replaced {
		t.Fatalf("same bounds must replace, got %d %v", i, replaced)
	}
	if p.Len() != 3 || p[0].HoursPerDay != 4 {
		t.Fatalf("unexpected plans %+v", p)
	}
	if got := p.Label(1); got != "Week 2 of 3 (Jan 12–18)" {
		t.Fatalf("unexpected label %q", got)
	}
	start, end, ok := p.Span()
	if !ok || start != "2026-01-05" || end != "2026-01-25" {
		t.Fatalf("unexpected span %s..%s", start, end)
	}
	if got := p.Overlapping("2026-01-11", "2026-01-12"); len(got) != 2 {
		t.Fatalf("expected two overlapping windows, got %v", got)
	}
	if !p.Remove(0) || p.Len() != 2 {
		t.Fatalf("remove failed: %+v", p)
	}
}

func TestPlansSpanUsesLatestEnd(t *testing.T) {
	var p Plans
	long, err := Custom("2026-01-05", 28, 6)
	if err != nil {
		t.Fatalf("custom: %v", err)
	}
	w, _ := FutureWeek("2026-01-12", 8)
	p.Upsert(long)
	p.Upsert(w)

	start, end, ok := p.Span()
	if !ok || start != "2026-01-05" || end != "2026-02-01" {
		t.Fatalf("unexpected span %s..%s", start, end)
	}
	if _, _, ok := (Plans{}).Span(); ok {
		t.Fatalf("empty plans have no span")
	}
}

func TestPlansSingleLabel(t *testing.T) {
	var p Plans
	w, _ := FutureWeek("2026-01-29", 8)
	p.Upsert(w)
	if got := p.Label(0); got != "Jan 26 – Feb 1" {
		t.Fatalf("unexpected label %q", got)
	}
	if p.Label(4) != "" {
		t.Fatalf("out of range label should be empty")
	}
}

func TestPlansFreeWeek(t *testing.T) {
	now := at("2025-12-24", 12, 0)
	var p Plans
	w, _ := FutureWeek("2025-12-29", 8)
	p.Upsert(w)

	got, ok := p.FreeWeek(now, 4)
	if !ok || got != "2026-01-05" {
		t.Fatalf("expected the week after the planned one, got %q %v", got, ok)
	}
	if _, ok := p.FreeWeek(now, 1); ok {
		t.Fatalf("a single planned lookahead week should report none free")
	}
}
