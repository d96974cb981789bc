// Package plan models planning windows: a contiguous date range with a daily
// hour budget, and the chronologically ordered set of windows a session holds.
package plan

import (
	"fmt"
	"math"
	"time"

	"tableflip.dev/quadplan/pkg/task"
	"tableflip.dev/quadplan/pkg/timeutil"
)

// Window is one planning period. AllocatedHours is derived from the live task
// list and is never trusted when read back from storage.
type Window struct {
	StartDate      string  `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate        string  `json:"endDate" validate:"required,datetime=2006-01-02"`
	Days           int     `json:"days"`
	HoursPerDay    float64 `json:"hoursPerDay" validate:"gt=0,lte=24,halfhours"`
	TotalHours     float64 `json:"totalHours"`
	AllocatedHours float64 `json:"allocatedHours"`
}

// NewWindow builds a window over [start, end] with a flat daily budget.
func NewWindow(start, end string, hoursPerDay float64) (Window, error) {
	w := Window{StartDate: start, EndDate: end, HoursPerDay: hoursPerDay}
	if err := task.ValidateStruct(w); err != nil {
		return Window{}, fmt.Errorf("plan: %w", err)
	}
	s, err := timeutil.ParseDate(start)
	if err != nil {
		return Window{}, err
	}
	e, err := timeutil.ParseDate(end)
	if err != nil {
		return Window{}, err
	}
	if e.Before(s) {
		return Window{}, &timeutil.InvalidRangeError{Start: start, End: end}
	}
	w.Days = timeutil.DaysBetween(s, e) + 1
	w.TotalHours = float64(w.Days) * hoursPerDay
	return w, nil
}

// Dates lists every date of the window.
func (w Window) Dates() ([]string, error) {
	return timeutil.DateRange(w.StartDate, w.EndDate)
}

// Contains reports whether date falls inside the window.
func (w Window) Contains(date string) bool {
	return date >= w.StartDate && date <= w.EndDate
}

// Overlaps reports whether [start, end] shares a day with the window.
func (w Window) Overlaps(start, end string) bool {
	return start <= w.EndDate && end >= w.StartDate
}

// Range is the compact label of the window's dates.
func (w Window) Range() string {
	return timeutil.FormatRange(w.StartDate, w.EndDate)
}

// WithAllocated returns w with AllocatedHours recomputed from tasks.
func (w Window) WithAllocated(tasks []task.Task) Window {
	w.AllocatedHours = AllocatedHours(w, tasks)
	return w
}

// CurrentWeekOptions tune CurrentWeek.
type CurrentWeekOptions struct {
	// StartTomorrow skips today entirely.
	StartTomorrow bool
	// TodayHours is the budget for today when the daily budget is more than
	// what is left of the day. Nil means HoursLeftToday.
	TodayHours *float64
}

// CurrentWeek plans from today (or tomorrow) to the upcoming Sunday. When the
// daily budget does not fit in what remains of today, today contributes only
// its own hours to the total.
func CurrentWeek(now time.Time, hoursPerDay float64, opts CurrentWeekOptions) (Window, error) {
	start := timeutil.Midnight(now)
	if opts.StartTomorrow {
		start = start.AddDate(0, 0, 1)
	}
	w, err := NewWindow(timeutil.FormatDate(start), timeutil.FormatDate(timeutil.WeekEnd(start)), hoursPerDay)
	if err != nil {
		return Window{}, err
	}
	if opts.StartTomorrow {
		return w, nil
	}
	if left := HoursLeftToday(now); hoursPerDay > left {
		today := left
		if opts.TodayHours != nil {
			today = math.Max(0, *opts.TodayHours)
		}
		w.TotalHours = today + float64(w.Days-1)*hoursPerDay
	}
	return w, nil
}

// HoursLeftToday is what is left of the local day, rounded down to 0.5h.
func HoursLeftToday(now time.Time) float64 {
	l := now.In(time.Local)
	left := 24 - float64(l.Hour()) - float64(l.Minute())/60
	return math.Max(0, math.Floor(left*2)/2)
}

// FutureWeek plans the Monday..Sunday week containing start.
func FutureWeek(start string, hoursPerDay float64) (Window, error) {
	t, err := timeutil.ParseDate(start)
	if err != nil {
		return Window{}, err
	}
	return NewWindow(timeutil.FormatDate(timeutil.WeekStart(t)), timeutil.FormatDate(timeutil.WeekEnd(t)), hoursPerDay)
}

// Custom plans span days starting at start.
func Custom(start string, span int, hoursPerDay float64) (Window, error) {
	if span <= 0 {
		return Window{}, fmt.Errorf("plan: span must be at least one day, got %d", span)
	}
	end, err := timeutil.AddDays(start, span-1)
	if err != nil {
		return Window{}, err
	}
	return NewWindow(start, end, hoursPerDay)
}

// AllocatedHours sums the hours tasks put into the window. A non-recurring
// task counts its whole estimate once when it overlaps; a recurring task counts
// its estimate for every overlapping day.
func AllocatedHours(w Window, tasks []task.Task) float64 {
	sum := 0.0
	for _, t := range tasks {
		if !w.Overlaps(t.StartDate, t.DueDate) {
			continue
		}
		if !t.IsRecurring {
			sum += t.EstimatedHours
			continue
		}
		from := max(t.StartDate, w.StartDate)
		to := min(t.DueDate, w.EndDate)
		s, err := timeutil.ParseDate(from)
		if err != nil {
			continue
		}
		e, err := timeutil.ParseDate(to)
		if err != nil {
			continue
		}
		sum += t.EstimatedHours * float64(timeutil.DaysBetween(s, e)+1)
	}
	return sum
}

// TasksIn keeps the tasks that overlap the window, in their original order.
func TasksIn(w Window, tasks []task.Task) []task.Task {
	var out []task.Task
	for _, t := range tasks {
		if w.Overlaps(t.StartDate, t.DueDate) {
			out = append(out, t)
		}
	}
	return out
}
