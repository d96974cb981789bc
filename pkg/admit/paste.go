package admit

import (
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/quadplan/pkg/alloc"
	"tableflip.dev/quadplan/pkg/plan"
	"tableflip.dev/quadplan/pkg/task"
	"tableflip.dev/quadplan/pkg/timeutil"
)

// PasteError is a paste that did not fit. The clipboard stays populated so the
// paste can be retried.
type PasteError struct {
	Needed    float64
	Available float64
	Shortfall float64
	Reasons   []string
}

func (e *PasteError) Error() string {
	msg := fmt.Sprintf("cannot paste task: not enough capacity, need %s but only %s available (short by %s)",
		timeutil.FormatHours(e.Needed), timeutil.FormatHours(e.Available), timeutil.FormatHours(e.Shortfall))
	if e.Shortfall <= epsilon && len(e.Reasons) > 0 {
		msg = "cannot paste task: " + strings.Join(e.Reasons, "; ")
	}
	return msg
}

var ErrNoMatchingDay = errors.New("admit: the target plan has no matching day")

// Paste describes pasting one copied task into a window.
type Paste struct {
	Source task.Task
	// Quadrant is where the copy lands; empty keeps the source quadrant.
	Quadrant task.Quadrant
	Tasks    []task.Task
	Window   plan.Window
	NewID    string
	Order    alloc.Order
}

// PasteTask admits a copy of Source under NewID. A source whose dates are
// outside the window is moved to the same weekdays of the window's week.
func PasteTask(p Paste) (task.Task, []string, error) {
	t := p.Source.Copy(p.NewID)
	if p.Quadrant != "" {
		t.Quadrant = p.Quadrant
	}
	if !t.Within(p.Window.StartDate, p.Window.EndDate) {
		start, due, err := Remap(t.StartDate, t.DueDate, p.Window)
		if err != nil {
			return task.Task{}, nil, err
		}
		t.StartDate, t.DueDate = start, due
	}

	dec, err := Check(Draft{Task: t, Tasks: p.Tasks, Window: &p.Window, Order: p.Order})
	if err != nil {
		return task.Task{}, nil, err
	}
	if dec.Accepted() {
		return t, dec.Warnings, nil
	}
	if dec.Invalid() {
		return task.Task{}, nil, fmt.Errorf("admit: %s", strings.Join(dec.Reasons, "; "))
	}

	rc, err := RemainingAcrossRange(t.StartDate, t.DueDate, 0, p.Tasks, p.Window, p.Order)
	if err != nil {
		return task.Task{}, nil, err
	}
	needed := t.EstimatedHours
	if t.IsRecurring {
		days, _ := t.Dates()
		needed *= float64(len(days))
	}
	available := rc.TotalAvailable
	if !t.IsRecurring && dec.Result.MaxAllowableHours < available {
		available = max(0, dec.Result.MaxAllowableHours)
	}
	for _, v := range dec.Result.Violations {
		if v.Kind == alloc.KindWindowTotal {
			available = min(available, max(0, v.Available))
		}
	}
	return task.Task{}, nil, &PasteError{
		Needed:    needed,
		Available: available,
		Shortfall: max(0, needed-available),
		Reasons:   dec.Reasons,
	}
}

// Remap moves [start, due] onto the same weekdays of the week containing
// w.StartDate. The end is clipped to the window; a start with no matching day
// inside the window is ErrNoMatchingDay.
func Remap(start, due string, w plan.Window) (string, string, error) {
	s, err := timeutil.ParseDate(start)
	if err != nil {
		return "", "", err
	}
	e, err := timeutil.ParseDate(due)
	if err != nil {
		return "", "", err
	}
	span := timeutil.DaysBetween(s, e)
	if span < 0 {
		return "", "", &timeutil.InvalidRangeError{Start: start, End: due}
	}
	ws, err := timeutil.ParseDate(w.StartDate)
	if err != nil {
		return "", "", err
	}
	monday := timeutil.WeekStart(ws)
	ns := timeutil.FormatDate(monday.AddDate(0, 0, timeutil.WeekdayIndex(s)))
	if !w.Contains(ns) {
		return "", "", fmt.Errorf("%w: %s", ErrNoMatchingDay, ns)
	}
	ne, err := timeutil.AddDays(ns, span)
	if err != nil {
		return "", "", err
	}
	return ns, min(ne, w.EndDate), nil
}
