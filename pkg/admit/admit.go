// Package admit decides whether work may enter the task list. Each flow takes
// a snapshot of the current tasks, asks the allocation engine, and returns a
// decision; none of them mutate their inputs, so the caller commits only what
// was accepted.
package admit

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"tableflip.dev/quadplan/pkg/alloc"
	"tableflip.dev/quadplan/pkg/plan"
	"tableflip.dev/quadplan/pkg/task"
	"tableflip.dev/quadplan/pkg/timeutil"
)

const epsilon = 1e-9

var ErrNoDailyLimit = errors.New("admit: no daily limit, plan a window first")

// Status is the outcome of an admission flow.
type Status string

const (
	Accepted Status = "accepted"
	Rejected Status = "rejected"
)

// Decision is the outcome of checking one draft.
type Decision struct {
	Status   Status       `json:"status"`
	Task     task.Task    `json:"task"`
	Result   alloc.Result `json:"result"`
	Reasons  []string     `json:"reasons,omitempty"`
	Warnings []string     `json:"warnings,omitempty"`
}

// Accepted reports whether the draft may be saved.
func (d Decision) Accepted() bool {
	return d.Status == Accepted
}

// Invalid reports a rejection caused by the draft's own fields rather than by
// capacity.
func (d Decision) Invalid() bool {
	return d.Status == Rejected && len(d.Result.Violations) == 0
}

func reject(t task.Task, res alloc.Result, reasons ...string) Decision {
	return Decision{Status: Rejected, Task: t, Result: res, Reasons: reasons, Warnings: res.Warnings}
}

// Draft is a task being created or edited.
type Draft struct {
	Task  task.Task
	Tasks []task.Task

	// Window, when set, bounds the draft's dates and supplies the daily limit.
	Window *plan.Window
	// DailyLimit overrides Window.HoursPerDay when positive.
	DailyLimit float64
	// EditingID names the task being replaced; it is left out of the ledger.
	EditingID string
	Order     alloc.Order
}

func (d Draft) limit() float64 {
	if d.DailyLimit > 0 {
		return d.DailyLimit
	}
	if d.Window != nil {
		return d.Window.HoursPerDay
	}
	return 0
}

// Check validates a create or edit. Input problems are rejected before the
// ledger is built. Recurring drafts must fit on every day on their own;
// other drafts must fit across their whole range.
func Check(d Draft) (Decision, error) {
	limit := d.limit()
	if limit <= 0 {
		return Decision{}, ErrNoDailyLimit
	}
	t := d.Task
	if err := t.Validate(); err != nil {
		return reject(t, alloc.Result{}, err.Error()), nil
	}
	if d.EditingID == "" && task.Index(d.Tasks, t.ID) >= 0 {
		return reject(t, alloc.Result{}, fmt.Sprintf("task %s already exists", t.ID)), nil
	}
	if d.Window != nil && !t.Within(d.Window.StartDate, d.Window.EndDate) {
		return reject(t, alloc.Result{}, fmt.Sprintf("dates must fall inside the plan (%s)", d.Window.Range())), nil
	}

	others := task.Without(d.Tasks, d.EditingID)
	res, err := fit(t, alloc.Build(others, limit, d.Order))
	if err != nil {
		return Decision{}, err
	}
	if res.Valid && d.Window != nil {
		if v, over := windowTotal(*d.Window, others, t); over {
			res.Valid = false
			res.Violations = append(res.Violations, v)
			if !t.IsRecurring {
				res.MaxAllowableHours = min(res.MaxAllowableHours, max(0, v.Available))
			}
		}
	}
	if !res.Valid {
		return reject(t, res, res.Errors()...), nil
	}
	return Decision{
		Status:   Accepted,
		Task:     t,
		Result:   res,
		Warnings: append(slices.Clone(res.Warnings), displaced(others, replace(d.Tasks, d.EditingID, t), limit, d.Order)...),
	}, nil
}

// windowTotal checks t against what the window's total budget has left once
// others are counted. The total can be below Days*HoursPerDay when today is
// short, which the per-day ledger does not see.
func windowTotal(w plan.Window, others []task.Task, t task.Task) (alloc.Violation, bool) {
	need := plan.AllocatedHours(w, []task.Task{t})
	avail := w.TotalHours - plan.AllocatedHours(w, others)
	if need <= avail+epsilon {
		return alloc.Violation{}, false
	}
	return alloc.NewViolation(alloc.KindWindowTotal, need, avail), true
}

// fit validates t against l without touching l. Recurring tasks are checked a
// day at a time on a running copy, so the weekly ceiling sees the days before.
func fit(t task.Task, l *alloc.Ledger) (alloc.Result, error) {
	dates, err := t.Dates()
	if err != nil {
		return alloc.Result{}, err
	}
	if !t.IsRecurring {
		return alloc.Validate(alloc.Request{SelectedDates: dates, RequestedHours: t.EstimatedHours, Ledger: l})
	}

	running := l.Clone()
	merged := alloc.Result{Valid: true, PerDayRemaining: make(map[string]float64, len(dates))}
	for _, d := range dates {
		res, err := alloc.Validate(alloc.Request{SelectedDates: []string{d}, RequestedHours: t.EstimatedHours, Ledger: running})
		if err != nil {
			return alloc.Result{}, err
		}
		merged.PerDayRemaining[d] = res.PerDayRemaining[d]
		merged.WeeklyRemaining = res.WeeklyRemaining
		merged.MaxAllowableHours = res.MaxAllowableHours
		for _, w := range res.Warnings {
			if !slices.Contains(merged.Warnings, w) {
				merged.Warnings = append(merged.Warnings, w)
			}
		}
		if !res.Valid {
			merged.Valid = false
			merged.Violations = res.Violations
			return merged, nil
		}
		day := t
		day.StartDate, day.DueDate = d, d
		if err := running.Add(day); err != nil {
			return alloc.Result{}, err
		}
	}
	return merged, nil
}

// displaced warns about tasks that lose hours once the draft is layered in.
// That happens when the order puts the draft ahead of work it now crowds out.
func displaced(before, after []task.Task, limit float64, order alloc.Order) []string {
	was := alloc.Build(before, limit, order).Unplaced()
	now := alloc.Build(after, limit, order).Unplaced()

	var out []string
	for _, o := range after {
		if lost := now[o.ID] - was[o.ID]; lost > epsilon {
			out = append(out, fmt.Sprintf("%q has %s that no longer fit in its dates", o.Title, timeutil.FormatHours(lost)))
		}
	}
	return out
}

// replace swaps the task id for t in place, or appends t.
func replace(tasks []task.Task, id string, t task.Task) []task.Task {
	out := slices.Clone(tasks)
	if i := task.Index(out, id); id != "" && i >= 0 {
		out[i] = t
		return out
	}
	return append(out, t)
}

// RangeCapacity is the day-by-day capacity of a candidate range.
type RangeCapacity struct {
	TotalAvailable float64 `json:"totalAvailable"`
	Shortfall      float64 `json:"shortfall"`
	CanAllocate    bool    `json:"canAllocate"`
}

// RemainingAcrossRange sums the remaining hours of [start, end] inside w after
// layering tasks. Days outside w have no capacity.
func RemainingAcrossRange(start, end string, requested float64, tasks []task.Task, w plan.Window, order alloc.Order) (RangeCapacity, error) {
	span := task.Task{StartDate: start, DueDate: end}
	dates, err := span.Dates()
	if err != nil {
		return RangeCapacity{}, err
	}
	l := alloc.Build(tasks, w.HoursPerDay, order)
	total := 0.0
	for _, d := range dates {
		if w.Contains(d) {
			total += l.Remaining(d)
		}
	}
	return RangeCapacity{
		TotalAvailable: total,
		Shortfall:      math.Max(0, requested-total),
		CanAllocate:    requested <= total+epsilon,
	}, nil
}
