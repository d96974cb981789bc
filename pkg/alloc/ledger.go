// Package alloc is the hours-allocation engine: it builds the per-day ledger of
// committed hours from a task list and validates new allocations against daily
// and weekly capacity.
//
// Non-recurring tasks drain their estimate sequentially: each spanned day is
// filled up to the daily limit before the remainder spills into the next day.
// Recurring tasks commit their full estimate on every spanned day. Tasks are
// layered in the order chosen by an Order, so which task gets a partially
// full day is deterministic.
package alloc

import (
	"fmt"
	"math"
	"os"
	"slices"
	"sort"

	"tableflip.dev/quadplan/pkg/task"
	"tableflip.dev/quadplan/pkg/timeutil"
)

const epsilon = 1e-9

// Placement records the hours one task committed on one day.
type Placement struct {
	TaskID    string
	Title     string
	Quadrant  task.Quadrant
	Hours     float64
	DayIndex  int // 1-based position of the day inside the task's span
	TotalDays int
	Recurring bool
}

// Ledger maps each calendar date to the hours already committed on it. It is
// always derived from a task list and never stored on its own.
type Ledger struct {
	DailyLimit float64

	hours      map[string]float64
	placements map[string][]Placement
	unplaced   map[string]float64
}

// NewLedger returns an empty ledger for the given daily limit.
func NewLedger(dailyLimit float64) *Ledger {
	return &Ledger{
		DailyLimit: dailyLimit,
		hours:      make(map[string]float64),
		placements: make(map[string][]Placement),
		unplaced:   make(map[string]float64),
	}
}

// Build layers tasks onto an empty ledger in the sequence chosen by order. A
// nil order means InsertionOrder. Tasks with unparseable or inverted dates
// are skipped; admission rejects them before they reach a task list.
func Build(tasks []task.Task, dailyLimit float64, order Order) *Ledger {
	if order == nil {
		order = InsertionOrder
	}
	l := NewLedger(dailyLimit)
	for _, t := range order(tasks) {
		if err := l.Add(t); err != nil {
			fmt.Fprintf(os.Stderr, "alloc: skipping task %s: %v\n", t.ID, err)
		}
	}
	return l
}

// Add layers one task on top of the current ledger state.
func (l *Ledger) Add(t task.Task) error {
	dates, err := t.Dates()
	if err != nil {
		return err
	}
	if t.IsRecurring {
		for i, d := range dates {
			l.hours[d] += t.EstimatedHours
			l.place(d, t, t.EstimatedHours, i, len(dates))
		}
		return nil
	}

	pool := t.EstimatedHours
	for i, d := range dates {
		if pool <= epsilon {
			break
		}
		take := math.Min(pool, l.DailyLimit-l.hours[d])
		if take <= epsilon {
			continue
		}
		l.hours[d] += take
		pool -= take
		l.place(d, t, take, i, len(dates))
	}
	if pool > epsilon {
		l.unplaced[t.ID] += pool
	}
	return nil
}

func (l *Ledger) place(date string, t task.Task, hours float64, i, total int) {
	l.placements[date] = append(l.placements[date], Placement{
		TaskID:    t.ID,
		Title:     t.Title,
		Quadrant:  t.Quadrant,
		Hours:     hours,
		DayIndex:  i + 1,
		TotalDays: total,
		Recurring: t.IsRecurring,
	})
}

// Exclude removes a task's contribution from the ledger. When the ledger
// recorded where the task's hours went, exactly those hours are removed.
// Otherwise the task's estimate is subtracted with the sequential walk used to
// add it: at each spanned date it removes min(remaining, committed there).
func (l *Ledger) Exclude(t task.Task) error {
	if l.removePlacements(t.ID) {
		delete(l.unplaced, t.ID)
		return nil
	}
	dates, err := t.Dates()
	if err != nil {
		return err
	}
	remaining := t.EstimatedHours
	for _, d := range dates {
		used := l.hours[d]
		if used <= epsilon || remaining <= epsilon {
			continue
		}
		sub := math.Min(remaining, used)
		l.hours[d] = math.Max(0, used-sub)
		remaining -= sub
	}
	delete(l.unplaced, t.ID)
	return nil
}

func (l *Ledger) removePlacements(id string) bool {
	found := false
	for d, ps := range l.placements {
		for _, p := range ps {
			if p.TaskID == id {
				l.hours[d] = math.Max(0, l.hours[d]-p.Hours)
				found = true
			}
		}
		if found {
			l.dropPlacement(d, id)
		}
	}
	return found
}

func (l *Ledger) dropPlacement(date, id string) {
	l.placements[date] = slices.DeleteFunc(l.placements[date], func(p Placement) bool {
		return p.TaskID == id
	})
	if len(l.placements[date]) == 0 {
		delete(l.placements, date)
	}
}

// Clone returns an independent copy of the ledger.
func (l *Ledger) Clone() *Ledger {
	c := NewLedger(l.DailyLimit)
	for d, h := range l.hours {
		c.hours[d] = h
	}
	for d, p := range l.placements {
		c.placements[d] = slices.Clone(p)
	}
	for id, h := range l.unplaced {
		c.unplaced[id] = h
	}
	return c
}

// Used returns the hours committed on date.
func (l *Ledger) Used(date string) float64 {
	return l.hours[date]
}

// Remaining is max(0, DailyLimit - Used(date)).
func (l *Ledger) Remaining(date string) float64 {
	return math.Max(0, l.DailyLimit-l.hours[date])
}

// RemainingAcross sums Remaining day by day over dates.
func (l *Ledger) RemainingAcross(dates []string) float64 {
	sum := 0.0
	for _, d := range dates {
		sum += l.Remaining(d)
	}
	return sum
}

// UsedAcross sums Used over dates.
func (l *Ledger) UsedAcross(dates []string) float64 {
	sum := 0.0
	for _, d := range dates {
		sum += l.hours[d]
	}
	return sum
}

// WeeklyLimit is DailyLimit for every day of a week.
func (l *Ledger) WeeklyLimit() float64 {
	return l.DailyLimit * timeutil.DaysInWeek
}

// WeeklyUsed sums the Monday..Sunday week containing date.
func (l *Ledger) WeeklyUsed(date string) (float64, error) {
	week, err := timeutil.WeekDates(date)
	if err != nil {
		return 0, err
	}
	return l.UsedAcross(week), nil
}

// WeeklyRemaining is WeeklyLimit minus WeeklyUsed. It can go negative when
// recurring work overfills a week.
func (l *Ledger) WeeklyRemaining(date string) (float64, error) {
	used, err := l.WeeklyUsed(date)
	if err != nil {
		return 0, err
	}
	return l.WeeklyLimit() - used, nil
}

// Hours returns a copy of the date to hours mapping.
func (l *Ledger) Hours() map[string]float64 {
	out := make(map[string]float64, len(l.hours))
	for d, h := range l.hours {
		out[d] = h
	}
	return out
}

// Dates lists the dates with committed hours in ascending order.
func (l *Ledger) Dates() []string {
	out := make([]string, 0, len(l.hours))
	for d, h := range l.hours {
		if h > epsilon {
			out = append(out, d)
		}
	}
	sort.Strings(out)
	return out
}

// Placements lists which tasks committed hours on date, in layering order.
func (l *Ledger) Placements(date string) []Placement {
	return slices.Clone(l.placements[date])
}

// Unplaced reports, per task id, the hours that did not fit in the task's span.
// Those hours are not on any date of the ledger.
func (l *Ledger) Unplaced() map[string]float64 {
	out := make(map[string]float64, len(l.unplaced))
	for id, h := range l.unplaced {
		out[id] = h
	}
	return out
}
