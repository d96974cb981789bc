package alloc

import (
	"errors"
	"fmt"
	"math"

	"tableflip.dev/quadplan/pkg/task"
	"tableflip.dev/quadplan/pkg/timeutil"
)

var (
	ErrEmptySelection   = errors.New("alloc: at least one day must be selected")
	ErrNonPositiveHours = errors.New("alloc: hours must be greater than 0")
	ErrNoLedger         = errors.New("alloc: no ledger to validate against")
)

// Kind names the constraint a request ran into.
type Kind string

const (
	// KindRangeCapacity is the sum of per-day remaining hours over the
	// selected dates.
	KindRangeCapacity Kind = "range-capacity"
	// KindDayCapacity is a single day's remaining hours; Violation.Date is set.
	KindDayCapacity Kind = "day-capacity"
	// KindWeeklyCeiling is the weekly limit minus hours already used that week.
	KindWeeklyCeiling Kind = "weekly-ceiling"
	// KindWindowTotal is a plan's total budget minus the hours its other
	// tasks already take.
	KindWindowTotal Kind = "window-total"
)

// Violation is a capacity rejection with the figures a user needs to adjust.
type Violation struct {
	Kind      Kind    `json:"kind"`
	Date      string  `json:"date,omitempty"`
	Requested float64 `json:"requested"`
	Available float64 `json:"available"`
	Shortfall float64 `json:"shortfall"`
}

// NewViolation fills in the shortfall for requested against available.
func NewViolation(kind Kind, requested, available float64) Violation {
	return Violation{
		Kind:      kind,
		Requested: requested,
		Available: available,
		Shortfall: math.Max(0, requested-available),
	}
}

func (v Violation) Error() string {
	req := timeutil.FormatHours(v.Requested)
	avail := timeutil.FormatHours(math.Max(0, v.Available))
	short := timeutil.FormatHours(v.Shortfall)
	switch v.Kind {
	case KindWeeklyCeiling:
		return fmt.Sprintf("weekly limit exceeded: requested %s, available this week %s (short by %s)", req, avail, short)
	case KindWindowTotal:
		return fmt.Sprintf("plan total exceeded: requested %s, available in this plan %s (short by %s)", req, avail, short)
	case KindDayCapacity:
		day := v.Date
		if t, err := timeutil.ParseDate(v.Date); err == nil {
			day = t.Format("Mon Jan 2")
		}
		return fmt.Sprintf("not enough capacity on %s: requested %s, available %s (short by %s)", day, req, avail, short)
	default:
		return fmt.Sprintf("not enough capacity: requested %s, available %s (short by %s)", req, avail, short)
	}
}

// Request asks whether RequestedHours fit into SelectedDates.
type Request struct {
	SelectedDates  []string
	RequestedHours float64
	Ledger         *Ledger

	// ExcludeTaskID names a task already layered into Ledger whose own hours
	// must not count against the request. Tasks is searched for it.
	ExcludeTaskID string
	Tasks         []task.Task
}

// Result is the answer to a Request.
type Result struct {
	Valid             bool               `json:"valid"`
	MaxAllowableHours float64            `json:"maxAllowableHours"`
	WeeklyRemaining   float64            `json:"weeklyRemaining"`
	PerDayRemaining   map[string]float64 `json:"perDayRemaining"`
	Violations        []Violation        `json:"violations,omitempty"`
	Warnings          []string           `json:"warnings,omitempty"`
}

// Errors renders the violations as messages.
func (r Result) Errors() []string {
	out := make([]string, 0, len(r.Violations))
	for _, v := range r.Violations {
		out = append(out, v.Error())
	}
	return out
}

// Validate checks a request against the ledger. The ledger passed in is never
// modified. The weekly ceiling is taken from the week of the first selected
// date.
func Validate(req Request) (Result, error) {
	if len(req.SelectedDates) == 0 {
		return Result{}, ErrEmptySelection
	}
	if req.RequestedHours <= 0 {
		return Result{}, ErrNonPositiveHours
	}
	if req.Ledger == nil {
		return Result{}, ErrNoLedger
	}

	l := req.Ledger
	if req.ExcludeTaskID != "" {
		if i := task.Index(req.Tasks, req.ExcludeTaskID); i >= 0 {
			l = l.Clone()
			if err := l.Exclude(req.Tasks[i]); err != nil {
				return Result{}, fmt.Errorf("alloc: exclude %s: %w", req.ExcludeTaskID, err)
			}
		}
	}

	res := Result{PerDayRemaining: make(map[string]float64, len(req.SelectedDates))}
	full := 0
	selected := 0.0
	for _, d := range req.SelectedDates {
		r := l.Remaining(d)
		res.PerDayRemaining[d] = r
		selected += r
		if r <= epsilon {
			full++
		}
	}
	if full > 0 {
		res.Warnings = append(res.Warnings, fullDaysWarning(full, l.DailyLimit))
	}

	weekly, err := l.WeeklyRemaining(req.SelectedDates[0])
	if err != nil {
		return Result{}, err
	}
	res.WeeklyRemaining = weekly
	res.MaxAllowableHours = math.Min(selected, weekly)

	if req.RequestedHours > res.MaxAllowableHours+epsilon {
		switch {
		case req.RequestedHours > selected+epsilon && len(req.SelectedDates) == 1:
			v := NewViolation(KindDayCapacity, req.RequestedHours, selected)
			v.Date = req.SelectedDates[0]
			res.Violations = append(res.Violations, v)
		case req.RequestedHours > selected+epsilon:
			res.Violations = append(res.Violations, NewViolation(KindRangeCapacity, req.RequestedHours, selected))
		default:
			res.Violations = append(res.Violations, NewViolation(KindWeeklyCeiling, req.RequestedHours, weekly))
		}
	}
	res.Valid = len(res.Violations) == 0
	return res, nil
}

func fullDaysWarning(n int, limit float64) string {
	if n == 1 {
		return fmt.Sprintf("1 day is already full (%s allocated)", timeutil.FormatHours(limit))
	}
	return fmt.Sprintf("%d days are already full (%s allocated)", n, timeutil.FormatHours(limit))
}
