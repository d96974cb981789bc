package app

import (
	"context"

	"tableflip.dev/quadplan/pkg/alloc"
	"tableflip.dev/quadplan/pkg/balance"
	"tableflip.dev/quadplan/pkg/plan"
	"tableflip.dev/quadplan/pkg/task"
	"tableflip.dev/quadplan/pkg/timeutil"
)

// CapacityQuery selects days of the active plan. Empty bounds default to the
// plan's own. With Hours set the selection is validated as a new allocation.
type CapacityQuery struct {
	Start string
	End   string
	Hours float64
}

// DayCapacity is one day of a capacity view.
type DayCapacity struct {
	Date      string  `json:"date"`
	Used      float64 `json:"used"`
	Remaining float64 `json:"remaining"`
}

// CapacityView reports committed and free hours over a selection.
type CapacityView struct {
	Window          plan.Window        `json:"window"`
	Label           string             `json:"label"`
	Days            []DayCapacity      `json:"days"`
	Remaining       float64            `json:"remaining"`
	WeeklyRemaining float64            `json:"weeklyRemaining"`
	Unplaced        map[string]float64 `json:"unplaced,omitempty"`
	Result          *alloc.Result      `json:"result,omitempty"`
}

// Capacity builds the ledger of the active plan and reads it over q.
func (s *Service) Capacity(ctx context.Context, q CapacityQuery) (CapacityView, error) {
	sess, err := s.Session(ctx)
	if err != nil {
		return CapacityView{}, err
	}
	w, err := s.activeWindow(sess)
	if err != nil {
		return CapacityView{}, err
	}
	start, end := q.Start, q.End
	if start == "" {
		start = w.StartDate
	}
	if end == "" {
		end = max(start, w.EndDate)
	}
	dates, err := (task.Task{StartDate: start, DueDate: end}).Dates()
	if err != nil {
		return CapacityView{}, err
	}

	l := alloc.Build(sess.Tasks, w.HoursPerDay, s.Order)
	view := CapacityView{Window: w, Label: sess.Label(), Unplaced: l.Unplaced()}
	var selected []string
	for _, d := range dates {
		day := DayCapacity{Date: d, Used: l.Used(d)}
		// Days outside the plan have no capacity.
		if w.Contains(d) {
			day.Remaining = l.Remaining(d)
			selected = append(selected, d)
		}
		view.Remaining += day.Remaining
		view.Days = append(view.Days, day)
	}
	if len(selected) > 0 {
		if view.WeeklyRemaining, err = l.WeeklyRemaining(selected[0]); err != nil {
			return CapacityView{}, err
		}
	}
	if q.Hours > 0 {
		res, err := alloc.Validate(alloc.Request{SelectedDates: selected, RequestedHours: q.Hours, Ledger: l})
		if err != nil {
			return CapacityView{}, err
		}
		view.Result = &res
	}
	return view, nil
}

// CalendarDay is one date of a planned window with the work placed on it.
type CalendarDay struct {
	Date       string            `json:"date"`
	Plan       string            `json:"plan"`
	Limit      float64           `json:"limit"`
	Used       float64           `json:"used"`
	Placements []alloc.Placement `json:"placements,omitempty"`
}

// Calendar lays the planned span out day by day, from the first plan's start
// to the last plan's end. Each plan uses its own daily limit; days between
// plans are listed with no plan and no limit.
func (s *Service) Calendar(ctx context.Context) ([]CalendarDay, error) {
	sess, err := s.Session(ctx)
	if err != nil {
		return nil, err
	}
	start, end, ok := sess.Plans.Span()
	if !ok {
		return nil, nil
	}
	dates, err := timeutil.DateRange(start, end)
	if err != nil {
		return nil, err
	}

	ledgers := make(map[int]*alloc.Ledger, sess.Plans.Len())
	days := make([]CalendarDay, 0, len(dates))
	for _, d := range dates {
		idx := sess.Plans.Overlapping(d, d)
		if len(idx) == 0 {
			days = append(days, CalendarDay{Date: d})
			continue
		}
		i := idx[0]
		w := sess.Plans[i]
		l, ok := ledgers[i]
		if !ok {
			l = alloc.Build(sess.Tasks, w.HoursPerDay, s.Order)
			ledgers[i] = l
		}
		days = append(days, CalendarDay{
			Date:       d,
			Plan:       sess.Plans.Label(i),
			Limit:      w.HoursPerDay,
			Used:       l.Used(d),
			Placements: l.Placements(d),
		})
	}
	return days, nil
}

// Balance evaluates the quadrant mix of the active plan's tasks.
func (s *Service) Balance(ctx context.Context) (balance.Report, error) {
	sess, err := s.Session(ctx)
	if err != nil {
		return balance.Report{}, err
	}
	return balance.Evaluate(sess.WindowTasks()), nil
}
