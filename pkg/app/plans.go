package app

import (
	"context"

	"tableflip.dev/quadplan/pkg/plan"
	"tableflip.dev/quadplan/pkg/timeutil"
)

// futureLookahead is how many upcoming weeks PlanFuture considers when no
// start is given.
const futureLookahead = 4

// PlanWeek plans from today to Sunday and makes it the active plan.
func (s *Service) PlanWeek(ctx context.Context, hoursPerDay float64, opts plan.CurrentWeekOptions) (plan.Window, error) {
	w, err := plan.CurrentWeek(s.now(), hoursPerDay, opts)
	if err != nil {
		return plan.Window{}, err
	}
	return s.upsertPlan(ctx, w)
}

// PlanFuture plans the Monday..Sunday week containing start. An empty start
// picks the first of the next four weeks that is not planned yet, or next
// Monday when they all are.
func (s *Service) PlanFuture(ctx context.Context, start string, hoursPerDay float64) (plan.Window, error) {
	if start == "" {
		sess, err := s.Session(ctx)
		if err != nil {
			return plan.Window{}, err
		}
		free, ok := sess.Plans.FreeWeek(s.now(), futureLookahead)
		if !ok {
			free = timeutil.FormatDate(timeutil.NextMonday(s.now()))
		}
		start = free
	}
	w, err := plan.FutureWeek(start, hoursPerDay)
	if err != nil {
		return plan.Window{}, err
	}
	return s.upsertPlan(ctx, w)
}

// PlanCustom plans a span such as "10d" or "1w3d" from start. An empty start
// means today.
func (s *Service) PlanCustom(ctx context.Context, start, span string, hoursPerDay float64) (plan.Window, error) {
	if start == "" {
		start = timeutil.FormatDate(s.now())
	}
	days, _, err := timeutil.ParseSpan(span)
	if err != nil {
		return plan.Window{}, err
	}
	w, err := plan.Custom(start, days, hoursPerDay)
	if err != nil {
		return plan.Window{}, err
	}
	return s.upsertPlan(ctx, w)
}

func (s *Service) upsertPlan(ctx context.Context, w plan.Window) (plan.Window, error) {
	sess, err := s.Session(ctx)
	if err != nil {
		return plan.Window{}, err
	}
	i, replaced := sess.Plans.Upsert(w)
	if !replaced && sess.WeekClipboardIndex >= i {
		sess.WeekClipboardIndex++
	}
	sess.Active = i
	if err := s.Persistence.StorePlans(ctx, sess.Plans); err != nil {
		return plan.Window{}, err
	}
	if err := s.saveState(ctx, sess); err != nil {
		return plan.Window{}, err
	}
	return w.WithAllocated(sess.Tasks), nil
}

// Next moves to the following plan.
func (s *Service) Next(ctx context.Context) (plan.Window, error) {
	return s.step(ctx, 1)
}

// Previous moves to the preceding plan.
func (s *Service) Previous(ctx context.Context) (plan.Window, error) {
	return s.step(ctx, -1)
}

func (s *Service) step(ctx context.Context, by int) (plan.Window, error) {
	sess, err := s.Session(ctx)
	if err != nil {
		return plan.Window{}, err
	}
	if sess.Plans.Len() == 0 {
		return plan.Window{}, ErrNoPlan
	}
	next := sess.Active + by
	switch {
	case next < 0:
		return plan.Window{}, ErrNoPrevious
	case next >= sess.Plans.Len():
		return plan.Window{}, ErrNoNext
	}
	sess.Active = next
	if err := s.saveState(ctx, sess); err != nil {
		return plan.Window{}, err
	}
	w, _ := sess.Window()
	return w, nil
}

// RemovePlan drops the active plan. Its tasks stay in the task list and show
// up again once a plan covering their dates exists.
func (s *Service) RemovePlan(ctx context.Context) (plan.Window, error) {
	sess, err := s.Session(ctx)
	if err != nil {
		return plan.Window{}, err
	}
	w, err := s.activeWindow(sess)
	if err != nil {
		return plan.Window{}, err
	}
	i := sess.Active
	sess.Plans.Remove(i)
	switch {
	case sess.WeekClipboardIndex == i:
		sess.WeekClipboardIndex = -1
	case sess.WeekClipboardIndex > i:
		sess.WeekClipboardIndex--
	}
	sess.Active = max(0, min(i, sess.Plans.Len()-1))
	if err := s.Persistence.StorePlans(ctx, sess.Plans); err != nil {
		return plan.Window{}, err
	}
	return w, s.saveState(ctx, sess)
}
