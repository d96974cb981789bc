package app

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/quadplan/pkg/admit"
	"tableflip.dev/quadplan/pkg/alloc"
	"tableflip.dev/quadplan/pkg/plan"
	"tableflip.dev/quadplan/pkg/store"
	"tableflip.dev/quadplan/pkg/task"
)

var (
	ErrNoPersistence  = errors.New("app: no persistence configured")
	ErrNoPlan         = errors.New("app: no plan yet, run `plan week` first")
	ErrTaskNotFound   = errors.New("app: task not found")
	ErrEmptyClipboard = errors.New("app: clipboard is empty")
	ErrNothingToCopy  = errors.New("app: the active plan has no tasks to copy")
	ErrSameWeek       = errors.New("app: cannot paste a week into the week it was copied from")
	ErrNoPrevious     = errors.New("app: already at the first plan")
	ErrNoNext         = errors.New("app: already at the last plan")
)

// Session is everything a planner holds between commands. Flows read a
// snapshot of it and the Service writes it back only after acceptance.
type Session struct {
	Tasks  []task.Task
	Plans  plan.Plans
	Active int

	Clipboard          *task.Task
	WeekClipboard      *admit.WeekTemplate
	WeekClipboardIndex int
}

// Window returns the active plan with AllocatedHours recomputed.
func (s *Session) Window() (plan.Window, bool) {
	w, ok := s.Plans.At(s.Active)
	if !ok {
		return plan.Window{}, false
	}
	return w.WithAllocated(s.Tasks), true
}

// WindowTasks lists the tasks overlapping the active plan, or every task when
// nothing is planned.
func (s *Session) WindowTasks() []task.Task {
	w, ok := s.Window()
	if !ok {
		return s.Tasks
	}
	return plan.TasksIn(w, s.Tasks)
}

// Label names the active plan, like "Week 2 of 3 (Jan 5–11)".
func (s *Session) Label() string {
	return s.Plans.Label(s.Active)
}

// windowFor picks the plan a task belongs to: the first one overlapping it,
// else the active one.
func (s *Session) windowFor(t task.Task) (plan.Window, bool) {
	if idx := s.Plans.Overlapping(t.StartDate, t.DueDate); len(idx) > 0 {
		return s.Plans[idx[0]], true
	}
	return s.Window()
}

// Service provides the planner operations shared by the CLI and its tests.
// Every operation loads the session, runs one flow and saves on success.
type Service struct {
	Persistence store.Persistence

	// Order layers tasks onto ledgers; nil means insertion order.
	Order alloc.Order
	// NewID mints task identities; nil means task.NewID.
	NewID func() string
	// Now is the clock used for planning; nil means time.Now.
	Now func() time.Time
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return task.NewID()
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Session loads the current session.
func (s *Service) Session(ctx context.Context) (*Session, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	tasks, err := s.Persistence.Tasks(ctx)
	if err != nil {
		return nil, err
	}
	plans, err := s.Persistence.Plans(ctx)
	if err != nil {
		return nil, err
	}
	st, err := s.Persistence.State(ctx)
	if err != nil {
		return nil, err
	}
	sess := &Session{
		Tasks:              tasks,
		Plans:              plans,
		Active:             st.Active,
		Clipboard:          st.Clipboard,
		WeekClipboard:      st.WeekClipboard,
		WeekClipboardIndex: st.WeekClipboardIndex,
	}
	if sess.Active < 0 || sess.Active >= plans.Len() {
		sess.Active = max(0, plans.Len()-1)
	}
	if sess.WeekClipboard == nil {
		sess.WeekClipboardIndex = -1
	}
	return sess, nil
}

func (s *Service) save(ctx context.Context, sess *Session) error {
	if err := s.Persistence.StoreTasks(ctx, sess.Tasks); err != nil {
		return err
	}
	if err := s.Persistence.StorePlans(ctx, sess.Plans); err != nil {
		return err
	}
	return s.saveState(ctx, sess)
}

func (s *Service) saveState(ctx context.Context, sess *Session) error {
	return s.Persistence.StoreState(ctx, store.State{
		Active:             sess.Active,
		Clipboard:          sess.Clipboard,
		WeekClipboard:      sess.WeekClipboard,
		WeekClipboardIndex: sess.WeekClipboardIndex,
	})
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	return s.Persistence.Watch(ctx)
}

func (s *Service) activeWindow(sess *Session) (plan.Window, error) {
	w, ok := sess.Window()
	if !ok {
		return plan.Window{}, ErrNoPlan
	}
	return w, nil
}
