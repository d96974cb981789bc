package app

import (
	"context"
	"fmt"
	"strings"

	"tableflip.dev/quadplan/pkg/admit"
	"tableflip.dev/quadplan/pkg/plan"
	"tableflip.dev/quadplan/pkg/task"
)

// CreateTask admits a new task into the active plan. A rejected decision is
// returned without error and nothing is saved.
func (s *Service) CreateTask(ctx context.Context, t task.Task) (admit.Decision, error) {
	sess, err := s.Session(ctx)
	if err != nil {
		return admit.Decision{}, err
	}
	w, err := s.activeWindow(sess)
	if err != nil {
		return admit.Decision{}, err
	}
	if t.ID == "" {
		t.ID = s.newID()
	}
	t.Title = strings.TrimSpace(t.Title)

	dec, err := admit.Check(admit.Draft{Task: t, Tasks: sess.Tasks, Window: &w, Order: s.Order})
	if err != nil || !dec.Accepted() {
		return dec, err
	}
	sess.Tasks = append(sess.Tasks, dec.Task)
	return dec, s.Persistence.StoreTasks(ctx, sess.Tasks)
}

// EditTask applies edit to a copy of the task and admits the result in place
// of the original. The task keeps its identity and its position in the list.
func (s *Service) EditTask(ctx context.Context, id string, edit func(*task.Task)) (admit.Decision, error) {
	sess, err := s.Session(ctx)
	if err != nil {
		return admit.Decision{}, err
	}
	i, err := resolve(sess.Tasks, id)
	if err != nil {
		return admit.Decision{}, err
	}
	orig := sess.Tasks[i]
	w, ok := sess.windowFor(orig)
	if !ok {
		return admit.Decision{}, ErrNoPlan
	}

	draft := orig
	edit(&draft)
	draft.ID = orig.ID
	draft.Title = strings.TrimSpace(draft.Title)

	dec, err := admit.Check(admit.Draft{Task: draft, Tasks: sess.Tasks, Window: &w, EditingID: orig.ID, Order: s.Order})
	if err != nil || !dec.Accepted() {
		return dec, err
	}
	sess.Tasks[i] = dec.Task
	return dec, s.Persistence.StoreTasks(ctx, sess.Tasks)
}

// DeleteTask removes a task and returns it.
func (s *Service) DeleteTask(ctx context.Context, id string) (task.Task, error) {
	sess, err := s.Session(ctx)
	if err != nil {
		return task.Task{}, err
	}
	i, err := resolve(sess.Tasks, id)
	if err != nil {
		return task.Task{}, err
	}
	removed := sess.Tasks[i]
	sess.Tasks = task.Without(sess.Tasks, removed.ID)
	return removed, s.Persistence.StoreTasks(ctx, sess.Tasks)
}

// MoveTask reassigns a task to another quadrant, given by name, key or alias.
// Capacity is unaffected.
func (s *Service) MoveTask(ctx context.Context, id string, q task.Quadrant) (task.Task, error) {
	q, err := task.ParseQuadrant(string(q))
	if err != nil {
		return task.Task{}, err
	}
	return s.update(ctx, id, func(t *task.Task) { t.Quadrant = q })
}

// SetCompleted marks a task done or not done. Completed tasks still hold
// their hours.
func (s *Service) SetCompleted(ctx context.Context, id string, done bool) (task.Task, error) {
	return s.update(ctx, id, func(t *task.Task) { t.Completed = done })
}

func (s *Service) update(ctx context.Context, id string, fn func(*task.Task)) (task.Task, error) {
	sess, err := s.Session(ctx)
	if err != nil {
		return task.Task{}, err
	}
	i, err := resolve(sess.Tasks, id)
	if err != nil {
		return task.Task{}, err
	}
	fn(&sess.Tasks[i])
	return sess.Tasks[i], s.Persistence.StoreTasks(ctx, sess.Tasks)
}

// ClearTasks removes the tasks of the active plan, or every task when nothing
// is planned. It returns how many were removed.
func (s *Service) ClearTasks(ctx context.Context) (int, error) {
	sess, err := s.Session(ctx)
	if err != nil {
		return 0, err
	}
	before := len(sess.Tasks)
	if w, ok := sess.Window(); ok {
		kept := sess.Tasks[:0]
		for _, t := range sess.Tasks {
			if !w.Overlaps(t.StartDate, t.DueDate) {
				kept = append(kept, t)
			}
		}
		sess.Tasks = kept
	} else {
		sess.Tasks = nil
	}
	return before - len(sess.Tasks), s.Persistence.StoreTasks(ctx, sess.Tasks)
}

// Tasks lists the tasks of the active plan with the plan itself.
func (s *Service) Tasks(ctx context.Context) (plan.Window, []task.Task, error) {
	sess, err := s.Session(ctx)
	if err != nil {
		return plan.Window{}, nil, err
	}
	w, _ := sess.Window()
	return w, sess.WindowTasks(), nil
}

// Task finds one task by id or unique id prefix.
func (s *Service) Task(ctx context.Context, id string) (task.Task, error) {
	sess, err := s.Session(ctx)
	if err != nil {
		return task.Task{}, err
	}
	i, err := resolve(sess.Tasks, id)
	if err != nil {
		return task.Task{}, err
	}
	return sess.Tasks[i], nil
}

// resolve returns the index of the task with id, or of the only task whose id
// starts with it.
func resolve(tasks []task.Task, id string) (int, error) {
	if i := task.Index(tasks, id); i >= 0 {
		return i, nil
	}
	found := -1
	for i, t := range tasks {
		if id == "" || !strings.HasPrefix(t.ID, id) {
			continue
		}
		if found >= 0 {
			return -1, fmt.Errorf("%w: %q matches more than one task", ErrTaskNotFound, id)
		}
		found = i
	}
	if found < 0 {
		return -1, ErrTaskNotFound
	}
	return found, nil
}
