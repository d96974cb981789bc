package app

import (
	"context"

	"tableflip.dev/quadplan/pkg/admit"
	"tableflip.dev/quadplan/pkg/task"
)

// CopyTask puts a task on the clipboard.
func (s *Service) CopyTask(ctx context.Context, id string) (task.Task, error) {
	sess, err := s.Session(ctx)
	if err != nil {
		return task.Task{}, err
	}
	i, err := resolve(sess.Tasks, id)
	if err != nil {
		return task.Task{}, err
	}
	t := sess.Tasks[i]
	sess.Clipboard = &t
	return t, s.saveState(ctx, sess)
}

// PasteTask admits a copy of the clipboard task into the active plan, in
// quadrant q or the source's quadrant when q is empty. The clipboard survives
// a failed paste so the user can retry elsewhere.
func (s *Service) PasteTask(ctx context.Context, q task.Quadrant) (task.Task, []string, error) {
	sess, err := s.Session(ctx)
	if err != nil {
		return task.Task{}, nil, err
	}
	if sess.Clipboard == nil {
		return task.Task{}, nil, ErrEmptyClipboard
	}
	w, err := s.activeWindow(sess)
	if err != nil {
		return task.Task{}, nil, err
	}
	t, warnings, err := admit.PasteTask(admit.Paste{
		Source:   *sess.Clipboard,
		Quadrant: q,
		Tasks:    sess.Tasks,
		Window:   w,
		NewID:    s.newID(),
		Order:    s.Order,
	})
	if err != nil {
		return task.Task{}, nil, err
	}
	sess.Tasks = append(sess.Tasks, t)
	sess.Clipboard = nil
	if err := s.save(ctx, sess); err != nil {
		return task.Task{}, nil, err
	}
	return t, warnings, nil
}

// CancelClipboard empties both clipboards.
func (s *Service) CancelClipboard(ctx context.Context) error {
	sess, err := s.Session(ctx)
	if err != nil {
		return err
	}
	sess.Clipboard = nil
	sess.WeekClipboard = nil
	sess.WeekClipboardIndex = -1
	return s.saveState(ctx, sess)
}

// CopyWeek records the active plan's tasks by weekday.
func (s *Service) CopyWeek(ctx context.Context) (admit.WeekTemplate, error) {
	sess, err := s.Session(ctx)
	if err != nil {
		return admit.WeekTemplate{}, err
	}
	w, err := s.activeWindow(sess)
	if err != nil {
		return admit.WeekTemplate{}, err
	}
	tpl, err := admit.CopyWeek(sess.Tasks, w)
	if err != nil {
		return admit.WeekTemplate{}, err
	}
	if len(tpl.Items) == 0 {
		return admit.WeekTemplate{}, ErrNothingToCopy
	}
	sess.WeekClipboard = &tpl
	sess.WeekClipboardIndex = sess.Active
	return tpl, s.saveState(ctx, sess)
}

// PasteWeek pastes the week clipboard into the active plan. Nothing is saved
// unless every item fits.
func (s *Service) PasteWeek(ctx context.Context) (admit.WeekPaste, error) {
	sess, err := s.Session(ctx)
	if err != nil {
		return admit.WeekPaste{}, err
	}
	if sess.WeekClipboard == nil {
		return admit.WeekPaste{}, ErrEmptyClipboard
	}
	w, err := s.activeWindow(sess)
	if err != nil {
		return admit.WeekPaste{}, err
	}
	tpl := *sess.WeekClipboard
	if tpl.SourceStart == w.StartDate && tpl.SourceEnd == w.EndDate {
		return admit.WeekPaste{}, ErrSameWeek
	}
	res, err := admit.PasteWeek(tpl, w, sess.Tasks, s.newID, s.Order)
	if err != nil || res.Status != admit.Accepted {
		return res, err
	}
	sess.Tasks = append(sess.Tasks, res.Accepted...)
	sess.WeekClipboard = nil
	sess.WeekClipboardIndex = -1
	return res, s.save(ctx, sess)
}
