package admit

import (
	"errors"
	"fmt"
	"slices"

	"tableflip.dev/quadplan/pkg/alloc"
	"tableflip.dev/quadplan/pkg/plan"
	"tableflip.dev/quadplan/pkg/task"
	"tableflip.dev/quadplan/pkg/timeutil"
)

var ErrEmptyTemplate = errors.New("admit: week template has no tasks")

var weekdays = [timeutil.DaysInWeek]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// TemplateItem is a copied task with weekdays instead of dates. Weekdays run
// Monday=0 .. Sunday=6.
type TemplateItem struct {
	Title          string        `json:"title"`
	Description    string        `json:"description,omitempty"`
	Quadrant       task.Quadrant `json:"quadrant"`
	EstimatedHours float64       `json:"estimatedHours"`
	IsRecurring    bool          `json:"isRecurring,omitempty"`
	StartWeekday   int           `json:"startWeekday"`
	EndWeekday     int           `json:"endWeekday"`
}

// WeekTemplate is the week clipboard.
type WeekTemplate struct {
	SourceStart string         `json:"sourceStart"`
	SourceEnd   string         `json:"sourceEnd"`
	Items       []TemplateItem `json:"items"`
}

// CopyWeek records the tasks of w's Monday..Sunday week by weekday. Task spans
// are clipped to that week first.
func CopyWeek(tasks []task.Task, w plan.Window) (WeekTemplate, error) {
	ws, err := timeutil.ParseDate(w.StartDate)
	if err != nil {
		return WeekTemplate{}, err
	}
	from := max(w.StartDate, timeutil.FormatDate(timeutil.WeekStart(ws)))
	to := min(w.EndDate, timeutil.FormatDate(timeutil.WeekEnd(ws)))

	tpl := WeekTemplate{SourceStart: w.StartDate, SourceEnd: w.EndDate}
	for _, t := range tasks {
		if !t.Overlaps(from, to) {
			continue
		}
		s, err := timeutil.ParseDate(max(t.StartDate, from))
		if err != nil {
			return WeekTemplate{}, err
		}
		e, err := timeutil.ParseDate(min(t.DueDate, to))
		if err != nil {
			return WeekTemplate{}, err
		}
		tpl.Items = append(tpl.Items, TemplateItem{
			Title:          t.Title,
			Description:    t.Description,
			Quadrant:       t.Quadrant,
			EstimatedHours: t.EstimatedHours,
			IsRecurring:    t.IsRecurring,
			StartWeekday:   timeutil.WeekdayIndex(s),
			EndWeekday:     timeutil.WeekdayIndex(e),
		})
	}
	return tpl, nil
}

// WeekPaste is the outcome of pasting a week template.
type WeekPaste struct {
	Status     Status         `json:"status"`
	Accepted   []task.Task    `json:"accepted,omitempty"`
	Dropped    []TemplateItem `json:"dropped,omitempty"`
	Violations []string       `json:"violations,omitempty"`
	Warnings   []string       `json:"warnings,omitempty"`
}

// PasteWeek turns a template into tasks in the target window. Every item is
// checked against a running ledger seeded from existing, and against the
// window's total budget, so later items see the hours taken by earlier ones.
// One violation rejects the whole paste and every violation is reported. Items
// whose weekday is not in the window are dropped with a warning.
func PasteWeek(tpl WeekTemplate, target plan.Window, existing []task.Task, newID func() string, order alloc.Order) (WeekPaste, error) {
	if len(tpl.Items) == 0 {
		return WeekPaste{}, ErrEmptyTemplate
	}
	if newID == nil {
		newID = task.NewID
	}
	ts, err := timeutil.ParseDate(target.StartDate)
	if err != nil {
		return WeekPaste{}, err
	}
	monday := timeutil.WeekStart(ts)
	running := alloc.Build(existing, target.HoursPerDay, order)

	var out WeekPaste
	var candidates []task.Task
	for _, item := range tpl.Items {
		if item.StartWeekday < 0 || item.EndWeekday >= timeutil.DaysInWeek || item.EndWeekday < item.StartWeekday {
			out.Violations = append(out.Violations, fmt.Sprintf("%q: weekdays %d..%d are out of range", item.Title, item.StartWeekday, item.EndWeekday))
			continue
		}
		start := timeutil.FormatDate(monday.AddDate(0, 0, item.StartWeekday))
		due := timeutil.FormatDate(monday.AddDate(0, 0, item.EndWeekday))
		if !target.Contains(start) || !target.Contains(due) {
			out.Dropped = append(out.Dropped, item)
			out.Warnings = append(out.Warnings, fmt.Sprintf("%q skipped: %s is not part of %s",
				item.Title, missingDay(item, start, target), target.Range()))
			continue
		}

		t := task.Task{
			ID:             newID(),
			Title:          item.Title,
			Description:    item.Description,
			Quadrant:       item.Quadrant,
			EstimatedHours: item.EstimatedHours,
			StartDate:      start,
			DueDate:        due,
			IsRecurring:    item.IsRecurring,
		}
		if err := t.Validate(); err != nil {
			out.Violations = append(out.Violations, fmt.Sprintf("%q: %v", t.Title, err))
			continue
		}
		res, err := fit(t, running)
		if err != nil {
			return WeekPaste{}, err
		}
		if res.Valid {
			if v, over := windowTotal(target, append(slices.Clone(existing), candidates...), t); over {
				res.Valid = false
				res.Violations = append(res.Violations, v)
			}
		}
		if !res.Valid {
			for _, msg := range res.Errors() {
				out.Violations = append(out.Violations, fmt.Sprintf("%q: %s", t.Title, msg))
			}
			continue
		}
		if err := running.Add(t); err != nil {
			return WeekPaste{}, err
		}
		candidates = append(candidates, t)
	}

	if len(out.Violations) == 0 && len(candidates) > 0 {
		used, err := running.WeeklyUsed(target.StartDate)
		if err != nil {
			return WeekPaste{}, err
		}
		if limit := running.WeeklyLimit(); used > limit+epsilon {
			out.Violations = append(out.Violations, fmt.Sprintf("week total %s exceeds the weekly limit of %s",
				timeutil.FormatHours(used), timeutil.FormatHours(limit)))
		}
	}

	if len(out.Violations) > 0 {
		out.Status = Rejected
		return out, nil
	}
	out.Status = Accepted
	out.Accepted = candidates
	return out, nil
}

func missingDay(item TemplateItem, start string, target plan.Window) string {
	if !target.Contains(start) {
		return weekdays[item.StartWeekday]
	}
	return weekdays[item.EndWeekday]
}
