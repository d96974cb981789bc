package admit

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/quadplan/pkg/alloc"
	"tableflip.dev/quadplan/pkg/plan"
	"tableflip.dev/quadplan/pkg/task"
)

func mk(id, start, due string, hours float64) task.Task {
	return task.Task{
		ID:             id,
		Title:          "task " + id,
		Quadrant:       task.Schedule,
		EstimatedHours: hours,
		StartDate:      start,
		DueDate:        due,
	}
}

func week(t *testing.T, start string) plan.Window {
	t.Helper()
	w, err := plan.FutureWeek(start, 8)
	require.NoError(t, err)
	return w
}

// shortWeek is planned on Wed Jan 7 at 22:00, so today only brings 2h and
// the window's total is 34h rather than 5*8h.
func shortWeek(t *testing.T) plan.Window {
	t.Helper()
	w, err := plan.CurrentWeek(time.Date(2026, 1, 7, 22, 0, 0, 0, time.Local), 8, plan.CurrentWeekOptions{})
	require.NoError(t, err)
	require.Equal(t, "2026-01-07", w.StartDate)
	require.Equal(t, 34.0, w.TotalHours)
	return w
}

func counter(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func TestCheckNeedsALimit(t *testing.T) {
	_, err := Check(Draft{Task: mk("x", "2025-12-22", "2025-12-22", 1)})
	assert.ErrorIs(t, err, ErrNoDailyLimit)
}

func TestCheckCreate(t *testing.T) {
	w := week(t, "2025-12-22")
	tasks := []task.Task{mk("a", "2025-12-22", "2025-12-22", 5)}

	ok, err := Check(Draft{Task: mk("b", "2025-12-22", "2025-12-22", 3), Tasks: tasks, Window: &w})
	require.NoError(t, err)
	assert.True(t, ok.Accepted())
	assert.Empty(t, ok.Reasons)

	bad, err := Check(Draft{Task: mk("b", "2025-12-22", "2025-12-22", 4), Tasks: tasks, Window: &w})
	require.NoError(t, err)
	assert.False(t, bad.Accepted())
	assert.False(t, bad.Invalid())
	require.Len(t, bad.Reasons, 1)
	assert.Equal(t, "not enough capacity on Mon Dec 22: requested 4h, available 3h (short by 1h)", bad.Reasons[0])
	assert.Equal(t, "b", bad.Task.ID, "the draft is handed back for editing")
}

func TestCheckRejectsInvalidInput(t *testing.T) {
	w := week(t, "2025-12-22")
	cases := map[string]task.Task{
		"due before start": mk("x", "2025-12-24", "2025-12-23", 2),
		"quarter hours":    mk("x", "2025-12-24", "2025-12-24", 1.25),
		"no hours":         mk("x", "2025-12-24", "2025-12-24", 0),
		"outside the plan": mk("x", "2025-12-28", "2025-12-29", 2),
		"no title": func() task.Task {
			x := mk("x", "2025-12-24", "2025-12-24", 2)
			x.Title = ""
			return x
		}(),
	}
	for name, draft := range cases {
		t.Run(name, func(t *testing.T) {
			dec, err := Check(Draft{Task: draft, Window: &w})
			require.NoError(t, err)
			assert.True(t, dec.Invalid())
			assert.NotEmpty(t, dec.Reasons)
		})
	}
}

func TestCheckRejectsDuplicateID(t *testing.T) {
	w := week(t, "2025-12-22")
	tasks := []task.Task{mk("a", "2025-12-22", "2025-12-22", 1)}
	dec, err := Check(Draft{Task: mk("a", "2025-12-23", "2025-12-23", 1), Tasks: tasks, Window: &w})
	require.NoError(t, err)
	assert.True(t, dec.Invalid())
}

func TestCheckEditExcludesItself(t *testing.T) {
	w := week(t, "2025-12-22")
	full := mk("a", "2025-12-22", "2025-12-22", 8)
	tasks := []task.Task{full}

	same, err := Check(Draft{Task: full, Tasks: tasks, Window: &w, EditingID: "a"})
	require.NoError(t, err)
	assert.True(t, same.Accepted(), "an unchanged edit always fits")

	other := mk("b", "2025-12-22", "2025-12-22", 8)
	dup, err := Check(Draft{Task: other, Tasks: tasks, Window: &w})
	require.NoError(t, err)
	assert.False(t, dup.Accepted())
}

func TestCheckRecurringIsPerDay(t *testing.T) {
	w := week(t, "2025-12-22")
	tasks := []task.Task{mk("busy", "2025-12-23", "2025-12-23", 7)}
	r := mk("r", "2025-12-22", "2025-12-24", 2)
	r.IsRecurring = true

	dec, err := Check(Draft{Task: r, Tasks: tasks, Window: &w})
	require.NoError(t, err)
	assert.False(t, dec.Accepted())
	require.Len(t, dec.Result.Violations, 1)
	assert.Equal(t, alloc.KindDayCapacity, dec.Result.Violations[0].Kind)
	assert.Equal(t, "2025-12-23", dec.Result.Violations[0].Date)
	assert.Contains(t, dec.Reasons[0], "Tue Dec 23")

	// The same hours drained as a pool fit easily.
	r.IsRecurring = false
	dec, err = Check(Draft{Task: r, Tasks: tasks, Window: &w})
	require.NoError(t, err)
	assert.True(t, dec.Accepted())
}

func TestCheckEditWarnsAboutDisplacedWork(t *testing.T) {
	w := week(t, "2025-12-22")
	tasks := []task.Task{
		mk("a", "2025-12-22", "2025-12-23", 4),
		mk("b", "2025-12-22", "2025-12-22", 4),
	}
	grown := mk("a", "2025-12-22", "2025-12-23", 8)

	dec, err := Check(Draft{Task: grown, Tasks: tasks, Window: &w, EditingID: "a"})
	require.NoError(t, err)
	assert.True(t, dec.Accepted())
	assert.Contains(t, dec.Warnings, `"task b" has 4h that no longer fit in its dates`)
}

func TestRemainingAcrossRange(t *testing.T) {
	w := week(t, "2025-12-22")
	tasks := []task.Task{mk("a", "2025-12-22", "2025-12-23", 10)}

	rc, err := RemainingAcrossRange("2025-12-21", "2025-12-23", 8, tasks, w, nil)
	require.NoError(t, err)
	assert.Equal(t, RangeCapacity{TotalAvailable: 6, Shortfall: 2, CanAllocate: false}, rc)

	rc, err = RemainingAcrossRange("2025-12-23", "2025-12-24", 8, tasks, w, nil)
	require.NoError(t, err)
	assert.True(t, rc.CanAllocate)
	assert.Equal(t, 14.0, rc.TotalAvailable)

	_, err = RemainingAcrossRange("2025-12-24", "2025-12-23", 1, tasks, w, nil)
	assert.Error(t, err)
}

func TestCheckHonorsWindowTotal(t *testing.T) {
	w := shortWeek(t)

	var tasks []task.Task
	for i, d := range []string{"2026-01-07", "2026-01-08", "2026-01-09", "2026-01-10"} {
		dec, err := Check(Draft{Task: mk(fmt.Sprintf("t%d", i), d, d, 8), Tasks: tasks, Window: &w})
		require.NoError(t, err)
		require.True(t, dec.Accepted(), "%s: %v", d, dec.Reasons)
		tasks = append(tasks, dec.Task)
	}

	// Sunday still has 8h in the ledger but the plan only has 2h left.
	dec, err := Check(Draft{Task: mk("t4", "2026-01-11", "2026-01-11", 8), Tasks: tasks, Window: &w})
	require.NoError(t, err)
	assert.False(t, dec.Accepted())
	assert.False(t, dec.Invalid())
	require.Len(t, dec.Result.Violations, 1)
	v := dec.Result.Violations[0]
	assert.Equal(t, alloc.KindWindowTotal, v.Kind)
	assert.Equal(t, 8.0, v.Requested)
	assert.Equal(t, 2.0, v.Available)
	assert.Equal(t, 6.0, v.Shortfall)
	assert.Equal(t, 2.0, dec.Result.MaxAllowableHours)
	assert.Equal(t, []string{"plan total exceeded: requested 8h, available in this plan 2h (short by 6h)"}, dec.Reasons)

	dec, err = Check(Draft{Task: mk("t4", "2026-01-11", "2026-01-11", 2), Tasks: tasks, Window: &w})
	require.NoError(t, err)
	assert.True(t, dec.Accepted(), "%v", dec.Reasons)

	// Editing a task frees its own hours from the total.
	edit := mk("t0", "2026-01-07", "2026-01-07", 8)
	dec, err = Check(Draft{Task: edit, Tasks: tasks, Window: &w, EditingID: "t0"})
	require.NoError(t, err)
	assert.True(t, dec.Accepted(), "%v", dec.Reasons)
}
