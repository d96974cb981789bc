package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/quadplan/pkg/task"
)

const limit = 8.0

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

func recurring(id, start, due string, hours float64) task.Task {
	t := mk(id, start, due, hours)
	t.IsRecurring = true
	return t
}

func TestBuildEmpty(t *testing.T) {
	l := Build(nil, limit, nil)
	assert.Equal(t, 0.0, l.Used("2025-12-27"))
	assert.Equal(t, 8.0, l.Remaining("2025-12-27"))
	assert.Empty(t, l.Dates())
}

func TestBuildSingleDayWithinLimit(t *testing.T) {
	l := Build([]task.Task{
		mk("1", "2025-12-27", "2025-12-27", 5),
		mk("2", "2025-12-27", "2025-12-27", 2),
	}, limit, nil)

	assert.Equal(t, 7.0, l.Used("2025-12-27"))
	assert.Equal(t, 1.0, l.Remaining("2025-12-27"))
	assert.Empty(t, l.Unplaced())
}

func TestBuildSingleDayOverflowIsDropped(t *testing.T) {
	l := Build([]task.Task{
		mk("1", "2025-12-27", "2025-12-27", 8),
		mk("2", "2025-12-27", "2025-12-27", 8),
	}, limit, nil)

	assert.Equal(t, 8.0, l.Used("2025-12-27"))
	assert.Equal(t, 0.0, l.Remaining("2025-12-27"))
	assert.Equal(t, []string{"2025-12-27"}, l.Dates(), "excess must not land on any other date")
	assert.Equal(t, map[string]float64{"2": 8}, l.Unplaced())
}

func TestBuildSequentialDrainAcrossDays(t *testing.T) {
	l := Build([]task.Task{mk("1", "2025-12-27", "2025-12-28", 15)}, limit, nil)

	assert.Equal(t, map[string]float64{"2025-12-27": 8, "2025-12-28": 7}, l.Hours())

	p := l.Placements("2025-12-28")
	require.Len(t, p, 1)
	assert.Equal(t, Placement{TaskID: "1", Title: "task 1", Quadrant: task.Schedule, Hours: 7, DayIndex: 2, TotalDays: 2}, p[0])
}

func TestBuildDrainFillsAroundExistingWork(t *testing.T) {
	l := Build([]task.Task{
		mk("1", "2025-12-27", "2025-12-27", 6),
		mk("2", "2025-12-27", "2025-12-29", 10),
	}, limit, nil)

	assert.Equal(t, map[string]float64{"2025-12-27": 8, "2025-12-28": 8}, l.Hours())
}

func TestBuildRecurringCommitsFullHoursEveryDay(t *testing.T) {
	l := Build([]task.Task{recurring("r", "2025-12-22", "2025-12-24", 2)}, limit, nil)

	assert.Equal(t, map[string]float64{"2025-12-22": 2, "2025-12-23": 2, "2025-12-24": 2}, l.Hours())
}

func TestBuildNonRecurringSameParametersDrains(t *testing.T) {
	l := Build([]task.Task{mk("n", "2025-12-22", "2025-12-24", 2)}, limit, nil)

	assert.Equal(t, map[string]float64{"2025-12-22": 2}, l.Hours())
}

func TestBuildRecurringIgnoresDailyLimit(t *testing.T) {
	l := Build([]task.Task{
		mk("1", "2025-12-22", "2025-12-22", 8),
		recurring("r", "2025-12-22", "2025-12-22", 3),
	}, limit, nil)

	assert.Equal(t, 11.0, l.Used("2025-12-22"))
	assert.Equal(t, 0.0, l.Remaining("2025-12-22"))
}

func TestBuildOrderDecidesWhoKeepsPartialDay(t *testing.T) {
	tasks := []task.Task{
		mk("late", "2025-12-22", "2025-12-23", 6),
		mk("soon", "2025-12-22", "2025-12-22", 5),
	}

	ins := Build(tasks, limit, InsertionOrder)
	assert.Equal(t, 8.0, ins.Used("2025-12-22"))
	assert.Equal(t, 0.0, ins.Used("2025-12-23"))
	assert.Equal(t, map[string]float64{"soon": 3}, ins.Unplaced())

	edf := Build(tasks, limit, EarliestDueFirst)
	assert.Equal(t, 8.0, edf.Used("2025-12-22"))
	assert.Equal(t, 3.0, edf.Used("2025-12-23"))
	assert.Empty(t, edf.Unplaced())

	// The input slice is left alone.
	assert.Equal(t, "late", tasks[0].ID)
}

func TestBuildIsDeterministic(t *testing.T) {
	tasks := []task.Task{
		mk("1", "2025-12-22", "2025-12-24", 13),
		recurring("2", "2025-12-23", "2025-12-25", 1.5),
		mk("3", "2025-12-22", "2025-12-26", 20),
	}
	first := Build(tasks, limit, nil).Hours()
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Build(tasks, limit, nil).Hours())
	}
}

func TestExcludeRemovesRecordedPlacements(t *testing.T) {
	target := mk("t", "2025-12-27", "2025-12-28", 10)
	l := Build([]task.Task{mk("1", "2025-12-27", "2025-12-27", 3), target}, limit, nil)
	require.Equal(t, map[string]float64{"2025-12-27": 8, "2025-12-28": 5}, l.Hours())

	c := l.Clone()
	require.NoError(t, c.Exclude(target))
	assert.Equal(t, 3.0, c.Used("2025-12-27"))
	assert.Equal(t, 0.0, c.Used("2025-12-28"))
	assert.Empty(t, c.Placements("2025-12-28"))
	assert.Len(t, c.Placements("2025-12-27"), 1)

	// The original is untouched.
	assert.Equal(t, 8.0, l.Used("2025-12-27"))
	assert.Len(t, l.Placements("2025-12-28"), 1)
}

func TestExcludeFallsBackToSequentialWalk(t *testing.T) {
	l := Build([]task.Task{
		mk("1", "2025-12-27", "2025-12-27", 3),
		mk("2", "2025-12-27", "2025-12-28", 10),
	}, limit, nil)

	// Nothing was placed under this id, so the estimate is walked off the
	// span from its first day.
	require.NoError(t, l.Exclude(mk("ghost", "2025-12-27", "2025-12-28", 10)))
	assert.Equal(t, 0.0, l.Used("2025-12-27"))
	assert.Equal(t, 3.0, l.Used("2025-12-28"))
}

func TestExcludeUnplacedHours(t *testing.T) {
	big := mk("big", "2025-12-27", "2025-12-27", 12)
	l := Build([]task.Task{big}, limit, nil)
	require.Equal(t, map[string]float64{"big": 4}, l.Unplaced())

	require.NoError(t, l.Exclude(big))
	assert.Empty(t, l.Unplaced())
	assert.Equal(t, 8.0, l.Remaining("2025-12-27"))
}

func TestWeeklyRemaining(t *testing.T) {
	l := Build([]task.Task{mk("1", "2025-12-22", "2025-12-26", 30)}, limit, nil)

	used, err := l.WeeklyUsed("2025-12-28")
	require.NoError(t, err)
	assert.Equal(t, 30.0, used)

	rem, err := l.WeeklyRemaining("2025-12-24")
	require.NoError(t, err)
	assert.Equal(t, 26.0, rem)

	rem, err = l.WeeklyRemaining("2025-12-29")
	require.NoError(t, err)
	assert.Equal(t, 56.0, rem, "next week is untouched")
}

func TestRemainingAcrossSumsDayByDay(t *testing.T) {
	l := Build([]task.Task{mk("1", "2025-12-27", "2025-12-28", 15)}, limit, nil)

	assert.Equal(t, 1.0, l.RemainingAcross([]string{"2025-12-27", "2025-12-28"}))
	assert.Equal(t, 9.0, l.RemainingAcross([]string{"2025-12-28", "2025-12-29"}))
}

func TestParseOrder(t *testing.T) {
	o, err := ParseOrder("earliest-due")
	require.NoError(t, err)
	assert.NotNil(t, o)

	_, err = ParseOrder("random")
	assert.Error(t, err)
}
