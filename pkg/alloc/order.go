package alloc

import (
	"fmt"
	"slices"
	"strings"

	"tableflip.dev/quadplan/pkg/task"
)

// Order decides the sequence in which tasks are layered onto a ledger. When
// two tasks together overflow a day, the one layered first keeps the hours.
// An Order must not modify its input.
type Order func(tasks []task.Task) []task.Task

// InsertionOrder layers tasks in the order they were added to the task list.
func InsertionOrder(tasks []task.Task) []task.Task {
	return tasks
}

// EarliestDueFirst layers tasks by due date, then start date, keeping
// insertion order between ties.
func EarliestDueFirst(tasks []task.Task) []task.Task {
	out := slices.Clone(tasks)
	slices.SortStableFunc(out, func(a, b task.Task) int {
		if c := strings.Compare(a.DueDate, b.DueDate); c != 0 {
			return c
		}
		return strings.Compare(a.StartDate, b.StartDate)
	})
	return out
}

const (
	OrderInsertion   = "insertion"
	OrderEarliestDue = "earliest-due"
)

// ParseOrder maps a configured order name to its Order.
func ParseOrder(name string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", OrderInsertion:
		return InsertionOrder, nil
	case OrderEarliestDue:
		return EarliestDueFirst, nil
	default:
		return nil, fmt.Errorf("alloc: unknown order %q", name)
	}
}
