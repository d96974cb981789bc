// Package task defines the planner's task model and its quadrants.
package task

import (
	"github.com/google/uuid"

	"tableflip.dev/quadplan/pkg/timeutil"
)

// Task is a unit of planned work spanning the inclusive range
// [StartDate, DueDate].
type Task struct {
	ID             string   `json:"id" validate:"required"`
	Title          string   `json:"title" validate:"required"`
	Description    string   `json:"description,omitempty"`
	Quadrant       Quadrant `json:"quadrant" validate:"quadrant"`
	EstimatedHours float64  `json:"estimatedHours" validate:"gt=0,halfhours"`
	StartDate      string   `json:"startDate" validate:"required,datetime=2006-01-02"`
	DueDate        string   `json:"dueDate" validate:"required,datetime=2006-01-02"`
	Completed      bool     `json:"completed"`
	IsRecurring    bool     `json:"isRecurring,omitempty"`
}

// NewID returns a fresh task identity.
func NewID() string {
	return uuid.NewString()
}

// Dates lists the dates the task spans.
func (t Task) Dates() ([]string, error) {
	return timeutil.DateRange(t.StartDate, t.DueDate)
}

// Overlaps reports whether the task shares at least one day with [start, end].
func (t Task) Overlaps(start, end string) bool {
	return t.StartDate <= end && t.DueDate >= start
}

// Within reports whether the whole task lies inside [start, end].
func (t Task) Within(start, end string) bool {
	return t.StartDate >= start && t.DueDate <= end
}

// Copy returns t under a new identity, marked incomplete.
func (t Task) Copy(id string) Task {
	c := t
	c.ID = id
	c.Completed = false
	return c
}

// Index returns the position of the task with id, or -1.
func Index(tasks []Task, id string) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// Without returns a copy of tasks with the task id removed.
func Without(tasks []Task, id string) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}
