package options

import (
	"time"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/quadplan/pkg/task"
)

// TaskOptions
type TaskOptions struct {
	Title       string
	Description string
	Quadrant    string
	Hours       float64
	Start       string
	Due         string
	Recurring   bool
}

func AddTaskArgs(cmd *cobra.Command, o *TaskOptions) {
	cmd.Flags().StringVarP(&o.Quadrant, "quadrant", "q", "schedule",
		"Quadrant: q1..q4, do-first, schedule, delegate or eliminate.")
	cmd.Flags().Float64VarP(&o.Hours, "hours", "e", 1,
		"Estimated hours, in half hour steps.")
	cmd.Flags().StringVarP(&o.Description, "description", "d", "",
		"Longer description of the task.")
	cmd.Flags().StringVar(&o.Start, "start", "today",
		`First day of the task, example: --start="2026-1-19" or --start="1/19".`)
	cmd.Flags().StringVar(&o.Due, "due", "",
		`Last day of the task; defaults to the start day.`)
	cmd.Flags().BoolVarP(&o.Recurring, "recurring", "r", false,
		base.Wrap80("Spend the estimated hours on every day from start to due instead of once across the range."))
}

// Task builds a draft from the flags.
func (o *TaskOptions) Task(now time.Time) (task.Task, error) {
	q, err := task.ParseQuadrant(o.Quadrant)
	if err != nil {
		return task.Task{}, err
	}
	start, err := ParseDay(o.Start, now)
	if err != nil {
		return task.Task{}, err
	}
	due, err := ParseDay(o.Due, now)
	if err != nil {
		return task.Task{}, err
	}
	if due == "" {
		due = start
	}
	return task.Task{
		Title:          o.Title,
		Description:    o.Description,
		Quadrant:       q,
		EstimatedHours: o.Hours,
		StartDate:      start,
		DueDate:        due,
		IsRecurring:    o.Recurring,
	}, nil
}

// Apply copies the flags that were set on cmd onto t.
func (o *TaskOptions) Apply(cmd *cobra.Command, t *task.Task, now time.Time) error {
	f := cmd.Flags()
	if o.Title != "" {
		t.Title = o.Title
	}
	if f.Changed("quadrant") {
		q, err := task.ParseQuadrant(o.Quadrant)
		if err != nil {
			return err
		}
		t.Quadrant = q
	}
	if f.Changed("hours") {
		t.EstimatedHours = o.Hours
	}
	if f.Changed("description") {
		t.Description = o.Description
	}
	if f.Changed("start") {
		start, err := ParseDay(o.Start, now)
		if err != nil {
			return err
		}
		t.StartDate = start
	}
	if f.Changed("due") {
		due, err := ParseDay(o.Due, now)
		if err != nil {
			return err
		}
		t.DueDate = due
	}
	if f.Changed("recurring") {
		t.IsRecurring = o.Recurring
	}
	return nil
}
