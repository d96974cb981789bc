// Package balance compares how tasks spread over the quadrants against a
// healthy mix, where most work sits in Schedule.
package balance

import (
	"fmt"
	"math"

	"tableflip.dev/quadplan/pkg/task"
)

// Range is an inclusive band of whole percentages.
type Range struct {
	Min int
	Max int
}

// Benchmarks is the healthy share of tasks per quadrant.
var Benchmarks = map[task.Quadrant]Range{
	task.DoFirst:   {Min: 15, Max: 25},
	task.Schedule:  {Min: 50, Max: 65},
	task.Delegate:  {Min: 5, Max: 15},
	task.Eliminate: {Min: 5, Max: 15},
}

// MajorityThreshold is the task count from which Schedule must be the largest
// quadrant.
const MajorityThreshold = 4

// Report is the balance of one set of tasks.
type Report struct {
	Total       int                   `json:"total"`
	Counts      map[task.Quadrant]int `json:"counts"`
	Percentages map[task.Quadrant]int `json:"percentages"`
	Issues      []string              `json:"issues,omitempty"`
	Warnings    []string              `json:"warnings,omitempty"`
}

// Balanced is true when nothing needs fixing. Warnings do not count.
func (r Report) Balanced() bool {
	return r.Total > 0 && len(r.Issues) == 0
}

// Evaluate counts tasks per quadrant and checks the shares against
// Benchmarks. Tasks with an unknown quadrant are ignored.
func Evaluate(tasks []task.Task) Report {
	r := Report{
		Counts:      make(map[task.Quadrant]int, 4),
		Percentages: make(map[task.Quadrant]int, 4),
	}
	for _, t := range tasks {
		if t.Quadrant.Valid() {
			r.Counts[t.Quadrant]++
			r.Total++
		}
	}
	if r.Total == 0 {
		return r
	}
	for _, q := range task.Quadrants() {
		r.Percentages[q] = int(math.Round(float64(r.Counts[q]) / float64(r.Total) * 100))
	}

	p := r.Percentages
	if b := Benchmarks[task.DoFirst]; p[task.DoFirst] < b.Min {
		r.Warnings = append(r.Warnings, below(task.DoFirst, p[task.DoFirst], b.Min))
	} else if p[task.DoFirst] > b.Max {
		r.Issues = append(r.Issues, above(task.DoFirst, p[task.DoFirst], b.Max)+" - too reactive!")
	}

	if b := Benchmarks[task.Schedule]; p[task.Schedule] < b.Min {
		r.Issues = append(r.Issues, fmt.Sprintf("%s is too low (%d%% < %d%%) - focus on strategic work!", key(task.Schedule), p[task.Schedule], b.Min))
	} else if p[task.Schedule] > b.Max {
		r.Warnings = append(r.Warnings, fmt.Sprintf("%s is above target (%d%% > %d%%)", key(task.Schedule), p[task.Schedule], b.Max))
	}

	majority := p[task.Schedule] > p[task.DoFirst] && p[task.Schedule] > p[task.Delegate] && p[task.Schedule] > p[task.Eliminate]
	if !majority && r.Total >= MajorityThreshold {
		r.Issues = append(r.Issues, fmt.Sprintf("%s should be your largest quadrant for optimal productivity", key(task.Schedule)))
	}

	if b := Benchmarks[task.Delegate]; p[task.Delegate] > b.Max {
		r.Issues = append(r.Issues, above(task.Delegate, p[task.Delegate], b.Max)+" - too many distractions!")
	}
	if b := Benchmarks[task.Eliminate]; p[task.Eliminate] > b.Max {
		r.Issues = append(r.Issues, above(task.Eliminate, p[task.Eliminate], b.Max)+" - eliminate time wasters!")
	}
	return r
}

func key(q task.Quadrant) string {
	if i, ok := q.Info(); ok {
		return fmt.Sprintf("%s (%s)", q, i.Key)
	}
	return string(q)
}

func below(q task.Quadrant, got, floor int) string {
	return fmt.Sprintf("%s is below target (%d%% < %d%%)", key(q), got, floor)
}

func above(q task.Quadrant, got, ceiling int) string {
	return fmt.Sprintf("%s is too high (%d%% > %d%%)", key(q), got, ceiling)
}
