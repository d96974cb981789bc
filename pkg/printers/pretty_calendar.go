package printers

import (
	"fmt"
	"math"
	"sort"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/quadplan/pkg/app"
	"tableflip.dev/quadplan/pkg/balance"
	"tableflip.dev/quadplan/pkg/task"
	"tableflip.dev/quadplan/pkg/timeutil"
)

// Calendar prints each day with the work placed on it, one block per plan.
// Days outside every plan get their own block.
func (pp *PrettyPrint) Calendar(today string, days []app.CalendarDay) {
	if len(days) == 0 {
		pp.none()
		return
	}
	p := color.New()
	b := color.New(color.Bold)
	s := color.New(color.Underline)
	f := color.New(color.Faint)

	for i, d := range days {
		if i == 0 || d.Plan != days[i-1].Plan {
			if i > 0 {
				pp.NewLine()
			}
			title := d.Plan
			if title == "" {
				title = "Not planned"
			}
			pp.Title(title)
		}
		printer := p
		if d.Date == today {
			printer = b
		}
		t, err := timeutil.ParseDate(d.Date)
		if err != nil {
			continue
		}
		if timeutil.WeekdayIndex(t) >= 5 {
			printer = s
		}
		_, _ = printer.Fprintf(color.Output, "%s", t.Format("Mon Jan _2"))
		if d.Plan == "" {
			_, _ = f.Fprintln(color.Output)
			continue
		}
		_, _ = f.Fprintf(color.Output, "  %s/%s\n", timeutil.FormatHours(d.Used), timeutil.FormatHours(d.Limit))
		for _, pl := range d.Placements {
			span := ""
			if pl.TotalDays > 1 {
				span = fmt.Sprintf(" (day %d of %d)", pl.DayIndex, pl.TotalDays)
			}
			_, _ = p.Fprintf(color.Output, "    %s %s %s%s\n", symbol(pl.Quadrant), timeutil.FormatHours(pl.Hours), pl.Title, f.Sprint(span))
		}
	}
	pp.NewLine()
}

// Capacity prints committed and free hours over a selection.
func (pp *PrettyPrint) Capacity(v app.CapacityView) {
	pp.Title(v.Label)
	bold := color.New(color.Bold)
	full := color.New(color.FgRed)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Day"), bold.Sprint("Used"), bold.Sprint("Free"))
	for _, d := range v.Days {
		free := timeutil.FormatHours(d.Remaining)
		if d.Remaining <= 0 {
			free = full.Sprint(free)
		}
		day := d.Date
		if t, err := timeutil.ParseDate(d.Date); err == nil {
			day = t.Format("Mon Jan _2")
		}
		tbl.AddRow(day, timeutil.FormatHours(d.Used), free)
	}
	tbl.RightAlign(1)
	tbl.RightAlign(2)
	_, _ = fmt.Fprintln(color.Output, tbl)

	f := color.New(color.Faint)
	_, _ = f.Fprintf(color.Output, "\n%s free in range, %s left this week\n",
		timeutil.FormatHours(v.Remaining), timeutil.FormatHours(math.Max(0, v.WeeklyRemaining)))
	ids := make([]string, 0, len(v.Unplaced))
	for id := range v.Unplaced {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		pp.Warnings(fmt.Sprintf("%s has %s that no longer fit in its dates", shortID(id), timeutil.FormatHours(v.Unplaced[id])))
	}

	if r := v.Result; r != nil {
		if r.Valid {
			_, _ = color.New(color.FgGreen).Fprintf(color.Output, "fits, up to %s\n", timeutil.FormatHours(r.MaxAllowableHours))
		} else {
			pp.list(color.New(color.FgRed), r.Errors())
		}
		pp.Warnings(r.Warnings...)
	}
}

// Balance prints the quadrant mix against its benchmarks.
func (pp *PrettyPrint) Balance(r balance.Report) {
	if r.Total == 0 {
		pp.none()
		return
	}
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("", bold.Sprint("Quadrant"), bold.Sprint("Tasks"), bold.Sprint("Share"), bold.Sprint("Target"))
	for _, info := range task.DefaultQuadrants() {
		b := balance.Benchmarks[info.Quadrant]
		tbl.AddRow(info.Symbol, info.Quadrant, r.Counts[info.Quadrant],
			fmt.Sprintf("%d%%", r.Percentages[info.Quadrant]),
			fmt.Sprintf("%d-%d%%", b.Min, b.Max))
	}
	tbl.RightAlign(2)
	tbl.RightAlign(3)
	_, _ = fmt.Fprintln(color.Output, tbl)
	pp.NewLine()

	if r.Balanced() {
		_, _ = color.New(color.FgGreen).Fprintln(color.Output, "well balanced")
	}
	pp.list(color.New(color.FgRed), r.Issues)
	pp.Warnings(r.Warnings...)
}

func symbol(q task.Quadrant) string {
	if info, ok := q.Info(); ok {
		return info.Symbol
	}
	return "?"
}
