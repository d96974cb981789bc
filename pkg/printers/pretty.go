package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/quadplan/pkg/admit"
	"tableflip.dev/quadplan/pkg/plan"
	"tableflip.dev/quadplan/pkg/task"
	"tableflip.dev/quadplan/pkg/timeutil"
)

type PrettyPrint struct {
	ShowID bool
}

const idWidth = 8

var (
	spacing = strings.Repeat(" ", idWidth+2)
)

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(color.Output, "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(color.Output, spacing)
	}
	_, _ = t.Fprintln(color.Output, title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(color.Output, spacing)
	}
	_, _ = t.Fprint(color.Output, title)
	_, _ = c.Fprintf(color.Output, " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(color.Output, " task")
	default:
		_, _ = c.Fprintln(color.Output, " tasks")
	}
}

// Plan prints the header of a plan window with its budget.
func (pp *PrettyPrint) Plan(label string, w plan.Window) {
	pp.Title(label)
	f := color.New(color.Faint)
	_, _ = f.Fprintf(color.Output, "%s a day, %s allocated of %s\n\n",
		timeutil.FormatHours(w.HoursPerDay),
		timeutil.FormatHours(w.AllocatedHours),
		timeutil.FormatHours(w.TotalHours))
}

// Plans lists every plan, marking the active one.
func (pp *PrettyPrint) Plans(plans plan.Plans, active int) {
	if plans.Len() == 0 {
		pp.none()
		return
	}
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("", bold.Sprint("Plan"), bold.Sprint("Days"), bold.Sprint("Per day"), bold.Sprint("Total"))
	for i, w := range plans {
		mark := ""
		if i == active {
			mark = "*"
		}
		tbl.AddRow(mark, plans.Label(i), w.Days, timeutil.FormatHours(w.HoursPerDay), timeutil.FormatHours(w.TotalHours))
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
	if start, end, ok := plans.Span(); ok && plans.Len() > 1 {
		_, _ = color.New(color.Faint).Fprintf(color.Output, "\nplanned %s\n", timeutil.FormatRange(start, end))
	}
}

// Quadrants prints tasks grouped by quadrant in grid order.
func (pp *PrettyPrint) Quadrants(tasks []task.Task) {
	for _, info := range task.DefaultQuadrants() {
		var in []task.Task
		for _, t := range tasks {
			if t.Quadrant == info.Quadrant {
				in = append(in, t)
			}
		}
		pp.TitleWithCount(fmt.Sprintf("%s %s (%s)", info.Symbol, info.Quadrant, info.Description), len(in))
		pp.Tasks(in...)
	}
}

// Tasks prints one row per task.
func (pp *PrettyPrint) Tasks(tasks ...task.Task) {
	if len(tasks) == 0 {
		pp.none()
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	done := color.New(color.Faint, color.CrossedOut)
	f := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = " "
	for _, t := range tasks {
		title := t.Title
		if t.Completed {
			title = done.Sprint(title)
		}
		hours := timeutil.FormatHours(t.EstimatedHours)
		if t.IsRecurring {
			hours += "/day"
		}
		row := []any{title, f.Sprint(hours), f.Sprint(timeutil.FormatRange(t.StartDate, t.DueDate))}
		if pp.ShowID {
			row = append([]any{y.Sprint(shortID(t.ID))}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
	pp.NewLine()
}

// Decision prints the outcome of a create or edit.
func (pp *PrettyPrint) Decision(d admit.Decision) {
	if d.Accepted() {
		g := color.New(color.FgGreen)
		_, _ = g.Fprintf(color.Output, "saved %q (%s)\n", d.Task.Title, shortID(d.Task.ID))
	} else {
		r := color.New(color.FgRed, color.Bold)
		_, _ = r.Fprintf(color.Output, "rejected %q\n", d.Task.Title)
		pp.list(color.New(color.FgRed), d.Reasons)
	}
	pp.Warnings(d.Warnings...)
}

// WeekPaste prints the outcome of pasting a week.
func (pp *PrettyPrint) WeekPaste(res admit.WeekPaste) {
	if res.Status == admit.Accepted {
		g := color.New(color.FgGreen)
		_, _ = g.Fprintf(color.Output, "pasted %d tasks\n", len(res.Accepted))
		pp.Tasks(res.Accepted...)
	} else {
		r := color.New(color.FgRed, color.Bold)
		_, _ = r.Fprintln(color.Output, "week not pasted, nothing was changed")
		pp.list(color.New(color.FgRed), res.Violations)
	}
	pp.Warnings(res.Warnings...)
}

// Warnings prints non-blocking notes.
func (pp *PrettyPrint) Warnings(warnings ...string) {
	pp.list(color.New(color.FgYellow), warnings)
}

func (pp *PrettyPrint) list(c *color.Color, lines []string) {
	for _, l := range lines {
		_, _ = c.Fprintf(color.Output, "  - %s\n", l)
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	if pp.ShowID {
		_, _ = f.Fprint(color.Output, spacing)
	}
	_, _ = f.Fprint(color.Output, " none\n\n")
}

func shortID(id string) string {
	if len(id) > idWidth {
		return id[:idWidth]
	}
	return id
}

// Key prints the quadrant legend with the names each one answers to.
func (pp *PrettyPrint) Key() {
	bold := color.New(color.Bold)
	f := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Key"), bold.Sprint("Quadrant"), bold.Sprint("Meaning"), bold.Sprint("Aliases"))
	for _, info := range task.DefaultQuadrants() {
		tbl.AddRow(info.Key, info.Symbol+" "+string(info.Quadrant), info.Description, f.Sprint(strings.Join(info.Aliases, ", ")))
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
	pp.NewLine()

	for _, info := range task.DefaultQuadrants() {
		_, _ = bold.Fprintf(color.Output, "%s %s\n", info.Symbol, info.Quadrant)
		for _, l := range info.Tooltip {
			_, _ = f.Fprintf(color.Output, "  %s\n", l)
		}
	}
}
