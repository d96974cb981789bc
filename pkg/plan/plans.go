package plan

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"tableflip.dev/quadplan/pkg/timeutil"
)

// Plans is the session's windows, always kept sorted by start date.
type Plans []Window

// Len is the number of windows.
func (p Plans) Len() int {
	return len(p)
}

// At returns the window at i.
func (p Plans) At(i int) (Window, bool) {
	if i < 0 || i >= len(p) {
		return Window{}, false
	}
	return p[i], true
}

// IndexOf finds the window with exactly these bounds, or -1.
func (p Plans) IndexOf(start, end string) int {
	return slices.IndexFunc(p, func(w Window) bool {
		return w.StartDate == start && w.EndDate == end
	})
}

// Upsert replaces the window with the same bounds or inserts w in start-date
// order. It returns the index w ended up at and whether it replaced one.
func (p *Plans) Upsert(w Window) (int, bool) {
	if i := p.IndexOf(w.StartDate, w.EndDate); i >= 0 {
		(*p)[i] = w
		return i, true
	}
	i, _ := slices.BinarySearchFunc(*p, w, func(a, b Window) int {
		if c := strings.Compare(a.StartDate, b.StartDate); c != 0 {
			return c
		}
		return strings.Compare(a.EndDate, b.EndDate)
	})
	*p = slices.Insert(*p, i, w)
	return i, false
}

// Remove drops the window at i.
func (p *Plans) Remove(i int) bool {
	if i < 0 || i >= len(*p) {
		return false
	}
	*p = slices.Delete(*p, i, i+1)
	return true
}

// Overlapping lists the indexes of windows sharing a day with [start, end].
func (p Plans) Overlapping(start, end string) []int {
	var out []int
	for i, w := range p {
		if w.Overlaps(start, end) {
			out = append(out, i)
		}
	}
	return out
}

// Label names the window at i, like "Week 2 of 3 (Jan 5–11)". A lone window is
// labelled by its range only.
func (p Plans) Label(i int) string {
	w, ok := p.At(i)
	if !ok {
		return ""
	}
	if len(p) == 1 {
		return w.Range()
	}
	return fmt.Sprintf("Week %d of %d (%s)", i+1, len(p), w.Range())
}

// Span is the combined range from the first window's start to the latest
// end of any window.
func (p Plans) Span() (string, string, bool) {
	if len(p) == 0 {
		return "", "", false
	}
	end := p[0].EndDate
	for _, w := range p[1:] {
		end = max(end, w.EndDate)
	}
	return p[0].StartDate, end, true
}

// FreeWeek returns the first Monday of the next lookahead weeks whose week is
// not already covered by a window.
func (p Plans) FreeWeek(now time.Time, lookahead int) (string, bool) {
	monday := timeutil.NextMonday(now)
	for i := 0; i < lookahead; i++ {
		start := timeutil.FormatDate(monday)
		end := timeutil.FormatDate(timeutil.WeekEnd(monday))
		if len(p.Overlapping(start, end)) == 0 {
			return start, true
		}
		monday = monday.AddDate(0, 0, timeutil.DaysInWeek)
	}
	return "", false
}
