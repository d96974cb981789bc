package task

import (
	"fmt"
	"strings"
)

// Quadrant names one of the four Eisenhower categories.
type Quadrant string

const (
	DoFirst   Quadrant = "Do First"
	Schedule  Quadrant = "Schedule"
	Delegate  Quadrant = "Delegate"
	Eliminate Quadrant = "Eliminate"
)

// Info describes how a quadrant is presented and which aliases select it.
type Info struct {
	Quadrant    Quadrant
	Key         string
	Symbol      string
	Description string
	Tooltip     []string
	Aliases     []string
}

func DefaultQuadrants() []Info {
	return []Info{{
		Quadrant:    DoFirst,
		Key:         "q1",
		Symbol:      "▲",
		Description: "Urgent and Important",
		Tooltip: []string{
			"Crisis mode: deadlines, emergencies, and pressing problems.",
			"Handle these immediately but work to minimize time here through better planning.",
		},
		Aliases: []string{"do-first", "do", "urgent-important"},
	}, {
		Quadrant:    Schedule,
		Key:         "q2",
		Symbol:      "◆",
		Description: "Not Urgent but Important",
		Tooltip: []string{
			"Strategic zone: planning, personal development, and relationship building.",
			"This is where you should spend most of your time for long-term success.",
		},
		Aliases: []string{"schedule", "plan", "important"},
	}, {
		Quadrant:    Delegate,
		Key:         "q3",
		Symbol:      "►",
		Description: "Urgent but Not Important",
		Tooltip: []string{
			"Distraction zone: interruptions, some calls and emails, other people's priorities.",
			"Learn to say no or delegate these tasks.",
		},
		Aliases: []string{"delegate", "urgent"},
	}, {
		Quadrant:    Eliminate,
		Key:         "q4",
		Symbol:      "○",
		Description: "Not Urgent and Not Important",
		Tooltip: []string{
			"Time wasters: busy work, excessive social media, and trivial tasks.",
			"Minimize or eliminate these activities entirely.",
		},
		Aliases: []string{"eliminate", "drop"},
	}}
}

// Quadrants lists the four quadrants in grid order.
func Quadrants() []Quadrant {
	all := DefaultQuadrants()
	out := make([]Quadrant, len(all))
	for i, q := range all {
		out[i] = q.Quadrant
	}
	return out
}

// Info returns the presentation record for q.
func (q Quadrant) Info() (Info, bool) {
	for _, i := range DefaultQuadrants() {
		if i.Quadrant == q {
			return i, true
		}
	}
	return Info{}, false
}

func (q Quadrant) Valid() bool {
	_, ok := q.Info()
	return ok
}

func (q Quadrant) String() string {
	return string(q)
}

// ParseQuadrant accepts a quadrant title, key (q1..q4) or alias, ignoring case.
func ParseQuadrant(raw string) (Quadrant, error) {
	want := strings.ToLower(strings.TrimSpace(raw))
	for _, i := range DefaultQuadrants() {
		if want == strings.ToLower(string(i.Quadrant)) || want == i.Key {
			return i.Quadrant, nil
		}
		for _, a := range i.Aliases {
			if want == a {
				return i.Quadrant, nil
			}
		}
	}
	return "", fmt.Errorf("task: unknown quadrant %q", raw)
}
