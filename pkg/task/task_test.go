package task

import (
	"strings"
	"testing"
)

func valid() Task {
	return Task{
		ID:             NewID(),
		Title:          "Write report",
		Quadrant:       Schedule,
		EstimatedHours: 2.5,
		StartDate:      "2025-12-27",
		DueDate:        "2025-12-28",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Task)
		wantErr string
	}{
		{name: "valid task", mutate: func(*Task) {}},
		{name: "missing title", mutate: func(t *Task) { t.Title = "" }, wantErr: "Title is required"},
		{name: "unknown quadrant", mutate: func(t *Task) { t.Quadrant = "Someday" }, wantErr: "Quadrant"},
		{name: "zero hours", mutate: func(t *Task) { t.EstimatedHours = 0 }, wantErr: "greater than"},
		{name: "quarter hours", mutate: func(t *Task) { t.EstimatedHours = 1.25 }, wantErr: "steps of 0.5"},
		{name: "bad date", mutate: func(t *Task) { t.StartDate = "12/27/2025" }, wantErr: "YYYY-MM-DD"},
		{name: "due before start", mutate: func(t *Task) { t.DueDate = "2025-12-26" }, wantErr: "on or after"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := valid()
			tt.mutate(&task)
			err := task.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestParseQuadrant(t *testing.T) {
	cases := map[string]Quadrant{
		"Do First":  DoFirst,
		"q2":        Schedule,
		"DELEGATE":  Delegate,
		"eliminate": Eliminate,
		" do ":      DoFirst,
	}
	for in, want := range cases {
		got, err := ParseQuadrant(in)
		if err != nil {
			t.Fatalf("ParseQuadrant(%q): unexpected error: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseQuadrant(%q): expected %s, got %s", in, want, got)
		}
	}
	if _, err := ParseQuadrant("later"); err == nil {
		t.Fatalf("expected error for unknown quadrant")
	}
}

func TestOverlapsAndWithin(t *testing.T) {
	task := valid()
	if !task.Overlaps("2025-12-28", "2026-01-03") {
		t.Fatalf("expected overlap on the due date")
	}
	if task.Overlaps("2025-12-29", "2026-01-04") {
		t.Fatalf("did not expect overlap after the due date")
	}
	if task.Within("2025-12-28", "2026-01-03") {
		t.Fatalf("task starts before the range")
	}
	if !task.Within("2025-12-22", "2025-12-28") {
		t.Fatalf("expected task inside its week")
	}
}

func TestCopyAssignsFreshIdentity(t *testing.T) {
	task := valid()
	task.Completed = true
	c := task.Copy("other")
	if c.ID != "other" || c.Completed {
		t.Fatalf("unexpected copy: %+v", c)
	}
	if c.Title != task.Title || c.EstimatedHours != task.EstimatedHours {
		t.Fatalf("copy lost fields: %+v", c)
	}
}

func TestWithout(t *testing.T) {
	a, b := valid(), valid()
	out := Without([]Task{a, b}, a.ID)
	if len(out) != 1 || out[0].ID != b.ID {
		t.Fatalf("unexpected result %+v", out)
	}
	if Index(out, a.ID) != -1 || Index(out, b.ID) != 0 {
		t.Fatalf("unexpected index lookup")
	}
}
