package store

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/quadplan/pkg/task"
)

type testConfig struct {
	path string
}

func (t testConfig) BasePath() string {
	return t.path
}

func (t testConfig) HoursPerDay() float64 {
	return DefaultHoursPerDay
}

func (t testConfig) Order() string {
	return "insertion"
}

func TestPersistenceWatchEmitsDocumentChanges(t *testing.T) {
	base := t.TempDir()
	p, err := Load(testConfig{path: base})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe before storing.
	time.Sleep(50 * time.Millisecond)

	tasks := []task.Task{{
		ID:             "a",
		Title:          "hello world",
		Quadrant:       task.Schedule,
		EstimatedHours: 1,
		StartDate:      "2025-12-22",
		DueDate:        "2025-12-22",
	}}
	if err := p.StoreTasks(ctx, tasks); err != nil {
		t.Fatalf("store tasks: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventInvalidated {
				return
			}
			if evt.Type == EventChanged {
				if evt.Key != KeyTasks {
					t.Fatalf("expected key %q, got %q", KeyTasks, evt.Key)
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for change event")
		}
	}
}

func TestKeyForPath(t *testing.T) {
	p := &persistence{basePath: "/base"}
	cases := map[string]struct {
		key string
		ok  bool
	}{
		"/base/tasks.json":     {KeyTasks, true},
		"/base/state.json":     {KeyState, true},
		"/base/.tmp/diskv-123": {"", false},
		"/base/notes.txt":      {"", true},
	}
	for path, want := range cases {
		key, ok := p.keyForPath(path)
		if key != want.key || ok != want.ok {
			t.Fatalf("%s: expected %q %v, got %q %v", path, want.key, want.ok, key, ok)
		}
	}
}
