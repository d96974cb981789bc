package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/quadplan/pkg/admit"
	"tableflip.dev/quadplan/pkg/plan"
	"tableflip.dev/quadplan/pkg/task"
)

// Schema is written with every state document.
const Schema = "quadplan/v1"

// Keys of the three documents a planner keeps on disk.
const (
	KeyTasks = "tasks"
	KeyPlans = "plans"
	KeyState = "state"
)

// State is the part of a session that is neither tasks nor plans.
type State struct {
	Schema string `json:"schema"`
	Active int    `json:"active"`

	Clipboard          *task.Task          `json:"clipboard,omitempty"`
	WeekClipboard      *admit.WeekTemplate `json:"weekClipboard,omitempty"`
	WeekClipboardIndex int                 `json:"weekClipboardIndex"`
}

// Persistence defines the persistence contract for a planner session. A
// missing document reads back as its zero value.
type Persistence interface {
	Tasks(ctx context.Context) ([]task.Task, error)
	StoreTasks(ctx context.Context, tasks []task.Task) error
	Plans(ctx context.Context) (plan.Plans, error)
	StorePlans(ctx context.Context, plans plan.Plans) error
	State(ctx context.Context) (State, error)
	StoreState(ctx context.Context, s State) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		TempDir:           filepath.Join(basePath, tempDir),
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) read(key string, v any) error {
	if !p.d.Has(key) {
		return nil
	}
	// Direct reads skip the cache; another process may have written the key.
	r, err := p.d.ReadStream(key, true)
	if err != nil {
		return fmt.Errorf("store: read %s: %w", key, err)
	}
	defer r.Close()
	val, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("store: read %s: %w", key, err)
	}
	if len(val) == 0 {
		return nil
	}
	if err := json.Unmarshal(val, v); err != nil {
		return fmt.Errorf("store: decode %s: %w", key, err)
	}
	return nil
}

func (p *persistence) write(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	if err := p.d.Write(key, data); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (p *persistence) Tasks(_ context.Context) ([]task.Task, error) {
	var tasks []task.Task
	if err := p.read(KeyTasks, &tasks); err != nil {
		return nil, err
	}
	kept := tasks[:0]
	for _, t := range tasks {
		if err := t.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "store: dropping task %s: %v\n", t.ID, err)
			continue
		}
		kept = append(kept, t)
	}
	return kept, nil
}

func (p *persistence) StoreTasks(_ context.Context, tasks []task.Task) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	return p.write(KeyTasks, tasks)
}

func (p *persistence) Plans(_ context.Context) (plan.Plans, error) {
	var plans plan.Plans
	if err := p.read(KeyPlans, &plans); err != nil {
		return nil, err
	}
	// Rebuild each window so a hand-edited file cannot carry stale totals or
	// an unsorted order.
	var out plan.Plans
	for _, w := range plans {
		fresh, err := plan.NewWindow(w.StartDate, w.EndDate, w.HoursPerDay)
		if err != nil {
			fmt.Fprintf(os.Stderr, "store: dropping plan %s..%s: %v\n", w.StartDate, w.EndDate, err)
			continue
		}
		if w.TotalHours > 0 && w.TotalHours <= fresh.TotalHours {
			fresh.TotalHours = w.TotalHours
		}
		out.Upsert(fresh)
	}
	return out, nil
}

func (p *persistence) StorePlans(_ context.Context, plans plan.Plans) error {
	if plans == nil {
		plans = plan.Plans{}
	}
	return p.write(KeyPlans, plans)
}

func (p *persistence) State(_ context.Context) (State, error) {
	s := State{WeekClipboardIndex: -1}
	if err := p.read(KeyState, &s); err != nil {
		return State{}, err
	}
	if s.Schema == "" {
		s.Schema = Schema
	}
	return s, nil
}

func (p *persistence) StoreState(_ context.Context, s State) error {
	s.Schema = Schema
	return p.write(KeyState, s)
}

const (
	fileExt = ".json"
	tempDir = ".tmp"
)

func keyToPathTransform(s string) *diskv.PathKey {
	return &diskv.PathKey{FileName: s + fileExt}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return strings.TrimSuffix(pathKey.FileName, fileExt)
}
