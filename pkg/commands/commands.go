package commands

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/quadplan/pkg/alloc"
	"tableflip.dev/quadplan/pkg/app"
	"tableflip.dev/quadplan/pkg/store"
)

var (
	oo = &base.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "quadplan",
		Short: base.Wrap80("Plan your week in the Eisenhower matrix without booking more hours than you have."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addPlan(topLevel)
	addTask(topLevel)
	addCopy(topLevel)
	addPaste(topLevel)
	addCancel(topLevel)
	addWeek(topLevel)
	addCapacity(topLevel)
	addCalendar(topLevel)
	addBalance(topLevel)
	addStatus(topLevel)
	addKey(topLevel)
	addVersion(topLevel)
}

// env is what every verb needs: the service over the configured store and
// the config it came from.
type env struct {
	cfg store.Config
	svc *app.Service
}

func load() (*env, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, err
	}
	order, err := alloc.ParseOrder(cfg.Order())
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, svc: &app.Service{Persistence: p, Order: order}}, nil
}

func (e *env) hoursPerDay(flag float64) float64 {
	if flag > 0 {
		return flag
	}
	return e.cfg.HoursPerDay()
}

// printJSON writes v when --json is set and reports whether it did.
func printJSON(v any) (bool, error) {
	if !oo.JSON {
		return false, nil
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return true, err
	}
	_, _ = fmt.Fprintln(color.Output, string(b))
	return true, nil
}
