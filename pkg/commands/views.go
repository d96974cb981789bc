package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/quadplan/pkg/app"
	"tableflip.dev/quadplan/pkg/commands/options"
	"tableflip.dev/quadplan/pkg/printers"
	"tableflip.dev/quadplan/pkg/timeutil"
)

func addCapacity(topLevel *cobra.Command) {
	var start, end string
	q := app.CapacityQuery{}

	cmd := &cobra.Command{
		Use:   "capacity",
		Short: "Show used and free hours per day",
		Example: `
quadplan capacity
quadplan capacity --start 1/20 --end 1/22 --hours 10
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := load()
			if err != nil {
				return err
			}
			now := time.Now()
			if q.Start, err = options.ParseDay(start, now); err != nil {
				return oo.HandleError(err)
			}
			if q.End, err = options.ParseDay(end, now); err != nil {
				return oo.HandleError(err)
			}
			view, err := e.svc.Capacity(context.Background(), q)
			if err != nil {
				return oo.HandleError(err)
			}
			if ok, err := printJSON(view); ok {
				return oo.HandleError(err)
			}
			pp := printers.PrettyPrint{}
			pp.Capacity(view)
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "First day to show; defaults to the start of the plan.")
	cmd.Flags().StringVar(&end, "end", "", "Last day to show; defaults to the end of the plan.")
	cmd.Flags().Float64Var(&q.Hours, "hours", 0, "Check whether this many more hours fit in the range.")
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addCalendar(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "Show where each task's hours land, day by day",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := load()
			if err != nil {
				return err
			}
			days, err := e.svc.Calendar(context.Background())
			if err != nil {
				return oo.HandleError(err)
			}
			if ok, err := printJSON(days); ok {
				return oo.HandleError(err)
			}
			pp := printers.PrettyPrint{}
			pp.Calendar(timeutil.FormatDate(time.Now()), days)
			return nil
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addBalance(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Compare the quadrant mix of the active plan with healthy targets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := load()
			if err != nil {
				return err
			}
			r, err := e.svc.Balance(context.Background())
			if err != nil {
				return oo.HandleError(err)
			}
			if ok, err := printJSON(r); ok {
				return oo.HandleError(err)
			}
			pp := printers.PrettyPrint{}
			pp.Balance(r)
			return nil
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
