package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/quadplan/pkg/commands/options"
	"tableflip.dev/quadplan/pkg/plan"
	"tableflip.dev/quadplan/pkg/printers"
)

func addPlan(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan the hours you have",
		Example: `
quadplan plan week --hours 6
quadplan plan future --start 1/19
quadplan plan custom --span 10d
quadplan plan list
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addPlanWeek(cmd)
	addPlanFuture(cmd)
	addPlanCustom(cmd)
	addPlanList(cmd)
	addPlanStep(cmd, "next", "Move to the following plan", 1)
	addPlanStep(cmd, "prev", "Move to the preceding plan", -1)
	addPlanRemove(cmd)

	topLevel.AddCommand(cmd)
}

func addPlanWeek(topLevel *cobra.Command) {
	po := &options.PlanOptions{}

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Plan from today until Sunday",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := load()
			if err != nil {
				return err
			}
			opts := plan.CurrentWeekOptions{StartTomorrow: po.Tomorrow}
			if cmd.Flags().Changed("today-hours") {
				opts.TodayHours = &po.TodayHours
			}
			w, err := e.svc.PlanWeek(context.Background(), e.hoursPerDay(po.HoursPerDay), opts)
			return oo.HandleError(showPlan(e, w, err))
		},
	}

	options.AddHoursPerDayArgs(cmd, po)
	options.AddCurrentWeekArgs(cmd, po)
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addPlanFuture(topLevel *cobra.Command) {
	po := &options.PlanOptions{}

	cmd := &cobra.Command{
		Use:   "future",
		Short: "Plan a Monday to Sunday week ahead",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := load()
			if err != nil {
				return err
			}
			start, err := options.ParseDay(po.Start, time.Now())
			if err != nil {
				return oo.HandleError(err)
			}
			w, err := e.svc.PlanFuture(context.Background(), start, e.hoursPerDay(po.HoursPerDay))
			return oo.HandleError(showPlan(e, w, err))
		},
	}

	options.AddHoursPerDayArgs(cmd, po)
	options.AddStartArgs(cmd, po)
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addPlanCustom(topLevel *cobra.Command) {
	po := &options.PlanOptions{}

	cmd := &cobra.Command{
		Use:   "custom",
		Short: "Plan any number of days",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := load()
			if err != nil {
				return err
			}
			start, err := options.ParseDay(po.Start, time.Now())
			if err != nil {
				return oo.HandleError(err)
			}
			w, err := e.svc.PlanCustom(context.Background(), start, po.Span, e.hoursPerDay(po.HoursPerDay))
			return oo.HandleError(showPlan(e, w, err))
		},
	}

	options.AddHoursPerDayArgs(cmd, po)
	options.AddStartArgs(cmd, po)
	options.AddSpanArgs(cmd, po)
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addPlanList(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List every plan",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := load()
			if err != nil {
				return err
			}
			sess, err := e.svc.Session(context.Background())
			if err != nil {
				return oo.HandleError(err)
			}
			if ok, err := printJSON(sess.Plans); ok {
				return oo.HandleError(err)
			}
			pp := printers.PrettyPrint{}
			pp.Plans(sess.Plans, sess.Active)
			return nil
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addPlanStep(topLevel *cobra.Command, use, short string, by int) {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := load()
			if err != nil {
				return err
			}
			step := e.svc.Next
			if by < 0 {
				step = e.svc.Previous
			}
			w, err := step(context.Background())
			return oo.HandleError(showPlan(e, w, err))
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addPlanRemove(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "rm",
		Short: "Drop the active plan, keeping its tasks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := load()
			if err != nil {
				return err
			}
			w, err := e.svc.RemovePlan(context.Background())
			if err != nil {
				return oo.HandleError(err)
			}
			if ok, err := printJSON(w); ok {
				return oo.HandleError(err)
			}
			_, _ = fmt.Fprintf(color.Output, "removed %s\n", w.Range())
			return nil
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

// showPlan prints the active plan after a plan change.
func showPlan(e *env, w plan.Window, err error) error {
	if err != nil {
		return err
	}
	if ok, err := printJSON(w); ok {
		return err
	}
	sess, err := e.svc.Session(context.Background())
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{}
	pp.Plan(sess.Label(), w)
	return nil
}
