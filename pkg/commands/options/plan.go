package options

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

// PlanOptions
type PlanOptions struct {
	HoursPerDay float64
	Start       string
	Span        string
	Tomorrow    bool
	TodayHours  float64
}

func AddHoursPerDayArgs(cmd *cobra.Command, o *PlanOptions) {
	cmd.Flags().Float64Var(&o.HoursPerDay, "hours", 0,
		base.Wrap80("Hours available per day, in half hour steps. Defaults to hours_per_day from the config."))
}

func AddStartArgs(cmd *cobra.Command, o *PlanOptions) {
	cmd.Flags().StringVar(&o.Start, "start", "",
		`First day of the plan, example: --start="2026-1-19" or --start="1/19".`)
}

func AddSpanArgs(cmd *cobra.Command, o *PlanOptions) {
	cmd.Flags().StringVar(&o.Span, "span", "1w",
		`Length of the plan, example: --span=10d or --span=1w3d.`)
}

func AddCurrentWeekArgs(cmd *cobra.Command, o *PlanOptions) {
	cmd.Flags().BoolVar(&o.Tomorrow, "tomorrow", false,
		"Start the plan tomorrow instead of today.")
	cmd.Flags().Float64Var(&o.TodayHours, "today-hours", 0,
		base.Wrap80("Hours you can still give today when less than a full day is left."))
}
