package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/quadplan/pkg/admit"
	"tableflip.dev/quadplan/pkg/printers"
	"tableflip.dev/quadplan/pkg/task"
)

func addCopy(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "copy <id>",
		Short: "Copy a task to the clipboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := load()
			if err != nil {
				return err
			}
			t, err := e.svc.CopyTask(context.Background(), args[0])
			return oo.HandleError(showTask(t, err))
		},
		ValidArgsFunction: taskIDCompletions,
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addPaste(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "paste [quadrant]",
		Short: "Paste the clipboard task into the active plan",
		Long: `Paste the clipboard task into the active plan.

The copy keeps the title, description, hours and recurrence of the original and
lands on the same weekdays of the active plan. When it does not fit the
clipboard is kept so it can be pasted into another plan.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			var q task.Quadrant
			if len(args) == 1 {
				var err error
				if q, err = task.ParseQuadrant(args[0]); err != nil {
					return oo.HandleError(err)
				}
			}
			e, err := load()
			if err != nil {
				return err
			}
			t, warnings, err := e.svc.PasteTask(context.Background(), q)
			var pe *admit.PasteError
			if errors.As(err, &pe) && !oo.JSON {
				_, _ = color.New(color.FgRed).Fprintln(color.Output, pe.Error())
				_, _ = color.New(color.Faint).Fprintln(color.Output, "the clipboard is kept, paste into another plan or run `quadplan cancel`")
				return nil
			}
			if err := showTask(t, err); err != nil {
				return oo.HandleError(err)
			}
			if !oo.JSON {
				pp := printers.PrettyPrint{}
				pp.Warnings(warnings...)
			}
			return nil
		},
		ValidArgsFunction: func(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return quadrantCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addCancel(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "cancel",
		Short: "Empty the task and week clipboards",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := load()
			if err != nil {
				return err
			}
			return oo.HandleError(e.svc.CancelClipboard(context.Background()))
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addWeek(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "week",
		Short: "Copy a whole week into another plan",
		Example: `
quadplan week copy
quadplan plan next
quadplan week paste
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addWeekCopy(cmd)
	addWeekPaste(cmd)

	topLevel.AddCommand(cmd)
}

func addWeekCopy(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Copy the active plan's tasks by weekday",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := load()
			if err != nil {
				return err
			}
			tpl, err := e.svc.CopyWeek(context.Background())
			if err != nil {
				return oo.HandleError(err)
			}
			if ok, err := printJSON(tpl); ok {
				return oo.HandleError(err)
			}
			_, _ = fmt.Fprintf(color.Output, "copied %d tasks\n", len(tpl.Items))
			return nil
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addWeekPaste(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "paste",
		Short: "Paste the copied week into the active plan, all or nothing",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := load()
			if err != nil {
				return err
			}
			res, err := e.svc.PasteWeek(context.Background())
			if err != nil {
				return oo.HandleError(err)
			}
			if ok, err := printJSON(res); ok {
				return oo.HandleError(err)
			}
			pp := printers.PrettyPrint{ShowID: true}
			pp.WeekPaste(res)
			return nil
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
