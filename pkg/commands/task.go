package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/quadplan/pkg/commands/options"
	"tableflip.dev/quadplan/pkg/printers"
	"tableflip.dev/quadplan/pkg/task"
)

func addTask(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks of the active plan",
		Example: `
quadplan task add write the quarterly report -q q2 -e 3 --start 1/19 --due 1/21
quadplan task list -k
quadplan task move 1a2b3c q1
quadplan task done 1a2b3c
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addTaskAdd(cmd)
	addTaskEdit(cmd)
	addTaskRemove(cmd)
	addTaskMove(cmd)
	addTaskDone(cmd)
	addTaskList(cmd)
	addTaskClear(cmd)

	topLevel.AddCommand(cmd)
}

func addTaskAdd(topLevel *cobra.Command) {
	to := &options.TaskOptions{}

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task if it fits in the plan",
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) < 1 {
				return errors.New("requires a title")
			}
			to.Title = strings.Join(args, " ")

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := load()
			if err != nil {
				return err
			}
			t, err := to.Task(time.Now())
			if err != nil {
				return oo.HandleError(err)
			}
			dec, err := e.svc.CreateTask(context.Background(), t)
			if err != nil {
				return oo.HandleError(err)
			}
			if ok, err := printJSON(dec); ok {
				return oo.HandleError(err)
			}
			pp := printers.PrettyPrint{}
			pp.Decision(dec)
			return nil
		},
	}

	options.AddTaskArgs(cmd, to)
	registerQuadrantFlag(cmd)
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addTaskEdit(topLevel *cobra.Command) {
	to := &options.TaskOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "edit <id> [new title]",
		Short: "Change a task; the change is kept only if it still fits",
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) < 1 {
				return errors.New("requires a task id")
			}
			io.ID = args[0]
			to.Title = strings.Join(args[1:], " ")

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := load()
			if err != nil {
				return err
			}
			ctx := context.Background()
			edited, err := e.svc.Task(ctx, io.ID)
			if err != nil {
				return oo.HandleError(err)
			}
			if err := to.Apply(cmd, &edited, time.Now()); err != nil {
				return oo.HandleError(err)
			}
			dec, err := e.svc.EditTask(ctx, edited.ID, func(t *task.Task) { *t = edited })
			if err != nil {
				return oo.HandleError(err)
			}
			if ok, err := printJSON(dec); ok {
				return oo.HandleError(err)
			}
			pp := printers.PrettyPrint{}
			pp.Decision(dec)
			return nil
		},
		ValidArgsFunction: taskIDCompletions,
	}

	options.AddTaskArgs(cmd, to)
	registerQuadrantFlag(cmd)
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addTaskRemove(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := load()
			if err != nil {
				return err
			}
			t, err := e.svc.DeleteTask(context.Background(), args[0])
			return oo.HandleError(showTask(t, err))
		},
		ValidArgsFunction: taskIDCompletions,
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addTaskMove(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "move <id> <quadrant>",
		Short: "Move a task to another quadrant",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			q, err := task.ParseQuadrant(args[1])
			if err != nil {
				return oo.HandleError(err)
			}
			e, err := load()
			if err != nil {
				return err
			}
			t, err := e.svc.MoveTask(context.Background(), args[0], q)
			return oo.HandleError(showTask(t, err))
		},
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 1 {
				return quadrantCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
			}
			return taskIDCompletions(cmd, args, toComplete)
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addTaskDone(topLevel *cobra.Command) {
	undo := false

	cmd := &cobra.Command{
		Use:     "done <id>",
		Aliases: []string{"complete"},
		Short:   "Mark a task completed",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := load()
			if err != nil {
				return err
			}
			t, err := e.svc.SetCompleted(context.Background(), args[0], !undo)
			return oo.HandleError(showTask(t, err))
		},
		ValidArgsFunction: taskIDCompletions,
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "Mark the task as not completed.")
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addTaskList(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show the tasks of the active plan by quadrant",
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
			tasks := sess.WindowTasks()
			if ok, err := printJSON(tasks); ok {
				return oo.HandleError(err)
			}
			pp := printers.PrettyPrint{ShowID: io.ShowID}
			if w, ok := sess.Window(); ok {
				pp.Plan(sess.Label(), w)
			}
			pp.Quadrants(tasks)
			return nil
		},
	}

	options.AddShowIDArgs(cmd, io)
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addTaskClear(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every task of the active plan",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := load()
			if err != nil {
				return err
			}
			n, err := e.svc.ClearTasks(context.Background())
			if err != nil {
				return oo.HandleError(err)
			}
			if ok, err := printJSON(map[string]int{"removed": n}); ok {
				return oo.HandleError(err)
			}
			_, _ = fmt.Fprintf(color.Output, "removed %d tasks\n", n)
			return nil
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func showTask(t task.Task, err error) error {
	if err != nil {
		return err
	}
	if ok, err := printJSON(t); ok {
		return err
	}
	pp := printers.PrettyPrint{ShowID: true}
	pp.Tasks(t)
	return nil
}
