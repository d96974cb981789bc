package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/quadplan/pkg/task"
)

// taskIDCompletions offers the ids of the active plan's tasks, described by
// their titles.
func taskIDCompletions(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	e, err := load()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	sess, err := e.svc.Session(context.Background())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var out []string
	for _, t := range sess.WindowTasks() {
		if strings.HasPrefix(t.ID, toComplete) {
			out = append(out, t.ID+"\t"+t.Title)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

func quadrantCompletions(toComplete string) []string {
	var out []string
	for _, info := range task.DefaultQuadrants() {
		for _, name := range append([]string{info.Key}, info.Aliases...) {
			if strings.HasPrefix(name, toComplete) {
				out = append(out, name+"\t"+string(info.Quadrant))
			}
		}
	}
	return out
}

func registerQuadrantFlag(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("quadrant", func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return quadrantCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
	})
}
