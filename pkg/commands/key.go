package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/quadplan/pkg/printers"
	"tableflip.dev/quadplan/pkg/task"
)

func addKey(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Show the quadrant legend",
		Example: `
quadplan key
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			if ok, err := printJSON(task.DefaultQuadrants()); ok {
				return oo.HandleError(err)
			}
			pp := printers.PrettyPrint{}
			pp.Key()
			return nil
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
