package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/quadplan/pkg/app"
	"tableflip.dev/quadplan/pkg/commands/options"
	"tableflip.dev/quadplan/pkg/printers"
	"tableflip.dev/quadplan/pkg/timeutil"
)

func addStatus(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	watch := false

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the active plan, its tasks and clipboards",
		Example: `
quadplan status
quadplan status --watch
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := load()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			pp := printers.PrettyPrint{ShowID: io.ShowID}
			if err := status(ctx, e.svc, &pp); err != nil {
				return oo.HandleError(err)
			}
			if !watch {
				return nil
			}
			events, err := e.svc.Watch(ctx)
			if err != nil {
				return oo.HandleError(err)
			}
			for range events {
				if !oo.JSON {
					// Clear the screen before redrawing.
					_, _ = fmt.Fprint(color.Output, "\033[H\033[2J")
				}
				if err := status(ctx, e.svc, &pp); err != nil {
					fmt.Fprintf(os.Stderr, "status: %v\n", err)
				}
			}
			return nil
		},
	}

	options.AddShowIDArgs(cmd, io)
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Redraw whenever another command changes the plan.")
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

type statusView struct {
	Plan      string `json:"plan,omitempty"`
	Window    any    `json:"window,omitempty"`
	Tasks     any    `json:"tasks"`
	Clipboard any    `json:"clipboard,omitempty"`
	Week      any    `json:"weekClipboard,omitempty"`
}

func status(ctx context.Context, svc *app.Service, pp *printers.PrettyPrint) error {
	sess, err := svc.Session(ctx)
	if err != nil {
		return err
	}
	w, planned := sess.Window()
	tasks := sess.WindowTasks()

	if oo.JSON {
		v := statusView{Tasks: tasks}
		if planned {
			v.Plan, v.Window = sess.Label(), w
		}
		if sess.Clipboard != nil {
			v.Clipboard = sess.Clipboard
		}
		if sess.WeekClipboard != nil {
			v.Week = sess.WeekClipboard
		}
		_, err := printJSON(v)
		return err
	}

	if planned {
		pp.Plan(sess.Label(), w)
	} else {
		_, _ = color.New(color.Faint).Fprintln(color.Output, "nothing planned yet, run `quadplan plan week`")
	}
	pp.Quadrants(tasks)

	f := color.New(color.Faint)
	if c := sess.Clipboard; c != nil {
		_, _ = f.Fprintf(color.Output, "clipboard: %q\n", c.Title)
	}
	if wc := sess.WeekClipboard; wc != nil {
		_, _ = f.Fprintf(color.Output, "week clipboard: %d tasks from %s\n", len(wc.Items), timeutil.FormatRange(wc.SourceStart, wc.SourceEnd))
	}
	return nil
}
