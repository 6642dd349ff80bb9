package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/sessio/pkg/config"
	"tableflip.dev/sessio/pkg/printers"
	"tableflip.dev/sessio/pkg/store"
	"tableflip.dev/sessio/pkg/timeutil"
	"tableflip.dev/sessio/pkg/todo"
)

func addSummary(topLevel *cobra.Command) {
	window := ""
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "print work session stats",
		Example: `
sessio summary
sessio summary --window 2w
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load()
			if err != nil {
				fmt.Fprintf(os.Stderr, "config: %v (using defaults)\n", err)
			}
			p, err := store.Load(settings.Todo.SavePath)
			if err != nil {
				return err
			}

			items := p.Todos(cmd.Context())
			s := todo.NewStore()
			s.Seed(items)

			pp := printers.PrettyPrint{}
			pp.Title("Summary")
			pp.NewLine()
			pp.Summary(s.Stats(), settings.Summary.DailyGoalMinutes)
			pp.NewLine()
			pp.MonthActivity(time.Now(), items...)

			if window != "" {
				dur, label, err := timeutil.ParseWindow(window)
				if err != nil {
					return err
				}
				fmt.Printf("last %s: %s\n", label, timeutil.Logged(loggedSince(items, time.Now().Add(-dur))))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&window, "window", "w", "", "Also report time logged inside a trailing window, e.g. 1w or 3d.")

	topLevel.AddCommand(cmd)
}

func loggedSince(items []*todo.Item, since time.Time) time.Duration {
	cutoff := since.Format("2006-01-02")
	var total time.Duration
	for _, item := range items {
		for _, ws := range item.Timeline {
			if ws.Day >= cutoff {
				total += ws.Logged
			}
		}
	}
	return total
}
