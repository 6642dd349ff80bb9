package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "sessio",
		Short: base.Wrap80("Pomodoro sessions, todos, and a music player in one terminal."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd)
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addList(topLevel)
	addSummary(topLevel)
	addVersion(topLevel)
}
