package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/sessio/pkg/config"
	"tableflip.dev/sessio/pkg/store"
	app "tableflip.dev/sessio/pkg/tui/app"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the four panel dashboard",
		Example: `
sessio ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd)
		},
	}

	topLevel.AddCommand(cmd)
}

func runUI(cmd *cobra.Command) error {
	settings, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v (using defaults)\n", err)
	}
	p, err := store.Load(settings.Todo.SavePath)
	if err != nil {
		return err
	}
	return app.Run(cmd.Context(), settings, p)
}
