package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/sessio/pkg/config"
	"tableflip.dev/sessio/pkg/printers"
	"tableflip.dev/sessio/pkg/store"
)

func addList(topLevel *cobra.Command) {
	showAll := false
	cmd := &cobra.Command{
		Use:   "list",
		Short: "print the todo list",
		Example: `
sessio list
sessio list --all
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

			pp := printers.PrettyPrint{ShowAll: showAll}
			pp.TitleWithCount("Todos", len(items))
			pp.Todos(items...)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&showAll, "all", "a", false, "Include completed items.")

	topLevel.AddCommand(cmd)
}
