package printers

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/mattn/go-isatty"

	"tableflip.dev/sessio/pkg/timeutil"
	"tableflip.dev/sessio/pkg/todo"
)

// Summary renders the stats table plus the daily goal gauge.
func (pp *PrettyPrint) Summary(stats todo.Stats, goalMinutes int) {
	table := uitable.New()
	table.Separator = "  "

	faint := color.New(color.Faint).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		faint = fmt.Sprint
		bold = fmt.Sprint
	}

	table.AddRow(faint("today"), bold(timeutil.Logged(stats.Today)))
	table.AddRow(faint("yesterday"), timeutil.Logged(stats.Yesterday))
	table.AddRow(faint("total"), timeutil.Logged(stats.Total))
	table.AddRow(faint("streak"), fmt.Sprintf("%d days", stats.Streak))
	table.AddRow(faint("completed"), fmt.Sprintf("%d of %d", stats.Done, stats.Items))
	fmt.Println(table)

	if goalMinutes > 0 {
		goal := time.Duration(goalMinutes) * time.Minute
		ratio := float64(stats.Today) / float64(goal)
		fmt.Printf("\n%s %s / %dm\n", Bar(20, ratio), timeutil.Logged(stats.Today), goalMinutes)
	}
}
