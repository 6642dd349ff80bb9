package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/sessio/pkg/timeutil"
	"tableflip.dev/sessio/pkg/todo"
)

type PrettyPrint struct {
	ShowAll bool
}

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Println(title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Print(title)
	_, _ = c.Printf(" - %d", count)

	switch count {
	case 1:
		_, _ = c.Println(" item")
	default:
		_, _ = c.Println(" items")
	}
}

func (pp *PrettyPrint) Todos(items ...*todo.Item) {
	open := make([]*todo.Item, 0, len(items))
	done := make([]*todo.Item, 0)
	for _, item := range items {
		if item.Done {
			done = append(done, item)
		} else {
			open = append(open, item)
		}
	}

	if len(open) == 0 && (len(done) == 0 || !pp.ShowAll) {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" none\n\n")
		return
	}

	t := color.New()
	d := color.New(color.Faint, color.CrossedOut)
	y := color.New(color.FgHiYellow, color.Faint)

	for _, item := range open {
		_, _ = t.Printf("  [ ] %s", item.Text)
		if item.Logged > 0 {
			_, _ = y.Printf("  (%s)", timeutil.Logged(item.Logged))
		}
		_, _ = t.Println("")
	}
	if pp.ShowAll {
		for _, item := range done {
			_, _ = d.Printf("  [x] %s", item.Text)
			if item.Logged > 0 {
				_, _ = y.Printf("  (%s)", timeutil.Logged(item.Logged))
			}
			_, _ = d.Println("")
		}
	}
	_, _ = t.Println("")
}

// Bar renders a simple progress gauge for the daily goal line.
func Bar(width int, ratio float64) string {
	if width < 2 {
		width = 2
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio * float64(width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
