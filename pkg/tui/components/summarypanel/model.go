// Package summarypanel renders the daily stats quadrant.
package summarypanel

import (
	"fmt"
	"strings"
	"time"

	"tableflip.dev/sessio/pkg/timeutil"
	"tableflip.dev/sessio/pkg/todo"
	"tableflip.dev/sessio/pkg/tui/theme"
)

// Model renders aggregated work stats.
type Model struct {
	th      theme.Theme
	width   int
	height  int
	focused bool

	stats       todo.Stats
	goalMinutes int
}

// New returns a summary panel using the provided theme.
func New(th theme.Theme, goalMinutes int) *Model {
	return &Model{th: th, goalMinutes: goalMinutes}
}

// SetSize configures the outer panel dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetFocused toggles the focus frame.
func (m *Model) SetFocused(focused bool) { m.focused = focused }

// Focused reports whether the panel holds keyboard focus.
func (m *Model) Focused() bool { return m.focused }

// SetTheme swaps the palette.
func (m *Model) SetTheme(th theme.Theme) { m.th = th }

// SetGoal updates the daily goal, e.g. after a config reload.
func (m *Model) SetGoal(minutes int) { m.goalMinutes = minutes }

// Sync snapshots the stats for the next render.
func (m *Model) Sync(stats todo.Stats) { m.stats = stats }

// View renders the panel.
func (m *Model) View() string {
	frame := m.th.Panel.Frame
	if m.focused {
		frame = m.th.Panel.FocusedFrame
	}
	inner := max(m.width-frame.GetHorizontalFrameSize(), 10)

	label := m.th.Panel.Faint
	value := m.th.Panel.Body

	var b strings.Builder
	b.WriteString(m.th.Panel.Title.Render("Summary"))
	b.WriteString("\n\n")
	b.WriteString(label.Render("today      ") + value.Render(timeutil.Logged(m.stats.Today)) + "\n")
	b.WriteString(label.Render("yesterday  ") + value.Render(timeutil.Logged(m.stats.Yesterday)) + "\n")
	b.WriteString(label.Render("total      ") + value.Render(timeutil.Logged(m.stats.Total)) + "\n")
	b.WriteString(label.Render("streak     ") + value.Render(fmt.Sprintf("%d days", m.stats.Streak)) + "\n")
	b.WriteString(label.Render("completed  ") + value.Render(fmt.Sprintf("%d of %d", m.stats.Done, m.stats.Items)) + "\n")

	if m.goalMinutes > 0 {
		goal := time.Duration(m.goalMinutes) * time.Minute
		ratio := float64(m.stats.Today) / float64(goal)
		b.WriteString("\n")
		b.WriteString(m.th.Timer.Gauge(max(inner, 10), ratio))
		b.WriteString("\n")
		b.WriteString(label.Render(fmt.Sprintf("goal %s / %dm", timeutil.Logged(m.stats.Today), m.goalMinutes)))
	}

	return frame.Width(m.width).Height(m.height).Render(b.String())
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
