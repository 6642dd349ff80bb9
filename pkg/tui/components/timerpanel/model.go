// Package timerpanel renders the Pomodoro quadrant.
package timerpanel

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/truncate"

	"tableflip.dev/sessio/pkg/session"
	"tableflip.dev/sessio/pkg/timeutil"
	"tableflip.dev/sessio/pkg/tui/theme"
)

// Model renders the timer state snapshot handed to it by the dispatcher.
type Model struct {
	th      theme.Theme
	width   int
	height  int
	focused bool

	phase          session.Phase
	state          session.State
	remaining      string
	progress       float64
	sessions       int
	completedToday int
	selectedTask   string
}

// New returns a timer panel using the provided theme.
func New(th theme.Theme) *Model {
	return &Model{th: th}
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

// SetTheme swaps the palette, e.g. after a config reload.
func (m *Model) SetTheme(th theme.Theme) { m.th = th }

// Sync snapshots the timer engine for the next render.
func (m *Model) Sync(t *session.Timer, selectedTask string) {
	m.phase = t.Phase()
	m.state = t.State()
	m.remaining = timeutil.Clock(t.Remaining())
	m.progress = t.Progress()
	m.sessions = t.Sessions()
	m.completedToday = t.CompletedToday()
	m.selectedTask = selectedTask
}

// View renders the panel.
func (m *Model) View() string {
	frame := m.th.Panel.Frame
	if m.focused {
		frame = m.th.Panel.FocusedFrame
	}
	inner := innerWidth(frame, m.width)

	phaseStyle := m.th.Timer.Phase
	if m.phase != session.Work {
		phaseStyle = m.th.Timer.Break
	}

	var b strings.Builder
	b.WriteString(m.th.Panel.Title.Render("Timer"))
	b.WriteString("\n\n")
	b.WriteString(m.th.Timer.Clock.Render(m.remaining))
	b.WriteString("  ")
	b.WriteString(phaseStyle.Render(m.phase.String()))
	b.WriteString(m.th.Panel.Faint.Render(" · " + m.state.String()))
	b.WriteString("\n")
	b.WriteString(m.th.Timer.Gauge(max(inner, 10), m.progress))
	b.WriteString("\n\n")
	b.WriteString(m.th.Panel.Faint.Render(fmt.Sprintf("sessions: %d  today: %d", m.sessions, m.completedToday)))
	b.WriteString("\n")
	if m.selectedTask != "" {
		line := m.th.Panel.Marker.Render("→ ") + m.th.Panel.Body.Render(m.selectedTask)
		b.WriteString(truncate.StringWithTail(line, uint(max(inner, 10)), "…"))
	} else {
		b.WriteString(m.th.Panel.Faint.Render("no task selected (s)"))
	}

	return frame.Width(m.width).Height(m.height).Render(b.String())
}

func innerWidth(frame interface{ GetHorizontalFrameSize() int }, width int) int {
	return max(width-frame.GetHorizontalFrameSize(), 1)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
