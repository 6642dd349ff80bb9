// Package todopanel renders the todo list quadrant.
package todopanel

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/truncate"

	"tableflip.dev/sessio/pkg/timeutil"
	"tableflip.dev/sessio/pkg/todo"
	"tableflip.dev/sessio/pkg/tui/theme"
)

// Model renders the todo list with a movable cursor. The dispatcher owns the
// store; the panel only holds a render snapshot plus cursor position.
type Model struct {
	th       theme.Theme
	width    int
	height   int
	focused  bool
	maxItems int

	items      []*todo.Item
	cursor     int
	selectedID int64
}

// New returns a todo panel using the provided theme.
func New(th theme.Theme, maxItems int) *Model {
	return &Model{th: th, maxItems: maxItems}
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

// SetMaxItems caps the rendered window. The underlying list is never
// truncated, only the view.
func (m *Model) SetMaxItems(n int) {
	if n > 0 {
		m.maxItems = n
	}
}

// Sync snapshots the store for the next render and clamps the cursor.
func (m *Model) Sync(items []*todo.Item, selectedID int64) {
	m.items = items
	m.selectedID = selectedID
	m.clampCursor()
}

// MoveCursor shifts the cursor by delta, clamped to the list bounds.
func (m *Model) MoveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

// Cursor reports the current cursor index.
func (m *Model) Cursor() int { return m.cursor }

// CursorItem returns the item under the cursor, if any.
func (m *Model) CursorItem() (*todo.Item, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return nil, false
	}
	return m.items[m.cursor], true
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.items) {
		m.cursor = len(m.items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View renders the panel.
func (m *Model) View() string {
	frame := m.th.Panel.Frame
	if m.focused {
		frame = m.th.Panel.FocusedFrame
	}
	inner := max(m.width-frame.GetHorizontalFrameSize(), 10)

	var b strings.Builder
	b.WriteString(m.th.Panel.Title.Render("Todos"))
	b.WriteString(m.th.Panel.Faint.Render(fmt.Sprintf("  %d", len(m.items))))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(m.th.Panel.Faint.Render("empty (a to add)"))
		return frame.Width(m.width).Height(m.height).Render(b.String())
	}

	window := m.windowSize(frame)
	start, end := windowBounds(m.cursor, len(m.items), window)
	if start > 0 {
		b.WriteString(m.th.Panel.Faint.Render(fmt.Sprintf("↑ %d more", start)))
		b.WriteString("\n")
	}
	for i := start; i < end; i++ {
		item := m.items[i]

		cursor := "  "
		if m.focused && i == m.cursor {
			cursor = m.th.Panel.Marker.Render("→ ")
		}
		box := "[ ]"
		if item.Done {
			box = "[x]"
		}
		mark := " "
		if item.ID == m.selectedID {
			mark = m.th.Panel.Marker.Render("●")
		}

		text := item.Text
		if item.Logged > 0 {
			text = fmt.Sprintf("%s (%s)", text, timeutil.Logged(item.Logged))
		}
		style := m.th.Panel.Body
		if item.Done {
			style = m.th.Panel.Faint
		}
		line := fmt.Sprintf("%s%s %s %s", cursor, box, mark, style.Render(text))
		b.WriteString(truncate.StringWithTail(line, uint(inner), "…"))
		b.WriteString("\n")
	}
	if rest := len(m.items) - end; rest > 0 {
		b.WriteString(m.th.Panel.Faint.Render(fmt.Sprintf("↓ %d more", rest)))
		b.WriteString("\n")
	}

	return frame.Width(m.width).Height(m.height).Render(strings.TrimRight(b.String(), "\n"))
}

// windowSize caps the rendered rows by both the configured maximum and the
// available panel height.
func (m *Model) windowSize(frame interface{ GetVerticalFrameSize() int }) int {
	window := m.maxItems
	if window <= 0 {
		window = 20
	}
	avail := m.height - frame.GetVerticalFrameSize() - 4 // title, blank, overflow hints
	if avail > 0 && avail < window {
		window = avail
	}
	if window < 1 {
		window = 1
	}
	return window
}

func windowBounds(cursor, total, window int) (int, int) {
	if total <= window {
		return 0, total
	}
	start := cursor - window/2
	if start < 0 {
		start = 0
	}
	if start+window > total {
		start = total - window
	}
	return start, start + window
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
