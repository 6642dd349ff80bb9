// Package musicpanel renders the playback quadrant.
package musicpanel

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/truncate"

	"tableflip.dev/sessio/pkg/music"
	"tableflip.dev/sessio/pkg/tui/theme"
)

// Model renders the track list and playback posture.
type Model struct {
	th      theme.Theme
	width   int
	height  int
	focused bool

	tracks  []music.Track
	cursor  int
	current int
	playing bool
	mode    music.OrderMode
	repeat  bool
	volume  float64
	notice  string
}

// New returns a music panel using the provided theme.
func New(th theme.Theme) *Model {
	return &Model{th: th, current: -1}
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

// SetNotice shows a transient line under the header, e.g. scan errors.
func (m *Model) SetNotice(notice string) { m.notice = notice }

// Sync snapshots the controller for the next render.
func (m *Model) Sync(c *music.Controller) {
	m.tracks = c.Tracks()
	m.current = -1
	if i, ok := c.Current(); ok {
		m.current = i
	}
	m.playing = c.IsPlaying()
	m.mode = c.Mode()
	m.repeat = c.Repeat()
	m.volume = c.Volume()
	m.clampCursor()
}

// MoveCursor shifts the cursor by delta, clamped to the list bounds.
func (m *Model) MoveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

// Cursor reports the current cursor index.
func (m *Model) Cursor() int { return m.cursor }

func (m *Model) clampCursor() {
	if m.cursor >= len(m.tracks) {
		m.cursor = len(m.tracks) - 1
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

	repeat := " "
	if m.repeat {
		repeat = "⟳"
	}
	header := fmt.Sprintf("%s %s  vol %d%%", m.mode.Icon(), repeat, int(m.volume*100))

	var b strings.Builder
	b.WriteString(m.th.Panel.Title.Render("Music"))
	b.WriteString(m.th.Panel.Faint.Render("  " + header))
	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(m.th.Panel.Faint.Render(m.notice))
	}
	b.WriteString("\n")

	if len(m.tracks) == 0 {
		b.WriteString(m.th.Panel.Faint.Render("no tracks found (R to rescan)"))
		return frame.Width(m.width).Height(m.height).Render(b.String())
	}

	window := m.windowSize(frame)
	start, end := windowBounds(m.cursor, len(m.tracks), window)
	for i := start; i < end; i++ {
		cursor := "  "
		if m.focused && i == m.cursor {
			cursor = m.th.Panel.Marker.Render("→ ")
		}
		marker := "  "
		if i == m.current {
			if m.playing {
				marker = "▶ "
			} else {
				marker = "‖ "
			}
		}
		style := m.th.Panel.Body
		if i != m.current {
			style = m.th.Panel.Faint
		}
		line := cursor + marker + style.Render(m.tracks[i].Title)
		b.WriteString(truncate.StringWithTail(line, uint(inner), "…"))
		b.WriteString("\n")
	}
	if rest := len(m.tracks) - end; rest > 0 {
		b.WriteString(m.th.Panel.Faint.Render(fmt.Sprintf("↓ %d more", rest)))
	}

	return frame.Width(m.width).Height(m.height).Render(strings.TrimRight(b.String(), "\n"))
}

func (m *Model) windowSize(frame interface{ GetVerticalFrameSize() int }) int {
	window := m.height - frame.GetVerticalFrameSize() - 3 // title, notice, overflow hint
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
