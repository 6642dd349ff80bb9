package teaui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/sessio/pkg/tui/events"
)

// handleKeyPress routes a key by mode, then by focused panel. It reports
// whether the program should quit.
func (m *Model) handleKeyPress(msg tea.KeyPressMsg, cmds *[]tea.Cmd) bool {
	switch m.mode {
	case modeHelp:
		return m.handleHelpKey(msg)
	case modeInsert:
		m.handleInsertKey(msg, cmds)
		return false
	default:
		return m.handleNormalKey(msg, cmds)
	}
}

func (m *Model) handleHelpKey(msg tea.KeyPressMsg) bool {
	switch msg.String() {
	case "q", "esc", "?":
		m.mode = modeNormal
	default:
		_, _ = m.helpOverlay.Update(msg)
	}
	return false
}

func (m *Model) handleInsertKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.commitInput()
	case "esc":
		m.mode = modeNormal
		m.action = actionNone
		m.input.SetValue("")
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		*cmds = append(*cmds, cmd)
	}
}

func (m *Model) commitInput() {
	text := strings.TrimSpace(m.input.Value())
	switch m.action {
	case actionAdd:
		if item := m.todos.Add(text); item != nil {
			m.syncTodos()
		}
	case actionEdit:
		if text != "" {
			m.todos.Edit(m.editTarget, text)
			m.syncTodos()
		}
	}
	m.mode = modeNormal
	m.action = actionNone
	m.editTarget = 0
	m.input.SetValue("")
}

func (m *Model) handleNormalKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) bool {
	switch msg.String() {
	case "q", "ctrl+c":
		return true
	case "?":
		m.mode = modeHelp
		return false
	case "C":
		*cmds = append(*cmds, reloadConfigCmd())
		return false
	case "R":
		m.setStatus("rescanning library")
		*cmds = append(*cmds, scanCmd(m.settings.Music.Directory))
		return false
	case "z":
		if m.todos.Undo() {
			m.syncTodos()
			m.setStatus("undone")
		}
		return false
	case "H":
		m.moveFocus(-1, 0, cmds)
		return false
	case "L":
		m.moveFocus(1, 0, cmds)
		return false
	case "K":
		m.moveFocus(0, -1, cmds)
		return false
	case "J":
		m.moveFocus(0, 1, cmds)
		return false
	}

	switch m.focus {
	case quadTimer:
		m.handleTimerKey(msg, cmds)
	case quadTodo:
		m.handleTodoKey(msg)
	case quadMusic:
		m.handleMusicKey(msg, cmds)
	}
	return false
}

// moveFocus shifts focus one step in the 2x2 grid; moves off the edge stay
// put. The blur and focus events round-trip through the dispatcher so the
// panels restyle like any other effect.
func (m *Model) moveFocus(dx, dy int, cmds *[]tea.Cmd) {
	col := 0
	if m.focus == quadTodo || m.focus == quadMusic {
		col = 1
	}
	row := 0
	if m.focus == quadSummary || m.focus == quadMusic {
		row = 1
	}
	col = clamp(col+dx, 0, 1)
	row = clamp(row+dy, 0, 1)

	grid := [2][2]quadrant{
		{quadTimer, quadTodo},
		{quadSummary, quadMusic},
	}
	target := grid[row][col]
	if target == m.focus {
		return
	}
	*cmds = append(*cmds, events.BlurCmd(m.focus.id()), events.FocusCmd(target.id()))
	m.focus = target
}

func (m *Model) handleTimerKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	switch msg.String() {
	case "space":
		m.timer.Toggle()
	case "r":
		m.timer.Reset()
		m.setStatus("timer reset")
	case "n":
		if done := m.timer.Skip(); done != nil {
			m.dispatchCompletion(done, cmds)
		}
	}
}

func (m *Model) handleTodoKey(msg tea.KeyPressMsg) {
	switch msg.String() {
	case "j":
		m.todoPane.MoveCursor(1)
	case "k":
		m.todoPane.MoveCursor(-1)
	case "a":
		m.mode = modeInsert
		m.action = actionAdd
		m.input.SetValue("")
		m.input.Focus()
	case "e":
		if item, ok := m.todoPane.CursorItem(); ok {
			m.mode = modeInsert
			m.action = actionEdit
			m.editTarget = item.ID
			m.input.SetValue(item.Text)
			m.input.CursorEnd()
			m.input.Focus()
		}
	case "d":
		if item, ok := m.todoPane.CursorItem(); ok {
			m.todos.ToggleDone(item.ID)
			m.syncTodos()
		}
	case "D":
		if item, ok := m.todoPane.CursorItem(); ok {
			m.todos.Delete(item.ID)
			m.syncTodos()
		}
	case "s":
		if item, ok := m.todoPane.CursorItem(); ok {
			m.todos.SelectForTimer(item.ID)
			m.saveState()
		}
	}
}

func (m *Model) handleMusicKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	switch msg.String() {
	case "j":
		m.musicPane.MoveCursor(1)
	case "k":
		m.musicPane.MoveCursor(-1)
	case "space":
		m.ctrl.Toggle()
	case "enter":
		m.ctrl.Play(m.musicPane.Cursor())
	case "n":
		m.ctrl.Next()
	case "p":
		m.ctrl.Prev()
	case "m":
		m.ctrl.CycleMode()
		m.saveState()
	case "t":
		m.ctrl.ToggleRepeat()
		m.saveState()
	case "-":
		m.adjustVolume(-0.05)
	case "+", "=":
		m.adjustVolume(0.05)
	default:
		return
	}
	m.applyPlayback(cmds)
}

func (m *Model) adjustVolume(delta float64) {
	if m.alarmActive {
		return
	}
	m.ctrl.SetVolume(m.ctrl.Volume() + delta)
	m.sink.SetVolume(m.ctrl.Volume())
	m.saveState()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
