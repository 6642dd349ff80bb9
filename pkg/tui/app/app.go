// Package teaui hosts the Bubble Tea program for the sessio TUI.
package teaui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/termenv"

	"tableflip.dev/sessio/pkg/audio"
	"tableflip.dev/sessio/pkg/config"
	"tableflip.dev/sessio/pkg/music"
	"tableflip.dev/sessio/pkg/session"
	"tableflip.dev/sessio/pkg/store"
	"tableflip.dev/sessio/pkg/todo"
	"tableflip.dev/sessio/pkg/tui/components/help"
	"tableflip.dev/sessio/pkg/tui/components/musicpanel"
	"tableflip.dev/sessio/pkg/tui/components/summarypanel"
	"tableflip.dev/sessio/pkg/tui/components/timerpanel"
	"tableflip.dev/sessio/pkg/tui/components/todopanel"
	"tableflip.dev/sessio/pkg/tui/events"
	"tableflip.dev/sessio/pkg/tui/theme"
	"tableflip.dev/sessio/pkg/tui/ui"
)

type mode int

const (
	modeNormal mode = iota
	modeInsert
	modeHelp
)

type action int

const (
	actionNone action = iota
	actionAdd
	actionEdit
)

// quadrant identifies one of the four panels in the 2x2 grid.
type quadrant int

// Laid out timer / todos on top, summary / music below.
const (
	quadTimer quadrant = iota
	quadTodo
	quadSummary
	quadMusic
)

// id names the quadrant on the event bus.
func (q quadrant) id() events.ComponentID {
	switch q {
	case quadTimer:
		return "timer"
	case quadTodo:
		return "todos"
	case quadSummary:
		return "summary"
	default:
		return "music"
	}
}

func quadrantFor(id events.ComponentID) (quadrant, bool) {
	switch id {
	case "timer":
		return quadTimer, true
	case "todos":
		return quadTodo, true
	case "summary":
		return quadSummary, true
	case "music":
		return quadMusic, true
	}
	return 0, false
}

// Model owns all shared state. Update is the single serialized dispatcher:
// every clock tick, key press, sink completion, scan result, and watch event
// flows through it, so no domain state needs locking.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	settings config.Settings
	th       theme.Theme

	timer *session.Timer
	todos *todo.Store
	ctrl  *music.Controller
	sink  audio.Output

	persist      store.Persistence
	persistedIDs map[int64]struct{}
	// watch events inside this window are our own writes echoing back
	suppressWatchUntil time.Time

	focus      quadrant
	mode       mode
	action     action
	editTarget int64

	input       textinput.Model
	timerPane   *timerpanel.Model
	todoPane    *todopanel.Model
	summary     *summarypanel.Model
	musicPane   *musicpanel.Model
	helpOverlay *help.Model

	termWidth  int
	termHeight int

	status    string
	statusErr bool

	lastTick time.Time

	watchCh     <-chan store.Event
	watchCancel context.CancelFunc

	// sink posture, compared against the controller after every dispatch
	sinkPath    string
	sinkPlaying bool

	alarmActive bool
	duckedFrom  float64

	notify func(title, body string)
}

// New creates the root model. The persistence handle may be nil in tests.
func New(settings config.Settings, p store.Persistence) *Model {
	th := theme.Default()
	if settings.Theme.UseDracula {
		th = theme.Dracula()
	}

	ti := textinput.New()
	ti.Placeholder = "Task text"
	ti.CharLimit = 256
	ti.Prompt = ""
	ti.VirtualCursor = true
	ti.Styles.Cursor.Color = lipgloss.Color("212")
	ti.Styles.Cursor.Shape = tea.CursorBlock
	ti.Styles.Cursor.Blink = true

	ctx, cancel := context.WithCancel(context.Background())

	m := &Model{
		ctx:          ctx,
		cancel:       cancel,
		settings:     settings,
		th:           th,
		timer:        session.New(settings.SessionSettings()),
		todos:        todo.NewStore(),
		ctrl:         music.NewController(music.NewIndex()),
		sink:         audio.Discard{},
		persist:      p,
		persistedIDs: make(map[int64]struct{}),
		focus:        quadTimer,
		input:        ti,
		timerPane:    timerpanel.New(th),
		todoPane:     todopanel.New(th, settings.Todo.MaxDisplayItems),
		summary:      summarypanel.New(th, settings.Summary.DailyGoalMinutes),
		musicPane:    musicpanel.New(th),
		helpOverlay:  help.New(64, 20),
		notify: func(title, body string) {
			termenv.DefaultOutput().Notify(title, body)
		},
	}
	m.ctrl.SetVolume(settings.Music.DefaultVolume)

	if p != nil {
		m.loadPersisted()
	}
	m.paneFor(m.focus).SetFocused(true)
	m.syncPanels()
	return m
}

// SetSink swaps the audio output. Call before the program starts.
func (m *Model) SetSink(sink audio.Output) {
	if sink != nil {
		m.sink = sink
		m.sink.SetVolume(m.ctrl.Volume())
	}
}

func (m *Model) loadPersisted() {
	m.todos.Seed(m.persist.Todos(m.ctx))
	for _, item := range m.todos.Items() {
		m.persistedIDs[item.ID] = struct{}{}
	}

	state, err := m.persist.State()
	if err != nil {
		m.setError("state: " + err.Error())
		return
	}
	m.timer.SeedCompletionLog(state.CompletionLog)
	if state.SelectedTodo != 0 {
		m.todos.SelectForTimer(state.SelectedTodo)
	}
	m.ctrl.SetMode(music.ParseOrderMode(state.Music.Mode))
	m.ctrl.SetRepeat(state.Music.Repeat)
	if state.Music.Volume > 0 {
		m.ctrl.SetVolume(state.Music.Volume)
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(time.Now()),
		scanCmd(m.settings.Music.Directory),
		startWatchCmd(m.ctx, m.persist),
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.applySizes()

	case events.TickMsg:
		m.lastTick = msg.At
		if done := m.timer.Tick(msg.Elapsed); done != nil {
			m.dispatchCompletion(done, &cmds)
		}
		cmds = append(cmds, tickCmd(msg.At))

	case events.WorkCompletedMsg:
		m.creditSelected(msg.Elapsed)
		m.startAlarm(&cmds)
		m.notify("sessio", "Work session complete. Time for a break.")
		m.saveState()

	case events.BreakCompletedMsg:
		m.startAlarm(&cmds)
		m.notify("sessio", "Break over. Back to work.")

	case events.AlarmDoneMsg:
		if m.alarmActive {
			m.alarmActive = false
			m.ctrl.SetVolume(m.duckedFrom)
			m.sink.SetVolume(m.duckedFrom)
		}

	case events.TrackFinishedMsg:
		// Stale completions from replaced streams carry the old path.
		if msg.Path == m.sinkPath {
			m.sinkPath = ""
			m.sinkPlaying = false
			if m.settings.Music.AutoPlayNext {
				m.ctrl.TrackFinished()
			} else {
				m.ctrl.Pause()
			}
			m.applyPlayback(&cmds)
		}

	case events.ScanResultMsg:
		if msg.Err != nil {
			m.musicPane.SetNotice("scan: " + msg.Err.Error())
		} else {
			m.musicPane.SetNotice("")
			m.ctrl.Refresh(msg.Tracks)
			m.applyPlayback(&cmds)
		}

	case events.ConfigReloadedMsg:
		if msg.Err != nil {
			m.setError("config: " + msg.Err.Error())
		} else {
			m.applySettings(msg.Settings, &cmds)
			m.setStatus("configuration reloaded")
		}

	case events.FocusMsg:
		if q, ok := quadrantFor(msg.Component); ok {
			m.focus = q
			m.paneFor(q).SetFocused(true)
		}

	case events.BlurMsg:
		if q, ok := quadrantFor(msg.Component); ok {
			m.paneFor(q).SetFocused(false)
		}

	case events.DebugMsg:
		m.setStatus(msg.Describe())

	case watchStartedMsg:
		if msg.err != nil {
			m.setError("watch: " + msg.err.Error())
			break
		}
		m.stopWatch()
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case watchEventMsg:
		if cmd := m.handleWatchEvent(msg.event); cmd != nil {
			cmds = append(cmds, cmd)
		}
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case watchStoppedMsg:
		m.stopWatch()
		cmds = append(cmds, startWatchCmd(m.ctx, m.persist))

	case tea.KeyPressMsg:
		if quit := m.handleKeyPress(msg, &cmds); quit {
			m.shutdown()
			return m, tea.Quit
		}
	}

	m.syncPanels()
	return m, tea.Batch(cmds...)
}

// dispatchCompletion converts a phase completion into typed events so the
// linkage runs through the dispatcher like every other effect.
func (m *Model) dispatchCompletion(done *session.Completion, cmds *[]tea.Cmd) {
	if done.Phase == session.Work {
		*cmds = append(*cmds, events.WorkCompletedCmd(done.Elapsed, done.Next))
		return
	}
	phase := done.Phase
	*cmds = append(*cmds, func() tea.Msg {
		return events.BreakCompletedMsg{Phase: phase}
	})
}

// creditSelected implements the time-tracking linkage: a finished work phase
// credits its full duration to the selected todo, if one survives.
func (m *Model) creditSelected(elapsed time.Duration) {
	item, ok := m.todos.Selected()
	if !ok {
		return
	}
	m.todos.LogTime(item.ID, elapsed)
	m.syncTodos()
}

func (m *Model) startAlarm(cmds *[]tea.Cmd) {
	secs := m.settings.Music.AlarmSeconds
	if secs <= 0 {
		return
	}
	if !m.alarmActive {
		m.alarmActive = true
		m.duckedFrom = m.ctrl.Volume()
		ducked := m.duckedFrom * 0.3
		m.ctrl.SetVolume(ducked)
		m.sink.SetVolume(ducked)
	}
	d := time.Duration(secs) * time.Second
	*cmds = append(*cmds, tea.Tick(d, func(time.Time) tea.Msg {
		return events.AlarmDoneMsg{}
	}))
}

func (m *Model) applySettings(s config.Settings, cmds *[]tea.Cmd) {
	rescan := s.Music.Directory != m.settings.Music.Directory
	m.settings = s

	m.timer.ApplySettings(s.SessionSettings())

	th := theme.Default()
	if s.Theme.UseDracula {
		th = theme.Dracula()
	}
	m.th = th
	for _, pane := range m.panes() {
		pane.SetTheme(th)
	}

	m.todoPane.SetMaxItems(s.Todo.MaxDisplayItems)
	m.summary.SetGoal(s.Summary.DailyGoalMinutes)

	if rescan {
		*cmds = append(*cmds, scanCmd(s.Music.Directory))
	}
}

func (m *Model) handleWatchEvent(ev store.Event) tea.Cmd {
	if time.Now().Before(m.suppressWatchUntil) {
		return nil
	}
	switch ev.Type {
	case store.EventTodosChanged, store.EventInvalidated:
		m.reloadTodos()
		return events.DebugCmd("store", "watch", "todo list reloaded from disk")
	case store.EventStateChanged:
		// Our own snapshot writes; nothing to refresh.
	}
	return nil
}

// reloadTodos replaces the store with the on-disk view after an external
// edit. The undo stack refers to the abandoned state, so it resets.
func (m *Model) reloadTodos() {
	var selected int64
	if item, ok := m.todos.Selected(); ok {
		selected = item.ID
	}
	items := m.persist.Todos(m.ctx)
	m.todos = todo.NewStore()
	m.todos.Seed(items)
	if selected != 0 {
		m.todos.SelectForTimer(selected)
	}
	m.persistedIDs = make(map[int64]struct{}, len(items))
	for _, item := range items {
		m.persistedIDs[item.ID] = struct{}{}
	}
}

func (m *Model) syncPanels() {
	selectedTask := ""
	var selectedID int64
	if item, ok := m.todos.Selected(); ok {
		selectedTask = item.Text
		selectedID = item.ID
	}
	m.timerPane.Sync(m.timer, selectedTask)
	m.todoPane.Sync(m.todos.Items(), selectedID)
	m.summary.Sync(m.todos.Stats())
	m.musicPane.Sync(m.ctrl)
}

// paneFor resolves a quadrant to its panel behind the shared contract.
func (m *Model) paneFor(q quadrant) ui.Component {
	switch q {
	case quadTimer:
		return m.timerPane
	case quadTodo:
		return m.todoPane
	case quadSummary:
		return m.summary
	default:
		return m.musicPane
	}
}

func (m *Model) panes() []ui.Component {
	return []ui.Component{m.timerPane, m.todoPane, m.summary, m.musicPane}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

func (m *Model) shutdown() {
	m.sink.Stop()
	m.saveState()
	m.stopWatch()
	m.cancel()
}

func (m *Model) applySizes() {
	if m.termWidth == 0 || m.termHeight == 0 {
		return
	}
	colW := m.termWidth / 2
	rowH := (m.termHeight - 2) / 2 // footer reserve
	m.timerPane.SetSize(colW, rowH)
	m.todoPane.SetSize(m.termWidth-colW, rowH)
	m.summary.SetSize(colW, rowH)
	m.musicPane.SetSize(m.termWidth-colW, rowH)
	m.helpOverlay.SetSize(min(m.termWidth-4, 72), m.termHeight-4)
}

func (m *Model) View() string {
	if m.mode == modeHelp {
		return m.helpOverlay.View()
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top, m.timerPane.View(), m.todoPane.View())
	bottom := lipgloss.JoinHorizontal(lipgloss.Top, m.summary.View(), m.musicPane.View())
	body := lipgloss.JoinVertical(lipgloss.Left, top, bottom)

	footer := m.footerView()
	return lipgloss.JoinVertical(lipgloss.Left, body, footer)
}

func (m *Model) footerView() string {
	if m.mode == modeInsert {
		prompt := "Add: "
		if m.action == actionEdit {
			prompt = "Edit: "
		}
		return prompt + m.input.View()
	}
	if m.status != "" {
		if m.statusErr {
			return m.th.Footer.Error.Render(m.status)
		}
		return m.th.Footer.Status.Render(m.status)
	}
	return m.th.Footer.Help.Render("H/J/K/L panels · space start/pause · a add · s select · z undo · ? help · q quit")
}

// Run launches the interactive TUI program.
func Run(ctx context.Context, settings config.Settings, p store.Persistence) error {
	m := New(settings, p)
	m.SetSink(audio.NewSpeaker())
	prog := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := prog.Run()
	return err
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
