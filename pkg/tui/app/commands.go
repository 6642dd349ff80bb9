package teaui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/sessio/pkg/config"
	"tableflip.dev/sessio/pkg/scan"
	"tableflip.dev/sessio/pkg/store"
	"tableflip.dev/sessio/pkg/tui/events"
)

// tickCmd schedules the next clock beat. The message carries real elapsed
// time so the countdown survives render stalls and missed frames.
func tickCmd(prev time.Time) tea.Cmd {
	return tea.Tick(time.Second, func(now time.Time) tea.Msg {
		return events.TickMsg{At: now, Elapsed: now.Sub(prev)}
	})
}

// scanCmd walks the music directory off the dispatch loop.
func scanCmd(dir string) tea.Cmd {
	return func() tea.Msg {
		tracks, err := scan.Library(dir)
		return events.ScanResultMsg{Tracks: tracks, Err: err}
	}
}

// reloadConfigCmd re-reads settings from disk.
func reloadConfigCmd() tea.Cmd {
	return func() tea.Msg {
		settings, err := config.Load()
		return events.ConfigReloadedMsg{Settings: settings, Err: err}
	}
}

// waitSinkDoneCmd blocks on the sink's completion channel for one track and
// converts it into a dispatcher event.
func waitSinkDoneCmd(path string, done <-chan struct{}) tea.Cmd {
	if done == nil {
		return nil
	}
	return func() tea.Msg {
		<-done
		return events.TrackFinishedMsg{Path: path}
	}
}

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct {
	event store.Event
}

type watchStoppedMsg struct{}

func startWatchCmd(parent context.Context, p store.Persistence) tea.Cmd {
	if p == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := p.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return watchEventMsg{event: ev}
		}
		return watchStoppedMsg{}
	}
}

// applyPlayback reconciles the audio sink with the controller's posture
// after a dispatch touched playback state.
func (m *Model) applyPlayback(cmds *[]tea.Cmd) {
	track, ok := m.ctrl.CurrentTrack()
	if !ok {
		if m.sinkPath != "" {
			m.sink.Stop()
			m.sinkPath = ""
			m.sinkPlaying = false
		}
		return
	}

	switch {
	case m.ctrl.IsPlaying() && track.Path != m.sinkPath:
		if err := m.sink.Play(track.Path); err != nil {
			m.setError(err.Error())
			m.ctrl.Pause()
			return
		}
		m.sinkPath = track.Path
		m.sinkPlaying = true
		m.setStatus("playing " + track.Title)
		if cmd := waitSinkDoneCmd(track.Path, m.sink.Done()); cmd != nil {
			*cmds = append(*cmds, cmd)
		}
	case m.ctrl.IsPlaying() && !m.sinkPlaying:
		m.sink.Resume()
		m.sinkPlaying = true
	case !m.ctrl.IsPlaying() && m.sinkPlaying:
		m.sink.Pause()
		m.sinkPlaying = false
	}
}

// syncTodos mirrors the in-memory store to disk when AutoSave is on. Items
// that vanished since the last sync are erased.
func (m *Model) syncTodos() {
	if m.persist == nil || !m.settings.Todo.AutoSave {
		return
	}
	m.suppressWatchUntil = time.Now().Add(time.Second)

	current := make(map[int64]struct{}, m.todos.Len())
	for _, item := range m.todos.Items() {
		current[item.ID] = struct{}{}
		if err := m.persist.StoreTodo(item); err != nil {
			m.setError("save: " + err.Error())
			return
		}
	}
	for id := range m.persistedIDs {
		if _, ok := current[id]; !ok {
			if err := m.persist.DeleteTodo(id); err != nil {
				m.setError("save: " + err.Error())
				return
			}
		}
	}
	m.persistedIDs = current
}

// saveState snapshots the completion log and playback posture.
func (m *Model) saveState() {
	if m.persist == nil {
		return
	}
	m.suppressWatchUntil = time.Now().Add(time.Second)

	var selected int64
	if item, ok := m.todos.Selected(); ok {
		selected = item.ID
	}
	trackPath := ""
	if track, ok := m.ctrl.CurrentTrack(); ok {
		trackPath = track.Path
	}
	volume := m.ctrl.Volume()
	if m.alarmActive {
		volume = m.duckedFrom
	}
	state := store.AppState{
		CompletionLog: m.timer.CompletionLog(),
		SelectedTodo:  selected,
		Music: store.PlaybackState{
			Mode:      m.ctrl.Mode().String(),
			Repeat:    m.ctrl.Repeat(),
			Volume:    volume,
			TrackPath: trackPath,
		},
	}
	if err := m.persist.SaveState(state); err != nil {
		m.setError("state: " + err.Error())
	}
}
