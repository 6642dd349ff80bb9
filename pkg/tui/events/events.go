package events

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/sessio/pkg/config"
	"tableflip.dev/sessio/pkg/music"
	"tableflip.dev/sessio/pkg/session"
)

// ComponentID uniquely identifies a component instance emitting events.
type ComponentID string

// TickMsg carries one clock beat through the dispatcher. Elapsed is the real
// wall time since the previous tick so a stalled terminal cannot slow the
// countdown.
type TickMsg struct {
	At      time.Time
	Elapsed time.Duration
}

// Describe renders the tick in a human-friendly format for logs.
func (m TickMsg) Describe() string {
	return fmt.Sprintf(`at:%q elapsed:%q`, m.At.Format(time.RFC3339), m.Elapsed)
}

// WorkCompletedMsg announces that a work phase finished and carries the time
// to credit to the selected todo.
type WorkCompletedMsg struct {
	Elapsed time.Duration
	Next    session.Phase
}

// Describe implements the logging helper.
func (m WorkCompletedMsg) Describe() string {
	return fmt.Sprintf(`elapsed:%q next:%q`, m.Elapsed, m.Next)
}

// WorkCompletedCmd wraps WorkCompletedMsg in a tea.Cmd for callers that want
// to emit the event as part of an Update result.
func WorkCompletedCmd(elapsed time.Duration, next session.Phase) tea.Cmd {
	return func() tea.Msg {
		return WorkCompletedMsg{Elapsed: elapsed, Next: next}
	}
}

// BreakCompletedMsg announces that a break phase finished.
type BreakCompletedMsg struct {
	Phase session.Phase
}

// Describe implements the logging helper.
func (m BreakCompletedMsg) Describe() string {
	return fmt.Sprintf(`phase:%q`, m.Phase)
}

// TrackFinishedMsg is emitted when the audio sink reports natural end of a
// track.
type TrackFinishedMsg struct {
	Path string
}

// Describe implements the logging helper.
func (m TrackFinishedMsg) Describe() string {
	return fmt.Sprintf(`path:%q`, m.Path)
}

// ScanResultMsg carries a completed music library scan.
type ScanResultMsg struct {
	Tracks []music.Track
	Err    error
}

// Describe implements the logging helper.
func (m ScanResultMsg) Describe() string {
	if m.Err != nil {
		return fmt.Sprintf(`err:%q`, m.Err)
	}
	return fmt.Sprintf(`tracks:%d`, len(m.Tracks))
}

// ConfigReloadedMsg carries the result of a settings reload. On error the
// dispatcher keeps the previous settings.
type ConfigReloadedMsg struct {
	Settings config.Settings
	Err      error
}

// Describe implements the logging helper.
func (m ConfigReloadedMsg) Describe() string {
	if m.Err != nil {
		return fmt.Sprintf(`err:%q`, m.Err)
	}
	return fmt.Sprintf(`work:%dm goal:%dm`, m.Settings.Timer.WorkMinutes, m.Settings.Summary.DailyGoalMinutes)
}

// AlarmDoneMsg signals the end of the phase-completion alarm window so the
// dispatcher can restore the music volume.
type AlarmDoneMsg struct{}

// Describe implements the logging helper.
func (m AlarmDoneMsg) Describe() string { return "alarm window closed" }

// FocusMsg indicates a component just gained focus.
type FocusMsg struct {
	Component ComponentID
}

// Describe implements the logging helper.
func (m FocusMsg) Describe() string {
	return fmt.Sprintf(`component:%q state:"focus"`, m.Component)
}

// BlurMsg indicates a component just lost focus.
type BlurMsg struct {
	Component ComponentID
}

// Describe implements the logging helper.
func (m BlurMsg) Describe() string {
	return fmt.Sprintf(`component:%q state:"blur"`, m.Component)
}

// FocusCmd wraps a FocusMsg in a tea.Cmd helper.
func FocusCmd(component ComponentID) tea.Cmd {
	return func() tea.Msg {
		return FocusMsg{Component: component}
	}
}

// BlurCmd wraps a BlurMsg in a tea.Cmd helper.
func BlurCmd(component ComponentID) tea.Cmd {
	return func() tea.Msg {
		return BlurMsg{Component: component}
	}
}

// DebugMsg captures optional diagnostic notes emitted by components.
type DebugMsg struct {
	Component ComponentID
	Context   string
	Detail    string
}

// Describe renders the debug message in a human-readable format.
func (m DebugMsg) Describe() string {
	return fmt.Sprintf(`component:%q context:%q detail:%q`, m.Component, m.Context, m.Detail)
}

// DebugCmd wraps DebugMsg creation in a tea.Cmd helper.
func DebugCmd(component ComponentID, context, detail string) tea.Cmd {
	return func() tea.Msg {
		return DebugMsg{Component: component, Context: context, Detail: detail}
	}
}
