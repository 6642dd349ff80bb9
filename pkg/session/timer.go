// Package session implements the Pomodoro phase state machine.
package session

import "time"

// Phase is one segment of the Pomodoro cycle.
type Phase int

const (
	Work Phase = iota
	ShortBreak
	LongBreak
)

func (p Phase) String() string {
	switch p {
	case Work:
		return "Work"
	case ShortBreak:
		return "Short Break"
	case LongBreak:
		return "Long Break"
	default:
		return "Unknown"
	}
}

// State is the run state layered on top of the current phase.
type State int

const (
	Idle State = iota
	Running
	Paused
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Ready"
	case Running:
		return "Running"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// Settings holds the configured phase durations.
type Settings struct {
	Work                   time.Duration
	ShortBreak             time.Duration
	LongBreak              time.Duration
	SessionsUntilLongBreak int
}

// Completion describes a finished phase. For a Work phase Elapsed carries the
// full configured work duration so the time-tracking linkage can credit it to
// the selected todo item.
type Completion struct {
	Phase   Phase
	Next    Phase
	Elapsed time.Duration
}

// Timer is the Pomodoro engine. Time advances only through Tick, which takes
// the actual elapsed duration, so the machine stays deterministic and missed
// ticks reconcile naturally.
type Timer struct {
	settings Settings
	pending  *Settings

	phase     Phase
	state     State
	remaining time.Duration
	sessions  int

	completed []time.Time

	now func() time.Time
}

// New returns an idle timer at the start of a work phase.
func New(s Settings) *Timer {
	if s.SessionsUntilLongBreak <= 0 {
		s.SessionsUntilLongBreak = 4
	}
	return &Timer{
		settings:  s,
		phase:     Work,
		state:     Idle,
		remaining: s.Work,
		now:       time.Now,
	}
}

func (t *Timer) Phase() Phase { return t.phase }

func (t *Timer) State() State { return t.state }

func (t *Timer) Remaining() time.Duration { return t.remaining }

func (t *Timer) Sessions() int { return t.sessions }

// PhaseDuration returns the configured length of the current phase.
func (t *Timer) PhaseDuration() time.Duration {
	return t.settings.durationFor(t.phase)
}

// Progress reports how much of the current phase has elapsed, in [0, 1].
func (t *Timer) Progress() float64 {
	total := t.PhaseDuration()
	if total <= 0 {
		return 0
	}
	done := total - t.remaining
	if done < 0 {
		done = 0
	}
	return float64(done) / float64(total)
}

// Start begins or resumes the current phase. Running is a no-op.
func (t *Timer) Start() {
	if t.state == Running {
		return
	}
	t.state = Running
}

// Pause freezes the remaining time. Only effective while running.
func (t *Timer) Pause() {
	if t.state != Running {
		return
	}
	t.state = Paused
}

// Toggle flips between running and paused.
func (t *Timer) Toggle() {
	if t.state == Running {
		t.Pause()
		return
	}
	t.Start()
}

// Reset returns to an idle work phase and zeroes the session counter. Logged
// todo time is never touched here.
func (t *Timer) Reset() {
	t.applyPending()
	t.phase = Work
	t.state = Idle
	t.remaining = t.settings.Work
	t.sessions = 0
}

// Skip forces the current phase to complete exactly as if the remaining time
// had run out.
func (t *Timer) Skip() *Completion {
	return t.completePhase()
}

// Tick advances the countdown by the actual elapsed wall time. It returns a
// non-nil Completion when the phase finishes. Ticks while paused or idle are
// ignored.
func (t *Timer) Tick(elapsed time.Duration) *Completion {
	if t.state != Running || elapsed <= 0 {
		return nil
	}
	if elapsed >= t.remaining {
		t.remaining = 0
		return t.completePhase()
	}
	t.remaining -= elapsed
	return nil
}

// ApplySettings stages new durations from a config reload. The in-flight
// countdown is left alone; new values take effect at the next phase
// transition or reset.
func (t *Timer) ApplySettings(s Settings) {
	if s.SessionsUntilLongBreak <= 0 {
		s.SessionsUntilLongBreak = 4
	}
	t.pending = &s
}

// CompletedToday counts work sessions finished since local midnight.
func (t *Timer) CompletedToday() int {
	year, month, day := t.now().Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
	n := 0
	for _, at := range t.completed {
		if !at.Before(midnight) {
			n++
		}
	}
	return n
}

// CompletionLog returns the timestamps of all completed work sessions, oldest
// first. The slice is shared; callers must not mutate it.
func (t *Timer) CompletionLog() []time.Time { return t.completed }

// SeedCompletionLog restores a completion history loaded from a snapshot.
func (t *Timer) SeedCompletionLog(log []time.Time) {
	t.completed = append(t.completed[:0], log...)
}

func (t *Timer) completePhase() *Completion {
	ev := &Completion{Phase: t.phase}

	if t.phase == Work {
		t.sessions++
		t.completed = append(t.completed, t.now())
		ev.Elapsed = t.settings.Work
		if t.sessions%t.settings.SessionsUntilLongBreak == 0 {
			ev.Next = LongBreak
		} else {
			ev.Next = ShortBreak
		}
	} else {
		ev.Next = Work
	}

	t.applyPending()
	t.phase = ev.Next
	t.remaining = t.settings.durationFor(ev.Next)
	// The next phase waits for an explicit start so the user can acknowledge
	// the transition.
	t.state = Idle
	return ev
}

func (t *Timer) applyPending() {
	if t.pending == nil {
		return
	}
	t.settings = *t.pending
	t.pending = nil
}

func (s Settings) durationFor(p Phase) time.Duration {
	switch p {
	case ShortBreak:
		return s.ShortBreak
	case LongBreak:
		return s.LongBreak
	default:
		return s.Work
	}
}
