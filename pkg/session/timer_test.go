package session

import (
	"testing"
	"time"
)

func testSettings() Settings {
	return Settings{
		Work:                   25 * time.Minute,
		ShortBreak:             5 * time.Minute,
		LongBreak:              15 * time.Minute,
		SessionsUntilLongBreak: 4,
	}
}

func TestStartPauseToggle(t *testing.T) {
	tm := New(testSettings())
	if tm.State() != Idle {
		t.Fatalf("expected idle, got %v", tm.State())
	}
	tm.Start()
	if tm.State() != Running {
		t.Fatalf("expected running, got %v", tm.State())
	}
	tm.Start() // no-op while running
	if tm.State() != Running {
		t.Fatalf("start while running should be a no-op")
	}
	tm.Pause()
	if tm.State() != Paused {
		t.Fatalf("expected paused, got %v", tm.State())
	}
	tm.Pause() // no-op while paused
	if tm.State() != Paused {
		t.Fatalf("pause while paused should be a no-op")
	}
	tm.Toggle()
	if tm.State() != Running {
		t.Fatalf("toggle should resume, got %v", tm.State())
	}
}

func TestTickIgnoredUnlessRunning(t *testing.T) {
	tm := New(testSettings())
	if ev := tm.Tick(time.Minute); ev != nil {
		t.Fatalf("tick while idle should do nothing")
	}
	if tm.Remaining() != 25*time.Minute {
		t.Fatalf("remaining changed while idle: %v", tm.Remaining())
	}
	tm.Start()
	tm.Pause()
	if ev := tm.Tick(time.Minute); ev != nil {
		t.Fatalf("tick while paused should do nothing")
	}
}

func TestWorkCompletionEntersPausedBreak(t *testing.T) {
	tm := New(testSettings())
	tm.Start()
	ev := tm.Tick(25 * time.Minute)
	if ev == nil {
		t.Fatalf("expected completion")
	}
	if ev.Phase != Work || ev.Next != ShortBreak {
		t.Fatalf("unexpected transition %v -> %v", ev.Phase, ev.Next)
	}
	if ev.Elapsed != 25*time.Minute {
		t.Fatalf("completion should carry the work duration, got %v", ev.Elapsed)
	}
	if tm.Sessions() != 1 {
		t.Fatalf("expected 1 session, got %d", tm.Sessions())
	}
	// Completion never auto-starts the next phase.
	if tm.State() != Idle {
		t.Fatalf("next phase should wait for start, got %v", tm.State())
	}
	if tm.Remaining() != 5*time.Minute {
		t.Fatalf("expected short break countdown, got %v", tm.Remaining())
	}
}

func TestLongBreakEveryNthSession(t *testing.T) {
	tm := New(testSettings())
	for i := 1; i <= 8; i++ {
		tm.Start()
		ev := tm.Tick(25 * time.Minute)
		if ev == nil {
			t.Fatalf("session %d: expected work completion", i)
		}
		want := ShortBreak
		if i%4 == 0 {
			want = LongBreak
		}
		if ev.Next != want {
			t.Fatalf("session %d: expected %v, got %v", i, want, ev.Next)
		}
		tm.Start()
		brk := tm.Tick(time.Hour)
		if brk == nil || brk.Next != Work {
			t.Fatalf("session %d: break should return to work", i)
		}
		if brk.Elapsed != 0 {
			t.Fatalf("break completion should not carry loggable time")
		}
	}
	if tm.Sessions() != 8 {
		t.Fatalf("expected 8 sessions, got %d", tm.Sessions())
	}
}

func TestSkipMatchesNaturalExpiry(t *testing.T) {
	tm := New(testSettings())
	ev := tm.Skip()
	if ev == nil || ev.Phase != Work || ev.Next != ShortBreak {
		t.Fatalf("skip should complete the work phase: %+v", ev)
	}
	if tm.Sessions() != 1 {
		t.Fatalf("skip should count the session")
	}
	if tm.State() != Idle {
		t.Fatalf("skip should leave the next phase paused")
	}
}

func TestOvershootTickCompletesOnce(t *testing.T) {
	tm := New(testSettings())
	tm.Start()
	// Process suspension: a single tick may carry far more than the cadence.
	ev := tm.Tick(2 * time.Hour)
	if ev == nil {
		t.Fatalf("expected completion on overshoot")
	}
	if tm.Sessions() != 1 {
		t.Fatalf("overshoot must complete exactly one phase, got %d", tm.Sessions())
	}
	if tm.Remaining() != 5*time.Minute {
		t.Fatalf("expected fresh break countdown, got %v", tm.Remaining())
	}
}

func TestResetClearsSessions(t *testing.T) {
	tm := New(testSettings())
	tm.Start()
	tm.Tick(25 * time.Minute)
	tm.Start()
	tm.Tick(10 * time.Minute)
	tm.Reset()
	if tm.Phase() != Work || tm.State() != Idle {
		t.Fatalf("reset should return to idle work, got %v/%v", tm.Phase(), tm.State())
	}
	if tm.Sessions() != 0 {
		t.Fatalf("reset should clear sessions, got %d", tm.Sessions())
	}
	if tm.Remaining() != 25*time.Minute {
		t.Fatalf("reset should restore the work duration, got %v", tm.Remaining())
	}
}

func TestSettingsApplyAtNextTransition(t *testing.T) {
	tm := New(testSettings())
	tm.Start()
	tm.Tick(10 * time.Minute)

	next := testSettings()
	next.Work = 50 * time.Minute
	next.ShortBreak = 10 * time.Minute
	tm.ApplySettings(next)

	// In-flight countdown is untouched.
	if tm.Remaining() != 15*time.Minute {
		t.Fatalf("reload must not clamp the running phase, got %v", tm.Remaining())
	}

	ev := tm.Tick(15 * time.Minute)
	if ev == nil {
		t.Fatalf("expected completion")
	}
	if tm.Remaining() != 10*time.Minute {
		t.Fatalf("new break duration should apply at transition, got %v", tm.Remaining())
	}
}

func TestProgress(t *testing.T) {
	tm := New(testSettings())
	tm.Start()
	tm.Tick(5 * time.Minute)
	got := tm.Progress()
	if got < 0.19 || got > 0.21 {
		t.Fatalf("expected progress near 0.2, got %f", got)
	}
}

func TestCompletedToday(t *testing.T) {
	tm := New(testSettings())
	now := time.Date(2026, time.March, 10, 14, 0, 0, 0, time.Local)
	tm.now = func() time.Time { return now }

	tm.SeedCompletionLog([]time.Time{
		now.Add(-30 * time.Hour), // yesterday
		now.Add(-2 * time.Hour),
	})
	tm.Start()
	tm.Tick(25 * time.Minute)

	if got := tm.CompletedToday(); got != 2 {
		t.Fatalf("expected 2 sessions today, got %d", got)
	}
	if got := len(tm.CompletionLog()); got != 3 {
		t.Fatalf("expected 3 logged completions, got %d", got)
	}
}
