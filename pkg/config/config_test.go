package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFileWritesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sessio.toml")

	s, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != Default() {
		t.Fatalf("expected defaults, got %+v", s)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected default file to be written: %v", err)
	}
}

func TestLoadFileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sessio.toml")
	body := `[timer]
work_minutes = 50
sessions_until_long_break = 2

[music]
default_volume = 0.5
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	s, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Timer.WorkMinutes != 50 {
		t.Fatalf("expected work_minutes 50, got %d", s.Timer.WorkMinutes)
	}
	if s.Timer.SessionsUntilLongBreak != 2 {
		t.Fatalf("expected sessions_until_long_break 2, got %d", s.Timer.SessionsUntilLongBreak)
	}
	if s.Music.DefaultVolume != 0.5 {
		t.Fatalf("expected default_volume 0.5, got %f", s.Music.DefaultVolume)
	}
	// Unset keys keep defaults.
	if s.Timer.ShortBreakMinutes != Default().Timer.ShortBreakMinutes {
		t.Fatalf("expected default short break, got %d", s.Timer.ShortBreakMinutes)
	}
}

func TestLoadFileNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sessio.toml")
	body := `[timer]
work_minutes = -5

[music]
default_volume = 4.0
alarm_seconds = -1
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	s, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Timer.WorkMinutes != Default().Timer.WorkMinutes {
		t.Fatalf("expected clamped work_minutes, got %d", s.Timer.WorkMinutes)
	}
	if s.Music.DefaultVolume != 1.0 {
		t.Fatalf("expected volume clamped to 1, got %f", s.Music.DefaultVolume)
	}
	if s.Music.AlarmSeconds != 0 {
		t.Fatalf("expected alarm_seconds clamped to 0, got %d", s.Music.AlarmSeconds)
	}
}

func TestLoadFileBadTOMLKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sessio.toml")
	if err := os.WriteFile(path, []byte("[timer\nbroken"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	s, err := LoadFile(path)
	if err == nil {
		t.Fatalf("expected error for malformed file")
	}
	if s != Default() {
		t.Fatalf("expected defaults on parse error, got %+v", s)
	}
}

func TestSessionSettings(t *testing.T) {
	s := Default()
	got := s.SessionSettings()
	if got.Work != 25*time.Minute {
		t.Fatalf("expected 25m work, got %v", got.Work)
	}
	if got.SessionsUntilLongBreak != 4 {
		t.Fatalf("expected 4 sessions, got %d", got.SessionsUntilLongBreak)
	}
}
