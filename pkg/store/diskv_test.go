package store

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/sessio/pkg/todo"
)

func TestTodoRoundTrip(t *testing.T) {
	p, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	items := []*todo.Item{
		{ID: 2, Text: "review notes", CreatedAt: time.Now()},
		{ID: 1, Text: "write report", Done: true, Logged: 25 * time.Minute, CreatedAt: time.Now()},
	}
	for _, item := range items {
		if err := p.StoreTodo(item); err != nil {
			t.Fatalf("store todo %d: %v", item.ID, err)
		}
	}

	got := p.Todos(context.Background())
	if len(got) != 2 {
		t.Fatalf("expected 2 todos, got %d", len(got))
	}
	if got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("expected todos ordered by id, got %d then %d", got[0].ID, got[1].ID)
	}
	if got[0].Text != "write report" || !got[0].Done {
		t.Fatalf("unexpected first todo: %+v", got[0])
	}
	if got[0].Logged != 25*time.Minute {
		t.Fatalf("expected 25m logged, got %v", got[0].Logged)
	}

	if err := p.DeleteTodo(2); err != nil {
		t.Fatalf("delete todo: %v", err)
	}
	if got := p.Todos(context.Background()); len(got) != 1 {
		t.Fatalf("expected 1 todo after delete, got %d", len(got))
	}
}

func TestStoreTodoRequiresID(t *testing.T) {
	p, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	if err := p.StoreTodo(&todo.Item{Text: "no id"}); err == nil {
		t.Fatal("expected error for missing id")
	}
}

func TestStateRoundTrip(t *testing.T) {
	p, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	// Missing file yields the zero state.
	state, err := p.State()
	if err != nil {
		t.Fatalf("initial state: %v", err)
	}
	if len(state.CompletionLog) != 0 || state.SelectedTodo != 0 {
		t.Fatalf("expected zero state, got %+v", state)
	}

	now := time.Now().Truncate(time.Second)
	want := AppState{
		CompletionLog: []time.Time{now.Add(-time.Hour), now},
		SelectedTodo:  7,
		Music: PlaybackState{
			Mode:      "shuffle",
			Repeat:    true,
			Volume:    0.6,
			TrackPath: "/music/a.mp3",
		},
	}
	if err := p.SaveState(want); err != nil {
		t.Fatalf("save state: %v", err)
	}

	got, err := p.State()
	if err != nil {
		t.Fatalf("reload state: %v", err)
	}
	if len(got.CompletionLog) != 2 || !got.CompletionLog[1].Equal(now) {
		t.Fatalf("unexpected completion log: %v", got.CompletionLog)
	}
	if got.SelectedTodo != 7 {
		t.Fatalf("expected selected todo 7, got %d", got.SelectedTodo)
	}
	if got.Music != want.Music {
		t.Fatalf("unexpected playback state: %+v", got.Music)
	}
}
