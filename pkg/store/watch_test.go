package store

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/sessio/pkg/todo"
)

func TestPersistenceWatchEmitsTodoChanges(t *testing.T) {
	base := t.TempDir()
	p, err := Load(base)
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe to directories before storing.
	time.Sleep(50 * time.Millisecond)

	item := &todo.Item{ID: 1, Text: "write report", CreatedAt: time.Now()}
	if err := p.StoreTodo(item); err != nil {
		t.Fatalf("store todo: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventTodosChanged || evt.Type == EventInvalidated {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for todo change event")
		}
	}
}
