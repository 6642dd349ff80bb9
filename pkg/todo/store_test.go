package todo

import (
	"testing"
	"time"
)

func snapshot(s *Store) []Item {
	out := make([]Item, 0, s.Len())
	for _, it := range s.Items() {
		out = append(out, it.clone())
	}
	return out
}

func sameItems(t *testing.T, want, got []Item) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("length mismatch: want %d, got %d", len(want), len(got))
	}
	for i := range want {
		w, g := want[i], got[i]
		if w.ID != g.ID || w.Text != g.Text || w.Done != g.Done || w.Logged != g.Logged {
			t.Fatalf("item %d mismatch:\nwant %+v\ngot  %+v", i, w, g)
		}
	}
}

func TestAddAssignsUniqueIDs(t *testing.T) {
	s := NewStore()
	a := s.Add("first")
	b := s.Add("second")
	if a == nil || b == nil {
		t.Fatalf("add returned nil")
	}
	if a.ID == b.ID {
		t.Fatalf("ids must be unique, both %d", a.ID)
	}
	s.Delete(b.ID)
	c := s.Add("third")
	if c.ID == b.ID {
		t.Fatalf("deleted id %d was reused", b.ID)
	}
}

func TestAddRejectsBlankText(t *testing.T) {
	s := NewStore()
	if it := s.Add("   "); it != nil {
		t.Fatalf("expected nil for blank text, got %+v", it)
	}
	if s.Len() != 0 {
		t.Fatalf("blank add should not change the store")
	}
	if s.UndoDepth() != 0 {
		t.Fatalf("blank add should not push an undo record")
	}
}

func TestEveryMutationUndoesExactly(t *testing.T) {
	s := NewStore()
	a := s.Add("write report")
	s.Add("water plants")
	s.Add("inbox zero")

	steps := []func(){
		func() { s.Add("one more") },
		func() { s.Edit(a.ID, "write the report") },
		func() { s.ToggleDone(a.ID) },
		func() { s.Delete(a.ID) },
	}

	for i, step := range steps {
		before := snapshot(s)
		step()
		if !s.Undo() {
			t.Fatalf("step %d: undo reported empty stack", i)
		}
		sameItems(t, before, snapshot(s))
	}
}

func TestUndoSequenceRestoresOrder(t *testing.T) {
	s := NewStore()
	s.Add("a")
	b := s.Add("b")
	s.Add("c")
	before := snapshot(s)

	s.Delete(b.ID) // remove from the middle
	s.Add("d")
	s.Undo() // remove d
	s.Undo() // restore b at position 1
	sameItems(t, before, snapshot(s))
	if s.At(1).ID != b.ID {
		t.Fatalf("b should be restored at its original position")
	}
}

func TestUndoEmptyStackIsNoop(t *testing.T) {
	s := NewStore()
	if s.Undo() {
		t.Fatalf("undo on empty stack should report false")
	}
}

func TestInvalidIDsAreNoops(t *testing.T) {
	s := NewStore()
	s.Add("keep")
	before := snapshot(s)

	s.Edit(99, "nope")
	s.ToggleDone(99)
	s.Delete(99)
	s.SelectForTimer(99)
	s.LogTime(99, 25*time.Minute)

	sameItems(t, before, snapshot(s))
	if _, ok := s.Selected(); ok {
		t.Fatalf("selection should not stick to an unknown id")
	}
	if s.UndoDepth() != 1 {
		t.Fatalf("no-ops must not push undo records, depth %d", s.UndoDepth())
	}
}

func TestDeleteSelectedClearsSelection(t *testing.T) {
	s := NewStore()
	it := s.Add("focused task")
	s.SelectForTimer(it.ID)
	if _, ok := s.Selected(); !ok {
		t.Fatalf("expected selection")
	}
	s.Delete(it.ID)
	if _, ok := s.Selected(); ok {
		t.Fatalf("deleting the selected item must clear the selection")
	}
	// A later session completion finds no target and must not log anywhere.
	s.LogTime(it.ID, 25*time.Minute)
	for _, other := range s.Items() {
		if other.Logged != 0 {
			t.Fatalf("time misattributed to %q", other.Text)
		}
	}
}

func TestLogTimeMergesSameDay(t *testing.T) {
	s := NewStore()
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.Local)
	s.now = func() time.Time { return now }

	it := s.Add("deep work")
	s.LogTime(it.ID, 25*time.Minute)
	now = now.Add(time.Hour)
	s.LogTime(it.ID, 25*time.Minute)

	if it.Logged != 50*time.Minute {
		t.Fatalf("expected 50m logged, got %v", it.Logged)
	}
	if len(it.Timeline) != 1 {
		t.Fatalf("same-day sessions should merge, got %d entries", len(it.Timeline))
	}
	if it.Timeline[0].Logged != 50*time.Minute {
		t.Fatalf("merged entry should total 50m, got %v", it.Timeline[0].Logged)
	}
}

func TestSeedAdvancesIDCounter(t *testing.T) {
	s := NewStore()
	s.Seed([]*Item{
		{ID: 3, Text: "loaded"},
		{ID: 7, Text: "also loaded"},
	})
	it := s.Add("fresh")
	if it.ID <= 7 {
		t.Fatalf("seeded ids must never be reused, got %d", it.ID)
	}
}

func TestStats(t *testing.T) {
	s := NewStore()
	now := time.Date(2026, time.March, 10, 18, 0, 0, 0, time.Local)
	s.now = func() time.Time { return now }

	a := s.Add("today and yesterday")
	b := s.Add("done long ago")
	s.ToggleDone(b.ID)

	a.Timeline = []WorkSession{
		{Day: "2026-03-09", Logged: 30 * time.Minute},
		{Day: "2026-03-10", Logged: 50 * time.Minute},
	}
	a.Logged = 80 * time.Minute

	st := s.Stats()
	if st.Today != 50*time.Minute {
		t.Fatalf("today: want 50m, got %v", st.Today)
	}
	if st.Yesterday != 30*time.Minute {
		t.Fatalf("yesterday: want 30m, got %v", st.Yesterday)
	}
	if st.Streak != 2 {
		t.Fatalf("streak: want 2, got %d", st.Streak)
	}
	if st.Done != 1 || st.Items != 2 {
		t.Fatalf("counts: got done=%d items=%d", st.Done, st.Items)
	}
}
