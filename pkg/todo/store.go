package todo

import (
	"strings"
	"time"
)

// Store is the ordered task collection. Display order is insertion order.
// All mutations are silent no-ops when the referenced id does not exist, so
// stale UI state can never crash the event loop.
type Store struct {
	items    []*Item
	nextID   int64
	selected int64 // timer target; 0 means none
	undo     []record

	now func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{nextID: 1, now: time.Now}
}

// Seed replaces the store contents with loaded items and advances the id
// counter past the highest seen id. The undo stack and selection are cleared.
func (s *Store) Seed(items []*Item) {
	s.items = s.items[:0]
	s.undo = nil
	s.selected = 0
	s.nextID = 1
	for _, it := range items {
		if it == nil {
			continue
		}
		s.items = append(s.items, it)
		if it.ID >= s.nextID {
			s.nextID = it.ID + 1
		}
	}
}

// Items exposes the underlying ordered slice for rendering. Callers must not
// mutate it.
func (s *Store) Items() []*Item { return s.items }

// Len returns the number of items.
func (s *Store) Len() int { return len(s.items) }

// At returns the item at a display position, or nil when out of range.
func (s *Store) At(index int) *Item {
	if index < 0 || index >= len(s.items) {
		return nil
	}
	return s.items[index]
}

// Get looks an item up by id.
func (s *Store) Get(id int64) *Item {
	if i := s.indexOf(id); i >= 0 {
		return s.items[i]
	}
	return nil
}

// Add appends a new task and returns it. Blank text is rejected.
func (s *Store) Add(text string) *Item {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	it := &Item{
		ID:        s.nextID,
		Text:      text,
		CreatedAt: s.now(),
	}
	s.nextID++
	s.push(removeRecord{id: it.ID})
	s.items = append(s.items, it)
	return it
}

// Edit replaces the text of the item with the given id.
func (s *Store) Edit(id int64, text string) {
	text = strings.TrimSpace(text)
	it := s.Get(id)
	if it == nil || text == "" {
		return
	}
	s.push(textRecord{id: id, text: it.Text})
	it.Text = text
}

// ToggleDone flips the completion flag of the item with the given id.
func (s *Store) ToggleDone(id int64) {
	it := s.Get(id)
	if it == nil {
		return
	}
	s.push(doneRecord{id: id, done: it.Done})
	it.Done = !it.Done
}

// Delete removes the item with the given id. Deleting the item currently
// selected for the timer clears that selection.
func (s *Store) Delete(id int64) {
	i := s.indexOf(id)
	if i < 0 {
		return
	}
	s.push(insertRecord{pos: i, item: s.items[i].clone()})
	s.items = append(s.items[:i], s.items[i+1:]...)
	if s.selected == id {
		s.selected = 0
	}
}

// SelectForTimer marks the item that completed work sessions should credit.
// An unknown id is ignored.
func (s *Store) SelectForTimer(id int64) {
	if s.Get(id) == nil {
		return
	}
	s.selected = id
}

// ClearSelection drops the timer target.
func (s *Store) ClearSelection() { s.selected = 0 }

// Selected returns the current timer target, re-validated against the live
// items so a stale id is reported as no selection.
func (s *Store) Selected() (*Item, bool) {
	if s.selected == 0 {
		return nil, false
	}
	it := s.Get(s.selected)
	if it == nil {
		s.selected = 0
		return nil, false
	}
	return it, true
}

// LogTime credits a completed work session to the item with the given id,
// merging into today's timeline entry when one exists. Credits from the timer
// are not user edits, so they are not undoable.
func (s *Store) LogTime(id int64, d time.Duration) {
	it := s.Get(id)
	if it == nil || d <= 0 {
		return
	}
	it.Logged += d
	at := s.now()
	day := at.Format(dayLayout)
	for i := range it.Timeline {
		if it.Timeline[i].Day == day {
			it.Timeline[i].Logged += d
			it.Timeline[i].At = at
			return
		}
	}
	it.Timeline = append(it.Timeline, WorkSession{Day: day, Logged: d, At: at})
}

// Undo reverses the most recent mutation exactly once. An empty stack is a
// no-op, not an error.
func (s *Store) Undo() bool {
	n := len(s.undo)
	if n == 0 {
		return false
	}
	rec := s.undo[n-1]
	s.undo = s.undo[:n-1]
	rec.revert(s)
	return true
}

// UndoDepth reports how many mutations can currently be reversed.
func (s *Store) UndoDepth() int { return len(s.undo) }

func (s *Store) indexOf(id int64) int {
	for i, it := range s.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) push(r record) {
	s.undo = append(s.undo, r)
}
