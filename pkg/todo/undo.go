package todo

// The undo stack stores inverse commands rather than whole-store snapshots:
// each record carries exactly the state needed to reverse one mutation.

type record interface {
	revert(s *Store)
}

// removeRecord undoes Add by deleting the created item.
type removeRecord struct {
	id int64
}

func (r removeRecord) revert(s *Store) {
	i := s.indexOf(r.id)
	if i < 0 {
		return
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	if s.selected == r.id {
		s.selected = 0
	}
}

// insertRecord undoes Delete by restoring the full item at its original
// position.
type insertRecord struct {
	pos  int
	item Item
}

func (r insertRecord) revert(s *Store) {
	it := r.item.clone()
	pos := r.pos
	if pos > len(s.items) {
		pos = len(s.items)
	}
	s.items = append(s.items, nil)
	copy(s.items[pos+1:], s.items[pos:])
	s.items[pos] = &it
}

// textRecord undoes Edit by restoring the previous text.
type textRecord struct {
	id   int64
	text string
}

func (r textRecord) revert(s *Store) {
	if it := s.Get(r.id); it != nil {
		it.Text = r.text
	}
}

// doneRecord undoes ToggleDone by restoring the previous flag.
type doneRecord struct {
	id   int64
	done bool
}

func (r doneRecord) revert(s *Store) {
	if it := s.Get(r.id); it != nil {
		it.Done = r.done
	}
}
