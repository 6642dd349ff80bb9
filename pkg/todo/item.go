// Package todo holds the ordered task list, its undo stack, and the
// timer-selection used for automatic time logging.
package todo

import "time"

const dayLayout = "2006-01-02"

// Item is a single task. IDs are unique for the lifetime of a store and are
// never reused, even after deletion.
type Item struct {
	ID        int64         `json:"id"`
	Text      string        `json:"text"`
	Done      bool          `json:"done"`
	Logged    time.Duration `json:"logged,omitempty"`
	CreatedAt time.Time     `json:"created"`
	Timeline  []WorkSession `json:"timeline,omitempty"`
}

// WorkSession records focused time credited to an item on a given day.
// Sessions on the same day merge into one entry.
type WorkSession struct {
	Day    string        `json:"day"`
	Logged time.Duration `json:"logged"`
	At     time.Time     `json:"at"`
}

func (i *Item) clone() Item {
	out := *i
	out.Timeline = append([]WorkSession(nil), i.Timeline...)
	return out
}
