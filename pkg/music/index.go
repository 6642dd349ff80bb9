// Package music holds the in-memory track catalog and the playback-order
// state machine. Audio decoding and directory scanning live elsewhere; this
// package only consumes their results.
package music

import "time"

// Track is one discovered audio file. Read-only once indexed.
type Track struct {
	Path     string        `json:"path"`
	Title    string        `json:"title"`
	Duration time.Duration `json:"duration,omitempty"`
}

// Index is the catalog the playback controller traverses. It is rebuilt
// wholesale from a scan result.
type Index struct {
	tracks []Track
}

// NewIndex returns an empty catalog.
func NewIndex() *Index { return &Index{} }

// Tracks exposes the ordered track list for rendering. Callers must not
// mutate it.
func (ix *Index) Tracks() []Track { return ix.tracks }

// Len returns the number of indexed tracks.
func (ix *Index) Len() int { return len(ix.tracks) }

// Track returns the track at the given position.
func (ix *Index) Track(i int) (Track, bool) {
	if i < 0 || i >= len(ix.tracks) {
		return Track{}, false
	}
	return ix.tracks[i], true
}

// IndexOfPath finds the position of a track by its file path, or -1.
func (ix *Index) IndexOfPath(path string) int {
	if path == "" {
		return -1
	}
	for i, t := range ix.tracks {
		if t.Path == path {
			return i
		}
	}
	return -1
}

func (ix *Index) rebuild(tracks []Track) {
	ix.tracks = append(ix.tracks[:0], tracks...)
}
