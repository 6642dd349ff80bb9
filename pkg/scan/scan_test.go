package scan

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("not real audio"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestLibraryFiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.mp3"))
	writeFile(t, filepath.Join(dir, "a.wav"))
	writeFile(t, filepath.Join(dir, "c.m4a"))
	writeFile(t, filepath.Join(dir, "notes.txt"))
	writeFile(t, filepath.Join(dir, "cover.jpg"))

	tracks, err := Library(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tracks) != 3 {
		t.Fatalf("expected 3 audio tracks, got %d: %v", len(tracks), tracks)
	}
	// Sorted by path; titles fall back to the file stem when no tag parses.
	for i, want := range []string{"a", "b", "c"} {
		if tracks[i].Title != want {
			t.Fatalf("track %d: expected title %q, got %q", i, want, tracks[i].Title)
		}
	}
}

func TestLibraryDepthLimit(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "sub", "one", "two", "kept.mp3"))
	writeFile(t, filepath.Join(dir, "sub", "one", "two", "three", "buried.mp3"))

	tracks, err := Library(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tracks) != 1 || tracks[0].Title != "kept" {
		t.Fatalf("expected only the shallow track, got %v", tracks)
	}
}

func TestLibraryCreatesMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "music")

	tracks, err := Library(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tracks) != 0 {
		t.Fatalf("expected empty library, got %v", tracks)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("expected directory created: %v", err)
	}
}
