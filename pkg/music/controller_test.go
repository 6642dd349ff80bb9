package music

import (
	"math/rand"
	"testing"
)

func threeTracks() []Track {
	return []Track{
		{Path: "/music/a.mp3", Title: "A"},
		{Path: "/music/b.mp3", Title: "B"},
		{Path: "/music/c.mp3", Title: "C"},
	}
}

func newTestController(tracks []Track) *Controller {
	c := NewController(NewIndex())
	c.rng = rand.New(rand.NewSource(1))
	c.Refresh(tracks)
	return c
}

func TestSequentialStopsAtEnd(t *testing.T) {
	c := newTestController(threeTracks())
	c.Play(0)

	played := []int{}
	if i, ok := c.Current(); ok {
		played = append(played, i)
	}
	c.Next()
	if i, ok := c.Current(); ok {
		played = append(played, i)
	}
	c.Next()
	if i, ok := c.Current(); ok {
		played = append(played, i)
	}

	want := []int{0, 1, 2}
	for i := range want {
		if played[i] != want[i] {
			t.Fatalf("sequence mismatch at %d: want %v, got %v", i, want, played)
		}
	}
	if !c.IsPlaying() {
		t.Fatalf("should still be playing at the last track")
	}

	// Third advance past the end: stop, index unchanged.
	c.Next()
	if c.IsPlaying() {
		t.Fatalf("expected playback stopped at the end")
	}
	if i, ok := c.Current(); !ok || i != 2 {
		t.Fatalf("index should remain at the last track, got %d (%v)", i, ok)
	}
}

func TestSequentialRepeatWrapsAround(t *testing.T) {
	c := newTestController(threeTracks())
	c.SetRepeat(true)
	c.Play(2)
	c.Next()
	if i, ok := c.Current(); !ok || i != 0 {
		t.Fatalf("repeat should wrap to the first track, got %d", i)
	}
	if !c.IsPlaying() {
		t.Fatalf("wraparound should keep playing")
	}
	c.Prev()
	if i, _ := c.Current(); i != 2 {
		t.Fatalf("repeat should wrap backwards to the last track, got %d", i)
	}
}

func TestShuffleVisitsEveryTrackOnceAndIsStable(t *testing.T) {
	tracks := make([]Track, 6)
	for i := range tracks {
		tracks[i] = Track{Path: string(rune('a'+i)) + ".mp3"}
	}
	c := newTestController(tracks)
	c.SetMode(Shuffle)
	c.Play(c.Permutation()[0])

	walk := func() []int {
		out := []int{}
		for range tracks {
			i, _ := c.Current()
			out = append(out, i)
			c.Next()
		}
		return out
	}

	first := walk()
	seen := make(map[int]bool)
	for _, i := range first {
		if seen[i] {
			t.Fatalf("track %d visited twice in one cycle: %v", i, first)
		}
		seen[i] = true
	}
	if len(seen) != len(tracks) {
		t.Fatalf("expected all %d tracks visited, got %d", len(tracks), len(seen))
	}

	// The permutation is fixed within the session: the second lap repeats the
	// first exactly.
	second := walk()
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("shuffle order changed between laps:\n%v\n%v", first, second)
		}
	}
}

func TestShuffleRedrawsOnModeReentry(t *testing.T) {
	c := newTestController(threeTracks())
	c.SetMode(Shuffle)
	perm := append([]int(nil), c.Permutation()...)
	c.SetMode(Sequential)
	c.SetMode(Shuffle)
	if len(c.Permutation()) != len(perm) {
		t.Fatalf("permutation should cover the catalog")
	}
	// The draw must happen again (contents may coincide for tiny catalogs,
	// so only assert a fresh full-length permutation exists).
	seen := make(map[int]bool)
	for _, v := range c.Permutation() {
		seen[v] = true
	}
	if len(seen) != 3 {
		t.Fatalf("re-entry should produce a valid permutation, got %v", c.Permutation())
	}
}

func TestRepeatOneStaysPut(t *testing.T) {
	c := newTestController(threeTracks())
	c.SetMode(RepeatOne)
	c.Play(1)
	c.TrackFinished()
	if i, _ := c.Current(); i != 1 {
		t.Fatalf("repeat-one should stay on the same track, got %d", i)
	}
	if !c.IsPlaying() {
		t.Fatalf("repeat-one auto-advance should keep playing")
	}
	c.Next()
	if i, _ := c.Current(); i != 1 {
		t.Fatalf("manual next under repeat-one should not move, got %d", i)
	}
}

func TestRefreshPreservesCurrentByPath(t *testing.T) {
	c := newTestController(threeTracks())
	c.Play(1) // b.mp3

	// b survives the rescan at a different position.
	c.Refresh([]Track{
		{Path: "/music/c.mp3", Title: "C"},
		{Path: "/music/b.mp3", Title: "B"},
		{Path: "/music/new.mp3", Title: "New"},
	})
	if i, ok := c.Current(); !ok || i != 1 {
		t.Fatalf("current should follow the path match, got %d (%v)", i, ok)
	}
	if !c.IsPlaying() {
		t.Fatalf("playback should continue across a refresh that keeps the track")
	}

	// b disappears: playback state is cleared, never dangling.
	c.Refresh([]Track{{Path: "/music/x.mp3", Title: "X"}})
	if _, ok := c.Current(); ok {
		t.Fatalf("current index should be cleared when the track vanished")
	}
	if c.IsPlaying() {
		t.Fatalf("playback should stop when the current track vanished")
	}
}

func TestToggleStartsFromTopWithNoCurrent(t *testing.T) {
	c := newTestController(threeTracks())
	c.Toggle()
	if i, ok := c.Current(); !ok || i != 0 {
		t.Fatalf("toggle with no current track should start at 0, got %d (%v)", i, ok)
	}
	if !c.IsPlaying() {
		t.Fatalf("toggle should start playback")
	}
	c.Toggle()
	if c.IsPlaying() {
		t.Fatalf("second toggle should pause")
	}
}

func TestPlayOutOfRangeIgnored(t *testing.T) {
	c := newTestController(threeTracks())
	c.Play(99)
	if _, ok := c.Current(); ok {
		t.Fatalf("out-of-range play should be ignored")
	}
	if c.IsPlaying() {
		t.Fatalf("out-of-range play should not start playback")
	}
}

func TestVolumeClamped(t *testing.T) {
	c := newTestController(threeTracks())
	c.SetVolume(1.7)
	if c.Volume() != 1 {
		t.Fatalf("volume should clamp to 1, got %f", c.Volume())
	}
	c.SetVolume(-0.3)
	if c.Volume() != 0 {
		t.Fatalf("volume should clamp to 0, got %f", c.Volume())
	}
}
