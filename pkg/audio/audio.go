// Package audio abstracts the playback device. The TUI drives an Output and
// listens on Done for track completion; it never blocks on the device from
// inside the event loop.
package audio

// Output is the playback sink contract. Implementations run their own
// producer goroutines and signal completion through Done.
type Output interface {
	// Play starts the file at path from the beginning, replacing whatever is
	// currently playing.
	Play(path string) error
	// Pause suspends playback, keeping position.
	Pause()
	// Resume continues after Pause.
	Resume()
	// Stop drops the current stream.
	Stop()
	// SetVolume takes a linear volume in [0, 1].
	SetVolume(v float64)
	// Done returns a channel closed when the current track plays to its end.
	// Stop and Play retire the previous channel without closing it.
	Done() <-chan struct{}
}

// Discard is an Output for environments without a usable audio device. All
// operations succeed and no track ever finishes.
type Discard struct{}

func (Discard) Play(string) error { return nil }

func (Discard) Pause() {}

func (Discard) Resume() {}

func (Discard) Stop() {}

func (Discard) SetVolume(float64) {}

func (Discard) Done() <-chan struct{} { return nil }
