package music

import (
	"math/rand"
	"time"
)

// OrderMode governs track traversal.
type OrderMode int

const (
	Sequential OrderMode = iota
	Shuffle
	RepeatOne
)

func (m OrderMode) String() string {
	switch m {
	case Sequential:
		return "Sequential"
	case Shuffle:
		return "Shuffle"
	case RepeatOne:
		return "Repeat One"
	default:
		return "Unknown"
	}
}

// ParseOrderMode restores a mode from its String form. Unknown input falls
// back to Sequential.
func ParseOrderMode(s string) OrderMode {
	switch s {
	case Shuffle.String():
		return Shuffle
	case RepeatOne.String():
		return RepeatOne
	default:
		return Sequential
	}
}

// Icon returns the glyph shown in the music panel title.
func (m OrderMode) Icon() string {
	switch m {
	case Shuffle:
		return "🔀"
	case RepeatOne:
		return "🔂"
	default:
		return "📄"
	}
}

// cycle returns the next mode in the m-key rotation.
func (m OrderMode) cycle() OrderMode {
	switch m {
	case Sequential:
		return Shuffle
	case Shuffle:
		return RepeatOne
	default:
		return Sequential
	}
}

// Controller is the playback-order state machine over an Index. It never
// touches the audio device; the dispatcher reacts to its state and drives
// the sink.
type Controller struct {
	index *Index

	mode    OrderMode
	repeat  bool // wrap sequential traversal at the ends
	current int  // -1 when nothing is current
	playing bool
	volume  float64

	perm []int
	rng  *rand.Rand
}

// NewController returns a stopped sequential controller over the index.
func NewController(ix *Index) *Controller {
	return &Controller{
		index:   ix,
		current: -1,
		volume:  1.0,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Tracks exposes the underlying catalog for rendering.
func (c *Controller) Tracks() []Track { return c.index.Tracks() }

func (c *Controller) Mode() OrderMode { return c.mode }

func (c *Controller) Repeat() bool { return c.repeat }

func (c *Controller) IsPlaying() bool { return c.playing }

func (c *Controller) Volume() float64 { return c.volume }

// Current returns the index of the current track, if any.
func (c *Controller) Current() (int, bool) {
	if c.current < 0 || c.current >= c.index.Len() {
		return 0, false
	}
	return c.current, true
}

// CurrentTrack resolves the current index against the catalog.
func (c *Controller) CurrentTrack() (Track, bool) {
	i, ok := c.Current()
	if !ok {
		return Track{}, false
	}
	return c.index.Track(i)
}

// Play makes the track at i current and starts playback. An out-of-range
// index is ignored.
func (c *Controller) Play(i int) {
	if i < 0 || i >= c.index.Len() {
		return
	}
	c.current = i
	c.playing = true
}

// Pause stops playback without losing the current track.
func (c *Controller) Pause() { c.playing = false }

// Toggle flips play/pause for the current track. With no current track it
// starts from the top of the catalog.
func (c *Controller) Toggle() {
	if _, ok := c.Current(); !ok {
		c.Play(0)
		return
	}
	c.playing = !c.playing
}

// Next advances by one step under the active order mode.
func (c *Controller) Next() { c.advance(1) }

// Prev steps backwards under the active order mode.
func (c *Controller) Prev() { c.advance(-1) }

// TrackFinished is the auto-advance entry point for audio-sink completion
// events. It behaves exactly like Next, including the stop-at-end rule for
// sequential order without repeat.
func (c *Controller) TrackFinished() { c.advance(1) }

// CycleMode rotates Sequential → Shuffle → RepeatOne. Entering shuffle draws
// a fresh permutation; the order then stays fixed until the next refresh or
// mode switch.
func (c *Controller) CycleMode() {
	c.SetMode(c.mode.cycle())
}

// SetMode switches the order mode directly.
func (c *Controller) SetMode(m OrderMode) {
	if m == Shuffle && c.mode != Shuffle {
		c.reshuffle()
	}
	c.mode = m
}

// SetRepeat controls wraparound for sequential traversal.
func (c *Controller) SetRepeat(on bool) { c.repeat = on }

// ToggleRepeat flips the wraparound flag.
func (c *Controller) ToggleRepeat() { c.repeat = !c.repeat }

// SetVolume clamps and stores the logical volume.
func (c *Controller) SetVolume(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	c.volume = v
}

// Refresh rebuilds the catalog wholesale from a scan result. The current
// track survives when its path is still present; otherwise playback state is
// cleared rather than left dangling. A refresh always invalidates the
// shuffle permutation.
func (c *Controller) Refresh(tracks []Track) {
	oldPath := ""
	if t, ok := c.CurrentTrack(); ok {
		oldPath = t.Path
	}

	c.index.rebuild(tracks)
	c.perm = nil
	if c.mode == Shuffle {
		c.reshuffle()
	}

	if i := c.index.IndexOfPath(oldPath); i >= 0 {
		c.current = i
		return
	}
	c.current = -1
	c.playing = false
}

// Permutation exposes the fixed shuffle order for inspection.
func (c *Controller) Permutation() []int { return c.perm }

func (c *Controller) advance(step int) {
	n := c.index.Len()
	if n == 0 {
		return
	}
	cur, ok := c.Current()
	if !ok {
		c.Play(0)
		return
	}

	switch c.mode {
	case RepeatOne:
		// Stay put; auto-advance replays the same track.
		c.playing = true
	case Shuffle:
		c.Play(c.shuffleStep(cur, step))
	default:
		next := cur + step
		switch {
		case next >= n:
			if c.repeat {
				c.Play(0)
				return
			}
			// End of the catalog: stop, keep the index where it is.
			c.playing = false
		case next < 0:
			if c.repeat {
				c.Play(n - 1)
				return
			}
			c.playing = false
		default:
			c.Play(next)
		}
	}
}

// shuffleStep walks the fixed permutation from the position holding cur.
func (c *Controller) shuffleStep(cur, step int) int {
	if len(c.perm) != c.index.Len() {
		c.reshuffle()
	}
	pos := 0
	for i, v := range c.perm {
		if v == cur {
			pos = i
			break
		}
	}
	pos = (pos + step + len(c.perm)) % len(c.perm)
	return c.perm[pos]
}

func (c *Controller) reshuffle() {
	c.perm = c.rng.Perm(c.index.Len())
}
