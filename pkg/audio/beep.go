package audio

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// ErrUnsupportedFormat is returned for files no decoder claims.
var ErrUnsupportedFormat = errors.New("audio: unsupported format")

// Speaker plays local files through the default output device using beep.
type Speaker struct {
	mu         sync.Mutex
	sampleRate beep.SampleRate
	ready      bool

	ctrl   *beep.Ctrl
	volume *effects.Volume
	level  float64

	done     chan struct{}
	doneOnce *sync.Once
}

// NewSpeaker returns an uninitialized speaker; the device opens lazily on
// the first Play so headless environments can still construct one.
func NewSpeaker() *Speaker {
	return &Speaker{level: 1.0}
}

// Play decodes path and starts it from the beginning, replacing the current
// stream.
func (s *Speaker) Play(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("audio: open %s: %w", filepath.Base(path), err)
	}

	streamer, format, err := decode(f, path)
	if err != nil {
		f.Close()
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		s.sampleRate = format.SampleRate
		if err := speaker.Init(s.sampleRate, s.sampleRate.N(time.Second/10)); err != nil {
			streamer.Close()
			return fmt.Errorf("audio: open device: %w", err)
		}
		s.ready = true
	}

	var src beep.Streamer = streamer
	if format.SampleRate != s.sampleRate {
		src = beep.Resample(4, format.SampleRate, s.sampleRate, streamer)
	}

	// Unblock any listener on the stream being replaced; the dispatcher
	// correlates finish events by path and drops stale ones.
	if s.doneOnce != nil {
		prev, prevOnce := s.done, s.doneOnce
		prevOnce.Do(func() { close(prev) })
	}

	done := make(chan struct{})
	once := &sync.Once{}

	s.volume = &effects.Volume{Streamer: src, Base: 2}
	s.applyLevel()
	s.ctrl = &beep.Ctrl{Streamer: s.volume}
	s.done = done
	s.doneOnce = once

	speaker.Clear()
	speaker.Play(beep.Seq(s.ctrl, beep.Callback(func() {
		streamer.Close()
		once.Do(func() { close(done) })
	})))
	return nil
}

// Pause suspends the current stream.
func (s *Speaker) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctrl == nil {
		return
	}
	speaker.Lock()
	s.ctrl.Paused = true
	speaker.Unlock()
}

// Resume continues a paused stream.
func (s *Speaker) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctrl == nil {
		return
	}
	speaker.Lock()
	s.ctrl.Paused = false
	speaker.Unlock()
}

// Stop drops the current stream and unblocks any Done listener.
func (s *Speaker) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return
	}
	speaker.Clear()
	if s.doneOnce != nil {
		prev, prevOnce := s.done, s.doneOnce
		prevOnce.Do(func() { close(prev) })
	}
	s.ctrl = nil
	s.volume = nil
	s.done = nil
	s.doneOnce = nil
}

// SetVolume maps a linear [0, 1] level onto beep's exponential scale.
func (s *Speaker) SetVolume(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	s.level = v
	if s.volume == nil {
		return
	}
	speaker.Lock()
	s.applyLevel()
	speaker.Unlock()
}

// Done reports the completion channel of the current stream.
func (s *Speaker) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

func (s *Speaker) applyLevel() {
	if s.level <= 0 {
		s.volume.Silent = true
		return
	}
	s.volume.Silent = false
	s.volume.Volume = math.Log2(s.level)
}

func decode(f *os.File, path string) (beep.StreamSeekCloser, beep.Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return mp3.Decode(f)
	case ".wav":
		return wav.Decode(f)
	case ".flac":
		return flac.Decode(f)
	case ".ogg":
		return vorbis.Decode(f)
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}
