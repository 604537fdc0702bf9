// Package audio plays the machine's short feedback clips through beep.
package audio

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultSampleRate is the sample rate clips are resampled to.
const DefaultSampleRate = beep.SampleRate(44100)

// Manager owns the speaker and a set of named clips. Each clip plays at most
// once at a time; playing it again restarts it from the first sample.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate

	volume float64 // 0.0 to 1.0
	muted  bool

	clips   map[string]*beep.Buffer
	playing map[string]*beep.Ctrl

	mixer *beep.Mixer
}

// New creates a manager with no clips loaded.
func New() *Manager {
	return &Manager{
		sampleRate: DefaultSampleRate,
		volume:     1.0,
		clips:      make(map[string]*beep.Buffer),
		playing:    make(map[string]*beep.Ctrl),
		mixer:      &beep.Mixer{},
	}
}

// Init opens the speaker.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.mixer)

	m.initialized = true
	return nil
}

// Close stops playback and releases the speaker.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	m.playing = make(map[string]*beep.Ctrl)
	m.initialized = false
}

// IsInitialized returns whether the speaker is open.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// SetVolume sets the clip volume (0.0 to 1.0).
func (m *Manager) SetVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = clamp(vol, 0, 1)
}

// Volume returns the clip volume.
func (m *Manager) Volume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.volume
}

// SetMuted silences every subsequent playback.
func (m *Manager) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
}

// LoadClip decodes WAV data and stores it under name, replacing any previous clip.
func (m *Manager) LoadClip(name string, data []byte) error {
	streamer, format, err := wav.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return fmt.Errorf("decode wav %s: %w", name, err)
	}
	defer streamer.Close()

	var src beep.Streamer = streamer
	if format.SampleRate != m.sampleRate {
		src = beep.Resample(4, format.SampleRate, m.sampleRate, streamer)
	}

	buf := beep.NewBuffer(beep.Format{SampleRate: m.sampleRate, NumChannels: 2, Precision: 2})
	buf.Append(src)
	if err := streamer.Err(); err != nil {
		return fmt.Errorf("read wav %s: %w", name, err)
	}
	m.storeClip(name, buf)
	return nil
}

// SynthClip stores a short sine blip under name. It stands in for clips whose
// file is missing.
func (m *Manager) SynthClip(name string, freq float64, d time.Duration) error {
	tone, err := generators.SineTone(m.sampleRate, freq)
	if err != nil {
		return fmt.Errorf("synth %s: %w", name, err)
	}
	n := m.sampleRate.N(d)
	quiet := &effects.Gain{Streamer: beep.Take(n, tone), Gain: -0.6}

	buf := beep.NewBuffer(beep.Format{SampleRate: m.sampleRate, NumChannels: 2, Precision: 2})
	buf.Append(quiet)
	m.storeClip(name, buf)
	return nil
}

func (m *Manager) storeClip(name string, buf *beep.Buffer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clips[name] = buf
}

// HasClip reports whether a clip is loaded under name.
func (m *Manager) HasClip(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.clips[name]
	return ok
}

// Play starts clip name from its first sample. A still-playing instance of
// the same clip is cut off first.
func (m *Manager) Play(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return fmt.Errorf("play %s: audio not initialized", name)
	}
	buf, ok := m.clips[name]
	if !ok {
		return fmt.Errorf("play %s: no such clip", name)
	}
	if m.muted || m.volume <= 0 {
		return nil
	}

	ctrl := &beep.Ctrl{Streamer: &effects.Volume{
		Streamer: buf.Streamer(0, buf.Len()),
		Base:     2,
		Volume:   volumeToDb(m.volume) / 6,
	}}

	speaker.Lock()
	if prev, ok := m.playing[name]; ok {
		// A nil streamer ends the instance; the mixer drops it on its next pass.
		prev.Streamer = nil
	}
	m.mixer.Add(ctrl)
	speaker.Unlock()

	m.playing[name] = ctrl
	return nil
}

// volumeToDb converts a linear 0-1 volume to decibels.
func volumeToDb(vol float64) float64 {
	if vol <= 0 {
		return -100
	}
	return 20 * math.Log10(vol)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
