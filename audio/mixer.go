package audio

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
)

// ErrNoFreeChannel is returned by Play when every channel is busy
var ErrNoFreeChannel = errors.New("audio: no free channel")

// Mixer plays chunks on a fixed number of channels
// Channel bookkeeping is shared with the speaker goroutine and guarded by mu.
// The speaker lock is never taken while mu is held
type Mixer struct {
	mu          sync.Mutex
	cfg         Config
	format      beep.Format
	mixer       *beep.Mixer
	output      beep.Streamer
	busy        []bool
	initialized bool
	log         *zap.Logger

	// Stats
	played  uint64
	dropped uint64
}

// NewMixer creates a mixer; Init must be called before sound reaches the speaker
func NewMixer(cfg Config, log *zap.Logger) *Mixer {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Mixer{
		cfg: cfg,
		format: beep.Format{
			SampleRate:  beep.SampleRate(cfg.SampleRate),
			NumChannels: 2,
			Precision:   2,
		},
		mixer: &beep.Mixer{},
		busy:  make([]bool, max(cfg.Channels, 0)),
		log:   log,
	}
	m.output = newVolume(m.mixer, cfg.Volume)
	return m
}

// Format is the sample format chunks must be decoded to
func (m *Mixer) Format() beep.Format {
	return m.format
}

// Output is the master streamer fed to the speaker
func (m *Mixer) Output() beep.Streamer {
	return m.output
}

// Init opens the speaker; a disabled mixer stays silent and succeeds
func (m *Mixer) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized || !m.cfg.Enabled {
		return nil
	}
	if err := m.cfg.Validate(); err != nil {
		return err
	}

	sr := m.format.SampleRate
	if err := speaker.Init(sr, sr.N(m.cfg.Buffer)); err != nil {
		return fmt.Errorf("audio: speaker init: %w", err)
	}
	speaker.Play(m.output)
	m.initialized = true
	m.log.Info("audio initialized",
		zap.Int("sample_rate", m.cfg.SampleRate),
		zap.Int("channels", m.cfg.Channels))
	return nil
}

// Play starts c on the lowest free channel and returns its number
// A disabled mixer or an empty chunk plays nothing and returns -1
func (m *Mixer) Play(c *Chunk) (int, error) {
	if !m.cfg.Enabled || c.Len() == 0 {
		return -1, nil
	}

	m.mu.Lock()
	ch := -1
	for i, b := range m.busy {
		if !b {
			ch = i
			break
		}
	}
	if ch < 0 {
		m.dropped++
		m.mu.Unlock()
		return -1, ErrNoFreeChannel
	}
	m.busy[ch] = true
	m.played++
	live := m.initialized
	m.mu.Unlock()

	s := beep.Seq(c.streamer(), beep.Callback(func() { m.release(ch) }))
	if live {
		speaker.Lock()
		m.mixer.Add(s)
		speaker.Unlock()
	} else {
		m.mixer.Add(s)
	}
	return ch, nil
}

func (m *Mixer) release(ch int) {
	m.mu.Lock()
	m.busy[ch] = false
	m.mu.Unlock()
}

// Busy returns the number of channels currently playing
func (m *Mixer) Busy() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, b := range m.busy {
		if b {
			n++
		}
	}
	return n
}

// Stats returns how many chunks were started and how many were refused
func (m *Mixer) Stats() (played, dropped uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.played, m.dropped
}

// StopAll silences every channel
func (m *Mixer) StopAll() {
	m.mu.Lock()
	live := m.initialized
	for i := range m.busy {
		m.busy[i] = false
	}
	m.mu.Unlock()

	if live {
		speaker.Lock()
		m.mixer.Clear()
		speaker.Unlock()
	} else {
		m.mixer.Clear()
	}
}

// Close stops playback and releases the speaker
func (m *Mixer) Close() {
	m.StopAll()

	m.mu.Lock()
	live := m.initialized
	m.initialized = false
	m.mu.Unlock()

	if live {
		speaker.Close()
	}
}

// newVolume wraps s with a linear gain; 0 silences it since log2(0) is -Inf
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
