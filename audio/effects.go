package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
)

// WaveType selects an oscillator shape
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator is a finite mono wave written to both channels
type oscillator struct {
	step   float64 // phase advance per sample
	phase  float64
	left   int // samples still to produce
	sample func(phase float64) float64
}

// NewOscillator creates a wave of freq Hz lasting duration at rate
// Noise is seeded from its parameters so equal requests sound equal
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	o := &oscillator{
		step: freq / float64(rate),
		left: rate.N(duration),
	}
	switch wave {
	case WaveSquare:
		o.sample = func(p float64) float64 {
			if p < 0.5 {
				return 1
			}
			return -1
		}
	case WaveSaw:
		o.sample = func(p float64) float64 { return 2*p - 1 }
	case WaveNoise:
		rng := rand.New(rand.NewPCG(uint64(freq*1000), uint64(duration)))
		o.sample = func(float64) float64 { return rng.Float64()*2 - 1 }
	default:
		o.sample = func(p float64) float64 { return math.Sin(2 * math.Pi * p) }
	}
	return o
}

func (o *oscillator) Stream(samples [][2]float64) (int, bool) {
	if o.left <= 0 {
		return 0, false
	}
	n := min(len(samples), o.left)
	for i := range n {
		v := o.sample(o.phase)
		samples[i] = [2]float64{v, v}
		_, o.phase = math.Modf(o.phase + o.step)
	}
	o.left -= n
	return n, true
}

func (o *oscillator) Err() error { return nil }

// envelope scales a stream by a linear attack ramp and release ramp, cutting it at total samples
type envelope struct {
	streamer beep.Streamer
	pos      int
	total    int
	attack   int
	release  int
}

// NewEnvelope shapes s over duration; the sustain between the ramps is at full gain
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		total:    rate.N(duration),
		attack:   rate.N(attack),
		release:  rate.N(release),
	}
}

// gain at sample position pos
func (e *envelope) gain(pos int) float64 {
	g := 1.0
	if pos < e.attack {
		g = float64(pos) / float64(e.attack)
	}
	if tail := e.total - pos; e.release > 0 && tail <= e.release {
		// The release overrides the attack when the ramps overlap
		g = float64(tail) / float64(e.release)
	}
	return g
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	if e.pos >= e.total {
		return 0, false
	}
	n, ok := e.streamer.Stream(samples[:min(len(samples), e.total-e.pos)])
	for i := range n {
		g := e.gain(e.pos)
		samples[i][0] *= g
		samples[i][1] *= g
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// Tone renders a shaped tone into a chunk for the mixer
func (m *Mixer) Tone(name string, freq float64, duration time.Duration, wave WaveType) *Chunk {
	rate := m.format.SampleRate
	osc := NewOscillator(freq, duration, wave, rate)
	shaped := NewEnvelope(osc, duration, duration/10, duration/3, rate)
	return NewChunk(name, newVolume(shaped, 0.6), rate, m.format)
}

// Sweep renders two tones back to back, e.g. a rising bounce
func (m *Mixer) Sweep(name string, from, to float64, duration time.Duration) *Chunk {
	rate := m.format.SampleRate
	half := duration / 2
	s := beep.Seq(
		NewEnvelope(NewOscillator(from, half, WaveSquare, rate), half, half/8, half/4, rate),
		NewEnvelope(NewOscillator(to, half, WaveSquare, rate), half, half/8, half/2, rate),
	)
	return NewChunk(name, newVolume(s, 0.3), rate, m.format)
}
