package audio

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// Chunk is a decoded sound held in memory at the mixer's sample rate
// The zero Chunk is silent and plays as a no-op
type Chunk struct {
	Name   string
	buffer *beep.Buffer
}

// Len returns the length in samples
func (c *Chunk) Len() int {
	if c == nil || c.buffer == nil {
		return 0
	}
	return c.buffer.Len()
}

// Duration returns the playing time
func (c *Chunk) Duration() time.Duration {
	if c == nil || c.buffer == nil {
		return 0
	}
	return c.buffer.Format().SampleRate.D(c.buffer.Len())
}

func (c *Chunk) streamer() beep.StreamSeeker {
	return c.buffer.Streamer(0, c.buffer.Len())
}

// NewChunk buffers a finite streamer recorded at rate, resampling it to format
func NewChunk(name string, s beep.Streamer, rate beep.SampleRate, format beep.Format) *Chunk {
	if rate != format.SampleRate {
		s = beep.Resample(4, rate, format.SampleRate, s)
	}
	buf := beep.NewBuffer(format)
	buf.Append(s)
	return &Chunk{Name: name, buffer: buf}
}

// DecodeChunk reads a whole WAV stream into a chunk in format
func DecodeChunk(name string, r io.Reader, format beep.Format) (*Chunk, error) {
	s, f, err := wav.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	defer s.Close()

	c := NewChunk(name, s, f.SampleRate, format)
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return c, nil
}

// LoadChunk decodes a WAV file
func LoadChunk(path string, format beep.Format) (*Chunk, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load chunk: %w", err)
	}
	defer f.Close()
	return DecodeChunk(path, f, format)
}
