package audio

import (
	"fmt"
	"time"
)

// Config holds mixer settings
type Config struct {
	Enabled    bool          `yaml:"enabled"`
	Channels   int           `yaml:"channels"`
	SampleRate int           `yaml:"sample_rate"`
	Volume     float64       `yaml:"volume"`
	Buffer     time.Duration `yaml:"buffer"`
}

// DefaultConfig returns 8 channels at 44.1kHz, half volume, 100ms speaker buffer
func DefaultConfig() Config {
	return Config{
		Enabled:    true,
		Channels:   8,
		SampleRate: 44100,
		Volume:     0.5,
		Buffer:     100 * time.Millisecond,
	}
}

// Validate rejects settings the speaker cannot open with
func (c Config) Validate() error {
	switch {
	case c.Channels <= 0:
		return fmt.Errorf("audio: channels must be positive, got %d", c.Channels)
	case c.SampleRate <= 0:
		return fmt.Errorf("audio: sample rate must be positive, got %d", c.SampleRate)
	case c.Buffer <= 0:
		return fmt.Errorf("audio: buffer must be positive, got %v", c.Buffer)
	case c.Volume < 0 || c.Volume > 1:
		return fmt.Errorf("audio: volume must be within [0,1], got %v", c.Volume)
	}
	return nil
}
