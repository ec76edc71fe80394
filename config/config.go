// Package config loads game settings from YAML with environment overrides
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/arcade/audio"
	"github.com/lixenwraith/arcade/surface"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("config: invalid")

// Environment variables consulted by ApplyEnv
const (
	EnvFrameMS         = "ARCADE_FRAME_MS"
	EnvAudioEnabled    = "ARCADE_AUDIO_ENABLED"
	EnvTrackActivation = "ARCADE_TRACK_ACTIVATION"
	EnvScreen          = "ARCADE_SCREEN"
)

// terminalReleaseDelay matches terminal.DefaultReleaseDelay; config sits below terminal in the import graph
const terminalReleaseDelay = 550 * time.Millisecond

// Config is the complete game configuration
type Config struct {
	Title           string            `yaml:"title"`
	Screen          Screen            `yaml:"screen"`
	FramePeriod     time.Duration     `yaml:"frame_period"`
	TrackActivation bool              `yaml:"track_activation"`
	Audio           audio.Config      `yaml:"audio"`
	Terminal        Terminal          `yaml:"terminal"`
	Assets          Assets            `yaml:"assets"`
	Keys            map[string]string `yaml:"keys"`
}

// Screen is the logical pixel canvas; zero width and height adopt the display size
type Screen struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Format string `yaml:"format"`
}

// Terminal tunes the terminal backend
type Terminal struct {
	// ReleaseDelay is how long a key counts as held after its last repeat
	ReleaseDelay time.Duration `yaml:"release_delay"`
}

// Assets locates game images and sounds
type Assets struct {
	Dir       string `yaml:"dir"`
	CacheSize int    `yaml:"cache_size"`
}

var formats = map[string]surface.Format{
	"rgb332":   surface.RGB332,
	"rgb565":   surface.RGB565,
	"rgb888":   surface.RGB888,
	"xrgb8888": surface.XRGB8888,
}

// Default returns a 20ms (50 fps) loop with activation tracking on a display-sized canvas
func Default() Config {
	return Config{
		Title:           "arcade",
		Screen:          Screen{Format: "xrgb8888"},
		FramePeriod:     20 * time.Millisecond,
		TrackActivation: true,
		Audio:           audio.DefaultConfig(),
		Terminal:        Terminal{ReleaseDelay: terminalReleaseDelay},
		Assets:          Assets{Dir: ".", CacheSize: 64},
		Keys:            map[string]string{},
	}
}

// PixelFormat resolves the configured surface format
func (s Screen) PixelFormat() (surface.Format, error) {
	f, ok := formats[strings.ToLower(s.Format)]
	if !ok {
		return surface.Format{}, fmt.Errorf("%w: unknown pixel format %q", ErrInvalid, s.Format)
	}
	return f, nil
}

// Validate rejects unusable settings
func (c Config) Validate() error {
	var errs []error
	if c.Screen.Width < 0 || c.Screen.Height < 0 || (c.Screen.Width == 0) != (c.Screen.Height == 0) {
		errs = append(errs, fmt.Errorf("%w: screen %dx%d", ErrInvalid, c.Screen.Width, c.Screen.Height))
	}
	if _, err := c.Screen.PixelFormat(); err != nil {
		errs = append(errs, err)
	}
	if c.FramePeriod <= 0 {
		errs = append(errs, fmt.Errorf("%w: frame period %v", ErrInvalid, c.FramePeriod))
	}
	if c.Terminal.ReleaseDelay <= 0 {
		errs = append(errs, fmt.Errorf("%w: release delay %v", ErrInvalid, c.Terminal.ReleaseDelay))
	}
	if c.Assets.CacheSize < 0 {
		errs = append(errs, fmt.Errorf("%w: cache size %d", ErrInvalid, c.Assets.CacheSize))
	}
	if err := c.Audio.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalid, err))
	}
	return errors.Join(errs...)
}

// Decode reads YAML over the defaults; unknown fields are rejected
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	return cfg, nil
}

// Parse decodes and validates YAML bytes without consulting the environment
func Parse(data []byte) (Config, error) {
	cfg, err := Decode(bytes.NewReader(data))
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads the file at path (defaults only when path is empty), applies the environment, then validates
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: %w", err)
		}
		defer f.Close()
		if cfg, err = Decode(f); err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from ARCADE_* variables; malformed values are errors
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvFrameMS); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalid, EnvFrameMS, v)
		}
		c.FramePeriod = time.Duration(ms) * time.Millisecond
	}
	if v := os.Getenv(EnvAudioEnabled); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalid, EnvAudioEnabled, v)
		}
		c.Audio.Enabled = b
	}
	if v := os.Getenv(EnvTrackActivation); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalid, EnvTrackActivation, v)
		}
		c.TrackActivation = b
	}
	if v := os.Getenv(EnvScreen); v != "" {
		w, h, err := ParseSize(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalid, EnvScreen, err)
		}
		c.Screen.Width, c.Screen.Height = w, h
	}
	return nil
}

// ParseSize reads a "WIDTHxHEIGHT" pair
func ParseSize(s string) (w, h int, err error) {
	ws, hs, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return 0, 0, fmt.Errorf("size %q: want WIDTHxHEIGHT", s)
	}
	if w, err = strconv.Atoi(ws); err != nil {
		return 0, 0, fmt.Errorf("size %q: %w", s, err)
	}
	if h, err = strconv.Atoi(hs); err != nil {
		return 0, 0, fmt.Errorf("size %q: %w", s, err)
	}
	return w, h, nil
}
