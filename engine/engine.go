// Package engine runs the frame-paced game loop and offers drawing helpers on its screen surface
package engine

import (
	"errors"
	"fmt"
	"image/color"

	"go.uber.org/zap"

	"github.com/lixenwraith/arcade/asset"
	"github.com/lixenwraith/arcade/config"
	"github.com/lixenwraith/arcade/imageset"
	"github.com/lixenwraith/arcade/raster"
	"github.com/lixenwraith/arcade/sprite"
	"github.com/lixenwraith/arcade/surface"
	"github.com/lixenwraith/arcade/text"
	"github.com/lixenwraith/arcade/vmath"
)

// Engine owns the screen surface and drives a Backend through a Loop
type Engine struct {
	cfg     config.Config
	backend Backend
	screen  *surface.Surface
	text    *text.Writer
	assets  *asset.Loader
	clock   Clock
	log     *zap.Logger
	loop    *Loop
}

// Option customises New
type Option func(*Engine)

// WithClock replaces the wall clock, mainly for tests
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// New validates cfg and creates the screen surface
// A zero screen size in cfg adopts the backend's pixel size
func New(cfg config.Config, backend Backend, log *zap.Logger, opts ...Option) (*Engine, error) {
	if backend == nil {
		return nil, errors.New("engine: nil backend")
	}
	if log == nil {
		log = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	format, err := cfg.Screen.PixelFormat()
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	size := vmath.V2(cfg.Screen.Width, cfg.Screen.Height)
	if size.IsZero() {
		size = backend.PixelSize()
	}
	screen, err := surface.New(size.X, size.Y, format)
	if err != nil {
		return nil, fmt.Errorf("engine: screen %dx%d: %w", size.X, size.Y, err)
	}

	e := &Engine{
		cfg:     cfg,
		backend: backend,
		screen:  screen,
		text:    text.NewWriter(color.White),
		clock:   NewTimeProvider(),
		log:     log,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.assets = asset.NewLoader(format, cfg.Assets.Dir, asset.NewCache(cfg.Assets.CacheSize), log.Named("asset"))
	e.loop = NewLoop(LoopConfig{
		FramePeriod:     cfg.FramePeriod,
		TrackActivation: cfg.TrackActivation,
	}, backend, backend, screen, e.clock, log.Named("loop"))

	log.Info("engine created",
		zap.String("title", cfg.Title),
		zap.Int("width", size.X),
		zap.Int("height", size.Y),
		zap.String("format", format.Name),
		zap.Duration("frame_period", cfg.FramePeriod))
	return e, nil
}

// Run blocks in the frame loop until it terminates
func (e *Engine) Run(h Handlers) error {
	return e.loop.Run(h)
}

// State returns the loop's activation state
func (e *Engine) State() State { return e.loop.State() }

// Stats returns the loop counters
func (e *Engine) Stats() Stats { return e.loop.Stats() }

// Screen returns the surface presented every frame
func (e *Engine) Screen() *surface.Surface { return e.screen }

func (e *Engine) ScreenSize() vmath.Vec2i { return e.screen.Size() }

// MapRGB packs a color in the screen's pixel format
func (e *Engine) MapRGB(r, g, b uint8) uint32 { return e.screen.MapRGB(r, g, b) }

func (e *Engine) DrawPixel(x, y int, pixel uint32) { e.screen.PutPixel(x, y, pixel) }

// DrawLine draws an anti-aliased line blending toward black
func (e *Engine) DrawLine(x0, y0, x1, y1 int, pixel uint32) {
	raster.DrawLine(e.screen, x0, y0, x1, y1, pixel, e.screen.MapRGB(0, 0, 0))
}

func (e *Engine) FillRect(x, y, w, h int, pixel uint32) { e.screen.FillRect(x, y, w, h, pixel) }

// Clear fills the whole screen
func (e *Engine) Clear(pixel uint32) { e.screen.Fill(pixel) }

// CopyImage blits img with its top-left corner at pos, skipping color-keyed pixels
func (e *Engine) CopyImage(img *surface.Surface, pos vmath.Vec2i) {
	e.screen.Blit(img, pos)
}

// DrawSprite blits the sprite's current image at its rounded position
func DrawSprite[T vmath.Number](e *Engine, s *sprite.Sprite[T]) {
	e.CopyImage(s.CurrentImageSurface(), vmath.RoundToInt(s.Pos))
}

// TextWriter exposes the text writer for color changes
func (e *Engine) TextWriter() *text.Writer { return e.text }

func (e *Engine) FontSize() vmath.Vec2i { return e.text.FontSize() }

// WriteString draws s with its top-left corner at pos
func (e *Engine) WriteString(s string, pos vmath.Vec2i) {
	e.text.Write(e.screen, s, pos)
}

func (e *Engine) WriteStringCentered(s string, pos vmath.Vec2i) {
	e.text.WriteCentered(e.screen, s, pos)
}

func (e *Engine) WriteStringXCentered(s string, pos vmath.Vec2i) {
	e.text.WriteXCentered(e.screen, s, pos)
}

func (e *Engine) WriteStringRightJustified(s string, pos vmath.Vec2i) {
	e.text.WriteRightJustified(e.screen, s, pos)
}

// Assets returns the image loader bound to the screen format
func (e *Engine) Assets() *asset.Loader { return e.assets }

// LoadImageSet loads same-sized images relative to the configured asset directory
func (e *Engine) LoadImageSet(paths ...string) (*imageset.ImageSet, error) {
	return e.assets.LoadImageSet(paths...)
}

// Close releases the screen and the backend
func (e *Engine) Close() error {
	e.assets.Cache().Clear()
	return errors.Join(e.screen.Close(), e.backend.Close())
}
