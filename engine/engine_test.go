package engine

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/arcade/config"
	"github.com/lixenwraith/arcade/imageset"
	"github.com/lixenwraith/arcade/sprite"
	"github.com/lixenwraith/arcade/surface"
	"github.com/lixenwraith/arcade/vmath"
)

func testConfig(w, h int) config.Config {
	cfg := config.Default()
	cfg.Screen.Width, cfg.Screen.Height = w, h
	cfg.Audio.Enabled = false
	return cfg
}

func newTestEngine(t *testing.T, cfg config.Config) (*Engine, *scriptedBackend) {
	t.Helper()
	b := &scriptedBackend{size: vmath.V2(80, 48)}
	e, err := New(cfg, b, nil, WithClock(NewMockTimeProvider(time.Unix(0, 0))))
	require.NoError(t, err)
	return e, b
}

func TestNewScreenSize(t *testing.T) {
	e, _ := newTestEngine(t, testConfig(32, 24))
	assert.Equal(t, vmath.V2(32, 24), e.ScreenSize())

	e, _ = newTestEngine(t, testConfig(0, 0))
	assert.Equal(t, vmath.V2(80, 48), e.ScreenSize(), "zero size adopts the backend's")
}

func TestNewRejectsBadSetup(t *testing.T) {
	_, err := New(testConfig(8, 8), nil, nil)
	assert.Error(t, err)

	cfg := testConfig(8, 8)
	cfg.FramePeriod = 0
	_, err = New(cfg, &scriptedBackend{}, nil)
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, err = New(testConfig(0, 0), &scriptedBackend{}, nil)
	assert.Error(t, err, "backend without a size")
}

func TestDrawingPrimitives(t *testing.T) {
	e, _ := newTestEngine(t, testConfig(16, 16))
	red := e.MapRGB(255, 0, 0)
	white := e.MapRGB(255, 255, 255)
	s := e.Screen()

	e.Clear(white)
	assert.Equal(t, white, s.Pixel(15, 15))

	e.DrawPixel(3, 4, red)
	assert.Equal(t, red, s.Pixel(3, 4))
	e.DrawPixel(-1, 40, red)

	e.FillRect(0, 0, 2, 2, red)
	assert.Equal(t, red, s.Pixel(1, 1))
	assert.Equal(t, white, s.Pixel(2, 2))

	e.DrawLine(0, 10, 5, 10, red)
	for x := 0; x < 5; x++ {
		assert.Equal(t, red, s.Pixel(x, 10), "x=%d", x)
	}
}

func TestCopyImageAndDrawSprite(t *testing.T) {
	e, _ := newTestEngine(t, testConfig(8, 8))
	red := e.MapRGB(255, 0, 0)
	key := e.Assets().ColorKey()

	img := surface.MustNew(2, 2, surface.XRGB8888)
	img.Fill(red)
	img.PutPixel(1, 1, key)
	img.SetColorKey(key)

	set := imageset.New(1)
	require.NoError(t, set.Append(img))
	defer set.Close()

	e.CopyImage(img, vmath.V2(0, 0))
	assert.Equal(t, red, e.Screen().Pixel(0, 0))
	assert.Zero(t, e.Screen().Pixel(1, 1), "keyed pixel is skipped")

	e.Clear(0)
	sp := sprite.NewFullBox(set, vmath.V2(1.6, 0.4), vmath.Vec2f{})
	DrawSprite(e, sp)
	assert.Zero(t, e.Screen().Pixel(1, 0))
	assert.Equal(t, red, e.Screen().Pixel(2, 0))
	assert.Equal(t, red, e.Screen().Pixel(3, 0))
	assert.Zero(t, e.Screen().Pixel(3, 1))
}

func TestWriteString(t *testing.T) {
	e, _ := newTestEngine(t, testConfig(64, 32))
	assert.Equal(t, vmath.V2(7, 13), e.FontSize())

	lit := func(x0, x1 int) int {
		n := 0
		for y := 0; y < 32; y++ {
			for x := x0; x < x1; x++ {
				if e.Screen().Pixel(x, y) != 0 {
					n++
				}
			}
		}
		return n
	}

	e.WriteString("H", vmath.V2(0, 0))
	assert.Positive(t, lit(0, 7))
	assert.Zero(t, lit(7, 64))

	e.Clear(0)
	e.WriteStringRightJustified("H", vmath.V2(64, 0))
	assert.Positive(t, lit(57, 64))
	assert.Zero(t, lit(0, 57))

	e.Clear(0)
	e.WriteStringXCentered("HH", vmath.V2(32, 0))
	assert.Positive(t, lit(25, 39))
	assert.Zero(t, lit(0, 25)+lit(39, 64))

	e.Clear(0)
	e.TextWriter().SetColor(color.RGBA{R: 255, A: 255})
	e.WriteStringCentered("H", vmath.V2(32, 16))
	assert.Positive(t, lit(28, 36))
}

func TestLoadImageSetFromAssetDir(t *testing.T) {
	dir := t.TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f.png"), buf.Bytes(), 0o644))

	cfg := testConfig(8, 8)
	cfg.Assets.Dir = dir
	e, _ := newTestEngine(t, cfg)

	set, err := e.LoadImageSet("f.png", "f.png")
	require.NoError(t, err)
	defer set.Close()
	assert.Equal(t, 2, set.Len())
	assert.Equal(t, vmath.V2(3, 2), set.Size())
}

func TestRunPresentsScreen(t *testing.T) {
	e, b := newTestEngine(t, testConfig(4, 4))
	red := e.MapRGB(255, 0, 0)

	err := e.Run(Handlers{Tick: func() bool {
		if e.Stats().Frames == 2 {
			return false
		}
		e.Clear(red)
		return true
	}})
	require.NoError(t, err)

	assert.Equal(t, 2, b.presents)
	assert.Equal(t, StateTerminated, e.State())
	assert.Equal(t, e.Screen().Pix(), b.last)
}

func TestClose(t *testing.T) {
	e, b := newTestEngine(t, testConfig(4, 4))
	require.NoError(t, e.Close())
	assert.True(t, b.closed)
	assert.True(t, e.Screen().Closed())
	assert.Error(t, e.Close())
}
