package asset

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/lixenwraith/arcade/surface"
	"github.com/lixenwraith/arcade/vmath"
)

func testImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 40), G: uint8(y * 40), B: 10, A: 255})
		}
	}
	img.SetNRGBA(0, 0, color.NRGBA{})
	return img
}

func encode(t *testing.T, kind string, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	switch kind {
	case "png":
		require.NoError(t, png.Encode(&buf, img))
	case "gif":
		require.NoError(t, gif.Encode(&buf, img, nil))
	case "bmp":
		require.NoError(t, bmp.Encode(&buf, img))
	}
	return buf.Bytes()
}

func TestLoadFormats(t *testing.T) {
	l := NewLoader(surface.XRGB8888, "", nil, nil)
	for _, kind := range []string{"png", "gif", "bmp"} {
		t.Run(kind, func(t *testing.T) {
			s, err := l.Load(encode(t, kind, testImage(4, 3)), "img."+kind)
			require.NoError(t, err)
			assert.Equal(t, vmath.V2(4, 3), s.Size())
			key, keyed := s.ColorKey()
			assert.True(t, keyed)
			assert.Equal(t, l.ColorKey(), key)
		})
	}
}

func TestLoadMapsTransparencyToColorKey(t *testing.T) {
	l := NewLoader(surface.XRGB8888, "", nil, nil)
	s, err := l.Load(encode(t, "png", testImage(4, 3)), "t.png")
	require.NoError(t, err)
	assert.Equal(t, l.ColorKey(), s.Pixel(0, 0))
	assert.Equal(t, surface.XRGB8888.MapRGB(40, 40, 10), s.Pixel(1, 1))
}

func TestLoadErrors(t *testing.T) {
	l := NewLoader(surface.XRGB8888, t.TempDir(), nil, nil)

	_, err := l.Load(nil, "empty")
	assert.ErrorIs(t, err, ErrInvalidArgs)

	_, err = l.Load([]byte("garbage bytes"), "junk.png")
	assert.ErrorIs(t, err, ErrInvalidFile)
	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "junk.png", le.Filename)
	assert.NotNil(t, le.Unwrap())
	assert.Contains(t, le.Error(), "junk.png")

	_, err = l.LoadFile("missing.png")
	assert.ErrorIs(t, err, ErrOpenFailed)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.False(t, errors.Is(err, ErrInvalidFile))

	_, err = l.LoadFile("")
	assert.ErrorIs(t, err, ErrInvalidArgs)
}

func TestLoadFileRelativeToDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.png"), encode(t, "png", testImage(2, 2)), 0o644))

	l := NewLoader(surface.RGB565, dir, nil, nil)
	s, err := l.LoadFile("a.png")
	require.NoError(t, err)
	assert.Equal(t, surface.RGB565, s.Format())
}

func TestLoadImageSet(t *testing.T) {
	dir := t.TempDir()
	for name, size := range map[string]int{"a.png": 3, "b.png": 3, "c.png": 5} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), encode(t, "png", testImage(size, size)), 0o644))
	}
	l := NewLoader(surface.XRGB8888, dir, nil, nil)

	set, err := l.LoadImageSet("a.png", "b.png")
	require.NoError(t, err)
	assert.Equal(t, 2, set.Len())
	assert.Equal(t, vmath.V2(3, 3), set.Size())
	set.Close()

	_, err = l.LoadImageSet("a.png", "c.png")
	assert.ErrorIs(t, err, ErrInvalidSize)
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "c.png", le.Filename)

	_, err = l.LoadImageSet()
	assert.ErrorIs(t, err, ErrInvalidArgs)
}

func TestCacheReturnsIndependentCopies(t *testing.T) {
	cache := NewCache(2)
	l := NewLoader(surface.XRGB8888, "", cache, nil)
	data := encode(t, "png", testImage(2, 2))

	a, err := l.Load(data, "x.png")
	require.NoError(t, err)
	b, err := l.Load(data, "x.png")
	require.NoError(t, err)

	hits, misses := cache.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)

	a.PutPixel(1, 1, 0)
	assert.NotEqual(t, a.Pixel(1, 1), b.Pixel(1, 1))
	require.NoError(t, a.Close())
	c, err := l.Load(data, "x.png")
	require.NoError(t, err)
	assert.False(t, c.Closed())
}

func TestCacheEvictsOldest(t *testing.T) {
	cache := NewCache(2)
	s := surface.MustNew(1, 1, surface.XRGB8888)
	cache.Put(1, s)
	cache.Put(2, s)
	cache.Put(3, s)

	assert.Equal(t, 2, cache.Len())
	_, ok := cache.Get(1)
	assert.False(t, ok)
	_, ok = cache.Get(3)
	assert.True(t, ok)

	cache.Clear()
	assert.Zero(t, cache.Len())

	disabled := NewCache(0)
	disabled.Put(1, s)
	assert.Zero(t, disabled.Len())
}

func TestKeyDependsOnNameAndData(t *testing.T) {
	assert.Equal(t, Key([]byte("a"), "n"), Key([]byte("a"), "n"))
	assert.NotEqual(t, Key([]byte("a"), "n"), Key([]byte("b"), "n"))
	assert.NotEqual(t, Key([]byte("a"), "n"), Key([]byte("a"), "m"))
}

func TestDecodeXPM(t *testing.T) {
	img, err := DecodeXPM([]string{
		"3 2 3 2",
		"   c None",
		"ab c #FF0000",
		"cd c #00f",
		"ab  cd",
		"cdabab",
	}, "two-cpp")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, img.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{}, img.NRGBAAt(1, 0))
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, img.NRGBAAt(0, 1))
}

func TestDecodeXPMErrors(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		code  *LoadError
	}{
		{"no data", nil, ErrInvalidArgs},
		{"bad values", []string{"x y"}, ErrInvalidFile},
		{"zero size", []string{"0 1 1 1", "a c red"}, ErrInvalidSize},
		{"short", []string{"1 2 1 1", "a c red", "a"}, ErrInvalidFile},
		{"bad color", []string{"1 1 1 1", "a c chartreuse-ish", "a"}, ErrColorFailed},
		{"no c key", []string{"1 1 1 1", "a m black", "a"}, ErrColorFailed},
		{"undefined pixel", []string{"1 1 1 1", "a c red", "b"}, ErrColorError},
		{"row width", []string{"2 1 1 1", "a c red", "a"}, ErrInvalidSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeXPM(tt.lines, tt.name)
			assert.ErrorIs(t, err, tt.code)
		})
	}
}

func TestLoadXPMSourceFile(t *testing.T) {
	src := "/* XPM */\nstatic char *dot[] = {\n" +
		"\"" + strings.Join([]string{"2 1 2 1", ". c white", "  c None", ". "}, "\",\n\"") + "\"\n};\n"

	l := NewLoader(surface.XRGB8888, "", nil, nil)
	s, err := l.Load([]byte(src), "dot.xpm")
	require.NoError(t, err)
	assert.Equal(t, surface.XRGB8888.MapRGB(255, 255, 255), s.Pixel(0, 0))
	assert.Equal(t, l.ColorKey(), s.Pixel(1, 0))
}

func TestBuiltinPixmapsDecode(t *testing.T) {
	l := NewLoader(surface.XRGB8888, "", nil, nil)
	for name, frames := range map[string][][]string{
		"ship":  {ShipXPM},
		"rock":  RockXPM,
		"shot":  {ShotXPM},
		"spark": {SparkXPM},
	} {
		set, err := l.XPMImageSet(name, frames...)
		require.NoError(t, err, name)
		assert.Equal(t, len(frames), set.Len())
		set.Close()
	}
}
