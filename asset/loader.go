// Package asset decodes image files and embedded pixmaps into surfaces
package asset

import (
	"bytes"
	"errors"
	"image"
	_ "image/gif"
	_ "image/png"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"

	"github.com/lixenwraith/arcade/imageset"
	"github.com/lixenwraith/arcade/surface"
)

// Loader turns encoded images into surfaces of one pixel format
// Transparent pixels are replaced by the color key, which is also set on the result
type Loader struct {
	format   surface.Format
	colorKey uint32
	dir      string
	cache    *Cache
	log      *zap.Logger
}

// NewLoader creates a loader resolving relative paths against dir; cache may be nil
func NewLoader(format surface.Format, dir string, cache *Cache, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	if cache == nil {
		cache = NewCache(0)
	}
	return &Loader{
		format:   format,
		colorKey: format.MapRGB(0xFF, 0x00, 0xFF),
		dir:      dir,
		cache:    cache,
		log:      log,
	}
}

// ColorKey returns the pixel value marking transparency
func (l *Loader) ColorKey() uint32 {
	return l.colorKey
}

// Cache returns the loader's image cache
func (l *Loader) Cache() *Cache {
	return l.cache
}

// Load decodes PNG, GIF, BMP or XPM bytes; name is used in errors and as part of the cache key
func (l *Loader) Load(data []byte, name string) (*surface.Surface, error) {
	if len(data) == 0 {
		return nil, newLoadError(InvalidArgs, name, nil)
	}
	key := Key(data, name)
	if s, ok := l.cache.Get(key); ok {
		return s, nil
	}

	var img image.Image
	if isXPM(data) {
		x, err := DecodeXPM(xpmStrings(data), name)
		if err != nil {
			return nil, err
		}
		img = x
	} else {
		decoded, kind, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, newLoadError(InvalidFile, name, err)
		}
		l.log.Debug("image decoded", zap.String("name", name), zap.String("kind", kind))
		img = decoded
	}

	s, err := l.fromImage(img, name)
	if err != nil {
		return nil, err
	}
	l.cache.Put(key, s)
	return s, nil
}

// LoadXPM converts an in-memory XPM string array
func (l *Loader) LoadXPM(lines []string, name string) (*surface.Surface, error) {
	img, err := DecodeXPM(lines, name)
	if err != nil {
		return nil, err
	}
	return l.fromImage(img, name)
}

func (l *Loader) fromImage(img image.Image, name string) (*surface.Surface, error) {
	if img == nil {
		return nil, newLoadError(NullImage, name, nil)
	}
	if b := img.Bounds(); b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, newLoadError(InvalidSize, name, nil)
	}
	s, err := surface.FromImage(img, l.format, l.colorKey, true)
	if err != nil {
		return nil, newLoadError(NoMemory, name, err)
	}
	return s, nil
}

// LoadFile reads and decodes one image file
func (l *Loader) LoadFile(path string) (*surface.Surface, error) {
	if path == "" {
		return nil, newLoadError(InvalidArgs, path, nil)
	}
	full := path
	if !filepath.IsAbs(path) && l.dir != "" {
		full = filepath.Join(l.dir, path)
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, newLoadError(OpenFailed, path, err)
	}
	return l.Load(data, path)
}

// LoadImageSet loads each file in order into a new image set
// On failure the partially filled set is released and the error names the offending file
func (l *Loader) LoadImageSet(paths ...string) (*imageset.ImageSet, error) {
	return l.buildSet(len(paths), func(i int) (*surface.Surface, string, error) {
		s, err := l.LoadFile(paths[i])
		return s, paths[i], err
	})
}

// XPMImageSet builds an image set from in-memory XPM frames
func (l *Loader) XPMImageSet(name string, frames ...[]string) (*imageset.ImageSet, error) {
	return l.buildSet(len(frames), func(i int) (*surface.Surface, string, error) {
		s, err := l.LoadXPM(frames[i], name)
		return s, name, err
	})
}

func (l *Loader) buildSet(n int, load func(i int) (*surface.Surface, string, error)) (*imageset.ImageSet, error) {
	if n == 0 {
		return nil, newLoadError(InvalidArgs, "", nil)
	}
	set := imageset.New(n)
	for i := 0; i < n; i++ {
		s, name, err := load(i)
		if err != nil {
			set.Clear()
			return nil, err
		}
		if err := set.Append(s); err != nil {
			set.Clear()
			_ = s.Close()
			code := Unknown
			if errors.Is(err, imageset.ErrSizeMismatch) {
				code = InvalidSize
			}
			return nil, newLoadError(code, name, err)
		}
	}
	return set, nil
}
