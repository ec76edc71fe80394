// Package surface provides packed-pixel buffers with direct pixel access
package surface

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/lixenwraith/arcade/vmath"
)

// ErrClosed is returned by operations on a surface whose pixels were released
var ErrClosed = errors.New("surface: closed")

// Surface is a rectangular pixel buffer in a fixed Format
// Rows are pitch bytes apart; pitch is the row size rounded up to 4 bytes
type Surface struct {
	pix    []byte
	width  int
	height int
	pitch  int
	format Format

	colorKey    uint32
	hasColorKey bool
}

// New allocates a zero-filled surface
func New(width, height int, f Format) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("surface: invalid size %dx%d", width, height)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	pitch := (width*f.BytesPerPixel + 3) &^ 3
	return &Surface{
		pix:    make([]byte, pitch*height),
		width:  width,
		height: height,
		pitch:  pitch,
		format: f,
	}, nil
}

// MustNew is New for sizes known to be valid
func MustNew(width, height int, f Format) *Surface {
	s, err := New(width, height, f)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Surface) Width() int        { return s.width }
func (s *Surface) Height() int       { return s.height }
func (s *Surface) Pitch() int        { return s.pitch }
func (s *Surface) Format() Format    { return s.format }
func (s *Surface) Pix() []byte       { return s.pix }
func (s *Surface) Closed() bool      { return s.pix == nil }
func (s *Surface) Size() vmath.Vec2i { return vmath.V2(s.width, s.height) }

// MapRGB packs a color in this surface's format
func (s *Surface) MapRGB(r, g, b uint8) uint32 {
	return s.format.MapRGB(r, g, b)
}

// SetColorKey marks pixel value key as transparent when this surface is the source of a Blit
func (s *Surface) SetColorKey(key uint32) {
	s.colorKey = key
	s.hasColorKey = true
}

// ClearColorKey makes every pixel opaque again
func (s *Surface) ClearColorKey() {
	s.hasColorKey = false
}

// ColorKey returns the transparent pixel value and whether one is set
func (s *Surface) ColorKey() (uint32, bool) {
	return s.colorKey, s.hasColorKey
}

// Close releases the pixel memory; later writes are dropped and reads return zero
func (s *Surface) Close() error {
	if s.pix == nil {
		return ErrClosed
	}
	s.pix = nil
	return nil
}

func (s *Surface) inBounds(x, y int) bool {
	return s.pix != nil && x >= 0 && y >= 0 && x < s.width && y < s.height
}

// PutPixel stores pixel at (x, y) using the surface's pixel width and byte order
// Only the low BytesPerPixel bytes of pixel are written; coordinates outside the surface are ignored
func (s *Surface) PutPixel(x, y int, pixel uint32) {
	if !s.inBounds(x, y) {
		return
	}
	bpp := s.format.BytesPerPixel
	p := s.pix[y*s.pitch+x*bpp : y*s.pitch+x*bpp+bpp]

	switch bpp {
	case 1:
		p[0] = uint8(pixel)
	case 2:
		if s.format.Order == BigEndian {
			binary.BigEndian.PutUint16(p, uint16(pixel))
		} else {
			binary.LittleEndian.PutUint16(p, uint16(pixel))
		}
	case 3:
		if s.format.Order == BigEndian {
			p[0] = uint8(pixel >> 16)
			p[1] = uint8(pixel >> 8)
			p[2] = uint8(pixel)
		} else {
			p[0] = uint8(pixel)
			p[1] = uint8(pixel >> 8)
			p[2] = uint8(pixel >> 16)
		}
	case 4:
		if s.format.Order == BigEndian {
			binary.BigEndian.PutUint32(p, pixel)
		} else {
			binary.LittleEndian.PutUint32(p, pixel)
		}
	}
}

// Pixel reads the pixel value at (x, y); outside the surface it returns 0
func (s *Surface) Pixel(x, y int) uint32 {
	if !s.inBounds(x, y) {
		return 0
	}
	bpp := s.format.BytesPerPixel
	p := s.pix[y*s.pitch+x*bpp : y*s.pitch+x*bpp+bpp]

	switch bpp {
	case 1:
		return uint32(p[0])
	case 2:
		if s.format.Order == BigEndian {
			return uint32(binary.BigEndian.Uint16(p))
		}
		return uint32(binary.LittleEndian.Uint16(p))
	case 3:
		if s.format.Order == BigEndian {
			return uint32(p[0])<<16 | uint32(p[1])<<8 | uint32(p[2])
		}
		return uint32(p[2])<<16 | uint32(p[1])<<8 | uint32(p[0])
	default:
		if s.format.Order == BigEndian {
			return binary.BigEndian.Uint32(p)
		}
		return binary.LittleEndian.Uint32(p)
	}
}

// FillRect sets every pixel of the rectangle clipped to the surface
// Non-positive width or height fills nothing
func (s *Surface) FillRect(x, y, w, h int, pixel uint32) {
	r := image.Rect(x, y, x+w, y+h).Intersect(s.Bounds())
	if w <= 0 || h <= 0 || r.Empty() || s.pix == nil {
		return
	}
	for py := r.Min.Y; py < r.Max.Y; py++ {
		for px := r.Min.X; px < r.Max.X; px++ {
			s.PutPixel(px, py, pixel)
		}
	}
}

// Fill sets the whole surface to pixel
func (s *Surface) Fill(pixel uint32) {
	s.FillRect(0, 0, s.width, s.height, pixel)
}

// Blit copies src onto s with its top-left corner at dst, clipped to s
// Source pixels equal to src's color key are skipped; differing formats are converted through RGB
func (s *Surface) Blit(src *Surface, dst vmath.Vec2i) {
	if src == nil || src.pix == nil || s.pix == nil {
		return
	}
	r := image.Rect(dst.X, dst.Y, dst.X+src.width, dst.Y+src.height).Intersect(s.Bounds())
	same := src.format == s.format
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			p := src.Pixel(x-dst.X, y-dst.Y)
			if src.hasColorKey && p == src.colorKey {
				continue
			}
			if !same {
				p = s.format.MapRGB(src.format.GetRGB(p))
			}
			s.PutPixel(x, y, p)
		}
	}
}

// Clone returns an independent copy including the color key
func (s *Surface) Clone() *Surface {
	c := *s
	if s.pix != nil {
		c.pix = make([]byte, len(s.pix))
		copy(c.pix, s.pix)
	}
	return &c
}

// Bounds implements image.Image
func (s *Surface) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.width, s.height)
}

// ColorModel implements image.Image
func (s *Surface) ColorModel() color.Model {
	return color.RGBAModel
}

// At implements image.Image; every pixel is opaque
func (s *Surface) At(x, y int) color.Color {
	r, g, b := s.format.GetRGB(s.Pixel(x, y))
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}

// Set implements draw.Image; alpha is ignored
func (s *Surface) Set(x, y int, c color.Color) {
	r, g, b, _ := c.RGBA()
	s.PutPixel(x, y, s.format.MapRGB(uint8(r>>8), uint8(g>>8), uint8(b>>8)))
}

// FromImage converts any decoded image into a new surface of format f
// Pixels with alpha below half are replaced by key when keyed is true, and key becomes the color key
func FromImage(img image.Image, f Format, key uint32, keyed bool) (*Surface, error) {
	b := img.Bounds()
	s, err := New(b.Dx(), b.Dy(), f)
	if err != nil {
		return nil, err
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			p := f.MapRGB(uint8(r>>8), uint8(g>>8), uint8(bl>>8))
			if keyed && a < 0x8000 {
				p = key
			}
			s.PutPixel(x-b.Min.X, y-b.Min.Y, p)
		}
	}
	if keyed {
		s.SetColorKey(key)
	}
	return s, nil
}
