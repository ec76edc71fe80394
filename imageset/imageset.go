// Package imageset holds the animation frames of a sprite
package imageset

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/arcade/surface"
	"github.com/lixenwraith/arcade/vmath"
)

// MaxImages bounds the index accepted by Set
const MaxImages = 10000

var (
	ErrNilImage     = errors.New("imageset: nil image")
	ErrIndexRange   = errors.New("imageset: index out of range")
	ErrSizeMismatch = errors.New("imageset: image size mismatch")
	ErrZeroSize     = errors.New("imageset: non-positive image size")
)

// ImageSet is an ordered set of same-sized surfaces that it owns
// Clear or Close release every surface; sprites only borrow the set
type ImageSet struct {
	images []*surface.Surface
	size   vmath.Vec2i
}

// New returns an empty set; capacity is a hint
func New(capacity int) *ImageSet {
	return &ImageSet{images: make([]*surface.Surface, 0, capacity)}
}

// Len returns the number of slots, including unset ones below the highest index
func (s *ImageSet) Len() int {
	return len(s.images)
}

// Size returns the common image size, zero while the set is empty
func (s *ImageSet) Size() vmath.Vec2i {
	return s.size
}

// SetSize fixes the common image size before images are added; both components must be positive
func (s *ImageSet) SetSize(size vmath.Vec2i) error {
	if size.X <= 0 || size.Y <= 0 {
		return fmt.Errorf("%w: %v", ErrZeroSize, size)
	}
	if s.hasImages() && size != s.size {
		return fmt.Errorf("%w: set holds %v, requested %v", ErrSizeMismatch, s.size, size)
	}
	s.size = size
	return nil
}

// Set stores img at index i, growing the set as needed
// The first image fixes the common size when none was set; a replaced image is closed
func (s *ImageSet) Set(i int, img *surface.Surface) error {
	if img == nil {
		return ErrNilImage
	}
	if i < 0 || i >= MaxImages {
		return fmt.Errorf("%w: %d", ErrIndexRange, i)
	}
	if s.size.IsZero() {
		s.size = img.Size()
	} else if img.Size() != s.size {
		return fmt.Errorf("%w: want %v, got %v", ErrSizeMismatch, s.size, img.Size())
	}

	if i >= len(s.images) {
		s.images = append(s.images, make([]*surface.Surface, i+1-len(s.images))...)
	}
	if old := s.images[i]; old != nil && old != img {
		_ = old.Close()
	}
	s.images[i] = img
	return nil
}

// Append stores img after the last slot
func (s *ImageSet) Append(img *surface.Surface) error {
	return s.Set(len(s.images), img)
}

// Image returns the surface at index i, which may be nil for an unset slot
// i must be below Len
func (s *ImageSet) Image(i int) *surface.Surface {
	if i < 0 || i >= len(s.images) {
		panic(fmt.Sprintf("imageset: image index %d out of range [0,%d)", i, len(s.images)))
	}
	return s.images[i]
}

// Clear closes every image and empties the set so it can be refilled with any size
func (s *ImageSet) Clear() {
	for i, img := range s.images {
		if img != nil {
			_ = img.Close()
		}
		s.images[i] = nil
	}
	s.images = s.images[:0]
	s.size = vmath.Vec2i{}
}

// Close releases every image; the set stays usable as an empty set
func (s *ImageSet) Close() error {
	s.Clear()
	return nil
}

func (s *ImageSet) hasImages() bool {
	for _, img := range s.images {
		if img != nil {
			return true
		}
	}
	return false
}
