// Package sprite implements the moving, colliding, animated entities of a game
package sprite

import (
	"fmt"

	"github.com/lixenwraith/arcade/imageset"
	"github.com/lixenwraith/arcade/surface"
	"github.com/lixenwraith/arcade/vmath"
)

// Sprite is a rectangular entity with kinematics, a collision box and borrowed animation frames
// T is int for pixel-exact sprites or float64 for sub-pixel motion.
// The image set is not owned: it must outlive the sprite
type Sprite[T vmath.Number] struct {
	Pos   vmath.Vec2[T]
	Speed vmath.Vec2[T]
	Accel vmath.Vec2[T]

	// CurrentImage selects the frame drawn for this sprite
	CurrentImage int

	// Values holds game-defined counters and flags
	Values []int64

	size      vmath.Vec2i
	images    *imageset.ImageSet
	ttl       uint64
	boxOffset vmath.Vec2[T]
	boxSize   vmath.Vec2[T]
	id        uint64
}

// New creates a sprite with ID 0; use a Factory for identified sprites
// The size is copied from images, which must be non-nil; boxOffset is relative to pos
func New[T vmath.Number](images *imageset.ImageSet, pos, speed, accel, boxOffset, boxSize vmath.Vec2[T]) *Sprite[T] {
	if images == nil {
		panic("sprite: nil image set")
	}
	s := &Sprite[T]{
		Pos:    pos,
		Speed:  speed,
		Accel:  accel,
		size:   images.Size(),
		images: images,
	}
	s.SetCollisionBox(boxOffset, boxSize)
	return s
}

// NewFullBox creates a sprite whose collision box covers its whole image
func NewFullBox[T vmath.Number](images *imageset.ImageSet, pos, speed vmath.Vec2[T]) *Sprite[T] {
	return New(images, pos, speed, vmath.Vec2[T]{}, vmath.Vec2[T]{}, vmath.FromInt[T](images.Size()))
}

// ID returns the identifier assigned by the creating Factory, or 0
func (s *Sprite[T]) ID() uint64 { return s.id }

// Size returns the image size captured at construction
func (s *Sprite[T]) Size() vmath.Vec2i { return s.size }

// Images returns the borrowed image set
func (s *Sprite[T]) Images() *imageset.ImageSet { return s.images }

func (s *Sprite[T]) NumImages() int { return s.images.Len() }

func (s *Sprite[T]) Image(i int) *surface.Surface { return s.images.Image(i) }

// CurrentImageSurface returns the frame selected by CurrentImage
func (s *Sprite[T]) CurrentImageSurface() *surface.Surface {
	return s.images.Image(s.CurrentImage)
}

func (s *Sprite[T]) sizeT() vmath.Vec2[T] {
	return vmath.FromInt[T](s.size)
}

// CenterPos returns pos + size/2; integer sprites divide the size with truncation
func (s *Sprite[T]) CenterPos() vmath.Vec2[T] {
	return s.Pos.Add(s.sizeT().Div(2))
}

// SetCenterPos moves the sprite so that CenterPos returns c
func (s *Sprite[T]) SetCenterPos(c vmath.Vec2[T]) {
	s.Pos = c.Sub(s.sizeT().Div(2))
}

// LowerLeftPos returns the point just below the bottom-left pixel
func (s *Sprite[T]) LowerLeftPos() vmath.Vec2[T] {
	return vmath.V2(s.Pos.X, s.Pos.Y+T(s.size.Y))
}

// LowerRightPos returns pos + size
func (s *Sprite[T]) LowerRightPos() vmath.Vec2[T] {
	return s.Pos.Add(s.sizeT())
}

// CollisionBox returns the absolute position and size of the collision box
func (s *Sprite[T]) CollisionBox() (pos, size vmath.Vec2[T]) {
	return s.Pos.Add(s.boxOffset), s.boxSize
}

// CollisionBoxOffset returns the box position relative to the sprite's top-left corner
func (s *Sprite[T]) CollisionBoxOffset() vmath.Vec2[T] { return s.boxOffset }

// SetCollisionBox replaces the collision box; size components must not be negative
func (s *Sprite[T]) SetCollisionBox(offset, size vmath.Vec2[T]) {
	if size.X < 0 || size.Y < 0 {
		panic(fmt.Sprintf("sprite: negative collision box size %v", size))
	}
	s.boxOffset = offset
	s.boxSize = size
}

func (s *Sprite[T]) AddSpeedToPos() { s.Pos = s.Pos.Add(s.Speed) }

func (s *Sprite[T]) SubSpeedFromPos() { s.Pos = s.Pos.Sub(s.Speed) }

func (s *Sprite[T]) AddAccelToSpeed() { s.Speed = s.Speed.Add(s.Accel) }

func (s *Sprite[T]) SubAccelFromSpeed() { s.Speed = s.Speed.Sub(s.Accel) }

// CollidesWith reports whether the collision boxes of s and o overlap with non-zero area
func (s *Sprite[T]) CollidesWith(o *Sprite[T]) bool {
	p1, s1 := s.CollisionBox()
	p2, s2 := o.CollisionBox()
	return vmath.RectOverlap(p1, s1, p2, s2)
}

// BoundPosition clamps the position so the sprite lies inside a region anchored at the origin
// A region smaller than the sprite is a caller error and panics
func (s *Sprite[T]) BoundPosition(region vmath.Vec2i) {
	if region.X < s.size.X || region.Y < s.size.Y {
		panic(fmt.Sprintf("sprite: region %v smaller than sprite %v", region, s.size))
	}
	s.Pos.X = vmath.Clamp(s.Pos.X, 0, T(region.X-s.size.X))
	s.Pos.Y = vmath.Clamp(s.Pos.Y, 0, T(region.Y-s.size.Y))
}

// SetTimeToLive sets the remaining ticks; 0 means unlimited
func (s *Sprite[T]) SetTimeToLive(ticks uint64) { s.ttl = ticks }

func (s *Sprite[T]) TimeToLive() uint64 { return s.ttl }

func (s *Sprite[T]) ClearTimeToLive() { s.ttl = 0 }

// DecTimeToLive decrements a non-zero time to live and returns the result
func (s *Sprite[T]) DecTimeToLive() uint64 {
	if s.ttl != 0 {
		s.ttl--
	}
	return s.ttl
}
