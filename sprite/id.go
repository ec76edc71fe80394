package sprite

import (
	"sync/atomic"

	"github.com/lixenwraith/arcade/imageset"
	"github.com/lixenwraith/arcade/vmath"
)

// IDGenerator hands out sprite identifiers starting at 1
// Safe for concurrent use; one generator per game keeps IDs unique within it
type IDGenerator struct {
	last atomic.Uint64
}

// Next returns a fresh identifier
func (g *IDGenerator) Next() uint64 {
	return g.last.Add(1)
}

// Factory creates sprites of one component type carrying IDs from a shared generator
type Factory[T vmath.Number] struct {
	IDs *IDGenerator
}

// NewFactory binds a factory to gen; several factories may share one generator
func NewFactory[T vmath.Number](gen *IDGenerator) *Factory[T] {
	return &Factory[T]{IDs: gen}
}

// New is sprite.New with an identifier assigned
func (f *Factory[T]) New(images *imageset.ImageSet, pos, speed, accel, boxOffset, boxSize vmath.Vec2[T]) *Sprite[T] {
	s := New(images, pos, speed, accel, boxOffset, boxSize)
	s.id = f.IDs.Next()
	return s
}

// NewFullBox is sprite.NewFullBox with an identifier assigned
func (f *Factory[T]) NewFullBox(images *imageset.ImageSet, pos, speed vmath.Vec2[T]) *Sprite[T] {
	s := NewFullBox(images, pos, speed)
	s.id = f.IDs.Next()
	return s
}
