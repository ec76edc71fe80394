package sprite

import (
	"errors"
	"fmt"
	"slices"

	"github.com/kamstrup/intmap"

	"github.com/lixenwraith/arcade/vmath"
)

var (
	ErrNoID      = errors.New("sprite: sprite has no id")
	ErrDuplicate = errors.New("sprite: duplicate id")
)

// Registry indexes live sprites by ID
// Not safe for concurrent use; it belongs to the frame loop goroutine
type Registry[T vmath.Number] struct {
	sprites *intmap.Map[uint64, *Sprite[T]]
}

// NewRegistry creates an empty registry; capacity is a hint
func NewRegistry[T vmath.Number](capacity int) *Registry[T] {
	return &Registry[T]{sprites: intmap.New[uint64, *Sprite[T]](capacity)}
}

// Add inserts s; sprites without an ID or with a taken ID are rejected
func (r *Registry[T]) Add(s *Sprite[T]) error {
	if s.id == 0 {
		return ErrNoID
	}
	if _, added := r.sprites.PutIfNotExists(s.id, s); !added {
		return fmt.Errorf("%w: %d", ErrDuplicate, s.id)
	}
	return nil
}

// Remove deletes the sprite with the given ID and reports whether it was present
func (r *Registry[T]) Remove(id uint64) bool {
	return r.sprites.Del(id)
}

// Get returns the sprite with the given ID
func (r *Registry[T]) Get(id uint64) (*Sprite[T], bool) {
	return r.sprites.Get(id)
}

func (r *Registry[T]) Len() int {
	return r.sprites.Len()
}

// All returns every sprite ordered by ID, which is creation order for a single generator
func (r *Registry[T]) All() []*Sprite[T] {
	out := make([]*Sprite[T], 0, r.sprites.Len())
	for _, s := range r.sprites.All() {
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b *Sprite[T]) int {
		switch {
		case a.id < b.id:
			return -1
		case a.id > b.id:
			return 1
		}
		return 0
	})
	return out
}

// CollisionsWith returns the registered sprites other than s whose boxes overlap s, ordered by ID
func (r *Registry[T]) CollisionsWith(s *Sprite[T]) []*Sprite[T] {
	var hits []*Sprite[T]
	for _, o := range r.All() {
		if o.id != s.id && s.CollidesWith(o) {
			hits = append(hits, o)
		}
	}
	return hits
}

// Expire decrements every limited time to live and removes the sprites that reach zero
// Removed sprites are returned ordered by ID; sprites with unlimited life are untouched
func (r *Registry[T]) Expire() []*Sprite[T] {
	var dead []*Sprite[T]
	for _, s := range r.All() {
		if s.ttl == 0 {
			continue
		}
		if s.DecTimeToLive() == 0 {
			dead = append(dead, s)
		}
	}
	for _, s := range dead {
		r.sprites.Del(s.id)
	}
	return dead
}

// Clear removes every sprite
func (r *Registry[T]) Clear() {
	r.sprites.Clear()
}
