package vmath

import "math"

// Number is the set of component types a Vec2 may carry
type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Vec2 is a 2D vector value type, the common base of positions, speeds and sizes
type Vec2[T Number] struct {
	X, Y T
}

// Vec2i is the integer pixel vector
type Vec2i = Vec2[int]

// Vec2f is the floating-point vector
type Vec2f = Vec2[float64]

// V2 builds a vector from its components
func V2[T Number](x, y T) Vec2[T] {
	return Vec2[T]{X: x, Y: y}
}

// IsZero reports whether both components are zero
func (v Vec2[T]) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// IsNonZero reports whether at least one component differs from zero
func (v Vec2[T]) IsNonZero() bool {
	return v.X != 0 || v.Y != 0
}

func (v Vec2[T]) Add(o Vec2[T]) Vec2[T] {
	return Vec2[T]{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2[T]) Sub(o Vec2[T]) Vec2[T] {
	return Vec2[T]{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2[T]) Mul(n T) Vec2[T] {
	return Vec2[T]{X: v.X * n, Y: v.Y * n}
}

// Div divides both components by n
// Integer vectors truncate toward zero; n == 0 panics for integers as Go division does
func (v Vec2[T]) Div(n T) Vec2[T] {
	return Vec2[T]{X: v.X / n, Y: v.Y / n}
}

func (v Vec2[T]) Neg() Vec2[T] {
	return Vec2[T]{X: -v.X, Y: -v.Y}
}

// Dot returns the scalar product
func (v Vec2[T]) Dot(o Vec2[T]) T {
	return v.X*o.X + v.Y*o.Y
}

func (v Vec2[T]) SquaredLength() T {
	return v.X*v.X + v.Y*v.Y
}

// Length returns the Euclidean length, computed in float64
func (v Vec2[T]) Length() float64 {
	return math.Hypot(float64(v.X), float64(v.Y))
}

// Normalize returns a unit vector with the same direction; the origin maps to the origin
func (v Vec2[T]) Normalize() Vec2f {
	return v.SetLength(1)
}

// SetLength returns a vector with the same direction and the given length; the origin maps to the origin
func (v Vec2[T]) SetLength(length float64) Vec2f {
	if v.IsZero() {
		return Vec2f{}
	}
	f := v.Float()
	l := f.Length()
	return Vec2f{X: f.X / l * length, Y: f.Y / l * length}
}

// Project returns the projection of c onto v
// v must be non-zero
func (v Vec2[T]) Project(c Vec2[T]) Vec2f {
	if v.IsZero() {
		panic("vmath: projection onto zero vector")
	}
	f, g := v.Float(), c.Float()
	k := f.Dot(g) / f.Dot(f)
	return f.Mul(k)
}

// Zero returns the origin
func Zero[T Number]() Vec2[T] {
	return Vec2[T]{}
}
