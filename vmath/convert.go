package vmath

import "math"

// Float converts to a floating-point vector, lossless within float64 precision
func (v Vec2[T]) Float() Vec2f {
	return Vec2f{X: float64(v.X), Y: float64(v.Y)}
}

// Round converts to integers rounding half away from zero
func (v Vec2[T]) Round() Vec2i {
	return Vec2i{X: int(math.Round(float64(v.X))), Y: int(math.Round(float64(v.Y)))}
}

// Floor converts to integers rounding toward negative infinity
func (v Vec2[T]) Floor() Vec2i {
	return Vec2i{X: int(math.Floor(float64(v.X))), Y: int(math.Floor(float64(v.Y)))}
}

// Ceil converts to integers rounding toward positive infinity
func (v Vec2[T]) Ceil() Vec2i {
	return Vec2i{X: int(math.Ceil(float64(v.X))), Y: int(math.Ceil(float64(v.Y)))}
}

// Trunc converts to integers by dropping the fractional part
func (v Vec2[T]) Trunc() Vec2i {
	return Vec2i{X: int(v.X), Y: int(v.Y)}
}

// FromInt converts an integer vector into any component type
func FromInt[T Number](v Vec2i) Vec2[T] {
	return Vec2[T]{X: T(v.X), Y: T(v.Y)}
}

// ToFloat widens an integer vector
func ToFloat(v Vec2i) Vec2f {
	return v.Float()
}

// RoundToInt maps any vector to pixel coordinates; integer vectors pass through unchanged
func RoundToInt[T Number](v Vec2[T]) Vec2i {
	return v.Round()
}
