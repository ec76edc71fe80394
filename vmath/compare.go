package vmath

import "math"

// Tolerance is the absolute epsilon of the Safe* comparisons
const Tolerance = 0.0001

// SafeEqual reports whether a and b are closer than Tolerance
func SafeEqual(a, b float64) bool {
	return math.Abs(a-b) < Tolerance
}

// SafeLower reports a < b with a and b not extremely close
func SafeLower(a, b float64) bool {
	return !SafeEqual(a, b) && a < b
}

// SafeLowerOrEqual reports a < b or a and b extremely close
func SafeLowerOrEqual(a, b float64) bool {
	return SafeEqual(a, b) || a < b
}

// SafeGreater reports a > b with a and b not extremely close
func SafeGreater(a, b float64) bool {
	return !SafeEqual(a, b) && a > b
}

// SafeGreaterOrEqual reports a > b or a and b extremely close
func SafeGreaterOrEqual(a, b float64) bool {
	return SafeEqual(a, b) || a > b
}

// SafeEqual reports whether both components are within Tolerance of o
func (v Vec2[T]) SafeEqual(o Vec2[T]) bool {
	return SafeEqual(float64(v.X), float64(o.X)) && SafeEqual(float64(v.Y), float64(o.Y))
}
