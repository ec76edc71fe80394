package vmath

// RectOverlap reports whether two axis-aligned rectangles intersect with a non-zero area
// Rectangles are given by top-left corner and size; shared edges or corners do not count
func RectOverlap[T Number](pos1, size1, pos2, size2 Vec2[T]) bool {
	if pos1.X+size1.X <= pos2.X { // 1 left of 2
		return false
	}
	if pos1.Y+size1.Y <= pos2.Y { // 1 above 2
		return false
	}
	if pos2.X+size2.X <= pos1.X { // 1 right of 2
		return false
	}
	if pos2.Y+size2.Y <= pos1.Y { // 1 below 2
		return false
	}
	return true
}

// segmentParam projects p on the line through a and b, returning t where the projection is a + t*(b-a)
func segmentParam(p, a, b Vec2f) (t float64, seg Vec2f) {
	if a == b {
		panic("vmath: degenerate segment")
	}
	seg = b.Sub(a)
	return seg.Dot(p.Sub(a)) / seg.Dot(seg), seg
}

// ClosestPointOnSegment returns the point of segment [a, b] closest to p
// a and b must differ
func ClosestPointOnSegment(p, a, b Vec2f) Vec2f {
	t, seg := segmentParam(p, a, b)
	t = Clamp(t, 0, 1)
	return a.Add(seg.Mul(t))
}

// IsOnSegment reports whether p lies on segment [a, b] within Tolerance
// a and b must differ
func IsOnSegment(p, a, b Vec2f) bool {
	t, seg := segmentParam(p, a, b)
	if t < 0 || t > 1 {
		return false
	}
	return a.Add(seg.Mul(t)).SafeEqual(p)
}

// Clamp bounds v into [lo, hi]; lo is checked first so an inverted range yields lo
func Clamp[T Number](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
