package vmath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectOverlap(t *testing.T) {
	tests := []struct {
		name       string
		p1, s1     Vec2i
		p2, s2     Vec2i
		overlapped bool
	}{
		{"identical", V2(0, 0), V2(4, 4), V2(0, 0), V2(4, 4), true},
		{"partial", V2(0, 0), V2(4, 4), V2(2, 2), V2(4, 4), true},
		{"contained", V2(0, 0), V2(10, 10), V2(3, 3), V2(1, 1), true},
		{"shared vertical edge", V2(0, 0), V2(4, 4), V2(4, 0), V2(4, 4), false},
		{"shared horizontal edge", V2(0, 0), V2(4, 4), V2(0, 4), V2(4, 4), false},
		{"shared corner", V2(0, 0), V2(4, 4), V2(4, 4), V2(4, 4), false},
		{"apart", V2(0, 0), V2(2, 2), V2(10, 10), V2(2, 2), false},
		{"negative coordinates", V2(-5, -5), V2(3, 3), V2(-3, -3), V2(3, 3), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlapped, RectOverlap(tt.p1, tt.s1, tt.p2, tt.s2))
			// Symmetry
			assert.Equal(t, tt.overlapped, RectOverlap(tt.p2, tt.s2, tt.p1, tt.s1))
		})
	}
}

func TestRectOverlapFloatEdges(t *testing.T) {
	assert.False(t, RectOverlap(V2(0.0, 0.0), V2(1.5, 1.5), V2(1.5, 0.0), V2(1.0, 1.0)))
	assert.True(t, RectOverlap(V2(0.0, 0.0), V2(1.5, 1.5), V2(1.49, 0.0), V2(1.0, 1.0)))
}

func TestClosestPointOnSegment(t *testing.T) {
	a, b := V2(0.0, 0.0), V2(10.0, 0.0)

	tests := []struct {
		name string
		p    Vec2f
		want Vec2f
	}{
		{"above middle", V2(4.0, 3.0), V2(4.0, 0.0)},
		{"before start", V2(-5.0, 2.0), a},
		{"after end", V2(15.0, -2.0), b},
		{"on segment", V2(7.5, 0.0), V2(7.5, 0.0)},
		{"start", a, a},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClosestPointOnSegment(tt.p, a, b)
			assert.True(t, got.SafeEqual(tt.want), "got %v want %v", got, tt.want)
		})
	}
}

func TestClosestPointStaysWithinSegment(t *testing.T) {
	a, b := V2(1.0, 1.0), V2(4.0, 7.0)
	for x := -10.0; x <= 10; x += 2.5 {
		for y := -10.0; y <= 10; y += 2.5 {
			c := ClosestPointOnSegment(V2(x, y), a, b)
			seg := b.Sub(a)
			tp := seg.Dot(c.Sub(a)) / seg.Dot(seg)
			assert.True(t, SafeGreaterOrEqual(tp, 0) && SafeLowerOrEqual(tp, 1), "t=%f", tp)
		}
	}
}

func TestClosestPointOnDiagonalSegmentIsIdentity(t *testing.T) {
	a, b := V2(0.1, 0.2), V2(3.3, 7.9)
	for _, k := range []float64{0, 0.1, 0.33, 0.5, 0.9, 1} {
		p := a.Add(b.Sub(a).Mul(k))
		assert.True(t, ClosestPointOnSegment(p, a, b).SafeEqual(p))
	}
}

func TestDegenerateSegmentPanics(t *testing.T) {
	p := V2(1.0, 1.0)
	assert.Panics(t, func() { ClosestPointOnSegment(p, p, p) })
	assert.Panics(t, func() { IsOnSegment(p, p, p) })
}

func TestIsOnSegment(t *testing.T) {
	a, b := V2(0.0, 0.0), V2(3.0, 3.0)

	assert.True(t, IsOnSegment(V2(1.0, 1.0), a, b))
	assert.True(t, IsOnSegment(a, a, b))
	assert.True(t, IsOnSegment(b, a, b))
	assert.False(t, IsOnSegment(V2(1.0, 1.5), a, b))
	assert.False(t, IsOnSegment(V2(4.0, 4.0), a, b))
	assert.False(t, IsOnSegment(V2(-1.0, -1.0), a, b))

	// Not bit-exact but within tolerance
	third := 1.0 / 3.0
	c, d := V2(0.0, 0.0), V2(0.3, 0.7)
	p := V2(0.3*third, 0.7*third+1e-9)
	assert.True(t, IsOnSegment(p, c, d))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, Clamp(-3, 0, 10))
	assert.Equal(t, 10, Clamp(13, 0, 10))
	assert.Equal(t, 5, Clamp(5, 0, 10))
	assert.Equal(t, 0.5, Clamp(0.5, 0.0, 1.0))
}
