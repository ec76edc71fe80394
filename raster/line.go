package raster

import (
	"github.com/lixenwraith/arcade/surface"
)

const (
	levels     = 256
	weightBits = 8
	weightMask = levels - 1
)

// blendTable interpolates from fg (index 0) to bg (index 255), gamma-corrects each channel and maps it to s's format
func blendTable(f surface.Format, fg, bg uint32) *[levels]uint32 {
	gamma := GammaTable()
	fr, fgr, fb := f.GetRGB(fg)
	br, bgr, bb := f.GetRGB(bg)

	var colors [levels]uint32
	for i := 0; i < levels; i++ {
		r := int(fr) - (i*(int(fr)-int(br)))/(levels-1)
		g := int(fgr) - (i*(int(fgr)-int(bgr)))/(levels-1)
		b := int(fb) - (i*(int(fb)-int(bb)))/(levels-1)
		colors[i] = f.MapRGB(gamma[r], gamma[g], gamma[b])
	}
	return &colors
}

// DrawLine draws an anti-aliased line from (x0, y0) to (x1, y1) with Wu's algorithm
// fg and bg are pixel values in s's format; intermediate pixels blend from fg toward bg by coverage.
// Horizontal, vertical and 45-degree lines are drawn solid in fg.
// Both endpoints are plotted in fg, except that the solid horizontal and vertical spans stop one pixel short of the far end.
func DrawLine(s *surface.Surface, x0, y0, x1, y1 int, fg, bg uint32) {
	colors := blendTable(s.Format(), fg, bg)

	if y0 > y1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}
	s.PutPixel(x0, y0, fg)

	dx := x1 - x0
	xdir := 1
	if dx < 0 {
		xdir = -1
		dx = -dx
	}
	dy := y1 - y0

	switch {
	case dy == 0:
		s.FillRect(min(x0, x1), y0, dx, 1, fg)
		return
	case dx == 0:
		s.FillRect(x0, y0, 1, dy, fg)
		return
	case dx == dy:
		for ; dy != 0; dy-- {
			x0 += xdir
			y0++
			s.PutPixel(x0, y0, fg)
		}
		return
	}

	const intShift = 32 - weightBits
	var acc uint32

	if dy > dx {
		// y-major: x advances on accumulator rollover
		adj := uint32((uint64(dx) << 32) / uint64(dy))
		for dy--; dy > 0; dy-- {
			prev := acc
			acc += adj
			if acc <= prev {
				x0 += xdir
			}
			y0++
			w := acc >> intShift
			s.PutPixel(x0, y0, colors[w])
			s.PutPixel(x0+xdir, y0, colors[w^weightMask])
		}
		s.PutPixel(x1, y1, fg)
		return
	}

	// x-major
	adj := uint32((uint64(dy) << 32) / uint64(dx))
	for dx--; dx > 0; dx-- {
		prev := acc
		acc += adj
		if acc <= prev {
			y0++
		}
		x0 += xdir
		w := acc >> intShift
		s.PutPixel(x0, y0, colors[w])
		s.PutPixel(x0, y0+1, colors[w^weightMask])
	}
	s.PutPixel(x1, y1, fg)
}
