// Package raster draws gamma-corrected anti-aliased primitives onto surfaces
package raster

import (
	"math"
	"sync"
)

// Gamma is the display gamma the blend table corrects for
const Gamma = 2.35

var (
	gammaOnce  sync.Once
	gammaTable [256]uint8
)

// GammaTable returns the shared 256-entry correction table, built on first use
// Entry i is round(255 * (i/255)^(1/Gamma))
func GammaTable() *[256]uint8 {
	gammaOnce.Do(func() {
		for i := range gammaTable {
			gammaTable[i] = uint8(math.Round(255 * math.Pow(float64(i)/255, 1/Gamma)))
		}
	})
	return &gammaTable
}
