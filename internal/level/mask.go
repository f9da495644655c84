package level

import (
	"math"

	"github.com/vovakirdan/shotfinder/internal/core"
)

// Mask is a hazard raster laid over a body's reset pose. Row 0 is the top
// edge at world y = Top; column 0 is the left edge at world x = Left.
type Mask struct {
	Left float64
	Top  float64
	W, H int
	hits []bool
}

// NewMask creates a mask from row-major hit flags. len(hits) must be w*h.
func NewMask(left, top float64, w, h int, hits []bool) *Mask {
	return &Mask{Left: left, Top: top, W: w, H: h, hits: hits}
}

// Contains reports whether the world point p lies on a hazard pixel, with
// the owning body displaced by disp since its reset pose. Points outside
// the raster are never hazards.
func (m *Mask) Contains(p, disp core.Vec) bool {
	if m == nil {
		return false
	}
	x := int(math.Round(p.X - m.Left - disp.X))
	y := int(math.Round(m.Top - p.Y + disp.Y))
	if x < 0 || x >= m.W || y < 0 || y >= m.H {
		return false
	}
	return m.hits[y*m.W+x]
}

// Count returns the number of hazard pixels.
func (m *Mask) Count() int {
	n := 0
	for _, h := range m.hits {
		if h {
			n++
		}
	}
	return n
}
