package contact

import (
	"math"

	"github.com/vovakirdan/shotfinder/internal/core"
)

// Gate is a portal segment in world coordinates with its portal angle.
type Gate struct {
	A, B  core.Vec
	Angle float64
}

// Midpoint returns the centre of the portal segment.
func (g Gate) Midpoint() core.Vec {
	return core.Midpoint(g.A, g.B)
}

// Normal returns the segment normal, the right perpendicular of B-A. The
// ball leaves a portal along the opposite direction.
func (g Gate) Normal() core.Vec {
	return g.B.Sub(g.A).Normalize().RPerp()
}

// Teleport maps the ball state through src onto dst. The relative rotation
// is src.Angle - dst.Angle + pi; velocity and the offset from the source
// midpoint are rotated by its negation, and the ball is pushed push units
// out of dst.
func Teleport(src, dst Gate, pos, vel core.Vec, push float64) (core.Vec, core.Vec) {
	theta := src.Angle - dst.Angle + math.Pi
	vel = vel.Rotate(-theta)
	rel := pos.Sub(src.Midpoint()).Rotate(-theta)
	pos = dst.Midpoint().Add(rel).Sub(dst.Normal().Scale(push))
	return pos, vel
}
