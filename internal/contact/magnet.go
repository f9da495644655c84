package contact

import (
	"github.com/vovakirdan/shotfinder/internal/core"
	"github.com/vovakirdan/shotfinder/internal/level"
)

// MagnetPull returns the velocity change the magnets give a ball at pos
// over one tick. Each magnet with pos strictly inside its radius pushes
// along magnet->ball with strength/d² * tick * scale; negative strengths
// attract. Contributions add up.
func MagnetPull(magnets []level.Magnet, pos core.Vec, tick, scale float64) core.Vec {
	var dv core.Vec
	for _, m := range magnets {
		d := pos.Dist(m.Position)
		if d <= 0 || d >= m.Radius {
			continue
		}
		dir := pos.Sub(m.Position).Scale(1 / d)
		dv = dv.Add(dir.Scale(m.Strength / (d * d) * tick * scale))
	}
	return dv
}
