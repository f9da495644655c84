package contact

import "github.com/vovakirdan/shotfinder/internal/core"

// StepTunnel advances the tunnel machine for one qualifying wall contact
// with the ball at pos. mark is the last captured ball position. Exited
// is absorbing.
func StepTunnel(phase TunnelPhase, mark, pos core.Vec, ghost float64) (TunnelPhase, core.Vec, Decision) {
	switch phase {
	case TunnelIdle:
		return TunnelEntering, pos, Suppress
	case TunnelEntering:
		if beyond(pos, mark, ghost) {
			return TunnelInside, pos, Suppress
		}
		return TunnelEntering, pos, Suppress
	case TunnelInside:
		if !beyond(pos, mark, ghost) {
			return TunnelExited, mark, Process
		}
		return TunnelInside, pos, Suppress
	}
	return TunnelExited, mark, Process
}

func (t *Trial) tunnel(pos core.Vec, ghost float64) Decision {
	var d Decision
	t.Tunnel, t.TunnelMark, d = StepTunnel(t.Tunnel, t.TunnelMark, pos, ghost)
	return d
}
