// Package contact turns engine contact events into shot outcomes: death,
// sticking, splashing, hovering, magnetism, teleports, tunneling and laser
// timing. Every handler is a plain function of the per-trial state and the
// contact geometry; the shot simulator owns both and installs the handlers
// on each freshly built world.
package contact

import (
	"github.com/vovakirdan/shotfinder/internal/core"
	"github.com/vovakirdan/shotfinder/internal/level"
	"github.com/vovakirdan/shotfinder/internal/physics"
)

// Decision tells the engine what to do with a contact.
type Decision int

const (
	Process  Decision = iota // resolve the contact normally
	Suppress                 // no physical effect this step
)

func (d Decision) String() string {
	if d == Suppress {
		return "suppress"
	}
	return "process"
}

// Phase is the point of the engine's contact lifecycle a handler runs at.
type Phase int

const (
	Begin Phase = iota
	PreSolve
	PostSolve
	Separate
)

// Surface is attached to every non-ball shape as its physics.ShapeSpec.Data.
type Surface struct {
	Kind   level.Kind
	Body   *level.Body // owning level body; nil for free-standing shapes
	Field  *level.GravityField
	Portal *level.Portal
	Laser  *level.Laser
}

// TunnelPhase is the progress of the tunnel power-up through one layer.
type TunnelPhase int

const (
	TunnelIdle TunnelPhase = iota
	TunnelEntering
	TunnelInside
	TunnelExited
)

func (p TunnelPhase) String() string {
	switch p {
	case TunnelEntering:
		return "entering"
	case TunnelInside:
		return "inside"
	case TunnelExited:
		return "exited"
	}
	return "idle"
}

// Trial is the mutable state of one shot. It is reset before every trial
// and only ever touched from the simulating goroutine.
type Trial struct {
	Ball    physics.Body
	Start   core.Vec                 // start marker, origin of the ghost distance
	Portals map[string]physics.Shape // portal id to its shape in the current world
	Now     float64                  // simulation clock, drives laser duty cycles

	Dead     bool
	Stuck    bool
	Splashed bool

	Tunnel     TunnelPhase
	TunnelMark core.Vec

	Teleporting   bool
	SettlePending bool
	Teleports     int

	Hover    core.Vec
	InMagnet bool
}

// Reset clears every flag and binding for a new trial starting at start.
func (t *Trial) Reset(start core.Vec) {
	*t = Trial{
		Start:   start,
		Portals: make(map[string]physics.Shape),
	}
}

// BeganTick clears the teleport guard at the start of a tick.
func (t *Trial) BeganTick() {
	t.Teleporting = false
}

// TakeSettle reports and clears a pending settle step.
func (t *Trial) TakeSettle() bool {
	p := t.SettlePending
	t.SettlePending = false
	return p
}

func (t *Trial) die() Decision {
	t.Ball.SetVelocity(core.Vec{})
	t.Dead = true
	return Suppress
}

func (t *Trial) stick() Decision {
	t.Ball.SetVelocity(core.Vec{})
	t.Stuck = true
	return Process
}

// awayFromStart reports whether p left the ghost box around the start marker.
func (t *Trial) awayFromStart(p core.Vec, ghost float64) bool {
	return beyond(p, t.Start, ghost)
}

// beyond is the Chebyshev test |dx| > g or |dy| > g.
func beyond(p, q core.Vec, g float64) bool {
	d := p.Sub(q)
	return d.X > g || d.X < -g || d.Y > g || d.Y < -g
}
