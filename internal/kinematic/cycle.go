// Package kinematic replays the cyclic rotation and translation sequences of
// moving level bodies. Everything here is a pure function of the sequence
// and the elapsed simulation time.
package kinematic

import (
	"fmt"
	"math"

	"github.com/vovakirdan/shotfinder/internal/core"
	"github.com/vovakirdan/shotfinder/internal/level"
)

type stepKind int

const (
	stepDelay stepKind = iota
	stepRotate
	stepMove
)

type step struct {
	kind   stepKind
	period float64
	rate   float64  // radians over the whole step
	move   core.Vec // displacement over the whole step
}

// Cycle is one looping sequence of timed steps.
type Cycle struct {
	steps    []step
	duration float64
}

// NewCycle builds a cycle from level actions. Unknown action types are a
// data error.
func NewCycle(actions []level.Action) (Cycle, error) {
	c := Cycle{steps: make([]step, 0, len(actions))}
	for _, a := range actions {
		s := step{period: a.Period}
		switch a.Type {
		case level.ActionDelayRotation, level.ActionDelayPosition:
			s.kind = stepDelay
		case level.ActionRotate:
			s.kind = stepRotate
			s.rate = core.Deg2Rad(a.Rate)
		case level.ActionPosition:
			s.kind = stepMove
			s.move = a.Move
		default:
			return Cycle{}, fmt.Errorf("kinematic: unknown action %q", a.Type)
		}
		c.duration += a.Period
		c.steps = append(c.steps, s)
	}
	return c, nil
}

// Duration returns the sum of the step periods.
func (c Cycle) Duration() float64 {
	return c.duration
}

// Delta is the pose change for one tick.
type Delta struct {
	Angle           float64  // added to the body angle
	AngularVelocity float64  // valid when Rotating
	Rotating        bool     // a rotate step is active this tick
	Position        core.Vec // added to the body position
}

// Delta returns the change for the tick starting at elapsed, tick long.
// The active step is the first whose cumulative end reaches
// elapsed mod duration. Rotation is clockwise for positive rates.
func (c Cycle) Delta(elapsed, tick float64) Delta {
	if len(c.steps) == 0 || c.duration <= 0 {
		return Delta{}
	}
	phase := math.Mod(elapsed, c.duration)
	t := 0.0
	for _, s := range c.steps {
		t += s.period
		if t < phase {
			continue
		}
		switch s.kind {
		case stepRotate:
			d := s.rate / s.period * tick
			return Delta{Angle: -d, AngularVelocity: -d, Rotating: true}
		case stepMove:
			return Delta{Position: s.move.Scale(tick / s.period)}
		}
		return Delta{}
	}
	return Delta{}
}

// Actuator drives one body from its rotation and translation cycles.
type Actuator struct {
	Rotation    Cycle
	Translation Cycle
}

// New builds the actuator for a level body.
func New(b *level.Body) (Actuator, error) {
	rot, err := NewCycle(b.Rotation)
	if err != nil {
		return Actuator{}, fmt.Errorf("body %s rotation: %w", b.ID, err)
	}
	trans, err := NewCycle(b.Translation)
	if err != nil {
		return Actuator{}, fmt.Errorf("body %s translation: %w", b.ID, err)
	}
	return Actuator{Rotation: rot, Translation: trans}, nil
}

// Idle reports whether the actuator never moves its body.
func (a Actuator) Idle() bool {
	return len(a.Rotation.steps) == 0 && len(a.Translation.steps) == 0
}

// Delta merges the rotation and translation changes for one tick.
func (a Actuator) Delta(elapsed, tick float64) Delta {
	d := a.Rotation.Delta(elapsed, tick)
	d.Position = a.Translation.Delta(elapsed, tick).Position
	return d
}
