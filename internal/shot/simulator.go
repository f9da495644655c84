// Package shot runs single shot trials: it builds an engine world from a
// level, launches the ball, drives the kinematic bodies and the contact
// rules tick by tick and reports how the shot ended.
package shot

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/shotfinder/internal/config"
	"github.com/vovakirdan/shotfinder/internal/contact"
	"github.com/vovakirdan/shotfinder/internal/core"
	"github.com/vovakirdan/shotfinder/internal/kinematic"
	"github.com/vovakirdan/shotfinder/internal/level"
	"github.com/vovakirdan/shotfinder/internal/physics"
	"github.com/vovakirdan/shotfinder/internal/physics/chipmunk"
	"github.com/vovakirdan/shotfinder/internal/scoring"
)

// State is the trial lifecycle.
type State int

const (
	StateSetup    State = iota // world built, ball held at the start
	StateRunning               // ball launched
	StateTerminal              // outcome decided
)

// Options selects the shot being simulated.
type Options struct {
	Power   float64 // newtons
	PowerUp core.PowerUp
	Delay   float64 // simulation time the ball is held before launch
	Target  scoring.Target
	// NewWorld creates the engine space for each trial. Nil uses
	// chipmunk with the configured solver iterations.
	NewWorld func() physics.World
}

// Pose is a body position and angle.
type Pose struct {
	Position core.Vec
	Angle    float64
}

// Frame is what the replay draws after a tick.
type Frame struct {
	State    State
	Cycle    int
	Now      float64
	Ball     core.Vec
	Poses    []Pose // indexed like Level.Bodies
	Dead     bool
	Stuck    bool
	Splashed bool
	Tunnel   contact.TunnelPhase
}

// Simulator owns one level and runs trials on it one at a time. It is not
// safe for concurrent use.
type Simulator struct {
	cfg    config.Config
	lvl    *level.Level
	opts   Options
	rules  *contact.Rules
	logger *log.Logger

	actuators []kinematic.Actuator // indexed like lvl.Bodies
	step      float64              // physics step
	tick      float64              // simulation clock advance per step
	speed     float64              // launch speed

	// Per trial
	world      physics.World
	ball       physics.Body
	bodies     []physics.Body
	trial      contact.Trial
	state      State
	angle      float64
	cycle      int
	stationary int
	outcome    Outcome
}

// New prepares a simulator. cfg should already have the power-up applied
// (config.ApplyPowerUp).
func New(cfg config.Config, lvl *level.Level, opts Options, logger *log.Logger) (*Simulator, error) {
	if lvl == nil {
		return nil, errors.New("shot: nil level")
	}
	if opts.Power <= 0 {
		return nil, fmt.Errorf("shot: power must be positive, got %v", opts.Power)
	}
	if opts.Target.Proximity == nil {
		return nil, errors.New("shot: no scoring target")
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.NewWorld == nil {
		iterations := uint(max(cfg.Physics.Iterations, 0))
		opts.NewWorld = func() physics.World { return chipmunk.New(iterations) }
	}

	actuators := make([]kinematic.Actuator, len(lvl.Bodies))
	for i := range lvl.Bodies {
		a, err := kinematic.New(&lvl.Bodies[i])
		if err != nil {
			return nil, fmt.Errorf("shot: %w", err)
		}
		actuators[i] = a
	}

	step := cfg.Physics.StepFor(opts.Power)
	return &Simulator{
		cfg:       cfg,
		lvl:       lvl,
		opts:      opts,
		rules:     contact.NewRules(cfg, opts.PowerUp, lvl.Bounds, logger),
		logger:    logger,
		actuators: actuators,
		step:      step,
		tick:      step * cfg.Physics.TimeFactor,
		speed:     cfg.Physics.LaunchSpeed(opts.Power),
	}, nil
}

// Level returns the simulated level.
func (s *Simulator) Level() *level.Level { return s.lvl }

// Options returns the shot options.
func (s *Simulator) Options() Options { return s.opts }

// State returns the lifecycle state of the current trial.
func (s *Simulator) State() State { return s.state }

// Shoot runs a complete trial at angle degrees.
func (s *Simulator) Shoot(angle float64) Outcome {
	s.Setup(angle)
	for !s.Tick() {
	}
	return s.outcome
}

// Setup starts a new trial: a fresh world with every body at its reset
// pose, the ball on the start marker and every trial flag cleared.
func (s *Simulator) Setup(angle float64) {
	s.trial.Reset(s.lvl.Start)
	s.build()
	s.state = StateSetup
	s.angle = angle
	s.cycle = 0
	s.stationary = 0
	s.outcome = Outcome{}
	s.world.Step(s.cfg.Physics.SettleStep)
}

func (s *Simulator) launchPoint() core.Vec {
	return s.lvl.Start.Add(core.V(0, s.cfg.Physics.LaunchLift))
}

// Tick advances the trial by one step and reports whether it ended.
func (s *Simulator) Tick() bool {
	if s.state == StateTerminal {
		return true
	}
	t := &s.trial
	t.BeganTick()

	if s.state == StateSetup {
		s.ball.SetPosition(s.launchPoint())
		if t.Now > s.opts.Delay {
			a := core.Deg2Rad(s.angle)
			s.ball.SetVelocity(core.V(math.Cos(a), math.Sin(a)).Scale(s.speed))
			s.state = StateRunning
		} else {
			s.ball.SetVelocity(core.Vec{})
		}
	}

	s.actuate()
	s.world.Step(s.step)
	if t.TakeSettle() {
		s.world.Step(s.cfg.Physics.TeleportSettle)
	}
	t.Now += s.tick
	s.cycle++

	v := s.ball.Velocity()
	eps := s.cfg.Physics.StationarySpeed
	if s.state == StateRunning && math.Abs(v.X) < eps && math.Abs(v.Y) < eps {
		s.stationary++
	} else {
		s.stationary = 0
	}

	v = v.Add(t.Hover)
	if t.InMagnet {
		v = v.Add(contact.MagnetPull(s.lvl.Magnets, s.ball.Position(), s.step, s.cfg.Rules.MagnetScale))
	}
	s.ball.SetVelocity(v)
	s.ball.SetAngularVelocity(s.ball.AngularVelocity() / s.cfg.Physics.AngularDamping)

	if r := s.terminal(); r != ReasonNone {
		s.finish(r)
		return true
	}
	return false
}

// actuate applies this tick's pose change to every moving body. A body
// outside its rotate steps does not spin.
func (s *Simulator) actuate() {
	for i, a := range s.actuators {
		if a.Idle() {
			continue
		}
		b := s.bodies[i]
		d := a.Delta(s.trial.Now, s.tick)
		if d.Rotating {
			b.SetAngle(b.Angle() + d.Angle)
			b.SetAngularVelocity(d.AngularVelocity)
		} else if a.Rotation.Duration() > 0 {
			b.SetAngularVelocity(0)
		}
		if d.Position != (core.Vec{}) {
			b.SetPosition(b.Position().Add(d.Position))
		}
	}
}

func (s *Simulator) terminal() Reason {
	pos := s.ball.Position()
	switch {
	case s.trial.Dead:
		return ReasonDead
	case s.trial.Stuck:
		return ReasonStuck
	case s.stationary > s.cfg.Physics.StationaryTicks:
		return ReasonStationary
	case pos.Y < s.lvl.Bounds.Floor:
		return ReasonExitBottom
	case pos.Y > s.lvl.Bounds.Top:
		return ReasonExitTop
	case s.cycle > s.cfg.Physics.MaxCycles:
		return ReasonTimeout
	}
	return ReasonNone
}

func (s *Simulator) finish(r Reason) {
	final := s.ball.Position()
	o := Outcome{
		Angle:     s.angle,
		Reason:    r,
		Final:     final,
		Cycles:    s.cycle,
		Score:     s.cfg.Rules.FailScore(),
		Splashed:  s.trial.Splashed,
		Teleports: s.trial.Teleports,
	}
	if r.Resting() {
		o.Score = s.opts.Target.Score(final, s.lvl.Flag, s.cycle)
		if final.Dist(s.lvl.Flag) < s.cfg.Rules.SwishDistance {
			o.Swish = true
			s.logger.Debug("swish", "angle", s.angle, "score", o.Score)
		}
	}
	s.outcome = o
	s.state = StateTerminal
}

// Outcome returns the result of the last finished trial.
func (s *Simulator) Outcome() Outcome { return s.outcome }

// Frame returns the current trial state for drawing.
func (s *Simulator) Frame() Frame {
	f := Frame{
		State:    s.state,
		Cycle:    s.cycle,
		Now:      s.trial.Now,
		Dead:     s.trial.Dead,
		Stuck:    s.trial.Stuck,
		Splashed: s.trial.Splashed,
		Tunnel:   s.trial.Tunnel,
		Poses:    make([]Pose, len(s.bodies)),
	}
	if s.ball != nil {
		f.Ball = s.ball.Position()
	}
	for i, b := range s.bodies {
		f.Poses[i] = Pose{Position: b.Position(), Angle: b.Angle()}
	}
	return f
}
