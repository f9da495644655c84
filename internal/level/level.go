// Package level holds the materialized level model: bodies with their
// segments and hazards, portals, lasers, magnets, gravity fields, start and
// flag positions. Parsers in internal/levels/formats produce it; the shot
// simulator builds an engine world from it.
package level

import (
	"math"

	"github.com/vovakirdan/shotfinder/internal/core"
)

// Kind identifies what a shape is for the contact rules.
type Kind int

const (
	KindBoundary    Kind = iota // side walls, no rules attached
	KindWall                    // terrain
	KindSand
	KindWater
	KindSaw
	KindField // gravity field sensor
	KindMagnet
	KindPortal
	KindLaser
	KindLaserSensor
	KindBall
)

var kindNames = [...]string{
	KindBoundary:    "boundary",
	KindWall:        "wall",
	KindSand:        "sand",
	KindWater:       "water",
	KindSaw:         "saw",
	KindField:       "gravity-field",
	KindMagnet:      "magnet",
	KindPortal:      "portal",
	KindLaser:       "laser",
	KindLaserSensor: "laser-sensor",
	KindBall:        "ball",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// ParseKind maps a surface name to its Kind.
func ParseKind(s string) (Kind, bool) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), true
		}
	}
	return KindWall, false
}

// Laser beam lengths in world units.
const (
	LaserSensorLength = 80
	LaserBeamLength   = 200
)

// Segment is a straight piece of a body's outline in body-local coordinates.
type Segment struct {
	A, B core.Vec
	Kind Kind
}

// Circle is a round shape in body-local coordinates (saws).
type Circle struct {
	Offset core.Vec
	Radius float64
	Kind   Kind
}

// GravityField is a rectangular sensor that gives the ball a constant
// acceleration while it is inside.
type GravityField struct {
	Min, Max core.Vec // local box corners
	Strength float64
	Rotation float64 // radians, clockwise on screen
}

// Hover returns the per-tick velocity change applied inside the field.
func (f GravityField) Hover(factor float64) core.Vec {
	v := f.Strength * factor
	return core.V(v*math.Sin(f.Rotation), v*math.Cos(f.Rotation))
}

// Portal is one end of a linked teleporter pair.
type Portal struct {
	ID    string
	Link  string
	A, B  core.Vec // local segment endpoints
	Angle float64  // radians
}

// Laser is a beam with a periodic duty cycle.
type Laser struct {
	Origin core.Vec // local
	Angle  float64  // radians
	On     float64
	Off    float64
}

// Period returns the duty cycle length.
func (l Laser) Period() float64 {
	return l.On + l.Off
}

// Sensor returns the local endpoints of the short sensor beam.
func (l Laser) Sensor() (core.Vec, core.Vec) {
	return l.Origin, l.Origin.Add(core.FromAngle(l.Angle).Scale(LaserSensorLength))
}

// Beam returns the local endpoints of the lethal beam.
func (l Laser) Beam() (core.Vec, core.Vec) {
	return l.Origin, l.Origin.Add(core.FromAngle(l.Angle).Scale(LaserBeamLength))
}

// Magnet attracts or repels the ball inside its radius.
type Magnet struct {
	Position core.Vec
	Radius   float64
	Strength float64
}

// Action types for kinematic sequences.
const (
	ActionDelayRotation = "delay-rotation"
	ActionRotate        = "rotate"
	ActionDelayPosition = "delay-position"
	ActionPosition      = "position"
)

// Action is one timed step of a body's rotation or translation sequence.
type Action struct {
	Type   string
	Period float64
	Rate   float64  // degrees per step, rotate only
	Move   core.Vec // displacement over the step, position only
}

// Body is a rigid object of the level. Position and Angle are the reset pose.
type Body struct {
	ID          string
	Kinematic   bool
	Position    core.Vec
	Angle       float64 // radians
	Segments    []Segment
	Circles     []Circle
	Field       *GravityField
	Rotation    []Action
	Translation []Action
	Acid        *Mask
	Sticky      *Mask
	Portals     []Portal
	Lasers      []Laser
}

// Moving reports whether the body has any kinematic sequence.
func (b *Body) Moving() bool {
	return len(b.Rotation) > 0 || len(b.Translation) > 0
}

// Bounds is the playfield. Side walls run from WallBase to Top at x=0 and
// x=Right; the ball is lost below Floor or above Top.
type Bounds struct {
	Right    float64
	Top      float64
	Floor    float64
	WallBase float64
}

// Level is a fully materialized level.
type Level struct {
	ID       string
	Course   string
	Name     string
	Gravity  float64
	Bounds   Bounds
	Start    core.Vec
	Flag     core.Vec
	HasStart bool
	HasFlag  bool
	Bodies   []Body
	Magnets  []Magnet
	FilePath string
}

// BoundaryBody returns the static body holding the two side walls.
func BoundaryBody(b Bounds) Body {
	return Body{
		ID: "bbox",
		Segments: []Segment{
			{A: core.V(0, b.WallBase), B: core.V(0, b.Top), Kind: KindBoundary},
			{A: core.V(b.Right, b.Top), B: core.V(b.Right, b.WallBase), Kind: KindBoundary},
		},
	}
}

// Portals returns every portal of the level keyed by id, with the id of
// the body carrying it.
func (l *Level) Portals() map[string]PortalRef {
	out := make(map[string]PortalRef)
	for i := range l.Bodies {
		for j := range l.Bodies[i].Portals {
			p := l.Bodies[i].Portals[j]
			out[p.ID] = PortalRef{Body: i, Portal: p}
		}
	}
	return out
}

// PortalRef locates a portal within Level.Bodies.
type PortalRef struct {
	Body   int
	Portal Portal
}

// Body returns the body with the given id.
func (l *Level) Body(id string) (*Body, bool) {
	for i := range l.Bodies {
		if l.Bodies[i].ID == id {
			return &l.Bodies[i], true
		}
	}
	return nil, false
}
