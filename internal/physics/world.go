// Package physics defines the capabilities the solver needs from a 2D
// rigid-body engine. internal/physics/chipmunk implements it.
package physics

import (
	"github.com/vovakirdan/shotfinder/internal/core"
)

// BodyType selects how the engine moves a body.
type BodyType int

const (
	Static    BodyType = iota // never moves
	Kinematic                 // moved by the caller, infinite mass
	Dynamic                   // moved by forces and contacts
)

// Tag is the collision type the engine dispatches contact handlers on.
type Tag uint

// ShapeSpec describes the material and identity of a new shape.
type ShapeSpec struct {
	Tag        Tag
	Sensor     bool
	Elasticity float64
	Friction   float64
	Data       any // returned by Shape.Data, owned by the caller
}

// Body is a rigid body owned by a World.
type Body interface {
	Type() BodyType
	Position() core.Vec
	SetPosition(p core.Vec)
	Velocity() core.Vec
	SetVelocity(v core.Vec)
	Angle() float64
	SetAngle(a float64)
	AngularVelocity() float64
	SetAngularVelocity(w float64)
}

// Shape is a collision shape attached to a Body.
type Shape interface {
	Body() Body
	Tag() Tag
	Data() any
	// Endpoints returns the world-space endpoints of a segment shape.
	Endpoints() (a, b core.Vec, ok bool)
}

// Contact is what a handler sees of one contact between the ball and
// another shape. Shape is the non-ball shape.
type Contact struct {
	Shape Shape
	Point core.Vec // first contact point on Shape, zero when Count is 0
	Count int
}

// Handler is the set of callbacks for one tag colliding with the ball.
// Begin and PreSolve return false to make the engine ignore the contact
// for this step. Nil callbacks keep the engine default.
type Handler struct {
	Begin     func(c Contact) bool
	PreSolve  func(c Contact) bool
	PostSolve func(c Contact)
	Separate  func(c Contact)
}

// World is a physics space.
type World interface {
	SetGravity(g core.Vec)
	StaticBody() Body
	NewBody(t BodyType, mass, moment float64) Body
	AddSegment(b Body, a, bb core.Vec, radius float64, spec ShapeSpec) Shape
	AddCircle(b Body, radius float64, offset core.Vec, spec ShapeSpec) Shape
	AddBox(b Body, min, max core.Vec, radius float64, spec ShapeSpec) Shape
	// Handle registers callbacks for contacts between tag and the ball tag.
	Handle(tag, ball Tag, h Handler)
	Step(dt float64)
}
