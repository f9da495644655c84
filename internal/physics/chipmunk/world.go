// Package chipmunk implements physics.World on top of the Chipmunk2D port
// github.com/jakecoffman/cp.
package chipmunk

import (
	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/shotfinder/internal/core"
	"github.com/vovakirdan/shotfinder/internal/physics"
)

// World is a cp.Space. A World is not safe for concurrent use, and
// handlers must not call Step.
type World struct {
	space  *cp.Space
	static *body
}

// New creates an empty space with zero gravity.
func New(iterations uint) *World {
	space := cp.NewSpace()
	if iterations > 0 {
		space.Iterations = iterations
	}
	return &World{space: space, static: &body{b: space.StaticBody}}
}

func vec(v core.Vec) cp.Vector  { return cp.Vector{X: v.X, Y: v.Y} }
func back(v cp.Vector) core.Vec { return core.Vec{X: v.X, Y: v.Y} }

func (w *World) SetGravity(g core.Vec) { w.space.SetGravity(vec(g)) }

func (w *World) StaticBody() physics.Body { return w.static }

// NewBody adds a body to the space. Mass and moment only apply to dynamic
// bodies. A static body has to be positioned before shapes are attached
// to it, the space does not reindex static shapes.
func (w *World) NewBody(t physics.BodyType, mass, moment float64) physics.Body {
	var b *cp.Body
	switch t {
	case physics.Static:
		b = cp.NewStaticBody()
	case physics.Kinematic:
		b = cp.NewKinematicBody()
	default:
		b = cp.NewBody(mass, moment)
	}
	w.space.AddBody(b)
	return &body{b: b}
}

func (w *World) AddSegment(b physics.Body, a, bb core.Vec, radius float64, spec physics.ShapeSpec) physics.Shape {
	owner := unwrap(b)
	return w.add(owner, cp.NewSegment(owner.b, vec(a), vec(bb), radius), spec)
}

func (w *World) AddCircle(b physics.Body, radius float64, offset core.Vec, spec physics.ShapeSpec) physics.Shape {
	owner := unwrap(b)
	return w.add(owner, cp.NewCircle(owner.b, radius, vec(offset)), spec)
}

// AddBox adds an axis-aligned box in body coordinates.
func (w *World) AddBox(b physics.Body, min, max core.Vec, radius float64, spec physics.ShapeSpec) physics.Shape {
	owner := unwrap(b)
	verts := []cp.Vector{
		{X: max.X, Y: min.Y},
		{X: max.X, Y: max.Y},
		{X: min.X, Y: max.Y},
		{X: min.X, Y: min.Y},
	}
	poly := cp.NewPolyShape(owner.b, len(verts), verts, cp.NewTransformIdentity(), radius)
	return w.add(owner, poly, spec)
}

func (w *World) add(owner *body, s *cp.Shape, spec physics.ShapeSpec) *shape {
	s.SetElasticity(spec.Elasticity)
	s.SetFriction(spec.Friction)
	s.SetSensor(spec.Sensor)
	s.SetCollisionType(cp.CollisionType(spec.Tag))
	wrapped := &shape{s: s, owner: owner, tag: spec.Tag, data: spec.Data}
	s.UserData = wrapped
	w.space.AddShape(s)
	return wrapped
}

// Handle installs h for contacts between shapes tagged tag and shapes
// tagged ball. Contact.Shape is always the tag side.
func (w *World) Handle(tag, ball physics.Tag, h physics.Handler) {
	handler := w.space.NewCollisionHandler(cp.CollisionType(tag), cp.CollisionType(ball))
	if h.Begin != nil {
		fn := h.Begin
		handler.BeginFunc = func(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
			return fn(contact(arb))
		}
	}
	if h.PreSolve != nil {
		fn := h.PreSolve
		handler.PreSolveFunc = func(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
			return fn(contact(arb))
		}
	}
	if h.PostSolve != nil {
		fn := h.PostSolve
		handler.PostSolveFunc = func(arb *cp.Arbiter, _ *cp.Space, _ interface{}) {
			fn(contact(arb))
		}
	}
	if h.Separate != nil {
		fn := h.Separate
		handler.SeparateFunc = func(arb *cp.Arbiter, _ *cp.Space, _ interface{}) {
			fn(contact(arb))
		}
	}
}

func (w *World) Step(dt float64) { w.space.Step(dt) }

func contact(arb *cp.Arbiter) physics.Contact {
	a, _ := arb.Shapes()
	c := physics.Contact{}
	if s, ok := a.UserData.(*shape); ok {
		c.Shape = s
	}
	set := arb.ContactPointSet()
	c.Count = set.Count
	if set.Count > 0 {
		c.Point = back(set.Points[0].PointA)
	}
	return c
}

type body struct {
	b *cp.Body
}

func unwrap(b physics.Body) *body {
	bb, ok := b.(*body)
	if !ok {
		panic("chipmunk: body from another world implementation")
	}
	return bb
}

func (b *body) Type() physics.BodyType {
	switch b.b.GetType() {
	case cp.BODY_STATIC:
		return physics.Static
	case cp.BODY_KINEMATIC:
		return physics.Kinematic
	}
	return physics.Dynamic
}

func (b *body) Position() core.Vec           { return back(b.b.Position()) }
func (b *body) SetPosition(p core.Vec)       { b.b.SetPosition(vec(p)) }
func (b *body) Velocity() core.Vec           { return back(b.b.Velocity()) }
func (b *body) SetVelocity(v core.Vec)       { b.b.SetVelocity(v.X, v.Y) }
func (b *body) Angle() float64               { return b.b.Angle() }
func (b *body) SetAngle(a float64)           { b.b.SetAngle(a) }
func (b *body) AngularVelocity() float64     { return b.b.AngularVelocity() }
func (b *body) SetAngularVelocity(w float64) { b.b.SetAngularVelocity(w) }

type shape struct {
	s     *cp.Shape
	owner *body
	tag   physics.Tag
	data  any
}

func (s *shape) Body() physics.Body { return s.owner }
func (s *shape) Tag() physics.Tag   { return s.tag }
func (s *shape) Data() any          { return s.data }

func (s *shape) Endpoints() (a, b core.Vec, ok bool) {
	seg, ok := s.s.Class.(*cp.Segment)
	if !ok {
		return core.Vec{}, core.Vec{}, false
	}
	return back(seg.TransformA()), back(seg.TransformB()), true
}
