package shot

import (
	"github.com/vovakirdan/shotfinder/internal/contact"
	"github.com/vovakirdan/shotfinder/internal/core"
	"github.com/vovakirdan/shotfinder/internal/level"
	"github.com/vovakirdan/shotfinder/internal/physics"
)

// build creates the engine world for one trial. Every body starts at its
// reset pose, so nothing carries over from the previous trial.
func (s *Simulator) build() {
	w := s.opts.NewWorld()
	g := s.lvl.Gravity
	if s.opts.PowerUp == core.PowerUpAntigrav {
		w.SetGravity(core.V(0, g))
	} else {
		w.SetGravity(core.V(0, -g))
	}

	ball := w.NewBody(physics.Dynamic, s.cfg.Ball.Mass, s.cfg.Ball.Moment)
	ball.SetPosition(s.launchPoint())
	w.AddCircle(ball, s.cfg.Ball.Radius, core.Vec{}, physics.ShapeSpec{
		Tag:        contact.Tag(level.KindBall),
		Elasticity: s.cfg.Ball.Elasticity,
		Friction:   s.cfg.Ball.Friction,
	})
	s.trial.Ball = ball
	s.rules.Install(w, &s.trial)

	walls := level.BoundaryBody(s.lvl.Bounds)
	s.addBody(w, w.StaticBody(), &walls)

	s.bodies = s.bodies[:0]
	for i := range s.lvl.Bodies {
		lb := &s.lvl.Bodies[i]
		t := physics.Static
		if lb.Kinematic || lb.Moving() {
			t = physics.Kinematic
		}
		b := w.NewBody(t, 0, 0)
		b.SetPosition(lb.Position)
		b.SetAngle(lb.Angle)
		s.addBody(w, b, lb)
		s.bodies = append(s.bodies, b)
	}

	for i := range s.lvl.Magnets {
		m := &s.lvl.Magnets[i]
		w.AddCircle(w.StaticBody(), m.Radius, m.Position, physics.ShapeSpec{
			Tag:    contact.Tag(level.KindMagnet),
			Sensor: true,
			Data:   &contact.Surface{Kind: level.KindMagnet},
		})
	}

	s.world = w
	s.ball = ball
}

type material struct {
	elasticity, friction float64
}

func (s *Simulator) material(k level.Kind) material {
	t := s.cfg.Terrain
	switch k {
	case level.KindBoundary:
		return material{t.SidewallElasticity, t.Friction}
	case level.KindSand:
		return material{t.SandElasticity, t.SandFriction}
	case level.KindWater:
		return material{t.WaterElasticity, t.Friction}
	case level.KindPortal, level.KindLaser, level.KindLaserSensor:
		return material{t.PortalElasticity, t.PortalFriction}
	}
	return material{t.Elasticity, t.Friction}
}

func (s *Simulator) spec(lb *level.Body, k level.Kind) physics.ShapeSpec {
	m := s.material(k)
	return physics.ShapeSpec{
		Tag:        contact.Tag(k),
		Elasticity: m.elasticity,
		Friction:   m.friction,
		Data:       &contact.Surface{Kind: k, Body: lb},
	}
}

// addBody attaches the shapes of lb to b.
func (s *Simulator) addBody(w physics.World, b physics.Body, lb *level.Body) {
	r := s.cfg.Terrain.SegmentRadius

	for _, seg := range lb.Segments {
		w.AddSegment(b, seg.A, seg.B, r, s.spec(lb, seg.Kind))
	}
	for _, c := range lb.Circles {
		w.AddCircle(b, c.Radius, c.Offset, s.spec(lb, c.Kind))
	}
	if f := lb.Field; f != nil {
		spec := s.spec(lb, level.KindField)
		spec.Sensor = true
		spec.Data.(*contact.Surface).Field = f
		w.AddBox(b, f.Min, f.Max, r, spec)
	}
	for i := range lb.Portals {
		p := &lb.Portals[i]
		spec := s.spec(lb, level.KindPortal)
		spec.Data.(*contact.Surface).Portal = p
		s.trial.Portals[p.ID] = w.AddSegment(b, p.A, p.B, r, spec)
	}
	for i := range lb.Lasers {
		lz := &lb.Lasers[i]

		sensor := s.spec(lb, level.KindLaserSensor)
		sensor.Sensor = true
		sensor.Data.(*contact.Surface).Laser = lz
		a, e := lz.Sensor()
		w.AddSegment(b, a, e, r, sensor)

		beam := s.spec(lb, level.KindLaser)
		beam.Data.(*contact.Surface).Laser = lz
		a, e = lz.Beam()
		w.AddSegment(b, a, e, r, beam)
	}
}
