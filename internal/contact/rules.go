package contact

import (
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/shotfinder/internal/config"
	"github.com/vovakirdan/shotfinder/internal/core"
	"github.com/vovakirdan/shotfinder/internal/level"
	"github.com/vovakirdan/shotfinder/internal/physics"
)

// Handler is the uniform signature of a contact rule.
type Handler func(r *Rules, t *Trial, c physics.Contact) Decision

type phases struct {
	begin, preSolve, postSolve, separate Handler
}

func (p phases) at(ph Phase) Handler {
	switch ph {
	case Begin:
		return p.begin
	case PreSolve:
		return p.preSolve
	case PostSolve:
		return p.postSolve
	case Separate:
		return p.separate
	}
	return nil
}

// table is the closed set of contact kinds with rules attached. Kinds
// missing here (boundary walls, laser sensors) collide normally.
var table = map[level.Kind]phases{
	level.KindWater:  {begin: water},
	level.KindSaw:    {begin: saw},
	level.KindSand:   {postSolve: sand},
	level.KindField:  {begin: enterField, separate: leaveField},
	level.KindMagnet: {begin: enterMagnet, separate: leaveMagnet},
	level.KindPortal: {preSolve: teleport, separate: leavePortal},
	level.KindWall:   {preSolve: wall},
	level.KindLaser:  {preSolve: laser},
}

// Kinds returns the kinds that carry rules.
func Kinds() []level.Kind {
	out := make([]level.Kind, 0, len(table))
	for k := level.KindBoundary; k <= level.KindBall; k++ {
		if _, ok := table[k]; ok {
			out = append(out, k)
		}
	}
	return out
}

// Tag returns the engine collision tag of a kind. Zero is left to the
// engine default.
func Tag(k level.Kind) physics.Tag {
	return physics.Tag(k) + 1
}

// Rules holds the shot-wide settings the handlers read. It is immutable
// once built and can serve any number of trials.
type Rules struct {
	powerUp      core.PowerUp
	ghost        float64
	hoverFactor  float64
	teleportPush float64 // world units
	ignoreSticky bool
	right        float64
	logger       *log.Logger
}

// NewRules builds the rules for shots with power-up p on a playfield with
// the given bounds. A nil logger discards.
func NewRules(cfg config.Config, p core.PowerUp, bounds level.Bounds, logger *log.Logger) *Rules {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Rules{
		powerUp:      p,
		ghost:        cfg.Rules.GhostDistance,
		hoverFactor:  cfg.Rules.HoverFactor,
		teleportPush: cfg.Rules.TeleportPush * cfg.Ball.Radius,
		ignoreSticky: cfg.Rules.IgnoreSticky,
		right:        bounds.Right,
		logger:       logger,
	}
}

// PowerUp returns the power-up the rules were built for.
func (r *Rules) PowerUp() core.PowerUp { return r.powerUp }

// Dispatch runs the rule for the contact's kind at phase ph. Contacts
// without a rule are processed.
func (r *Rules) Dispatch(ph Phase, t *Trial, c physics.Contact) Decision {
	s := surfaceOf(c)
	if s == nil {
		return Process
	}
	h := table[s.Kind].at(ph)
	if h == nil {
		return Process
	}
	return h(r, t, c)
}

// Install registers every rule on w for contacts with the ball tag.
func (r *Rules) Install(w physics.World, t *Trial) {
	ball := Tag(level.KindBall)
	for _, k := range Kinds() {
		p := table[k]
		var h physics.Handler
		if p.begin != nil {
			h.Begin = func(c physics.Contact) bool { return r.Dispatch(Begin, t, c) == Process }
		}
		if p.preSolve != nil {
			h.PreSolve = func(c physics.Contact) bool { return r.Dispatch(PreSolve, t, c) == Process }
		}
		if p.postSolve != nil {
			h.PostSolve = func(c physics.Contact) { r.Dispatch(PostSolve, t, c) }
		}
		if p.separate != nil {
			h.Separate = func(c physics.Contact) { r.Dispatch(Separate, t, c) }
		}
		w.Handle(Tag(k), ball, h)
	}
}

func surfaceOf(c physics.Contact) *Surface {
	if c.Shape == nil {
		return nil
	}
	s, _ := c.Shape.Data().(*Surface)
	return s
}

func water(r *Rules, t *Trial, _ physics.Contact) Decision {
	if r.powerUp == core.PowerUpShield && !t.Splashed {
		t.Splashed = true
		return Process
	}
	return t.die()
}

func saw(r *Rules, t *Trial, _ physics.Contact) Decision {
	if r.powerUp == core.PowerUpShield {
		return Process
	}
	return t.die()
}

func sand(_ *Rules, t *Trial, _ physics.Contact) Decision {
	return t.stick()
}

func enterField(r *Rules, t *Trial, c physics.Contact) Decision {
	if s := surfaceOf(c); s.Field != nil {
		t.Hover = s.Field.Hover(r.hoverFactor)
	}
	return Process
}

func leaveField(_ *Rules, t *Trial, _ physics.Contact) Decision {
	t.Hover = core.Vec{}
	return Process
}

func enterMagnet(_ *Rules, t *Trial, _ physics.Contact) Decision {
	t.InMagnet = true
	return Process
}

func leaveMagnet(_ *Rules, t *Trial, _ physics.Contact) Decision {
	t.InMagnet = false
	return Process
}

func teleport(r *Rules, t *Trial, c physics.Contact) Decision {
	if t.Teleporting {
		return Suppress
	}
	src := surfaceOf(c).Portal
	if src == nil {
		return Process
	}
	dstShape, ok := t.Portals[src.Link]
	if !ok {
		return Process
	}
	dst := surfaceOf(physics.Contact{Shape: dstShape}).Portal
	srcGate, ok1 := gate(c.Shape, src)
	dstGate, ok2 := gate(dstShape, dst)
	if !ok1 || !ok2 {
		return Process
	}

	pos, vel := Teleport(srcGate, dstGate, t.Ball.Position(), t.Ball.Velocity(), r.teleportPush)
	r.logger.Debug("teleport", "from", src.ID, "to", dst.ID,
		"rotate", core.Rad2Deg(srcGate.Angle-dstGate.Angle+math.Pi), "pos", pos)
	t.Ball.SetVelocity(vel)
	t.Ball.SetPosition(pos)
	t.Teleporting = true
	t.SettlePending = true
	t.Teleports++
	return Process
}

func gate(s physics.Shape, p *level.Portal) (Gate, bool) {
	if p == nil {
		return Gate{}, false
	}
	a, b, ok := s.Endpoints()
	return Gate{A: a, B: b, Angle: p.Angle}, ok
}

func leavePortal(_ *Rules, t *Trial, _ physics.Contact) Decision {
	t.Teleporting = false
	return Process
}

// wall resolves terrain contacts: acid, sticky masks, the sticky power-up,
// then the tunnel machine.
func wall(r *Rules, t *Trial, c physics.Contact) Decision {
	s := surfaceOf(c)
	pos := t.Ball.Position()
	away := t.awayFromStart(pos, r.ghost)

	if s.Body != nil && c.Count > 0 {
		disp := c.Shape.Body().Position().Sub(s.Body.Position)
		if r.powerUp != core.PowerUpShield && s.Body.Acid.Contains(c.Point, disp) {
			return t.die()
		}
		if !r.ignoreSticky && away && s.Body.Sticky.Contains(c.Point, disp) {
			return t.stick()
		}
	}
	if r.powerUp == core.PowerUpSticky && away {
		return t.stick()
	}
	if r.powerUp == core.PowerUpTunnel &&
		(t.Ball.Velocity().Y < 0 || away) &&
		pos.X > r.ghost && pos.X < r.right-r.ghost {
		return t.tunnel(pos, r.ghost)
	}
	return Process
}

func laser(r *Rules, t *Trial, c physics.Contact) Decision {
	if r.powerUp == core.PowerUpShield {
		return Suppress
	}
	lz := surfaceOf(c).Laser
	if lz == nil {
		return Suppress
	}
	if Lethal(*lz, t.Now) {
		return t.die()
	}
	return Suppress
}

// Lethal reports whether the beam is on at simulation time now. A laser
// with a zero period is always on.
func Lethal(l level.Laser, now float64) bool {
	period := l.Period()
	return period == 0 || math.Mod(now, period) <= l.On
}
