// Package formats provides the level file parsers.
package formats

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/vovakirdan/shotfinder/internal/core"
	"github.com/vovakirdan/shotfinder/internal/level"
)

// ScreenOffset shifts every export coordinate into world space. The side
// walls start at its height.
var ScreenOffset = core.V(0, 2500)

// Node types of the game export.
const (
	NodeTerrain      = "TerrainNode"
	NodeGravityField = "GravityFieldNode"
	NodeSandTrap     = "SandTrapNode"
	NodeWaterHazard  = "WaterHazardNode"
	NodeMagnet       = "MagnetNode"
	NodeKillSaw      = "KillSawNode"
	NodeStart        = "StartPositionNode"
	NodeFlag         = "FlagPositionNode"
	NodePortal       = "PortalNode"
	NodeLaser        = "LaserNode"
)

type gameFile struct {
	Gravity braced     `json:"gravity"`
	Nodes   []gameNode `json:"nodes"`
}

type gameNode struct {
	ID                string       `json:"id"`
	Type              string       `json:"type"`
	Position          braced       `json:"position"`
	Width             braced       `json:"width"`
	Height            braced       `json:"height"`
	CollisionsEnabled *braced      `json:"collisionsEnabled"`
	Vertices          [][]braced   `json:"vertices-processed"`
	Rotation          braced       `json:"node-rotation"`
	TerrainOffset     braced       `json:"terrain-offset"`
	Anchor            braced       `json:"node-anchor"`
	Size              braced       `json:"size"`
	Strength          braced       `json:"strength"`
	Radius            braced       `json:"radius"`
	HazardLines       []braced     `json:"hazard-lines"`
	RotationActions   []gameAction `json:"rotation-actions"`
	PositionActions   []gameAction `json:"position-actions"`
	AcidMask          string       `json:"texture-acid-mask"`
	StickyMask        string       `json:"texture-sticky-mask"`
	Snapped           []gameSnap   `json:"snapped-nodes"`
}

type gameAction struct {
	Type         string `json:"type"`
	Period       braced `json:"period"`
	RotationRate braced `json:"rotation-rate"`
	MovePosition braced `json:"move-position"`
}

type gameSnap struct {
	ID               string `json:"id"`
	Type             string `json:"type"`
	Position         braced `json:"position"`
	RelativePosition braced `json:"relative-position"`
	Angle            braced `json:"angle"`
	Radius           braced `json:"radius"`
	Strength         braced `json:"strength"`
	Link             string `json:"linked-portal-id"`
	On               braced `json:"phaseOnDuration"`
	Off              braced `json:"phaseOffDuration"`
}

// ParseGame parses a level exported from the game. The first node's y and
// the second node's x give the playfield top and right edge.
func ParseGame(data []byte) (level.Level, error) {
	var gf gameFile
	if err := json.Unmarshal(data, &gf); err != nil {
		return level.Level{}, fmt.Errorf("json unmarshal: %w", err)
	}
	if len(gf.Nodes) < 2 {
		return level.Level{}, fmt.Errorf("export has %d nodes, need the two bound markers", len(gf.Nodes))
	}

	p := gameParser{byID: make(map[string]int)}
	var err error
	if p.lvl.Gravity, err = gf.Gravity.Float(); err != nil {
		return level.Level{}, fmt.Errorf("gravity: %w", err)
	}
	topNode, err := gf.Nodes[0].Position.Vec()
	if err != nil {
		return level.Level{}, fmt.Errorf("node %s: %w", gf.Nodes[0].ID, err)
	}
	rightNode, err := gf.Nodes[1].Position.Vec()
	if err != nil {
		return level.Level{}, fmt.Errorf("node %s: %w", gf.Nodes[1].ID, err)
	}
	p.lvl.Bounds = level.Bounds{
		Right:    rightNode.X + ScreenOffset.X,
		Top:      topNode.Y + ScreenOffset.Y,
		Floor:    0,
		WallBase: ScreenOffset.Y,
	}

	for i := range gf.Nodes {
		if err := p.node(&gf.Nodes[i]); err != nil {
			return level.Level{}, fmt.Errorf("node %s (%s): %w", gf.Nodes[i].ID, gf.Nodes[i].Type, err)
		}
	}
	return p.lvl, nil
}

type gameParser struct {
	lvl  level.Level
	byID map[string]int // body id -> index in lvl.Bodies
}

func (p *gameParser) body(id string) *level.Body {
	if i, ok := p.byID[id]; ok {
		return &p.lvl.Bodies[i]
	}
	return nil
}

func (p *gameParser) addBody(b level.Body) *level.Body {
	p.byID[b.ID] = len(p.lvl.Bodies)
	p.lvl.Bodies = append(p.lvl.Bodies, b)
	return &p.lvl.Bodies[len(p.lvl.Bodies)-1]
}

func (p *gameParser) node(n *gameNode) error {
	raw, err := n.Position.Vec()
	if err != nil {
		return err
	}
	pos := raw.Add(ScreenOffset)
	width, err := n.Width.Float()
	if err != nil {
		return err
	}
	height, err := n.Height.Float()
	if err != nil {
		return err
	}

	switch n.Type {
	case NodeTerrain:
		err = p.terrain(n, pos, width, height)
	case NodeGravityField:
		err = p.field(n, pos)
	case NodeSandTrap:
		err = p.hazard(n, pos, level.KindSand, true)
	case NodeWaterHazard:
		err = p.hazard(n, pos, level.KindWater, false)
	case NodeMagnet:
		err = p.magnet(n.Radius, n.Strength, pos)
	case NodeKillSaw:
		err = p.saw(n, pos)
	case NodeStart:
		p.lvl.Start, p.lvl.HasStart = pos, true
	case NodeFlag:
		p.lvl.Flag, p.lvl.HasFlag = pos, true
	}
	if err != nil {
		return err
	}

	if err := p.actions(n); err != nil {
		return err
	}
	if err := p.masks(n, pos, width, height); err != nil {
		return err
	}

	for i := range n.Snapped {
		if err := p.snapped(n, &n.Snapped[i], raw, pos, width, height); err != nil {
			return fmt.Errorf("snapped %s: %w", n.Snapped[i].Type, err)
		}
	}
	return nil
}

func (p *gameParser) terrain(n *gameNode, pos core.Vec, width, height float64) error {
	if n.CollisionsEnabled != nil {
		if on, err := n.CollisionsEnabled.Float(); err == nil && on == 0 {
			return nil
		}
	}
	rot, err := n.Rotation.Float()
	if err != nil {
		return err
	}
	center := core.V(width/2, height/2)
	b := level.Body{ID: n.ID, Position: pos, Angle: core.Deg2Rad(-rot)}

	for _, outline := range n.Vertices {
		pts := make([]core.Vec, 0, len(outline)+1)
		for _, v := range outline {
			xy, err := v.Vec()
			if err != nil {
				return err
			}
			pts = append(pts, xy.Sub(center))
		}
		if len(pts) == 0 {
			continue
		}
		pts = append(pts, pts[0])
		for i := 0; i+1 < len(pts); i++ {
			b.Segments = append(b.Segments, level.Segment{A: pts[i], B: pts[i+1], Kind: level.KindWall})
		}
	}
	p.addBody(b)
	return nil
}

func (p *gameParser) field(n *gameNode, pos core.Vec) error {
	size, err := n.Size.Vec()
	if err != nil {
		return err
	}
	anchor, err := n.Anchor.Vec()
	if err != nil {
		return err
	}
	strength, err := n.Strength.Float()
	if err != nil {
		return err
	}
	rot, err := n.Rotation.Float()
	if err != nil {
		return err
	}
	p.addBody(level.Body{
		ID:       n.ID,
		Position: pos,
		Angle:    core.Deg2Rad(-rot),
		Field: &level.GravityField{
			Min:      core.V(-size.X*anchor.X, -size.Y*anchor.Y),
			Max:      core.V(size.X*(1-anchor.X), size.Y*(1-anchor.Y)),
			Strength: strength,
			Rotation: core.Deg2Rad(rot),
		},
	})
	return nil
}

// hazard adds the box outline of a sand trap or water hazard. Sand traps
// without hazard lines are decorative.
func (p *gameParser) hazard(n *gameNode, pos core.Vec, kind level.Kind, optional bool) error {
	if len(n.HazardLines) == 0 {
		if optional {
			return nil
		}
		return fmt.Errorf("missing hazard-lines")
	}
	a, b, err := n.HazardLines[0].Pair()
	if err != nil {
		return err
	}
	body := level.Body{ID: n.ID, Position: pos}
	for _, e := range square(a, b) {
		body.Segments = append(body.Segments, level.Segment{A: e[0], B: e[1], Kind: kind})
	}
	p.addBody(body)
	return nil
}

func (p *gameParser) magnet(radius, strength braced, pos core.Vec) error {
	r, err := radius.Float()
	if err != nil {
		return err
	}
	s, err := strength.Float()
	if err != nil {
		return err
	}
	p.lvl.Magnets = append(p.lvl.Magnets, level.Magnet{Position: pos, Radius: r, Strength: s})
	return nil
}

func (p *gameParser) saw(n *gameNode, pos core.Vec) error {
	r, err := n.Radius.Float()
	if err != nil {
		return err
	}
	p.addBody(level.Body{
		ID:       n.ID,
		Position: pos,
		Circles:  []level.Circle{{Radius: r, Kind: level.KindSaw}},
	})
	return nil
}

// actions attaches rotation and translation sequences to the node's body.
// Position actions in the export are absolute offsets; they become
// per-step displacements.
func (p *gameParser) actions(n *gameNode) error {
	b := p.body(n.ID)
	if b == nil {
		return nil
	}
	for _, a := range n.RotationActions {
		period, err := a.Period.Float()
		if err != nil {
			return err
		}
		rate, err := a.RotationRate.Float()
		if err != nil {
			return err
		}
		b.Rotation = append(b.Rotation, level.Action{Type: a.Type, Period: period, Rate: rate})
	}

	var prev core.Vec
	for _, a := range n.PositionActions {
		period, err := a.Period.Float()
		if err != nil {
			return err
		}
		act := level.Action{Type: a.Type, Period: period}
		if a.Type == level.ActionPosition {
			at, err := a.MovePosition.Vec()
			if err != nil {
				return err
			}
			act.Move = at.Sub(prev)
			prev = at
		}
		b.Translation = append(b.Translation, act)
	}
	return nil
}

func (p *gameParser) masks(n *gameNode, pos core.Vec, width, height float64) error {
	if n.AcidMask == "" && n.StickyMask == "" {
		return nil
	}
	b := p.body(n.ID)
	if b == nil {
		return nil
	}
	w, h := int(width), int(height)
	var err error
	if n.AcidMask != "" {
		if b.Acid, err = decodeMask(n.AcidMask, pos, w, h, AcidGreen); err != nil {
			return fmt.Errorf("acid: %w", err)
		}
	}
	if n.StickyMask != "" {
		if b.Sticky, err = decodeMask(n.StickyMask, pos, w, h, StickyGreen); err != nil {
			return fmt.Errorf("sticky: %w", err)
		}
	}
	return nil
}

// snapped handles nodes attached to a parent. Start and flag are placed
// relative to the parent's terrain offset; portals and lasers live on the
// parent body in its local frame; magnets sit at the parent position.
func (p *gameParser) snapped(n *gameNode, s *gameSnap, raw, pos core.Vec, width, height float64) error {
	switch s.Type {
	case NodeStart, NodeFlag:
		at, err := s.Position.Vec()
		if err != nil {
			return err
		}
		offset, err := n.TerrainOffset.Vec()
		if err != nil {
			return err
		}
		world := raw.Add(ScreenOffset).Add(core.V(width, height).Mul(offset.Neg())).Add(at)
		if s.Type == NodeStart {
			p.lvl.Start, p.lvl.HasStart = world, true
		} else {
			p.lvl.Flag, p.lvl.HasFlag = world, true
		}

	case NodePortal:
		b := p.body(n.ID)
		if b == nil {
			return fmt.Errorf("portal %s has no parent body", s.ID)
		}
		at, err := s.RelativePosition.Vec()
		if err != nil {
			return err
		}
		a, err := s.Angle.Float()
		if err != nil {
			return err
		}
		r, err := s.Radius.Float()
		if err != nil {
			return err
		}
		half := core.V(-r*math.Sin(a)*10, r*math.Cos(a)*10)
		b.Portals = append(b.Portals, level.Portal{
			ID:    s.ID,
			Link:  s.Link,
			A:     at.Add(half),
			B:     at.Sub(half),
			Angle: a,
		})

	case NodeLaser:
		b := p.body(n.ID)
		if b == nil {
			return fmt.Errorf("laser has no parent body")
		}
		at, err := s.RelativePosition.Vec()
		if err != nil {
			return err
		}
		a, err := s.Angle.Float()
		if err != nil {
			return err
		}
		on, err := s.On.Float()
		if err != nil {
			return err
		}
		off, err := s.Off.Float()
		if err != nil {
			return err
		}
		b.Lasers = append(b.Lasers, level.Laser{Origin: at, Angle: a, On: on, Off: off})

	case NodeMagnet:
		return p.magnet(s.Radius, s.Strength, pos)
	}
	return nil
}
