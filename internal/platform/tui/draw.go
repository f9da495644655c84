package tui

import (
	"fmt"
	"math"

	"github.com/vovakirdan/shotfinder/internal/contact"
	"github.com/vovakirdan/shotfinder/internal/core"
	"github.com/vovakirdan/shotfinder/internal/level"
	"github.com/vovakirdan/shotfinder/internal/shot"
)

// statusRows are reserved below the playfield.
const statusRows = 2

// Viewport maps world coordinates (y up) onto screen cells (y down). It
// keeps the aspect ratio, with a terminal cell twice as tall as wide.
type Viewport struct {
	Min, Max core.Vec // visible world box
	W, H     int      // playfield size in cells
	scale    float64  // cells per world unit, horizontally
}

// Fit returns a viewport showing box in a w x h cell area.
func Fit(minV, maxV core.Vec, w, h int) Viewport {
	v := Viewport{Min: minV, Max: maxV, W: max(w, 1), H: max(h, 1)}
	dx := math.Max(maxV.X-minV.X, 1)
	dy := math.Max(maxV.Y-minV.Y, 1)
	v.scale = math.Min(float64(v.W)/dx, 2*float64(v.H)/dy)
	return v
}

// Cell returns the screen cell of world point p.
func (v Viewport) Cell(p core.Vec) (int, int) {
	x := (p.X - v.Min.X) * v.scale
	y := (v.Max.Y - p.Y) * v.scale / 2
	return int(math.Round(x)), int(math.Round(y))
}

// LevelBox returns the world box worth showing: the playfield width and
// the vertical extent of everything placed in the level, with a margin.
func LevelBox(lvl *level.Level) (core.Vec, core.Vec) {
	minV := core.V(0, math.Inf(1))
	maxV := core.V(lvl.Bounds.Right, math.Inf(-1))
	grow := func(p core.Vec) {
		minV = core.V(math.Min(minV.X, p.X), math.Min(minV.Y, p.Y))
		maxV = core.V(math.Max(maxV.X, p.X), math.Max(maxV.Y, p.Y))
	}
	grow(lvl.Start)
	grow(lvl.Flag)
	for i := range lvl.Bodies {
		b := &lvl.Bodies[i]
		pose := shot.Pose{Position: b.Position, Angle: b.Angle}
		for _, s := range b.Segments {
			grow(toWorld(pose, s.A))
			grow(toWorld(pose, s.B))
		}
		for _, c := range b.Circles {
			grow(toWorld(pose, c.Offset))
		}
	}
	for _, m := range lvl.Magnets {
		grow(m.Position)
	}
	margin := math.Max((maxV.Y-minV.Y)*0.05, 20)
	return minV.Sub(core.V(0, margin)), maxV.Add(core.V(0, margin))
}

func toWorld(p shot.Pose, local core.Vec) core.Vec {
	return p.Position.Add(local.Rotate(p.Angle))
}

// kindColors picks the color of a shape kind.
var kindColors = map[level.Kind]core.Color{
	level.KindBoundary: core.ColorWall,
	level.KindWall:     core.ColorTerrain,
	level.KindSand:     core.ColorSand,
	level.KindWater:    core.ColorWater,
	level.KindSaw:      core.ColorSaw,
	level.KindPortal:   core.ColorPortal,
	level.KindLaser:    core.ColorLaser,
}

// DrawFrame draws the level at the poses of f, the ball trail and a
// status line.
func DrawFrame(s *core.Screen, v Viewport, lvl *level.Level, f shot.Frame, trail []core.Vec, status string) {
	s.Clear()
	line := func(a, b core.Vec, c core.Cell) {
		x0, y0 := v.Cell(a)
		x1, y1 := v.Cell(b)
		s.DrawLine(x0, y0, x1, y1, c)
	}
	point := func(p core.Vec, r rune, color core.Color) {
		x, y := v.Cell(p)
		if y < v.H {
			s.SetCell(x, y, core.Cell{Rune: r, Color: color})
		}
	}

	wall := level.BoundaryBody(lvl.Bounds)
	for _, seg := range wall.Segments {
		line(seg.A, seg.B, core.Cell{Rune: '|', Color: core.ColorWall})
	}

	for i := range lvl.Bodies {
		b := &lvl.Bodies[i]
		pose := shot.Pose{Position: b.Position, Angle: b.Angle}
		if i < len(f.Poses) {
			pose = f.Poses[i]
		}
		if b.Field != nil {
			fl := b.Field
			corners := []core.Vec{fl.Min, core.V(fl.Max.X, fl.Min.Y), fl.Max, core.V(fl.Min.X, fl.Max.Y), fl.Min}
			for j := 0; j+1 < len(corners); j++ {
				line(toWorld(pose, corners[j]), toWorld(pose, corners[j+1]), core.Cell{Rune: '.', Color: core.ColorField})
			}
		}
		for _, seg := range b.Segments {
			color := kindColors[seg.Kind]
			if seg.Kind == level.KindWall && b.Moving() {
				color = core.ColorMoving
			}
			line(toWorld(pose, seg.A), toWorld(pose, seg.B), core.Cell{Rune: '#', Color: color})
		}
		for _, c := range b.Circles {
			center := toWorld(pose, c.Offset)
			for k := 0; k < 12; k++ {
				a := float64(k) * math.Pi / 6
				point(center.Add(core.FromAngle(a).Scale(c.Radius)), '*', kindColors[c.Kind])
			}
		}
		for _, p := range b.Portals {
			line(toWorld(pose, p.A), toWorld(pose, p.B), core.Cell{Rune: '@', Color: core.ColorPortal})
		}
		for _, lz := range b.Lasers {
			a, e := lz.Beam()
			r := '-'
			if !contact.Lethal(lz, f.Now) {
				r = '\''
			}
			line(toWorld(pose, a), toWorld(pose, e), core.Cell{Rune: r, Color: core.ColorLaser})
		}
	}

	for _, m := range lvl.Magnets {
		point(m.Position, 'M', core.ColorMagnet)
	}
	for _, p := range trail {
		point(p, '·', core.ColorTrail)
	}
	point(lvl.Flag, 'F', core.ColorFlag)
	point(f.Ball, 'O', core.ColorBall)

	s.DrawText(0, v.H, status, core.ColorText)
}

// Status formats the status line of a frame.
func Status(lvl *level.Level, angle float64, f shot.Frame, o shot.Outcome, paused bool, stride int) string {
	state := "holding"
	switch {
	case f.State == shot.StateTerminal:
		state = o.Reason.String()
	case f.State == shot.StateRunning:
		state = "flying"
	}
	if paused {
		state += " (paused)"
	}
	line := fmt.Sprintf("%s  angle %.1f°  t %.2f  cycle %d  x%d  %s", lvl.ID, angle, f.Now, f.Cycle, stride, state)
	if f.Splashed {
		line += "  splashed"
	}
	if f.State == shot.StateTerminal {
		line += fmt.Sprintf("  score %.0f", o.Score)
	}
	return line
}
