package formats

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/shotfinder/internal/core"
	"github.com/vovakirdan/shotfinder/internal/level"
)

// YAMLLevel is a hand-written, already materialized level. Angles are in
// degrees; coordinates are world units with y up.
type YAMLLevel struct {
	ID      string       `yaml:"id"`
	Course  string       `yaml:"course,omitempty"`
	Name    string       `yaml:"name"`
	Gravity float64      `yaml:"gravity"`
	Bounds  YAMLBounds   `yaml:"bounds"`
	Start   []float64    `yaml:"start"`
	Flag    []float64    `yaml:"flag"`
	Bodies  []YAMLBody   `yaml:"bodies"`
	Magnets []YAMLMagnet `yaml:"magnets,omitempty"`
}

// YAMLBounds is the playfield.
type YAMLBounds struct {
	Right    float64 `yaml:"right"`
	Top      float64 `yaml:"top"`
	Floor    float64 `yaml:"floor"`
	WallBase float64 `yaml:"wall_base"`
}

// YAMLBody is one rigid object.
type YAMLBody struct {
	ID          string        `yaml:"id"`
	Kinematic   bool          `yaml:"kinematic,omitempty"`
	Position    []float64     `yaml:"position,omitempty"`
	Angle       float64       `yaml:"angle,omitempty"`
	Segments    []YAMLSegment `yaml:"segments,omitempty"`
	Circles     []YAMLCircle  `yaml:"circles,omitempty"`
	Field       *YAMLField    `yaml:"field,omitempty"`
	Rotation    []YAMLAction  `yaml:"rotation,omitempty"`
	Translation []YAMLAction  `yaml:"translation,omitempty"`
	Acid        *YAMLMask     `yaml:"acid,omitempty"`
	Sticky      *YAMLMask     `yaml:"sticky,omitempty"`
	Portals     []YAMLPortal  `yaml:"portals,omitempty"`
	Lasers      []YAMLLaser   `yaml:"lasers,omitempty"`
}

type YAMLSegment struct {
	A    []float64 `yaml:"a"`
	B    []float64 `yaml:"b"`
	Kind string    `yaml:"kind,omitempty"` // default wall
}

type YAMLCircle struct {
	Offset []float64 `yaml:"offset,omitempty"`
	Radius float64   `yaml:"radius"`
	Kind   string    `yaml:"kind,omitempty"` // default saw
}

type YAMLField struct {
	Min      []float64 `yaml:"min"`
	Max      []float64 `yaml:"max"`
	Strength float64   `yaml:"strength"`
	Rotation float64   `yaml:"rotation,omitempty"`
}

type YAMLAction struct {
	Type   string    `yaml:"type"`
	Period float64   `yaml:"period"`
	Rate   float64   `yaml:"rate,omitempty"`
	Move   []float64 `yaml:"move,omitempty"`
}

// YAMLMask draws a hazard raster: one string per row from the top, '#'
// marks a hazard pixel.
type YAMLMask struct {
	Left float64  `yaml:"left"`
	Top  float64  `yaml:"top"`
	Rows []string `yaml:"rows"`
}

type YAMLPortal struct {
	ID    string    `yaml:"id"`
	Link  string    `yaml:"link"`
	A     []float64 `yaml:"a"`
	B     []float64 `yaml:"b"`
	Angle float64   `yaml:"angle"`
}

type YAMLLaser struct {
	Origin []float64 `yaml:"origin"`
	Angle  float64   `yaml:"angle"`
	On     float64   `yaml:"on"`
	Off    float64   `yaml:"off"`
}

type YAMLMagnet struct {
	Position []float64 `yaml:"position"`
	Radius   float64   `yaml:"radius"`
	Strength float64   `yaml:"strength"`
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (level.Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return level.Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	lvl := level.Level{
		ID:      yl.ID,
		Course:  yl.Course,
		Name:    yl.Name,
		Gravity: yl.Gravity,
		Bounds: level.Bounds{
			Right:    yl.Bounds.Right,
			Top:      yl.Bounds.Top,
			Floor:    yl.Bounds.Floor,
			WallBase: yl.Bounds.WallBase,
		},
	}
	var err error
	if yl.Start != nil {
		if lvl.Start, err = vec(yl.Start); err != nil {
			return level.Level{}, fmt.Errorf("start: %w", err)
		}
		lvl.HasStart = true
	}
	if yl.Flag != nil {
		if lvl.Flag, err = vec(yl.Flag); err != nil {
			return level.Level{}, fmt.Errorf("flag: %w", err)
		}
		lvl.HasFlag = true
	}

	for _, yb := range yl.Bodies {
		b, err := yb.body()
		if err != nil {
			return level.Level{}, fmt.Errorf("body %s: %w", yb.ID, err)
		}
		lvl.Bodies = append(lvl.Bodies, b)
	}
	for i, ym := range yl.Magnets {
		pos, err := vec(ym.Position)
		if err != nil {
			return level.Level{}, fmt.Errorf("magnet %d: %w", i, err)
		}
		lvl.Magnets = append(lvl.Magnets, level.Magnet{Position: pos, Radius: ym.Radius, Strength: ym.Strength})
	}
	return lvl, nil
}

func (yb YAMLBody) body() (level.Body, error) {
	b := level.Body{ID: yb.ID, Kinematic: yb.Kinematic, Angle: core.Deg2Rad(yb.Angle)}
	var err error
	if yb.Position != nil {
		if b.Position, err = vec(yb.Position); err != nil {
			return b, fmt.Errorf("position: %w", err)
		}
	}

	for i, s := range yb.Segments {
		seg := level.Segment{Kind: level.KindWall}
		if seg.A, err = vec(s.A); err != nil {
			return b, fmt.Errorf("segment %d: %w", i, err)
		}
		if seg.B, err = vec(s.B); err != nil {
			return b, fmt.Errorf("segment %d: %w", i, err)
		}
		if s.Kind != "" {
			if seg.Kind, err = kind(s.Kind); err != nil {
				return b, fmt.Errorf("segment %d: %w", i, err)
			}
		}
		b.Segments = append(b.Segments, seg)
	}

	for i, c := range yb.Circles {
		circle := level.Circle{Radius: c.Radius, Kind: level.KindSaw}
		if c.Offset != nil {
			if circle.Offset, err = vec(c.Offset); err != nil {
				return b, fmt.Errorf("circle %d: %w", i, err)
			}
		}
		if c.Kind != "" {
			if circle.Kind, err = kind(c.Kind); err != nil {
				return b, fmt.Errorf("circle %d: %w", i, err)
			}
		}
		b.Circles = append(b.Circles, circle)
	}

	if f := yb.Field; f != nil {
		field := level.GravityField{Strength: f.Strength, Rotation: core.Deg2Rad(f.Rotation)}
		if field.Min, err = vec(f.Min); err != nil {
			return b, fmt.Errorf("field: %w", err)
		}
		if field.Max, err = vec(f.Max); err != nil {
			return b, fmt.Errorf("field: %w", err)
		}
		b.Field = &field
	}

	if b.Rotation, err = actions(yb.Rotation); err != nil {
		return b, fmt.Errorf("rotation: %w", err)
	}
	if b.Translation, err = actions(yb.Translation); err != nil {
		return b, fmt.Errorf("translation: %w", err)
	}

	if b.Acid, err = yb.Acid.mask(); err != nil {
		return b, fmt.Errorf("acid: %w", err)
	}
	if b.Sticky, err = yb.Sticky.mask(); err != nil {
		return b, fmt.Errorf("sticky: %w", err)
	}

	for _, yp := range yb.Portals {
		pt := level.Portal{ID: yp.ID, Link: yp.Link, Angle: core.Deg2Rad(yp.Angle)}
		if pt.A, err = vec(yp.A); err != nil {
			return b, fmt.Errorf("portal %s: %w", yp.ID, err)
		}
		if pt.B, err = vec(yp.B); err != nil {
			return b, fmt.Errorf("portal %s: %w", yp.ID, err)
		}
		b.Portals = append(b.Portals, pt)
	}

	for i, yl := range yb.Lasers {
		lz := level.Laser{Angle: core.Deg2Rad(yl.Angle), On: yl.On, Off: yl.Off}
		if lz.Origin, err = vec(yl.Origin); err != nil {
			return b, fmt.Errorf("laser %d: %w", i, err)
		}
		b.Lasers = append(b.Lasers, lz)
	}
	return b, nil
}

func actions(in []YAMLAction) ([]level.Action, error) {
	var out []level.Action
	for _, a := range in {
		act := level.Action{Type: a.Type, Period: a.Period, Rate: a.Rate}
		if a.Move != nil {
			m, err := vec(a.Move)
			if err != nil {
				return nil, err
			}
			act.Move = m
		}
		out = append(out, act)
	}
	return out, nil
}

func (m *YAMLMask) mask() (*level.Mask, error) {
	if m == nil || len(m.Rows) == 0 {
		return nil, nil
	}
	w := len(m.Rows[0])
	hits := make([]bool, 0, w*len(m.Rows))
	for i, row := range m.Rows {
		if len(row) != w {
			return nil, fmt.Errorf("row %d is %d wide, want %d", i, len(row), w)
		}
		for _, c := range row {
			hits = append(hits, c == '#')
		}
	}
	mask := level.NewMask(m.Left, m.Top, w, len(m.Rows), hits)
	if mask.Count() == 0 {
		return nil, nil
	}
	return mask, nil
}

func kind(s string) (level.Kind, error) {
	k, ok := level.ParseKind(strings.ToLower(s))
	if !ok {
		return k, fmt.Errorf("unknown surface %q", s)
	}
	return k, nil
}

func vec(xy []float64) (core.Vec, error) {
	if len(xy) != 2 {
		return core.Vec{}, fmt.Errorf("want [x, y], got %v", xy)
	}
	return core.V(xy[0], xy[1]), nil
}

// FormatExtensions returns supported file extensions, longest first.
func FormatExtensions() []string {
	return []string{".plist.json", ".json", ".yaml", ".yml"}
}
