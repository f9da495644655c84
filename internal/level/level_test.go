package level

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/shotfinder/internal/core"
)

func validLevel() Level {
	return Level{
		ID:       "1",
		Gravity:  100,
		HasStart: true,
		HasFlag:  true,
		Bodies: []Body{
			{
				ID:        "rock",
				Kinematic: true,
				Portals: []Portal{
					{ID: "a", Link: "b"},
					{ID: "b", Link: "a"},
				},
				Lasers:   []Laser{{On: 1, Off: 0}},
				Rotation: []Action{{Type: ActionDelayRotation, Period: 0}, {Type: ActionRotate, Period: 2, Rate: 90}},
				Translation: []Action{
					{Type: ActionPosition, Period: 1, Move: core.V(10, 0)},
					{Type: ActionDelayPosition, Period: 1},
				},
			},
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(l *Level)
		code   string
	}{
		{"valid", func(l *Level) {}, ""},
		{"nan gravity", func(l *Level) { l.Gravity = math.NaN() }, "BAD_GRAVITY"},
		{"no start", func(l *Level) { l.HasStart = false }, "MISSING_START"},
		{"no flag", func(l *Level) { l.HasFlag = false }, "MISSING_FLAG"},
		{"unknown rotation action", func(l *Level) {
			l.Bodies[0].Rotation = append(l.Bodies[0].Rotation, Action{Type: "spin", Period: 1})
		}, "UNKNOWN_ACTION"},
		{"position type in rotation list", func(l *Level) {
			l.Bodies[0].Rotation = []Action{{Type: ActionPosition, Period: 1}}
		}, "UNKNOWN_ACTION"},
		{"zero period motion", func(l *Level) {
			l.Bodies[0].Translation[0].Period = 0
		}, "BAD_PERIOD"},
		{"negative delay", func(l *Level) {
			l.Bodies[0].Rotation[0].Period = -1
		}, "BAD_PERIOD"},
		{"dangling portal link", func(l *Level) { l.Bodies[0].Portals[1].Link = "c" }, "PORTAL_LINK"},
		{"self link", func(l *Level) { l.Bodies[0].Portals[0].Link = "a" }, "PORTAL_LINK"},
		{"duplicate portal", func(l *Level) {
			l.Bodies = append(l.Bodies, Body{ID: "other", Portals: []Portal{{ID: "a", Link: "b"}}})
		}, "PORTAL_LINK"},
		{"negative laser", func(l *Level) { l.Bodies[0].Lasers[0].Off = -0.5 }, "LASER_DURATION"},
		{"mask with hazards", func(l *Level) { l.Bodies[0].Acid = NewMask(0, 0, 2, 1, []bool{false, true}) }, ""},
		{"empty sticky mask", func(l *Level) { l.Bodies[0].Sticky = NewMask(0, 0, 2, 1, []bool{false, false}) }, "BAD_MASK"},
		{"short mask raster", func(l *Level) { l.Bodies[0].Acid = NewMask(0, 0, 2, 2, []bool{true}) }, "BAD_MASK"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := validLevel()
			tc.mutate(&l)
			err := l.Validate()

			if tc.code == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, expected nil", err)
				}
				return
			}
			var ve ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Validate() = %v, expected ValidationError", err)
			}
			if ve.Code != tc.code {
				t.Errorf("Validate() code = %s, expected %s", ve.Code, tc.code)
			}
		})
	}
}

func TestMaskContains(t *testing.T) {
	// 4x2 raster, top-left at world (100, 50); only the top-right pixel is hot
	hits := []bool{
		false, false, false, true,
		false, false, false, false,
	}
	m := NewMask(100, 50, 4, 2, hits)

	tests := []struct {
		name string
		p    core.Vec
		disp core.Vec
		want bool
	}{
		{"hot pixel", core.V(103, 50), core.Vec{}, true},
		{"cold pixel", core.V(101, 50), core.Vec{}, false},
		{"row below", core.V(103, 49), core.Vec{}, false},
		{"left of raster", core.V(90, 50), core.Vec{}, false},
		{"above raster", core.V(103, 60), core.Vec{}, false},
		{"body moved right", core.V(108, 50), core.V(5, 0), true},
		{"body moved up", core.V(103, 57), core.V(0, 7), true},
		{"moved away from point", core.V(103, 50), core.V(5, 0), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := m.Contains(tc.p, tc.disp); got != tc.want {
				t.Errorf("Contains(%v, %v) = %v, expected %v", tc.p, tc.disp, got, tc.want)
			}
		})
	}

	var none *Mask
	if none.Contains(core.V(0, 0), core.Vec{}) {
		t.Error("nil mask should never contain a point")
	}
	if m.Count() != 1 {
		t.Errorf("Count() = %d, expected 1", m.Count())
	}
}

func TestGravityFieldHover(t *testing.T) {
	f := GravityField{Strength: 100, Rotation: 0}
	h := f.Hover(0.033)
	if math.Abs(h.X) > 1e-12 || math.Abs(h.Y-3.3) > 1e-9 {
		t.Errorf("Hover() = %v, expected (0, 3.3)", h)
	}

	f.Rotation = math.Pi / 2
	h = f.Hover(0.033)
	if math.Abs(h.X-3.3) > 1e-9 || math.Abs(h.Y) > 1e-9 {
		t.Errorf("Hover() rotated = %v, expected (3.3, 0)", h)
	}
}

func TestLaserBeams(t *testing.T) {
	l := Laser{Origin: core.V(10, 10), Angle: math.Pi / 2, On: 2, Off: 3}
	if l.Period() != 5 {
		t.Errorf("Period() = %v, expected 5", l.Period())
	}
	_, sb := l.Sensor()
	_, bb := l.Beam()
	if math.Abs(sb.Y-90) > 1e-9 || math.Abs(bb.Y-210) > 1e-9 {
		t.Errorf("beam ends = %v, %v", sb, bb)
	}
}

func TestBoundaryBodyAndLookups(t *testing.T) {
	b := BoundaryBody(Bounds{Right: 500, Top: 3000, WallBase: 2500})
	if len(b.Segments) != 2 {
		t.Fatalf("BoundaryBody() has %d segments, expected 2", len(b.Segments))
	}
	if b.Segments[1].A.X != 500 || b.Segments[0].B.Y != 3000 {
		t.Errorf("unexpected walls %+v", b.Segments)
	}

	l := validLevel()
	if _, ok := l.Body("rock"); !ok {
		t.Error("Body(rock) not found")
	}
	refs := l.Portals()
	if len(refs) != 2 || refs["b"].Portal.Link != "a" {
		t.Errorf("Portals() = %+v", refs)
	}
	if k, ok := ParseKind("water"); !ok || k != KindWater {
		t.Errorf("ParseKind(water) = %v, %v", k, ok)
	}
}
