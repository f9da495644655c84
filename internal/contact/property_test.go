package contact

import (
	"math"
	"testing"

	"pgregory.net/rapid"

	"github.com/vovakirdan/shotfinder/internal/core"
	"github.com/vovakirdan/shotfinder/internal/level"
)

func vecGen(lim float64) *rapid.Generator[core.Vec] {
	return rapid.Custom(func(t *rapid.T) core.Vec {
		return core.V(
			rapid.Float64Range(-lim, lim).Draw(t, "x"),
			rapid.Float64Range(-lim, lim).Draw(t, "y"),
		)
	})
}

func TestTunnelExitedNeverRegresses(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ghost := rapid.Float64Range(1, 30).Draw(t, "ghost")
		path := rapid.SliceOfN(vecGen(500), 1, 60).Draw(t, "path")

		phase, mark := TunnelIdle, core.Vec{}
		exited := false
		for i, p := range path {
			var d Decision
			prev := phase
			phase, mark, d = StepTunnel(phase, mark, p, ghost)

			if phase < prev {
				t.Fatalf("step %d: phase went back from %s to %s", i, prev, phase)
			}
			if exited && (phase != TunnelExited || d != Process) {
				t.Fatalf("step %d: left exited state (%s, %s)", i, phase, d)
			}
			if phase != TunnelExited && d != Suppress {
				t.Fatalf("step %d: %s must suppress, got %s", i, phase, d)
			}
			exited = phase == TunnelExited
		}
	})
}

func TestTunnelPassesOneLayer(t *testing.T) {
	const g = 15
	phase, mark := TunnelIdle, core.Vec{}
	steps := []struct {
		pos  core.Vec
		want TunnelPhase
	}{
		{core.V(100, 100), TunnelEntering},
		{core.V(100, 95), TunnelEntering}, // still in the entry box
		{core.V(100, 70), TunnelInside},   // moved beyond the ghost distance
		{core.V(100, 40), TunnelInside},   // far from the last capture
		{core.V(100, 35), TunnelExited},   // back within the ghost distance
		{core.V(100, 0), TunnelExited},
	}
	for i, s := range steps {
		phase, mark, _ = StepTunnel(phase, mark, s.pos, g)
		if phase != s.want {
			t.Fatalf("step %d at %v: phase = %s, want %s", i, s.pos, phase, s.want)
		}
	}
}

func TestTeleportRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		angle := rapid.Float64Range(-math.Pi, math.Pi).Draw(t, "angle")
		dir := core.FromAngle(rapid.Float64Range(-math.Pi, math.Pi).Draw(t, "dir"))
		half := rapid.Float64Range(1, 50).Draw(t, "half")
		ma := vecGen(1000).Draw(t, "midA")
		mb := vecGen(1000).Draw(t, "midB")
		pos := vecGen(1000).Draw(t, "pos")
		vel := vecGen(500).Draw(t, "vel")
		push := rapid.Float64Range(0, 30).Draw(t, "push")

		a := Gate{A: ma.Sub(dir.Scale(half)), B: ma.Add(dir.Scale(half)), Angle: angle}
		b := Gate{A: mb.Sub(dir.Scale(half)), B: mb.Add(dir.Scale(half)), Angle: angle}

		p1, v1 := Teleport(a, b, pos, vel, push)
		p2, v2 := Teleport(b, a, p1, v1, push)

		const eps = 1e-6
		if p2.Dist(pos) > eps || v2.Dist(vel) > eps {
			t.Fatalf("round trip moved the ball: pos %v -> %v, vel %v -> %v", pos, p2, vel, v2)
		}
	})
}

func TestMagnetInverseSquare(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		strength := rapid.Float64Range(-500, 500).Filter(func(s float64) bool { return math.Abs(s) > 1e-3 }).Draw(t, "strength")
		d := rapid.Float64Range(1, 100).Draw(t, "d")
		dir := core.FromAngle(rapid.Float64Range(-math.Pi, math.Pi).Draw(t, "dir"))
		m := []level.Magnet{{Position: core.V(10, 20), Radius: 1000, Strength: strength}}

		near := MagnetPull(m, m[0].Position.Add(dir.Scale(d)), 0.05, 10000)
		far := MagnetPull(m, m[0].Position.Add(dir.Scale(2*d)), 0.05, 10000)

		want := math.Abs(strength) / (d * d) * 0.05 * 10000
		if got := near.Len(); math.Abs(got-want) > 1e-9*want {
			t.Fatalf("|pull| at %v = %v, want %v", d, got, want)
		}
		if ratio := near.Len() / far.Len(); math.Abs(ratio-4) > 1e-9 {
			t.Fatalf("doubling distance scaled the pull by 1/%v, want 1/4", ratio)
		}
		if near.Dot(dir)*strength <= 0 {
			t.Fatalf("pull %v points the wrong way for strength %v", near, strength)
		}
	})
}

func TestMagnetRangeAndSuperposition(t *testing.T) {
	a := level.Magnet{Position: core.V(0, 0), Radius: 50, Strength: 100}
	b := level.Magnet{Position: core.V(20, 0), Radius: 50, Strength: 100}
	pos := core.V(10, 0)

	if got := MagnetPull([]level.Magnet{a, b}, pos, 1, 1); got.Len() > 1e-12 {
		t.Errorf("opposed magnets should cancel, got %v", got)
	}
	if got := MagnetPull([]level.Magnet{a}, core.V(60, 0), 1, 1); got != (core.Vec{}) {
		t.Errorf("outside radius got %v", got)
	}
	if got := MagnetPull([]level.Magnet{a}, a.Position, 1, 1); got != (core.Vec{}) {
		t.Errorf("at the magnet centre got %v", got)
	}
	single := MagnetPull([]level.Magnet{a}, pos, 1, 1)
	if math.Abs(single.X-1) > 1e-12 {
		t.Errorf("single pull = %v, want (1, 0)", single)
	}
}
