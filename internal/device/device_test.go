package device

import (
	"bytes"
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/vovakirdan/shotfinder/internal/config"
)

func defaultPivot() Pivot {
	return PivotFromConfig(config.DefaultConfig().Device)
}

func TestSwipeGeometry(t *testing.T) {
	p := defaultPivot()
	tests := []struct {
		name   string
		angle  float64
		power  float64
		x2, y2 float64
	}{
		{"flat right pulls left", 0, 41.1, 360 - 400, 1073},
		{"straight up pulls down", 90, 41.1, 360, 1073 + 400},
		{"flat left pulls right", 180, 41.1, 360 + 400, 1073},
		{"half power doubles the pull", 0, 20.55, 360 - 800, 1073},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := p.Swipe(tt.angle, tt.power)
			require.NoError(t, err)
			assert.Equal(t, 360.0, g.X1)
			assert.Equal(t, 1073.0, g.Y1)
			assert.InDelta(t, tt.x2, g.X2, 1e-9)
			assert.InDelta(t, tt.y2, g.Y2, 1e-9)
			assert.Equal(t, 100*time.Millisecond, g.Duration)
		})
	}
}

func TestSwipeRejectsBadPower(t *testing.T) {
	p := defaultPivot()
	for _, power := range []float64{0, -1, math.NaN()} {
		_, err := p.Swipe(10, power)
		assert.Error(t, err, "power %v", power)
	}
}

func TestSwipeLengthScalesInversely(t *testing.T) {
	p := defaultPivot()
	rapid.Check(t, func(t *rapid.T) {
		angle := rapid.Float64Range(-180, 180).Draw(t, "angle")
		power := rapid.Float64Range(1, 100).Draw(t, "power")

		g, err := p.Swipe(angle, power)
		if err != nil {
			t.Fatalf("Swipe failed: %v", err)
		}
		length := math.Hypot(g.X2-g.X1, g.Y2-g.Y1)
		want := p.Radius * p.ReferencePower / power
		if math.Abs(length-want) > 1e-9*want {
			t.Fatalf("length %v, want %v", length, want)
		}
		// Pulling back: the launch direction points from the end to the pivot.
		dir := math.Atan2(-(g.Y1 - g.Y2), g.X1-g.X2)
		diff := math.Remainder(dir-angle*math.Pi/180, 2*math.Pi)
		if math.Abs(diff) > 1e-9 {
			t.Fatalf("direction %v rad, want %v deg", dir, angle)
		}
	})
}

func TestGestureArgs(t *testing.T) {
	g := Gesture{X1: 360, Y1: 1073, X2: -39.6, Y2: 1072.5, Duration: 100 * time.Millisecond}
	assert.Equal(t, []string{"input", "touchscreen", "swipe", "360", "1073", "-40", "1073", "100"}, g.Args())
}

type recordingRunner struct {
	name string
	args []string
	out  []byte
	err  error
}

func (r *recordingRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	r.name, r.args = name, args
	return r.out, r.err
}

func TestADBRunsSwipe(t *testing.T) {
	cfg := config.DefaultConfig().Device
	cfg.Serial = "emulator-5554"
	rr := &recordingRunner{}
	a := NewADB(cfg, nil, WithRunner(rr))

	g, err := PivotFromConfig(cfg).Swipe(90, 41.1)
	require.NoError(t, err)
	require.NoError(t, a.Swipe(context.Background(), g))

	assert.Equal(t, "adb", rr.name)
	assert.Equal(t, []string{"-s", "emulator-5554", "shell", "input", "touchscreen", "swipe", "360", "1073", "360", "1473", "100"}, rr.args)
}

func TestADBReportsFailureOutput(t *testing.T) {
	rr := &recordingRunner{out: []byte("error: no devices/emulators found\n"), err: errors.New("exit status 1")}
	a := NewADB(config.DefaultConfig().Device, nil, WithRunner(rr))

	err := a.Swipe(context.Background(), Gesture{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no devices")
}

func TestADBDryRunPrints(t *testing.T) {
	rr := &recordingRunner{}
	var buf bytes.Buffer
	a := NewADB(config.DefaultConfig().Device, nil, WithRunner(rr), WithDryRun(&buf))

	g, err := defaultPivot().Swipe(0, 41.1)
	require.NoError(t, err)
	require.NoError(t, a.Swipe(context.Background(), g))

	assert.Empty(t, rr.name, "dry run must not execute")
	assert.Equal(t, "adb shell input touchscreen swipe 360 1073 -40 1073 100", strings.TrimSpace(buf.String()))
}
