// Package device turns a solved shot into a touchscreen swipe on an
// Android phone through adb.
package device

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/vovakirdan/shotfinder/internal/config"
	"github.com/vovakirdan/shotfinder/internal/core"
)

// Pivot is where swipes start on the phone screen. A swipe of Radius
// pixels launches at ReferencePower; weaker shots swipe further.
type Pivot struct {
	CenterX        float64
	CenterY        float64
	Radius         float64
	ReferencePower float64
	Duration       time.Duration
}

// PivotFromConfig reads the pivot from the device section.
func PivotFromConfig(cfg config.DeviceConfig) Pivot {
	return Pivot{
		CenterX:        cfg.CenterX,
		CenterY:        cfg.CenterY,
		Radius:         cfg.Radius,
		ReferencePower: cfg.ReferencePower,
		Duration:       time.Duration(cfg.DurationMS) * time.Millisecond,
	}
}

// Gesture is one straight swipe in screen pixels.
type Gesture struct {
	X1, Y1   float64
	X2, Y2   float64
	Duration time.Duration
}

// Swipe returns the gesture for a shot at angle degrees. The finger pulls
// back from the pivot, opposite the launch direction; screen y grows
// downwards.
func (p Pivot) Swipe(angle, power float64) (Gesture, error) {
	if power <= 0 || math.IsNaN(power) {
		return Gesture{}, fmt.Errorf("device: power must be positive, got %v", power)
	}
	r := p.Radius * p.ReferencePower / power
	a := core.Deg2Rad(angle)
	return Gesture{
		X1:       p.CenterX,
		Y1:       p.CenterY,
		X2:       p.CenterX - r*math.Cos(a),
		Y2:       p.CenterY + r*math.Sin(a),
		Duration: p.Duration,
	}, nil
}

// Args returns the `input` arguments for the gesture, coordinates rounded
// to whole pixels.
func (g Gesture) Args() []string {
	px := func(v float64) string { return strconv.Itoa(int(math.Round(v))) }
	return []string{
		"input", "touchscreen", "swipe",
		px(g.X1), px(g.Y1), px(g.X2), px(g.Y2),
		strconv.FormatInt(g.Duration.Milliseconds(), 10),
	}
}
