package search

import (
	"context"
	"math"

	"github.com/vovakirdan/shotfinder/internal/shot"
)

// SpreadReport is the result of replaying a band of angles around a center.
type SpreadReport struct {
	Center     float64
	Width      float64 // degrees
	Steps      int
	Failures   int
	Outcomes   []shot.Outcome // one per step, ascending angle
	CenterShot shot.Outcome   // the center angle itself
}

// Rate returns the share of steps that came to rest.
func (r SpreadReport) Rate() float64 {
	if r.Steps == 0 {
		return 0
	}
	return float64(r.Steps-r.Failures) / float64(r.Steps)
}

// Spread shoots width/0.1 angles from center-width/2 in 0.1° steps, then
// the center once. A step fails when the ball does not come to rest.
func (e *Engine) Spread(ctx context.Context, center, width float64) (SpreadReport, error) {
	steps := int(math.Round(width * 10))
	rep := SpreadReport{Center: center, Width: width, Steps: steps}

	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		angle := (KeyOf(center) + Key(i)).Angle() - width/2
		o := e.shooter.Shoot(angle)
		if !o.Reason.Resting() {
			rep.Failures++
			e.logger.Debug("spread miss", "angle", angle, "reason", o.Reason)
		}
		rep.Outcomes = append(rep.Outcomes, o)
	}
	if err := ctx.Err(); err != nil {
		return rep, err
	}
	rep.CenterShot = e.shooter.Shoot(center)
	e.logger.Info("spread", "center", center, "width", width,
		"success", rep.Steps-rep.Failures, "steps", rep.Steps, "rate", rep.Rate())
	return rep, nil
}
