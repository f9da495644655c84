package shot

import (
	"fmt"

	"github.com/vovakirdan/shotfinder/internal/core"
)

// Reason is why a trial ended.
type Reason int

const (
	ReasonNone Reason = iota // still running
	ReasonDead
	ReasonStuck
	ReasonStationary
	ReasonExitBottom
	ReasonExitTop
	ReasonTimeout
)

var reasonNames = [...]string{
	ReasonNone:       "running",
	ReasonDead:       "dead",
	ReasonStuck:      "stuck",
	ReasonStationary: "stationary",
	ReasonExitBottom: "exit-bottom",
	ReasonExitTop:    "exit-top",
	ReasonTimeout:    "timeout",
}

func (r Reason) String() string {
	if r < 0 || int(r) >= len(reasonNames) {
		return fmt.Sprintf("reason(%d)", int(r))
	}
	return reasonNames[r]
}

// Resting reports whether the ball came to rest on the course. Only
// resting outcomes are scored against the target.
func (r Reason) Resting() bool {
	return r == ReasonStuck || r == ReasonStationary
}

// Outcome is the terminal record of one trial.
type Outcome struct {
	Angle     float64 // degrees
	Reason    Reason
	Final     core.Vec
	Cycles    int
	Score     float64
	Splashed  bool
	Swish     bool
	Teleports int
}

func (o Outcome) String() string {
	s := fmt.Sprintf("%.1f° %s at (%.1f, %.1f) after %d cycles, score %.6g",
		o.Angle, o.Reason, o.Final.X, o.Final.Y, o.Cycles, o.Score)
	if o.Splashed {
		s += ", splashed"
	}
	if o.Swish {
		s += ", swish"
	}
	return s
}
