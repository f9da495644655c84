package search

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/shotfinder/internal/config"
	"github.com/vovakirdan/shotfinder/internal/shot"
)

// Shooter runs one complete trial. *shot.Simulator implements it.
type Shooter interface {
	Shoot(angle float64) shot.Outcome
}

// Engine drives a Shooter across angles.
type Engine struct {
	shooter Shooter
	cfg     config.SearchConfig
	logger  *log.Logger
}

// NewEngine creates an engine. A nil logger discards.
func NewEngine(sh Shooter, cfg config.SearchConfig, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Engine{shooter: sh, cfg: cfg, logger: logger}
}

// Spread is the most forgiving band of one width.
type Spread struct {
	Width  int     // tenths of a degree
	Angle  float64 // band center, degrees
	Sum    float64
	Window Window
}

// Result is what a sweep found.
type Result struct {
	Start   float64
	Trials  int
	Scores  *ScoreMap
	Best    *shot.Outcome // nil when no trial qualified
	Spreads []Spread      // ascending width
}

// Recommended returns the band of the narrowest width, the angle that
// gets persisted.
func (r *Result) Recommended() (Spread, bool) {
	if len(r.Spreads) == 0 {
		return Spread{}, false
	}
	return r.Spreads[0], true
}

// Sweep runs one trial per 0.1° from start for the configured budget and
// then ranks the spread bands. Cancellation is checked between trials; on
// cancellation the partial result is returned with ctx.Err().
func (e *Engine) Sweep(ctx context.Context, start float64) (*Result, error) {
	res := &Result{Start: start, Scores: NewScoreMap()}
	first := KeyOf(start)

	for i := 0; i < e.cfg.Trials; i++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		k := first + Key(i)
		if k%50 == 0 {
			e.logger.Debug("simulating", "angle", k.Angle())
		}

		o := e.shooter.Shoot(k.Angle())
		res.Scores.Put(k, o.Score)
		res.Trials++
		if o.Swish {
			e.logger.Debug("swish", "angle", o.Angle, "score", o.Score)
		}
		if e.better(o, res.Best) {
			best := o
			res.Best = &best
			e.logger.Info("better angle", "angle", o.Angle, "score", o.Score, "reason", o.Reason)
		}
	}

	res.Spreads = e.Spreads(res.Scores, start)
	return res, nil
}

// better reports whether o beats the current best. Deaths and scores at or
// over the cutoff never qualify; ties keep the earlier angle.
func (e *Engine) better(o shot.Outcome, best *shot.Outcome) bool {
	if o.Reason == shot.ReasonDead || o.Score >= e.cfg.BestCutoff {
		return false
	}
	return best == nil || o.Score < best.Score
}

// Spreads ranks the bands of every configured width over the scores
// recorded from start. The scan stops at the last simulated angle, so a
// short or interrupted sweep never ranks a band it did not reach.
func (e *Engine) Spreads(scores *ScoreMap, start float64) []Spread {
	lo := KeyOf(start)
	span := scores.reach(lo, e.cfg.Span)
	out := make([]Spread, 0, max(e.cfg.SpreadMax-e.cfg.SpreadMin, 0))
	for w := e.cfg.SpreadMin; w < e.cfg.SpreadMax; w++ {
		win, ok := BestWindow(scores, lo, span, w, e.cfg.GapPenalty)
		if !ok {
			continue
		}
		out = append(out, Spread{Width: w, Angle: win.Center(), Sum: win.Sum, Window: win})
	}
	return out
}
