package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/vovakirdan/shotfinder/internal/config"
	"github.com/vovakirdan/shotfinder/internal/shot"
)

// scripted answers each angle from a table keyed by tenths of a degree.
type scripted struct {
	outcomes map[Key]shot.Outcome
	fallback shot.Outcome
	calls    []float64
	onShoot  func(n int)
}

func (s *scripted) Shoot(angle float64) shot.Outcome {
	s.calls = append(s.calls, angle)
	if s.onShoot != nil {
		s.onShoot(len(s.calls))
	}
	o, ok := s.outcomes[KeyOf(angle)]
	if !ok {
		o = s.fallback
	}
	o.Angle = angle
	return o
}

func resting(score float64) shot.Outcome {
	return shot.Outcome{Reason: shot.ReasonStationary, Score: score}
}

func searchConfig(trials int) config.SearchConfig {
	cfg := config.DefaultConfig().Search
	cfg.Trials = trials
	cfg.SpreadMin = 3
	cfg.SpreadMax = 6
	cfg.Span = trials
	return cfg
}

func TestSweepFindsBestAngle(t *testing.T) {
	sh := &scripted{
		fallback: shot.Outcome{Reason: shot.ReasonTimeout, Score: 1e16},
		outcomes: map[Key]shot.Outcome{
			102: resting(400),
			104: {Reason: shot.ReasonDead, Score: 1},     // deaths never win
			105: {Reason: shot.ReasonStuck, Score: 1e11}, // over the cutoff
			107: resting(100),
			109: resting(100), // tie, first seen wins
		},
	}
	e := NewEngine(sh, searchConfig(20), nil)

	res, err := e.Sweep(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, 20, res.Trials)
	assert.Equal(t, 20, res.Scores.Len())
	require.NotNil(t, res.Best)
	assert.InDelta(t, 10.7, res.Best.Angle, 1e-9)
	assert.Equal(t, 100.0, res.Best.Score)

	keys := res.Scores.Keys()
	for i, k := range keys {
		assert.Equal(t, Key(100+i), k, "keys follow sweep order")
	}
	assert.InDelta(t, 10.0, sh.calls[0], 1e-12)
	assert.InDelta(t, 11.9, sh.calls[19], 1e-12)
}

func TestSweepWithoutQualifyingAngle(t *testing.T) {
	sh := &scripted{fallback: shot.Outcome{Reason: shot.ReasonExitBottom, Score: 1e16}}
	res, err := NewEngine(sh, searchConfig(10), nil).Sweep(context.Background(), 0)
	require.NoError(t, err)
	assert.Nil(t, res.Best)
}

func TestSweepStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sh := &scripted{fallback: resting(1), onShoot: func(n int) {
		if n == 5 {
			cancel()
		}
	}}

	res, err := NewEngine(sh, searchConfig(100), nil).Sweep(ctx, 0)

	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 5, res.Trials)
	assert.Len(t, sh.calls, 5)
	assert.Empty(t, res.Spreads)
}

func TestSpreadsPickTheQuietestBand(t *testing.T) {
	outcomes := map[Key]shot.Outcome{}
	for k := Key(0); k < 30; k++ {
		outcomes[k] = resting(1000)
	}
	for k := Key(12); k < 17; k++ {
		outcomes[k] = resting(1)
	}
	sh := &scripted{outcomes: outcomes}
	res, err := NewEngine(sh, searchConfig(30), nil).Sweep(context.Background(), 0)
	require.NoError(t, err)

	require.Len(t, res.Spreads, 3)
	for _, s := range res.Spreads {
		assert.GreaterOrEqual(t, int(s.Window.Start), 12, "width %d", s.Width)
		assert.LessOrEqual(t, int(s.Window.Start)+s.Width, 17, "width %d", s.Width)
	}
	rec, ok := res.Recommended()
	require.True(t, ok)
	assert.Equal(t, 3, rec.Width)
	assert.InDelta(t, 1.3, rec.Angle, 1e-9)
}

func TestShortSweepRanksOnlySimulatedAngles(t *testing.T) {
	cfg := searchConfig(40)
	cfg.Span = 100
	sh := &scripted{fallback: resting(640000)}

	res, err := NewEngine(sh, cfg, nil).Sweep(context.Background(), -2)
	require.NoError(t, err)

	require.Len(t, res.Spreads, 3)
	for _, s := range res.Spreads {
		assert.GreaterOrEqual(t, int(s.Window.Start), -20, "width %d", s.Width)
		assert.LessOrEqual(t, int(s.Window.Start)+s.Width, 20, "width %d", s.Width)
		assert.Equal(t, float64(s.Width)*640000, s.Sum, "width %d", s.Width)
	}
	rec, ok := res.Recommended()
	require.True(t, ok)
	assert.InDelta(t, -1.9, rec.Angle, 1e-9)
}

func TestSweepShorterThanEveryWidth(t *testing.T) {
	cfg := searchConfig(2)
	cfg.Span = 100
	res, err := NewEngine(&scripted{fallback: resting(1)}, cfg, nil).Sweep(context.Background(), 0)
	require.NoError(t, err)

	assert.Empty(t, res.Spreads)
	_, ok := res.Recommended()
	assert.False(t, ok)
}

func TestInterruptedSweepRanksPartialScores(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sh := &scripted{fallback: resting(640000), onShoot: func(n int) {
		if n == 12 {
			cancel()
		}
	}}
	e := NewEngine(sh, searchConfig(100), nil)

	res, err := e.Sweep(ctx, 0)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 12, res.Trials)

	spreads := e.Spreads(res.Scores, res.Start)
	require.Len(t, spreads, 3)
	for _, s := range spreads {
		assert.LessOrEqual(t, int(s.Window.Start)+s.Width, 12, "width %d", s.Width)
		assert.Equal(t, float64(s.Width)*640000, s.Sum, "width %d", s.Width)
	}
}

func TestBestWindowGapsCostPenalty(t *testing.T) {
	m := NewScoreMap()
	for _, k := range []Key{0, 1, 2, 4, 5, 6} {
		m.Put(k, 10)
	}
	w, ok := BestWindow(m, 0, 7, 3, 99999)
	require.True(t, ok)
	assert.Equal(t, Key(0), w.Start)
	assert.Equal(t, 30.0, w.Sum)

	_, ok = BestWindow(m, 0, 7, 8, 99999)
	assert.False(t, ok)
}

func TestWindowCenter(t *testing.T) {
	assert.InDelta(t, 1.1, Window{Start: 10, Width: 3}.Center(), 1e-12)
	assert.InDelta(t, 1.15, Window{Start: 10, Width: 4}.Center(), 1e-12)
}

func TestScoreMapReplaceKeepsOrder(t *testing.T) {
	m := NewScoreMap()
	m.Put(5, 1)
	m.Put(3, 2)
	m.Put(5, 7)
	assert.Equal(t, []Key{5, 3}, m.Keys())
	s, ok := m.Get(5)
	assert.True(t, ok)
	assert.Equal(t, 7.0, s)
}

func bruteForce(m *ScoreMap, lo Key, span, width int, gap float64) Window {
	var best Window
	for start := lo; start+Key(width) <= lo+Key(span); start++ {
		sum := 0.0
		for k := start; k < start+Key(width); k++ {
			sum += m.lookup(k, gap)
		}
		if start == lo || sum < best.Sum {
			best = Window{Start: start, Width: width, Sum: sum}
		}
	}
	return best
}

func TestBestWindowMatchesBruteForce(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lo := Key(rapid.IntRange(-900, 900).Draw(t, "lo"))
		m := NewScoreMap()
		for i := 0; i < 100; i++ {
			if rapid.IntRange(0, 9).Draw(t, "hole") == 0 {
				continue
			}
			m.Put(lo+Key(i), float64(rapid.IntRange(0, 1_000_000).Draw(t, "score")))
		}
		for _, width := range []int{1, 2, 7, 35, 50, 99, 100} {
			got, ok := BestWindow(m, lo, 100, width, 99999)
			if !ok {
				t.Fatalf("width %d did not fit", width)
			}
			want := bruteForce(m, lo, 100, width, 99999)
			if got != want {
				t.Fatalf("width %d: sliding %+v, brute force %+v", width, got, want)
			}
		}
	})
}

func TestSpreadMode(t *testing.T) {
	outcomes := map[Key]shot.Outcome{}
	sh := &scripted{fallback: resting(5), outcomes: outcomes}
	// 3.4 wide around 20: angles 18.3 .. 21.6; fail two of them.
	outcomes[183] = shot.Outcome{Reason: shot.ReasonDead, Score: 1e16}
	outcomes[193] = shot.Outcome{Reason: shot.ReasonExitTop, Score: 1e16}

	rep, err := NewEngine(sh, searchConfig(10), nil).Spread(context.Background(), 20, 3.4)
	require.NoError(t, err)

	assert.Equal(t, 34, rep.Steps)
	assert.Len(t, rep.Outcomes, 34)
	assert.Len(t, sh.calls, 35)
	assert.InDelta(t, 18.3, sh.calls[0], 1e-9)
	assert.InDelta(t, 21.6, sh.calls[33], 1e-9)
	assert.InDelta(t, 20, sh.calls[34], 1e-12)
	assert.Equal(t, 2, rep.Failures)
	assert.InDelta(t, 32.0/34.0, rep.Rate(), 1e-12)
	assert.Equal(t, 20.0, rep.CenterShot.Angle)
	assert.Zero(t, SpreadReport{}.Rate())
}
