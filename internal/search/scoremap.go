// Package search sweeps launch angles through the shot simulator and picks
// the best single angle and the most forgiving band of angles.
package search

import "math"

// Key is an angle in tenths of a degree.
type Key int

// KeyOf rounds angle degrees to its key.
func KeyOf(angle float64) Key {
	return Key(math.Round(angle * 10))
}

// Angle returns the key in degrees.
func (k Key) Angle() float64 {
	return float64(k) / 10
}

// ScoreMap keeps one score per key. Keys iterate in insertion order.
type ScoreMap struct {
	keys   []Key
	scores map[Key]float64
}

func NewScoreMap() *ScoreMap {
	return &ScoreMap{scores: make(map[Key]float64)}
}

// Put records score under k, replacing an earlier score in place.
func (m *ScoreMap) Put(k Key, score float64) {
	if _, ok := m.scores[k]; !ok {
		m.keys = append(m.keys, k)
	}
	m.scores[k] = score
}

func (m *ScoreMap) Get(k Key) (float64, bool) {
	s, ok := m.scores[k]
	return s, ok
}

func (m *ScoreMap) Len() int { return len(m.keys) }

// Keys returns the keys in insertion order.
func (m *ScoreMap) Keys() []Key {
	return append([]Key(nil), m.keys...)
}

// lookup returns the score at k or gap when k was never recorded.
func (m *ScoreMap) lookup(k Key, gap float64) float64 {
	if s, ok := m.scores[k]; ok {
		return s
	}
	return gap
}

// reach returns the length of the prefix of [lo, lo+span) that ends at the
// last recorded key in that range, zero when none is recorded.
func (m *ScoreMap) reach(lo Key, span int) int {
	n := 0
	for _, k := range m.keys {
		if k >= lo && k < lo+Key(span) && int(k-lo) >= n {
			n = int(k-lo) + 1
		}
	}
	return n
}
