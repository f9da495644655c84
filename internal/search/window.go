package search

// Window is a band of consecutive keys and its summed score.
type Window struct {
	Start Key
	Width int // keys
	Sum   float64
}

// Center returns the middle of the band in degrees.
func (w Window) Center() float64 {
	return (float64(w.Start) + float64(w.Width-1)/2) / 10
}

// BestWindow slides a width-key window over [lo, lo+span) and returns the
// one with the lowest sum, the first one on ties. Unrecorded keys cost gap.
// ok is false when the window does not fit the span.
func BestWindow(m *ScoreMap, lo Key, span, width int, gap float64) (best Window, ok bool) {
	if width <= 0 || width > span {
		return Window{}, false
	}
	sum := 0.0
	for k := lo; k < lo+Key(width); k++ {
		sum += m.lookup(k, gap)
	}
	best = Window{Start: lo, Width: width, Sum: sum}

	last := lo + Key(span-width)
	for start := lo + 1; start <= last; start++ {
		sum += m.lookup(start+Key(width-1), gap)
		sum -= m.lookup(start-1, gap)
		if sum < best.Sum {
			best = Window{Start: start, Width: width, Sum: sum}
		}
	}
	return best, true
}
