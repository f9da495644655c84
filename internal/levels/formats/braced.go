package formats

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vovakirdan/shotfinder/internal/core"
)

// braced is a value from the game export. The export writes numbers either
// as JSON numbers or as strings, and coordinates as brace lists such as
// "{12.5,-3}" or "{{0,0},{40,12}}". The raw text is kept as JSON with the
// braces turned into brackets.
type braced struct {
	raw json.RawMessage
}

func (b *braced) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.NewReplacer("{", "[", "}", "]").Replace(strings.TrimSpace(s))
		b.raw = json.RawMessage(s)
		return nil
	}
	b.raw = append(json.RawMessage(nil), data...)
	return nil
}

func (b braced) present() bool {
	return len(b.raw) > 0 && string(b.raw) != "null"
}

// Float decodes a scalar. Missing values are 0.
func (b braced) Float() (float64, error) {
	if !b.present() {
		return 0, nil
	}
	var f float64
	if err := json.Unmarshal(b.raw, &f); err != nil {
		return 0, fmt.Errorf("number %s: %w", b.raw, err)
	}
	return f, nil
}

// Vec decodes a two-element list.
func (b braced) Vec() (core.Vec, error) {
	if !b.present() {
		return core.Vec{}, nil
	}
	var xy []float64
	if err := json.Unmarshal(b.raw, &xy); err != nil {
		return core.Vec{}, fmt.Errorf("coordinate %s: %w", b.raw, err)
	}
	if len(xy) != 2 {
		return core.Vec{}, fmt.Errorf("coordinate %s: want 2 values, got %d", b.raw, len(xy))
	}
	return core.V(xy[0], xy[1]), nil
}

// Pair decodes a list of two coordinates.
func (b braced) Pair() (core.Vec, core.Vec, error) {
	var pts [][]float64
	if err := json.Unmarshal(b.raw, &pts); err != nil {
		return core.Vec{}, core.Vec{}, fmt.Errorf("coordinate pair %s: %w", b.raw, err)
	}
	if len(pts) != 2 || len(pts[0]) != 2 || len(pts[1]) != 2 {
		return core.Vec{}, core.Vec{}, fmt.Errorf("coordinate pair %s: want two points", b.raw)
	}
	return core.V(pts[0][0], pts[0][1]), core.V(pts[1][0], pts[1][1]), nil
}

// square returns the closed outline of the axis-aligned box spanned by a
// and b, as four edges.
func square(a, b core.Vec) [4][2]core.Vec {
	p := [5]core.Vec{a, core.V(a.X, b.Y), b, core.V(b.X, a.Y), a}
	var out [4][2]core.Vec
	for i := range out {
		out[i] = [2]core.Vec{p[i], p[i+1]}
	}
	return out
}
