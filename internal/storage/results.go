package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/vovakirdan/shotfinder/internal/core"
)

// ErrNoResult is returned when no angle is stored for a lookup.
var ErrNoResult = errors.New("no stored angle")

// Results is the results.json file: course -> level -> power key -> angle.
// It is the file the swipe command reads.
type Results struct {
	path string
	data map[string]map[string]map[string]float64
}

// ResultEntry is one stored angle.
type ResultEntry struct {
	Course string
	Level  string
	Key    string
	Angle  float64
}

// LoadResults reads path. A missing file is an empty store.
func LoadResults(path string) (*Results, error) {
	r := &Results{path: path, data: make(map[string]map[string]map[string]float64)}
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot read results: %w", err)
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return r, nil
	}
	if err := json.Unmarshal(raw, &r.data); err != nil {
		return nil, fmt.Errorf("storage: cannot parse results %s: %w", path, err)
	}
	return r, nil
}

// Path returns the file the store saves to.
func (r *Results) Path() string {
	return r.path
}

// PowerKey formats the results key for a shot: the power the way the game
// shows it ("41.1", "25.0"), prefixed by the power-up name unless it is
// the regular ball.
func PowerKey(p core.PowerUp, power float64) string {
	s := strconv.FormatFloat(power, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	if p != core.PowerUpRegular {
		return p.String() + "," + s
	}
	return s
}

// Put stores angle, replacing any earlier value.
func (r *Results) Put(course, level, key string, angle float64) {
	levels, ok := r.data[course]
	if !ok {
		levels = make(map[string]map[string]float64)
		r.data[course] = levels
	}
	keys, ok := levels[level]
	if !ok {
		keys = make(map[string]float64)
		levels[level] = keys
	}
	keys[key] = angle
}

// Get returns the stored angle or ErrNoResult.
func (r *Results) Get(course, level, key string) (float64, error) {
	if a, ok := r.data[course][level][key]; ok {
		return a, nil
	}
	return 0, fmt.Errorf("%w for course %s level %s power %s", ErrNoResult, course, level, key)
}

// Entries lists the stored angles of one course, or of all courses when
// course is empty, ordered by course, level and key.
func (r *Results) Entries(course string) []ResultEntry {
	var out []ResultEntry
	for c, levels := range r.data {
		if course != "" && c != course {
			continue
		}
		for l, keys := range levels {
			for k, a := range keys {
				out = append(out, ResultEntry{Course: c, Level: l, Key: k, Angle: a})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Course != b.Course {
			return naturalLess(a.Course, b.Course)
		}
		if a.Level != b.Level {
			return naturalLess(a.Level, b.Level)
		}
		return a.Key < b.Key
	})
	return out
}

// naturalLess orders numeric names by value and the rest as text.
func naturalLess(a, b string) bool {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	if aerr == nil && berr == nil {
		return ai < bi
	}
	return a < b
}

// Save writes the store with two-space indentation through a temp file
// renamed over the target.
func (r *Results) Save() error {
	raw, err := json.MarshalIndent(r.data, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: cannot encode results: %w", err)
	}
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".results-*.json")
	if err != nil {
		return fmt.Errorf("storage: cannot create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(raw, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("storage: cannot write results: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: cannot write results: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("storage: cannot replace %s: %w", r.path, err)
	}
	return nil
}
