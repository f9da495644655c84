// Package scoring holds the optimization targets a resting shot is scored
// against. Targets register themselves in init() so the search and the CLI
// can look them up by name.
package scoring

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/shotfinder/internal/core"
)

// ErrUnknownTarget is returned by Lookup for unregistered names.
var ErrUnknownTarget = errors.New("unknown target")

// Proximity measures how far a resting ball at final is from what the
// target wants, lower is better. It may be negative.
type Proximity func(final, flag core.Vec) float64

// Target is a named scoring mode.
type Target struct {
	Name      string
	Summary   string
	Proximity Proximity
	// Timed targets add the elapsed cycle count so that, between equal
	// resting spots, the faster shot wins.
	Timed bool
}

// Score returns the squared score of a shot that came to rest at final
// after cycles ticks.
func (t Target) Score(final, flag core.Vec, cycles int) float64 {
	d := t.Proximity(final, flag)
	if t.Timed {
		d += float64(cycles)
	}
	return d * d
}

var (
	targets = make(map[string]Target)
	mu      sync.RWMutex
)

// Register adds a target. Panics on a duplicate name.
func Register(t Target) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := targets[t.Name]; exists {
		panic(fmt.Sprintf("scoring: target %q already registered", t.Name))
	}
	targets[t.Name] = t
}

// List returns every registered target sorted by name.
func List() []Target {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Target, 0, len(targets))
	for _, t := range targets {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// Lookup returns the target registered under name.
func Lookup(name string) (Target, error) {
	mu.RLock()
	defer mu.RUnlock()

	t, ok := targets[name]
	if !ok {
		return Target{}, fmt.Errorf("scoring: %w %q", ErrUnknownTarget, name)
	}
	return t, nil
}
