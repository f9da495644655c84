package config

import (
	"fmt"

	"github.com/vovakirdan/shotfinder/internal/core"
)

// Tiers is the number of power levels a table holds.
const Tiers = 13

// PowerTables maps a power-up name to its newton value per tier.
type PowerTables map[string][]float64

// Resolve returns the shot power in newtons. A positive newtons value wins
// over the tier; otherwise tier (1-based) indexes the power-up's table.
func (t PowerTables) Resolve(p core.PowerUp, tier int, newtons float64) (float64, error) {
	if newtons > 0 {
		return newtons, nil
	}
	table, ok := t[p.String()]
	if !ok {
		return 0, fmt.Errorf("config: no power table for %s", p)
	}
	if tier < 1 || tier > len(table) {
		return 0, fmt.Errorf("config: power tier %d out of range 1..%d", tier, len(table))
	}
	return table[tier-1], nil
}
