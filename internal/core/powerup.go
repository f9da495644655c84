package core

import (
	"fmt"
	"strings"
)

// PowerUp is the modifier active for a whole shot.
type PowerUp int

const (
	PowerUpRegular PowerUp = iota
	PowerUpHeavy           // zero elasticity, own power table
	PowerUpShield          // survives one splash, lasers and saws pass
	PowerUpAntigrav        // gravity points up
	PowerUpSticky          // sticks to any wall after the ghost distance
	PowerUpTunnel          // passes through one terrain layer
	PowerUpSuper           // own power table
)

var powerUpNames = []string{
	PowerUpRegular:  "regular",
	PowerUpHeavy:    "heavy",
	PowerUpShield:   "shield",
	PowerUpAntigrav: "antigrav",
	PowerUpSticky:   "sticky",
	PowerUpTunnel:   "tunnel",
	PowerUpSuper:    "super",
}

// String returns the lowercase name used on the command line and in results keys.
func (p PowerUp) String() string {
	if p < 0 || int(p) >= len(powerUpNames) {
		return "unknown"
	}
	return powerUpNames[p]
}

// ParsePowerUp parses a power-up name. The empty string means regular.
func ParsePowerUp(s string) (PowerUp, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return PowerUpRegular, nil
	}
	for i, name := range powerUpNames {
		if name == s {
			return PowerUp(i), nil
		}
	}
	return PowerUpRegular, fmt.Errorf("unknown power-up %q", s)
}

// PowerUps lists every power-up in declaration order.
func PowerUps() []PowerUp {
	out := make([]PowerUp, len(powerUpNames))
	for i := range powerUpNames {
		out[i] = PowerUp(i)
	}
	return out
}
