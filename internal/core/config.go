package core

import "fmt"

// Mode selects how a level is run.
type Mode int

const (
	ModeSingle   Mode = iota // one trial, outcome printed
	ModeShow                 // one trial, replayed in the terminal
	ModeHeadless             // full sweep, results persisted
	ModeSpread               // band of angles around one center
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeSingle:
		return "single"
	case ModeShow:
		return "show"
	case ModeHeadless:
		return "headless"
	case ModeSpread:
		return "spread"
	default:
		return "unknown"
	}
}

// ParseMode parses a mode name.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "single", "sim":
		return ModeSingle, nil
	case "show":
		return ModeShow, nil
	case "headless", "":
		return ModeHeadless, nil
	case "spread":
		return ModeSpread, nil
	}
	return ModeHeadless, fmt.Errorf("unknown mode %q", s)
}

// RuntimeConfig contains configuration passed to the replay viewer.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Replay ticks per second
	Stride   int // Simulation ticks advanced per replay tick
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Stride:   5,
	}
}
