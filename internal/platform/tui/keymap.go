package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/shotfinder/internal/core"
)

// KeyMapper translates Bubble Tea key messages to replay actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a replay action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return core.ActionQuit, true
	case " ", "p":
		return core.ActionPause, false
	case "+", "=", "right", "l":
		return core.ActionFaster, false
	case "-", "left", "h":
		return core.ActionSlower, false
	case "r":
		return core.ActionRestart, false
	}
	return core.ActionNone, false
}
