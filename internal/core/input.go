package core

// Action is a replay viewer command, decoupled from physical keys.
type Action int

const (
	ActionNone    Action = iota
	ActionPause          // P, Space
	ActionFaster         // +, Right
	ActionSlower         // -, Left
	ActionRestart        // R
	ActionQuit           // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionPause:
		return "Pause"
	case ActionFaster:
		return "Faster"
	case ActionSlower:
		return "Slower"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
