// Package tui renders shot replays and the results board in the terminal
// with Bubble Tea.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// frameMsg advances the replay by one frame.
type frameMsg time.Time

// frameCmd schedules the next replay frame. Rates below 1 fps are raised
// to 1.
func frameCmd(fps int) tea.Cmd {
	interval := time.Second / time.Duration(max(fps, 1))
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}
