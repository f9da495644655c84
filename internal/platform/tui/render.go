package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/shotfinder/internal/core"
)

// colorStyles maps what was drawn to a terminal color.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorTerrain: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorMoving:  lipgloss.NewStyle().Foreground(lipgloss.Color("22")),
	core.ColorWall:    lipgloss.NewStyle().Foreground(lipgloss.Color("88")),
	core.ColorSand:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorWater:   lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorField:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorMagnet:  lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	core.ColorPortal:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorLaser:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorSaw:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorBall:    lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorTrail:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	core.ColorFlag:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	core.ColorText:    lipgloss.NewStyle().Foreground(lipgloss.Color("229")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells of the same color share one style run.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color
			var run strings.Builder
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}
			style, ok := colorStyles[color]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
