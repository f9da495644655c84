package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/shotfinder/internal/core"
	"github.com/vovakirdan/shotfinder/internal/shot"
)

// Stride limits for the faster and slower keys.
const (
	minStride = 1
	maxStride = 64
	maxTrail  = 400
)

// Model is the Bubble Tea model replaying one shot.
type Model struct {
	sim      *shot.Simulator
	angle    float64
	screen   *core.Screen
	view     Viewport
	keys     *KeyMapper
	config   core.RuntimeConfig
	stride   int
	paused   bool
	done     bool
	trail    []core.Vec
	quitting bool
}

// NewModel sets up a trial at angle and returns a model replaying it.
func NewModel(sim *shot.Simulator, angle float64, cfg core.RuntimeConfig) Model {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	m := Model{
		sim:    sim,
		angle:  angle,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		keys:   NewKeyMapper(),
		config: cfg,
		stride: core.Clamp(cfg.Stride, minStride, maxStride),
	}
	m.fit()
	sim.Setup(angle)
	return m
}

func (m *Model) fit() {
	lo, hi := LevelBox(m.sim.Level())
	m.view = Fit(lo, hi, m.config.ScreenW, m.config.ScreenH-statusRows)
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return frameCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.fit()
		return m, nil

	case frameMsg:
		m.advance()
		return m, frameCmd(m.config.TickRate)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}
	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}
	m.apply(action)
	return m, nil
}

func (m *Model) apply(a core.Action) {
	switch a {
	case core.ActionPause:
		m.paused = !m.paused
	case core.ActionFaster:
		m.stride = min(m.stride*2, maxStride)
	case core.ActionSlower:
		m.stride = max(m.stride/2, minStride)
	case core.ActionRestart:
		m.sim.Setup(m.angle)
		m.trail = m.trail[:0]
		m.done = false
		m.paused = false
	}
}

// advance runs stride simulation ticks and records the ball trail.
func (m *Model) advance() {
	if m.paused || m.done {
		return
	}
	for i := 0; i < m.stride; i++ {
		if m.sim.Tick() {
			m.done = true
			break
		}
	}
	if m.sim.State() != shot.StateSetup {
		m.trail = append(m.trail, m.sim.Frame().Ball)
		if len(m.trail) > maxTrail {
			m.trail = m.trail[len(m.trail)-maxTrail:]
		}
	}
}

func (m *Model) draw() {
	f := m.sim.Frame()
	status := Status(m.sim.Level(), m.angle, f, m.sim.Outcome(), m.paused, m.stride)
	DrawFrame(m.screen, m.view, m.sim.Level(), f, m.trail, status)
	m.screen.DrawText(0, m.view.H+1, "space pause  +/- speed  r restart  ctrl+s screenshot  q quit", core.ColorText)
	if m.paused {
		m.drawPaused()
	}
}

func (m *Model) drawPaused() {
	const label = " PAUSED "
	w, h := len(label)+2, 3
	r := core.NewRect((m.view.W-w)/2, (m.view.H-h)/2, w, h)
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			m.screen.SetCell(x, y, core.Cell{Rune: ' '})
		}
	}
	m.screen.DrawBox(r, core.ColorText)
	m.screen.DrawText(r.X+1, r.Y+1, label, core.ColorText)
}

// saveScreenshot writes the current frame as plain text under
// ~/.shotfinder/screenshots.
func (m *Model) saveScreenshot() {
	m.draw()

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".shotfinder", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%.1f_%s.txt", m.sim.Level().ID, m.angle, timestamp))
	//nolint:errcheck // Best-effort save, replay continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current frame.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.draw()
	return RenderScreen(m.screen)
}

// Run replays a shot at angle until the user quits.
func Run(sim *shot.Simulator, angle float64, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(NewModel(sim, angle, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
