package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/shotfinder/internal/config"
	"github.com/vovakirdan/shotfinder/internal/core"
	"github.com/vovakirdan/shotfinder/internal/level"
	"github.com/vovakirdan/shotfinder/internal/scoring"
	"github.com/vovakirdan/shotfinder/internal/shot"
	"github.com/vovakirdan/shotfinder/internal/storage"
)

func testLevel() *level.Level {
	return &level.Level{
		ID:       "1_1",
		Course:   "1",
		Gravity:  100,
		Bounds:   level.Bounds{Right: 1000, Top: 3000},
		Start:    core.V(100, 200),
		HasStart: true,
		Flag:     core.V(800, 107),
		HasFlag:  true,
		Bodies: []level.Body{{
			ID:       "ground",
			Segments: []level.Segment{{A: core.V(0, 100), B: core.V(1000, 100), Kind: level.KindWall}},
		}},
	}
}

func newTestSim(t *testing.T) *shot.Simulator {
	t.Helper()
	target, err := scoring.Lookup("distance")
	if err != nil {
		t.Fatalf("Lookup() failed: %v", err)
	}
	sim, err := shot.New(config.DefaultConfig(), testLevel(), shot.Options{Power: 41.1, Target: target}, nil)
	if err != nil {
		t.Fatalf("shot.New() failed: %v", err)
	}
	return sim
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionPause, false},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}}, core.ActionPause, false},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}}, core.ActionFaster, false},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionFaster, false},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'-'}}, core.ActionSlower, false},
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionSlower, false},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}, core.ActionRestart, false},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, core.ActionNone, false},
	}
	for _, tt := range tests {
		action, quit := km.MapKey(tt.msg)
		if action != tt.action || quit != tt.quit {
			t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tt.msg.String(), action, quit, tt.action, tt.quit)
		}
	}
}

func TestViewportMapsCorners(t *testing.T) {
	v := Fit(core.V(0, 0), core.V(100, 100), 50, 25)

	if x, y := v.Cell(core.V(0, 100)); x != 0 || y != 0 {
		t.Errorf("top left maps to (%d, %d), want (0, 0)", x, y)
	}
	if x, y := v.Cell(core.V(100, 0)); x != 50 || y != 25 {
		t.Errorf("bottom right maps to (%d, %d), want (50, 25)", x, y)
	}
	if x, y := v.Cell(core.V(50, 50)); x != 25 || y != 13 {
		t.Errorf("center maps to (%d, %d), want (25, 13)", x, y)
	}
}

func TestViewportKeepsAspect(t *testing.T) {
	// A wide box in a tall area is limited by width.
	v := Fit(core.V(0, 0), core.V(200, 10), 20, 40)
	x, _ := v.Cell(core.V(200, 10))
	if x != 20 {
		t.Errorf("right edge maps to column %d, want 20", x)
	}
	_, y := v.Cell(core.V(0, 0))
	if y != 1 {
		t.Errorf("bottom maps to row %d, want 1", y)
	}
}

func TestLevelBoxCoversLevel(t *testing.T) {
	lvl := testLevel()
	lo, hi := LevelBox(lvl)
	if lo.X != 0 || hi.X != 1000 {
		t.Errorf("horizontal extent %v..%v, want 0..1000", lo.X, hi.X)
	}
	if lo.Y >= 100 || hi.Y <= 200 {
		t.Errorf("vertical extent %v..%v does not cover ground and start", lo.Y, hi.Y)
	}
}

func TestDrawFrame(t *testing.T) {
	lvl := testLevel()
	s := core.NewScreen(60, 20)
	lo, hi := LevelBox(lvl)
	v := Fit(lo, hi, 60, 20-statusRows)
	f := shot.Frame{Ball: core.V(500, 150), Poses: []shot.Pose{{}}}

	DrawFrame(s, v, lvl, f, []core.Vec{core.V(300, 180)}, "status here")

	bx, by := v.Cell(f.Ball)
	if c := s.GetCell(bx, by); c.Rune != 'O' || c.Color != core.ColorBall {
		t.Errorf("ball cell = %+v", c)
	}
	fx, fy := v.Cell(lvl.Flag)
	if r := s.GetCell(fx, fy).Rune; r != 'F' {
		t.Errorf("flag cell = %q", r)
	}
	gx, gy := v.Cell(core.V(250, 100))
	if c := s.GetCell(gx, gy); c.Rune != '#' || c.Color != core.ColorTerrain {
		t.Errorf("ground cell = %+v", c)
	}
	if !strings.HasPrefix(strings.Split(s.String(), "\n")[v.H], "status here") {
		t.Error("status line not drawn below the playfield")
	}
}

func TestModelAdvancesByStride(t *testing.T) {
	cfg := core.DefaultConfig()
	m := NewModel(newTestSim(t), 30, cfg)

	next, cmd := m.Update(frameMsg(time.Now()))
	if cmd == nil {
		t.Fatal("frame did not schedule the next one")
	}
	m = next.(Model)
	if got := m.sim.Frame().Cycle; got != cfg.Stride {
		t.Errorf("cycle = %d, want %d", got, cfg.Stride)
	}
	if len(m.trail) != 1 {
		t.Errorf("trail has %d points, want 1", len(m.trail))
	}
}

func TestModelPauseAndSpeed(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.Stride = 4
	m := NewModel(newTestSim(t), 30, cfg)

	m.apply(core.ActionPause)
	m.advance()
	if got := m.sim.Frame().Cycle; got != 0 {
		t.Errorf("paused replay advanced to cycle %d", got)
	}
	m.apply(core.ActionPause)

	m.apply(core.ActionFaster)
	if m.stride != 8 {
		t.Errorf("stride = %d after faster, want 8", m.stride)
	}
	for i := 0; i < 10; i++ {
		m.apply(core.ActionSlower)
	}
	if m.stride != minStride {
		t.Errorf("stride = %d after slowing down, want %d", m.stride, minStride)
	}
}

func TestModelRestart(t *testing.T) {
	m := NewModel(newTestSim(t), 30, core.DefaultConfig())
	for i := 0; i < 5; i++ {
		m.advance()
	}
	if len(m.trail) == 0 {
		t.Fatal("expected a trail")
	}

	m.apply(core.ActionRestart)
	if len(m.trail) != 0 || m.done {
		t.Errorf("restart kept trail %d, done %v", len(m.trail), m.done)
	}
	if got := m.sim.Frame().Cycle; got != 0 {
		t.Errorf("restart left cycle %d", got)
	}
	if m.View() == "" {
		t.Error("empty view")
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(newTestSim(t), 30, core.DefaultConfig())
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("quit key returned no command")
	}
	if next.(Model).View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func boardResults(t *testing.T) *storage.Results {
	t.Helper()
	r, err := storage.LoadResults(filepath.Join(t.TempDir(), "results.json"))
	if err != nil {
		t.Fatalf("LoadResults() failed: %v", err)
	}
	r.Put("3", "7", "41.1", 42.5)
	r.Put("3", "10", "41.1", 12)
	r.Put("3", "2", "sticky,39.0", -5)
	r.Put("10", "1", "41.1", 80)
	return r
}

func TestBoardRows(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()
	for _, score := range []float64{900, 400} {
		if _, err := store.SaveRun(storage.Run{LevelID: "3_7", PowerUp: "regular", Power: 41.1, Target: "distance", HasBest: true, BestScore: score}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	m := NewBoardModel(boardResults(t), store, 100, 30)
	if len(m.courses) != 2 || m.courses[0] != "3" || m.courses[1] != "10" {
		t.Fatalf("courses = %v, want [3 10]", m.courses)
	}

	rows := m.rows()
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	want := [][]string{
		{"2", "sticky,39.0", "-5.0", "-", "-"},
		{"7", "41.1", "42.5", "2", "400"},
		{"10", "41.1", "12.0", "-", "-"},
	}
	for i := range want {
		for j := range want[i] {
			if rows[i][j] != want[i][j] {
				t.Errorf("row %d col %d = %q, want %q", i, j, rows[i][j], want[i][j])
			}
		}
	}
}

func TestBoardSwitchesCourse(t *testing.T) {
	m := NewBoardModel(boardResults(t), nil, 100, 30)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(BoardModel)
	if m.cursor != 1 || len(m.entries) != 1 || m.entries[0].Course != "10" {
		t.Errorf("after tab: cursor %d, entries %+v", m.cursor, m.entries)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(BoardModel)
	if m.cursor != 0 {
		t.Errorf("after shift+tab: cursor %d, want 0", m.cursor)
	}
	if !strings.Contains(m.View(), "course 3") {
		t.Error("title does not name the course")
	}
}

func TestBoardEmpty(t *testing.T) {
	r, err := storage.LoadResults(filepath.Join(t.TempDir(), "results.json"))
	if err != nil {
		t.Fatalf("LoadResults() failed: %v", err)
	}
	m := NewBoardModel(r, nil, 60, 20)
	if !strings.Contains(m.View(), "No results recorded yet") {
		t.Error("empty board should say so")
	}
}
