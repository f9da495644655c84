package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/shotfinder/internal/storage"
)

// Board layout constants
const (
	minWidthForSidebar = 70 // Minimum width to show the course sidebar
	sidebarWidth       = 16
)

// BoardKeyMap defines the key bindings for the results board.
type BoardKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextCourse key.Binding
	PrevCourse key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k BoardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextCourse, k.PrevCourse, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k BoardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextCourse, k.PrevCourse},
		{k.Quit},
	}
}

// DefaultBoardKeyMap returns default key bindings.
func DefaultBoardKeyMap() BoardKeyMap {
	return BoardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextCourse: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next course"),
		),
		PrevCourse: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev course"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// BoardModel lists the stored angles of one course at a time, with the
// run history of each level when a database is available.
type BoardModel struct {
	results     *storage.Results
	stats       map[string]*storage.LevelStats
	courses     []string
	cursor      int
	entries     []storage.ResultEntry
	table       table.Model
	help        help.Model
	keys        BoardKeyMap
	width       int
	height      int
	quitting    bool
	showSidebar bool
}

// NewBoardModel creates a results board. store may be nil.
func NewBoardModel(results *storage.Results, store *storage.Store, width, height int) BoardModel {
	h := help.New()
	h.ShowAll = false

	m := BoardModel{
		results:     results,
		courses:     courses(results),
		keys:        DefaultBoardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	if store != nil {
		if stats, err := store.Stats(); err == nil {
			m.stats = stats
		}
	}
	m.table = m.createTable()
	m.loadCourse()
	return m
}

// courses returns the distinct courses of the store in display order.
func courses(r *storage.Results) []string {
	var out []string
	seen := make(map[string]bool)
	for _, e := range r.Entries("") {
		if !seen[e.Course] {
			seen[e.Course] = true
			out = append(out, e.Course)
		}
	}
	return out
}

func (m *BoardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Level", Width: 8},
		{Title: "Power", Width: 14},
		{Title: "Angle", Width: 8},
		{Title: "Runs", Width: 6},
		{Title: "Best", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *BoardModel) loadCourse() {
	m.entries = nil
	if len(m.courses) > 0 {
		m.entries = m.results.Entries(m.courses[m.cursor])
	}
	m.table.SetRows(m.rows())
	m.table.GotoTop()
}

// rows builds the table rows of the current course.
func (m *BoardModel) rows() []table.Row {
	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		runs, best := "-", "-"
		if st, ok := m.stats[e.Course+"_"+e.Level]; ok {
			runs = fmt.Sprintf("%d", st.Runs)
			if st.BestScore != 0 {
				best = fmt.Sprintf("%.0f", st.BestScore)
			}
		}
		rows[i] = table.Row{e.Level, e.Key, fmt.Sprintf("%.1f", e.Angle), runs, best}
	}
	return rows
}

// Init initializes the board.
func (m BoardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the board.
func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextCourse):
			if len(m.courses) > 0 {
				m.cursor = (m.cursor + 1) % len(m.courses)
				m.loadCourse()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevCourse):
			if len(m.courses) > 0 {
				m.cursor = (m.cursor - 1 + len(m.courses)) % len(m.courses)
				m.loadCourse()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.table.SetRows(m.rows())
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the board.
func (m BoardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "RESULTS"
	if len(m.courses) > 0 {
		title = fmt.Sprintf("RESULTS - course %s", m.courses[m.cursor])
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	content := boxStyle.Render(m.tableContent())

	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar(), "  ", content))
	} else {
		b.WriteString(centerText(content, m.width))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m BoardModel) sidebar() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sb strings.Builder
	sb.WriteString("Courses\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")
	for i, c := range m.courses {
		cursor := "  "
		line := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			line = line.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sb.WriteString(line.Render(cursor + c))
		sb.WriteString("\n")
	}
	return style.Render(sb.String())
}

func (m BoardModel) tableContent() string {
	if len(m.entries) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No results recorded yet.\nRun `shotfinder solve` on a level first.")
	}
	return m.table.View()
}

// centerText centers each line of text within the given width.
func centerText(text string, width int) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		w := lipgloss.Width(line)
		if w < width {
			lines[i] = strings.Repeat(" ", (width-w)/2) + line
		}
	}
	return strings.Join(lines, "\n")
}

// RunBoard shows the results board until the user quits.
func RunBoard(results *storage.Results, store *storage.Store, width, height int) error {
	p := tea.NewProgram(NewBoardModel(results, store, width, height), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
