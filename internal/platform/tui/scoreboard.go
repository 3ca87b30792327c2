package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/stake-arcade/internal/registry"
	"github.com/vovakirdan/stake-arcade/internal/storage"
)

const (
	scoreLimit       = 100 // Rounds loaded per game
	statsPanelWidth  = 26
	sideBySideWidth  = 80 // Narrower terminals stack the stats under the table
	scoreboardChrome = 10 // Rows taken by tabs, borders and help
)

var (
	tabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	emptyStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")).Padding(1, 2)
)

// board is one game's page of the scoreboard.
type board struct {
	info   registry.GameInfo
	best   int
	scores []storage.ScoreEntry
	stats  *storage.GameStats
}

// ScoreboardModel shows round history and aggregate stats, one game per tab.
type ScoreboardModel struct {
	boards  []board
	current int
	table   table.Model
	help    help.Model
	keys    ScoreboardKeyMap
	width   int
	height  int

	quitting bool
	back     bool
}

// loadBoards reads every registered game's history. Games without a store
// or with unreadable history get an empty page.
func loadBoards(store *storage.Store) []board {
	games := registry.List()
	boards := make([]board, len(games))
	for i, g := range games {
		boards[i].info = g
		if store == nil {
			continue
		}
		if scores, err := store.TopScores(g.ID, scoreLimit); err == nil {
			boards[i].scores = scores
		}
		if stats, err := store.GetGameStats(g.ID); err == nil {
			boards[i].stats = stats
		}
		if best, ok, err := store.Best(g.ID); err == nil && ok {
			boards[i].best = best
		}
	}
	return boards
}

// NewScoreboardModel creates the scoreboard sized to width x height.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		boards: loadBoards(store),
		help:   help.New(),
		keys:   DefaultScoreboardKeyMap(),
		width:  width,
		height: height,
	}
	m.table = table.New(
		table.WithColumns(scoreColumns()),
		table.WithFocused(true),
		table.WithHeight(max(height-scoreboardChrome, 3)),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	m.table.SetStyles(styles)
	m.showBoard()
	return m
}

func scoreColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 7},
		{Title: "Result", Width: 6},
		{Title: "Tokens", Width: 8},
		{Title: "Time", Width: 6},
		{Title: "Played", Width: 12},
	}
}

// showBoard loads the current game's rounds into the table.
func (m *ScoreboardModel) showBoard() {
	if len(m.boards) == 0 {
		m.table.SetRows(nil)
		return
	}
	scores := m.boards[m.current].scores
	rows := make([]table.Row, 0, len(scores))
	for i, s := range scores {
		result := "lost"
		if s.Victory {
			result = "won"
		}
		rows = append(rows, table.Row{
			fmt.Sprint(i + 1),
			fmt.Sprint(s.Score),
			result,
			fmt.Sprintf("%.4f", s.TokensEarned),
			fmt.Sprintf("%.1fs", float64(s.Duration)/1000),
			s.CreatedAt.Local().Format("Jan 02 15:04"),
		})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) step(delta int) {
	if len(m.boards) == 0 {
		return
	}
	m.current = (m.current + delta + len(m.boards)) % len(m.boards)
	m.showBoard()
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(msg.Height-scoreboardChrome, 3))
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.back = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextGame):
			m.step(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevGame):
			m.step(-1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m ScoreboardModel) View() string {
	if m.quitting || m.back {
		return ""
	}
	if len(m.boards) == 0 {
		return emptyStyle.Render("No games registered.")
	}

	var body string
	b := m.boards[m.current]
	if len(b.scores) == 0 {
		body = panelStyle.Render(emptyStyle.Render("No rounds recorded yet.\nPlay a round to set a score!"))
	} else {
		scores := panelStyle.Render(m.table.View())
		stats := panelStyle.Width(statsPanelWidth).Render(renderStats(b))
		if m.width >= sideBySideWidth {
			body = lipgloss.JoinHorizontal(lipgloss.Top, scores, " ", stats)
		} else {
			body = lipgloss.JoinVertical(lipgloss.Left, scores, stats)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		"",
		m.renderTabs(),
		"",
		body,
		hudLabelStyle.Render(m.help.View(m.keys)),
	)
}

func (m ScoreboardModel) renderTabs() string {
	tabs := make([]string, len(m.boards))
	for i, b := range m.boards {
		if i == m.current {
			tabs[i] = activeTabStyle.Render(b.info.Title)
		} else {
			tabs[i] = tabStyle.Render(b.info.Title)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderStats draws the aggregate panel for one game.
func renderStats(b board) string {
	line := func(label, value string) string {
		return hudLabelStyle.Render(fmt.Sprintf("%-8s", label)) + hudValueStyle.Render(value)
	}

	lines := []string{line("Best", fmt.Sprint(b.best))}
	if s := b.stats; s != nil && s.RoundsCount > 0 {
		winRate := 100 * float64(s.Victories) / float64(s.RoundsCount)
		lines = append(lines,
			line("Rounds", fmt.Sprint(s.RoundsCount)),
			line("Wins", fmt.Sprintf("%d (%.0f%%)", s.Victories, winRate)),
			line("Average", fmt.Sprintf("%.0f", s.AvgScore)),
			hudLabelStyle.Render(fmt.Sprintf("%-8s", "Tokens"))+hudTokenStyle.Render(fmt.Sprintf("%.4f", s.TotalTokens)),
		)
		if !s.LastPlayed.IsZero() {
			lines = append(lines, line("Last", s.LastPlayed.Local().Format("Jan 02 15:04")))
		}
	}
	return strings.Join(lines, "\n")
}

// IsGoingBack reports whether the user asked to return to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.back
}

// IsQuitting reports whether the user asked to quit.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the scoreboard in its own program and reports
// whether the user went back rather than quitting.
func RunScoreboard(store *storage.Store, width, height int) (bool, error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
