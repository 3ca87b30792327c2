package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/stake-arcade/internal/core"
	"github.com/vovakirdan/stake-arcade/internal/registry"
	"github.com/vovakirdan/stake-arcade/internal/storage"
)

// MenuItem is one game in the picker.
type MenuItem struct {
	GameID string
	Name   string
	Blurb  string
	Best   int
}

// Title implements list.DefaultItem.
func (i MenuItem) Title() string { return i.Name }

// Description implements list.DefaultItem.
func (i MenuItem) Description() string {
	if i.Blurb == "" {
		return fmt.Sprintf("best %d", i.Best)
	}
	return fmt.Sprintf("best %d · %s", i.Best, i.Blurb)
}

// FilterValue implements list.Item.
func (i MenuItem) FilterValue() string { return i.Name }

var menuTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("229")).
	Background(lipgloss.Color("57")).
	Padding(0, 2)

// MenuModel is the game picker. It ends its program on every choice; the
// caller reads the choice back with Selected, WantsScoreboard or IsQuitting.
type MenuModel struct {
	list   list.Model
	keys   MenuKeyMap
	config core.RuntimeConfig

	selected       *MenuItem
	openScoreboard bool
	quitting       bool
}

// menuItems lists the registered games with their best scores. A nil store
// reports zero for every game.
func menuItems(store *storage.Store) []list.Item {
	games := registry.List()
	items := make([]list.Item, 0, len(games))
	for _, g := range games {
		item := MenuItem{GameID: g.ID, Name: g.Title, Blurb: g.Description}
		if store != nil {
			if best, ok, err := store.Best(g.ID); err == nil && ok {
				item.Best = best
			}
		}
		items = append(items, item)
	}
	return items
}

// NewMenuModel creates the game picker.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	keys := DefaultMenuKeyMap()

	l := list.New(menuItems(store), list.NewDefaultDelegate(), cfg.ScreenW, cfg.ScreenH)
	l.Title = "S T A K E   A R C A D E"
	l.Styles.Title = menuTitleStyle
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Select, keys.Scoreboard, keys.Quit}
	}

	return MenuModel{list: l, keys: keys, config: cfg}
}

// Init implements tea.Model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Scoreboard):
			m.openScoreboard = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Select):
			if item, ok := m.list.SelectedItem().(MenuItem); ok {
				m.selected = &item
				return m, tea.Quit
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	return m.list.View()
}

// Selected returns the chosen game, or nil.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting reports whether the user asked to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard reports whether the user asked for the scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the runtime config, resized to the last window size.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// MenuResult is what RunMenu hands back to the CLI loop.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu shows the picker in its own program.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	res := MenuResult{Config: m.Config(), WantsScoreboard: m.WantsScoreboard()}
	switch {
	case res.WantsScoreboard:
	case m.Selected() != nil:
		res.GameID = m.Selected().GameID
	default:
		res.Quit = true
	}
	return res, nil
}
