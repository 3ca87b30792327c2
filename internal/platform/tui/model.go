package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/stake-arcade/internal/core"
	"github.com/vovakirdan/stake-arcade/internal/registry"
	"github.com/vovakirdan/stake-arcade/internal/round"
	"github.com/vovakirdan/stake-arcade/internal/storage"
)

// Rows reserved around the playfield: HUD on top, help at the bottom.
const (
	hudRows    = 2
	footerRows = 1
)

// GameModel is the Bubble Tea model for one game. It is the terminal
// presentation adapter: it forwards keys to a round.Runner, drives its
// frame clock and draws the snapshot.
//
// Terminals report key presses (and auto-repeats) but never releases, so a
// press is held for holdTicks ticks and then released unless it repeats.
type GameModel struct {
	runner    *round.Runner
	sched     *teaScheduler
	screen    *core.Screen
	keys      GameKeyMap
	help      help.Model
	held      map[core.Key]int
	holdTicks int
	width     int
	height    int

	quitting   bool
	backToMenu bool
}

// NewGameModel creates a game model. store may be nil, in which case best
// scores only live for the session.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	sched := newTeaScheduler(cfg.TickRate)
	opts := []round.Option{
		round.WithScheduler(sched),
		round.WithSeed(cfg.Seed),
		round.WithLogger(logger.With("host", "tui")),
	}
	if store != nil {
		opts = append(opts, round.WithStore(store))
	}

	m := GameModel{
		runner:    round.New(game, opts...),
		sched:     sched,
		keys:      DefaultGameKeyMap(),
		help:      help.New(),
		held:      make(map[core.Key]int),
		holdTicks: max(cfg.TickRate/2, 1),
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
	}
	m.screen = core.NewScreen(m.fieldSize())
	return m
}

func (m GameModel) fieldSize() (int, int) {
	return max(m.width, 1), max(m.height-hudRows-footerRows, 1)
}

// Init implements tea.Model. The round starts on Enter.
func (m GameModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.screen.Resize(m.fieldSize())
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.runner.Stop()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Shot):
		m.saveScreenshot()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Start):
		if m.runner.State() != core.RoundRunning {
			m.releaseAll()
			m.runner.Start()
		}
		return m, m.sched.next()

	case key.Matches(msg, m.keys.Stop):
		if m.runner.State() == core.RoundRunning {
			m.releaseAll()
			m.runner.Stop()
			return m, nil
		}
		m.runner.Stop()
		m.backToMenu = true
		return m, nil
	}

	if k := m.keys.GameKey(msg); k != core.KeyNone {
		m.press(k)
	}
	return m, m.sched.next()
}

// press marks k as held, releasing the opposite direction.
func (m GameModel) press(k core.Key) {
	if o := opposite(k); o != core.KeyNone && m.held[o] > 0 {
		delete(m.held, o)
		m.runner.KeyChanged(o, false)
	}
	if m.held[k] == 0 {
		m.runner.KeyChanged(k, true)
	}
	m.held[k] = m.holdTicks
}

// decay counts down held keys and releases the expired ones.
func (m GameModel) decay() {
	for k, n := range m.held {
		if n <= 1 {
			delete(m.held, k)
			m.runner.KeyChanged(k, false)
			continue
		}
		m.held[k] = n - 1
	}
}

func (m GameModel) releaseAll() {
	clear(m.held)
	m.runner.ReleaseKeys()
}

// handleTick runs one round tick if the message is still live.
func (m GameModel) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if !m.sched.accept(msg) {
		return m, nil
	}
	m.decay()
	m.runner.Frame()
	return m, m.sched.next()
}

// saveScreenshot saves the current playfield to a file.
func (m *GameModel) saveScreenshot() {
	m.runner.Game().Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.runner.Game().ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the HUD, the playfield and the help bar.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	game := m.runner.Game()
	snap := m.runner.Snapshot()

	game.Render(m.screen)
	if title, subtitle, color, ok := roundMessage(snap, game.Title()); ok {
		m.screen.DrawMessage(title, subtitle, color)
	}

	return RenderHUD(game.Title(), snap, m.width) + "\n\n" +
		RenderScreen(m.screen) + "\n" +
		hudLabelStyle.Render(m.help.View(m.keys))
}

// Snapshot returns the runner's current snapshot.
func (m GameModel) Snapshot() core.Snapshot {
	return m.runner.Snapshot()
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// playModel runs a single game outside the menu; going back quits.
type playModel struct {
	GameModel
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.GameModel.Update(msg)
	m.GameModel = next.(GameModel)
	if m.BackToMenu() {
		return m, tea.Quit
	}
	return m, cmd
}

// Run starts the Bubble Tea program for a single game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := playModel{GameModel: NewGameModel(game, store, cfg, logger)}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
