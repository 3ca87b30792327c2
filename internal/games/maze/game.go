// Package maze implements Try Harder, a maze dash on a randomly walled grid.
// Touching a wall or leaving the field loses the round, reaching the exit
// wins it. A single-use phase ability lets the player pass through walls.
package maze

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/stake-arcade/internal/config"
	"github.com/vovakirdan/stake-arcade/internal/core"
	"github.com/vovakirdan/stake-arcade/internal/registry"
)

// Visual characters for rendering
const (
	WallChar  = '█'
	PhaseChar = '▒'
	ActorChar = '■'
	ExitChar  = '▚'
)

// Game implements the Try Harder engine.
type Game struct {
	cfg    config.MazeConfig
	pinned bool

	grid    *Grid
	actor   core.Rect
	ability Ability

	level   int // Incremented on a restart after a victory; cosmetic only
	score   int
	tokens  float64 // Accumulates across rounds
	seconds int
}

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// New creates a Try Harder game that loads its config on every Begin.
func New() *Game {
	return &Game{cfg: config.DefaultMazeConfig(), level: 1}
}

// NewWithConfig creates a game bound to a fixed config.
func NewWithConfig(cfg config.MazeConfig) *Game {
	return &Game{cfg: cfg, pinned: true, level: 1}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "maze"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Try Harder"
}

// Description returns a one-line blurb for menus.
func (g *Game) Description() string {
	return "Reach the exit without touching a wall; phase once per round"
}

// Config returns the active configuration.
func (g *Game) Config() config.MazeConfig {
	return g.cfg
}

// Begin generates a new maze and puts the actor on the start cell.
// Restarting after a victory moves to the next level.
func (g *Game) Begin(rng *rand.Rand, prev core.Outcome) {
	if !g.pinned {
		cfg, err := config.LoadMaze(configPath)
		if err != nil {
			cfg = config.DefaultMazeConfig()
		}
		g.cfg = cfg
	}
	if prev.Ended && prev.Victory {
		g.level++
	}

	g.grid = Generate(rng, g.cfg.Grid)
	g.placeActor()
	g.ability.Reset()
	g.score = 0
	g.seconds = 0
}

// KeyPressed fires the phase ability on the first press of the round.
func (g *Game) KeyPressed(k core.Key) {
	if k != core.KeyAbility || g.grid == nil {
		return
	}
	g.ability.Activate(g.cfg.Ability.Ticks)
}

// Step moves the actor one tick and resolves walls and the exit.
func (g *Game) Step(t core.Tick) core.Outcome {
	if g.grid == nil {
		return core.Outcome{}
	}

	g.ability.Tick()
	g.seconds = int(t.Elapsed / time.Second)

	speed := g.cfg.Actor.Speed
	if g.ability.Active {
		speed *= g.cfg.Ability.SpeedMultiplier
	}
	dx := core.Axis(t.Keys, core.KeyLeft, core.KeyRight) * speed
	dy := core.Axis(t.Keys, core.KeyUp, core.KeyDown) * speed
	g.actor = g.actor.Translate(dx, dy)

	if !g.ability.Active {
		bounds := core.NewRect(0, 0, g.cfg.Field.Width, g.cfg.Field.Height)
		if !g.actor.Inside(bounds) || g.grid.HitsWall(g.actor) {
			g.score = LossScore(g.cfg.Scoring, g.seconds, g.level)
			return core.Outcome{Ended: true}
		}
	}

	exit := g.grid.Exit()
	if g.actor.Intersects(g.grid.CellRect(exit.Col, exit.Row)) {
		g.score = VictoryScore(g.cfg.Scoring, g.seconds, g.level, g.ability.Used)
		g.tokens += Reward(g.cfg.Scoring, g.score)
		return core.Outcome{Ended: true, Victory: true}
	}
	return core.Outcome{}
}

// Clear drops the maze and sends the player back to level 1.
// Earned tokens are kept.
func (g *Game) Clear() {
	g.grid = nil
	g.ability.Reset()
	g.level = 1
	g.score = 0
	g.seconds = 0
}

// Telemetry returns the score counters.
func (g *Game) Telemetry() core.Telemetry {
	return core.Telemetry{
		Score:        g.score,
		TokensEarned: g.tokens,
		Level:        g.level,
		TimeElapsed:  g.seconds,
	}
}

// Grid returns the current maze, or nil outside a round.
func (g *Game) Grid() *Grid {
	return g.grid
}

// Actor returns the player's bounding box.
func (g *Game) Actor() core.Rect {
	return g.actor
}

// Ability returns the phase ability state.
func (g *Game) Ability() Ability {
	return g.ability
}

func (g *Game) placeActor() {
	start := g.cfg.Grid.Start
	cell := g.cfg.Grid.CellSize
	g.actor = core.NewRect(float64(start.Col)*cell, float64(start.Row)*cell, g.cfg.Actor.Size, g.cfg.Actor.Size)
}

// Render draws the walls, the exit and the actor.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.grid == nil {
		return
	}
	vp := core.FitViewport(g.cfg.Field.Width, g.cfg.Field.Height, dst.Width(), dst.Height(), 0)

	wallChar, wallColor := WallChar, core.ColorBlue
	if g.ability.Active {
		wallChar, wallColor = PhaseChar, core.ColorGray
	}
	for row := 0; row < g.grid.Rows(); row++ {
		for col := 0; col < g.grid.Cols(); col++ {
			if g.grid.Wall(col, row) {
				vp.Fill(dst, g.grid.CellRect(col, row), wallChar, wallColor)
			}
		}
	}

	exit := g.grid.Exit()
	vp.Fill(dst, g.grid.CellRect(exit.Col, exit.Row), ExitChar, core.ColorBrightGreen)

	actorColor := core.ColorBrightYellow
	if g.ability.Active {
		actorColor = core.ColorMagenta
	}
	vp.Fill(dst, g.actor, ActorChar, actorColor)
}

// Register the game with the registry
func init() {
	registry.Register("maze", func() registry.Game {
		return New()
	})
}
