// Package racer implements Crypto Racer, a top-down lane dodger.
// The car moves left and right while obstacles and coins scroll down the
// road; hitting an obstacle ends the round, coins add points and tokens.
package racer

import (
	"math/rand"

	"github.com/vovakirdan/stake-arcade/internal/config"
	"github.com/vovakirdan/stake-arcade/internal/core"
	"github.com/vovakirdan/stake-arcade/internal/registry"
)

// Visual characters for rendering
const (
	CarChar      = '█'
	ObstacleChar = '▓'
	CoinChar     = '◉'
	RoadChar     = '│'
	LaneChar     = '┆'
)

// Game implements the Crypto Racer engine.
type Game struct {
	cfg    config.RacerConfig
	pinned bool // cfg was injected and must not be reloaded

	car      core.Rect
	entities EntityStore
	rng      *rand.Rand

	score     int
	tokens    float64
	collected int // Coins taken this round
}

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// New creates a Crypto Racer game that loads its config on every Begin.
func New() *Game {
	g := &Game{cfg: config.DefaultRacerConfig()}
	g.placeCar()
	return g
}

// NewWithConfig creates a game bound to a fixed config.
func NewWithConfig(cfg config.RacerConfig) *Game {
	g := &Game{cfg: cfg, pinned: true}
	g.placeCar()
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "racer"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Crypto Racer"
}

// Description returns a one-line blurb for menus.
func (g *Game) Description() string {
	return "Dodge the traffic, grab coins, survive as long as you can"
}

// Config returns the active configuration.
func (g *Game) Config() config.RacerConfig {
	return g.cfg
}

// Begin starts a fresh round. Tokens do not carry over between rounds.
func (g *Game) Begin(rng *rand.Rand, _ core.Outcome) {
	if !g.pinned {
		cfg, err := config.LoadRacer(configPath)
		if err != nil {
			cfg = config.DefaultRacerConfig()
		}
		g.cfg = cfg
	}

	g.rng = rng
	g.placeCar()
	g.entities.Reset()
	g.score = 0
	g.tokens = 0
	g.collected = 0
}

// Step advances the road by one tick.
func (g *Game) Step(t core.Tick) core.Outcome {
	if g.rng == nil {
		return core.Outcome{}
	}

	dx := core.Axis(t.Keys, core.KeyLeft, core.KeyRight) * g.cfg.Car.Speed
	g.car.X = core.ClampF(g.car.X+dx, g.cfg.Car.MinX, g.cfg.Car.MaxX)

	g.entities.Update(g.rng, &g.cfg)

	// Terminal check first: a coin under a crash is not collected
	crashed := g.entities.HitsObstacle(g.car)
	if !crashed {
		if n := g.entities.Collect(g.car); n > 0 {
			g.collected += n
			g.score += n * g.cfg.Scoring.PickupPoints
			g.tokens += float64(n) * g.cfg.Scoring.PickupReward
		}
	}
	g.score += g.cfg.Scoring.PerTick

	return core.Outcome{Ended: crashed}
}

// Clear drops the round and returns the car to the start line.
func (g *Game) Clear() {
	g.placeCar()
	g.entities.Reset()
	g.score = 0
	g.collected = 0
}

// Telemetry returns the score counters.
func (g *Game) Telemetry() core.Telemetry {
	return core.Telemetry{
		Score:        g.score,
		TokensEarned: g.tokens,
	}
}

// Collected returns the number of coins taken this round.
func (g *Game) Collected() int {
	return g.collected
}

// Car returns the car's bounding box.
func (g *Game) Car() core.Rect {
	return g.car
}

// Entities returns the round's entity store.
func (g *Game) Entities() *EntityStore {
	return &g.entities
}

func (g *Game) placeCar() {
	c := g.cfg.Car
	g.car = core.NewRect(c.X, c.Y, c.Width, c.Height)
}

// Render draws the road, coins, obstacles and the car.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	vp := core.FitViewport(g.cfg.Field.Width, g.cfg.Field.Height, dst.Width(), dst.Height(), 0)

	// Road edges sit just outside the car's travel range
	left, _, _, _ := vp.Project(core.NewRect(g.cfg.Car.MinX-10, 0, 1, 1))
	right, _, _, _ := vp.Project(core.NewRect(g.cfg.Car.MaxX+g.cfg.Car.Width+10, 0, 1, 1))
	dst.DrawVLine(left, 0, dst.Height(), RoadChar, core.ColorGray)
	dst.DrawVLine(right, 0, dst.Height(), RoadChar, core.ColorGray)
	for _, lane := range g.cfg.Obstacles.Lanes[1:] {
		x, _, _, _ := vp.Project(core.NewRect(lane-g.cfg.Car.Width/4, 0, 1, 1))
		for y := 0; y < dst.Height(); y += 2 {
			dst.SetColored(x, y, LaneChar, core.ColorGray)
		}
	}

	for _, p := range g.entities.Pickups() {
		vp.Fill(dst, p.Rect, CoinChar, core.ColorBrightYellow)
	}
	for _, o := range g.entities.Obstacles() {
		vp.Fill(dst, o.Rect, ObstacleChar, core.ColorRed)
	}
	vp.Fill(dst, g.car, CarChar, core.ColorBrightBlue)
}

// Register the game with the registry
func init() {
	registry.Register("racer", func() registry.Game {
		return New()
	})
}
