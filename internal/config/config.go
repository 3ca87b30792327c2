// Package config provides YAML-based game configuration loading and
// validation for the arcade engines.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Field is the playfield size in world units.
type Field struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// RacerConfig contains all configuration for the Crypto Racer game.
type RacerConfig struct {
	Field     Field        `yaml:"field"`
	Car       RacerCar     `yaml:"car"`
	Obstacles RacerSpawn   `yaml:"obstacles"`
	Pickups   RacerSpawn   `yaml:"pickups"`
	Scoring   RacerScoring `yaml:"scoring"`
}

// RacerCar defines the player car.
type RacerCar struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Speed  float64 `yaml:"speed"` // Horizontal units per tick
	MinX   float64 `yaml:"min_x"`
	MaxX   float64 `yaml:"max_x"`
}

// RacerSpawn defines one kind of transient entity and its spawn policy.
type RacerSpawn struct {
	Lanes       []float64 `yaml:"lanes"` // Fixed x-offsets, chosen uniformly
	Width       float64   `yaml:"width"`
	Height      float64   `yaml:"height"`
	SpawnY      float64   `yaml:"spawn_y"`
	MinSpeed    float64   `yaml:"min_speed"` // Speed drawn from [min, max)
	MaxSpeed    float64   `yaml:"max_speed"`
	Probability float64   `yaml:"probability"`  // Per-tick spawn chance
	PruneMargin float64   `yaml:"prune_margin"` // Removed once y >= height + margin
}

// RacerScoring defines points and rewards.
type RacerScoring struct {
	PerTick      int     `yaml:"per_tick"`
	PickupPoints int     `yaml:"pickup_points"`
	PickupReward float64 `yaml:"pickup_reward"`
}

// MazeConfig contains all configuration for the Try Harder maze game.
type MazeConfig struct {
	Field   Field       `yaml:"field"`
	Grid    MazeGrid    `yaml:"grid"`
	Actor   MazeActor   `yaml:"actor"`
	Ability MazeAbility `yaml:"ability"`
	Scoring MazeScoring `yaml:"scoring"`
}

// GridPos addresses a grid cell.
type GridPos struct {
	Col int `yaml:"col"`
	Row int `yaml:"row"`
}

// MazeGrid defines the wall grid and its generator.
type MazeGrid struct {
	Cols        int     `yaml:"cols"`
	Rows        int     `yaml:"rows"`
	CellSize    float64 `yaml:"cell_size"`
	RandomWalls int     `yaml:"random_walls"`
	Start       GridPos `yaml:"start"`
	Exit        GridPos `yaml:"exit"`
}

// MazeActor defines the player square.
type MazeActor struct {
	Size  float64 `yaml:"size"`
	Speed float64 `yaml:"speed"`
}

// MazeAbility defines the single-use phase power.
type MazeAbility struct {
	Ticks           int     `yaml:"ticks"`
	SpeedMultiplier float64 `yaml:"speed_multiplier"`
}

// MazeScoring holds the constants of the round-end score formulas.
type MazeScoring struct {
	LossBase       int     `yaml:"loss_base"`
	LossPerSecond  int     `yaml:"loss_per_second"`
	LossPerLevel   int     `yaml:"loss_per_level"`
	WinBase        int     `yaml:"win_base"`
	WinPerSecond   int     `yaml:"win_per_second"`
	WinPerLevel    int     `yaml:"win_per_level"`
	NoAbilityBonus int     `yaml:"no_ability_bonus"`
	RewardPerPoint float64 `yaml:"reward_per_point"`
}

// Validate checks the racer config for values the engine cannot run with.
func (c RacerConfig) Validate() error {
	if err := c.Field.validate(); err != nil {
		return err
	}
	if c.Car.Width <= 0 || c.Car.Height <= 0 {
		return fmt.Errorf("%w: car size must be positive", ErrInvalid)
	}
	if c.Car.MinX > c.Car.MaxX {
		return fmt.Errorf("%w: car min_x %v exceeds max_x %v", ErrInvalid, c.Car.MinX, c.Car.MaxX)
	}
	if err := c.Obstacles.validate("obstacles"); err != nil {
		return err
	}
	return c.Pickups.validate("pickups")
}

// Validate checks the maze config for values the engine cannot run with.
func (c MazeConfig) Validate() error {
	if err := c.Field.validate(); err != nil {
		return err
	}
	g := c.Grid
	if g.Cols < 3 || g.Rows < 3 {
		return fmt.Errorf("%w: grid must be at least 3x3, got %dx%d", ErrInvalid, g.Cols, g.Rows)
	}
	if g.CellSize <= 0 {
		return fmt.Errorf("%w: cell_size must be positive", ErrInvalid)
	}
	if g.RandomWalls < 0 {
		return fmt.Errorf("%w: random_walls must not be negative", ErrInvalid)
	}
	if !g.interior(g.Start) {
		return fmt.Errorf("%w: start %+v is not an interior cell", ErrInvalid, g.Start)
	}
	if !g.interior(g.Exit) {
		return fmt.Errorf("%w: exit %+v is not an interior cell", ErrInvalid, g.Exit)
	}
	if c.Actor.Size <= 0 || c.Actor.Size > g.CellSize {
		return fmt.Errorf("%w: actor size must be in (0, cell_size]", ErrInvalid)
	}
	if c.Ability.Ticks < 0 {
		return fmt.Errorf("%w: ability ticks must not be negative", ErrInvalid)
	}
	return nil
}

func (f Field) validate() error {
	if f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("%w: field must have a positive size", ErrInvalid)
	}
	return nil
}

func (s RacerSpawn) validate(name string) error {
	if len(s.Lanes) == 0 {
		return fmt.Errorf("%w: %s need at least one lane", ErrInvalid, name)
	}
	if s.Probability < 0 || s.Probability > 1 {
		return fmt.Errorf("%w: %s probability %v outside [0, 1]", ErrInvalid, name, s.Probability)
	}
	if s.MinSpeed > s.MaxSpeed {
		return fmt.Errorf("%w: %s min_speed exceeds max_speed", ErrInvalid, name)
	}
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: %s size must be positive", ErrInvalid, name)
	}
	return nil
}

func (g MazeGrid) interior(p GridPos) bool {
	return p.Col > 0 && p.Col < g.Cols-1 && p.Row > 0 && p.Row < g.Rows-1
}
