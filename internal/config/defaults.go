package config

import (
	_ "embed"
)

//go:embed defaults/racer.yaml
var defaultRacerYAML []byte

//go:embed defaults/maze.yaml
var defaultMazeYAML []byte

// DefaultRacerConfig returns the hardcoded Crypto Racer configuration.
func DefaultRacerConfig() RacerConfig {
	return RacerConfig{
		Field: Field{Width: 600, Height: 500},
		Car: RacerCar{
			X:      280,
			Y:      400,
			Width:  45,
			Height: 70,
			Speed:  6,
			MinX:   60,
			MaxX:   490, // field width - 110
		},
		Obstacles: RacerSpawn{
			Lanes:       []float64{80, 160, 240, 320, 400, 480},
			Width:       45,
			Height:      70,
			SpawnY:      -80,
			MinSpeed:    3,
			MaxSpeed:    5,
			Probability: 0.02,
			PruneMargin: 100,
		},
		Pickups: RacerSpawn{
			Lanes:       []float64{100, 180, 260, 340, 420, 500},
			Width:       25,
			Height:      25,
			SpawnY:      -25,
			MinSpeed:    2,
			MaxSpeed:    3,
			Probability: 0.015,
			PruneMargin: 50,
		},
		Scoring: RacerScoring{
			PerTick:      1,
			PickupPoints: 10,
			PickupReward: 0.001,
		},
	}
}

// DefaultMazeConfig returns the hardcoded Try Harder configuration.
func DefaultMazeConfig() MazeConfig {
	return MazeConfig{
		Field: Field{Width: 600, Height: 500},
		Grid: MazeGrid{
			Cols:        24,
			Rows:        20,
			CellSize:    25,
			RandomWalls: 60,
			Start:       GridPos{Col: 1, Row: 1},
			Exit:        GridPos{Col: 22, Row: 18},
		},
		Actor: MazeActor{
			Size:  20,
			Speed: 3,
		},
		Ability: MazeAbility{
			Ticks:           120, // 2 seconds at 60fps
			SpeedMultiplier: 2,
		},
		Scoring: MazeScoring{
			LossBase:       1000,
			LossPerSecond:  10,
			LossPerLevel:   100,
			WinBase:        500,
			WinPerSecond:   5,
			WinPerLevel:    200,
			NoAbilityBonus: 300,
			RewardPerPoint: 0.0001,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "racer":
		return defaultRacerYAML
	case "maze":
		return defaultMazeYAML
	default:
		return nil
	}
}
