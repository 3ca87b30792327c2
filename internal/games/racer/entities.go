package racer

import (
	"math/rand"

	"github.com/vovakirdan/stake-arcade/internal/config"
	"github.com/vovakirdan/stake-arcade/internal/core"
)

// Obstacle is a car coming down the road. Touching one ends the round.
type Obstacle struct {
	core.Rect
	Speed float64 // Units per tick, fixed at spawn
}

// Pickup is a coin worth points and tokens.
type Pickup struct {
	core.Rect
	Speed     float64
	Collected bool
}

// EntityStore owns the transient entities of one round.
type EntityStore struct {
	obstacles []Obstacle
	pickups   []Pickup
}

// Reset drops every entity.
func (s *EntityStore) Reset() {
	s.obstacles = s.obstacles[:0]
	s.pickups = s.pickups[:0]
}

// Obstacles returns the live obstacles.
func (s *EntityStore) Obstacles() []Obstacle {
	return s.obstacles
}

// Pickups returns the live pickups.
func (s *EntityStore) Pickups() []Pickup {
	return s.pickups
}

// Len returns the number of live entities.
func (s *EntityStore) Len() int {
	return len(s.obstacles) + len(s.pickups)
}

// Update advances, prunes and spawns both entity kinds for one tick.
// Obstacles are handled before pickups so the random draws happen in a
// fixed order for a given seed.
func (s *EntityStore) Update(rng *rand.Rand, cfg *config.RacerConfig) {
	limit := cfg.Field.Height

	kept := s.obstacles[:0]
	for _, o := range s.obstacles {
		o.Y += o.Speed
		if o.Y < limit+cfg.Obstacles.PruneMargin {
			kept = append(kept, o)
		}
	}
	s.obstacles = kept
	if rect, speed, ok := spawn(rng, cfg.Obstacles); ok {
		s.obstacles = append(s.obstacles, Obstacle{Rect: rect, Speed: speed})
	}

	keptPickups := s.pickups[:0]
	for _, p := range s.pickups {
		p.Y += p.Speed
		if p.Y < limit+cfg.Pickups.PruneMargin && !p.Collected {
			keptPickups = append(keptPickups, p)
		}
	}
	s.pickups = keptPickups
	if rect, speed, ok := spawn(rng, cfg.Pickups); ok {
		s.pickups = append(s.pickups, Pickup{Rect: rect, Speed: speed})
	}
}

// HitsObstacle reports whether any obstacle overlaps the car.
func (s *EntityStore) HitsObstacle(car core.Rect) bool {
	for _, o := range s.obstacles {
		if car.Intersects(o.Rect) {
			return true
		}
	}
	return false
}

// Collect removes every pickup overlapping the car and returns how many
// were taken.
func (s *EntityStore) Collect(car core.Rect) int {
	n := 0
	kept := s.pickups[:0]
	for _, p := range s.pickups {
		if !p.Collected && car.Intersects(p.Rect) {
			p.Collected = true
			n++
			continue
		}
		kept = append(kept, p)
	}
	s.pickups = kept
	return n
}

// spawn rolls the per-tick spawn chance and, on success, places a new
// entity in a random lane above the visible field.
func spawn(rng *rand.Rand, sc config.RacerSpawn) (core.Rect, float64, bool) {
	if rng.Float64() >= sc.Probability {
		return core.Rect{}, 0, false
	}
	lane := sc.Lanes[rng.Intn(len(sc.Lanes))]
	speed := sc.MinSpeed + rng.Float64()*(sc.MaxSpeed-sc.MinSpeed)
	return core.NewRect(lane, sc.SpawnY, sc.Width, sc.Height), speed, true
}
