package racer

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/stake-arcade/internal/config"
	"github.com/vovakirdan/stake-arcade/internal/core"
)

// quietConfig returns the default config with spawning disabled so tests
// control every entity on the road.
func quietConfig() config.RacerConfig {
	cfg := config.DefaultRacerConfig()
	cfg.Obstacles.Probability = 0
	cfg.Pickups.Probability = 0
	return cfg
}

func newStarted(cfg config.RacerConfig, seed int64) *Game {
	g := NewWithConfig(cfg)
	g.Begin(rand.New(rand.NewSource(seed)), core.Outcome{})
	return g
}

func tick(n int, keys *core.KeyTracker) core.Tick {
	return core.Tick{N: n, Keys: keys}
}

func TestObstacleCollisionEndsRound(t *testing.T) {
	g := newStarted(quietConfig(), 1)
	g.entities.obstacles = append(g.entities.obstacles, Obstacle{
		Rect:  core.NewRect(320, -80, 45, 70),
		Speed: 4,
	})

	keys := &core.KeyTracker{}
	endedAt := 0
	for i := 1; i <= 120; i++ {
		out := g.Step(tick(i, keys))
		if out.Ended {
			if out.Victory {
				t.Fatal("crash must not be a victory")
			}
			endedAt = i
			break
		}
	}

	// Bottom edge -80+70+4n first passes the car's top edge at y=400 on tick 103
	if endedAt != 103 {
		t.Fatalf("collision fired on tick %d, expected 103", endedAt)
	}
	if got := g.Telemetry().Score; got != 103 {
		t.Errorf("score = %d, expected 103", got)
	}
}

func TestObstacleInOtherLaneIsHarmless(t *testing.T) {
	g := newStarted(quietConfig(), 1)
	g.entities.obstacles = append(g.entities.obstacles, Obstacle{
		Rect:  core.NewRect(160, -80, 45, 70),
		Speed: 4,
	})

	keys := &core.KeyTracker{}
	for i := 1; i <= 200; i++ {
		if g.Step(tick(i, keys)).Ended {
			t.Fatalf("round ended on tick %d without a lane overlap", i)
		}
	}
}

func TestScoreWithPickups(t *testing.T) {
	g := newStarted(quietConfig(), 1)
	for i := 0; i < 3; i++ {
		g.entities.pickups = append(g.entities.pickups, Pickup{
			Rect: core.NewRect(290+float64(i)*5, 410, 25, 25),
		})
	}

	keys := &core.KeyTracker{}
	for i := 1; i <= 100; i++ {
		if g.Step(tick(i, keys)).Ended {
			t.Fatalf("unexpected round end on tick %d", i)
		}
	}

	tel := g.Telemetry()
	if tel.Score != 130 {
		t.Errorf("score = %d, expected 130", tel.Score)
	}
	if math.Abs(tel.TokensEarned-0.003) > 1e-9 {
		t.Errorf("tokens = %v, expected 0.003", tel.TokensEarned)
	}
	if g.Collected() != 3 {
		t.Errorf("collected = %d, expected 3", g.Collected())
	}
	if len(g.entities.Pickups()) != 0 {
		t.Error("collected pickups must leave the store immediately")
	}
}

func TestCrashTickSkipsPickups(t *testing.T) {
	g := newStarted(quietConfig(), 1)
	g.entities.obstacles = append(g.entities.obstacles, Obstacle{Rect: core.NewRect(280, 400, 45, 70)})
	g.entities.pickups = append(g.entities.pickups, Pickup{Rect: core.NewRect(290, 410, 25, 25)})

	out := g.Step(tick(1, &core.KeyTracker{}))
	if !out.Ended {
		t.Fatal("expected a crash")
	}
	if g.Collected() != 0 || g.Telemetry().TokensEarned != 0 {
		t.Error("pickup must not be collected on the crash tick")
	}
}

func TestEntitiesPrunedPastBoundary(t *testing.T) {
	cfg := config.DefaultRacerConfig()
	cfg.Obstacles.Probability = 1
	cfg.Pickups.Probability = 1
	// Keep the car out of every lane so the round never ends
	cfg.Car.MinX = -1000
	cfg.Car.MaxX = -1000
	g := newStarted(cfg, 7)

	obstacleLimit := cfg.Field.Height + cfg.Obstacles.PruneMargin
	pickupLimit := cfg.Field.Height + cfg.Pickups.PruneMargin
	keys := &core.KeyTracker{}

	for i := 1; i <= 1000; i++ {
		if g.Step(tick(i, keys)).Ended {
			t.Fatalf("unexpected round end on tick %d", i)
		}
		for _, o := range g.entities.Obstacles() {
			if o.Y >= obstacleLimit {
				t.Fatalf("tick %d: obstacle at y=%v past %v", i, o.Y, obstacleLimit)
			}
		}
		for _, p := range g.entities.Pickups() {
			if p.Y >= pickupLimit {
				t.Fatalf("tick %d: pickup at y=%v past %v", i, p.Y, pickupLimit)
			}
		}
	}

	// Slowest obstacle needs (500+100+80)/3 ticks to leave, one spawns per tick
	if n := len(g.entities.Obstacles()); n > 227 {
		t.Errorf("%d obstacles alive, store is not bounded", n)
	}
}

func TestSpawnedEntitiesUseLanesAndSpeeds(t *testing.T) {
	cfg := config.DefaultRacerConfig()
	cfg.Obstacles.Probability = 1
	cfg.Pickups.Probability = 1
	cfg.Car.MinX = -1000
	cfg.Car.MaxX = -1000
	g := newStarted(cfg, 99)

	g.Step(tick(1, &core.KeyTracker{}))

	inLanes := func(x float64, lanes []float64) bool {
		for _, l := range lanes {
			if l == x {
				return true
			}
		}
		return false
	}

	if len(g.entities.Obstacles()) != 1 || len(g.entities.Pickups()) != 1 {
		t.Fatalf("expected one of each entity, got %d obstacles and %d pickups",
			len(g.entities.Obstacles()), len(g.entities.Pickups()))
	}
	o := g.entities.Obstacles()[0]
	if !inLanes(o.X, cfg.Obstacles.Lanes) || o.Y != cfg.Obstacles.SpawnY {
		t.Errorf("obstacle spawned at (%v,%v)", o.X, o.Y)
	}
	if o.Speed < 3 || o.Speed >= 5 {
		t.Errorf("obstacle speed %v outside [3,5)", o.Speed)
	}
	p := g.entities.Pickups()[0]
	if !inLanes(p.X, cfg.Pickups.Lanes) || p.Y != cfg.Pickups.SpawnY {
		t.Errorf("pickup spawned at (%v,%v)", p.X, p.Y)
	}
	if p.Speed < 2 || p.Speed >= 3 {
		t.Errorf("pickup speed %v outside [2,3)", p.Speed)
	}
}

func TestCarClampedToRoad(t *testing.T) {
	tests := []struct {
		name string
		key  core.Key
		want float64
	}{
		{"left edge", core.KeyLeft, 60},
		{"right edge", core.KeyRight, 490},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newStarted(quietConfig(), 1)
			keys := &core.KeyTracker{}
			keys.Set(tt.key, true)

			for i := 1; i <= 100; i++ {
				g.Step(tick(i, keys))
			}
			if g.Car().X != tt.want {
				t.Errorf("car x = %v, expected %v", g.Car().X, tt.want)
			}
		})
	}
}

func TestBothDirectionsCancel(t *testing.T) {
	g := newStarted(quietConfig(), 1)
	keys := &core.KeyTracker{}
	keys.Set(core.KeyLeft, true)
	keys.Set(core.KeyRight, true)

	g.Step(tick(1, keys))
	if g.Car().X != 280 {
		t.Errorf("car moved to %v with both keys held", g.Car().X)
	}
}

func TestGameDeterminism(t *testing.T) {
	run := func() (int, int) {
		g := newStarted(config.DefaultRacerConfig(), 12345)
		keys := &core.KeyTracker{}
		for i := 1; i <= 2000; i++ {
			keys.Set(core.KeyLeft, (i/40)%2 == 0)
			keys.Set(core.KeyRight, (i/40)%2 == 1)
			if g.Step(tick(i, keys)).Ended {
				return g.Telemetry().Score, i
			}
		}
		return g.Telemetry().Score, 2000
	}

	score1, ticks1 := run()
	score2, ticks2 := run()
	if score1 != score2 || ticks1 != ticks2 {
		t.Errorf("same seed diverged: (%d,%d) vs (%d,%d)", score1, ticks1, score2, ticks2)
	}
}

func TestBeginResetsRound(t *testing.T) {
	g := newStarted(quietConfig(), 1)
	g.entities.pickups = append(g.entities.pickups, Pickup{Rect: core.NewRect(290, 410, 25, 25)})
	g.entities.obstacles = append(g.entities.obstacles, Obstacle{Rect: core.NewRect(80, 0, 45, 70), Speed: 3})
	keys := &core.KeyTracker{}
	keys.Set(core.KeyRight, true)
	for i := 1; i <= 5; i++ {
		g.Step(tick(i, keys))
	}

	g.Begin(rand.New(rand.NewSource(2)), core.Outcome{Ended: true})

	tel := g.Telemetry()
	if tel.Score != 0 || tel.TokensEarned != 0 {
		t.Errorf("telemetry not reset: %+v", tel)
	}
	if g.entities.Len() != 0 {
		t.Errorf("%d entities survived Begin", g.entities.Len())
	}
	if g.Car() != core.NewRect(280, 400, 45, 70) {
		t.Errorf("car not at spawn: %+v", g.Car())
	}
}

func TestStepBeforeBeginIsNoOp(t *testing.T) {
	g := NewWithConfig(quietConfig())
	if out := g.Step(tick(1, &core.KeyTracker{})); out.Ended {
		t.Error("unstarted game should not end")
	}
	if g.Telemetry().Score != 0 {
		t.Error("unstarted game should not score")
	}
}

func TestRender(t *testing.T) {
	g := newStarted(quietConfig(), 1)
	g.entities.obstacles = append(g.entities.obstacles, Obstacle{Rect: core.NewRect(80, 100, 45, 70)})

	screen := core.NewScreen(60, 20)
	g.Render(screen)

	var car, obstacle bool
	for y := 0; y < screen.Height(); y++ {
		for x := 0; x < screen.Width(); x++ {
			switch screen.Get(x, y) {
			case CarChar:
				car = true
			case ObstacleChar:
				obstacle = true
			}
		}
	}
	if !car {
		t.Error("car not drawn")
	}
	if !obstacle {
		t.Error("obstacle not drawn")
	}
}
