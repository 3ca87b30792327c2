package maze

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/stake-arcade/internal/config"
	"github.com/vovakirdan/stake-arcade/internal/core"
)

func TestGenerateBorderAndOpenings(t *testing.T) {
	spec := config.DefaultMazeConfig().Grid

	for seed := int64(0); seed < 200; seed++ {
		g := Generate(rand.New(rand.NewSource(seed)), spec)

		for col := 0; col < g.Cols(); col++ {
			if !g.Wall(col, 0) || !g.Wall(col, g.Rows()-1) {
				t.Fatalf("seed %d: border column %d is open", seed, col)
			}
		}
		for row := 0; row < g.Rows(); row++ {
			if !g.Wall(0, row) || !g.Wall(g.Cols()-1, row) {
				t.Fatalf("seed %d: border row %d is open", seed, row)
			}
		}
		if g.Wall(spec.Start.Col, spec.Start.Row) {
			t.Fatalf("seed %d: start cell is a wall", seed)
		}
		if g.Wall(spec.Exit.Col, spec.Exit.Row) {
			t.Fatalf("seed %d: exit cell is a wall", seed)
		}

		border := 2*spec.Cols + 2*(spec.Rows-2)
		if n := g.WallCount(); n > border+spec.RandomWalls {
			t.Fatalf("seed %d: %d walls, at most %d expected", seed, n, border+spec.RandomWalls)
		}
	}
}

func TestGenerateIsSeeded(t *testing.T) {
	spec := config.DefaultMazeConfig().Grid
	a := Generate(rand.New(rand.NewSource(42)), spec)
	b := Generate(rand.New(rand.NewSource(42)), spec)

	for row := 0; row < spec.Rows; row++ {
		for col := 0; col < spec.Cols; col++ {
			if a.Wall(col, row) != b.Wall(col, row) {
				t.Fatalf("same seed produced different cell (%d,%d)", col, row)
			}
		}
	}
}

func TestGenerateWithoutRandomWalls(t *testing.T) {
	spec := config.DefaultMazeConfig().Grid
	spec.RandomWalls = 0
	g := Generate(rand.New(rand.NewSource(1)), spec)

	want := 2*spec.Cols + 2*(spec.Rows-2)
	if n := g.WallCount(); n != want {
		t.Errorf("wall count = %d, expected border only (%d)", n, want)
	}
}

func TestHitsWall(t *testing.T) {
	g := NewGrid(5, 5, 25)
	g.SetWall(2, 1, true)

	tests := []struct {
		name  string
		actor core.Rect
		want  bool
	}{
		{"inside open cell", core.NewRect(25, 25, 20, 20), false},
		{"touching wall edge", core.NewRect(30, 25, 20, 20), false},
		{"one unit into wall", core.NewRect(31, 25, 20, 20), true},
		{"fully inside wall", core.NewRect(52, 27, 20, 20), true},
		{"below wall", core.NewRect(50, 50, 20, 20), false},
		{"corner overlap", core.NewRect(74, 49, 20, 20), true},
		{"off the grid", core.NewRect(-40, -40, 20, 20), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.HitsWall(tt.actor); got != tt.want {
				t.Errorf("HitsWall(%+v) = %v, expected %v", tt.actor, got, tt.want)
			}
		})
	}
}

func TestWallOutOfRange(t *testing.T) {
	g := NewGrid(3, 3, 10)
	g.SetWall(-1, 0, true)
	g.SetWall(3, 3, true)

	if g.WallCount() != 0 {
		t.Error("out-of-range SetWall should be ignored")
	}
	if g.Wall(-1, 0) || g.Wall(0, 5) {
		t.Error("out-of-range cells are not walls")
	}
}

func TestCellRect(t *testing.T) {
	g := NewGrid(24, 20, 25)
	got := g.CellRect(22, 18)
	want := core.NewRect(550, 450, 25, 25)
	if got != want {
		t.Errorf("CellRect = %+v, expected %+v", got, want)
	}
}
