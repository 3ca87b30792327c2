package maze

import (
	"math/rand"

	"github.com/vovakirdan/stake-arcade/internal/config"
	"github.com/vovakirdan/stake-arcade/internal/core"
)

// Grid is the wall matrix of one round. It is immutable once generated.
type Grid struct {
	cols, rows int
	cell       float64
	walls      []bool // Row-major, true = wall
	start      config.GridPos
	exit       config.GridPos
}

// NewGrid creates an all-clear grid.
func NewGrid(cols, rows int, cell float64) *Grid {
	return &Grid{
		cols:  cols,
		rows:  rows,
		cell:  cell,
		walls: make([]bool, cols*rows),
	}
}

// Generate builds a fresh grid: solid border, layout.RandomWalls uniformly
// placed interior walls (repeats allowed), then start and exit forced clear.
// Start and exit are not guaranteed to be connected.
func Generate(rng *rand.Rand, layout config.MazeGrid) *Grid {
	g := NewGrid(layout.Cols, layout.Rows, layout.CellSize)

	for col := 0; col < g.cols; col++ {
		g.SetWall(col, 0, true)
		g.SetWall(col, g.rows-1, true)
	}
	for row := 0; row < g.rows; row++ {
		g.SetWall(0, row, true)
		g.SetWall(g.cols-1, row, true)
	}

	for i := 0; i < layout.RandomWalls; i++ {
		col := rng.Intn(g.cols-2) + 1
		row := rng.Intn(g.rows-2) + 1
		g.SetWall(col, row, true)
	}

	g.start = layout.Start
	g.exit = layout.Exit
	g.SetWall(layout.Start.Col, layout.Start.Row, false)
	g.SetWall(layout.Exit.Col, layout.Exit.Row, false)
	return g
}

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// CellSize returns the side of one cell in world units.
func (g *Grid) CellSize() float64 { return g.cell }

// Start returns the spawn cell.
func (g *Grid) Start() config.GridPos { return g.start }

// Exit returns the goal cell.
func (g *Grid) Exit() config.GridPos { return g.exit }

// Wall reports whether a cell is occupied. Cells off the grid are not walls;
// leaving the playfield is handled as a separate bounds check.
func (g *Grid) Wall(col, row int) bool {
	if col < 0 || col >= g.cols || row < 0 || row >= g.rows {
		return false
	}
	return g.walls[row*g.cols+col]
}

// SetWall sets or clears a cell. Out-of-range cells are ignored.
func (g *Grid) SetWall(col, row int, wall bool) {
	if col < 0 || col >= g.cols || row < 0 || row >= g.rows {
		return
	}
	g.walls[row*g.cols+col] = wall
}

// CellRect returns the world rectangle of a cell.
func (g *Grid) CellRect(col, row int) core.Rect {
	return core.NewRect(float64(col)*g.cell, float64(row)*g.cell, g.cell, g.cell)
}

// HitsWall projects r onto the grid and reports whether any covered cell is
// a wall. A rectangle that only touches a wall edge does not hit it.
func (g *Grid) HitsWall(r core.Rect) bool {
	c0, c1 := core.CellSpan(r.X, r.Right(), g.cell)
	r0, r1 := core.CellSpan(r.Y, r.Bottom(), g.cell)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if g.Wall(col, row) {
				return true
			}
		}
	}
	return false
}

// WallCount returns the number of occupied cells.
func (g *Grid) WallCount() int {
	n := 0
	for _, w := range g.walls {
		if w {
			n++
		}
	}
	return n
}
