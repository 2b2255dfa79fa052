/*
Package maze provides tools for creating and checking rectangular grid mazes.

A Maze is a row-major matrix of Wall, Open and Exit cells whose outer boundary is
always Wall. Players start at (1, 1); the generator carves a guaranteed path from
there to the exit at (width-2, height-2) and then fills the rest of the grid with
a randomized depth-first carve.

The package also defines the Record exchanged with storage and clients, and a
breadth-first solvability check.
*/
package maze

import (
	"strings"
)

// Start is the fixed player start cell.
var Start = Position{X: 1, Y: 1}

// Maze represents a rectangular grid maze.
type Maze struct {
	Width  int      // Width of the maze (number of columns)
	Height int      // Height of the maze (number of rows)
	Grid   [][]Cell // Row-major cells, Grid[y][x]
	Exit   Position // Location of the Exit cell
}

// New allocates a height x width maze with every cell set to Wall.
func New(width, height int) *Maze {
	grid := make([][]Cell, height)
	for y := range grid {
		grid[y] = make([]Cell, width)
		for x := range grid[y] {
			grid[y][x] = Wall
		}
	}

	return &Maze{
		Width:  width,
		Height: height,
		Grid:   grid,
	}
}

// InBounds reports whether p lies anywhere on the grid, boundary included.
func (m *Maze) InBounds(p Position) bool {
	return p.X >= 0 && p.X < m.Width && p.Y >= 0 && p.Y < m.Height
}

// Carvable reports whether p is a strictly interior cell. The boundary is never carved.
func (m *Maze) Carvable(p Position) bool {
	return p.X > 0 && p.X < m.Width-1 && p.Y > 0 && p.Y < m.Height-1
}

// At returns the cell at p.
func (m *Maze) At(p Position) Cell {
	return m.Grid[p.Y][p.X]
}

func (m *Maze) set(p Position, c Cell) {
	m.Grid[p.Y][p.X] = c
}

// IsSolvable reports whether the start cell reaches the exit.
func (m *Maze) IsSolvable() bool {
	return IsSolvable(m.Grid)
}

// Rows returns the grid in its serialized form, one string per row.
func (m *Maze) Rows() []string {
	rows := make([]string, len(m.Grid))
	for y, row := range m.Grid {
		var b strings.Builder
		for _, c := range row {
			b.WriteString(c.String())
		}
		rows[y] = b.String()
	}
	return rows
}

// String provides a textual representation of the maze with the start marked as S.
func (m *Maze) String() string {
	var b strings.Builder
	for y, row := range m.Rows() {
		if y == Start.Y && len(row) > Start.X && m.Grid[Start.Y][Start.X] == Open {
			row = row[:Start.X] + "S" + row[Start.X+1:]
		}
		b.WriteString(row)
		b.WriteByte('\n')
	}
	return b.String()
}
