package maze

import (
	"errors"
	"fmt"
)

// Cell represents a single cell in a maze grid.
type Cell uint8

const (
	// Wall is solid and never walkable.
	Wall Cell = iota
	// Open is a walkable corridor cell.
	Open
	// Exit is the walkable goal cell. A grid holds exactly one.
	Exit
)

// Serialized cell values used in maze files.
const (
	WallChar = "#"
	OpenChar = " "
	ExitChar = "E"
)

var ErrInvalidCell = errors.New("invalid cell value")

// String returns the single-character form of the cell.
func (c Cell) String() string {
	switch c {
	case Wall:
		return WallChar
	case Open:
		return OpenChar
	case Exit:
		return ExitChar
	default:
		return "?"
	}
}

// Walkable reports whether a player may stand on the cell.
func (c Cell) Walkable() bool {
	return c == Open || c == Exit
}

// ParseCell converts a serialized cell value into a Cell.
func ParseCell(s string) (Cell, error) {
	switch s {
	case WallChar:
		return Wall, nil
	case OpenChar:
		return Open, nil
	case ExitChar:
		return Exit, nil
	default:
		return Wall, fmt.Errorf("%w: %q", ErrInvalidCell, s)
	}
}

// Position is a grid coordinate, x being the column and y the row.
type Position struct {
	X int `json:"x" bson:"x"`
	Y int `json:"y" bson:"y"`
}

// Manhattan returns the taxicab distance between p and o.
func (p Position) Manhattan(o Position) int {
	return abs(p.X-o.X) + abs(p.Y-o.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// String formats p as "(x, y)".
func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}
