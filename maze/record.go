package maze

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ProceduralLayout is the layout placeholder meaning "generate on demand".
const ProceduralLayout = "PROCEDURAL"

var (
	ErrProceduralLayout = errors.New("layout has not been generated")
	ErrLayoutMismatch   = errors.New("layout does not match maze dimensions")
	ErrNotFound         = errors.New("maze not found")
)

// Direction is a cardinal facing.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// PlayerStart is where, and facing which way, a player begins.
type PlayerStart struct {
	X         int       `json:"x" bson:"x"`
	Y         int       `json:"y" bson:"y"`
	Direction Direction `json:"direction" bson:"direction"`
}

// Position returns the start coordinates.
func (ps PlayerStart) Position() Position {
	return Position{X: ps.X, Y: ps.Y}
}

// Layout is either a concrete grid or the procedural placeholder.
type Layout struct {
	Rows       [][]Cell
	Procedural bool
}

// MarshalJSON encodes the layout as rows of single-character strings, or as
// the "PROCEDURAL" placeholder.
func (l Layout) MarshalJSON() ([]byte, error) {
	if l.Procedural {
		return json.Marshal(ProceduralLayout)
	}

	rows := make([][]string, len(l.Rows))
	for y, row := range l.Rows {
		rows[y] = make([]string, len(row))
		for x, c := range row {
			rows[y][x] = c.String()
		}
	}
	return json.Marshal(rows)
}

// UnmarshalJSON decodes either form produced by MarshalJSON.
func (l *Layout) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var placeholder string
		if err := json.Unmarshal(data, &placeholder); err != nil {
			return err
		}
		if placeholder != ProceduralLayout {
			return fmt.Errorf("unknown layout placeholder %q", placeholder)
		}
		*l = Layout{Procedural: true}
		return nil
	}

	var raw [][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	rows := make([][]Cell, len(raw))
	for y, row := range raw {
		rows[y] = make([]Cell, len(row))
		for x, s := range row {
			c, err := ParseCell(s)
			if err != nil {
				return fmt.Errorf("layout (%d, %d): %w", x, y, err)
			}
			rows[y][x] = c
		}
	}
	*l = Layout{Rows: rows}
	return nil
}

// Record is the persisted and exchanged form of a maze.
type Record struct {
	ID          uuid.UUID   `json:"id"`
	AuthorID    uuid.UUID   `json:"authorId"`
	Name        string      `json:"name"`
	Width       int         `json:"width"`
	Height      int         `json:"height"`
	PlayerStart PlayerStart `json:"playerStart"`
	Exit        Position    `json:"exit"`
	Layout      Layout      `json:"layout"`
}

// NewRecord wraps a generated maze in a Record with a fresh ID.
func NewRecord(name string, m *Maze) *Record {
	return &Record{
		ID:     uuid.New(),
		Name:   name,
		Width:  m.Width,
		Height: m.Height,
		PlayerStart: PlayerStart{
			X:         Start.X,
			Y:         Start.Y,
			Direction: facing(m, Start),
		},
		Exit:   m.Exit,
		Layout: Layout{Rows: m.Grid},
	}
}

// Maze converts a concrete record into a Maze.
func (r *Record) Maze() (*Maze, error) {
	if r.Layout.Procedural {
		return nil, ErrProceduralLayout
	}
	if len(r.Layout.Rows) != r.Height {
		return nil, fmt.Errorf("%w: %d rows, height %d", ErrLayoutMismatch, len(r.Layout.Rows), r.Height)
	}
	for y, row := range r.Layout.Rows {
		if len(row) != r.Width {
			return nil, fmt.Errorf("%w: row %d has %d cells, width %d", ErrLayoutMismatch, y, len(row), r.Width)
		}
	}

	return &Maze{
		Width:  r.Width,
		Height: r.Height,
		Grid:   r.Layout.Rows,
		Exit:   r.Exit,
	}, nil
}

// Materialize replaces a procedural layout with a freshly generated grid.
// Concrete records are left untouched.
func (r *Record) Materialize(g *Generator) error {
	if !r.Layout.Procedural {
		return nil
	}

	m, err := g.Generate(r.Width, r.Height)
	if err != nil {
		return err
	}

	r.Layout = Layout{Rows: m.Grid}
	r.Exit = m.Exit
	if start := r.PlayerStart.Position(); !m.InBounds(start) || !m.At(start).Walkable() {
		r.PlayerStart = PlayerStart{X: Start.X, Y: Start.Y, Direction: facing(m, Start)}
	}
	return nil
}

// facing picks the first walkable direction from p, checking north, east, south, west.
func facing(m *Maze, p Position) Direction {
	for i, d := range neighbours {
		next := Position{X: p.X + d.X, Y: p.Y + d.Y}
		if m.InBounds(next) && m.At(next).Walkable() {
			return Direction(i)
		}
	}
	return East
}

// Strings returns each row of a concrete layout as one string.
func (l Layout) Strings() []string {
	return (&Maze{Grid: l.Rows}).Rows()
}

// ParseRows builds a grid from one string per row.
func ParseRows(rows []string) ([][]Cell, error) {
	grid := make([][]Cell, len(rows))
	for y, row := range rows {
		grid[y] = make([]Cell, 0, len(row))
		for x, r := range row {
			c, err := ParseCell(string(r))
			if err != nil {
				return nil, fmt.Errorf("row %d, column %d: %w", y, x, err)
			}
			grid[y] = append(grid[y], c)
		}
	}
	return grid, nil
}
