package maze

import (
	"cmp"
	"errors"
	"fmt"
	"math/rand"
	"slices"
)

const (
	minDimension = 3
)

var (
	ErrInvalidDimensions = errors.New("invalid maze dimensions")

	// steps are the carving moves in tie-break order: up, right, down, left.
	steps = []Position{{X: 0, Y: -2}, {X: 2, Y: 0}, {X: 0, Y: 2}, {X: -2, Y: 0}}
)

// RandSource picks the neighbour the filler carves into next.
// *rand.Rand satisfies it.
type RandSource interface {
	Intn(n int) int
}

// Logger receives non-fatal generation anomalies.
type Logger interface {
	Warning(string)
}

// Options configures a Generator.
type Options struct {
	// Rand drives the filler. Defaults to the math/rand package source, which is
	// safe for concurrent use. A seeded *rand.Rand is not; give each goroutine its own.
	Rand RandSource

	// Logger is told when the guaranteed path had to be forced open.
	Logger Logger

	// MaxDimension rejects wider or taller mazes. Zero disables the check.
	MaxDimension int
}

// Generator builds mazes with a guaranteed start to exit path.
type Generator struct {
	opts *Options
}

type globalRand struct{}

func (globalRand) Intn(n int) int { return rand.Intn(n) }

// NewGenerator creates a Generator; nil options select the defaults.
func NewGenerator(opts *Options) *Generator {
	o := Options{}
	if opts != nil {
		o = *opts
	}
	if o.Rand == nil {
		o.Rand = globalRand{}
	}
	if o.MaxDimension < 0 {
		o.MaxDimension = 0
	}
	return &Generator{opts: &o}
}

// Generate creates a maze using the package defaults.
func Generate(width, height int) (*Maze, error) {
	return NewGenerator(nil).Generate(width, height)
}

// Generate builds a fresh width x height maze. The start is (1, 1) and the exit
// is (width-2, height-2). The returned maze is fully carved and owned by the caller.
func (g *Generator) Generate(width, height int) (*Maze, error) {
	if err := g.CheckDimensions(width, height); err != nil {
		return nil, err
	}

	m := New(width, height)
	m.Exit = Position{X: width - 2, Y: height - 2}

	c := &carver{maze: m, exit: m.Exit, visited: newVisitedSet()}
	c.carve(Start)

	if !c.guaranteePath(Start) {
		if g.opts.Logger != nil {
			g.opts.Logger.Warning(fmt.Sprintf("no carved path from %v to exit %v in %dx%d maze, forcing exit open", Start, m.Exit, width, height))
		}
		c.carve(m.Exit)
	}

	c.fill(g.opts.Rand)
	m.set(m.Exit, Exit)

	return m, nil
}

// CheckDimensions reports whether Generate would accept a width x height maze.
func (g *Generator) CheckDimensions(width, height int) error {
	if min(width, height) < minDimension {
		return fmt.Errorf("%w: %dx%d is below %dx%d", ErrInvalidDimensions, width, height, minDimension, minDimension)
	}
	if width == minDimension && height == minDimension {
		return fmt.Errorf("%w: %dx%d puts the exit on the start cell", ErrInvalidDimensions, width, height)
	}
	if g.opts.MaxDimension > 0 && max(width, height) > g.opts.MaxDimension {
		return fmt.Errorf("%w: %dx%d exceeds %d", ErrInvalidDimensions, width, height, g.opts.MaxDimension)
	}
	return nil
}

// carver holds the state of one generation call.
type carver struct {
	maze    *Maze
	exit    Position
	visited *visitedSet
}

// carve opens p and records it as visited.
func (c *carver) carve(p Position) {
	c.maze.set(p, Open)
	c.visited.add(p)
}

// guaranteePath carves from cur toward the exit, always trying the move that
// lands closest to the exit first. It reports whether the exit was connected.
func (c *carver) guaranteePath(cur Position) bool {
	if abs(cur.X-c.exit.X) <= 2 && abs(cur.Y-c.exit.Y) <= 2 {
		c.connect(cur)
		return true
	}

	candidates := make([]Position, 0, len(steps))
	for _, d := range steps {
		candidates = append(candidates, Position{X: cur.X + d.X, Y: cur.Y + d.Y})
	}
	slices.SortStableFunc(candidates, func(a, b Position) int {
		return cmp.Compare(a.Manhattan(c.exit), b.Manhattan(c.exit))
	})

	for _, next := range candidates {
		if !c.maze.Carvable(next) || c.visited.has(next) {
			continue
		}
		c.maze.set(midpoint(cur, next), Open)
		c.carve(next)
		if c.guaranteePath(next) {
			return true
		}
	}

	return false
}

// connect carves a straight run along cur's row to the exit column, then along
// the exit column to the exit row.
func (c *carver) connect(cur Position) {
	x, y := cur.X, cur.Y
	c.carve(Position{X: x, Y: y})
	for x != c.exit.X {
		x += sign(c.exit.X - x)
		c.carve(Position{X: x, Y: y})
	}
	for y != c.exit.Y {
		y += sign(c.exit.Y - y)
		c.carve(Position{X: x, Y: y})
	}
}

// fill runs an iterative recursive backtracker seeded with every visited cell.
// Already open cells are never closed.
func (c *carver) fill(r RandSource) {
	stack := slices.Clone(c.visited.order)
	options := make([]Position, 0, len(steps))

	for len(stack) > 0 {
		cur := stack[len(stack)-1]

		options = options[:0]
		for _, d := range steps {
			next := Position{X: cur.X + d.X, Y: cur.Y + d.Y}
			if c.maze.Carvable(next) && c.maze.At(next) == Wall && !c.visited.has(next) {
				options = append(options, next)
			}
		}

		if len(options) == 0 {
			pop(&stack)
			continue
		}

		next := options[r.Intn(len(options))]
		c.maze.set(midpoint(cur, next), Open)
		c.carve(next)
		stack = append(stack, next)
	}
}

// pop removes and returns the last element of a stack of Positions.
func pop(s *[]Position) Position {
	lastIndex := len(*s) - 1
	popped := (*s)[lastIndex]
	*s = (*s)[:lastIndex]
	return popped
}

func midpoint(a, b Position) Position {
	return Position{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// visitedSet remembers carved cells in insertion order so seeded runs are reproducible.
type visitedSet struct {
	seen  map[Position]struct{}
	order []Position
}

func newVisitedSet() *visitedSet {
	return &visitedSet{seen: make(map[Position]struct{})}
}

func (v *visitedSet) add(p Position) {
	if _, ok := v.seen[p]; ok {
		return
	}
	v.seen[p] = struct{}{}
	v.order = append(v.order, p)
}

func (v *visitedSet) has(p Position) bool {
	_, ok := v.seen[p]
	return ok
}
