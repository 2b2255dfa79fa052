package maze

var neighbours = []Position{{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}}

// FindExit returns the position of the first Exit cell in row-major order.
func FindExit(grid [][]Cell) (Position, bool) {
	for y, row := range grid {
		for x, c := range row {
			if c == Exit {
				return Position{X: x, Y: y}, true
			}
		}
	}
	return Position{}, false
}

// IsSolvable runs a breadth-first search from the start cell and reports whether
// the Exit cell is reachable through Open and Exit cells, moving orthogonally.
func IsSolvable(grid [][]Cell) bool {
	exit, ok := FindExit(grid)
	if !ok {
		return false
	}

	inBounds := func(p Position) bool {
		return p.Y >= 0 && p.Y < len(grid) && p.X >= 0 && p.X < len(grid[p.Y])
	}
	if !inBounds(Start) || !grid[Start.Y][Start.X].Walkable() {
		return false
	}

	visited := make([][]bool, len(grid))
	for y := range visited {
		visited[y] = make([]bool, len(grid[y]))
	}

	queue := []Position{Start}
	visited[Start.Y][Start.X] = true

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur == exit {
			return true
		}

		for _, d := range neighbours {
			next := Position{X: cur.X + d.X, Y: cur.Y + d.Y}
			if !inBounds(next) || visited[next.Y][next.X] || !grid[next.Y][next.X].Walkable() {
				continue
			}
			visited[next.Y][next.X] = true
			queue = append(queue, next)
		}
	}

	return false
}
