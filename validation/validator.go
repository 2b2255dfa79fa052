/*
Package validation checks maze records for structural problems before they are
accepted or played.

Validate works on arbitrary decoded JSON, so it never fails on malformed input:
every problem it finds is returned as a human-readable message in a Result.
*/
package validation

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/beka-birhanu/vinom-maze/maze"
)

var (
	requiredFields      = []string{"width", "height", "playerStart", "exit", "layout"}
	requiredStartFields = []string{"x", "y", "direction"}
	requiredExitFields  = []string{"x", "y"}
	validCells          = map[string]struct{}{maze.WallChar: {}, maze.OpenChar: {}, maze.ExitChar: {}}
	minDirection        = float64(maze.North)
	maxDirection        = float64(maze.West)
)

// Result is the outcome of validating one maze record.
type Result struct {
	Label   string   `json:"label"`
	Success bool     `json:"success"`
	Errors  []string `json:"errors"`
}

type checker struct {
	errors []string
}

func (c *checker) fail(format string, args ...any) {
	c.errors = append(c.errors, fmt.Sprintf(format, args...))
}

// ValidateJSON decodes data and validates it. Data that is not a JSON object is
// reported as an invalid result.
func ValidateJSON(data []byte, label string) Result {
	var record any
	if err := json.Unmarshal(data, &record); err != nil {
		return Result{Label: label, Errors: []string{fmt.Sprintf("invalid JSON: %v", err)}}
	}
	return Validate(record, label)
}

// ValidateTemplateJSON is ValidateJSON for records that may still carry the
// "PROCEDURAL" layout placeholder.
func ValidateTemplateJSON(data []byte, label string) Result {
	var record any
	if err := json.Unmarshal(data, &record); err != nil {
		return Result{Label: label, Errors: []string{fmt.Sprintf("invalid JSON: %v", err)}}
	}
	return ValidateTemplate(record, label)
}

// Validate runs every structural check on a decoded maze record and returns all
// problems found, in a stable order.
func Validate(record any, label string) Result {
	return validate(record, label, false)
}

// ValidateTemplate runs the same checks as Validate but accepts the
// "PROCEDURAL" layout placeholder, checking only the metadata in that case.
func ValidateTemplate(record any, label string) Result {
	return validate(record, label, true)
}

func validate(record any, label string, allowProcedural bool) Result {
	c := &checker{}

	obj, ok := record.(map[string]any)
	if !ok {
		c.fail("maze record must be an object")
		return c.result(label)
	}

	for _, field := range requiredFields {
		if _, ok := obj[field]; !ok {
			c.fail("missing required property: %s", field)
		}
	}

	width, widthOK := positive(obj, "width")
	if _, present := obj["width"]; present && !widthOK {
		c.fail("width must be a number greater than 0")
	}
	height, heightOK := positive(obj, "height")
	if _, present := obj["height"]; present && !heightOK {
		c.fail("height must be a number greater than 0")
	}

	start, startOK := c.point(obj, "playerStart", requiredStartFields)
	if startOK {
		dir, ok := number(start["direction"])
		if !ok || dir < minDirection || dir > maxDirection {
			c.fail("playerStart.direction must be a number between %d and %d", maze.North, maze.West)
		}
	}
	exit, exitOK := c.point(obj, "exit", requiredExitFields)

	raw, present := obj["layout"]
	if !present {
		return c.result(label)
	}
	if placeholder, ok := raw.(string); ok && allowProcedural && placeholder == maze.ProceduralLayout {
		return c.result(label)
	}
	layout, ok := c.layout(raw, width, widthOK, height, heightOK)
	if !ok {
		return c.result(label)
	}

	c.boundary(layout)
	if startOK {
		c.notWall(layout, start, "playerStart")
	}
	if exitOK {
		c.notWall(layout, exit, "exit")
	}

	return c.result(label)
}

func (c *checker) result(label string) Result {
	errs := c.errors
	if errs == nil {
		errs = []string{}
	}
	return Result{Label: label, Success: len(errs) == 0, Errors: errs}
}

// point checks that obj[name] is an object carrying every field.
func (c *checker) point(obj map[string]any, name string, fields []string) (map[string]any, bool) {
	raw, present := obj[name]
	if !present {
		return nil, false
	}
	p, ok := raw.(map[string]any)
	if !ok {
		c.fail("%s must be an object", name)
		return nil, false
	}
	complete := true
	for _, field := range fields {
		if _, ok := p[field]; !ok {
			c.fail("%s is missing property: %s", name, field)
			complete = false
		}
	}
	return p, complete
}

// layout checks the row and column shape and the cell alphabet. It returns the
// rows as strings when the layout is an array of arrays.
func (c *checker) layout(raw any, width int, widthOK bool, height int, heightOK bool) ([][]string, bool) {
	rows, ok := raw.([]any)
	if !ok {
		c.fail("layout must be an array")
		return nil, false
	}
	if heightOK && len(rows) != height {
		c.fail("layout has %d rows, expected height %d", len(rows), height)
	}

	grid := make([][]string, len(rows))
	for y, rawRow := range rows {
		row, ok := rawRow.([]any)
		if !ok {
			c.fail("layout row %d must be an array", y)
			return nil, false
		}
		if widthOK && len(row) != width {
			c.fail("layout row %d has %d cells, expected width %d", y, len(row), width)
		}

		grid[y] = make([]string, len(row))
		for x, rawCell := range row {
			s, ok := rawCell.(string)
			if _, valid := validCells[s]; !ok || !valid {
				c.fail("invalid cell value %v at (%d, %d)", quote(rawCell), x, y)
			}
			grid[y][x] = s
		}
	}
	return grid, true
}

// boundary reports each side of the outer frame that is not entirely wall.
func (c *checker) boundary(grid [][]string) {
	if len(grid) == 0 {
		return
	}

	allWalls := func(cells []string) bool {
		for _, s := range cells {
			if s != maze.WallChar {
				return false
			}
		}
		return true
	}

	if !allWalls(grid[0]) {
		c.fail("top boundary (row 0) must be all walls")
	}
	last := len(grid) - 1
	if last > 0 && !allWalls(grid[last]) {
		c.fail("bottom boundary (row %d) must be all walls", last)
	}

	var left, right []int
	for y, row := range grid {
		if len(row) == 0 {
			continue
		}
		if row[0] != maze.WallChar {
			left = append(left, y)
		}
		if row[len(row)-1] != maze.WallChar {
			right = append(right, y)
		}
	}
	if len(left) > 0 {
		c.fail("left boundary (column 0) must be all walls, open at rows %v", left)
	}
	if len(right) > 0 {
		c.fail("right boundary (last column) must be all walls, open at rows %v", right)
	}
}

// notWall reports a point that lands on a wall cell of the layout.
func (c *checker) notWall(grid [][]string, p map[string]any, name string) {
	x, xOK := index(p["x"])
	y, yOK := index(p["y"])
	if !xOK || !yOK || y >= len(grid) || x >= len(grid[y]) {
		return
	}
	if grid[y][x] == maze.WallChar {
		c.fail("%s (%d, %d) is inside a wall", name, x, y)
	}
}

func positive(obj map[string]any, field string) (int, bool) {
	n, ok := number(obj[field])
	if !ok || n <= 0 {
		return 0, false
	}
	return int(n), true
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, !math.IsNaN(n)
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// index converts v into a non-negative integer coordinate.
func index(v any) (int, bool) {
	n, ok := number(v)
	if !ok || n < 0 || n != math.Trunc(n) {
		return 0, false
	}
	return int(n), true
}

func quote(v any) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", v)
}
