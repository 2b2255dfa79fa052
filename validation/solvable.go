package validation

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/beka-birhanu/vinom-maze/maze"
)

var ErrUnreachableExit = errors.New("exit is unreachable from the start cell")

// CheckSolvable reports an error when the grid's exit cannot be reached from
// the start cell. The grid is never modified.
func CheckSolvable(grid [][]maze.Cell) error {
	if maze.IsSolvable(grid) {
		return nil
	}
	return fmt.Errorf("%w %v", ErrUnreachableExit, maze.Start)
}

// Check validates data structurally and, when the record carries a concrete
// layout, also verifies that the exit is reachable. Procedural layouts fail the
// structural step and are reported as such.
func Check(data []byte, label string) Result {
	result := ValidateJSON(data, label)
	if !result.Success {
		return result
	}

	var record maze.Record
	if err := json.Unmarshal(data, &record); err != nil {
		return fail(result, fmt.Sprintf("decode maze record: %v", err))
	}
	m, err := record.Maze()
	if err != nil {
		return fail(result, err.Error())
	}
	if err := CheckSolvable(m.Grid); err != nil {
		return fail(result, err.Error())
	}
	return result
}

func fail(r Result, msg string) Result {
	r.Errors = append(r.Errors, msg)
	r.Success = false
	return r
}
