package validation

import (
	"encoding/json"
	"math/rand"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validMazeJSON = `{
	"name": "Tiny",
	"width": 5,
	"height": 5,
	"playerStart": {"x": 1, "y": 1, "direction": 1},
	"exit": {"x": 3, "y": 3},
	"layout": [
		["#", "#", "#", "#", "#"],
		["#", " ", " ", " ", "#"],
		["#", "#", "#", " ", "#"],
		["#", " ", " ", "E", "#"],
		["#", "#", "#", "#", "#"]
	]
}`

const unsolvableMazeJSON = `{
	"name": "Blocked",
	"width": 5,
	"height": 5,
	"playerStart": {"x": 1, "y": 1, "direction": 1},
	"exit": {"x": 3, "y": 3},
	"layout": [
		["#", "#", "#", "#", "#"],
		["#", " ", "#", "#", "#"],
		["#", "#", "#", "#", "#"],
		["#", "#", "#", "E", "#"],
		["#", "#", "#", "#", "#"]
	]
}`

func validRecord(t *testing.T) map[string]any {
	t.Helper()
	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(validMazeJSON), &record))
	return record
}

func layoutOf(record map[string]any) [][]any {
	raw := record["layout"].([]any)
	rows := make([][]any, len(raw))
	for i, r := range raw {
		rows[i] = r.([]any)
	}
	return rows
}

func TestValidate(t *testing.T) {
	t.Run("valid record", func(t *testing.T) {
		result := Validate(validRecord(t), "tiny.json")
		assert.True(t, result.Success)
		assert.Empty(t, result.Errors)
		assert.Equal(t, "tiny.json", result.Label)
	})

	t.Run("validation is idempotent", func(t *testing.T) {
		record := validRecord(t)
		first := Validate(record, "tiny.json")
		second := Validate(record, "tiny.json")
		assert.Equal(t, first, second)
		assert.Equal(t, []string{}, second.Errors)
	})

	tests := []struct {
		name   string
		mutate func(record map[string]any)
		want   string
	}{
		{
			name:   "missing exit",
			mutate: func(r map[string]any) { delete(r, "exit") },
			want:   "missing required property: exit",
		},
		{
			name:   "missing layout",
			mutate: func(r map[string]any) { delete(r, "layout") },
			want:   "missing required property: layout",
		},
		{
			name:   "zero width",
			mutate: func(r map[string]any) { r["width"] = float64(0) },
			want:   "width must be a number greater than 0",
		},
		{
			name:   "height is a string",
			mutate: func(r map[string]any) { r["height"] = "5" },
			want:   "height must be a number greater than 0",
		},
		{
			name:   "direction out of range",
			mutate: func(r map[string]any) { r["playerStart"].(map[string]any)["direction"] = float64(4) },
			want:   "playerStart.direction must be a number between 0 and 3",
		},
		{
			name:   "playerStart without y",
			mutate: func(r map[string]any) { delete(r["playerStart"].(map[string]any), "y") },
			want:   "playerStart is missing property: y",
		},
		{
			name:   "exit without x",
			mutate: func(r map[string]any) { delete(r["exit"].(map[string]any), "x") },
			want:   "exit is missing property: x",
		},
		{
			name:   "layout is procedural",
			mutate: func(r map[string]any) { r["layout"] = maze.ProceduralLayout },
			want:   "layout must be an array",
		},
		{
			name:   "too few rows",
			mutate: func(r map[string]any) { r["layout"] = r["layout"].([]any)[:4] },
			want:   "layout has 4 rows, expected height 5",
		},
		{
			name: "row width mismatch",
			mutate: func(r map[string]any) {
				rows := r["layout"].([]any)
				row := rows[1].([]any)
				rows[1] = append([]any{row[0]}, row[2:]...)
			},
			want: "layout row 1 has 4 cells, expected width 5",
		},
		{
			name:   "invalid cell",
			mutate: func(r map[string]any) { layoutOf(r)[1][2] = "X" },
			want:   `invalid cell value "X" at (2, 1)`,
		},
		{
			name:   "non-string cell",
			mutate: func(r map[string]any) { layoutOf(r)[3][1] = float64(7) },
			want:   "invalid cell value 7 at (1, 3)",
		},
		{
			name:   "open top boundary",
			mutate: func(r map[string]any) { layoutOf(r)[0][2] = " " },
			want:   "top boundary (row 0) must be all walls",
		},
		{
			name:   "open bottom boundary",
			mutate: func(r map[string]any) { layoutOf(r)[4][3] = " " },
			want:   "bottom boundary (row 4) must be all walls",
		},
		{
			name:   "open left boundary",
			mutate: func(r map[string]any) { layoutOf(r)[3][0] = " " },
			want:   "left boundary (column 0) must be all walls, open at rows [3]",
		},
		{
			name:   "open right boundary",
			mutate: func(r map[string]any) { layoutOf(r)[1][4] = " " },
			want:   "right boundary (last column) must be all walls, open at rows [1]",
		},
		{
			name:   "start inside wall",
			mutate: func(r map[string]any) { layoutOf(r)[1][1] = "#" },
			want:   "playerStart (1, 1) is inside a wall",
		},
		{
			name:   "exit inside wall",
			mutate: func(r map[string]any) { layoutOf(r)[3][3] = "#" },
			want:   "exit (3, 3) is inside a wall",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := validRecord(t)
			tt.mutate(record)

			result := Validate(record, "tiny.json")
			assert.False(t, result.Success)
			assert.Contains(t, result.Errors, tt.want)
		})
	}

	t.Run("every defect is reported", func(t *testing.T) {
		record := validRecord(t)
		delete(record, "exit")
		layoutOf(record)[0][2] = " "
		layoutOf(record)[1][2] = "X"

		result := Validate(record, "tiny.json")
		assert.False(t, result.Success)
		assert.Equal(t, []string{
			"missing required property: exit",
			`invalid cell value "X" at (2, 1)`,
			"top boundary (row 0) must be all walls",
		}, result.Errors)
	})

	t.Run("start outside the layout is not looked up", func(t *testing.T) {
		record := validRecord(t)
		record["playerStart"] = map[string]any{"x": float64(40), "y": float64(1), "direction": float64(0)}

		result := Validate(record, "tiny.json")
		assert.True(t, result.Success)
	})

	t.Run("not an object", func(t *testing.T) {
		result := Validate([]any{}, "list.json")
		assert.False(t, result.Success)
		assert.Equal(t, []string{"maze record must be an object"}, result.Errors)
	})
}

func TestValidateJSON(t *testing.T) {
	t.Run("unparseable input", func(t *testing.T) {
		result := ValidateJSON([]byte("{"), "broken.json")
		assert.False(t, result.Success)
		require.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0], "invalid JSON")
	})

	t.Run("generated maze validates", func(t *testing.T) {
		g := maze.NewGenerator(&maze.Options{Rand: rand.New(rand.NewSource(11))})
		m, err := g.Generate(15, 20)
		require.NoError(t, err)

		data, err := json.Marshal(maze.NewRecord("Generated", m))
		require.NoError(t, err)

		result := ValidateJSON(data, "generated")
		assert.True(t, result.Success)
		assert.Equal(t, []string{}, result.Errors)
	})

	t.Run("procedural record passes once materialized", func(t *testing.T) {
		record := &maze.Record{
			Name:        "Later",
			Width:       9,
			Height:      9,
			PlayerStart: maze.PlayerStart{X: 1, Y: 1, Direction: maze.East},
			Exit:        maze.Position{X: 7, Y: 7},
			Layout:      maze.Layout{Procedural: true},
		}

		data, err := json.Marshal(record)
		require.NoError(t, err)
		result := ValidateJSON(data, "later.json")
		assert.False(t, result.Success)
		assert.Equal(t, []string{"layout must be an array"}, result.Errors)

		require.NoError(t, record.Materialize(maze.NewGenerator(nil)))
		data, err = json.Marshal(record)
		require.NoError(t, err)
		assert.True(t, ValidateJSON(data, "later.json").Success)
	})
}

func TestCheck(t *testing.T) {
	t.Run("solvable", func(t *testing.T) {
		result := Check([]byte(validMazeJSON), "tiny.json")
		assert.True(t, result.Success)
		assert.Empty(t, result.Errors)
	})

	t.Run("unreachable exit", func(t *testing.T) {
		result := Check([]byte(unsolvableMazeJSON), "blocked.json")
		assert.False(t, result.Success)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, "exit is unreachable from the start cell (1, 1)", result.Errors[0])
	})

	t.Run("structural errors come first", func(t *testing.T) {
		result := Check([]byte(`{"width": 5}`), "partial.json")
		assert.False(t, result.Success)
		assert.Contains(t, result.Errors, "missing required property: layout")
	})
}

func TestCheckSolvable(t *testing.T) {
	grid := [][]maze.Cell{
		{maze.Wall, maze.Wall, maze.Wall, maze.Wall, maze.Wall},
		{maze.Wall, maze.Open, maze.Wall, maze.Wall, maze.Wall},
		{maze.Wall, maze.Wall, maze.Wall, maze.Wall, maze.Wall},
		{maze.Wall, maze.Wall, maze.Wall, maze.Exit, maze.Wall},
		{maze.Wall, maze.Wall, maze.Wall, maze.Wall, maze.Wall},
	}
	assert.ErrorIs(t, CheckSolvable(grid), ErrUnreachableExit)

	grid[1][2], grid[1][3], grid[2][3] = maze.Open, maze.Open, maze.Open
	assert.NoError(t, CheckSolvable(grid))
}

func TestValidateFS(t *testing.T) {
	fsys := fstest.MapFS{
		"good.json":            {Data: []byte(validMazeJSON)},
		"nested/blocked.json":  {Data: []byte(unsolvableMazeJSON)},
		"broken.json":          {Data: []byte("not json")},
		"procedural.json":      {Data: []byte(`{"width": 9, "height": 9, "playerStart": {"x": 1, "y": 1, "direction": 0}, "exit": {"x": 7, "y": 7}, "layout": "PROCEDURAL"}`)},
		"README.md":            {Data: []byte("# mazes")},
		"nested/again/ok.JSON": {Data: []byte(validMazeJSON)},
	}

	t.Run("structural only", func(t *testing.T) {
		summary, err := ValidateFS(fsys, nil)
		require.NoError(t, err)

		assert.Equal(t, 3, summary.Passed)
		assert.Equal(t, 2, summary.Failed)
		assert.False(t, summary.OK())

		labels := make([]string, 0, len(summary.Results))
		for _, r := range summary.Results {
			labels = append(labels, r.Label)
		}
		assert.Equal(t, []string{"broken.json", "good.json", "nested/again/ok.JSON", "nested/blocked.json", "procedural.json"}, labels)
	})

	t.Run("with solvability", func(t *testing.T) {
		summary, err := ValidateFS(fsys, Check)
		require.NoError(t, err)
		assert.Equal(t, 2, summary.Passed)
		assert.Equal(t, 3, summary.Failed)
	})

	t.Run("all valid", func(t *testing.T) {
		summary, err := ValidateFS(fstest.MapFS{"a.json": {Data: []byte(validMazeJSON)}}, Check)
		require.NoError(t, err)
		assert.True(t, summary.OK())
	})
}

func TestValidateTemplate(t *testing.T) {
	template := `{"name": "Later", "width": 9, "height": 9, "playerStart": {"x": 1, "y": 1, "direction": 0}, "exit": {"x": 7, "y": 7}, "layout": "PROCEDURAL"}`

	t.Run("placeholder accepted", func(t *testing.T) {
		result := ValidateTemplateJSON([]byte(template), "later.json")
		assert.True(t, result.Success)
		assert.Empty(t, result.Errors)
	})

	t.Run("metadata still checked", func(t *testing.T) {
		result := ValidateTemplateJSON([]byte(`{"width": -1, "height": 9, "playerStart": {"x": 1, "y": 1, "direction": 9}, "exit": {"x": 7, "y": 7}, "layout": "PROCEDURAL"}`), "bad.json")
		assert.False(t, result.Success)
		assert.Equal(t, []string{
			"width must be a number greater than 0",
			"playerStart.direction must be a number between 0 and 3",
		}, result.Errors)
	})

	t.Run("other strings are not layouts", func(t *testing.T) {
		result := ValidateTemplateJSON([]byte(strings.Replace(template, "PROCEDURAL", "RANDOM", 1)), "random.json")
		assert.Equal(t, []string{"layout must be an array"}, result.Errors)
	})

	t.Run("concrete layouts get the full checks", func(t *testing.T) {
		record := validRecord(t)
		layoutOf(record)[0][0] = " "
		result := ValidateTemplate(record, "tiny.json")
		assert.Contains(t, result.Errors, "top boundary (row 0) must be all walls")
	})

	t.Run("strict validation rejects the placeholder", func(t *testing.T) {
		result := ValidateJSON([]byte(template), "later.json")
		assert.Equal(t, []string{"layout must be an array"}, result.Errors)
	})
}
