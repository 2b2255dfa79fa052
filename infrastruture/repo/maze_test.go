package repo

import (
	"testing"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestMazeDocument(t *testing.T) {
	t.Run("concrete record survives a BSON round trip", func(t *testing.T) {
		m, err := maze.Generate(9, 7)
		require.NoError(t, err)
		record := maze.NewRecord("Stored", m)
		record.AuthorID = uuid.New()

		raw, err := bson.Marshal(newMazeDocument(record))
		require.NoError(t, err)

		var doc mazeDocument
		require.NoError(t, bson.Unmarshal(raw, &doc))
		assert.Len(t, doc.Rows, 7)

		got, err := doc.record()
		require.NoError(t, err)
		assert.Equal(t, record.ID, got.ID)
		assert.Equal(t, record.AuthorID, got.AuthorID)
		assert.Equal(t, record.PlayerStart, got.PlayerStart)
		assert.Equal(t, record.Exit, got.Exit)
		assert.Equal(t, record.Layout.Rows, got.Layout.Rows)
	})

	t.Run("procedural record keeps the placeholder", func(t *testing.T) {
		record := &maze.Record{ID: uuid.New(), Name: "Later", Width: 11, Height: 11, Layout: maze.Layout{Procedural: true}}

		doc := newMazeDocument(record)
		assert.Empty(t, doc.Rows)
		assert.Empty(t, doc.AuthorID)

		got, err := doc.record()
		require.NoError(t, err)
		assert.True(t, got.Layout.Procedural)
		assert.Equal(t, uuid.Nil, got.AuthorID)
	})

	t.Run("corrupt rows are reported", func(t *testing.T) {
		doc := &mazeDocument{ID: uuid.NewString(), Rows: []string{"#X#"}}
		_, err := doc.record()
		assert.ErrorIs(t, err, maze.ErrInvalidCell)
	})
}
