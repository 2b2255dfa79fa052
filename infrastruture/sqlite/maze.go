package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
)

// MazeRepo persists maze records as JSON documents.
type MazeRepo struct {
	sqlDB *sql.DB
}

// Save inserts a maze or replaces the stored copy with the same ID.
func (m *MazeRepo) Save(ctx context.Context, record *maze.Record) error {
	document, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode maze: %w", err)
	}

	authorID := ""
	if record.AuthorID != uuid.Nil {
		authorID = record.AuthorID.String()
	}

	_, err = m.sqlDB.ExecContext(
		ctx,
		`INSERT INTO mazes (id, author_id, name, width, height, procedural, document, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   author_id = excluded.author_id,
		   name = excluded.name,
		   width = excluded.width,
		   height = excluded.height,
		   procedural = excluded.procedural,
		   document = excluded.document,
		   updated_at = excluded.updated_at`,
		record.ID.String(),
		authorID,
		record.Name,
		record.Width,
		record.Height,
		record.Layout.Procedural,
		string(document),
		toMillis(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("saving maze: %w", err)
	}
	return nil
}

// ByID retrieves a maze by its ID.
func (m *MazeRepo) ByID(ctx context.Context, id uuid.UUID) (*maze.Record, error) {
	var document string
	err := m.sqlDB.QueryRowContext(ctx, `SELECT document FROM mazes WHERE id = ?`, id.String()).Scan(&document)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, maze.ErrNotFound
		}
		return nil, fmt.Errorf("finding maze: %w", err)
	}
	return decodeMaze(document)
}

// List returns up to limit mazes ordered by name.
func (m *MazeRepo) List(ctx context.Context, limit int) ([]*maze.Record, error) {
	rows, err := m.sqlDB.QueryContext(ctx, `SELECT document FROM mazes ORDER BY name, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing mazes: %w", err)
	}
	defer rows.Close()

	records := make([]*maze.Record, 0)
	for rows.Next() {
		var document string
		if err := rows.Scan(&document); err != nil {
			return nil, fmt.Errorf("scanning maze: %w", err)
		}
		r, err := decodeMaze(document)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func decodeMaze(document string) (*maze.Record, error) {
	var r maze.Record
	if err := json.Unmarshal([]byte(document), &r); err != nil {
		return nil, fmt.Errorf("decode stored maze: %w", err)
	}
	return &r, nil
}
