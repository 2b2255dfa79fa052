package i

import (
	"context"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/validation"
	"github.com/google/uuid"
)

// MazeService generates, validates and serves mazes.
type MazeService interface {
	// Generate builds a new maze; when persist is set the record is saved.
	Generate(ctx context.Context, name string, width, height int, persist bool) (*maze.Record, error)

	// Submit validates an encoded record and saves it on behalf of authorID.
	// The validation result is returned even when the record is rejected.
	Submit(ctx context.Context, data []byte, label string, authorID uuid.UUID) (*maze.Record, validation.Result, error)

	// Get returns a playable maze, generating a procedural layout on first use.
	Get(ctx context.Context, id uuid.UUID) (*maze.Record, error)

	List(ctx context.Context, limit int) ([]*maze.Record, error)

	// Validate checks an encoded record without saving it.
	Validate(data []byte, label string) validation.Result
}
