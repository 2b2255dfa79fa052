package i

import (
	"context"

	"github.com/beka-birhanu/vinom-maze/identity"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
)

// MazeRepo defines the interface for maze record persistence.
type MazeRepo interface {
	// Save inserts or replaces a maze record.
	Save(ctx context.Context, record *maze.Record) error

	// ByID retrieves a maze by its ID.
	// Returns maze.ErrNotFound if no record has that ID.
	ByID(ctx context.Context, id uuid.UUID) (*maze.Record, error)

	// List returns up to limit records ordered by name.
	List(ctx context.Context, limit int) ([]*maze.Record, error)
}

// AuthorRepo defines the interface for author persistence operations.
type AuthorRepo interface {
	// Save inserts a new author or updates an existing one.
	// Returns identity.ErrUsernameConflict if another author owns the username.
	Save(ctx context.Context, author *identity.Author) error

	// ByID retrieves an author by their unique ID.
	ByID(ctx context.Context, id uuid.UUID) (*identity.Author, error)

	// ByUsername retrieves an author by their username.
	ByUsername(ctx context.Context, username string) (*identity.Author, error)
}
