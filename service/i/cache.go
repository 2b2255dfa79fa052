package i

import (
	"context"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
)

// MazeCache keeps recently served mazes close to the API.
type MazeCache interface {
	// Get returns maze.ErrNotFound on a cache miss.
	Get(ctx context.Context, id uuid.UUID) (*maze.Record, error)
	Set(ctx context.Context, record *maze.Record) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Locker serialises work on a key across API instances.
type Locker interface {
	// Lock blocks until key is held and returns the function that releases it.
	Lock(ctx context.Context, key string) (unlock func() error, err error)
}
