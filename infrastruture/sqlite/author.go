package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/beka-birhanu/vinom-maze/identity"
	"github.com/google/uuid"
)

// AuthorRepo persists maze authors.
type AuthorRepo struct {
	sqlDB *sql.DB
}

// Save inserts an author or updates the stored credentials.
func (a *AuthorRepo) Save(ctx context.Context, author *identity.Author) error {
	_, err := a.sqlDB.ExecContext(
		ctx,
		`INSERT INTO authors (id, username, password_hash, created_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   username = excluded.username,
		   password_hash = excluded.password_hash`,
		author.ID.String(),
		author.Username,
		author.PasswordHash,
		toMillis(author.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return identity.ErrUsernameConflict
		}
		return fmt.Errorf("saving author: %w", err)
	}
	return nil
}

// ByID retrieves an author by their ID.
func (a *AuthorRepo) ByID(ctx context.Context, id uuid.UUID) (*identity.Author, error) {
	return a.queryOne(ctx, `SELECT id, username, password_hash, created_at FROM authors WHERE id = ?`, id.String())
}

// ByUsername retrieves an author by their username.
func (a *AuthorRepo) ByUsername(ctx context.Context, username string) (*identity.Author, error) {
	return a.queryOne(ctx, `SELECT id, username, password_hash, created_at FROM authors WHERE username = ?`, username)
}

func (a *AuthorRepo) queryOne(ctx context.Context, query string, arg any) (*identity.Author, error) {
	var (
		rawID     string
		author    identity.Author
		createdAt int64
	)
	err := a.sqlDB.QueryRowContext(ctx, query, arg).Scan(&rawID, &author.Username, &author.PasswordHash, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, identity.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("finding author: %w", err)
	}

	if author.ID, err = uuid.Parse(rawID); err != nil {
		return nil, fmt.Errorf("stored author id %q: %w", rawID, err)
	}
	author.CreatedAt = fromMillis(createdAt)
	return &author, nil
}
