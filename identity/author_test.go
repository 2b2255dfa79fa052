package identity

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const strongPassword = "Xq7!vR2#mLp9@wZt"

func TestNewAuthor(t *testing.T) {
	passwordHashCost = bcrypt.MinCost

	t.Run("valid author", func(t *testing.T) {
		id := uuid.New()
		author, err := NewAuthor(AuthorConfig{ID: id, Username: "maze_maker", PlainPassword: strongPassword})
		require.NoError(t, err)

		assert.Equal(t, id, author.ID)
		assert.Equal(t, "maze_maker", author.Username)
		assert.NotEqual(t, strongPassword, author.PasswordHash)
		assert.False(t, author.CreatedAt.IsZero())
		assert.True(t, author.VerifyPassword(strongPassword))
		assert.False(t, author.VerifyPassword("wrong"))
	})

	tests := []struct {
		name     string
		username string
		password string
		err      error
	}{
		{name: "short username", username: "ab", password: strongPassword, err: ErrUsernameTooShort},
		{name: "long username", username: strings.Repeat("a", 21), password: strongPassword, err: ErrUsernameTooLong},
		{name: "bad characters", username: "maze-maker", password: strongPassword, err: ErrInvalidUsername},
		{name: "weak password", username: "maze_maker", password: "password", err: ErrWeakPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAuthor(AuthorConfig{ID: uuid.New(), Username: tt.username, PlainPassword: tt.password})
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
