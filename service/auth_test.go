package service

import (
	"context"
	"testing"

	"github.com/beka-birhanu/vinom-maze/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const strongPassword = "Xq7!vR2#mLp9@wZt"

func TestAuth(t *testing.T) {
	ctx := context.Background()

	newAuth := func(t *testing.T) *Auth {
		a, err := NewAuthService(newMemAuthorRepo(), stubTokenizer{}, &recordingLogger{})
		require.NoError(t, err)
		return a
	}

	t.Run("register then sign in", func(t *testing.T) {
		a := newAuth(t)
		require.NoError(t, a.Register(ctx, "builder_1", strongPassword))

		author, token, err := a.SignIn(ctx, "builder_1", strongPassword)
		require.NoError(t, err)
		assert.Equal(t, "builder_1", author.Username)
		assert.Equal(t, "token-builder_1", token)
	})

	t.Run("duplicate username", func(t *testing.T) {
		a := newAuth(t)
		require.NoError(t, a.Register(ctx, "builder_1", strongPassword))
		assert.ErrorIs(t, a.Register(ctx, "builder_1", strongPassword), identity.ErrUsernameConflict)
	})

	t.Run("weak password", func(t *testing.T) {
		a := newAuth(t)
		assert.ErrorIs(t, a.Register(ctx, "builder_1", "password"), identity.ErrWeakPassword)
	})

	t.Run("bad credentials", func(t *testing.T) {
		a := newAuth(t)
		require.NoError(t, a.Register(ctx, "builder_1", strongPassword))

		_, _, err := a.SignIn(ctx, "builder_1", "wrong password")
		assert.ErrorIs(t, err, identity.ErrInvalidCredentials)

		_, _, err = a.SignIn(ctx, "nobody", strongPassword)
		assert.ErrorIs(t, err, identity.ErrInvalidCredentials)
	})

	t.Run("missing collaborators", func(t *testing.T) {
		_, err := NewAuthService(nil, stubTokenizer{}, &recordingLogger{})
		assert.Error(t, err)
	})
}
