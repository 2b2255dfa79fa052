package i

import (
	"context"

	"github.com/beka-birhanu/vinom-maze/identity"
)

// Authenticator registers and signs in maze authors.
type Authenticator interface {
	Register(ctx context.Context, username, password string) error
	SignIn(ctx context.Context, username, password string) (*identity.Author, string, error)
}
