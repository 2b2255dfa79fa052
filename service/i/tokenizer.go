package i

import (
	"time"

	"github.com/beka-birhanu/vinom-maze/identity"
)

// Tokenizer issues and checks author access tokens.
type Tokenizer interface {
	// Generate creates a token for the author that expires after ttl.
	Generate(author *identity.Author, ttl time.Duration) (string, error)

	// Decode validates a token and returns the author it was issued to.
	Decode(token string) (*identity.Claims, error)
}
