package token

import (
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-maze/identity"
	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

const (
	claimAuthorID = "authorID"
	claimUsername = "username"
	claimIssuer   = "iss"
	claimExpiry   = "exp"
)

var ErrInvalidToken = errors.New("invalid token")

// JwtService handles JWT operations.
// Implements i.Tokenizer.
type JwtService struct {
	secretKey string
	issuer    string
}

// NewJwtService creates a new JWT Service with the provided configuration.
func NewJwtService(secretKey, issuer string) *JwtService {
	return &JwtService{
		secretKey: secretKey,
		issuer:    issuer,
	}
}

// Generate creates a signed JWT carrying the author's ID and username.
func (s *JwtService) Generate(author *identity.Author, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		claimAuthorID: author.ID.String(),
		claimUsername: author.Username,
		claimIssuer:   s.issuer,
		claimExpiry:   time.Now().UTC().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secretKey))
}

// Decode parses and validates a JWT, returning the author claims if valid.
func (s *JwtService) Decode(tokenString string) (*identity.Claims, error) {
	token, err := jwt.Parse(tokenString, s.getSigningKey)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid || !claims.VerifyIssuer(s.issuer, true) {
		return nil, ErrInvalidToken
	}

	rawID, _ := claims[claimAuthorID].(string)
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	username, _ := claims[claimUsername].(string)

	return &identity.Claims{AuthorID: id, Username: username}, nil
}

// getSigningKey returns the signing key for token validation.
func (s *JwtService) getSigningKey(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("unexpected signing method")
	}
	return []byte(s.secretKey), nil
}
