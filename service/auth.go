package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-maze/identity"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
)

const tokenTTL = 24 * time.Hour

// Auth registers maze authors and issues their access tokens.
type Auth struct {
	authorRepo i.AuthorRepo
	tokenizer  i.Tokenizer
	logger     i.Logger
}

// NewAuthService creates an Auth service.
func NewAuthService(authorRepo i.AuthorRepo, tokenizer i.Tokenizer, logger i.Logger) (*Auth, error) {
	if authorRepo == nil || tokenizer == nil || logger == nil {
		return nil, errors.New("auth service needs a repository, a tokenizer and a logger")
	}
	return &Auth{
		authorRepo: authorRepo,
		tokenizer:  tokenizer,
		logger:     logger,
	}, nil
}

// Register creates a new author account.
func (a *Auth) Register(ctx context.Context, username, password string) error {
	if _, err := a.authorRepo.ByUsername(ctx, username); err == nil {
		return identity.ErrUsernameConflict
	} else if !errors.Is(err, identity.ErrAuthorNotFound) {
		return err
	}

	author, err := identity.NewAuthor(identity.AuthorConfig{
		ID:            uuid.New(),
		Username:      username,
		PlainPassword: password,
	})
	if err != nil {
		return err
	}

	if err := a.authorRepo.Save(ctx, author); err != nil {
		return err
	}

	a.logger.Info(fmt.Sprintf("Author registered: ID=%s Username=%s", author.ID, author.Username))
	return nil
}

// SignIn checks the credentials and returns the author with a fresh token.
func (a *Auth) SignIn(ctx context.Context, username, password string) (*identity.Author, string, error) {
	author, err := a.authorRepo.ByUsername(ctx, username)
	if err != nil {
		return nil, "", identity.ErrInvalidCredentials
	}

	if !author.VerifyPassword(password) {
		return nil, "", identity.ErrInvalidCredentials
	}

	token, err := a.tokenizer.Generate(author, tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("issuing token: %w", err)
	}
	return author, token, nil
}
