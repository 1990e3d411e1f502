package user

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/readnext/readnext/internal/shared/token"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type (
	Servicer interface {
		Register(ctx context.Context, req RegisterIn) (*User, error)
		Login(ctx context.Context, req LoginIn) (string, error)
		ByUsername(ctx context.Context, username string) (*User, error)
	}

	service struct {
		repo   repoer
		issuer *token.Issuer
	}
)

func NewService(repo repoer, issuer *token.Issuer) Servicer {
	return &service{
		repo:   repo,
		issuer: issuer,
	}
}

// Register hashes the password with bcrypt and stores the new user. The
// plaintext never leaves this function.
func (s *service) Register(ctx context.Context, req RegisterIn) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, req.Username, req.Email, string(hash))
}

// Login verifies credentials against the stored hash and issues a session
// token. An unknown identifier and a wrong password are indistinguishable
// to the caller.
func (s *service) Login(ctx context.Context, req LoginIn) (string, error) {
	u, err := s.repo.FindByIdentifier(ctx, req.Identifier)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return "", ErrInvalidCredentials
	}

	return s.issuer.Issue(u.Username)
}

func (s *service) ByUsername(ctx context.Context, username string) (*User, error) {
	return s.repo.FindByUsername(ctx, username)
}
