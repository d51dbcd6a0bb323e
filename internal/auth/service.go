package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/cotacao-api/cotacao/internal/shared"
)

// Service wraps registration, login, and token authorization rules.
type Service struct {
	repo   Repository
	tokens *TokenIssuer
}

// NewService constructs a new Service.
func NewService(repo Repository, tokens *TokenIssuer) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Register creates an account and returns a fresh access token. The duplicate
// check runs twice: a fast-path lookup here, and the unique index at insert
// time which closes the race between concurrent registrations.
func (s *Service) Register(ctx context.Context, name, email, password string) (string, error) {
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return "", shared.ErrDuplicateEmail
	} else if !errors.Is(err, shared.ErrNotFound) {
		return "", err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return "", err
	}

	user, err := s.repo.CreateUser(ctx, name, email, hash)
	if err != nil {
		return "", err
	}

	return s.tokens.Issue(user.Email)
}

// Login verifies credentials and mints an access token. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return "", shared.ErrInvalidCredentials
		}
		return "", err
	}
	if !verifyPassword(password, user.PasswordHash) {
		return "", shared.ErrInvalidCredentials
	}
	return s.tokens.Issue(user.Email)
}

// Authorize validates a presented token and returns its subject email.
func (s *Service) Authorize(tokenString string) (string, error) {
	claims, err := s.tokens.Validate(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// verifyPassword reports whether password matches the stored bcrypt hash.
// Malformed hashes verify as false rather than erroring.
func verifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
