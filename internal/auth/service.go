package auth

import (
	"context"
	"errors"
	"strings"

	"nexus/internal/models"
	"nexus/internal/repo"
)

var (
	// ErrInvalidCredentials is returned for any login failure. The
	// reason is intentionally vague to prevent account enumeration.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUnauthorized is returned for any token-to-identity failure.
	ErrUnauthorized = errors.New("unauthorized")
)

// Service is the authenticator: it registers identities, exchanges
// credentials for bearer tokens, and resolves presented tokens back to
// an identity on every authenticated request.
type Service struct {
	users      *repo.UserStore
	tokens     *Tokens
	bcryptCost int
}

func NewService(users *repo.UserStore, tokens *Tokens, bcryptCost int) *Service {
	return &Service{users: users, tokens: tokens, bcryptCost: bcryptCost}
}

// Register creates a new identity. Duplicate emails surface as
// repo.ErrEmailTaken.
func (s *Service) Register(ctx context.Context, email, fullName, password string) (*models.User, error) {
	hash, err := HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		Email:          strings.ToLower(strings.TrimSpace(email)),
		FullName:       strings.TrimSpace(fullName),
		HashedPassword: hash,
		IsActive:       true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login verifies the credential pair and issues a bearer token.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if !u.IsActive || !CheckPassword(password, u.HashedPassword) {
		return "", ErrInvalidCredentials
	}
	return s.tokens.Issue(u.Email)
}

// Identify resolves a presented token to its identity. Bad signature,
// expiry, unknown subject and deactivated accounts all collapse to
// ErrUnauthorized.
func (s *Service) Identify(ctx context.Context, raw string) (*models.User, error) {
	subject, err := s.tokens.Verify(raw)
	if err != nil {
		return nil, ErrUnauthorized
	}
	u, err := s.users.FindByEmail(ctx, subject)
	if err != nil || !u.IsActive {
		return nil, ErrUnauthorized
	}
	return u, nil
}
