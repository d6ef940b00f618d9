package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmvolkov/shop/internal/auth"
	"github.com/mmvolkov/shop/internal/domain"
	"github.com/mmvolkov/shop/internal/infrastructure/store"
)

var ErrUsernameRequired = errors.New("username is required")

// Auth composes the credential store, password hasher and token issuer into
// the registration and login flows.
type Auth struct {
	users  store.UserStore
	tokens *auth.TokenService
}

// NewAuth creates an Auth service.
func NewAuth(users store.UserStore, tokens *auth.TokenService) *Auth {
	return &Auth{users: users, tokens: tokens}
}

// Register creates a user with a hashed password, a fresh random API key and
// the USER role. The existence pre-check is best-effort; the store's unique
// constraint is what actually loses the race between two identical
// registrations. The returned user carries no plaintext secret.
func (s *Auth) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" {
		return nil, ErrUsernameRequired
	}

	exists, err := s.users.UsernameExists(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if exists {
		return nil, domain.ErrUsernameTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		APIKey:       auth.NewAPIKey(),
		Roles:        []domain.Role{domain.RoleUser},
		CreatedAt:    time.Now(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// LoginResult is what a successful login hands back to the caller.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	APIKey    string
}

// Login verifies the password and issues a bearer token. A missing user and
// a wrong password are indistinguishable to the caller: both come back as
// domain.ErrInvalidCredentials, so usernames cannot be enumerated.
func (s *Auth) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.users.UserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Generate(user.Username)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		APIKey:    user.APIKey,
	}, nil
}
