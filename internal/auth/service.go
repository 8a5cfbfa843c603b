package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/moviemuse/moviemuse/internal/store"
)

const (
	minUsernameLen = 3
	minPasswordLen = 8
)

// Session is an issued bearer token and its expiry.
type Session struct {
	Token     string
	Username  string
	ExpiresAt time.Time
}

// Service implements signup and login over the user store.
type Service struct {
	users  *UserStore
	tokens *TokenManager
	logger *slog.Logger
}

// NewService creates an auth service.
func NewService(users *UserStore, tokens *TokenManager, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		users:  users,
		tokens: tokens,
		logger: logger.With("component", "auth"),
	}
}

// Signup registers a new account. The password is bcrypt-hashed before
// it touches the database.
func (s *Service) Signup(ctx context.Context, username, password string) (*User, error) {
	if len(username) < minUsernameLen {
		return nil, fmt.Errorf("username must be at least %d characters", minUsernameLen)
	}
	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("password must be at least %d characters", minPasswordLen)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, username, string(hash))
	if errors.Is(err, store.ErrDuplicate) {
		return nil, ErrUsernameTaken
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "username", username, "user_id", user.ID)
	return user, nil
}

// Login verifies credentials and issues a session token.
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	user, err := s.users.ByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Generate(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", "username", username, "user_id", user.ID)
	return &Session{Token: token, Username: user.Username, ExpiresAt: expiresAt}, nil
}

// Authenticate resolves a bearer token to its user id.
func (s *Service) Authenticate(tokenString string) (*Claims, error) {
	return s.tokens.Validate(tokenString)
}
