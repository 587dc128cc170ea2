package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"fintrack/internal/auth"
	"fintrack/internal/cache"
	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/store"
)

const (
	userCacheSize = 1024
	userCacheTTL  = time.Minute
)

// AuthService registers users, logs them in and resolves bearer tokens.
type AuthService struct {
	users  store.UserStore
	tokens *auth.Tokens
	known  *cache.LRUCache[core.User]
	now    func() time.Time
}

func NewAuthService(users store.UserStore, tokens *auth.Tokens) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		known:  cache.NewLRUCache[core.User](userCacheSize, userCacheTTL),
		now:    time.Now,
	}
}

// UserCache exposes the lookup cache so it can be swept by a cache.Manager.
func (s *AuthService) UserCache() cache.Cleaner {
	return s.known
}

// Register creates an account and returns a token for it.
func (s *AuthService) Register(ctx context.Context, email, password string) (string, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return "", err
	}
	hash, err := auth.HashPassword(password)
	if errors.Is(err, auth.ErrPasswordTooShort) {
		return "", fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, auth.MinPasswordLength)
	}
	if err != nil {
		return "", err
	}

	u := core.User{ID: newID(), Email: email, PasswordHash: hash, CreatedAt: s.now()}
	if err := s.users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return "", ErrUserExists
		}
		return "", fmt.Errorf("create user: %w", err)
	}
	slog.InfoContext(ctx, "User registered",
		log.FieldComponent, log.ComponentAuth,
		log.FieldOperation, log.OpRegister,
		log.FieldUserID, u.ID)
	return s.tokens.Generate(u.ID)
}

// Login checks credentials and returns a fresh token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	u, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("find user: %w", err)
	}
	if err := auth.CheckPassword(u.PasswordHash, password); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.tokens.Generate(u.ID)
}

// VerifyToken returns the id of the user the token was issued to. Tokens of
// deleted or unknown users are rejected with auth.ErrInvalidToken.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (string, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return "", err
	}
	if u, ok := s.known.Get(claims.UserID); ok {
		return u.ID, nil
	}
	u, err := s.users.GetUser(ctx, claims.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return "", auth.ErrInvalidToken
	}
	if err != nil {
		return "", fmt.Errorf("find user: %w", err)
	}
	s.known.Set(u.ID, u)
	return u.ID, nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	return email, nil
}
