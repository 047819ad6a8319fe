package service

import (
	"context"
	"strings"
	"time"
	"unicode"

	"truckfleet/apperr"
	"truckfleet/internal/auth"
	"truckfleet/repository"
)

// AuthService handles signup and login, issuing signed tokens.
type AuthService struct {
	users  repository.UserRepositoryI
	secret string
	ttl    time.Duration
}

func NewAuthService(users repository.UserRepositoryI, secret string, ttl time.Duration) *AuthService {
	return &AuthService{users: users, secret: secret, ttl: ttl}
}

// Signup registers a new user and returns an access token. The email is
// normalized to lowercase; when no usable name is supplied one is derived
// from the email's local part.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", apperr.Conflictf("email already in use")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", err
	}
	// Create translates the unique-email race into the same conflict.
	u, err := s.users.Create(ctx, deriveName(name, email), email, hash)
	if err != nil {
		return "", err
	}
	return auth.IssueToken(s.secret, s.ttl, u)
}

// Login verifies credentials and returns an access token. The failure
// message is uniform so callers cannot probe which accounts exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, hash, err := s.users.GetByEmailWithHash(ctx, email)
	if err != nil {
		return "", err
	}
	if u == nil || !auth.CheckPassword(hash, password) {
		return "", apperr.Unauthorized("invalid credentials")
	}
	return auth.IssueToken(s.secret, s.ttl, u)
}

// deriveName returns the supplied name when it is usable (3+ characters),
// otherwise builds one from the email local part: separators become spaces
// and each word is title-cased.
func deriveName(name, email string) string {
	if n := strings.TrimSpace(name); len(n) >= 3 {
		return n
	}
	local, _, _ := strings.Cut(email, "@")
	cleaned := strings.TrimSpace(strings.Map(func(r rune) rune {
		if r == '.' || r == '_' || r == '-' {
			return ' '
		}
		return r
	}, local))
	if cleaned == "" {
		return "User"
	}
	words := strings.Fields(cleaned)
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
