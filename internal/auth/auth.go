// Package auth guards the mutating routes with a single-admin login.
// Passwords are verified against a bcrypt hash from configuration; session
// tokens live in an in-memory TTL cache and die with the process.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"ore/internal/cache"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoSession          = errors.New("no session")
)

// SessionCookie is the cookie name carrying the session token.
const SessionCookie = "ore_session"

// HashPassword produces a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Sessions holds active admin sessions.
type Sessions struct {
	user    string
	hash    string
	store   *cache.LRUCache[string]
	cleanup *cache.Manager
}

// NewSessions creates a session manager for the configured admin user.
// An empty hash disables authentication entirely: every check passes.
func NewSessions(user, passwordHash string, ttl time.Duration) *Sessions {
	s := &Sessions{
		user:    user,
		hash:    passwordHash,
		store:   cache.NewLRUCache[string](100, ttl),
		cleanup: cache.NewManager(),
	}
	s.cleanup.Register(s.store)
	s.cleanup.StartCleanup(10 * time.Minute)
	return s
}

// Close stops the background session cleanup.
func (s *Sessions) Close() {
	s.cleanup.Stop()
}

// Enabled reports whether login is required at all.
func (s *Sessions) Enabled() bool {
	return s.hash != ""
}

// Login verifies the credentials and mints a session token.
func (s *Sessions) Login(user, password string) (string, error) {
	if !s.Enabled() {
		return "", ErrInvalidCredentials
	}
	if user != s.user {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.hash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := newToken()
	if err != nil {
		return "", fmt.Errorf("mint session token: %w", err)
	}
	s.store.Set(token, user)
	return token, nil
}

// Check validates a session token. With auth disabled it always succeeds.
func (s *Sessions) Check(token string) error {
	if !s.Enabled() {
		return nil
	}
	if token == "" {
		return ErrNoSession
	}
	if _, ok := s.store.Get(token); !ok {
		return ErrNoSession
	}
	return nil
}

// Logout invalidates a session token.
func (s *Sessions) Logout(token string) {
	s.store.Delete(token)
}

func newToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
