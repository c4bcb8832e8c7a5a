// Package session owns the client-side proof of authentication: the bearer
// token and the cached profile. A Session is created once at startup and
// passed to every service and page that needs it; nothing else reads or
// writes the underlying storage.
package session

import (
	"encoding/json"
	"fmt"
	"sync"

	"lifeos/internal/logger"
	"lifeos/internal/models"
)

// Fixed storage keys.
const (
	TokenKey = "token"
	UserKey  = "lifeos_user"
)

// Session wraps a Storage with typed token and user accessors. Presence of a
// token is all "authenticated" means; its shape and expiry are never checked.
type Session struct {
	mu    sync.Mutex
	store Storage
}

// New creates a Session backed by store.
func New(store Storage) *Session {
	return &Session{store: store}
}

// SaveToken stores the bearer token.
func (s *Session) SaveToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Set(TokenKey, token)
}

// Token returns the stored token, or "" when absent. Storage read failures
// are logged and treated as absent.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	token, ok, err := s.store.Get(TokenKey)
	if err != nil {
		logger.Get().Warnw("session token read failed", "error", err)
		return ""
	}
	if !ok {
		return ""
	}
	return token
}

// ClearToken removes the token.
func (s *Session) ClearToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Remove(TokenKey)
}

// SaveUser caches the profile, replacing any previous one.
func (s *Session) SaveUser(user *models.User) error {
	if user == nil {
		return s.ClearUser()
	}
	b, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encoding user: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Set(UserKey, string(b))
}

// User returns the cached profile, or nil when absent or unreadable.
func (s *Session) User() *models.User {
	s.mu.Lock()
	raw, ok, err := s.store.Get(UserKey)
	s.mu.Unlock()
	if err != nil {
		logger.Get().Warnw("session user read failed", "error", err)
		return nil
	}
	if !ok || raw == "" {
		return nil
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		logger.Get().Warnw("discarding unreadable cached user", "error", err)
		return nil
	}
	return &user
}

// ClearUser removes the cached profile.
func (s *Session) ClearUser() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Remove(UserKey)
}

// Clear removes both the token and the cached profile.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Remove(TokenKey); err != nil {
		return err
	}
	return s.store.Remove(UserKey)
}

// Authenticated reports whether a token is present.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}
