// Package session keeps the bearer token foodbites sends to the backend and
// announces when the backend rejects it.
//
// The token lives in a 0600 file under the data directory. When the API
// client sees the backend's invalid-token signature it calls Invalidate,
// which wipes the file and publishes one Event to every subscriber. The UI
// shell subscribes and routes to the login screen; nothing else in the
// process needs to know how the redirect happens.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

// ErrNoToken is returned by Claims when no credential is stored.
var ErrNoToken = errors.New("no token")

// Claims is the subset of the backend's JWT payload shown in the UI.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"id,omitempty"`
	Username string `json:"username,omitempty"`
}

// Expired reports whether the token carries an expiry before now.
func (c Claims) Expired(now time.Time) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return !now.Before(c.ExpiresAt.Time)
}

// Store persists the bearer token and fans out invalidation events.
type Store struct {
	path string
	now  func() time.Time
	log  zerolog.Logger

	mu    sync.RWMutex
	token string

	bus bus
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for failures that have no caller to
// return to.
func WithLogger(l zerolog.Logger) Option { return func(s *Store) { s.log = l } }

// Open loads the token at path, if any. A missing file means signed out.
func Open(path string, opts ...Option) (*Store, error) {
	s := &Store{path: path, now: time.Now, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read token: %w", err)
	}
	s.token = strings.TrimSpace(string(data))
	return s, nil
}

// Token returns the current bearer token, or "" when signed out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SignedIn reports whether a token is stored.
func (s *Store) SignedIn() bool {
	return s.Token() != ""
}

// Set stores a new token and persists it.
func (s *Store) Set(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("token is empty")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

// Clear forgets the token in memory and on disk.
func (s *Store) Clear() error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}

// Claims decodes the token payload without verifying the signature; the
// backend is the only party that can verify it.
func (s *Store) Claims() (Claims, error) {
	token := s.Token()
	if token == "" {
		return Claims{}, ErrNoToken
	}
	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return Claims{}, fmt.Errorf("decode token: %w", err)
	}
	return claims, nil
}

// Invalidate clears the credential and publishes one event per call. The
// in-memory token is always dropped; a token file that cannot be removed is
// logged.
func (s *Store) Invalidate(reason string) {
	if err := s.Clear(); err != nil {
		s.log.Error().Err(err).Str("path", s.path).Str("reason", reason).Msg("stale token left on disk")
	}
	s.bus.publish(Event{Reason: reason, At: s.now()})
}

// Subscribe registers for invalidation events. The returned func removes
// the subscription.
func (s *Store) Subscribe() (<-chan Event, func()) {
	return s.bus.subscribe()
}
