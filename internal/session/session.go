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
	"gopkg.in/yaml.v3"

	"github.com/saravenpi/outreach/internal/models"
)

// Lifetime is how long a login stays valid when the token carries no exp claim.
const Lifetime = 24 * time.Hour

var (
	ErrNoSession = errors.New("not logged in")
	ErrExpired   = errors.New("session expired, please log in again")
)

// Store persists the logged-in user as a YAML file and caches it in memory.
type Store struct {
	path   string
	now    func() time.Time
	mu     sync.RWMutex
	cached *models.User
}

// GetSessionPath returns the session file location under dir.
func GetSessionPath(dir string) string {
	return filepath.Join(dir, "session.yml")
}

func NewStore(dir string) *Store {
	return &Store{
		path: GetSessionPath(dir),
		now:  time.Now,
	}
}

// Save writes user to disk. A zero ExpiresAt is filled from the token's exp
// claim, or Lifetime from now.
func (s *Store) Save(user models.User) error {
	if strings.TrimSpace(user.Token) == "" {
		return fmt.Errorf("session token cannot be empty")
	}

	if user.ExpiresAt.IsZero() {
		if exp, ok := TokenExpiry(user.Token); ok {
			user.ExpiresAt = exp
		} else {
			user.ExpiresAt = s.now().Add(Lifetime)
		}
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := yaml.Marshal(&user)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	s.mu.Lock()
	s.cached = &user
	s.mu.Unlock()
	return nil
}

// Load returns the current user. It fails with ErrNoSession when nobody is
// logged in and ErrExpired once the session has lapsed.
func (s *Store) Load() (models.User, error) {
	s.mu.RLock()
	cached := s.cached
	s.mu.RUnlock()

	if cached == nil {
		data, err := os.ReadFile(s.path)
		if err != nil {
			if os.IsNotExist(err) {
				return models.User{}, ErrNoSession
			}
			return models.User{}, fmt.Errorf("failed to read session file: %w", err)
		}

		var user models.User
		if err := yaml.Unmarshal(data, &user); err != nil {
			return models.User{}, fmt.Errorf("failed to parse session file: %w", err)
		}
		if user.Token == "" {
			return models.User{}, ErrNoSession
		}

		s.mu.Lock()
		s.cached = &user
		s.mu.Unlock()
		cached = &user
	}

	if !cached.ExpiresAt.IsZero() && !s.now().Before(cached.ExpiresAt) {
		return *cached, ErrExpired
	}
	return *cached, nil
}

// Clear removes the session file. Clearing an absent session is not an error.
func (s *Store) Clear() error {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete session file: %w", err)
	}
	return nil
}

// TokenExpiry reads the exp claim of a JWT without verifying its signature;
// only the server can verify it.
func TokenExpiry(raw string) (time.Time, bool) {
	token, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
