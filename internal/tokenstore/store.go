// Package tokenstore persists the session token pair and user profile
// between console restarts. The files are a cache of the live session, not
// a source of truth: anything unreadable is discarded wholesale.
package tokenstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/model"
)

const (
	sessionFile = "session.json"
	profileFile = "profile.json"
)

type Store struct {
	dir string
	mu  sync.Mutex
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) SaveSession(session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(sessionFile, session)
}

func (s *Store) SaveUser(user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(profileFile, user)
}

// LoadSession returns the persisted session, or nil when none exists. A
// corrupt file clears both persisted keys together.
func (s *Store) LoadSession() (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var session model.Session
	ok, err := s.read(sessionFile, &session)
	if err != nil || !ok {
		return nil, err
	}
	if session.ExpiresAt.IsZero() {
		if exp, ok := ExpiryFromToken(session.AccessToken); ok {
			session.ExpiresAt = exp
		}
	}
	return &session, nil
}

func (s *Store) LoadUser() (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var user model.User
	ok, err := s.read(profileFile, &user)
	if err != nil || !ok {
		return nil, err
	}
	return &user, nil
}

// Clear removes both persisted keys. Called on logout and on any
// deserialization failure.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearLocked()
}

func (s *Store) clearLocked() error {
	var firstErr error
	for _, name := range []string{sessionFile, profileFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (s *Store) write(name string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}

	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func (s *Store) read(name string, out any) (bool, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		log.Warn().Err(err).Str("file", name).Msg("corrupt persisted state, clearing")
		s.clearLocked()
		return false, nil
	}
	return true, nil
}

// ExpiryFromToken reads the exp claim of a JWT access token without
// verifying the signature. The backend owns verification; the console only
// needs the expiry for its proactive refresh schedule.
func ExpiryFromToken(token string) (time.Time, bool) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
