// Package session keeps the login token and user id in the durable store.
package session

import (
	"errors"
	"fmt"

	"github.com/techtonix/compass/internal/storage"
)

const (
	tokenKey  = "token"
	userIDKey = "user_id"
)

// ErrNotAuthenticated is returned by Require when no token is stored.
var ErrNotAuthenticated = errors.New("not logged in")

// KV defines the storage operations the Store needs.
type KV interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// Session is an authenticated login.
type Session struct {
	Token  string
	UserID string
}

// Store persists the current Session.
type Store struct {
	kv KV
}

func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

// Load returns the stored Session. ok is false when no token is stored.
func (s *Store) Load() (sess Session, ok bool, err error) {
	token, err := s.get(tokenKey)
	if err != nil {
		return Session{}, false, err
	}
	if token == "" {
		return Session{}, false, nil
	}
	userID, err := s.get(userIDKey)
	if err != nil {
		return Session{}, false, err
	}
	return Session{Token: token, UserID: userID}, true, nil
}

func (s *Store) get(key string) (string, error) {
	v, err := s.kv.Get(key)
	if errors.Is(err, storage.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", key, err)
	}
	return v, nil
}

// Save replaces the stored Session.
func (s *Store) Save(sess Session) error {
	if err := s.kv.Set(tokenKey, sess.Token); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}
	if err := s.kv.Set(userIDKey, sess.UserID); err != nil {
		return fmt.Errorf("saving user id: %w", err)
	}
	return nil
}

// Clear removes the stored Session.
func (s *Store) Clear() error {
	if err := s.kv.Delete(tokenKey); err != nil {
		return fmt.Errorf("clearing token: %w", err)
	}
	if err := s.kv.Delete(userIDKey); err != nil {
		return fmt.Errorf("clearing user id: %w", err)
	}
	return nil
}

// Token returns the stored token, or "" when logged out. It satisfies
// apiclient.TokenSource so requests pick up logins made mid-session.
func (s *Store) Token() string {
	sess, ok, err := s.Load()
	if err != nil || !ok {
		return ""
	}
	return sess.Token
}

// Require guards views that need a login.
func (s *Store) Require() (Session, error) {
	sess, ok, err := s.Load()
	if err != nil {
		return Session{}, err
	}
	if !ok {
		return Session{}, ErrNotAuthenticated
	}
	return sess, nil
}
