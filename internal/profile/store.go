package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/techtonix/compass/internal/storage"
)

// StorageKey is the durable-store key holding the serialized Profile.
const StorageKey = "cc_profile"

// KV defines the storage operations the Store needs.
// Implemented by storage.Store.
type KV interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// Store persists the single active Profile.
type Store struct {
	kv     KV
	logger *slog.Logger

	mu sync.Mutex
}

// NewStore creates a Store over kv.
func NewStore(kv KV) *Store {
	return &Store{kv: kv, logger: slog.Default()}
}

// Load returns the persisted Profile. ok is false when nothing is stored.
// Malformed stored data is discarded and reported as absent; only storage
// failures produce an error.
func (s *Store) Load() (p Profile, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.kv.Get(StorageKey)
	if errors.Is(err, storage.ErrNotFound) {
		return Profile{}, false, nil
	}
	if err != nil {
		return Profile{}, false, fmt.Errorf("reading profile: %w", err)
	}

	p, err = Decode([]byte(raw))
	if err != nil {
		s.logger.Warn("discarding malformed stored profile", "key", StorageKey, "error", err)
		if delErr := s.kv.Delete(StorageKey); delErr != nil {
			s.logger.Warn("failed to discard malformed profile", "key", StorageKey, "error", delErr)
		}
		return Profile{}, false, nil
	}
	return p, true, nil
}

// Save serializes p and replaces any previously stored Profile.
func (s *Store) Save(p Profile) error {
	data, err := Encode(p)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Set(StorageKey, string(data)); err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	return nil
}

// Clear removes the stored Profile.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(StorageKey); err != nil {
		return fmt.Errorf("clearing profile: %w", err)
	}
	return nil
}

// Encode serializes p. Nil tag lists are written as empty arrays.
func Encode(p Profile) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	data, err := json.Marshal(copyProfile(p))
	if err != nil {
		return nil, fmt.Errorf("marshalling profile: %w", err)
	}
	return data, nil
}

// storedProfile distinguishes missing scalar fields from zero values.
type storedProfile struct {
	Name      *string    `json:"name"`
	Education *Education `json:"education"`
	Industry  *Industry  `json:"industry"`
	Skills    []string   `json:"skills"`
	Interests []string   `json:"interests"`
}

// Decode parses and validates a serialized Profile.
func Decode(data []byte) (Profile, error) {
	var sp storedProfile
	if err := json.Unmarshal(data, &sp); err != nil {
		return Profile{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if sp.Name == nil || sp.Education == nil || sp.Industry == nil {
		return Profile{}, fmt.Errorf("%w: missing name, education or industry", ErrMalformed)
	}
	p := Profile{
		Name:      *sp.Name,
		Education: *sp.Education,
		Industry:  *sp.Industry,
		Skills:    sp.Skills,
		Interests: sp.Interests,
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return copyProfile(p), nil
}
