package authclient

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// TokenStore persists the bearer credential between process runs. The token
// is opaque to this layer; a store only honours the TTL it was given.
type TokenStore interface {
	Set(token string, ttl time.Duration) error
	// Get returns the stored token, or false when none is held or the TTL
	// has elapsed.
	Get() (string, bool)
	Clear() error
}

// MemStore keeps the token in memory. Used in tests and short-lived callers.
type MemStore struct {
	mu      sync.Mutex
	token   string
	expires time.Time
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) Set(token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.expires = time.Now().Add(ttl)
	return nil
}

func (s *MemStore) Get() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" || time.Now().After(s.expires) {
		return "", false
	}
	return s.token, true
}

func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.expires = time.Time{}
	return nil
}

// FileStore persists the token as a small JSON file, so a CLI session
// survives process restarts the way a browser cookie survives reloads.
type FileStore struct {
	mu   sync.Mutex
	path string
}

type storedToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Set(token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(storedToken{Token: token, ExpiresAt: time.Now().Add(ttl)})
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

func (s *FileStore) Get() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}
	var st storedToken
	if err := json.Unmarshal(data, &st); err != nil {
		return "", false
	}
	if st.Token == "" || time.Now().After(st.ExpiresAt) {
		return "", false
	}
	return st.Token, true
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
