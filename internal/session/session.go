// Package session keeps LinkedIn OAuth sessions keyed by the client's session id.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ibeckermayer/syndicate/internal/config"
)

// Session is what the façade needs to act for a signed-in member
type Session struct {
	AccessToken string `json:"accessToken"`
	UserURN     string `json:"userUrn"`
}

// Store is a key-value store of sessions
type Store interface {
	Get(id string) (Session, bool)
	Set(id string, s Session) error
}

// FileStore holds sessions in memory and persists them to a JSON object file
// ({id: {accessToken, userUrn}}). With writeThrough every Set is written
// immediately; otherwise Flush persists pending changes.
type FileStore struct {
	path         string
	writeThrough bool

	mu       sync.RWMutex
	sessions map[string]Session
	dirty    bool
	writeMu  sync.Mutex
}

// DefaultPath returns sessions.json under the config dir
func DefaultPath() (string, error) {
	dir, err := config.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "sessions.json"), nil
}

// Open loads path if it exists and returns a store backed by it
func Open(path string, writeThrough bool) (*FileStore, error) {
	s := &FileStore{
		path:         path,
		writeThrough: writeThrough,
		sessions:     make(map[string]Session),
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read sessions: %w", err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.sessions); err != nil {
			return nil, fmt.Errorf("failed to decode sessions: %w", err)
		}
	}
	return s, nil
}

// Get returns the session stored under id
func (s *FileStore) Get(id string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// Set stores sess under id
func (s *FileStore) Set(id string, sess Session) error {
	if id == "" {
		return errors.New("session id is required")
	}

	s.mu.Lock()
	s.sessions[id] = sess
	s.dirty = true
	s.mu.Unlock()

	if s.writeThrough {
		return s.Flush()
	}
	return nil
}

// Delete removes a session
func (s *FileStore) Delete(id string) error {
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.dirty = s.dirty || ok
	s.mu.Unlock()

	if ok && s.writeThrough {
		return s.Flush()
	}
	return nil
}

// Len returns the number of sessions
func (s *FileStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Flush writes the map to disk if it changed since the last write
func (s *FileStore) Flush() error {
	// One writer at a time so an older snapshot never overwrites a newer one
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if !s.dirty {
		s.mu.Unlock()
		return nil
	}
	data, err := json.MarshalIndent(s.sessions, "", "  ")
	s.dirty = false
	s.mu.Unlock()
	if err != nil {
		return err
	}

	if err := writeFileAtomic(s.path, data); err != nil {
		s.mu.Lock()
		s.dirty = true
		s.mu.Unlock()
		return fmt.Errorf("failed to write sessions: %w", err)
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".sessions-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
