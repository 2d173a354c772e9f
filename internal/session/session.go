// package session persists the signed-in user's identity across runs
//
// Absence of a session means "guest" and is a valid terminal state, not an
// error: features that need an identity respond with a sign-in prompt.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"soundhive/internal/shared"
)

// Session identifies the signed-in user.
type Session struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Store reads and writes the persisted session.
//
// Current returns (nil, nil) when no session exists.
type Store interface {
	Current() (*Session, error)
	Set(s Session) error
	Clear() error
}

// FileStore persists the session as JSON under the user's home directory.
type FileStore struct {
	path string
}

// NewFileStore creates a store at the given path, defaulting to
// ~/.soundhive/session.json when path is empty.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		path = filepath.Join(home, ".soundhive", "session.json")
	}
	return &FileStore{path: path}, nil
}

// Current reads the persisted session, nil when signed out.
func (f *FileStore) Current() (*Session, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrSessionCorrupted, err)
	}
	if s.Email == "" {
		return nil, fmt.Errorf("%w: missing email", shared.ErrSessionCorrupted)
	}

	return &s, nil
}

// Set persists the session, creating the parent directory if needed.
func (f *FileStore) Set(s Session) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := os.WriteFile(f.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// Clear removes the persisted session. Clearing an absent session is a no-op.
func (f *FileStore) Clear() error {
	err := os.Remove(f.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// MemStore holds a session in memory, for tests and ephemeral runs.
type MemStore struct {
	session *Session
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore { return &MemStore{} }

func (m *MemStore) Current() (*Session, error) { return m.session, nil }

func (m *MemStore) Set(s Session) error {
	m.session = &s
	return nil
}

func (m *MemStore) Clear() error {
	m.session = nil
	return nil
}
