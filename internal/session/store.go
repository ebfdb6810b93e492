package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"rememberit/internal/config"
)

// Store abstracts persistence for the credential record.
type Store interface {
	Load() (Session, error)
	Save(Session) error
	Clear() error
}

// FileStore writes the session to a JSON file on disk.
type FileStore struct {
	path string
}

// NewFileStore builds a FileStore rooted at the provided path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultStore returns a FileStore at the standard settings location.
func DefaultStore() (*FileStore, error) {
	path, err := config.SettingsPath()
	if err != nil {
		return nil, fmt.Errorf("resolve settings path: %w", err)
	}
	return NewFileStore(path), nil
}

// Path returns the location of the settings file.
func (s *FileStore) Path() string { return s.path }

// Load reads the session from disk. A missing file resolves to a logged-out
// session.
func (s *FileStore) Load() (Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Session{}, nil
		}
		return Session{}, fmt.Errorf("read settings: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}, fmt.Errorf("decode settings: %w", err)
	}
	return sess, nil
}

// Save persists the session to disk with restricted permissions.
func (s *FileStore) Save(sess Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("ensure settings directory: %w", err)
	}

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// Clear removes the settings file. A missing file is not an error.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove settings: %w", err)
	}
	return nil
}
