package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Store is a session-scoped key/value cache. Values live in a JSON file
// under the OS temp dir, named after the parent process id so that each
// terminal session gets its own cache and a fresh login does not see stale
// values from an older session.
type Store struct {
	path string
}

// New creates a store rooted at dir. An empty dir uses the OS temp dir.
func New(dir string) *Store {
	if dir == "" {
		dir = os.TempDir()
	}
	return &Store{
		path: filepath.Join(dir, fmt.Sprintf("parkspot-session-%d.json", os.Getppid())),
	}
}

// NewAt creates a store backed by an explicit file path, for tests.
func NewAt(path string) *Store {
	return &Store{path: path}
}

// Get reads the value stored under key into v. It returns false when the
// key is absent.
func (s *Store) Get(key string, v interface{}) (bool, error) {
	values, err := s.read()
	if err != nil {
		return false, err
	}

	raw, ok := values[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("failed to decode session value %q: %w", key, err)
	}
	return true, nil
}

// Set stores the value under key for the remainder of the session.
func (s *Store) Set(key string, v interface{}) error {
	values, err := s.read()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode session value %q: %w", key, err)
	}
	values[key] = raw

	return s.write(values)
}

// Delete removes a key. Deleting an absent key is not an error.
func (s *Store) Delete(key string) error {
	values, err := s.read()
	if err != nil {
		return err
	}
	delete(values, key)
	return s.write(values)
}

// Clear removes the backing file entirely.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (s *Store) read() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, err
	}

	values := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &values); err != nil {
		// A corrupt cache is discarded, not fatal.
		return map[string]json.RawMessage{}, nil
	}
	return values, nil
}

func (s *Store) write(values map[string]json.RawMessage) error {
	data, err := json.Marshal(values)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}
