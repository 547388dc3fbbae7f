// Package session persists which user and task the dashboard is focused on
// between invocations.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Session is the explicit view context handed to the presentation layer:
// which user and task are currently selected.
type Session struct {
	ActiveUser string `json:"usuario_ativo"`
	ActiveTask string `json:"tarefa_ativa"`
}

// Store reads and writes the session file kept next to the data file.
type Store struct {
	path string
}

// NewStore returns a session store for the data file at dataPath.
func NewStore(dataPath string) *Store {
	return &Store{path: filepath.Join(filepath.Dir(dataPath), "session.json")}
}

// Load reads the saved session. A missing file is not an error; it yields an
// empty session.
func (s *Store) Load() (Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Session{}, nil
		}
		return Session{}, fmt.Errorf("failed to read session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}, fmt.Errorf("failed to parse session: %w", err)
	}
	return sess, nil
}

// Save writes the session.
func (s *Store) Save(sess Session) error {
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// Clear removes the saved session.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
