// Package session owns the authenticated identity of the console: the
// credential token, the user profile, and their durable copies.
package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/integron/console/pkg/models"
)

// Store persists the session across process restarts. Exactly two durable
// values exist: the credential token and the user profile.
type Store interface {
	Load() (string, *models.User, error)
	Save(token string, user *models.User) error
	Clear() error
}

type sessionState struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// FileStore keeps the session in a single JSON file under the state
// directory.
type FileStore struct {
	path string
}

func NewFileStore(stateDir string) *FileStore {
	return &FileStore{
		path: filepath.Join(stateDir, "session.json"),
	}
}

// Load reads the persisted session. A missing or malformed file yields an
// empty session, never an error: a corrupt state file must not block
// startup.
func (s *FileStore) Load() (string, *models.User, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil, nil
		}

		return "", nil, err
	}

	var state sessionState
	if err := json.Unmarshal(data, &state); err != nil {
		return "", nil, nil
	}

	return state.Token, state.User, nil
}

// Save writes token and profile atomically (temp file + rename) with owner-
// only permissions.
func (s *FileStore) Save(token string, user *models.User) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(sessionState{Token: token, User: user}, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}

	return os.Rename(tmp, s.path)
}

// Clear removes the state file. Clearing an already-absent session is not
// an error.
func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	return nil
}
