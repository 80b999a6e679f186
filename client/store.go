package client

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Credentials is the persisted login state.
type Credentials struct {
	AccessToken string `json:"access_token"`
	Username    string `json:"username"`
}

// CredentialStore persists credentials between sessions.
type CredentialStore interface {
	Load() (*Credentials, error)
	Save(creds *Credentials) error
	Clear() error
}

// FileStore keeps credentials in a JSON file with owner-only permissions.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultStorePath returns the per-user credentials path.
func DefaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".twitter-clone-credentials.json"
	}
	return filepath.Join(home, ".twitter-clone", "credentials.json")
}

func (s *FileStore) Load() (*Credentials, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			// 还没有登录过
			return nil, nil
		}
		return nil, err
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, err
	}

	return &creds, nil
}

func (s *FileStore) Save(creds *Credentials) error {
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0o600)
}

func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// MemoryStore keeps credentials in memory, for tests.
type MemoryStore struct {
	creds *Credentials
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() (*Credentials, error) {
	return s.creds, nil
}

func (s *MemoryStore) Save(creds *Credentials) error {
	s.creds = creds
	return nil
}

func (s *MemoryStore) Clear() error {
	s.creds = nil
	return nil
}
