package console

import (
	"encoding/json"
	"errors"
	"fmt"
	"nanum-admin/backend/models"
	"os"
	"path/filepath"
	"sync"
)

// Storage keys of the persisted session
const (
	KeyAuthToken = "authToken"
	KeyUser      = "user"
)

// Session is the signed-in identity
type Session struct {
	Token string
	User  models.User
}

func (s Session) Valid() bool { return s.Token != "" }

// SessionStore persists the session between runs
type SessionStore interface {
	Load() (Session, error)
	Save(Session) error
	Clear() error
}

// MemoryStore keeps the session for the life of the process
type MemoryStore struct {
	mu      sync.Mutex
	session Session
}

func (m *MemoryStore) Load() (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session, nil
}

func (m *MemoryStore) Save(s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = s
	return nil
}

func (m *MemoryStore) Clear() error {
	return m.Save(Session{})
}

// FileStore keeps the session as a JSON object holding the authToken and user keys.
// The user value is itself a JSON string, as browser storage holds it.
type FileStore struct {
	Path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// DefaultSessionPath is ~/.nanum/session.json
func DefaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".nanum-session.json"
	}
	return filepath.Join(home, ".nanum", "session.json")
}

func (f *FileStore) Load() (Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return Session{}, nil
	}
	if err != nil {
		return Session{}, fmt.Errorf("read session: %w", err)
	}

	var kv map[string]string
	if err := json.Unmarshal(data, &kv); err != nil {
		return Session{}, fmt.Errorf("decode session: %w", err)
	}
	s := Session{Token: kv[KeyAuthToken]}
	if raw := kv[KeyUser]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &s.User); err != nil {
			return Session{}, fmt.Errorf("decode session user: %w", err)
		}
	}
	return s, nil
}

func (f *FileStore) Save(s Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, err := json.Marshal(s.User)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(map[string]string{
		KeyAuthToken: s.Token,
		KeyUser:      string(user),
	}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0700); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}
	if err := os.WriteFile(f.Path, data, 0600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
