package session

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// Keys used in the store.
const (
	KeyUserName  = "userName"
	KeyPassword  = "password"
	KeyToken     = "token"
	KeyThemeMode = "themeMode"
	KeyClientID  = "clientId"
)

// ErrNotFound is returned by Get for an absent key.
var ErrNotFound = errors.New("session: key not found")

// Store is asynchronous string key-value persistence. Every call takes
// a context because implementations may sit on slow platform storage.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// FileStore keeps the session in a JSON file, written atomically on
// every Set. A fresh store mints a client id on first open so each
// installation is distinguishable server-side.
type FileStore struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

func OpenFileStore(path string) (*FileStore, error) {
	fs := &FileStore{path: path, values: map[string]string{}}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &fs.values); err != nil {
			// A corrupt session file is treated as a fresh start, not a
			// fatal condition.
			fs.values = map[string]string{}
		}
	case os.IsNotExist(err):
		// fresh store
	default:
		return nil, err
	}
	if fs.values[KeyClientID] == "" {
		fs.values[KeyClientID] = uuid.NewString()
		if err := fs.flush(); err != nil {
			return nil, err
		}
	}
	return fs, nil
}

func (fs *FileStore) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()
	v, ok := fs.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (fs *FileStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.values[key] = value
	return fs.flush()
}

func (fs *FileStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()
	delete(fs.values, key)
	return fs.flush()
}

// ClientID returns the per-installation identifier.
func (fs *FileStore) ClientID() string {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.values[KeyClientID]
}

// flush writes the file via rename so a crash never leaves a
// half-written session. Caller holds the lock.
func (fs *FileStore) flush() error {
	data, err := json.MarshalIndent(fs.values, "", "  ")
	if err != nil {
		return err
	}
	tmp := fs.path + ".tmp"
	if dir := filepath.Dir(fs.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, fs.path)
}

// MemStore is an in-memory Store for tests.
type MemStore struct {
	mu     sync.Mutex
	values map[string]string
	// Sets records every Set call in order, for assertions on
	// persistence ordering.
	Sets []string
}

func NewMemStore() *MemStore {
	return &MemStore{values: map[string]string{}}
}

func (m *MemStore) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *MemStore) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	m.Sets = append(m.Sets, key)
	return nil
}

func (m *MemStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
