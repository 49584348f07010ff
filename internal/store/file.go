package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"tianya/internal/logger"
)

// FileStore persists all keys in a single JSON file. Every mutation rewrites
// the file through a temp-file rename so a crash mid-write leaves the previous
// contents intact. One FileStore per path; concurrent FileStores on the same
// path race with last-writer-wins, same as the store contract allows.
type FileStore struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// NewFileStore opens or creates the store file at path. A missing file starts
// the store empty; an unreadable or corrupt file is logged and treated as
// empty rather than failing the client at startup.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	fs := &FileStore{
		path:   path,
		values: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return fs, nil
	}
	if err != nil {
		logger.Warn("Failed to read store file, starting empty", "path", path, "error", err)
		return fs, nil
	}

	if err := json.Unmarshal(data, &fs.values); err != nil {
		logger.Warn("Store file is corrupt, starting empty", "path", path, "error", err)
		fs.values = make(map[string]string)
	}

	return fs, nil
}

// Get returns the value for key, reporting absence through ok.
func (f *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	logger.StoreOperation("file", "get", key)
	value, ok := f.values[key]
	return value, ok, nil
}

// Set stores value under key and persists the whole map.
func (f *FileStore) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	logger.StoreOperation("file", "set", key)
	f.values[key] = value
	return f.persist()
}

// Delete removes key and persists. Deleting an absent key is a no-op.
func (f *FileStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	logger.StoreOperation("file", "delete", key)
	if _, ok := f.values[key]; !ok {
		return nil
	}
	delete(f.values, key)
	return f.persist()
}

// persist writes the value map atomically. Callers hold f.mu.
func (f *FileStore) persist() error {
	data, err := json.MarshalIndent(f.values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("failed to replace store file: %w", err)
	}
	return nil
}
