package kvstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps the whole keyspace in one JSON document on disk and
// rewrites it after every mutation. A missing file is an empty store.
type FileStore struct {
	mu     sync.RWMutex
	path   string
	values map[string]string
}

func OpenFile(path string) (*FileStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, storageErr("open", "", fmt.Errorf("failed to create data directory: %w", err))
	}

	s := &FileStore{
		path:   path,
		values: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, storageErr("open", "", err)
	}
	if err := json.Unmarshal(data, &s.values); err != nil {
		return nil, storageErr("open", "", fmt.Errorf("failed to parse data file: %w", err))
	}
	if s.values == nil {
		s.values = make(map[string]string)
	}
	return s, nil
}

func (s *FileStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	return v, ok, nil
}

func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return s.saveLocked(key)
}

func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return s.saveLocked(key)
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) saveLocked(key string) error {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return storageErr("save", key, err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return storageErr("save", key, err)
	}
	return nil
}

// Path returns the location of the backing data file.
func (s *FileStore) Path() string { return s.path }
