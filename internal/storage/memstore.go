package storage

import (
	"fmt"
	"path"
	"sort"
	"sync"
)

// MemStore is an in-memory Store with the same semantics as FileStore.
// Used by tests to exercise the pipeline without touching disk.
type MemStore struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{files: make(map[string][]byte)}
}

func memKey(dir, name string) string {
	return path.Join(dir, name)
}

// Put replaces the full content of dir/name.
func (s *MemStore) Put(dir, name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	s.files[memKey(dir, name)] = buf
	return nil
}

// Get returns the content of dir/name, or ErrNotFound.
func (s *MemStore) Get(dir, name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.files[memKey(dir, name)]
	if !ok {
		return nil, fmt.Errorf("%s: %w", memKey(dir, name), ErrNotFound)
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	return buf, nil
}

// Append adds data to the end of dir/name, creating it if needed.
func (s *MemStore) Append(dir, name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := memKey(dir, name)
	s.files[key] = append(s.files[key], data...)
	return nil
}

// List returns the sorted file names inside dir.
func (s *MemStore) List(dir string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var names []string
	for key := range s.files {
		if path.Dir(key) == path.Clean(dir) {
			names = append(names, path.Base(key))
		}
	}
	sort.Strings(names)
	return names, nil
}
