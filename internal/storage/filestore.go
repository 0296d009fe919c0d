package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileStore persists files under a single data root directory.
type FileStore struct {
	root string
}

// NewFileStore creates a store rooted at the given directory. The directory
// is created lazily by Bootstrap or the first write.
func NewFileStore(root string) *FileStore {
	return &FileStore{root: root}
}

// Root returns the data root directory.
func (s *FileStore) Root() string {
	return s.root
}

// Bootstrap creates the data root and the given partition directories.
func (s *FileStore) Bootstrap(dirs ...string) error {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("creating data root %s: %w", s.root, err)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(filepath.Join(s.root, dir), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	return nil
}

func (s *FileStore) path(dir, name string) string {
	return filepath.Join(s.root, dir, name)
}

// Put writes data as the complete content of dir/name, creating the
// partition directory if needed.
func (s *FileStore) Put(dir, name string, data []byte) error {
	if err := os.MkdirAll(filepath.Join(s.root, dir), 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	if err := os.WriteFile(s.path(dir, name), data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Join(dir, name), err)
	}
	return nil
}

// Get returns the full content of dir/name, or ErrNotFound if the file does
// not exist.
func (s *FileStore) Get(dir, name string) ([]byte, error) {
	data, err := os.ReadFile(s.path(dir, name))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: %w", filepath.Join(dir, name), ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Join(dir, name), err)
	}
	return data, nil
}

// Append adds data to the end of dir/name, creating the file if needed.
func (s *FileStore) Append(dir, name string, data []byte) error {
	if err := os.MkdirAll(filepath.Join(s.root, dir), 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	f, err := os.OpenFile(s.path(dir, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", filepath.Join(dir, name), err)
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("appending to %s: %w", filepath.Join(dir, name), err)
	}
	return nil
}

// List returns the sorted file names inside dir. A missing directory is not
// an error: the partition simply has no files yet.
func (s *FileStore) List(dir string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, dir))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}
