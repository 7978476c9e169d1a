package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore is the default [Persistence] backend: one JSON record on local
// disk. Writes go through a temp file and rename so a crash mid-write never
// leaves a truncated record.
type FileStore struct {
	path string
}

// NewFileStore creates a [FileStore] rooted at path. Parent directories are
// created on the first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the persisted record. Returns [ErrNotFound] when the file does
// not exist.
func (f *FileStore) Load(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load persisted session: %w", err)
	}
	return data, nil
}

// Save atomically replaces the persisted record.
func (f *FileStore) Save(_ context.Context, data []byte) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("save persisted session: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("save persisted session: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("save persisted session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("save persisted session: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("save persisted session: %w", err)
	}
	return nil
}

// Clear removes the persisted record. Clearing an absent record is not an
// error.
func (f *FileStore) Clear(_ context.Context) error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear persisted session: %w", err)
	}
	return nil
}
