package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func TestFileStoreLoadMissing(t *testing.T) {
	fs := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))

	_, err := fs.Load(context.Background())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFileStoreSaveCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "state.json")
	fs := NewFileStore(path)
	ctx := context.Background()

	if err := fs.Save(ctx, []byte("payload")); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	data, err := fs.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if string(data) != "payload" {
		t.Fatalf("unexpected payload: %s", data)
	}
}

func TestFileStoreSaveOverwrites(t *testing.T) {
	fs := NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	ctx := context.Background()

	if err := fs.Save(ctx, []byte("one")); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := fs.Save(ctx, []byte("two")); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	data, _ := fs.Load(ctx)
	if string(data) != "two" {
		t.Fatalf("expected overwrite, got %s", data)
	}
}

func TestFileStoreClearMissingIsNil(t *testing.T) {
	fs := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))

	if err := fs.Clear(context.Background()); err != nil {
		t.Fatalf("clear of absent record failed: %v", err)
	}
}
