package storage_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"applytrack/api/internal/storage"
)

func TestDiskStore_SaveOpenDelete(t *testing.T) {
	store, err := storage.NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	if err := store.Save(ctx, "user-1-resume.pdf", strings.NewReader("%PDF"), 4, "application/pdf"); err != nil {
		t.Fatalf("save: %v", err)
	}

	rc, size, err := store.Open(ctx, "user-1-resume.pdf")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	data, _ := io.ReadAll(rc)
	rc.Close()

	if string(data) != "%PDF" {
		t.Errorf("content = %q", data)
	}
	if size != 4 {
		t.Errorf("size = %d, want 4", size)
	}

	if err := store.Delete(ctx, "user-1-resume.pdf"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, _, err := store.Open(ctx, "user-1-resume.pdf"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("want ErrNotFound after delete, got %v", err)
	}
}

func TestDiskStore_MissingKey_ReturnsErrNotFound(t *testing.T) {
	store, err := storage.NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	if _, _, err := store.Open(context.Background(), "no-such-key"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("open: want ErrNotFound, got %v", err)
	}
	if err := store.Delete(context.Background(), "no-such-key"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("delete: want ErrNotFound, got %v", err)
	}
}

func TestDiskStore_TraversalKey_StaysInsideDir(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewDiskStore(dir)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	if err := store.Save(context.Background(), "../../escape.txt", strings.NewReader("x"), 1, ""); err != nil {
		t.Fatalf("save: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "escape.txt")); err != nil {
		t.Errorf("flattened file missing inside the upload dir: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "..", "..", "escape.txt")); err == nil {
		t.Error("file escaped the upload dir")
	}
}
