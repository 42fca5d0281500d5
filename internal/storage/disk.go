package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// path flattens the key to its base name so a crafted key cannot escape
// the upload directory.
func (s *DiskStore) path(key string) string {
	return filepath.Join(s.dir, filepath.Base(key))
}

func (s *DiskStore) Save(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	dst := s.path(key)
	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(dst)
		return fmt.Errorf("write file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(dst)
		return fmt.Errorf("close file: %w", err)
	}
	return nil
}

func (s *DiskStore) Open(_ context.Context, key string) (io.ReadCloser, int64, error) {
	f, err := os.Open(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, fmt.Errorf("open file: %w", err)
	}

	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("stat file: %w", err)
	}
	return f, st.Size(), nil
}

func (s *DiskStore) Delete(_ context.Context, key string) error {
	if err := os.Remove(s.path(key)); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}
