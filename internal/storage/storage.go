// Package storage abstracts where uploaded documents live. The disk
// backend serves local development; S3 serves everything else.
package storage

import (
	"context"
	"errors"
	"io"
)

var ErrNotFound = errors.New("object not found")

type Store interface {
	Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	// Open returns the object's contents and size. The caller closes the
	// reader.
	Open(ctx context.Context, key string) (io.ReadCloser, int64, error)
	Delete(ctx context.Context, key string) error
}
