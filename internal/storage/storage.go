package storage

import (
	"context"
	"errors"
	"io"
)

var ErrFileNotFound = errors.New("stored file not found")

// FileStore keeps uploaded documents (medical certificates, payroll PDFs).
// The returned ref is opaque to callers and is what gets persisted.
//
//go:generate mockgen -source=storage.go -destination=mock/storage_mock.go -package=mock
type FileStore interface {
	Save(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
	Delete(ctx context.Context, ref string) error
}
