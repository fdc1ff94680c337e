package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrInvalidPath = errors.New("invalid file path")
	ErrNotFound    = errors.New("file not found")
)

// FileStorage keeps generated payroll files such as archived registers.
type FileStorage interface {
	// Save writes the content at path, replacing an existing file, and returns the stored key
	Save(ctx context.Context, content io.Reader, path string) (string, error)

	// Open retrieves a stored file
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// Exists checks if file exists
	Exists(ctx context.Context, path string) (bool, error)
}
