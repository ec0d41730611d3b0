package storage

import (
	"context"
	"io"
	"time"
)

// FileInfo represents metadata about a file
type FileInfo struct {
	Path    string
	Size    int64
	ModTime time.Time
	IsDir   bool
}

// Backend defines the read operations comparators need.
// Implementations include the local filesystem.
type Backend interface {
	// Read opens a file for reading; the caller closes it.
	// The returned reader also implements io.Seeker when the backend
	// supports random access.
	Read(ctx context.Context, path string) (io.ReadCloser, error)

	// Exists checks if a file exists
	Exists(ctx context.Context, path string) (bool, error)

	// Stat returns file metadata
	Stat(ctx context.Context, path string) (*FileInfo, error)

	// Close releases any resources held by the backend
	Close() error
}
