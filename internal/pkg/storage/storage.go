package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned by Get when no blob exists at the path.
var ErrNotFound = errors.New("blob not found")

// Storage is the blob store used for campsite photos.
type Storage interface {
	// Save writes content at the relative path, creating parents as needed.
	Save(ctx context.Context, path string, content io.Reader) error

	// Get opens the blob at path. The caller closes the reader.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the blob at path. Missing blobs are not an error.
	Delete(ctx context.Context, path string) error
}
