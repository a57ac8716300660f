package repositories

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when a manifest or quiz file does not exist
// in the underlying store.
var ErrNotFound = errors.New("file not found")

// QuizFileStore is the I/O collaborator behind the catalog and the
// parser pipeline. Implementations fetch raw bytes; they never
// interpret them.
type QuizFileStore interface {
	// ReadManifest returns the raw catalog manifest document.
	ReadManifest(ctx context.Context) ([]byte, error)

	// OpenQuizFile opens one spreadsheet by its manifest path.
	OpenQuizFile(ctx context.Context, path string) (io.ReadCloser, error)
}

// IsNotFoundError checks if error represents a missing file.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
