package repositories

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// fsStore serves the manifest and quiz files from a local directory,
// the deployment layout the original file-hosting setup used.
type fsStore struct {
	baseDir      string
	manifestPath string
}

func NewFSStore(baseDir, manifestPath string) QuizFileStore {
	return &fsStore{
		baseDir:      baseDir,
		manifestPath: manifestPath,
	}
}

func (s *fsStore) ReadManifest(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, s.manifestPath)
		}
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return data, nil
}

func (s *fsStore) OpenQuizFile(ctx context.Context, path string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := validateFileName(path); err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(s.baseDir, path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to open quiz file %s: %w", path, err)
	}
	return f, nil
}

// validateFileName rejects path traversal and non-spreadsheet files.
func validateFileName(name string) error {
	lower := strings.ToLower(name)
	if !strings.HasSuffix(lower, ".xlsx") && !strings.HasSuffix(lower, ".xls") {
		return fmt.Errorf("invalid file type: %s", name)
	}
	if strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid file name: %s", name)
	}
	if !fs.ValidPath(name) {
		return fmt.Errorf("invalid file name: %s", name)
	}
	return nil
}
