package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ArtifactStore handles rendered chart and table files
type ArtifactStore interface {
	// Write replaces name with whatever write produces. Readers never see a
	// partially written file.
	Write(name string, write func(io.Writer) error) error
	// Open opens a previously written artifact for reading.
	Open(name string) (*os.File, error)
}

type fileStore struct {
	dir string
}

// NewFileStore creates an ArtifactStore rooted at dir. Relative names are
// resolved against dir, absolute names are used as is.
func NewFileStore(dir string) ArtifactStore {
	return &fileStore{dir: dir}
}

func (s *fileStore) path(name string) string {
	if filepath.IsAbs(name) || s.dir == "" {
		return name
	}
	return filepath.Join(s.dir, name)
}

// Write writes to a temp file next to the target and renames it into place
func (s *fileStore) Write(name string, write func(io.Writer) error) error {
	target := s.path(name)
	if dir := filepath.Dir(target); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create artifact directory: %w", err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp artifact: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to flush artifact: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("failed to replace %s: %w", target, err)
	}
	return nil
}

// Open opens an artifact for reading
func (s *fileStore) Open(name string) (*os.File, error) {
	f, err := os.Open(s.path(name))
	if err != nil {
		return nil, fmt.Errorf("failed to open artifact: %w", err)
	}
	return f, nil
}
