// Package store persists the most recent ADF document at a fixed path so the
// last export is always inspectable on disk.
package store

import (
	"os"
	"path/filepath"
	"sync"

	commonerrors "adf-relay/internal/common/errors"
)

// FileStore overwrites a single file atomically: write to a temp file in the
// same directory, then rename. Concurrent writers are serialized so readers
// never observe a torn document.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Write(document []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return commonerrors.NewArtifactWriteFailedError(s.path, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return commonerrors.NewArtifactWriteFailedError(s.path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(document); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return commonerrors.NewArtifactWriteFailedError(s.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return commonerrors.NewArtifactWriteFailedError(s.path, err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return commonerrors.NewArtifactWriteFailedError(s.path, err)
	}

	return nil
}
