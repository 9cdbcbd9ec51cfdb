// Package file provides a disk-backed content store.
// Blobs live under a spool directory so the viewer surface can reopen
// document bytes across sessions.
package file

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/lexdesk-labs/lexdesk-cli/internal/core/domain"
	"github.com/lexdesk-labs/lexdesk-cli/internal/core/ports/driven"
)

// Ensure ContentStore implements the interface.
var _ driven.ContentStore = (*ContentStore)(nil)

// ContentStore persists document bytes as files under a blob directory.
// References are the minted blob file names, not caller-supplied paths.
type ContentStore struct {
	mu  sync.Mutex
	dir string
}

// NewContentStore creates a content store rooted at dir.
// If dir is empty, defaults to ~/.lexdesk/blobs.
func NewContentStore(dir string) (*ContentStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".lexdesk", "blobs")
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	return &ContentStore{dir: dir}, nil
}

// Put writes the bytes to a new blob file and returns its reference.
func (s *ContentStore) Put(_ string, data []byte) (string, error) {
	ref := uuid.NewString() + ".pdf"

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.WriteFile(filepath.Join(s.dir, ref), data, 0600); err != nil {
		return "", err
	}
	return ref, nil
}

// Open returns a reader over the referenced blob.
func (s *ContentStore) Open(ref string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.dir, filepath.Base(ref)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Release deletes the referenced blob. Releasing an unknown or already
// released reference is a no-op.
func (s *ContentStore) Release(ref string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(ref)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Path returns the blob file path for a reference. Used by the viewer
// surface to hand the resource to an external renderer.
func (s *ContentStore) Path(ref string) string {
	return filepath.Join(s.dir, filepath.Base(ref))
}
