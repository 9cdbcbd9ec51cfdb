// Package memory provides an in-memory content store.
// Used for tests and ephemeral sessions where document bytes need not
// survive the process.
package memory

import (
	"bytes"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/lexdesk-labs/lexdesk-cli/internal/core/domain"
	"github.com/lexdesk-labs/lexdesk-cli/internal/core/ports/driven"
)

// Ensure ContentStore implements the interface.
var _ driven.ContentStore = (*ContentStore)(nil)

// ContentStore holds raw document bytes keyed by minted references.
type ContentStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewContentStore creates an empty in-memory content store.
func NewContentStore() *ContentStore {
	return &ContentStore{blobs: make(map[string][]byte)}
}

// Put stores the bytes and mints a new reference.
func (s *ContentStore) Put(_ string, data []byte) (string, error) {
	ref := "mem://" + uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[ref] = data
	return ref, nil
}

// Open returns a reader over the referenced bytes.
func (s *ContentStore) Open(ref string) (io.ReadCloser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.blobs[ref]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Release frees the referenced bytes. Releasing an unknown or already
// released reference is a no-op.
func (s *ContentStore) Release(ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, ref)
	return nil
}

// Len returns the number of live blobs. Test helper.
func (s *ContentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}
