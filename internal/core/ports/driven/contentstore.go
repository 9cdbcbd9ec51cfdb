package driven

import "io"

// ContentStore owns raw document bytes behind opaque references.
// A reference is acquired when a document is created and must be released
// exactly once when the document is removed; releasing an unknown or
// already-released reference is a safe no-op.
type ContentStore interface {
	// Put stores the bytes and mints a new reference.
	Put(name string, data []byte) (string, error)

	// Open returns a reader over the referenced bytes.
	// Returns domain.ErrNotFound for unknown or released references.
	Open(ref string) (io.ReadCloser, error)

	// Release frees the referenced bytes. Idempotent.
	Release(ref string) error
}
