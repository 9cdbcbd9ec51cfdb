// Package memory provides in-memory implementations of the storage ports.
// Used for tests and ephemeral sessions.
package memory

import (
	"context"
	"sync"

	"github.com/lexdesk-labs/lexdesk-cli/internal/core/domain"
	"github.com/lexdesk-labs/lexdesk-cli/internal/core/ports/driven"
)

// Ensure WorkspaceStore implements the interface.
var _ driven.WorkspaceStore = (*WorkspaceStore)(nil)

// WorkspaceStore is an in-memory implementation of driven.WorkspaceStore.
type WorkspaceStore struct {
	mu         sync.RWMutex
	documents  map[string]domain.Document
	order      []string
	selectedID string
	messages   map[string][]domain.ChatMessage
}

// NewWorkspaceStore creates a new in-memory workspace store.
func NewWorkspaceStore() *WorkspaceStore {
	return &WorkspaceStore{
		documents: make(map[string]domain.Document),
		messages:  make(map[string][]domain.ChatMessage),
	}
}

// SaveDocument stores or updates a document.
func (s *WorkspaceStore) SaveDocument(_ context.Context, doc *domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[doc.ID] = *doc
	return nil
}

// DeleteDocument removes a document and its transcript.
func (s *WorkspaceStore) DeleteDocument(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.documents, id)
	delete(s.messages, id)
	return nil
}

// SaveOrder persists the display order.
func (s *WorkspaceStore) SaveOrder(_ context.Context, order []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = append([]string(nil), order...)
	return nil
}

// SaveSelection persists the selection cursor.
func (s *WorkspaceStore) SaveSelection(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedID = id
	return nil
}

// AppendMessage adds one transcript entry for a document.
func (s *WorkspaceStore) AppendMessage(_ context.Context, documentID string, msg domain.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[documentID] = append(s.messages[documentID], msg)
	return nil
}

// Load reads the full persisted state.
func (s *WorkspaceStore) Load(_ context.Context) (*driven.WorkspaceSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := &driven.WorkspaceSnapshot{
		Documents:  make(map[string]domain.Document, len(s.documents)),
		Order:      append([]string(nil), s.order...),
		SelectedID: s.selectedID,
		Messages:   make(map[string][]domain.ChatMessage, len(s.messages)),
	}
	for id, doc := range s.documents {
		snapshot.Documents[id] = doc
	}
	for id, msgs := range s.messages {
		snapshot.Messages[id] = append([]domain.ChatMessage(nil), msgs...)
	}
	return snapshot, nil
}
