package driven

import (
	"context"

	"github.com/lexdesk-labs/lexdesk-cli/internal/core/domain"
)

// WorkspaceSnapshot is the persisted workspace state restored at startup.
type WorkspaceSnapshot struct {
	// Documents maps document ID to its stored entity.
	Documents map[string]domain.Document

	// Order is the display order, most recently added first.
	Order []string

	// SelectedID is the persisted selection cursor, possibly empty.
	SelectedID string

	// Messages maps document ID to its chat transcript.
	Messages map[string][]domain.ChatMessage
}

// WorkspaceStore persists workspace state across process restarts.
// The in-memory workspace remains authoritative; the store is written
// through on mutation and read once at startup.
type WorkspaceStore interface {
	// SaveDocument stores or updates a document.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// DeleteDocument removes a document and its transcript.
	DeleteDocument(ctx context.Context, id string) error

	// SaveOrder persists the display order.
	SaveOrder(ctx context.Context, order []string) error

	// SaveSelection persists the selection cursor. Empty clears it.
	SaveSelection(ctx context.Context, id string) error

	// AppendMessage adds one transcript entry for a document.
	AppendMessage(ctx context.Context, documentID string, msg domain.ChatMessage) error

	// Load reads the full persisted state.
	Load(ctx context.Context) (*WorkspaceSnapshot, error)
}
