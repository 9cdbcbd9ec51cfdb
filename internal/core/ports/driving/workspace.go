package driving

import (
	"context"

	"github.com/lexdesk-labs/lexdesk-cli/internal/core/domain"
)

// BatchResult reports the outcome of a batch ingestion.
// A batch never fails as a whole: failed files are recorded and skipped.
type BatchResult struct {
	// Ingested lists the document IDs created, in ingestion order.
	Ingested []string

	// Failed lists the names of files whose ingestion failed.
	Failed []string
}

// WorkspaceService is the single source of truth for documents, selection,
// transcripts, and ingestion progress. All mutation goes through it;
// projections (tree, KPIs) are computed on read and never cached.
type WorkspaceService interface {
	// Select moves the selection cursor. No existence check: selecting an
	// unknown ID simply yields no document downstream.
	Select(id string)

	// IngestBatch ingests files strictly sequentially, recording progress.
	// Per-file failures are isolated; the batch always runs to completion.
	IngestBatch(ctx context.Context, files []domain.RawFile) (*BatchResult, error)

	// Remove deletes a document, releasing its content reference and
	// clearing a matching selection.
	Remove(id string) error

	// Rename replaces a document's display name.
	Rename(id, newName string) error

	// SetPageCount records the viewer-reported page count.
	SetPageCount(id string, pages int) error

	// Ask sends a question about the selected document and returns the
	// assistant's transcript entry. Returns domain.ErrNoSelection when
	// nothing is selected.
	Ask(ctx context.Context, text string) (*domain.ChatMessage, error)

	// Documents returns the documents in display order.
	Documents() []domain.Document

	// Document returns one document by ID.
	Document(id string) (*domain.Document, error)

	// Selected returns the selected document, nil when none.
	Selected() *domain.Document

	// Transcript returns the chat history for a document.
	Transcript(id string) []domain.ChatMessage

	// Progress returns the in-flight batch progress, nil when idle.
	Progress() *domain.UploadProgress

	// Tree projects the documents onto a folder tree.
	Tree() *domain.TreeNode

	// KPIs projects one document's overview onto a KPI record.
	KPIs(id string) (*domain.KPIRecord, error)

	// Summary aggregates KPIs across all documents.
	Summary() domain.KPISummary
}
