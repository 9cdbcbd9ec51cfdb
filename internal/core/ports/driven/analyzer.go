package driven

import (
	"context"

	"github.com/lexdesk-labs/lexdesk-cli/internal/core/domain"
)

// IngestResult is the analysis service's response to a single ingestion.
type IngestResult struct {
	// DocumentID is the identifier minted by the service.
	DocumentID string

	// ChunkCount is the number of text chunks indexed.
	ChunkCount int

	// Overview holds the topic findings produced at ingestion time.
	Overview []domain.TopicFinding
}

// Analyzer is the external analysis service boundary.
// Both operations are single network calls; failures are isolated per call
// and never carry workspace state.
type Analyzer interface {
	// IngestFile uploads one file for indexing and returns its identity
	// and overview. A non-success response is an error.
	IngestFile(ctx context.Context, file domain.RawFile) (*IngestResult, error)

	// Ask runs a question against an ingested document, retrieving at
	// most limit supporting passages, and returns the answer text.
	Ask(ctx context.Context, documentID, query string, limit int) (string, error)
}
