package domain

import (
	"strings"
	"time"
)

// Document represents one ingested PDF tracked by the workspace.
// It is created only as the successful outcome of an ingestion call.
type Document struct {
	// ID is the unique identifier assigned by the analysis service.
	ID string

	// Name is the display name. Mutable via rename.
	Name string

	// Path is the optional slash-delimited hierarchical location.
	// Empty when the file was picked without folder context.
	Path string

	// SizeBytes is the raw file size, zero when unknown.
	SizeBytes int64

	// PageCount is reported by the viewer after first render, zero until then.
	PageCount int

	// ChunkCount is the number of text chunks the analysis service indexed.
	ChunkCount int

	// ContentRef is the opaque handle over the raw bytes.
	// Owned exclusively by this document and released on removal.
	ContentRef string

	// Overview is the ordered list of topic findings returned at ingestion.
	Overview []TopicFinding

	// CreatedAt is when the document entered the workspace.
	CreatedAt time.Time
}

// EffectivePath returns the location used for folder-tree grouping.
// Falls back to the display name when no path was captured at ingestion.
func (d Document) EffectivePath() string {
	if d.Path != "" {
		return d.Path
	}
	return d.Name
}

// RawFile is the normalised file input shape handed to the workspace.
// Platform-specific file APIs are flattened into this before ingestion.
type RawFile struct {
	// Name is the plain file name including extension.
	Name string

	// SizeBytes is the byte length of Bytes.
	SizeBytes int64

	// Bytes is the raw file content.
	Bytes []byte

	// HierarchicalPath is the slash-delimited folder-relative path,
	// empty when the file was selected individually.
	HierarchicalPath string
}

// IsPDF reports whether the candidate carries a .pdf name.
// Only PDF files are eligible for ingestion.
func (f RawFile) IsPDF() bool {
	return strings.HasSuffix(strings.ToLower(f.Name), ".pdf")
}

// Chat message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn in a document's transcript.
type ChatMessage struct {
	// Role is RoleUser or RoleAssistant.
	Role string

	// Content is the message text.
	Content string

	// CreatedAt is when the message was appended.
	CreatedAt time.Time
}

// UploadProgress tracks a batch ingestion in flight.
// It exists only for the duration of the batch and Done only ever increases.
type UploadProgress struct {
	// Total is the number of files in the batch.
	Total int

	// Done is the number of files processed so far, success or failure.
	Done int

	// Failed lists the names of files whose ingestion failed.
	Failed []string
}
