package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lexdesk-labs/lexdesk-cli/internal/core/domain"
	"github.com/lexdesk-labs/lexdesk-cli/internal/core/ports/driven"
	"github.com/lexdesk-labs/lexdesk-cli/internal/core/ports/driving"
	"github.com/lexdesk-labs/lexdesk-cli/internal/logger"
)

// Ensure Workspace implements the interface.
var _ driving.WorkspaceService = (*Workspace)(nil)

// DefaultAskLimit is the number of supporting passages requested per question.
const DefaultAskLimit = 6

// Workspace owns the authoritative in-memory document collection, the
// selection cursor, per-document transcripts, and upload progress.
// Mutations are serialised by the internal lock; the two network calls
// (ingest-one-file, ask) happen outside it.
type Workspace struct {
	analyzer driven.Analyzer
	content  driven.ContentStore
	store    driven.WorkspaceStore
	askLimit int

	mu         sync.RWMutex
	documents  map[string]domain.Document
	order      []string
	selectedID string
	messages   map[string][]domain.ChatMessage
	progress   *domain.UploadProgress
}

// Option configures a Workspace.
type Option func(*Workspace)

// WithStore enables write-through persistence of workspace state.
func WithStore(store driven.WorkspaceStore) Option {
	return func(w *Workspace) { w.store = store }
}

// WithAskLimit overrides the passage limit sent with each question.
// The analysis service accepts 1-25.
func WithAskLimit(limit int) Option {
	return func(w *Workspace) {
		if limit < 1 {
			limit = 1
		}
		if limit > 25 {
			limit = 25
		}
		w.askLimit = limit
	}
}

// NewWorkspace creates a workspace backed by the given boundaries.
func NewWorkspace(analyzer driven.Analyzer, content driven.ContentStore, opts ...Option) *Workspace {
	w := &Workspace{
		analyzer:  analyzer,
		content:   content,
		askLimit:  DefaultAskLimit,
		documents: make(map[string]domain.Document),
		messages:  make(map[string][]domain.ChatMessage),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Restore loads persisted state into the workspace. Call once at startup,
// before any mutation.
func (w *Workspace) Restore(ctx context.Context) error {
	if w.store == nil {
		return nil
	}

	snapshot, err := w.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading workspace state: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if snapshot.Documents != nil {
		w.documents = snapshot.Documents
	}
	w.order = snapshot.Order
	w.selectedID = snapshot.SelectedID
	if snapshot.Messages != nil {
		w.messages = snapshot.Messages
	}

	logger.Info("Restored workspace: %d documents", len(w.documents))
	return nil
}

// Select moves the selection cursor unconditionally.
func (w *Workspace) Select(id string) {
	w.mu.Lock()
	w.selectedID = id
	w.mu.Unlock()
	w.persistSelection(id)
}

// IngestBatch processes files strictly sequentially: each file's ingestion
// call completes, success or failure, before the next begins. Progress is
// visible between files, Done only ever increases and reaches Total exactly
// once. Progress is cleared unconditionally when the batch ends.
func (w *Workspace) IngestBatch(ctx context.Context, files []domain.RawFile) (*driving.BatchResult, error) {
	if len(files) == 0 {
		return &driving.BatchResult{}, nil
	}

	w.mu.Lock()
	w.progress = &domain.UploadProgress{Total: len(files)}
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.progress = nil
		w.mu.Unlock()
	}()

	result := &driving.BatchResult{}
	for _, file := range files {
		id, err := w.ingestOne(ctx, file)
		if err != nil {
			logger.Warn("Ingestion failed for %s: %v", file.Name, err)
			result.Failed = append(result.Failed, file.Name)
			w.advanceProgress(file.Name)
			continue
		}
		result.Ingested = append(result.Ingested, id)
		w.advanceProgress("")
	}

	return result, nil
}

// ingestOne runs a single ingestion call and, on success, installs the
// resulting document at the front of the display order and selects it.
func (w *Workspace) ingestOne(ctx context.Context, file domain.RawFile) (string, error) {
	if !file.IsPDF() {
		return "", fmt.Errorf("%w: %s", domain.ErrNotPDF, file.Name)
	}

	res, err := w.analyzer.IngestFile(ctx, file)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrIngestionFailed, err)
	}

	ref, err := w.content.Put(file.Name, file.Bytes)
	if err != nil {
		return "", fmt.Errorf("storing content: %w", err)
	}

	doc := domain.Document{
		ID:         res.DocumentID,
		Name:       file.Name,
		Path:       file.HierarchicalPath,
		SizeBytes:  file.SizeBytes,
		ChunkCount: res.ChunkCount,
		ContentRef: ref,
		Overview:   res.Overview,
		CreatedAt:  time.Now(),
	}

	w.mu.Lock()
	w.documents[doc.ID] = doc
	w.order = append([]string{doc.ID}, w.order...)
	w.selectedID = doc.ID
	order := append([]string(nil), w.order...)
	w.mu.Unlock()

	w.persistDocument(&doc)
	w.persistOrder(order)
	w.persistSelection(doc.ID)

	logger.Info("Ingested %s as %s (%d chunks)", file.Name, doc.ID, doc.ChunkCount)
	return doc.ID, nil
}

// advanceProgress bumps Done and records a failed file name if any.
func (w *Workspace) advanceProgress(failedName string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.progress == nil {
		return
	}
	w.progress.Done++
	if failedName != "" {
		w.progress.Failed = append(w.progress.Failed, failedName)
	}
}

// Remove deletes a document. Its content reference is released before the
// entity disappears; release is idempotent so a racing double-remove is
// harmless. A matching selection is cleared.
func (w *Workspace) Remove(id string) error {
	w.mu.Lock()
	doc, ok := w.documents[id]
	if !ok {
		w.mu.Unlock()
		return domain.ErrNotFound
	}

	delete(w.documents, id)
	delete(w.messages, id)
	for i, oid := range w.order {
		if oid == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	if w.selectedID == id {
		w.selectedID = ""
	}
	order := append([]string(nil), w.order...)
	selected := w.selectedID
	w.mu.Unlock()

	if err := w.content.Release(doc.ContentRef); err != nil {
		logger.Warn("Releasing content for %s: %v", id, err)
	}

	if w.store != nil {
		ctx := context.Background()
		if err := w.store.DeleteDocument(ctx, id); err != nil {
			logger.Warn("Persisting removal of %s: %v", id, err)
		}
		w.persistOrder(order)
		w.persistSelection(selected)
	}

	return nil
}

// Rename replaces only the display name. Names carry no uniqueness rule.
func (w *Workspace) Rename(id, newName string) error {
	if newName == "" {
		return fmt.Errorf("%w: empty name", domain.ErrInvalidInput)
	}

	w.mu.Lock()
	doc, ok := w.documents[id]
	if !ok {
		w.mu.Unlock()
		return domain.ErrNotFound
	}
	doc.Name = newName
	w.documents[id] = doc
	w.mu.Unlock()

	w.persistDocument(&doc)
	return nil
}

// SetPageCount records the viewer-reported page count.
func (w *Workspace) SetPageCount(id string, pages int) error {
	if pages < 0 {
		return fmt.Errorf("%w: negative page count", domain.ErrInvalidInput)
	}

	w.mu.Lock()
	doc, ok := w.documents[id]
	if !ok {
		w.mu.Unlock()
		return domain.ErrNotFound
	}
	doc.PageCount = pages
	w.documents[id] = doc
	w.mu.Unlock()

	w.persistDocument(&doc)
	return nil
}

// Ask appends the user's turn to the selected document's transcript before
// the network call resolves, so the transcript reflects the question
// immediately. A failure is surfaced as a visible transcript entry rather
// than an error; workspace state is never corrupted by it.
func (w *Workspace) Ask(ctx context.Context, text string) (*domain.ChatMessage, error) {
	w.mu.Lock()
	id := w.selectedID
	if id == "" {
		w.mu.Unlock()
		return nil, domain.ErrNoSelection
	}

	userMsg := domain.ChatMessage{Role: domain.RoleUser, Content: text, CreatedAt: time.Now()}
	w.messages[id] = append(w.messages[id], userMsg)
	w.mu.Unlock()
	w.persistMessage(id, userMsg)

	answer, err := w.analyzer.Ask(ctx, id, text, w.askLimit)
	if err != nil {
		answer = "Error: " + err.Error()
	}

	reply := domain.ChatMessage{Role: domain.RoleAssistant, Content: answer, CreatedAt: time.Now()}
	w.mu.Lock()
	w.messages[id] = append(w.messages[id], reply)
	w.mu.Unlock()
	w.persistMessage(id, reply)

	return &reply, nil
}

// Documents returns the documents in display order, most recent first.
func (w *Workspace) Documents() []domain.Document {
	w.mu.RLock()
	defer w.mu.RUnlock()

	docs := make([]domain.Document, 0, len(w.order))
	for _, id := range w.order {
		if doc, ok := w.documents[id]; ok {
			docs = append(docs, doc)
		}
	}
	return docs
}

// Document returns one document by ID.
func (w *Workspace) Document(id string) (*domain.Document, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	doc, ok := w.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// Selected returns the selected document, nil when nothing is selected or
// the cursor names an unknown ID.
func (w *Workspace) Selected() *domain.Document {
	w.mu.RLock()
	defer w.mu.RUnlock()

	doc, ok := w.documents[w.selectedID]
	if !ok {
		return nil
	}
	return &doc
}

// Transcript returns a copy of the chat history for a document.
func (w *Workspace) Transcript(id string) []domain.ChatMessage {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]domain.ChatMessage(nil), w.messages[id]...)
}

// Progress returns a copy of the in-flight batch progress, nil when idle.
func (w *Workspace) Progress() *domain.UploadProgress {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.progress == nil {
		return nil
	}
	p := *w.progress
	p.Failed = append([]string(nil), w.progress.Failed...)
	return &p
}

// Tree projects the document collection onto a folder tree.
func (w *Workspace) Tree() *domain.TreeNode {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return domain.BuildTree(w.documents, w.order)
}

// KPIs projects one document's overview onto a KPI record.
func (w *Workspace) KPIs(id string) (*domain.KPIRecord, error) {
	w.mu.RLock()
	doc, ok := w.documents[id]
	w.mu.RUnlock()

	if !ok {
		return nil, domain.ErrNotFound
	}
	rec := domain.ExtractKPIs(doc.Overview)
	return &rec, nil
}

// Summary aggregates KPIs across all documents.
func (w *Workspace) Summary() domain.KPISummary {
	return domain.Summarize(w.Documents())
}

// Persistence helpers. The in-memory state is authoritative: a persistence
// failure is logged and the operation still succeeds.

func (w *Workspace) persistDocument(doc *domain.Document) {
	if w.store == nil {
		return
	}
	if err := w.store.SaveDocument(context.Background(), doc); err != nil {
		logger.Warn("Persisting document %s: %v", doc.ID, err)
	}
}

func (w *Workspace) persistOrder(order []string) {
	if w.store == nil {
		return
	}
	if err := w.store.SaveOrder(context.Background(), order); err != nil {
		logger.Warn("Persisting order: %v", err)
	}
}

func (w *Workspace) persistSelection(id string) {
	if w.store == nil {
		return
	}
	if err := w.store.SaveSelection(context.Background(), id); err != nil {
		logger.Warn("Persisting selection: %v", err)
	}
}

func (w *Workspace) persistMessage(id string, msg domain.ChatMessage) {
	if w.store == nil {
		return
	}
	if err := w.store.AppendMessage(context.Background(), id, msg); err != nil {
		logger.Warn("Persisting message for %s: %v", id, err)
	}
}
