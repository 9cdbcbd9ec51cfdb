package cli

import (
	"context"
	"time"

	"github.com/lexdesk-labs/lexdesk-cli/internal/core/domain"
	"github.com/lexdesk-labs/lexdesk-cli/internal/core/ports/driving"
)

// mockWorkspaceService is a mock implementation of driving.WorkspaceService.
type mockWorkspaceService struct {
	documents  []domain.Document
	transcript []domain.ChatMessage
	kpis       *domain.KPIRecord
	summary    domain.KPISummary
	answer     string
	selected   string
	ingested   []domain.RawFile
	removed    []string
	renamed    map[string]string
	err        error
}

func (m *mockWorkspaceService) Select(id string) { m.selected = id }

func (m *mockWorkspaceService) IngestBatch(_ context.Context, files []domain.RawFile) (*driving.BatchResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.ingested = append(m.ingested, files...)
	ids := make([]string, len(files))
	for i := range files {
		ids[i] = files[i].Name
	}
	return &driving.BatchResult{Ingested: ids}, nil
}

func (m *mockWorkspaceService) Remove(id string) error {
	if m.err != nil {
		return m.err
	}
	m.removed = append(m.removed, id)
	return nil
}

func (m *mockWorkspaceService) Rename(id, newName string) error {
	if m.err != nil {
		return m.err
	}
	if m.renamed == nil {
		m.renamed = make(map[string]string)
	}
	m.renamed[id] = newName
	return nil
}

func (m *mockWorkspaceService) SetPageCount(_ string, _ int) error { return m.err }

func (m *mockWorkspaceService) Ask(_ context.Context, _ string) (*domain.ChatMessage, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.ChatMessage{Role: domain.RoleAssistant, Content: m.answer, CreatedAt: time.Now()}, nil
}

func (m *mockWorkspaceService) Documents() []domain.Document { return m.documents }

func (m *mockWorkspaceService) Document(id string) (*domain.Document, error) {
	for i := range m.documents {
		if m.documents[i].ID == id {
			return &m.documents[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockWorkspaceService) Selected() *domain.Document {
	doc, err := m.Document(m.selected)
	if err != nil {
		return nil
	}
	return doc
}

func (m *mockWorkspaceService) Transcript(_ string) []domain.ChatMessage { return m.transcript }
func (m *mockWorkspaceService) Progress() *domain.UploadProgress         { return nil }

func (m *mockWorkspaceService) Tree() *domain.TreeNode {
	docs := make(map[string]domain.Document, len(m.documents))
	order := make([]string, 0, len(m.documents))
	for _, doc := range m.documents {
		docs[doc.ID] = doc
		order = append(order, doc.ID)
	}
	return domain.BuildTree(docs, order)
}

func (m *mockWorkspaceService) KPIs(_ string) (*domain.KPIRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.kpis == nil {
		return &domain.KPIRecord{}, nil
	}
	return m.kpis, nil
}

func (m *mockWorkspaceService) Summary() domain.KPISummary { return m.summary }

// setupTestServices swaps in a mock workspace and returns it with a cleanup.
func setupTestServices(mock *mockWorkspaceService) func() {
	prev := workspaceService
	workspaceService = mock
	return func() { workspaceService = prev }
}
