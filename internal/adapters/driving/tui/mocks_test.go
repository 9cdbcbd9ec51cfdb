package tui

import (
	"context"

	"github.com/lexdesk-labs/lexdesk-cli/internal/core/domain"
	"github.com/lexdesk-labs/lexdesk-cli/internal/core/ports/driving"
)

// mockWorkspaceService is a mock implementation of driving.WorkspaceService.
type mockWorkspaceService struct {
	documents  []domain.Document
	transcript []domain.ChatMessage
	selected   string
	answer     string
	err        error
}

func (m *mockWorkspaceService) Select(id string) { m.selected = id }

func (m *mockWorkspaceService) IngestBatch(_ context.Context, files []domain.RawFile) (*driving.BatchResult, error) {
	return &driving.BatchResult{Ingested: make([]string, len(files))}, m.err
}

func (m *mockWorkspaceService) Remove(_ string) error              { return m.err }
func (m *mockWorkspaceService) Rename(_, _ string) error           { return m.err }
func (m *mockWorkspaceService) SetPageCount(_ string, _ int) error { return m.err }

func (m *mockWorkspaceService) Ask(_ context.Context, _ string) (*domain.ChatMessage, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.ChatMessage{Role: domain.RoleAssistant, Content: m.answer}, nil
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
	return &domain.KPIRecord{}, nil
}

func (m *mockWorkspaceService) Summary() domain.KPISummary { return domain.KPISummary{} }
