package mcp

import (
	"context"

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
	asked      string
	err        error
}

func (m *mockWorkspaceService) Select(id string) {
	m.selected = id
}

func (m *mockWorkspaceService) IngestBatch(_ context.Context, files []domain.RawFile) (*driving.BatchResult, error) {
	return &driving.BatchResult{Ingested: make([]string, len(files))}, m.err
}

func (m *mockWorkspaceService) Remove(_ string) error {
	return m.err
}

func (m *mockWorkspaceService) Rename(_, _ string) error {
	return m.err
}

func (m *mockWorkspaceService) SetPageCount(_ string, _ int) error {
	return m.err
}

func (m *mockWorkspaceService) Ask(_ context.Context, text string) (*domain.ChatMessage, error) {
	m.asked = text
	if m.err != nil {
		return nil, m.err
	}
	return &domain.ChatMessage{Role: domain.RoleAssistant, Content: m.answer}, nil
}

func (m *mockWorkspaceService) Documents() []domain.Document {
	return m.documents
}

func (m *mockWorkspaceService) Document(id string) (*domain.Document, error) {
	for i := range m.documents {
		if m.documents[i].ID == id {
			return &m.documents[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockWorkspaceService) Selected() *domain.Document {
	return nil
}

func (m *mockWorkspaceService) Transcript(_ string) []domain.ChatMessage {
	return m.transcript
}

func (m *mockWorkspaceService) Progress() *domain.UploadProgress {
	return nil
}

func (m *mockWorkspaceService) Tree() *domain.TreeNode {
	return domain.BuildTree(nil, nil)
}

func (m *mockWorkspaceService) KPIs(_ string) (*domain.KPIRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.kpis, nil
}

func (m *mockWorkspaceService) Summary() domain.KPISummary {
	return m.summary
}
