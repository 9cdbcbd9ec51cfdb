package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ListDocumentsInput is the input schema for the list_documents tool.
type ListDocumentsInput struct{}

// ListDocumentsOutput is the output schema for the list_documents tool.
type ListDocumentsOutput struct {
	Documents []DocumentOutput `json:"documents"`
	Count     int              `json:"count"`
}

// DocumentOutput represents a single workspace document.
type DocumentOutput struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Path      string `json:"path"`
	SizeBytes int64  `json:"size_bytes"`
	Pages     int    `json:"pages,omitempty"`
	Chunks    int    `json:"chunks,omitempty"`
}

// AskInput is the input schema for the ask_document tool.
type AskInput struct {
	DocumentID string `json:"document_id" jsonschema:"the ID of the document to question"`
	Query      string `json:"query" jsonschema:"the question to ask about the document"`
}

// AskOutput is the output schema for the ask_document tool.
type AskOutput struct {
	Answer string `json:"answer"`
}

// KPIInput is the input schema for the extract_kpis tool.
type KPIInput struct {
	DocumentID string `json:"document_id" jsonschema:"the ID of the document to extract KPIs from"`
}

// KPIOutput is the output schema for the extract_kpis tool.
type KPIOutput struct {
	Counterparts []string      `json:"counterparts"`
	Dates        []string      `json:"dates"`
	Places       []string      `json:"places"`
	Errors       []string      `json:"errors"`
	Money        []MoneyOutput `json:"money"`
}

// MoneyOutput represents one extracted monetary amount.
type MoneyOutput struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Context  string  `json:"context,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List all documents in the workspace",
	}, s.handleListDocuments)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask_document",
		Description: "Ask a question about a workspace document",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "extract_kpis",
		Description: "Extract key data points (counterparts, dates, amounts, places, risk flags) from a document's overview",
	}, s.handleKPIs)
}

// handleListDocuments handles the list_documents tool invocation.
func (s *Server) handleListDocuments(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ ListDocumentsInput,
) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	docs := s.ports.Workspace.Documents()

	output := ListDocumentsOutput{
		Documents: make([]DocumentOutput, len(docs)),
		Count:     len(docs),
	}
	for i := range docs {
		output.Documents[i] = DocumentOutput{
			ID:        docs[i].ID,
			Name:      docs[i].Name,
			Path:      docs[i].EffectivePath(),
			SizeBytes: docs[i].SizeBytes,
			Pages:     docs[i].PageCount,
			Chunks:    docs[i].ChunkCount,
		}
	}

	return nil, output, nil
}

// handleAsk handles the ask_document tool invocation. Questioning a document
// moves the selection cursor to it, matching the workspace chat flow.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	if _, err := s.ports.Workspace.Document(input.DocumentID); err != nil {
		return nil, AskOutput{}, err
	}

	s.ports.Workspace.Select(input.DocumentID)
	reply, err := s.ports.Workspace.Ask(ctx, input.Query)
	if err != nil {
		return nil, AskOutput{}, err
	}

	return nil, AskOutput{Answer: reply.Content}, nil
}

// handleKPIs handles the extract_kpis tool invocation.
func (s *Server) handleKPIs(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input KPIInput,
) (*mcp.CallToolResult, KPIOutput, error) {
	record, err := s.ports.Workspace.KPIs(input.DocumentID)
	if err != nil {
		return nil, KPIOutput{}, err
	}

	output := KPIOutput{
		Counterparts: record.Counterparts,
		Dates:        record.Dates,
		Places:       record.Places,
		Errors:       record.Errors,
		Money:        make([]MoneyOutput, len(record.Money)),
	}
	for i, m := range record.Money {
		output.Money[i] = MoneyOutput{Amount: m.Amount, Currency: m.Currency, Context: m.Context}
	}

	return nil, output, nil
}
