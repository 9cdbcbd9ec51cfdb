package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for LexDesk resources.
	uriScheme = "lexdesk://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing workspace documents.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "documents",
		Name:        "documents",
		Description: "List of all documents in the workspace",
		MIMEType:    "application/json",
	}, s.handleDocumentsResource)

	// Template for a document's topic overview.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{documentId}/overview",
		Name:        "document-overview",
		Description: "Topic findings extracted for a specific document",
		MIMEType:    "application/json",
	}, s.handleOverviewResource)

	// Template for a document's chat transcript.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{documentId}/transcript",
		Name:        "document-transcript",
		Description: "Chat history for a specific document",
		MIMEType:    "application/json",
	}, s.handleTranscriptResource)
}

// handleDocumentsResource returns the workspace document list.
func (s *Server) handleDocumentsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	docs := s.ports.Workspace.Documents()

	infos := make([]DocumentOutput, len(docs))
	for i := range docs {
		infos[i] = DocumentOutput{
			ID:        docs[i].ID,
			Name:      docs[i].Name,
			Path:      docs[i].EffectivePath(),
			SizeBytes: docs[i].SizeBytes,
			Pages:     docs[i].PageCount,
			Chunks:    docs[i].ChunkCount,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling documents: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleOverviewResource returns the topic findings for one document.
func (s *Server) handleOverviewResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	docID := extractDocumentID(req.Params.URI, "/overview")
	if docID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	doc, err := s.ports.Workspace.Document(docID)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	data, err := json.MarshalIndent(doc.Overview, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling overview: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleTranscriptResource returns the chat history for one document.
func (s *Server) handleTranscriptResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	docID := extractDocumentID(req.Params.URI, "/transcript")
	if docID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	if _, err := s.ports.Workspace.Document(docID); err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	type messageInfo struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}

	transcript := s.ports.Workspace.Transcript(docID)
	infos := make([]messageInfo, len(transcript))
	for i, msg := range transcript {
		infos[i] = messageInfo{Role: msg.Role, Content: msg.Content}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling transcript: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractDocumentID extracts the document ID from a URI like
// lexdesk://documents/{documentId}{suffix}.
func extractDocumentID(uri, suffix string) string {
	const prefix = uriScheme + "documents/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	return strings.TrimSuffix(uri, suffix)
}
