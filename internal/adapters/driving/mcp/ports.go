package mcp

import (
	"github.com/lexdesk-labs/lexdesk-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Workspace owns documents, selection, transcripts and KPI projections.
	Workspace driving.WorkspaceService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Workspace == nil {
		return ErrMissingWorkspaceService
	}
	return nil
}
