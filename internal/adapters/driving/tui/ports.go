// Package tui provides an interactive terminal user interface for lexdesk.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/lexdesk-labs/lexdesk-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Workspace owns documents, selection, transcripts and KPI projections.
	Workspace driving.WorkspaceService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(workspace driving.WorkspaceService) *Ports {
	return &Ports{Workspace: workspace}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Workspace == nil {
		return ErrMissingWorkspaceService
	}
	return nil
}
