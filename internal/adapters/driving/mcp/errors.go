// Package mcp provides an MCP (Model Context Protocol) server adapter for
// LexDesk. It lets AI assistants browse the workspace and question documents
// through the analysis backend.
package mcp

import "errors"

// ErrMissingWorkspaceService is returned when the workspace service is not provided.
var ErrMissingWorkspaceService = errors.New("mcp: workspace service is required")
