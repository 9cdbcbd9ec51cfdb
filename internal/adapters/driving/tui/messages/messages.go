// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/lexdesk-labs/lexdesk-cli/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewExplorer is the folder-tree document browser.
	ViewExplorer ViewType = iota
	// ViewChat is the per-document question view.
	ViewChat
	// ViewKPIs shows extracted key data points.
	ViewKPIs
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewExplorer:
		return "explorer"
	case ViewChat:
		return "chat"
	case ViewKPIs:
		return "kpis"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// DocumentSelected signals a document was selected in the explorer.
type DocumentSelected struct {
	Document domain.Document
}

// DocumentRemoved signals a document was removed from the workspace.
type DocumentRemoved struct {
	ID  string
	Err error
}

// BatchIngested carries the result of a batch ingestion.
type BatchIngested struct {
	Ingested []string
	Failed   []string
	Err      error
}

// AnswerReceived carries the assistant reply to a question.
type AnswerReceived struct {
	Message *domain.ChatMessage
	Err     error
}

// KPIsExtracted carries the key data points for a document.
type KPIsExtracted struct {
	DocumentID string
	Record     *domain.KPIRecord
	Err        error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
