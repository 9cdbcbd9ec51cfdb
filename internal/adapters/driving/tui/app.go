package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lexdesk-labs/lexdesk-cli/internal/adapters/driving/tui/messages"
	"github.com/lexdesk-labs/lexdesk-cli/internal/adapters/driving/tui/styles"
	"github.com/lexdesk-labs/lexdesk-cli/internal/adapters/driving/tui/views/chat"
	"github.com/lexdesk-labs/lexdesk-cli/internal/adapters/driving/tui/views/explorer"
	"github.com/lexdesk-labs/lexdesk-cli/internal/adapters/driving/tui/views/kpi"
	"github.com/lexdesk-labs/lexdesk-cli/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// explorerView is the folder-tree document browser.
	explorerView *explorer.View

	// chatView is the per-document question view.
	chatView *chat.View

	// kpiView shows extracted key data points.
	kpiView *kpi.View

	// selectedDocument tracks the document currently open in chat/KPI views.
	selectedDocument *domain.Document

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		explorerView: explorer.NewView(s, ports.Workspace),
		chatView:     chat.NewView(s, ports.Workspace),
		kpiView:      kpi.NewView(s, ports.Workspace),
		currentView:  messages.ViewExplorer,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("lexdesk - Document Workspace"),
		a.explorerView.Init(),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.explorerView.SetDimensions(msg.Width, msg.Height)
		a.chatView.SetDimensions(msg.Width, msg.Height)
		a.kpiView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.currentView {
		case messages.ViewExplorer:
			switch msg.String() {
			case "q":
				return a, tea.Quit
			case "?":
				a.currentView = messages.ViewHelp
				return a, nil
			case "x":
				if doc := a.ports.Workspace.Selected(); doc != nil {
					a.selectedDocument = doc
					a.currentView = messages.ViewKPIs
					return a, a.kpiView.SetDocument(doc)
				}
				return a, nil
			}
			a.explorerView, cmd = a.explorerView.Update(msg)
			return a, cmd

		case messages.ViewChat:
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewExplorer
				a.explorerView.Reload()
				return a, nil
			}
			a.chatView, cmd = a.chatView.Update(msg)
			return a, cmd

		case messages.ViewKPIs:
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewExplorer
				return a, nil
			}
			a.kpiView, cmd = a.kpiView.Update(msg)
			return a, cmd

		case messages.ViewHelp:
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewExplorer
				return a, nil
			}
			return a, nil
		}
		return a, nil

	case messages.DocumentSelected:
		a.selectedDocument = &msg.Document
		a.chatView.SetDocument(&msg.Document)
		a.currentView = messages.ViewChat
		return a, a.chatView.Init()

	case messages.ViewChanged:
		a.currentView = msg.View
		if msg.View == messages.ViewExplorer {
			a.explorerView.Reload()
		}
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to active view
	switch a.currentView {
	case messages.ViewExplorer:
		a.explorerView, cmd = a.explorerView.Update(msg)
	case messages.ViewChat:
		a.chatView, cmd = a.chatView.Update(msg)
	case messages.ViewKPIs:
		a.kpiView, cmd = a.kpiView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}

	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewExplorer:
		return a.explorerView.View()
	case messages.ViewChat:
		return a.chatView.View()
	case messages.ViewKPIs:
		return a.kpiView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.explorerView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Explorer:
  j/k, ↑/↓    Navigate tree
  enter       Open document / toggle folder
  d           Remove document
  x           Key data points for selected document
  q           Quit

Chat:
  (type)      Enter question
  enter       Ask
  esc         Back to explorer

Global:
  ctrl+c      Quit

[esc] back to explorer`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// SelectedDocument returns the document open in the chat/KPI views.
func (a *App) SelectedDocument() *domain.Document {
	return a.selectedDocument
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.explorerView.SetDimensions(width, height)
	a.chatView.SetDimensions(width, height)
	a.kpiView.SetDimensions(width, height)
}
