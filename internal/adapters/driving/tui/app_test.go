package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexdesk-labs/lexdesk-cli/internal/adapters/driving/tui/messages"
	"github.com/lexdesk-labs/lexdesk-cli/internal/core/domain"
)

func TestNewApp(t *testing.T) {
	t.Run("nil workspace service returns error", func(t *testing.T) {
		app, err := NewApp(&Ports{})
		require.Error(t, err)
		assert.Nil(t, app)
		assert.ErrorIs(t, err, ErrMissingWorkspaceService)
	})

	t.Run("valid ports creates app", func(t *testing.T) {
		app, err := NewApp(&Ports{Workspace: &mockWorkspaceService{}})
		require.NoError(t, err)
		require.NotNil(t, app)
		assert.Equal(t, messages.ViewExplorer, app.CurrentView())
	})
}

func TestApp_WindowSize(t *testing.T) {
	app, err := NewApp(&Ports{Workspace: &mockWorkspaceService{}})
	require.NoError(t, err)

	assert.False(t, app.Ready())

	model, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	app = model.(*App)

	assert.True(t, app.Ready())
}

func TestApp_DocumentSelectedOpensChat(t *testing.T) {
	mock := &mockWorkspaceService{
		documents: []domain.Document{{ID: "doc-1", Name: "contract.pdf"}},
	}
	app, err := NewApp(&Ports{Workspace: mock})
	require.NoError(t, err)
	app.SetDimensions(100, 40)

	model, _ := app.Update(messages.DocumentSelected{Document: mock.documents[0]})
	app = model.(*App)

	assert.Equal(t, messages.ViewChat, app.CurrentView())
	require.NotNil(t, app.SelectedDocument())
	assert.Equal(t, "doc-1", app.SelectedDocument().ID)
}

func TestApp_EscReturnsToExplorer(t *testing.T) {
	mock := &mockWorkspaceService{
		documents: []domain.Document{{ID: "doc-1", Name: "contract.pdf"}},
	}
	app, err := NewApp(&Ports{Workspace: mock})
	require.NoError(t, err)
	app.SetDimensions(100, 40)

	model, _ := app.Update(messages.DocumentSelected{Document: mock.documents[0]})
	app = model.(*App)
	require.Equal(t, messages.ViewChat, app.CurrentView())

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	app = model.(*App)

	assert.Equal(t, messages.ViewExplorer, app.CurrentView())
}

func TestApp_HelpToggle(t *testing.T) {
	app, err := NewApp(&Ports{Workspace: &mockWorkspaceService{}})
	require.NoError(t, err)
	app.SetDimensions(100, 40)

	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	app = model.(*App)
	assert.Equal(t, messages.ViewHelp, app.CurrentView())

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	app = model.(*App)
	assert.Equal(t, messages.ViewExplorer, app.CurrentView())
}

func TestApp_QuitKeys(t *testing.T) {
	app, err := NewApp(&Ports{Workspace: &mockWorkspaceService{}})
	require.NoError(t, err)
	app.SetDimensions(100, 40)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
