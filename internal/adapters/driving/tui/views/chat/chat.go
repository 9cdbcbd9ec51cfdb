// Package chat provides the per-document question view for the TUI.
package chat

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lexdesk-labs/lexdesk-cli/internal/adapters/driving/tui/components/input"
	"github.com/lexdesk-labs/lexdesk-cli/internal/adapters/driving/tui/messages"
	"github.com/lexdesk-labs/lexdesk-cli/internal/adapters/driving/tui/styles"
	"github.com/lexdesk-labs/lexdesk-cli/internal/core/domain"
	"github.com/lexdesk-labs/lexdesk-cli/internal/core/ports/driving"
)

// View is the chat view for the selected document.
type View struct {
	styles    *styles.Styles
	workspace driving.WorkspaceService

	question *input.QuestionInput
	document *domain.Document
	waiting  bool
	width    int
	height   int
	ready    bool
	err      error
}

// NewView creates a new chat view.
func NewView(s *styles.Styles, workspace driving.WorkspaceService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:    s,
		workspace: workspace,
		question:  input.NewQuestionInput(s),
	}
}

// SetDocument points the chat at a document.
func (v *View) SetDocument(doc *domain.Document) {
	v.document = doc
	v.err = nil
	v.waiting = false
	v.question.Reset()
}

// Init initialises the chat view.
func (v *View) Init() tea.Cmd {
	return v.question.Init()
}

// Update handles messages for the chat view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		v.question.SetWidth(msg.Width)
		return v, nil

	case tea.KeyMsg:
		if msg.String() == "enter" && !v.waiting {
			text := strings.TrimSpace(v.question.Value())
			if text == "" {
				return v, nil
			}
			v.waiting = true
			v.question.Reset()
			return v, v.ask(text)
		}
		var cmd tea.Cmd
		v.question, cmd = v.question.Update(msg)
		return v, cmd

	case messages.AnswerReceived:
		v.waiting = false
		v.err = msg.Err
		return v, nil
	}

	var cmd tea.Cmd
	v.question, cmd = v.question.Update(msg)
	return v, cmd
}

// ask returns a command that questions the selected document.
func (v *View) ask(text string) tea.Cmd {
	return func() tea.Msg {
		reply, err := v.workspace.Ask(context.Background(), text)
		return messages.AnswerReceived{Message: reply, Err: err}
	}
}

// View renders the chat.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	name := "No document selected"
	if v.document != nil {
		name = v.document.Name
	}
	b.WriteString(v.styles.Title.Render(name))
	b.WriteString("\n\n")

	if v.document != nil {
		for _, msg := range v.workspace.Transcript(v.document.ID) {
			switch msg.Role {
			case domain.RoleUser:
				b.WriteString(v.styles.Subtitle.Render("You: "))
			default:
				b.WriteString(v.styles.Success.Render("Assistant: "))
			}
			b.WriteString(v.styles.Normal.Render(msg.Content))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if v.waiting {
		b.WriteString(v.styles.Muted.Render("Thinking..."))
		b.WriteString("\n\n")
	}

	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n\n")
	}

	b.WriteString(v.question.View())
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[Enter] Ask  [Esc] Back"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.question.SetWidth(width)
}

// Waiting reports whether a question is in flight.
func (v *View) Waiting() bool {
	return v.waiting
}

// Err returns the last error that occurred.
func (v *View) Err() error {
	return v.err
}
