// Package kpi provides the key data point view for the TUI.
package kpi

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lexdesk-labs/lexdesk-cli/internal/adapters/driving/tui/messages"
	"github.com/lexdesk-labs/lexdesk-cli/internal/adapters/driving/tui/styles"
	"github.com/lexdesk-labs/lexdesk-cli/internal/core/domain"
	"github.com/lexdesk-labs/lexdesk-cli/internal/core/ports/driving"
)

// View shows the extracted key data points of the selected document.
type View struct {
	styles    *styles.Styles
	workspace driving.WorkspaceService

	document *domain.Document
	record   *domain.KPIRecord
	width    int
	height   int
	ready    bool
	err      error
}

// NewView creates a new KPI view.
func NewView(s *styles.Styles, workspace driving.WorkspaceService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:    s,
		workspace: workspace,
	}
}

// SetDocument points the view at a document and extracts its data points.
func (v *View) SetDocument(doc *domain.Document) tea.Cmd {
	v.document = doc
	v.record = nil
	v.err = nil
	if doc == nil {
		return nil
	}
	id := doc.ID
	return func() tea.Msg {
		record, err := v.workspace.KPIs(id)
		return messages.KPIsExtracted{DocumentID: id, Record: record, Err: err}
	}
}

// Init initialises the KPI view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the KPI view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case messages.KPIsExtracted:
		if v.document == nil || msg.DocumentID != v.document.ID {
			return v, nil
		}
		v.record = msg.Record
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// View renders the key data points.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Key Data Points"))
	b.WriteString("\n\n")

	switch {
	case v.document == nil:
		b.WriteString(v.styles.Muted.Render("Select a document first."))
		b.WriteString("\n")

	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n")

	case v.record == nil:
		b.WriteString(v.styles.Muted.Render("Extracting..."))
		b.WriteString("\n")

	case v.record.Empty():
		b.WriteString(v.styles.Muted.Render("No key data points found in " + v.document.Name + "."))
		b.WriteString("\n")

	default:
		v.writeBucket(&b, "Counterparts", v.record.Counterparts)
		v.writeBucket(&b, "Dates", v.record.Dates)
		if len(v.record.Money) > 0 {
			b.WriteString(v.styles.Subtitle.Render("Amounts"))
			b.WriteString("\n")
			for _, m := range v.record.Money {
				amount := strconv.FormatFloat(m.Amount, 'f', -1, 64)
				b.WriteString(v.styles.Normal.Render(fmt.Sprintf("  %s %s", amount, m.Currency)))
				b.WriteString("\n")
			}
			b.WriteString("\n")
		}
		v.writeBucket(&b, "Places", v.record.Places)
		v.writeBucket(&b, "Risk Flags", v.record.Errors)
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[Esc] Back"))
	return b.String()
}

// writeBucket renders one non-empty list section.
func (v *View) writeBucket(b *strings.Builder, label string, values []string) {
	if len(values) == 0 {
		return
	}
	b.WriteString(v.styles.Subtitle.Render(label))
	b.WriteString("\n")
	for _, value := range values {
		b.WriteString(v.styles.Normal.Render("  " + value))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Record returns the currently displayed record.
func (v *View) Record() *domain.KPIRecord {
	return v.record
}

// Err returns the last error that occurred.
func (v *View) Err() error {
	return v.err
}
