// Package explorer provides the folder-tree document browser view for the TUI.
package explorer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lexdesk-labs/lexdesk-cli/internal/adapters/driving/tui/messages"
	"github.com/lexdesk-labs/lexdesk-cli/internal/adapters/driving/tui/styles"
	"github.com/lexdesk-labs/lexdesk-cli/internal/core/domain"
	"github.com/lexdesk-labs/lexdesk-cli/internal/core/ports/driving"
)

// Row is one visible line of the flattened tree.
type Row struct {
	// Depth is the nesting level, zero for top-level entries.
	Depth int

	// Name is the display label.
	Name string

	// Path identifies the node within the tree.
	Path string

	// DocumentID is set for file rows.
	DocumentID string

	// IsDir reports whether this row is a folder.
	IsDir bool
}

// View is the document explorer view.
type View struct {
	styles    *styles.Styles
	workspace driving.WorkspaceService

	rows      []Row
	collapsed map[string]bool
	selected  int
	width     int
	height    int
	ready     bool
	err       error
}

// NewView creates a new explorer view.
func NewView(s *styles.Styles, workspace driving.WorkspaceService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:    s,
		workspace: workspace,
		collapsed: make(map[string]bool),
	}
}

// Init initialises the explorer view.
func (v *View) Init() tea.Cmd {
	v.Reload()
	return nil
}

// Reload re-projects the workspace tree into visible rows.
func (v *View) Reload() {
	tree := v.workspace.Tree()
	v.rows = flatten(tree, v.collapsed)
	if v.selected >= len(v.rows) {
		v.selected = len(v.rows) - 1
	}
	if v.selected < 0 {
		v.selected = 0
	}
}

// Update handles messages for the explorer view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.DocumentRemoved:
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.err = nil
			v.Reload()
		}
		return v, nil

	case messages.BatchIngested:
		if msg.Err != nil {
			v.err = msg.Err
		}
		v.Reload()
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}

	case "down", "j":
		if v.selected < len(v.rows)-1 {
			v.selected++
		}

	case "enter":
		if len(v.rows) == 0 {
			return v, nil
		}
		row := v.rows[v.selected]
		if row.IsDir {
			v.collapsed[row.Path] = !v.collapsed[row.Path]
			v.Reload()
			return v, nil
		}
		doc, err := v.workspace.Document(row.DocumentID)
		if err != nil {
			v.err = err
			return v, nil
		}
		v.workspace.Select(doc.ID)
		selected := *doc
		return v, func() tea.Msg {
			return messages.DocumentSelected{Document: selected}
		}

	case "d":
		if len(v.rows) == 0 || v.rows[v.selected].IsDir {
			return v, nil
		}
		id := v.rows[v.selected].DocumentID
		return v, func() tea.Msg {
			return messages.DocumentRemoved{ID: id, Err: v.workspace.Remove(id)}
		}
	}

	return v, nil
}

// View renders the explorer.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Documents"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n\n")
	}

	if len(v.rows) == 0 {
		b.WriteString(v.styles.Muted.Render("No documents yet. Drop PDFs with 'lexdesk ingest'."))
		b.WriteString("\n")
	}

	if progress := v.workspace.Progress(); progress != nil {
		b.WriteString(v.styles.Warning.Render(
			fmt.Sprintf("Ingesting %d/%d...", progress.Done, progress.Total)))
		b.WriteString("\n\n")
	}

	for i, row := range v.rows {
		indent := strings.Repeat("  ", row.Depth)
		marker := "  "
		label := row.Name
		if row.IsDir {
			if v.collapsed[row.Path] {
				marker = "▸ "
			} else {
				marker = "▾ "
			}
		}

		line := indent + marker + label
		if i == v.selected {
			line = v.styles.Selected.Render(line)
		} else if row.IsDir {
			line = v.styles.Subtitle.Render(line)
		} else {
			line = v.styles.Normal.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Open/Toggle  [d] Remove  [?] Help  [q] Quit"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the currently selected row index.
func (v *View) Selected() int {
	return v.selected
}

// Rows returns the visible rows.
func (v *View) Rows() []Row {
	return v.rows
}

// Err returns the last error that occurred.
func (v *View) Err() error {
	return v.err
}

// flatten projects the tree onto visible rows, honouring collapsed folders.
func flatten(root *domain.TreeNode, collapsed map[string]bool) []Row {
	if root == nil {
		return nil
	}

	var rows []Row
	var walk func(node *domain.TreeNode, depth int)
	walk = func(node *domain.TreeNode, depth int) {
		for _, child := range node.Children {
			rows = append(rows, Row{
				Depth:      depth,
				Name:       child.Name,
				Path:       child.Path,
				DocumentID: child.DocumentID,
				IsDir:      child.IsDir(),
			})
			if child.IsDir() && !collapsed[child.Path] {
				walk(child, depth+1)
			}
		}
	}
	walk(root, 0)
	return rows
}
