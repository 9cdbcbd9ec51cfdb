package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lexdesk-labs/lexdesk-cli/internal/core/domain"
)

var documentCmd = &cobra.Command{
	Use:     "document",
	Aliases: []string{"doc"},
	Short:   "Manage workspace documents",
	Long:    `List, inspect, rename, select, or remove workspace documents.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents in display order",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentTreeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Show the workspace folder tree",
	Args:  cobra.NoArgs,
	RunE:  runDocumentTree,
}

var documentGetCmd = &cobra.Command{
	Use:   "get [doc-id]",
	Short: "Show document info",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentGet,
}

var documentSelectCmd = &cobra.Command{
	Use:   "select [doc-id]",
	Short: "Move the selection cursor to a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentSelect,
}

var documentRenameCmd = &cobra.Command{
	Use:   "rename [doc-id] [new-name]",
	Short: "Rename a document",
	Args:  cobra.ExactArgs(2),
	RunE:  runDocumentRename,
}

var documentRemoveCmd = &cobra.Command{
	Use:   "remove [doc-id]",
	Short: "Remove a document from the workspace",
	Long:  `Removes a document, releases its stored content, and clears the selection if it pointed at it.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentRemove,
}

func init() {
	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentTreeCmd)
	documentCmd.AddCommand(documentGetCmd)
	documentCmd.AddCommand(documentSelectCmd)
	documentCmd.AddCommand(documentRenameCmd)
	documentCmd.AddCommand(documentRemoveCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if workspaceService == nil {
		return errors.New("workspace service not configured")
	}

	docs := workspaceService.Documents()
	if len(docs) == 0 {
		cmd.Println("No documents in the workspace.")
		return nil
	}

	selected := workspaceService.Selected()
	for i := range docs {
		marker := " "
		if selected != nil && selected.ID == docs[i].ID {
			marker = "*"
		}
		cmd.Printf("%s %s\n", marker, docs[i].ID)
		cmd.Printf("    Name: %s\n", docs[i].Name)
		if docs[i].Path != "" {
			cmd.Printf("    Path: %s\n", docs[i].Path)
		}
		cmd.Println()
	}

	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runDocumentTree(cmd *cobra.Command, _ []string) error {
	if workspaceService == nil {
		return errors.New("workspace service not configured")
	}

	tree := workspaceService.Tree()
	if len(tree.Children) == 0 {
		cmd.Println("No documents in the workspace.")
		return nil
	}

	var b strings.Builder
	renderTree(&b, tree, "")
	cmd.Print(b.String())
	return nil
}

// renderTree writes an ASCII tree of node's children.
func renderTree(b *strings.Builder, node *domain.TreeNode, prefix string) {
	for i, child := range node.Children {
		connector := "├── "
		childPrefix := prefix + "│   "
		if i == len(node.Children)-1 {
			connector = "└── "
			childPrefix = prefix + "    "
		}

		label := child.Name
		if child.IsDir() {
			label += "/"
		}
		b.WriteString(prefix + connector + label + "\n")

		if child.IsDir() {
			renderTree(b, child, childPrefix)
		}
	}
}

func runDocumentGet(cmd *cobra.Command, args []string) error {
	if workspaceService == nil {
		return errors.New("workspace service not configured")
	}

	doc, err := workspaceService.Document(args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	cmd.Printf("Document: %s\n\n", doc.ID)
	cmd.Printf("  Name:     %s\n", doc.Name)
	cmd.Printf("  Path:     %s\n", doc.EffectivePath())
	cmd.Printf("  Size:     %d bytes\n", doc.SizeBytes)
	if doc.PageCount > 0 {
		cmd.Printf("  Pages:    %d\n", doc.PageCount)
	}
	cmd.Printf("  Chunks:   %d\n", doc.ChunkCount)
	cmd.Printf("  Created:  %s\n", doc.CreatedAt.Format("2006-01-02 15:04:05"))

	if len(doc.Overview) > 0 {
		cmd.Println("\n  Overview:")
		for _, finding := range doc.Overview {
			cmd.Printf("    %s: %s\n", finding.Topic, finding.Answer)
		}
	}

	return nil
}

func runDocumentSelect(cmd *cobra.Command, args []string) error {
	if workspaceService == nil {
		return errors.New("workspace service not configured")
	}

	if _, err := workspaceService.Document(args[0]); err != nil {
		return fmt.Errorf("failed to select document: %w", err)
	}

	workspaceService.Select(args[0])
	cmd.Printf("Selected %s.\n", args[0])
	return nil
}

func runDocumentRename(cmd *cobra.Command, args []string) error {
	if workspaceService == nil {
		return errors.New("workspace service not configured")
	}

	if err := workspaceService.Rename(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to rename document: %w", err)
	}

	cmd.Printf("Renamed %s to %s.\n", args[0], args[1])
	return nil
}

func runDocumentRemove(cmd *cobra.Command, args []string) error {
	if workspaceService == nil {
		return errors.New("workspace service not configured")
	}

	if err := workspaceService.Remove(args[0]); err != nil {
		return fmt.Errorf("failed to remove document: %w", err)
	}

	cmd.Printf("Document %s removed.\n", args[0])
	return nil
}
