package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexdesk-labs/lexdesk-cli/internal/core/domain"
)

// askDocID optionally moves the selection before asking.
var askDocID string

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about the selected document",
	Long: `Sends a question about the selected document to the analysis service
and prints the answer. Use --doc to select a document first.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askDocID, "doc", "d", "", "document ID to ask about (selects it)")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if workspaceService == nil {
		return errors.New("workspace service not configured")
	}

	if askDocID != "" {
		if _, err := workspaceService.Document(askDocID); err != nil {
			return fmt.Errorf("failed to select document: %w", err)
		}
		workspaceService.Select(askDocID)
	}

	reply, err := workspaceService.Ask(context.Background(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNoSelection) {
			return errors.New("no document selected; use --doc or 'lexdesk document select'")
		}
		return fmt.Errorf("ask failed: %w", err)
	}

	cmd.Println(reply.Content)
	return nil
}
