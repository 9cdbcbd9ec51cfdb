package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lexdesk-labs/lexdesk-cli/internal/connectors/dropfolder"
)

// watchSettle is the quiet period before a dropped file is picked up.
var watchSettle time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Watch a drop folder and ingest new PDFs",
	Long: `Watches a directory tree and ingests PDF files as they appear.
Subdirectories are watched recursively; their structure carries over to
the workspace tree. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchSettle, "settle", dropfolder.DefaultSettle,
		"quiet period before a new file is ingested")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if workspaceService == nil {
		return errors.New("workspace service not configured")
	}

	watcher, err := dropfolder.New(workspaceService, args[0], dropfolder.WithSettle(watchSettle))
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}

	cmd.Printf("Watching %s. Press Ctrl+C to stop.\n", args[0])
	return watcher.Run(cmd.Context())
}
