// Package cli implements the lexdesk command line interface using cobra.
// Commands are thin: they parse flags and delegate to the core services
// injected via Configure.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/lexdesk-labs/lexdesk-cli/internal/core/ports/driven"
	"github.com/lexdesk-labs/lexdesk-cli/internal/core/ports/driving"
	"github.com/lexdesk-labs/lexdesk-cli/internal/logger"
)

// version is the CLI version, overridable at build time via ldflags.
var version = "0.1.0"

// Services injected by Configure. Commands check for nil before use.
var (
	workspaceService driving.WorkspaceService
	configStore      driven.ConfigStore
)

// verbose enables debug logging.
var verbose bool

var rootCmd = &cobra.Command{
	Use:   "lexdesk",
	Short: "Local workspace for analysing legal PDF documents",
	Long: `LexDesk keeps a workspace of PDF documents, sends them to a local
analysis service for indexing, and lets you question each document and
extract key data points (counterparts, dates, amounts, places, risk flags)
from the analysis overview.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Deps carries the services the CLI commands depend on.
type Deps struct {
	Workspace driving.WorkspaceService
	Config    driven.ConfigStore
}

// Configure injects the services used by the commands.
// Must be called before Execute.
func Configure(deps Deps) {
	workspaceService = deps.Workspace
	configStore = deps.Config
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
