// Command lexdesk is the entry point for the LexDesk CLI.
// It wires the configuration, storage, and analysis adapters into the
// workspace service and hands control to the command layer.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/lexdesk-labs/lexdesk-cli/internal/adapters/driven/analysis"
	configfile "github.com/lexdesk-labs/lexdesk-cli/internal/adapters/driven/config/file"
	contentfile "github.com/lexdesk-labs/lexdesk-cli/internal/adapters/driven/content/file"
	"github.com/lexdesk-labs/lexdesk-cli/internal/adapters/driven/storage/sqlite"
	"github.com/lexdesk-labs/lexdesk-cli/internal/adapters/driving/cli"
	"github.com/lexdesk-labs/lexdesk-cli/internal/core/services"
	"github.com/lexdesk-labs/lexdesk-cli/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "lexdesk: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	contentStore, err := contentfile.NewContentStore(configStore.GetString("storage.blob_dir"))
	if err != nil {
		return fmt.Errorf("opening content store: %w", err)
	}

	workspaceStore, err := sqlite.NewStore(configStore.GetString("storage.data_dir"))
	if err != nil {
		return fmt.Errorf("opening workspace store: %w", err)
	}
	defer workspaceStore.Close()

	analyzerCfg := analysis.Config{
		BaseURL: configStore.GetString("analysis.base_url"),
	}
	if secs := configStore.GetInt("analysis.timeout_seconds"); secs > 0 {
		analyzerCfg.Timeout = time.Duration(secs) * time.Second
	}
	if perSec := configStore.GetInt("analysis.ingest_rate"); perSec > 0 {
		analyzerCfg.IngestRate = float64(perSec)
	}
	analyzer := analysis.NewClient(analyzerCfg)

	opts := []services.Option{services.WithStore(workspaceStore)}
	if limit := configStore.GetInt("analysis.ask_limit"); limit > 0 {
		opts = append(opts, services.WithAskLimit(limit))
	}
	workspace := services.NewWorkspace(analyzer, contentStore, opts...)

	if err := workspace.Restore(context.Background()); err != nil {
		logger.Warn("Could not restore workspace state: %v", err)
	}

	cli.Configure(cli.Deps{
		Workspace: workspace,
		Config:    configStore,
	})
	cli.Execute()
	return nil
}
