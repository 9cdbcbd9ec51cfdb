package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lexdesk-labs/lexdesk-cli/internal/core/services"
)

var kpiCmd = &cobra.Command{
	Use:   "kpi",
	Short: "Extract key data points from documents",
	Long: `Extracts counterparts, dates, monetary amounts, places, and risk flags
from a document's analysis overview using keyword and pattern matching.`,
}

var kpiShowCmd = &cobra.Command{
	Use:   "show [doc-id]",
	Short: "Show key data points for a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runKPIShow,
}

// kpiFormat selects the export rendering.
var kpiFormat string

var kpiExportCmd = &cobra.Command{
	Use:   "export [doc-id]",
	Short: "Export key data points as text or CSV",
	Args:  cobra.ExactArgs(1),
	RunE:  runKPIExport,
}

var kpiSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Aggregate key data points across the workspace",
	Args:  cobra.NoArgs,
	RunE:  runKPISummary,
}

func init() {
	kpiExportCmd.Flags().StringVarP(&kpiFormat, "format", "f", "text", "output format: text or csv")

	kpiCmd.AddCommand(kpiShowCmd)
	kpiCmd.AddCommand(kpiExportCmd)
	kpiCmd.AddCommand(kpiSummaryCmd)
	rootCmd.AddCommand(kpiCmd)
}

func runKPIShow(cmd *cobra.Command, args []string) error {
	if workspaceService == nil {
		return errors.New("workspace service not configured")
	}

	record, err := workspaceService.KPIs(args[0])
	if err != nil {
		return fmt.Errorf("failed to extract key data points: %w", err)
	}

	cmd.Print(services.FormatKPIText(*record))
	return nil
}

func runKPIExport(cmd *cobra.Command, args []string) error {
	if workspaceService == nil {
		return errors.New("workspace service not configured")
	}

	record, err := workspaceService.KPIs(args[0])
	if err != nil {
		return fmt.Errorf("failed to extract key data points: %w", err)
	}

	switch kpiFormat {
	case "text":
		cmd.Print(services.FormatKPIText(*record))
	case "csv":
		cmd.Print(services.FormatKPICSV(*record))
	default:
		return fmt.Errorf("unknown format %q (want text or csv)", kpiFormat)
	}
	return nil
}

func runKPISummary(cmd *cobra.Command, _ []string) error {
	if workspaceService == nil {
		return errors.New("workspace service not configured")
	}

	summary := workspaceService.Summary()

	cmd.Printf("Documents:            %d\n", summary.TotalDocs)
	cmd.Printf("With overview:        %d\n", summary.WithOverview)
	cmd.Printf("Unique counterparts:  %d\n", summary.UniqueCounterparts)
	cmd.Printf("Risk flags:           %d\n", summary.RiskFlags)
	cmd.Printf("Total size:           %d bytes\n", summary.TotalBytes)

	if len(summary.MoneyTotals) > 0 {
		cmd.Println("\nAmounts by currency:")
		for currency, total := range summary.MoneyTotals {
			cmd.Printf("  %s: %s\n", currency, strconv.FormatFloat(total, 'f', -1, 64))
		}
	}
	return nil
}
