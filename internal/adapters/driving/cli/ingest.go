package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lexdesk-labs/lexdesk-cli/internal/core/domain"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [path...]",
	Short: "Ingest PDF files into the workspace",
	Long: `Ingest one or more PDF files. Directories are walked recursively and
the folder structure below them is preserved in the workspace tree.

Files are processed one at a time. A failing file is reported and skipped;
the rest of the batch still runs.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if workspaceService == nil {
		return errors.New("workspace service not configured")
	}

	var files []domain.RawFile
	for _, arg := range args {
		collected, err := collectFiles(arg)
		if err != nil {
			return err
		}
		files = append(files, collected...)
	}

	if len(files) == 0 {
		cmd.Println("No PDF files found.")
		return nil
	}

	cmd.Printf("Ingesting %d file(s)...\n", len(files))

	result, err := workspaceService.IngestBatch(context.Background(), files)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	cmd.Printf("Ingested: %d\n", len(result.Ingested))
	if len(result.Failed) > 0 {
		cmd.Printf("Failed:   %d\n", len(result.Failed))
		for _, name := range result.Failed {
			cmd.Printf("  %s\n", name)
		}
	}
	return nil
}

// collectFiles expands a path argument into raw files. A directory yields
// every PDF beneath it with its directory-relative path; a plain file yields
// itself with no hierarchy.
func collectFiles(path string) ([]domain.RawFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if !info.IsDir() {
		raw, err := readRawFile(path, "")
		if err != nil {
			return nil, err
		}
		return []domain.RawFile{raw}, nil
	}

	var files []domain.RawFile
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && p != path {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(d.Name()), ".pdf") {
			return nil
		}
		rel, err := filepath.Rel(path, p)
		if err != nil {
			return err
		}
		// The top directory name anchors the tree.
		hierarchical := filepath.ToSlash(filepath.Join(filepath.Base(path), rel))
		raw, err := readRawFile(p, hierarchical)
		if err != nil {
			return err
		}
		files = append(files, raw)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", path, err)
	}
	return files, nil
}

// readRawFile loads one file from disk into the ingestion input shape.
func readRawFile(path, hierarchical string) (domain.RawFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.RawFile{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return domain.RawFile{
		Name:             filepath.Base(path),
		SizeBytes:        int64(len(data)),
		Bytes:            data,
		HierarchicalPath: hierarchical,
	}, nil
}
