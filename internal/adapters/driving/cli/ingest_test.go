package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngestCmd_RequiresArgs(t *testing.T) {
	cleanup := setupTestServices(&mockWorkspaceService{})
	defer cleanup()

	_, err := executeCommand(t, "ingest")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg")
}

func TestIngestCmd_SingleFile(t *testing.T) {
	mock := &mockWorkspaceService{}
	cleanup := setupTestServices(mock)
	defer cleanup()

	dir := t.TempDir()
	path := filepath.Join(dir, "contract.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0644))

	out, err := executeCommand(t, "ingest", path)

	require.NoError(t, err)
	assert.Contains(t, out, "Ingested: 1")
	require.Len(t, mock.ingested, 1)
	assert.Equal(t, "contract.pdf", mock.ingested[0].Name)
	// Individually picked files carry no hierarchy.
	assert.Empty(t, mock.ingested[0].HierarchicalPath)
}

func TestIngestCmd_DirectoryWalk(t *testing.T) {
	mock := &mockWorkspaceService{}
	cleanup := setupTestServices(mock)
	defer cleanup()

	root := t.TempDir()
	drop := filepath.Join(root, "Deals")
	require.NoError(t, os.MkdirAll(filepath.Join(drop, "2024"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(drop, "2024", "a.pdf"), []byte("%PDF"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(drop, "notes.txt"), []byte("skip"), 0644))

	out, err := executeCommand(t, "ingest", drop)

	require.NoError(t, err)
	assert.Contains(t, out, "Ingested: 1")
	require.Len(t, mock.ingested, 1)
	assert.Equal(t, "Deals/2024/a.pdf", mock.ingested[0].HierarchicalPath)
}

func TestIngestCmd_MissingPath(t *testing.T) {
	cleanup := setupTestServices(&mockWorkspaceService{})
	defer cleanup()

	_, err := executeCommand(t, "ingest", filepath.Join(t.TempDir(), "nope.pdf"))

	require.Error(t, err)
}

func TestIngestCmd_NoPDFs(t *testing.T) {
	cleanup := setupTestServices(&mockWorkspaceService{})
	defer cleanup()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	out, err := executeCommand(t, "ingest", dir)

	require.NoError(t, err)
	assert.Contains(t, out, "No PDF files found.")
}
