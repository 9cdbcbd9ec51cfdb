package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexdesk-labs/lexdesk-cli/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	docA := domain.Document{
		ID:         "doc-a",
		Name:       "contract.pdf",
		Path:       "Deals/2024/contract.pdf",
		SizeBytes:  2048,
		PageCount:  12,
		ChunkCount: 34,
		ContentRef: "mem://a",
		Overview:   []domain.TopicFinding{{Topic: "Fecha", Answer: "2024-01-01"}},
		CreatedAt:  time.Now().UTC().Truncate(time.Second),
	}
	docB := domain.Document{ID: "doc-b", Name: "nda.pdf", CreatedAt: time.Now().UTC()}

	require.NoError(t, store.SaveDocument(ctx, &docA))
	require.NoError(t, store.SaveDocument(ctx, &docB))
	require.NoError(t, store.SaveOrder(ctx, []string{"doc-b", "doc-a"}))
	require.NoError(t, store.SaveSelection(ctx, "doc-b"))
	require.NoError(t, store.AppendMessage(ctx, "doc-b", domain.ChatMessage{
		Role: domain.RoleUser, Content: "hola", CreatedAt: time.Now(),
	}))
	require.NoError(t, store.AppendMessage(ctx, "doc-b", domain.ChatMessage{
		Role: domain.RoleAssistant, Content: "respuesta", CreatedAt: time.Now(),
	}))

	snapshot, err := store.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"doc-b", "doc-a"}, snapshot.Order)
	assert.Equal(t, "doc-b", snapshot.SelectedID)
	require.Contains(t, snapshot.Documents, "doc-a")
	got := snapshot.Documents["doc-a"]
	assert.Equal(t, "contract.pdf", got.Name)
	assert.Equal(t, "Deals/2024/contract.pdf", got.Path)
	assert.Equal(t, int64(2048), got.SizeBytes)
	assert.Equal(t, 12, got.PageCount)
	assert.Equal(t, 34, got.ChunkCount)
	require.Len(t, got.Overview, 1)
	assert.Equal(t, "Fecha", got.Overview[0].Topic)

	require.Len(t, snapshot.Messages["doc-b"], 2)
	assert.Equal(t, domain.RoleUser, snapshot.Messages["doc-b"][0].Role)
	assert.Equal(t, "respuesta", snapshot.Messages["doc-b"][1].Content)
}

func TestStore_SaveDocumentUpserts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	doc := domain.Document{ID: "doc-1", Name: "old.pdf", CreatedAt: time.Now()}
	require.NoError(t, store.SaveDocument(ctx, &doc))

	doc.Name = "renamed.pdf"
	doc.PageCount = 7
	require.NoError(t, store.SaveDocument(ctx, &doc))

	snapshot, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "renamed.pdf", snapshot.Documents["doc-1"].Name)
	assert.Equal(t, 7, snapshot.Documents["doc-1"].PageCount)
}

func TestStore_DeleteCascadesMessages(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveDocument(ctx, &domain.Document{ID: "doc-1", Name: "a.pdf", CreatedAt: time.Now()}))
	require.NoError(t, store.AppendMessage(ctx, "doc-1", domain.ChatMessage{Role: domain.RoleUser, Content: "x"}))

	require.NoError(t, store.DeleteDocument(ctx, "doc-1"))

	snapshot, err := store.Load(ctx)
	require.NoError(t, err)
	assert.NotContains(t, snapshot.Documents, "doc-1")
	assert.Empty(t, snapshot.Messages["doc-1"])
}

func TestStore_StaleSelectionDropped(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveDocument(ctx, &domain.Document{ID: "doc-1", Name: "a.pdf", CreatedAt: time.Now()}))
	require.NoError(t, store.SaveSelection(ctx, "doc-1"))
	require.NoError(t, store.DeleteDocument(ctx, "doc-1"))

	snapshot, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, snapshot.SelectedID)
}

func TestStore_MigrateIsIdempotent(t *testing.T) {
	dir := t.TempDir()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.SaveDocument(context.Background(), &domain.Document{ID: "doc-1", Name: "a.pdf", CreatedAt: time.Now()}))
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	snapshot, err := second.Load(context.Background())
	require.NoError(t, err)
	assert.Contains(t, snapshot.Documents, "doc-1")
}
