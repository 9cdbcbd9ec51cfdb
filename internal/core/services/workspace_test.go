package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	contentmem "github.com/lexdesk-labs/lexdesk-cli/internal/adapters/driven/content/memory"
	storagemem "github.com/lexdesk-labs/lexdesk-cli/internal/adapters/driven/storage/memory"
	"github.com/lexdesk-labs/lexdesk-cli/internal/core/domain"
	"github.com/lexdesk-labs/lexdesk-cli/internal/core/ports/driven"
)

// fakeAnalyzer is a scriptable analysis boundary.
type fakeAnalyzer struct {
	mu       sync.Mutex
	nextID   int
	failOn   map[string]bool
	overview []domain.TopicFinding
	answer   string
	askErr   error
	onIngest func(file domain.RawFile)
	onAsk    func(documentID, query string, limit int)
}

func (f *fakeAnalyzer) IngestFile(_ context.Context, file domain.RawFile) (*driven.IngestResult, error) {
	if f.onIngest != nil {
		f.onIngest(file)
	}
	if f.failOn[file.Name] {
		return nil, errors.New("boundary rejected file")
	}

	f.mu.Lock()
	f.nextID++
	id := fmt.Sprintf("doc-%d", f.nextID)
	f.mu.Unlock()

	return &driven.IngestResult{
		DocumentID: id,
		ChunkCount: 4,
		Overview:   f.overview,
	}, nil
}

func (f *fakeAnalyzer) Ask(_ context.Context, documentID, query string, limit int) (string, error) {
	if f.onAsk != nil {
		f.onAsk(documentID, query, limit)
	}
	if f.askErr != nil {
		return "", f.askErr
	}
	return f.answer, nil
}

func rawPDF(name, path string) domain.RawFile {
	data := []byte("%PDF-1.4 " + name)
	return domain.RawFile{
		Name:             name,
		SizeBytes:        int64(len(data)),
		Bytes:            data,
		HierarchicalPath: path,
	}
}

func newTestWorkspace(t *testing.T, analyzer *fakeAnalyzer, opts ...Option) (*Workspace, *contentmem.ContentStore) {
	t.Helper()
	content := contentmem.NewContentStore()
	return NewWorkspace(analyzer, content, opts...), content
}

func TestWorkspace_IngestBatch_Empty(t *testing.T) {
	ws, _ := newTestWorkspace(t, &fakeAnalyzer{})

	result, err := ws.IngestBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, result.Ingested)
	assert.Empty(t, result.Failed)
	assert.Nil(t, ws.Progress())
}

func TestWorkspace_IngestBatch_Success(t *testing.T) {
	analyzer := &fakeAnalyzer{
		overview: []domain.TopicFinding{{Topic: "Fecha", Answer: "2024-01-01"}},
	}
	ws, content := newTestWorkspace(t, analyzer)

	result, err := ws.IngestBatch(context.Background(), []domain.RawFile{
		rawPDF("a.pdf", "Deals/a.pdf"),
		rawPDF("b.pdf", ""),
	})
	require.NoError(t, err)
	require.Len(t, result.Ingested, 2)
	assert.Empty(t, result.Failed)

	// Most recently added first; the last ingested file is selected.
	docs := ws.Documents()
	require.Len(t, docs, 2)
	assert.Equal(t, "b.pdf", docs[0].Name)
	assert.Equal(t, "a.pdf", docs[1].Name)
	assert.Equal(t, docs[0].ID, ws.Selected().ID)

	assert.Equal(t, "Deals/a.pdf", docs[1].Path)
	assert.Equal(t, 4, docs[1].ChunkCount)
	assert.NotEmpty(t, docs[1].ContentRef)
	assert.Len(t, docs[1].Overview, 1)
	assert.Equal(t, 2, content.Len())

	assert.Nil(t, ws.Progress())
}

func TestWorkspace_IngestBatch_PartialFailure(t *testing.T) {
	analyzer := &fakeAnalyzer{failOn: map[string]bool{"b.pdf": true}}

	var doneAtCall []int
	ws, _ := newTestWorkspace(t, analyzer)
	analyzer.onIngest = func(domain.RawFile) {
		p := ws.Progress()
		require.NotNil(t, p)
		doneAtCall = append(doneAtCall, p.Done)
	}

	result, err := ws.IngestBatch(context.Background(), []domain.RawFile{
		rawPDF("a.pdf", ""),
		rawPDF("b.pdf", ""),
		rawPDF("c.pdf", ""),
	})
	require.NoError(t, err)

	assert.Len(t, result.Ingested, 2)
	assert.Equal(t, []string{"b.pdf"}, result.Failed)
	assert.Len(t, ws.Documents(), 2)

	// Strictly sequential: each call observed the progress left by the
	// previous one.
	assert.Equal(t, []int{0, 1, 2}, doneAtCall)
	assert.Nil(t, ws.Progress())
}

func TestWorkspace_IngestBatch_RejectsNonPDF(t *testing.T) {
	ws, _ := newTestWorkspace(t, &fakeAnalyzer{})

	result, err := ws.IngestBatch(context.Background(), []domain.RawFile{
		{Name: "notes.txt", Bytes: []byte("plain text")},
		rawPDF("a.pdf", ""),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"notes.txt"}, result.Failed)
	assert.Len(t, result.Ingested, 1)
}

func TestWorkspace_Select_Unconditional(t *testing.T) {
	ws, _ := newTestWorkspace(t, &fakeAnalyzer{})

	ws.Select("ghost")
	assert.Nil(t, ws.Selected())
}

func TestWorkspace_Remove(t *testing.T) {
	ws, content := newTestWorkspace(t, &fakeAnalyzer{})

	result, err := ws.IngestBatch(context.Background(), []domain.RawFile{rawPDF("a.pdf", "")})
	require.NoError(t, err)
	id := result.Ingested[0]
	require.Equal(t, 1, content.Len())
	require.NotNil(t, ws.Selected())

	require.NoError(t, ws.Remove(id))

	assert.Nil(t, ws.Selected())
	assert.Empty(t, ws.Documents())
	assert.Equal(t, 0, content.Len())

	// Second removal reports not found; the release was already done once.
	assert.ErrorIs(t, ws.Remove(id), domain.ErrNotFound)
}

func TestWorkspace_Remove_KeepsUnrelatedSelection(t *testing.T) {
	ws, _ := newTestWorkspace(t, &fakeAnalyzer{})

	result, err := ws.IngestBatch(context.Background(), []domain.RawFile{
		rawPDF("a.pdf", ""),
		rawPDF("b.pdf", ""),
	})
	require.NoError(t, err)

	// b.pdf was ingested last and is selected; removing a.pdf keeps it.
	require.NoError(t, ws.Remove(result.Ingested[0]))
	require.NotNil(t, ws.Selected())
	assert.Equal(t, result.Ingested[1], ws.Selected().ID)
}

func TestWorkspace_Rename(t *testing.T) {
	ws, _ := newTestWorkspace(t, &fakeAnalyzer{})

	result, err := ws.IngestBatch(context.Background(), []domain.RawFile{rawPDF("a.pdf", "Deals/a.pdf")})
	require.NoError(t, err)
	id := result.Ingested[0]

	require.NoError(t, ws.Rename(id, "acme-master-agreement.pdf"))

	doc, err := ws.Document(id)
	require.NoError(t, err)
	assert.Equal(t, "acme-master-agreement.pdf", doc.Name)
	assert.Equal(t, "Deals/a.pdf", doc.Path)

	assert.ErrorIs(t, ws.Rename("ghost", "x"), domain.ErrNotFound)
	assert.ErrorIs(t, ws.Rename(id, ""), domain.ErrInvalidInput)
}

func TestWorkspace_SetPageCount(t *testing.T) {
	ws, _ := newTestWorkspace(t, &fakeAnalyzer{})

	result, err := ws.IngestBatch(context.Background(), []domain.RawFile{rawPDF("a.pdf", "")})
	require.NoError(t, err)
	id := result.Ingested[0]

	require.NoError(t, ws.SetPageCount(id, 12))
	doc, err := ws.Document(id)
	require.NoError(t, err)
	assert.Equal(t, 12, doc.PageCount)

	assert.ErrorIs(t, ws.SetPageCount(id, -1), domain.ErrInvalidInput)
	assert.ErrorIs(t, ws.SetPageCount("ghost", 1), domain.ErrNotFound)
}

func TestWorkspace_Ask_NoSelection(t *testing.T) {
	ws, _ := newTestWorkspace(t, &fakeAnalyzer{})

	_, err := ws.Ask(context.Background(), "¿quiénes firman?")
	assert.ErrorIs(t, err, domain.ErrNoSelection)
}

func TestWorkspace_Ask_AppendsUserTurnBeforeCall(t *testing.T) {
	analyzer := &fakeAnalyzer{answer: "Firman Acme y Globex."}
	ws, _ := newTestWorkspace(t, analyzer)

	result, err := ws.IngestBatch(context.Background(), []domain.RawFile{rawPDF("a.pdf", "")})
	require.NoError(t, err)
	id := result.Ingested[0]

	var transcriptAtCall []domain.ChatMessage
	analyzer.onAsk = func(documentID, query string, limit int) {
		assert.Equal(t, id, documentID)
		assert.Equal(t, DefaultAskLimit, limit)
		transcriptAtCall = ws.Transcript(id)
	}

	reply, err := ws.Ask(context.Background(), "¿quiénes firman?")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAssistant, reply.Role)
	assert.Equal(t, "Firman Acme y Globex.", reply.Content)

	// The user's turn was visible before the boundary call resolved.
	require.Len(t, transcriptAtCall, 1)
	assert.Equal(t, domain.RoleUser, transcriptAtCall[0].Role)

	transcript := ws.Transcript(id)
	require.Len(t, transcript, 2)
	assert.Equal(t, "¿quiénes firman?", transcript[0].Content)
	assert.Equal(t, "Firman Acme y Globex.", transcript[1].Content)
}

func TestWorkspace_Ask_FailureSurfacedInTranscript(t *testing.T) {
	analyzer := &fakeAnalyzer{askErr: errors.New("service unavailable")}
	ws, _ := newTestWorkspace(t, analyzer)

	result, err := ws.IngestBatch(context.Background(), []domain.RawFile{rawPDF("a.pdf", "")})
	require.NoError(t, err)

	reply, err := ws.Ask(context.Background(), "pregunta")
	require.NoError(t, err)
	assert.Equal(t, "Error: service unavailable", reply.Content)

	transcript := ws.Transcript(result.Ingested[0])
	require.Len(t, transcript, 2)
	assert.Equal(t, "Error: service unavailable", transcript[1].Content)
}

func TestWorkspace_AskLimitClamped(t *testing.T) {
	analyzer := &fakeAnalyzer{answer: "ok"}
	var gotLimit int
	analyzer.onAsk = func(_, _ string, limit int) { gotLimit = limit }

	ws, _ := newTestWorkspace(t, analyzer, WithAskLimit(100))
	_, err := ws.IngestBatch(context.Background(), []domain.RawFile{rawPDF("a.pdf", "")})
	require.NoError(t, err)

	_, err = ws.Ask(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, 25, gotLimit)
}

func TestWorkspace_TreeProjection(t *testing.T) {
	ws, _ := newTestWorkspace(t, &fakeAnalyzer{})

	_, err := ws.IngestBatch(context.Background(), []domain.RawFile{
		rawPDF("agreement.PDF", "Contracts/Acme/agreement.PDF"),
		rawPDF("nda.pdf", "Contracts/Acme/nda.pdf"),
	})
	require.NoError(t, err)

	root := ws.Tree()
	require.Len(t, root.Children, 1)
	contracts := root.Children[0]
	assert.Equal(t, "Contracts", contracts.Name)
	require.Len(t, contracts.Children, 1)
	assert.Len(t, contracts.Children[0].Children, 2)
}

func TestWorkspace_KPIProjection(t *testing.T) {
	analyzer := &fakeAnalyzer{
		overview: []domain.TopicFinding{{Topic: "Monto", Answer: "$1,200.50 and MXN 300"}},
	}
	ws, _ := newTestWorkspace(t, analyzer)

	result, err := ws.IngestBatch(context.Background(), []domain.RawFile{rawPDF("a.pdf", "")})
	require.NoError(t, err)

	rec, err := ws.KPIs(result.Ingested[0])
	require.NoError(t, err)
	require.Len(t, rec.Money, 2)
	assert.Equal(t, "USD", rec.Money[0].Currency)
	assert.Equal(t, "MXN", rec.Money[1].Currency)

	_, err = ws.KPIs("ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWorkspace_PersistAndRestore(t *testing.T) {
	store := storagemem.NewWorkspaceStore()
	analyzer := &fakeAnalyzer{answer: "sí"}

	content := contentmem.NewContentStore()
	ws := NewWorkspace(analyzer, content, WithStore(store))

	result, err := ws.IngestBatch(context.Background(), []domain.RawFile{
		rawPDF("a.pdf", "Deals/a.pdf"),
		rawPDF("b.pdf", ""),
	})
	require.NoError(t, err)
	_, err = ws.Ask(context.Background(), "pregunta")
	require.NoError(t, err)

	restored := NewWorkspace(analyzer, content, WithStore(store))
	require.NoError(t, restored.Restore(context.Background()))

	docs := restored.Documents()
	require.Len(t, docs, 2)
	assert.Equal(t, "b.pdf", docs[0].Name)
	require.NotNil(t, restored.Selected())
	assert.Equal(t, result.Ingested[1], restored.Selected().ID)
	assert.Len(t, restored.Transcript(result.Ingested[1]), 2)
}
