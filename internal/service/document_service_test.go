package service

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"conversational-rag-be/internal/entity"
	"conversational-rag-be/internal/pkg/serverutils"
	"conversational-rag-be/internal/repository/contract"
	"conversational-rag-be/internal/repository/memory"
	"conversational-rag-be/internal/repository/specification"
	"conversational-rag-be/pkg/ingest"
	"conversational-rag-be/pkg/rag/indexer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDocRepo struct {
	stored []*entity.DocumentChunk
}

func (f *fakeDocRepo) CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error {
	f.stored = append(f.stored, chunks...)
	return nil
}

func (f *fakeDocRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(f.stored)), nil
}

func (f *fakeDocRepo) DeleteByNamespace(ctx context.Context, namespace string) error {
	kept := f.stored[:0]
	for _, c := range f.stored {
		if c.Namespace != namespace {
			kept = append(kept, c)
		}
	}
	f.stored = kept
	return nil
}

func (f *fakeDocRepo) SearchSimilar(ctx context.Context, emb []float32, limit int, namespace string) ([]*contract.ScoredDocumentChunk, error) {
	return nil, nil
}

func newDocumentFixture(t *testing.T) (IDocumentService, *memory.RetrieverRegistry, *fakeDocRepo) {
	t.Helper()

	repo := &fakeDocRepo{}
	registry := memory.NewRetrieverRegistry()
	svc := NewDocumentService(
		ingest.NewLoader(nopLogger{}),
		indexer.New(&fakeEmbedder{}, repo, nopLogger{}, indexer.Config{}),
		repo,
		registry,
		nopLogger{},
	)
	return svc, registry, repo
}

// buildMultipartFiles produces real multipart file headers the way fiber
// hands them to the controller.
func buildMultipartFiles(t *testing.T, names map[string]string) []*multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for name, content := range names {
		part, err := writer.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(&buf, writer.Boundary())
	form, err := reader.ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["files"]
}

func TestUploadRejectsEmptyRequest(t *testing.T) {
	svc, _, _ := newDocumentFixture(t)

	_, err := svc.Upload(context.Background(), "session-1", nil, nil)
	require.ErrorIs(t, err, serverutils.ErrNoSources)
}

func TestUploadIndexesTextFile(t *testing.T) {
	svc, registry, repo := newDocumentFixture(t)
	files := buildMultipartFiles(t, map[string]string{"notes.txt": "the quarterly report covers revenue"})

	res, err := svc.Upload(context.Background(), "session-1", files, nil)
	require.NoError(t, err)
	assert.Equal(t, "session-1", res.SessionId)
	assert.Equal(t, 1, res.SourcesLoaded)

	ret, found := registry.Get("session-1")
	require.True(t, found, "upload must register a retrieval handle")
	require.NotNil(t, ret)
	assert.Equal(t, "session-1", ret.Namespace())

	require.NotEmpty(t, repo.stored)
	assert.Equal(t, "session-1", repo.stored[0].Namespace)
}

func TestUploadIndexesURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><p>hosted content</p></body></html>"))
	}))
	defer srv.Close()

	svc, registry, _ := newDocumentFixture(t)

	res, err := svc.Upload(context.Background(), "session-2", nil, []string{srv.URL})
	require.NoError(t, err)
	assert.Equal(t, 1, res.SourcesLoaded)

	_, found := registry.Get("session-2")
	assert.True(t, found)
}

func TestUploadAllSourcesFailKeepsSessionUnindexed(t *testing.T) {
	svc, registry, _ := newDocumentFixture(t)

	res, err := svc.Upload(context.Background(), "session-3", nil, []string{"http://127.0.0.1:1/down"})
	require.NoError(t, err, "ingestion failures are skipped, not fatal")
	assert.Equal(t, 0, res.SourcesLoaded)

	_, found := registry.Get("session-3")
	assert.False(t, found, "nothing indexed means no handle is registered")
}

func TestResetDropsIndexAndHandle(t *testing.T) {
	svc, registry, repo := newDocumentFixture(t)
	files := buildMultipartFiles(t, map[string]string{"doc.txt": "indexed content"})

	_, err := svc.Upload(context.Background(), "session-5", files, nil)
	require.NoError(t, err)
	require.NotEmpty(t, repo.stored)

	res, err := svc.Reset(context.Background(), "session-5")
	require.NoError(t, err)
	assert.Equal(t, "session-5", res.SessionId)
	assert.Equal(t, int64(1), res.ChunksRemoved)

	assert.Empty(t, repo.stored, "session vectors are gone")
	_, found := registry.Get("session-5")
	assert.False(t, found, "handle is forgotten")
}

func TestUploadReplacesPriorHandle(t *testing.T) {
	svc, registry, _ := newDocumentFixture(t)

	first := buildMultipartFiles(t, map[string]string{"a.txt": "first upload"})
	_, err := svc.Upload(context.Background(), "session-4", first, nil)
	require.NoError(t, err)
	before, _ := registry.Get("session-4")

	second := buildMultipartFiles(t, map[string]string{"b.txt": "second upload"})
	_, err = svc.Upload(context.Background(), "session-4", second, nil)
	require.NoError(t, err)
	after, _ := registry.Get("session-4")

	assert.NotSame(t, before, after, "a new upload installs a fresh handle")
}
