// ABOUTME: Tests for the document ingestion pipeline
// ABOUTME: Verifies idempotent re-indexing, abort-on-failure, and batch isolation

package indexer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/questlabs/ragdesk/internal/chunker"
	"github.com/questlabs/ragdesk/internal/models"
	"github.com/questlabs/ragdesk/internal/storage/sqlite"
)

// fakeEmbedder returns a deterministic vector per text, optionally failing
// after a set number of calls.
type fakeEmbedder struct {
	calls   int
	failAt  int // 0 means never fail
	failErr error
}

func (f *fakeEmbedder) EmbedDocument(_ context.Context, text string) ([]float32, error) {
	f.calls++
	if f.failAt > 0 && f.calls >= f.failAt {
		return nil, f.failErr
	}
	var sum float32
	for _, r := range text {
		sum += float32(r)
	}
	return []float32{sum, float32(len(text)), 1}, nil
}

// memIndex records operations for failure-path assertions.
type memIndex struct {
	chunks    map[string]models.Chunk
	deletes   []string
	insertErr error
}

func newMemIndex() *memIndex {
	return &memIndex{chunks: make(map[string]models.Chunk)}
}

func (m *memIndex) Insert(_ context.Context, chunk models.Chunk) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	if _, exists := m.chunks[chunk.ID]; exists {
		return fmt.Errorf("duplicate chunk id %s", chunk.ID)
	}
	m.chunks[chunk.ID] = chunk
	return nil
}

func (m *memIndex) Delete(_ context.Context, id string) error {
	m.deletes = append(m.deletes, id)
	delete(m.chunks, id)
	return nil
}

func newTestPipeline(t *testing.T, embedder Embedder, index VectorIndex) *Pipeline {
	t.Helper()
	splitter, err := chunker.New(300, 50)
	if err != nil {
		t.Fatalf("chunker.New() error = %v", err)
	}
	return New(splitter, embedder, index)
}

func TestPipeline_IndexProducesExpectedChunks(t *testing.T) {
	index := newMemIndex()
	p := newTestPipeline(t, &fakeEmbedder{}, index)

	// 650 characters with no separators: hard cuts at 300/50 yield 3 chunks.
	text := strings.Repeat("0123456789", 65)
	count, err := p.Index(context.Background(), "doc1", text)
	if err != nil {
		t.Fatalf("Index() error = %v", err)
	}
	if count != 3 {
		t.Fatalf("Index() = %d chunks, want 3", count)
	}
	for i := 0; i < 3; i++ {
		id := fmt.Sprintf("doc1_chunk_%d", i)
		chunk, ok := index.chunks[id]
		if !ok {
			t.Fatalf("missing chunk %s", id)
		}
		if chunk.Ordinal != i {
			t.Errorf("chunk %s ordinal = %d, want %d", id, chunk.Ordinal, i)
		}
		if len(chunk.Vector) == 0 {
			t.Errorf("chunk %s has no vector", id)
		}
	}
}

func TestPipeline_EmptyDocumentIndexesNothing(t *testing.T) {
	index := newMemIndex()
	p := newTestPipeline(t, &fakeEmbedder{}, index)

	count, err := p.Index(context.Background(), "doc1", "")
	if err != nil {
		t.Fatalf("Index() error = %v", err)
	}
	if count != 0 || len(index.chunks) != 0 {
		t.Errorf("empty document indexed %d chunks, want 0", len(index.chunks))
	}
}

func TestPipeline_RejectsEmptyDocumentID(t *testing.T) {
	p := newTestPipeline(t, &fakeEmbedder{}, newMemIndex())
	if _, err := p.Index(context.Background(), "  ", "some text"); err == nil {
		t.Error("Index() with blank document id should fail")
	}
}

func TestPipeline_ReindexingIsIdempotent(t *testing.T) {
	db, err := sqlite.OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := sqlite.NewVectorStore(db)
	p := newTestPipeline(t, &fakeEmbedder{}, store)
	ctx := context.Background()
	text := strings.Repeat("0123456789", 65)

	first, err := p.Index(ctx, "doc1", text)
	if err != nil {
		t.Fatalf("first Index() error = %v", err)
	}
	second, err := p.Index(ctx, "doc1", text)
	if err != nil {
		t.Fatalf("second Index() error = %v", err)
	}
	if first != second {
		t.Errorf("chunk counts differ across runs: %d vs %d", first, second)
	}

	n, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != first {
		t.Errorf("index holds %d chunks after re-indexing, want %d (no duplicates, no orphans)", n, first)
	}
}

func TestPipeline_EmbeddingFailureAbortsWithContext(t *testing.T) {
	boom := errors.New("embedding service down")
	index := newMemIndex()
	p := newTestPipeline(t, &fakeEmbedder{failAt: 2, failErr: boom}, index)

	text := strings.Repeat("0123456789", 65)
	_, err := p.Index(context.Background(), "doc1", text)
	if err == nil {
		t.Fatal("Index() should fail when embedding fails")
	}

	var chunkErr *ChunkError
	if !errors.As(err, &chunkErr) {
		t.Fatalf("error should be a *ChunkError, got %T", err)
	}
	if chunkErr.DocumentID != "doc1" || chunkErr.Ordinal != 1 {
		t.Errorf("ChunkError = {doc %s, chunk %d}, want {doc doc1, chunk 1}", chunkErr.DocumentID, chunkErr.Ordinal)
	}
	if !errors.Is(err, boom) {
		t.Error("ChunkError should wrap the underlying cause")
	}

	// Earlier ordinals are not rolled back.
	if _, ok := index.chunks["doc1_chunk_0"]; !ok {
		t.Error("chunk 0 should remain indexed after a later chunk fails")
	}
	if _, ok := index.chunks["doc1_chunk_1"]; ok {
		t.Error("chunk 1 should not be indexed after its embedding failed")
	}
}

func TestPipeline_DeletesBeforeEveryInsert(t *testing.T) {
	index := newMemIndex()
	p := newTestPipeline(t, &fakeEmbedder{}, index)

	text := strings.Repeat("0123456789", 65)
	if _, err := p.Index(context.Background(), "doc1", text); err != nil {
		t.Fatalf("Index() error = %v", err)
	}

	want := []string{"doc1_chunk_0", "doc1_chunk_1", "doc1_chunk_2"}
	if len(index.deletes) != len(want) {
		t.Fatalf("recorded %d deletes, want %d", len(index.deletes), len(want))
	}
	for i, id := range want {
		if index.deletes[i] != id {
			t.Errorf("delete %d = %s, want %s", i, index.deletes[i], id)
		}
	}
}

func TestPipeline_SanitizesControlCharacters(t *testing.T) {
	index := newMemIndex()
	p := newTestPipeline(t, &fakeEmbedder{}, index)

	if _, err := p.Index(context.Background(), "doc1", "clean\x00 text\x01 here"); err != nil {
		t.Fatalf("Index() error = %v", err)
	}
	chunk := index.chunks["doc1_chunk_0"]
	if strings.ContainsRune(chunk.Text, 0) || strings.ContainsRune(chunk.Text, 1) {
		t.Errorf("stored text still contains control characters: %q", chunk.Text)
	}
	if !strings.Contains(chunk.Text, "clean") {
		t.Errorf("stored text lost content: %q", chunk.Text)
	}
}

func TestPipeline_IndexBatchIsolatesFailures(t *testing.T) {
	// Fail on the second embedding call: doc "bad" has one chunk, so its
	// single call is call #2 after doc "good" used call #1.
	boom := errors.New("quota exceeded")
	index := newMemIndex()
	p := newTestPipeline(t, &fakeEmbedder{failAt: 2, failErr: boom}, index)

	results := p.IndexBatch(context.Background(), []Document{
		{ID: "good", Text: "short document"},
		{ID: "bad", Text: "another short document"},
	})

	if len(results) != 2 {
		t.Fatalf("IndexBatch() returned %d results, want 2", len(results))
	}
	if results[0].Err != nil {
		t.Errorf("doc good error = %v, want nil", results[0].Err)
	}
	if results[0].ChunksIndexed != 1 {
		t.Errorf("doc good indexed %d chunks, want 1", results[0].ChunksIndexed)
	}
	if results[1].Err == nil {
		t.Error("doc bad should report its failure")
	}
	if results[1].DocumentID != "bad" {
		t.Errorf("result order should match input order, got %s", results[1].DocumentID)
	}
}
