// ABOUTME: Document ingestion pipeline: chunk, embed, sanitize, upsert
// ABOUTME: Delete-before-insert keyed on (document id, ordinal) keeps re-indexing idempotent
package indexer

import (
	"context"
	"fmt"
	"strings"

	"github.com/questlabs/ragdesk/internal/chunker"
	"github.com/questlabs/ragdesk/internal/models"
)

// Embedder produces document-mode embeddings at index time.
type Embedder interface {
	EmbedDocument(ctx context.Context, text string) ([]float32, error)
}

// VectorIndex is the slice of the vector store the pipeline writes to.
type VectorIndex interface {
	Insert(ctx context.Context, chunk models.Chunk) error
	Delete(ctx context.Context, id string) error
}

// ChunkError reports which chunk of which document failed.
type ChunkError struct {
	DocumentID string
	Ordinal    int
	Err        error
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("document %s chunk %d: %v", e.DocumentID, e.Ordinal, e.Err)
}

func (e *ChunkError) Unwrap() error {
	return e.Err
}

// Document is one unit of ingestion.
type Document struct {
	ID   string
	Text string
}

// DocumentResult reports one document's outcome within a batch.
type DocumentResult struct {
	DocumentID    string
	ChunksIndexed int
	Err           error
}

// Pipeline orchestrates the chunker, the embedding service, and the vector
// index for document ingestion.
type Pipeline struct {
	splitter *chunker.Splitter
	embedder Embedder
	index    VectorIndex
}

// New creates an ingestion pipeline.
func New(splitter *chunker.Splitter, embedder Embedder, index VectorIndex) *Pipeline {
	return &Pipeline{splitter: splitter, embedder: embedder, index: index}
}

// Index ingests one document and returns the number of chunks written.
// A failure on chunk i aborts the document; chunks written before i stay in
// the index. That partial state is documented behavior: re-running Index
// heals it, because each ordinal is deleted before it is re-inserted.
func (p *Pipeline) Index(ctx context.Context, documentID, text string) (int, error) {
	if strings.TrimSpace(documentID) == "" {
		return 0, fmt.Errorf("document id cannot be empty")
	}

	segments := p.splitter.Split(text)
	for i, segment := range segments {
		vector, err := p.embedder.EmbedDocument(ctx, segment)
		if err != nil {
			return 0, &ChunkError{DocumentID: documentID, Ordinal: i, Err: err}
		}

		chunk := models.Chunk{
			ID:         models.ChunkID(documentID, i),
			DocumentID: documentID,
			Ordinal:    i,
			Text:       sanitize(segment),
			Vector:     vector,
		}

		// Clear any previous chunk at this ordinal first. The store treats
		// a missing id as a no-op, so only a real storage failure aborts.
		if err := p.index.Delete(ctx, chunk.ID); err != nil {
			return 0, &ChunkError{DocumentID: documentID, Ordinal: i, Err: err}
		}
		if err := p.index.Insert(ctx, chunk); err != nil {
			return 0, &ChunkError{DocumentID: documentID, Ordinal: i, Err: err}
		}
	}

	return len(segments), nil
}

// IndexBatch ingests each document independently: one document's failure
// never aborts the others. Results are returned in input order.
func (p *Pipeline) IndexBatch(ctx context.Context, docs []Document) []DocumentResult {
	results := make([]DocumentResult, 0, len(docs))
	for _, doc := range docs {
		count, err := p.Index(ctx, doc.ID, doc.Text)
		results = append(results, DocumentResult{
			DocumentID:    doc.ID,
			ChunksIndexed: count,
			Err:           err,
		})
	}
	return results
}

// sanitize strips NUL and other control characters that would corrupt
// storage, keeping ordinary whitespace.
func sanitize(s string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(cleaned)
}
