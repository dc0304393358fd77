// ABOUTME: Semantic retrieval: embed the question, query the vector index
// ABOUTME: Returns rank-ordered chunk texts or a sentinel when nothing matches
package retriever

import (
	"context"
	"fmt"
	"strings"

	"github.com/questlabs/ragdesk/internal/models"
)

// NoContextFound is returned instead of an empty string when retrieval
// yields nothing, so prompt assembly never silently drops the context
// section.
const NoContextFound = "no relevant context found"

// QueryEmbedder produces query-mode embeddings at search time.
type QueryEmbedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Searcher answers k-nearest-neighbor queries over the chunk index.
type Searcher interface {
	Search(ctx context.Context, vector []float32, k int) ([]models.ScoredChunk, error)
}

// Retriever finds the passages most relevant to a question.
type Retriever struct {
	embedder QueryEmbedder
	index    Searcher
	topK     int
}

// New creates a Retriever that returns up to topK passages per question.
func New(embedder QueryEmbedder, index Searcher, topK int) (*Retriever, error) {
	if topK <= 0 {
		return nil, fmt.Errorf("retriever: top-k must be positive, got %d", topK)
	}
	return &Retriever{embedder: embedder, index: index, topK: topK}, nil
}

// Retrieve returns the retrieved chunk texts, one per line, in the index's
// rank order. Fewer than k matches is normal for a small corpus; zero
// matches yields the NoContextFound sentinel.
func (r *Retriever) Retrieve(ctx context.Context, question string) (string, error) {
	vector, err := r.embedder.EmbedQuery(ctx, question)
	if err != nil {
		return "", fmt.Errorf("failed to embed question: %w", err)
	}

	results, err := r.index.Search(ctx, vector, r.topK)
	if err != nil {
		return "", fmt.Errorf("failed to query vector index: %w", err)
	}
	if len(results) == 0 {
		return NoContextFound, nil
	}

	texts := make([]string, 0, len(results))
	for _, res := range results {
		texts = append(texts, res.Chunk.Text)
	}
	return strings.Join(texts, "\n"), nil
}
