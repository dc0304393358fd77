// ABOUTME: Vector index over document chunks backed by SQLite
// ABOUTME: Cosine-similarity scan over float32 embedding blobs
package sqlite

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/questlabs/ragdesk/internal/models"
)

// VectorStore persists chunk embeddings and answers k-nearest-neighbor
// queries. Concurrent upserts to different ids are safe; an upsert racing a
// query on the same id may observe either the old or the new value.
type VectorStore struct {
	db *DB
}

// NewVectorStore creates a new VectorStore
func NewVectorStore(db *DB) *VectorStore {
	return &VectorStore{db: db}
}

// Insert writes a chunk. Inserting an id that already exists is an error;
// callers that re-index must Delete first.
func (vs *VectorStore) Insert(ctx context.Context, chunk models.Chunk) error {
	if chunk.ID == "" {
		return fmt.Errorf("chunk id cannot be empty")
	}
	if len(chunk.Vector) == 0 {
		return fmt.Errorf("chunk %s has no embedding vector", chunk.ID)
	}

	_, err := vs.db.ExecContext(ctx, `
		INSERT INTO chunks (id, document_id, ordinal, content, embedding, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, chunk.ID, chunk.DocumentID, chunk.Ordinal, chunk.Text,
		encodeVector(chunk.Vector), time.Now().UTC().UnixNano())
	if err != nil {
		return fmt.Errorf("failed to insert chunk %s: %w", chunk.ID, err)
	}
	return nil
}

// Delete removes a chunk by id. Deleting an id that does not exist is not
// an error, which is what makes delete-then-insert re-indexing idempotent.
func (vs *VectorStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("chunk id cannot be empty")
	}
	if _, err := vs.db.ExecContext(ctx, `DELETE FROM chunks WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete chunk %s: %w", id, err)
	}
	return nil
}

// Search returns up to k chunks ranked by cosine similarity to the query
// vector. Fewer than k results is not an error; a smaller corpus simply
// returns what it has.
func (vs *VectorStore) Search(ctx context.Context, vector []float32, k int) ([]models.ScoredChunk, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive, got %d", k)
	}

	rows, err := vs.db.QueryContext(ctx, `
		SELECT id, document_id, ordinal, content, embedding FROM chunks
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to scan chunks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []models.ScoredChunk
	for rows.Next() {
		var (
			chunk models.Chunk
			blob  []byte
		)
		if err := rows.Scan(&chunk.ID, &chunk.DocumentID, &chunk.Ordinal, &chunk.Text, &blob); err != nil {
			return nil, err
		}
		chunk.Vector, err = decodeVector(blob)
		if err != nil {
			return nil, fmt.Errorf("chunk %s: %w", chunk.ID, err)
		}
		results = append(results, models.ScoredChunk{
			Chunk: chunk,
			Score: cosineSimilarity(vector, chunk.Vector),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// Count returns the number of chunks in the index.
func (vs *VectorStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := vs.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chunks`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count chunks: %w", err)
	}
	return n, nil
}

// cosineSimilarity calculates cosine similarity between two vectors
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
