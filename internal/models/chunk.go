// ABOUTME: Chunk is a bounded document segment plus its embedding vector
// ABOUTME: Chunk ids are derived from (document id, ordinal) so re-indexing overwrites
package models

import "fmt"

// Chunk is one indexed segment of a source document. Once handed to the
// vector index it is owned by the index; the pipeline only constructs it.
type Chunk struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	Ordinal    int       `json:"ordinal"`
	Text       string    `json:"text"`
	Vector     []float32 `json:"vector"`
}

// ScoredChunk is a retrieval hit with its similarity score.
type ScoredChunk struct {
	Chunk Chunk   `json:"chunk"`
	Score float64 `json:"score"`
}

// ChunkID derives the stable identifier for a document's nth chunk.
// Re-indexing the same document produces the same ids, which is what makes
// ingest idempotent.
func ChunkID(documentID string, ordinal int) string {
	return fmt.Sprintf("%s_chunk_%d", documentID, ordinal)
}
