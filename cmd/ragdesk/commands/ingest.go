// ABOUTME: Ingest command indexes local files into the vector store
// ABOUTME: Reports per-file results; one bad file never aborts the batch
package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/questlabs/ragdesk/internal/indexer"
)

// NewIngestCmd creates the ingest command
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <file> [file...]",
		Short: "Chunk, embed, and index documents",
		Long: `Chunk, embed, and index documents

Each file becomes a document whose id is its base filename.
Re-ingesting a file replaces its previous chunks, so updated
documents never leave stale passages behind.

Files must be decoded UTF-8 text (plain text, markdown, JSON).`,
		Args: cobra.MinimumNArgs(1),
		RunE: runIngest,
		Example: `  # Index a single FAQ
  ragdesk ingest faq.md

  # Index a whole docs directory's files
  ragdesk ingest docs/*.md`,
	}

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	svc, err := buildServices()
	if err != nil {
		return err
	}
	defer svc.Close()

	docs := make([]indexer.Document, 0, len(args))
	results := make([]indexer.DocumentResult, 0, len(args))
	for _, path := range args {
		docID := filepath.Base(path)
		data, err := os.ReadFile(path)
		if err != nil {
			results = append(results, indexer.DocumentResult{DocumentID: docID, Err: err})
			continue
		}
		if !utf8.Valid(data) {
			results = append(results, indexer.DocumentResult{
				DocumentID: docID,
				Err:        fmt.Errorf("%s is not valid UTF-8 text", path),
			})
			continue
		}
		docs = append(docs, indexer.Document{ID: docID, Text: string(data)})
	}

	results = append(results, svc.pipeline.IndexBatch(cmd.Context(), docs)...)

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			fmt.Fprintf(cmd.OutOrStdout(), "✗ %s: %v\n", res.DocumentID, res.Err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: %d chunks indexed\n", res.DocumentID, res.ChunksIndexed)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(results))
	}
	return nil
}
