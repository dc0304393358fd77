// ABOUTME: Standalone HTTP server entry point
// ABOUTME: Wires config, storage, LLM client, and the API server directly
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	openai "github.com/sashabaranov/go-openai"

	"github.com/questlabs/ragdesk/internal/api"
	"github.com/questlabs/ragdesk/internal/audit"
	"github.com/questlabs/ragdesk/internal/chunker"
	"github.com/questlabs/ragdesk/internal/config"
	"github.com/questlabs/ragdesk/internal/core"
	"github.com/questlabs/ragdesk/internal/indexer"
	"github.com/questlabs/ragdesk/internal/llm"
	"github.com/questlabs/ragdesk/internal/retriever"
	"github.com/questlabs/ragdesk/internal/storage/sqlite"
)

func main() {
	// Load .env for API keys; absence is fine in production.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = sqlite.DefaultDBPath()
	}
	db, err := sqlite.Open(dbPath)
	if err != nil {
		log.Fatalf("failed to open database at %s: %v", dbPath, err)
	}
	defer func() { _ = db.Close() }()

	client, err := llm.NewClient(llm.ClientConfig{
		APIKey:         cfg.OpenAIKey,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: openai.EmbeddingModel(cfg.EmbeddingModel),
		SystemPrompt:   cfg.SystemPrompt,
		Timeout:        cfg.Timeout,
		MaxRetries:     cfg.MaxRetries,
		RetryDelay:     cfg.RetryDelay,
	})
	if err != nil {
		log.Fatalf("OPENAI_API_KEY must be set: %v", err)
	}

	splitter, err := chunker.New(cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		log.Fatalf("invalid chunking configuration: %v", err)
	}

	vectors := sqlite.NewVectorStore(db)
	turns := sqlite.NewTurnStore(db)
	pipeline := indexer.New(splitter, client, vectors)

	ret, err := retriever.New(client, vectors, cfg.TopK)
	if err != nil {
		log.Fatalf("invalid retrieval configuration: %v", err)
	}

	var auditLog audit.Logger = audit.NopLogger{}
	if cfg.AuditLogPath != "" {
		fileLog, err := audit.NewFileLogger(cfg.AuditLogPath)
		if err != nil {
			log.Fatalf("failed to open audit log at %s: %v", cfg.AuditLogPath, err)
		}
		auditLog = fileLog
	}

	orchestrator := core.NewOrchestrator(turns, ret, client, auditLog, cfg.SessionTTL)

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("using database %s", dbPath)
	server := api.NewServer(cfg.HTTPAddr, orchestrator, pipeline)
	if err := server.Run(ctx); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
