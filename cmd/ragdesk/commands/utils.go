// ABOUTME: Shared service wiring for CLI commands
// ABOUTME: Builds the storage, LLM, pipeline, and orchestrator stack once
package commands

import (
	"fmt"

	"github.com/joho/godotenv"
	openai "github.com/sashabaranov/go-openai"

	"github.com/questlabs/ragdesk/internal/audit"
	"github.com/questlabs/ragdesk/internal/chunker"
	"github.com/questlabs/ragdesk/internal/config"
	"github.com/questlabs/ragdesk/internal/core"
	"github.com/questlabs/ragdesk/internal/indexer"
	"github.com/questlabs/ragdesk/internal/llm"
	"github.com/questlabs/ragdesk/internal/retriever"
	"github.com/questlabs/ragdesk/internal/storage/sqlite"
)

// services bundles the long-lived objects every command needs. All clients
// are constructed here once and passed by reference, never held as package
// globals.
type services struct {
	cfg          *config.Config
	db           *sqlite.DB
	pipeline     *indexer.Pipeline
	orchestrator *core.Orchestrator
}

// buildServices loads configuration and wires the full stack.
func buildServices() (*services, error) {
	// Load .env for API keys; absence is fine in production.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = sqlite.DefaultDBPath()
	}
	db, err := sqlite.Open(dbPath)
	if err != nil {
		return nil, err
	}

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
		_ = db.Close()
		return nil, fmt.Errorf("OPENAI_API_KEY must be set: %w", err)
	}

	splitter, err := chunker.New(cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	vectors := sqlite.NewVectorStore(db)
	turns := sqlite.NewTurnStore(db)

	ret, err := retriever.New(client, vectors, cfg.TopK)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	var auditLog audit.Logger = audit.NopLogger{}
	if cfg.AuditLogPath != "" {
		fileLog, err := audit.NewFileLogger(cfg.AuditLogPath)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		auditLog = fileLog
	}

	return &services{
		cfg:          cfg,
		db:           db,
		pipeline:     indexer.New(splitter, client, vectors),
		orchestrator: core.NewOrchestrator(turns, ret, client, auditLog, cfg.SessionTTL),
	}, nil
}

// Close releases the database handle.
func (s *services) Close() {
	_ = s.db.Close()
}
