// ABOUTME: Centralized configuration for the ragdesk service
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// DefaultSystemPrompt is the support-agent persona used when
// RAGDESK_SYSTEM_PROMPT is not set.
const DefaultSystemPrompt = `You are a customer service agent for Quest, a fashion retailer. Your role is to assist customers with after-sales topics such as returns, warranties, and general inquiries.

Always answer clearly and professionally, with empathy, resolving the customer's concern effectively.

If the customer's question is not related to Quest after-sales support, kindly let them know it is outside your scope and that you can only help with returns, warranties, and other after-sales topics. Do not make up answers.`

// Config holds all configuration for the service
type Config struct {
	// OpenAI settings
	OpenAIKey      string
	ChatModel      string
	EmbeddingModel string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration

	// Retrieval settings
	ChunkSize    int
	ChunkOverlap int
	TopK         int

	// Conversation settings
	SessionTTL   time.Duration
	SystemPrompt string

	// Storage and transport
	DBPath       string // empty means the XDG default
	AuditLogPath string // empty disables the audit log
	HTTPAddr     string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		ChatModel:      getEnv("RAGDESK_CHAT_MODEL", "gpt-4o-mini"),
		EmbeddingModel: getEnv("RAGDESK_EMBEDDING_MODEL", "text-embedding-3-small"),
		Timeout:        getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		MaxRetries:     getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:     getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
		ChunkSize:      getEnvInt("RAGDESK_CHUNK_SIZE", 300),
		ChunkOverlap:   getEnvInt("RAGDESK_CHUNK_OVERLAP", 50),
		TopK:           getEnvInt("RAGDESK_TOP_K", 5),
		SessionTTL:     getEnvDuration("RAGDESK_SESSION_TTL", 2*time.Hour),
		SystemPrompt:   getEnv("RAGDESK_SYSTEM_PROMPT", DefaultSystemPrompt),
		DBPath:         os.Getenv("RAGDESK_DB_PATH"),
		AuditLogPath:   os.Getenv("RAGDESK_AUDIT_LOG"),
		HTTPAddr:       getEnv("RAGDESK_HTTP_ADDR", ":8080"),
	}

	return cfg, cfg.Validate()
}

// Validate rejects configurations that would fail at runtime. Invalid
// chunking parameters are a startup error, not an ingest-time surprise.
func (c *Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("RAGDESK_CHUNK_SIZE must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 {
		return fmt.Errorf("RAGDESK_CHUNK_OVERLAP must be non-negative, got %d", c.ChunkOverlap)
	}
	if c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("RAGDESK_CHUNK_OVERLAP (%d) must be smaller than RAGDESK_CHUNK_SIZE (%d)", c.ChunkOverlap, c.ChunkSize)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("RAGDESK_TOP_K must be positive, got %d", c.TopK)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("RAGDESK_SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
