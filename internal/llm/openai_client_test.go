// ABOUTME: Tests for the OpenAI client configuration and prompt assembly
// ABOUTME: Network calls are not exercised; retrieval/generation use fakes elsewhere

package llm

import (
	"errors"
	"strings"
	"testing"
)

func TestNewClient_RequiresAPIKey(t *testing.T) {
	if _, err := NewClient(ClientConfig{}); err == nil {
		t.Error("NewClient() without API key should fail")
	}
}

func TestNewClient_AppliesDefaults(t *testing.T) {
	c, err := NewClient(ClientConfig{APIKey: "test-key"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if c.chatModel != DefaultChatModel {
		t.Errorf("chatModel = %q, want %q", c.chatModel, DefaultChatModel)
	}
	if c.embeddingModel != DefaultEmbeddingModel {
		t.Errorf("embeddingModel = %q, want %q", c.embeddingModel, DefaultEmbeddingModel)
	}
	if c.timeout <= 0 {
		t.Error("timeout should default to a positive value")
	}
}

func TestBuildPrompt_SectionsInOrder(t *testing.T) {
	prompt := buildPrompt("Can I return shoes?", "Returns accepted within 30 days.", "User: hi\nAssistant: hello\n")

	ctxIdx := strings.Index(prompt, "Returns accepted within 30 days.")
	histIdx := strings.Index(prompt, "User: hi")
	qIdx := strings.Index(prompt, "Can I return shoes?")

	if ctxIdx == -1 || histIdx == -1 || qIdx == -1 {
		t.Fatalf("prompt missing a section:\n%s", prompt)
	}
	if !(ctxIdx < histIdx && histIdx < qIdx) {
		t.Errorf("sections out of order: context=%d history=%d question=%d", ctxIdx, histIdx, qIdx)
	}
}

func TestBuildPrompt_EmptyHistory(t *testing.T) {
	prompt := buildPrompt("q", "ctx", "")
	if !strings.Contains(prompt, "(none)") {
		t.Error("empty history should render a placeholder, not vanish")
	}
}

func TestUpstreamError_Unwraps(t *testing.T) {
	inner := errors.New("boom")
	err := &UpstreamError{Op: "chat completion", Err: inner}

	if !errors.Is(err, inner) {
		t.Error("UpstreamError should unwrap to the underlying error")
	}
	if !strings.Contains(err.Error(), "chat completion") {
		t.Errorf("Error() = %q, should name the operation", err.Error())
	}
}
