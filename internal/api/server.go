// ABOUTME: HTTP server exposing ask, history, and ingest endpoints
// ABOUTME: Thin routing shell over the orchestrator and the ingest pipeline
package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/questlabs/ragdesk/internal/models"
)

// Conversation runs conversational turns and serves history reads.
type Conversation interface {
	Ask(ctx context.Context, sessionID, question string) (string, error)
	History(ctx context.Context, sessionID string) ([]models.Turn, error)
}

// Ingestor ingests one decoded document into the vector index.
type Ingestor interface {
	Index(ctx context.Context, documentID, text string) (int, error)
}

// Server is the HTTP front of the service.
type Server struct {
	addr         string
	conversation Conversation
	ingestor     Ingestor
}

// NewServer creates an HTTP server bound to addr.
func NewServer(addr string, conversation Conversation, ingestor Ingestor) *Server {
	return &Server{addr: addr, conversation: conversation, ingestor: ingestor}
}

// Handler returns the route table. Exposed separately so tests can drive it
// through httptest without binding a socket.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /ask", s.handleAsk)
	mux.HandleFunc("GET /history/{session_id}", s.handleHistory)
	mux.HandleFunc("POST /ingest", s.handleIngest)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

// Run serves until ctx is canceled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("HTTP server listening on %s", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
