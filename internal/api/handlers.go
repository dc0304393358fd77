// ABOUTME: HTTP handler implementations and request/response bodies
// ABOUTME: Ingest reports per-file results; one file's failure never aborts the batch
package api

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"
)

// maxUploadBytes bounds one ingest request's in-memory form parsing.
const maxUploadBytes = 32 << 20

type askRequest struct {
	Question  string `json:"question"`
	SessionID string `json:"session_id"`
}

type askResponse struct {
	Answer string `json:"answer"`
}

type historyTurn struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

type historyResponse struct {
	SessionID string        `json:"session_id"`
	History   []historyTurn `json:"history"`
}

type ingestResult struct {
	DocumentID    string `json:"document_id"`
	ChunksIndexed int    `json:"chunks_indexed,omitempty"`
	Error         string `json:"error,omitempty"`
}

type ingestResponse struct {
	Results []ingestResult `json:"results"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return
	}
	if strings.TrimSpace(req.SessionID) == "" {
		writeError(w, http.StatusBadRequest, "session_id is required")
		return
	}

	answer, err := s.conversation.Ask(r.Context(), req.SessionID, req.Question)
	if err != nil {
		log.Printf("ask failed: %v", err)
		writeError(w, http.StatusBadGateway, "failed to answer question")
		return
	}

	writeJSON(w, http.StatusOK, askResponse{Answer: answer})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("session_id")

	turns, err := s.conversation.History(r.Context(), sessionID)
	if err != nil {
		log.Printf("history lookup failed for session %s: %v", sessionID, err)
		writeError(w, http.StatusInternalServerError, "failed to load history")
		return
	}

	resp := historyResponse{
		SessionID: sessionID,
		History:   make([]historyTurn, 0, len(turns)),
	}
	for _, turn := range turns {
		resp.History = append(resp.History, historyTurn{
			Role:      string(turn.Role),
			Content:   turn.Content,
			Timestamp: turn.Timestamp.Format(time.RFC3339Nano),
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "expected multipart form upload")
		return
	}
	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "at least one file part named 'files' is required")
		return
	}

	resp := ingestResponse{Results: make([]ingestResult, 0, len(files))}
	for _, header := range files {
		result := ingestResult{DocumentID: header.Filename}

		text, err := readUpload(header.Filename, header.Header.Get("Content-Type"), func() (io.ReadCloser, error) {
			return header.Open()
		})
		if err == nil {
			var count int
			count, err = s.ingestor.Index(r.Context(), header.Filename, text)
			result.ChunksIndexed = count
		}
		if err != nil {
			log.Printf("ingest failed for %s: %v", header.Filename, err)
			result.Error = err.Error()
			result.ChunksIndexed = 0
		}

		resp.Results = append(resp.Results, result)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// readUpload opens and decodes one uploaded file. Binary formats are an
// external collaborator's job to convert; they are rejected per file so the
// rest of the batch proceeds.
func readUpload(filename, contentType string, open func() (io.ReadCloser, error)) (string, error) {
	if err := checkDecodable(filename, contentType); err != nil {
		return "", err
	}

	f, err := open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("file is not valid UTF-8 text")
	}
	return string(data), nil
}

// binaryExtensions name formats the service does not decode itself.
var binaryExtensions = map[string]bool{
	".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".zip": true,
}

func checkDecodable(filename, contentType string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if binaryExtensions[ext] {
		return fmt.Errorf("unsupported content type %q: upload decoded text", ext)
	}
	mime := strings.ToLower(contentType)
	if mime != "" && !strings.HasPrefix(mime, "text/") &&
		!strings.Contains(mime, "json") && !strings.Contains(mime, "xml") &&
		mime != "application/octet-stream" {
		return fmt.Errorf("unsupported content type %q: upload decoded text", contentType)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
