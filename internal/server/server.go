// Package server exposes the agent and document store over HTTP. Handlers
// stay thin: decode, call the collaborator, encode.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/krestn/HomeAI/internal/agent"
	"github.com/krestn/HomeAI/internal/config"
	"github.com/krestn/HomeAI/internal/documents"
	"github.com/krestn/HomeAI/internal/stats"
)

const (
	shutdownTimeout = 5 * time.Second
	maxUploadBytes  = 20 << 20
)

// ChatAgent runs one conversation turn.
type ChatAgent interface {
	Run(ctx context.Context, userID int64, message string, propertyID *int64) (*agent.Response, error)
}

// Server serves the chat and document endpoints.
type Server struct {
	agent     ChatAgent
	documents *documents.Store
	tokens    map[string]int64
	logger    *zap.Logger
	stats     *stats.Collector

	httpServer *http.Server
}

// New builds a server from the listen config and its collaborators.
func New(cfg config.ServerConfig, ag ChatAgent, docs *documents.Store, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		agent:     ag,
		documents: docs,
		tokens:    cfg.Tokens,
		logger:    logger,
		stats:     stats.NewCollector(),
	}
	s.httpServer = &http.Server{
		Addr:    cfg.Addr,
		Handler: s.routes(),
	}
	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/agent/chat", s.handleChat)
	mux.HandleFunc("/documents", s.handleDocuments)
	mux.HandleFunc("/documents/", s.handleDocumentByID)
	mux.HandleFunc("/documents/upload", s.handleUpload)
	mux.HandleFunc("/status", s.handleStatus)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	return mux
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, s.stats.Collect())
}

// Start runs the server until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn("server shutdown", zap.Error(err))
		}
	}()

	s.logger.Info("listening", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// authenticate maps the bearer token to a user id.
func (s *Server) authenticate(r *http.Request) (int64, bool) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return 0, false
	}
	userID, ok := s.tokens[strings.TrimSpace(token)]
	return userID, ok
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// ============================================================
// Chat
// ============================================================

type chatRequest struct {
	Message    string `json:"message"`
	PropertyID *int64 `json:"property_id,omitempty"`
}

type chatResponse struct {
	*agent.Response
	UserID int64 `json:"user_id"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := s.authenticate(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}

	started := time.Now()
	resp, err := s.agent.Run(r.Context(), userID, req.Message, req.PropertyID)
	if err != nil {
		s.stats.RecordError()
		s.logger.Error("chat turn failed", zap.Int64("user_id", userID), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	s.stats.RecordTurn(time.Since(started))

	writeJSON(w, http.StatusOK, chatResponse{Response: resp, UserID: userID})
}

// ============================================================
// Documents
// ============================================================

type documentResponse struct {
	ID           string `json:"id"`
	OriginalName string `json:"original_name"`
	UploadedAt   string `json:"uploaded_at"`
	Preview      string `json:"preview"`
	PreviewURL   string `json:"preview_url"`
}

func toDocumentResponse(meta documents.Metadata) documentResponse {
	return documentResponse{
		ID:           meta.ID,
		OriginalName: meta.OriginalName,
		UploadedAt:   meta.UploadedAt,
		Preview:      meta.Preview,
		PreviewURL:   fmt.Sprintf("/documents/%s/file", meta.ID),
	}
}

func (s *Server) handleDocuments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := s.authenticate(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	docs, err := s.documents.List(userID)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	out := make([]documentResponse, 0, len(docs))
	for _, doc := range docs {
		out = append(out, toDocumentResponse(doc))
	}
	writeJSON(w, http.StatusOK, out)
}

// handleUpload accepts a multipart form with the file under "file" and the
// extracted text under "text". Extraction happens client-side; the engine
// never parses file formats.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := s.authenticate(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType != "application/pdf" && contentType != "application/x-pdf" {
		http.Error(w, "Only PDF uploads are supported.", http.StatusBadRequest)
		return
	}

	content, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	if len(content) == 0 {
		http.Error(w, "Uploaded file is empty.", http.StatusBadRequest)
		return
	}

	meta, err := s.documents.Save(userID, header.Filename, content, r.FormValue("text"))
	if err != nil {
		s.logger.Error("document save failed", zap.Int64("user_id", userID), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toDocumentResponse(meta))
}

// handleDocumentByID serves GET /documents/{id}/file and DELETE
// /documents/{id}.
func (s *Server) handleDocumentByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authenticate(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, action, ok := parseDocumentPath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}

	switch {
	case action == "file" && r.Method == http.MethodGet:
		path, err := s.documents.FilePath(userID, id)
		if err != nil {
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		if path == "" {
			http.Error(w, "Document not found.", http.StatusNotFound)
			return
		}
		meta, _, _ := s.documents.Get(userID, id)
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", meta.OriginalName))
		http.ServeFile(w, r, path)

	case action == "" && r.Method == http.MethodDelete:
		deleted, err := s.documents.Delete(userID, id)
		if err != nil {
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		if !deleted {
			http.Error(w, "Document not found.", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func parseDocumentPath(path string) (id string, action string, ok bool) {
	tail := strings.Trim(strings.TrimPrefix(path, "/documents/"), "/")
	if tail == "" || tail == "upload" {
		return "", "", false
	}
	parts := strings.Split(tail, "/")
	if len(parts) == 1 {
		return parts[0], "", true
	}
	if len(parts) == 2 {
		return parts[0], parts[1], true
	}
	return "", "", false
}
