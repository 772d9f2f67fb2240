package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zharashanus/push-analytic/internal/models"
)

// Analyzer is the application service behind the HTTP endpoints.
type Analyzer interface {
	Analyze(ctx context.Context, req *models.AnalyzeRequest) (*models.AnalyzeResponse, error)
	AnalyzeAll(ctx context.Context, req *models.AnalyzeRequest) (*models.AnalyzeAllResponse, error)
}

// Handler exposes the analytics HTTP API.
type Handler struct {
	analyzer Analyzer
}

// NewHandler creates a new Handler with the given analyzer.
func NewHandler(analyzer Analyzer) *Handler {
	return &Handler{analyzer: analyzer}
}

// NewRouter builds the chi router with the standard middleware chain. A nil
// limiter disables rate limiting.
func NewRouter(analyzer Analyzer, limiter *RateLimiter) http.Handler {
	h := NewHandler(analyzer)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if limiter != nil {
		r.Use(limiter.Middleware)
	}

	r.Route("/api/v1/analytics", func(r chi.Router) {
		r.Get("/health", h.Health)
		r.Post("/analyze", h.Analyze)
		r.Post("/analyze/all", h.AnalyzeAll)
	})
	return r
}

// Health reports service liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "push_analytics",
	})
}

// Analyze returns the best product and its push notification for the client.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	resp, err := h.analyzer.Analyze(r.Context(), req)
	if err != nil {
		sendAnalyzeError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, resp)
}

// AnalyzeAll returns the full scored catalog for the client, best first.
func (h *Handler) AnalyzeAll(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	resp, err := h.analyzer.AnalyzeAll(r.Context(), req)
	if err != nil {
		sendAnalyzeError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, resp)
}

func decodeRequest(w http.ResponseWriter, r *http.Request) (*models.AnalyzeRequest, bool) {
	var req models.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "failed to parse request body: "+err.Error())
		return nil, false
	}
	return &req, true
}

func sendAnalyzeError(w http.ResponseWriter, err error) {
	if errors.Is(err, models.ErrMissingField) || errors.Is(err, models.ErrNegativeAmount) {
		sendError(w, http.StatusBadRequest, err.Error())
		return
	}
	log.Printf("Analyze request failed: %v", err)
	sendError(w, http.StatusInternalServerError, "internal error")
}

func sendError(w http.ResponseWriter, status int, message string) {
	sendJSON(w, status, map[string]string{"error": message})
}

func sendJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}
