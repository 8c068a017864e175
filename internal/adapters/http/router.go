package httpadapter

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/contextcart/ragsearch/internal/core/domain"
	"github.com/contextcart/ragsearch/internal/core/ports"
	"github.com/contextcart/ragsearch/internal/observability/metrics"
)

type Router struct {
	service  string
	cleaner  ports.RecordCleaner
	finder   ports.ProductFinder
	embedder ports.TextEmbedder
	metrics  *metrics.HTTPServerMetrics
}

func NewRouter(
	service string,
	cleaner ports.RecordCleaner,
	finder ports.ProductFinder,
	embedder ports.TextEmbedder,
	serverMetrics *metrics.HTTPServerMetrics,
) *Router {
	return &Router{
		service:  service,
		cleaner:  cleaner,
		finder:   finder,
		embedder: embedder,
		metrics:  serverMetrics,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/clean", rt.cleanRecord)
	mux.HandleFunc("/v1/search", rt.searchProducts)
	mux.HandleFunc("/v1/embedding", rt.embedText)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(rt.service, handler)
	}
	return requestIDMiddleware(accessLogMiddleware(handler))
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) cleanRecord(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil || len(raw) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":  "no input data provided",
			"status": "error",
		})
		return
	}

	start := time.Now()
	outcome, err := rt.cleaner.Clean(r.Context(), raw)
	if err != nil {
		rt.recordOperation("clean", "error", start)
		rt.writeCleanError(w, err)
		return
	}

	rt.recordOperation("clean", "success", start)
	if len(outcome.Embedding) == 0 && rt.metrics != nil {
		rt.metrics.RecordEmbeddingDegraded(rt.service, "clean")
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"data":   outcome,
		"status": "success",
	})
}

func (rt *Router) writeCleanError(w http.ResponseWriter, err error) {
	status := mapErrorToHTTPStatus(err)
	payload := map[string]any{
		"error":  "internal server error",
		"status": "error",
	}

	switch {
	case status == http.StatusBadRequest:
		payload["error"] = err.Error()
	case isModelOutputError(err):
		// Diagnostics only: the raw model text is not data and rides in a
		// separate field.
		payload["error"] = "invalid JSON response from model"
		payload["details"] = err.Error()
		payload["response"] = domain.RawModelOutput(err)
	case status == http.StatusServiceUnavailable:
		payload["error"] = "provider request failed"
		payload["details"] = err.Error()
	default:
		payload["details"] = err.Error()
	}

	writeJSON(w, status, payload)
}

func (rt *Router) searchProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		Search  string   `json:"search"`
		Context []string `json:"context"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.Search) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "search query is required"})
		return
	}

	start := time.Now()
	outcome, err := rt.finder.Search(r.Context(), req.Search, req.Context)
	if err != nil {
		rt.recordOperation("search", "error", start)
		rt.writeSearchError(w, err)
		return
	}

	rt.recordOperation("search", "success", start)
	if rt.metrics != nil {
		rt.metrics.RecordRankedProducts(rt.service, len(outcome.Products))
	}
	writeJSON(w, http.StatusOK, outcome)
}

func (rt *Router) writeSearchError(w http.ResponseWriter, err error) {
	status := mapErrorToHTTPStatus(err)

	if isModelOutputError(err) {
		writeJSON(w, status, map[string]any{
			"error":    "invalid JSON response from model",
			"details":  err.Error(),
			"response": domain.RawModelOutput(err),
		})
		return
	}

	payload := map[string]any{"error": "search failed", "details": err.Error()}
	if status == http.StatusBadRequest {
		payload = map[string]any{"error": err.Error()}
	}
	writeJSON(w, status, payload)
}

func (rt *Router) embedText(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no data provided"})
		return
	}

	start := time.Now()
	embedding := rt.embedder.Embed(r.Context(), req.Text)
	if len(embedding) == 0 {
		rt.recordOperation("embedding", "error", start)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to generate embeddings"})
		return
	}

	rt.recordOperation("embedding", "success", start)
	writeJSON(w, http.StatusOK, map[string]any{"embedding": embedding})
}

func (rt *Router) recordOperation(operation, status string, start time.Time) {
	if rt.metrics == nil {
		return
	}
	rt.metrics.RecordPipelineOperation(rt.service, operation, status, time.Since(start))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
