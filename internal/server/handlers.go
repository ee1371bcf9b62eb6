package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/productfinder/backend/apimodels"
	"github.com/productfinder/backend/internal/analyzer"
	"github.com/productfinder/backend/internal/chat"
	"github.com/productfinder/backend/internal/metrics"
)

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	// Allow some slack over the image limit for multipart framing.
	r.Body = http.MaxBytesReader(w, r.Body, analyzer.MaxImageBytes+64*1024)

	file, header, err := r.FormFile("image")
	if err != nil {
		metrics.RequestsTotal.WithLabelValues("analyze", "bad_request").Inc()
		writeError(w, http.StatusBadRequest, "No image provided")
		return
	}
	defer file.Close()

	imageData, err := io.ReadAll(file)
	if err != nil {
		metrics.RequestsTotal.WithLabelValues("analyze", "bad_request").Inc()
		writeError(w, http.StatusBadRequest, "Could not read image")
		return
	}

	result, err := s.analyzer.Analyze(r.Context(), imageData, header.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, analyzer.ErrInvalidImage) {
			metrics.RequestsTotal.WithLabelValues("analyze", "bad_request").Inc()
			writeError(w, http.StatusBadRequest, "Invalid image file")
			return
		}
		slog.Error("analysis request failed", "error", err)
		metrics.RequestsTotal.WithLabelValues("analyze", "upstream_error").Inc()
		writeError(w, http.StatusInternalServerError, "Analysis failed, please try again")
		return
	}

	metrics.RequestsTotal.WithLabelValues("analyze", "ok").Inc()
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req apimodels.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.RequestsTotal.WithLabelValues("chat", "bad_request").Inc()
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.Message) == "" {
		metrics.RequestsTotal.WithLabelValues("chat", "bad_request").Inc()
		writeError(w, http.StatusBadRequest, "No message provided")
		return
	}

	reply, err := s.relay.Reply(r.Context(), req.Message, req.Context, req.Image)
	if err != nil {
		if errors.Is(err, chat.ErrEmptyMessage) {
			metrics.RequestsTotal.WithLabelValues("chat", "bad_request").Inc()
			writeError(w, http.StatusBadRequest, "No message provided")
			return
		}
		slog.Error("chat request failed", "error", err)
		metrics.RequestsTotal.WithLabelValues("chat", "upstream_error").Inc()
		writeError(w, http.StatusInternalServerError, "Chat service unavailable")
		return
	}

	metrics.RequestsTotal.WithLabelValues("chat", "ok").Inc()
	writeJSON(w, http.StatusOK, apimodels.ChatResponse{Reply: reply})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, apimodels.ErrorResponse{Error: message})
}
