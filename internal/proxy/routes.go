// Package proxy exposes the improvement service over HTTP so that clients
// without provider credentials, such as the browser extension, can polish
// text.
package proxy

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/polishedai/polished/internal/improve"
	"github.com/polishedai/polished/internal/polish"
)

const maxBodyBytes = 1 << 20

// Error bodies returned by the endpoint.
const (
	msgMethodNotAllowed = "Method Not Allowed"
	msgNotConfigured    = "Server Error: no LLM provider configured."
	msgBadBody          = "Request body must be JSON with a text field."
)

// RegisterRoutes mounts the polish API. A nil improver makes every polish
// request fail with 500, matching a deployment without credentials.
func RegisterRoutes(r chi.Router, imp polish.Improver, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	r.HandleFunc(improve.PolishPath, handlePolish(imp, logger))
	r.Get("/api/tones", handleTones)
}

func handlePolish(imp polish.Improver, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", "POST, OPTIONS")
			writeError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
			return
		}

		var req improve.PolishRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, msgBadBody)
			return
		}

		tone := polish.DefaultTone
		if req.Tone != "" {
			t, err := polish.ParseTone(req.Tone.String())
			if err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			tone = t
		}

		if imp == nil {
			writeError(w, http.StatusInternalServerError, msgNotConfigured)
			return
		}

		improved, err := imp.Improve(r.Context(), req.Text, tone)
		if err != nil {
			if errors.Is(err, context.Canceled) && r.Context().Err() != nil {
				// Client went away.
				return
			}
			logger.Warn("polish request failed",
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.String("tone", tone.String()),
				zap.Error(err))
			writeError(w, http.StatusBadGateway, polish.FailureMessage(err))
			return
		}

		writeJSON(w, http.StatusOK, improve.PolishResponse{ImprovedText: &improved})
	}
}

func handleTones(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"tones":   polish.Tones(),
		"default": polish.DefaultTone,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, improve.PolishResponse{Error: msg})
}
