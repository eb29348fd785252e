package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/alllucky/server/internal/apikey"
	"github.com/alllucky/server/pkg/logger"
)

// KeyHandler handles API key management endpoints.
type KeyHandler struct {
	svc    *apikey.Service
	logger *logger.Logger
}

// NewKeyHandler creates a new key handler.
func NewKeyHandler(svc *apikey.Service, log *logger.Logger) *KeyHandler {
	return &KeyHandler{svc: svc, logger: log}
}

// IssueRequest describes a key issuance request.
type IssueRequest struct {
	AllowedOrigins []string          `json:"allowedOrigins"`
	ExpiresInMs    int64             `json:"expiresInMs"`
	RateLimit      *apikey.RateLimit `json:"rateLimit"`
}

// Issue creates a new API key.
// POST /api/v1/keys
func (h *KeyHandler) Issue(w http.ResponseWriter, r *http.Request) {
	var req IssueRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	record, err := h.svc.Generate(
		r.Context(),
		req.AllowedOrigins,
		time.Duration(req.ExpiresInMs)*time.Millisecond,
		req.RateLimit,
	)
	if err != nil {
		h.logger.WithError(err).Error("Failed to issue API key")
		respondError(w, http.StatusInternalServerError, "Failed to issue API key")
		return
	}

	respondJSON(w, http.StatusCreated, record)
}

// Deactivate disables an issued key.
// DELETE /api/v1/keys/{key}
func (h *KeyHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	err := h.svc.Deactivate(r.Context(), key)
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, map[string]string{"status": "deactivated"})
	case errors.Is(err, apikey.ErrKeyNotFound), errors.Is(err, apikey.ErrKeyExpired):
		respondError(w, http.StatusNotFound, "Unknown API key")
	default:
		h.logger.WithError(err).Error("Failed to deactivate API key")
		respondError(w, http.StatusInternalServerError, "Failed to deactivate API key")
	}
}
