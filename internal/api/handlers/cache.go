package handlers

import (
	"net/http"

	"github.com/alllucky/server/internal/storage"
	"github.com/alllucky/server/pkg/logger"
)

// CacheHandler exposes store diagnostics.
type CacheHandler struct {
	store  storage.Store
	logger *logger.Logger
}

// NewCacheHandler creates a new cache handler.
func NewCacheHandler(store storage.Store, log *logger.Logger) *CacheHandler {
	return &CacheHandler{store: store, logger: log}
}

// GetStats reports entry counts and approximate memory usage.
// GET /api/v1/cache/stats
func (h *CacheHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.Stats(r.Context()))
}
