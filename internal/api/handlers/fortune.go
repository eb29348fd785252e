package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/alllucky/server/internal/calendar"
	"github.com/alllucky/server/internal/fortune"
	"github.com/alllucky/server/pkg/logger"
)

// FortuneHandler handles fortune API endpoints.
type FortuneHandler struct {
	svc    *fortune.Service
	logger *logger.Logger
}

// NewFortuneHandler creates a new fortune handler.
func NewFortuneHandler(svc *fortune.Service, log *logger.Logger) *FortuneHandler {
	return &FortuneHandler{svc: svc, logger: log}
}

// GetDaily returns all four scores for a date.
// GET /api/v1/fortune/daily/{date}?zodiac=dragon&constellation=leo
func (h *FortuneHandler) GetDaily(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, fortune.FacetDaily)
}

// GetStudy returns the study projection.
// GET /api/v1/fortune/study/{date}
func (h *FortuneHandler) GetStudy(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, fortune.FacetStudy)
}

// GetCareer returns the career projection.
// GET /api/v1/fortune/career/{date}
func (h *FortuneHandler) GetCareer(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, fortune.FacetCareer)
}

// GetLove returns the love projection.
// GET /api/v1/fortune/love/{date}
func (h *FortuneHandler) GetLove(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, fortune.FacetLove)
}

func (h *FortuneHandler) serve(w http.ResponseWriter, r *http.Request, facet fortune.Facet) {
	ctx := r.Context()
	date := mux.Vars(r)["date"]

	if !validDate(date) {
		respondError(w, http.StatusBadRequest, "Date must be a valid YYYY-MM-DD date")
		return
	}

	zodiac, ok := zodiacLabel(r.URL.Query().Get("zodiac"))
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid zodiac sign")
		return
	}
	constellation, ok := constellationLabel(r.URL.Query().Get("constellation"))
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid constellation sign")
		return
	}

	raw, err := h.svc.Fortune(ctx, date, zodiac, constellation, facet)
	if err != nil {
		// Conversion failures are a pipeline fault, not caller error: the
		// date already passed input validation, the tables just cannot
		// cover it.
		var convErr *calendar.ConversionError
		if errors.As(err, &convErr) {
			h.logger.WithError(err).WithField("date", date).Warn("Date outside conversion range")
		} else {
			h.logger.WithError(err).WithField("date", date).Error("Failed to compute fortune")
		}
		respondError(w, http.StatusInternalServerError, "Failed to compute fortune")
		return
	}

	respondRaw(w, http.StatusOK, raw)
}
