package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/alllucky/server/internal/almanac"
	"github.com/alllucky/server/internal/calendar"
	"github.com/alllucky/server/pkg/logger"
)

// AlmanacHandler handles almanac (黃曆) API endpoints.
type AlmanacHandler struct {
	svc    *almanac.Service
	logger *logger.Logger
}

// NewAlmanacHandler creates a new almanac handler.
func NewAlmanacHandler(svc *almanac.Service, log *logger.Logger) *AlmanacHandler {
	return &AlmanacHandler{svc: svc, logger: log}
}

// GetDaily returns one day's almanac.
// GET /api/v1/almanac/daily/{date}
func (h *AlmanacHandler) GetDaily(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]
	if !validDate(date) {
		respondError(w, http.StatusBadRequest, "Date must be a valid YYYY-MM-DD date")
		return
	}

	record, err := h.svc.Daily(r.Context(), date)
	if err != nil {
		h.fail(w, err, date)
		return
	}

	respondJSON(w, http.StatusOK, record)
}

// GetMonthly returns a month of almanac records.
// GET /api/v1/almanac/month/{year}/{month}
func (h *AlmanacHandler) GetMonthly(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	year, errY := strconv.Atoi(vars["year"])
	month, errM := strconv.Atoi(vars["month"])
	if errY != nil || errM != nil || !validYearMonth(year, month) {
		respondError(w, http.StatusBadRequest, "Year must be 1900-2100 and month 1-12")
		return
	}

	records, err := h.svc.Monthly(r.Context(), year, month)
	if err != nil {
		h.fail(w, err, vars["year"]+"-"+vars["month"])
		return
	}

	respondJSON(w, http.StatusOK, records)
}

// GetSolarTerms returns a year's 24 solar terms.
// GET /api/v1/almanac/terms/{year}
func (h *AlmanacHandler) GetSolarTerms(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(mux.Vars(r)["year"])
	if err != nil || !validYearMonth(year, 1) {
		respondError(w, http.StatusBadRequest, "Year must be 1900-2100")
		return
	}

	terms, err := h.svc.SolarTerms(r.Context(), year)
	if err != nil {
		h.fail(w, err, mux.Vars(r)["year"])
		return
	}

	respondJSON(w, http.StatusOK, terms)
}

// GetLunarDate converts one Gregorian date.
// GET /api/v1/almanac/lunar/{date}
func (h *AlmanacHandler) GetLunarDate(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]
	if !validDate(date) {
		respondError(w, http.StatusBadRequest, "Date must be a valid YYYY-MM-DD date")
		return
	}

	lunar, err := h.svc.LunarDate(r.Context(), date)
	if err != nil {
		h.fail(w, err, date)
		return
	}

	respondJSON(w, http.StatusOK, lunar)
}

func (h *AlmanacHandler) fail(w http.ResponseWriter, err error, subject string) {
	// Conversion failures are a pipeline fault, not caller error.
	var convErr *calendar.ConversionError
	if errors.As(err, &convErr) {
		h.logger.WithError(err).WithField("subject", subject).Warn("Date outside conversion range")
	} else {
		h.logger.WithError(err).WithField("subject", subject).Error("Failed to compute almanac")
	}
	respondError(w, http.StatusInternalServerError, "Failed to compute almanac")
}
