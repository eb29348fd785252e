package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/alllucky/server/internal/api/handlers"
	"github.com/alllucky/server/internal/apikey"
	"github.com/alllucky/server/pkg/logger"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(
	fortuneHandler *handlers.FortuneHandler,
	almanacHandler *handlers.AlmanacHandler,
	keyHandler *handlers.KeyHandler,
	cacheHandler *handlers.CacheHandler,
	keys *apikey.Service,
	log *logger.Logger,
) http.Handler {
	r := mux.NewRouter()

	// Health check (unauthenticated)
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	// API v1 behind API key auth + per-key rate limiting
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(authMiddleware(keys, newLimiterRegistry(), log))

	// Fortune endpoints
	api.HandleFunc("/fortune/daily/{date}", fortuneHandler.GetDaily).Methods("GET")
	api.HandleFunc("/fortune/study/{date}", fortuneHandler.GetStudy).Methods("GET")
	api.HandleFunc("/fortune/career/{date}", fortuneHandler.GetCareer).Methods("GET")
	api.HandleFunc("/fortune/love/{date}", fortuneHandler.GetLove).Methods("GET")

	// Almanac endpoints
	api.HandleFunc("/almanac/daily/{date}", almanacHandler.GetDaily).Methods("GET")
	api.HandleFunc("/almanac/month/{year}/{month}", almanacHandler.GetMonthly).Methods("GET")
	api.HandleFunc("/almanac/terms/{year}", almanacHandler.GetSolarTerms).Methods("GET")
	api.HandleFunc("/almanac/lunar/{date}", almanacHandler.GetLunarDate).Methods("GET")

	// Key management
	api.HandleFunc("/keys", keyHandler.Issue).Methods("POST")
	api.HandleFunc("/keys/{key}", keyHandler.Deactivate).Methods("DELETE")

	// Cache diagnostics
	api.HandleFunc("/cache/stats", cacheHandler.GetStats).Methods("GET")

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status.
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "ok",
		"service":   "all-lucky-api",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// loggingMiddleware logs HTTP requests.
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics.
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
