package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/alllucky/server/internal/apikey"
	"github.com/alllucky/server/pkg/logger"
)

// limiterRegistry holds one token bucket per API key, parameterized by the
// key record's own rate limit.
type limiterRegistry struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func newLimiterRegistry() *limiterRegistry {
	return &limiterRegistry{limiters: make(map[string]*rate.Limiter)}
}

// get returns the limiter for a key, creating it on first use. The bucket
// refills at maxRequests per window with a burst of maxRequests.
func (reg *limiterRegistry) get(record apikey.Record) *rate.Limiter {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if lim, ok := reg.limiters[record.Key]; ok {
		return lim
	}

	window := time.Duration(record.RateLimit.WindowMs) * time.Millisecond
	maxReqs := record.RateLimit.MaxRequests
	if window <= 0 || maxReqs <= 0 {
		// Records without a usable limit fall back to 60/min.
		window = time.Minute
		maxReqs = 60
	}

	lim := rate.NewLimiter(rate.Every(window/time.Duration(maxReqs)), maxReqs)
	reg.limiters[record.Key] = lim
	return lim
}

// authMiddleware validates the X-API-Key header against issued key records
// and throttles per key.
func authMiddleware(keys *apikey.Service, limiters *limiterRegistry, log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("X-API-Key")
			if key == "" {
				unauthorized(w, "Missing API key")
				return
			}

			record, err := keys.Validate(r.Context(), key, r.Header.Get("Origin"))
			if err != nil {
				switch {
				case errors.Is(err, apikey.ErrOriginNotAllowed):
					forbidden(w, "Origin not allowed")
				case errors.Is(err, apikey.ErrKeyNotFound),
					errors.Is(err, apikey.ErrKeyInactive),
					errors.Is(err, apikey.ErrKeyExpired):
					unauthorized(w, "Invalid API key")
				default:
					log.WithError(err).Error("API key validation failed")
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{"error": "Internal server error"})
				}
				return
			}

			if !limiters.get(record).Allow() {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]string{
					"error": "Rate limit exceeded",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{
		"error":   "Unauthorized",
		"message": message,
	})
}

func forbidden(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	json.NewEncoder(w).Encode(map[string]string{
		"error":   "Forbidden",
		"message": message,
	})
}
