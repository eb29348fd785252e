package apikey

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alllucky/server/internal/storage"
	"github.com/alllucky/server/pkg/logger"
)

// Validation failures. Callers map these to 401/403 responses.
var (
	ErrKeyNotFound      = errors.New("apikey: key not found")
	ErrKeyInactive      = errors.New("apikey: key deactivated")
	ErrKeyExpired       = errors.New("apikey: key expired")
	ErrOriginNotAllowed = errors.New("apikey: origin not allowed")
)

const keyBytes = 32

// RateLimit bounds request volume for one key.
type RateLimit struct {
	WindowMs    int64 `json:"windowMs"`
	MaxRequests int   `json:"maxRequests"`
}

// Record is an issued API key. It lives in the shared store under the
// apikey: namespace with its own long default TTL.
type Record struct {
	Key            string    `json:"key"`
	CreatedAt      time.Time `json:"createdAt"`
	ExpiresAt      time.Time `json:"expiresAt"`
	IsActive       bool      `json:"isActive"`
	AllowedOrigins []string  `json:"allowedOrigins"`
	RateLimit      RateLimit `json:"rateLimit"`
}

// Service issues and validates API keys.
type Service struct {
	store        storage.Store
	prefix       string
	defaultTTL   time.Duration
	defaultLimit RateLimit
	logger       *logger.Logger
}

// NewService creates a new API key Service.
func NewService(store storage.Store, prefix string, defaultTTL time.Duration, defaultLimit RateLimit, log *logger.Logger) *Service {
	return &Service{
		store:        store,
		prefix:       prefix,
		defaultTTL:   defaultTTL,
		defaultLimit: defaultLimit,
		logger:       log,
	}
}

// storeKey namespaces records away from fortune and almanac entries.
func storeKey(key string) string {
	return "apikey:" + key
}

// Generate issues a new key. A nil rate limit or zero expiry falls back to
// the service defaults.
func (s *Service) Generate(ctx context.Context, allowedOrigins []string, expiresIn time.Duration, limit *RateLimit) (Record, error) {
	raw := make([]byte, keyBytes)
	if _, err := rand.Read(raw); err != nil {
		return Record{}, fmt.Errorf("generate key material: %w", err)
	}

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	if expiresIn <= 0 {
		expiresIn = s.defaultTTL
	}
	effectiveLimit := s.defaultLimit
	if limit != nil {
		effectiveLimit = *limit
	}

	now := time.Now()
	record := Record{
		Key:            s.prefix + hex.EncodeToString(raw),
		CreatedAt:      now,
		ExpiresAt:      now.Add(expiresIn),
		IsActive:       true,
		AllowedOrigins: allowedOrigins,
		RateLimit:      effectiveLimit,
	}

	if err := s.store.Set(ctx, storeKey(record.Key), record, expiresIn); err != nil {
		return Record{}, fmt.Errorf("store key record: %w", err)
	}

	s.logger.WithField("key", record.Key).Info("Issued new API key")
	return record, nil
}

// Validate checks a key and, when origin is non-empty, its origin allowlist.
func (s *Service) Validate(ctx context.Context, key, origin string) (Record, error) {
	record, err := s.load(ctx, key)
	if err != nil {
		return Record{}, err
	}

	if !record.IsActive {
		return Record{}, ErrKeyInactive
	}
	if time.Now().After(record.ExpiresAt) {
		return Record{}, ErrKeyExpired
	}
	if origin != "" && !originAllowed(origin, record.AllowedOrigins) {
		return Record{}, ErrOriginNotAllowed
	}

	return record, nil
}

// Deactivate permanently disables a key, keeping its record until expiry.
func (s *Service) Deactivate(ctx context.Context, key string) error {
	record, err := s.load(ctx, key)
	if err != nil {
		return err
	}

	record.IsActive = false

	remaining := time.Until(record.ExpiresAt)
	if remaining <= 0 {
		return ErrKeyExpired
	}
	if err := s.store.Set(ctx, storeKey(key), record, remaining); err != nil {
		return fmt.Errorf("store key record: %w", err)
	}

	s.logger.WithField("key", key).Info("Deactivated API key")
	return nil
}

func (s *Service) load(ctx context.Context, key string) (Record, error) {
	raw, found, err := s.store.Get(ctx, storeKey(key))
	if err != nil {
		return Record{}, fmt.Errorf("load key record: %w", err)
	}
	if !found {
		return Record{}, ErrKeyNotFound
	}

	var record Record
	if err := json.Unmarshal(raw, &record); err != nil {
		// A malformed record is indistinguishable from a missing one.
		s.logger.WithError(err).WithField("key", key).Warn("Malformed API key record")
		return Record{}, ErrKeyNotFound
	}
	return record, nil
}

func originAllowed(origin string, allowed []string) bool {
	for _, a := range allowed {
		if a == "*" || a == origin {
			return true
		}
	}
	return false
}
