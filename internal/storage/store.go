package storage

import (
	"context"
	"encoding/json"
	"time"
)

// Default TTLs per key namespace; config falls back to these when the env
// omits an override. Fortune results are recomputed twice a day; API key
// records live for their full issuance period.
const (
	TTLFortune = 12 * time.Hour
	TTLAPIKey  = 30 * 24 * time.Hour
)

// Stats describes the current shape of a store. ExpiredEntries counts entries
// past their expiry that no sweep has removed yet; diagnostic only.
type Stats struct {
	TotalEntries      int   `json:"totalEntries"`
	ExpiredEntries    int   `json:"expiredEntries"`
	ApproxMemoryBytes int64 `json:"approximateMemoryUsage"`
}

// Store is a key-value cache with per-entry expiry. Values are stored as
// JSON; Get returns the exact bytes a previous Set produced. An expired
// entry is logically absent even before a sweep removes it.
type Store interface {
	// Get returns the cached value for key, or found=false when the key is
	// absent or expired.
	Get(ctx context.Context, key string) (value json.RawMessage, found bool, err error)

	// Set stores value under key, unconditionally replacing any previous
	// entry and its expiry.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes an entry.
	Delete(ctx context.Context, key string) error

	// Sweep removes all expired entries and returns how many were removed.
	Sweep(ctx context.Context) int

	// Stats reports entry counts and approximate memory usage.
	Stats(ctx context.Context) Stats
}
