package apikey

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alllucky/server/internal/storage"
	"github.com/alllucky/server/pkg/logger"
)

func newTestService() (*Service, *storage.MemoryStore) {
	store := storage.NewMemoryStore()
	svc := NewService(store, "lucky_", storage.TTLAPIKey,
		RateLimit{WindowMs: 60_000, MaxRequests: 60}, logger.NewNop())
	return svc, store
}

func TestGenerateAndValidate(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	record, err := svc.Generate(ctx, nil, 0, nil)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if !strings.HasPrefix(record.Key, "lucky_") {
		t.Errorf("key %s missing prefix", record.Key)
	}
	if len(record.Key) != len("lucky_")+64 {
		t.Errorf("key length = %d, want prefix + 64 hex chars", len(record.Key))
	}
	if !record.IsActive {
		t.Error("new key should be active")
	}
	if record.RateLimit.MaxRequests != 60 {
		t.Errorf("rate limit = %+v, want default", record.RateLimit)
	}
	if got := record.ExpiresAt.Sub(record.CreatedAt); got != storage.TTLAPIKey {
		t.Errorf("expiry window = %s, want %s", got, storage.TTLAPIKey)
	}

	// Record lives under the apikey: namespace.
	if _, found, _ := store.Get(ctx, "apikey:"+record.Key); !found {
		t.Error("record not stored under apikey: namespace")
	}

	validated, err := svc.Validate(ctx, record.Key, "")
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if validated.Key != record.Key {
		t.Errorf("validated key %s != issued %s", validated.Key, record.Key)
	}
}

func TestValidateUnknownKey(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Validate(context.Background(), "lucky_nope", "")
	if !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestValidateExpiredKey(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	record, err := svc.Generate(ctx, nil, time.Hour, nil)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// Rewrite the record as logically expired while still cached.
	record.ExpiresAt = time.Now().Add(-time.Minute)
	_ = store.Set(ctx, "apikey:"+record.Key, record, time.Hour)

	if _, err := svc.Validate(ctx, record.Key, ""); !errors.Is(err, ErrKeyExpired) {
		t.Errorf("expected ErrKeyExpired, got %v", err)
	}
}

func TestDeactivate(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	record, err := svc.Generate(ctx, nil, 0, nil)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if err := svc.Deactivate(ctx, record.Key); err != nil {
		t.Fatalf("Deactivate failed: %v", err)
	}

	if _, err := svc.Validate(ctx, record.Key, ""); !errors.Is(err, ErrKeyInactive) {
		t.Errorf("expected ErrKeyInactive, got %v", err)
	}
}

func TestOriginAllowlist(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	record, err := svc.Generate(ctx, []string{"https://app.example.com"}, 0, nil)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := svc.Validate(ctx, record.Key, "https://app.example.com"); err != nil {
		t.Errorf("allowed origin rejected: %v", err)
	}
	if _, err := svc.Validate(ctx, record.Key, "https://evil.example.com"); !errors.Is(err, ErrOriginNotAllowed) {
		t.Errorf("expected ErrOriginNotAllowed, got %v", err)
	}
	// Requests without an origin skip the check.
	if _, err := svc.Validate(ctx, record.Key, ""); err != nil {
		t.Errorf("origin-less request rejected: %v", err)
	}
}

func TestCustomRateLimit(t *testing.T) {
	svc, _ := newTestService()

	limit := RateLimit{WindowMs: 1000, MaxRequests: 5}
	record, err := svc.Generate(context.Background(), nil, 0, &limit)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if record.RateLimit != limit {
		t.Errorf("rate limit = %+v, want %+v", record.RateLimit, limit)
	}
}
