package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/alllucky/server/internal/almanac"
	"github.com/alllucky/server/internal/calendar"
	"github.com/alllucky/server/internal/storage"
	"github.com/alllucky/server/pkg/logger"
)

func newAlmanacService(store storage.Store, log *logger.Logger) *almanac.Service {
	return almanac.NewService(calendar.NewConverter(), store, time.Hour, log)
}

func TestCacheSweepJob(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	if err := store.Set(ctx, "fortune:daily:2024-02-04::", map[string]int{"overall": 66}, -time.Second); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Set(ctx, "fortune:daily:2024-02-05::", map[string]int{"overall": 70}, time.Hour); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	job := NewCacheSweepJob(store, time.Minute, logger.NewNop())

	if got := job.Name(); got != "cache_sweep" {
		t.Errorf("unexpected job name %q", got)
	}
	if got := job.Schedule(); got != "@every 1m0s" {
		t.Errorf("unexpected schedule %q", got)
	}
	if err := job.Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	stats := store.Stats(ctx)
	if stats.TotalEntries != 1 {
		t.Errorf("expected 1 entry after sweep, got %d", stats.TotalEntries)
	}
}

func TestTermWarmupJob(t *testing.T) {
	store := storage.NewMemoryStore()
	log := logger.NewNop()

	// Warmup runs against the real almanac service wired over the store.
	svc := newAlmanacService(store, log)
	job := NewTermWarmupJob(svc, log)

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// The listing for the current year is now cached.
	stats := store.Stats(context.Background())
	if stats.TotalEntries != 1 {
		t.Errorf("expected 1 cached listing, got %d", stats.TotalEntries)
	}
}
