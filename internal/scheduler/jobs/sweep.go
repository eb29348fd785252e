package jobs

import (
	"context"
	"time"

	"github.com/alllucky/server/internal/storage"
	"github.com/alllucky/server/pkg/logger"
)

// CacheSweepJob removes expired entries from the cache store.
type CacheSweepJob struct {
	store    storage.Store
	interval time.Duration
	logger   *logger.Logger
}

// NewCacheSweepJob creates a new cache sweep job. A non-positive interval
// falls back to one minute.
func NewCacheSweepJob(store storage.Store, interval time.Duration, log *logger.Logger) *CacheSweepJob {
	if interval <= 0 {
		interval = time.Minute
	}
	return &CacheSweepJob{
		store:    store,
		interval: interval,
		logger:   log,
	}
}

// Name returns the job name
func (j *CacheSweepJob) Name() string {
	return "cache_sweep"
}

// Schedule returns the cron schedule
func (j *CacheSweepJob) Schedule() string {
	return "@every " + j.interval.String()
}

// Run executes the cache sweep
func (j *CacheSweepJob) Run(ctx context.Context) error {
	count := j.store.Sweep(ctx)

	if count > 0 {
		j.logger.WithField("removed", count).Info("Cache sweep completed")
	}

	return nil
}
