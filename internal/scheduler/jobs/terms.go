package jobs

import (
	"context"
	"time"

	"github.com/alllucky/server/internal/almanac"
	"github.com/alllucky/server/pkg/logger"
)

// TermWarmupJob precomputes the solar term listing for the current year
// so the first request after a cache sweep does not pay the scan cost.
type TermWarmupJob struct {
	almanac *almanac.Service
	logger  *logger.Logger
}

// NewTermWarmupJob creates a new solar term warmup job
func NewTermWarmupJob(svc *almanac.Service, log *logger.Logger) *TermWarmupJob {
	return &TermWarmupJob{
		almanac: svc,
		logger:  log,
	}
}

// Name returns the job name
func (j *TermWarmupJob) Name() string {
	return "term_warmup"
}

// Schedule returns the cron schedule (daily at 03:30)
func (j *TermWarmupJob) Schedule() string {
	return "0 30 3 * * *"
}

// Run precomputes the current year's solar terms
func (j *TermWarmupJob) Run(ctx context.Context) error {
	year := time.Now().UTC().Year()

	terms, err := j.almanac.SolarTerms(ctx, year)
	if err != nil {
		return err
	}

	j.logger.WithFields(map[string]interface{}{
		"year":  year,
		"terms": len(terms.Terms),
	}).Debug("Solar term warmup completed")

	return nil
}
