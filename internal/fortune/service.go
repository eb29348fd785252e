package fortune

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alllucky/server/internal/calendar"
	"github.com/alllucky/server/internal/storage"
	"github.com/alllucky/server/pkg/logger"
)

// Service is the fortune orchestrator: it assembles Factors from the
// calendar adapter, memoizes calculator results through the TTL store, and
// projects single facets.
type Service struct {
	conv   *calendar.Converter
	calc   *Calculator
	store  storage.Store
	ttl    time.Duration
	logger *logger.Logger
}

// NewService creates a new fortune Service.
func NewService(conv *calendar.Converter, calc *Calculator, store storage.Store, ttl time.Duration, log *logger.Logger) *Service {
	return &Service{
		conv:   conv,
		calc:   calc,
		store:  store,
		ttl:    ttl,
		logger: log,
	}
}

// CacheKey builds the store key for one request. The facet, date, zodiac and
// constellation are all part of the key so distinct combinations never
// collide; the ordering is a fixed contract other components key-predict on.
func CacheKey(facet Facet, date, zodiac, constellation string) string {
	return fmt.Sprintf("fortune:%s:%s:%s:%s", facet, date, zodiac, constellation)
}

// Fortune returns the scored result for a date as raw JSON: the full Score
// for FacetDaily, or a single-field projection like {"study": 72}. Cached
// values come back byte-identical; the cached value for each facet is
// independent of every other facet's. Unrecognized zodiac or constellation
// labels score neutral. The only failure is the calendar adapter's
// ConversionError.
func (s *Service) Fortune(ctx context.Context, date, zodiac, constellation string, facet Facet) (json.RawMessage, error) {
	if !facet.Valid() {
		return nil, fmt.Errorf("unknown facet %q", facet)
	}

	key := CacheKey(facet, date, zodiac, constellation)

	cached, found, err := s.store.Get(ctx, key)
	if err != nil {
		// Malformed cache reads degrade to recompute.
		s.logger.WithError(err).WithField("key", key).Warn("Fortune cache read failed")
	}
	if found {
		s.logger.WithField("key", key).Debug("Fortune cache hit")
		return cached, nil
	}

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	factors, err := s.buildFactors(day, date, zodiac, constellation)
	if err != nil {
		return nil, err
	}

	score := s.calc.Calculate(factors)

	var payload interface{}
	if facet == FacetDaily {
		payload = score
	} else {
		payload = map[string]int{string(facet): score.Field(facet)}
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal fortune: %w", err)
	}

	// Cache exactly what is returned, so repeat calls are byte-identical.
	if err := s.store.Set(ctx, key, json.RawMessage(raw), s.ttl); err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("Fortune cache write failed")
	}

	return raw, nil
}

// buildFactors resolves the solar term and lunar day for a date and folds in
// the caller-supplied zodiac and constellation.
func (s *Service) buildFactors(day time.Time, date, zodiac, constellation string) (Factors, error) {
	lunar, err := s.conv.ToLunar(day)
	if err != nil {
		return Factors{}, err
	}

	term, _ := s.conv.SolarTermOf(day)

	return Factors{
		Date:          date,
		SolarTerm:     term,
		Weekday:       int(day.Weekday()),
		LunarDay:      lunar.Day,
		Zodiac:        zodiac,
		Constellation: constellation,
	}, nil
}
