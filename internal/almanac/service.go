package almanac

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alllucky/server/internal/calendar"
	"github.com/alllucky/server/internal/storage"
	"github.com/alllucky/server/pkg/logger"
)

// Daily is one day's almanac record.
type Daily struct {
	Date       string   `json:"date"`
	LunarDate  string   `json:"lunar_date"`
	Zodiac     string   `json:"zodiac"`
	StemBranch string   `json:"stem_branch"`
	Suitable   []string `json:"suitable"`
	Unsuitable []string `json:"unsuitable"`
}

// Monthly is a month of almanac records.
type Monthly struct {
	Year  int     `json:"year"`
	Month int     `json:"month"`
	Days  []Daily `json:"days"`
}

// SolarTerms lists a year's solar term boundaries.
type SolarTerms struct {
	Year  int        `json:"year"`
	Terms []TermDate `json:"terms"`
}

// TermDate is one solar term with its Gregorian date.
type TermDate struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

// LunarDate is a standalone lunar conversion result.
type LunarDate struct {
	SolarDate  string `json:"solar_date"`
	LunarDate  string `json:"lunar_date"`
	Zodiac     string `json:"zodiac"`
	StemBranch string `json:"stem_branch"`
}

// Service computes almanac records, sharing the calendar adapter with the
// fortune pipeline and memoizing through the same store.
type Service struct {
	conv   *calendar.Converter
	store  storage.Store
	ttl    time.Duration
	logger *logger.Logger
}

// NewService creates a new almanac Service.
func NewService(conv *calendar.Converter, store storage.Store, ttl time.Duration, log *logger.Logger) *Service {
	return &Service{
		conv:   conv,
		store:  store,
		ttl:    ttl,
		logger: log,
	}
}

// Daily returns the almanac for one date.
func (s *Service) Daily(ctx context.Context, date string) (Daily, error) {
	var out Daily
	key := "almanac:daily:" + date

	if s.getCached(ctx, key, &out) {
		return out, nil
	}

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return Daily{}, fmt.Errorf("invalid date %q: %w", date, err)
	}

	out, err = s.build(day, date)
	if err != nil {
		return Daily{}, err
	}

	s.setCached(ctx, key, out)
	return out, nil
}

// Monthly returns almanac records for every day of a month.
func (s *Service) Monthly(ctx context.Context, year, month int) (Monthly, error) {
	var out Monthly
	key := fmt.Sprintf("almanac:month:%04d-%02d", year, month)

	if s.getCached(ctx, key, &out) {
		return out, nil
	}

	out = Monthly{Year: year, Month: month}
	day := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	for day.Month() == time.Month(month) {
		date := day.Format("2006-01-02")
		rec, err := s.build(day, date)
		if err != nil {
			return Monthly{}, err
		}
		out.Days = append(out.Days, rec)
		day = day.AddDate(0, 0, 1)
	}

	s.setCached(ctx, key, out)
	return out, nil
}

// SolarTerms returns the year's 24 solar terms. The underlying computation
// scans the whole year, so results are always cached.
func (s *Service) SolarTerms(ctx context.Context, year int) (SolarTerms, error) {
	var out SolarTerms
	key := fmt.Sprintf("almanac:terms:%04d", year)

	if s.getCached(ctx, key, &out) {
		return out, nil
	}

	terms, err := s.conv.AllSolarTerms(year)
	if err != nil {
		return SolarTerms{}, err
	}

	out = SolarTerms{Year: year, Terms: make([]TermDate, 0, len(terms))}
	for _, t := range terms {
		out.Terms = append(out.Terms, TermDate{Name: t.Name, Date: t.Date.Format("2006-01-02")})
	}

	s.setCached(ctx, key, out)
	return out, nil
}

// LunarDate converts one Gregorian date.
func (s *Service) LunarDate(_ context.Context, date string) (LunarDate, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return LunarDate{}, fmt.Errorf("invalid date %q: %w", date, err)
	}

	lunar, err := s.conv.ToLunar(day)
	if err != nil {
		return LunarDate{}, err
	}

	return LunarDate{
		SolarDate:  date,
		LunarDate:  lunar.Format(),
		Zodiac:     calendar.Zodiac(lunar.Year),
		StemBranch: calendar.StemBranch(lunar.Year),
	}, nil
}

// build assembles one day's record from the activity tables.
func (s *Service) build(day time.Time, date string) (Daily, error) {
	lunar, err := s.conv.ToLunar(day)
	if err != nil {
		return Daily{}, err
	}

	suitable := append([]string{}, suitableByLunarDay[lunar.Day]...)
	unsuitable := append([]string{}, unsuitableByLunarDay[lunar.Day]...)

	if term, ok := s.conv.SolarTermOf(day); ok {
		suitable = append(suitable, "祭祀")
		suitable = append(suitable, suitableBySolarTerm[term]...)
		unsuitable = append(unsuitable, unsuitableBySolarTerm[term]...)
	}

	return Daily{
		Date:       date,
		LunarDate:  lunar.Format(),
		Zodiac:     calendar.Zodiac(lunar.Year),
		StemBranch: calendar.StemBranch(lunar.Year),
		Suitable:   dedup(suitable),
		Unsuitable: dedup(unsuitable),
	}, nil
}

// getCached loads key into dest, reporting whether it was present.
func (s *Service) getCached(ctx context.Context, key string, dest interface{}) bool {
	raw, found, err := s.store.Get(ctx, key)
	if err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("Almanac cache read failed")
		return false
	}
	if !found {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		// Malformed entries degrade to recompute.
		s.logger.WithError(err).WithField("key", key).Warn("Almanac cache entry malformed")
		return false
	}
	return true
}

func (s *Service) setCached(ctx context.Context, key string, value interface{}) {
	if err := s.store.Set(ctx, key, value, s.ttl); err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("Almanac cache write failed")
	}
}

// dedup removes repeated activities, keeping first-seen order.
func dedup(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
