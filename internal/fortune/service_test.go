package fortune

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/alllucky/server/internal/calendar"
	"github.com/alllucky/server/internal/storage"
	"github.com/alllucky/server/pkg/logger"
)

func newTestService() (*Service, *storage.MemoryStore) {
	store := storage.NewMemoryStore()
	svc := NewService(calendar.NewConverter(), NewCalculator(), store, storage.TTLFortune, logger.NewNop())
	return svc, store
}

func TestCacheKeyLayout(t *testing.T) {
	got := CacheKey(FacetStudy, "2024-02-04", "龍", "獅子座")
	want := "fortune:study:2024-02-04:龍:獅子座"
	if got != want {
		t.Errorf("CacheKey = %q, want %q", got, want)
	}
}

func TestFortuneMemoization(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	first, err := svc.Fortune(ctx, "2024-02-04", "龍", "獅子座", FacetDaily)
	if err != nil {
		t.Fatalf("Fortune failed: %v", err)
	}

	// The returned payload is exactly what was cached.
	cached, found, _ := store.Get(ctx, CacheKey(FacetDaily, "2024-02-04", "龍", "獅子座"))
	if !found {
		t.Fatal("expected cache entry after first call")
	}
	if !bytes.Equal(first, cached) {
		t.Error("cached payload differs from returned payload")
	}

	second, err := svc.Fortune(ctx, "2024-02-04", "龍", "獅子座", FacetDaily)
	if err != nil {
		t.Fatalf("Fortune failed: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("repeat call not byte-identical:\n%s\n%s", first, second)
	}
}

func TestFacetProjection(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	raw, err := svc.Fortune(ctx, "2024-02-04", "龍", "獅子座", FacetStudy)
	if err != nil {
		t.Fatalf("Fortune failed: %v", err)
	}

	var projection map[string]int
	if err := json.Unmarshal(raw, &projection); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(projection) != 1 {
		t.Errorf("expected single-field projection, got %v", projection)
	}
	score, ok := projection["study"]
	if !ok {
		t.Fatalf("expected study field, got %v", projection)
	}
	if score < 0 || score > 100 {
		t.Errorf("study = %d, outside [0,100]", score)
	}
}

func TestFacetCacheIsolation(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	if _, err := svc.Fortune(ctx, "2024-02-04", "龍", "獅子座", FacetDaily); err != nil {
		t.Fatalf("Fortune daily failed: %v", err)
	}
	if _, err := svc.Fortune(ctx, "2024-02-04", "龍", "獅子座", FacetStudy); err != nil {
		t.Fatalf("Fortune study failed: %v", err)
	}

	dailyKey := CacheKey(FacetDaily, "2024-02-04", "龍", "獅子座")
	studyKey := CacheKey(FacetStudy, "2024-02-04", "龍", "獅子座")

	// Two independent entries.
	if _, found, _ := store.Get(ctx, dailyKey); !found {
		t.Error("daily entry missing")
	}
	if _, found, _ := store.Get(ctx, studyKey); !found {
		t.Error("study entry missing")
	}

	// Clobbering the study entry leaves daily untouched.
	_ = store.Set(ctx, studyKey, map[string]int{"study": 1}, storage.TTLFortune)
	raw, _, _ := store.Get(ctx, dailyKey)
	var daily Score
	if err := json.Unmarshal(raw, &daily); err != nil {
		t.Fatalf("daily entry corrupted: %v", err)
	}
	if daily.Overall == 1 {
		t.Error("daily entry affected by study write")
	}
}

func TestFortuneEndToEnd(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	// 2024-02-04 is 立春 and a Sunday; the adapter supplies lunar day 25.
	raw, err := svc.Fortune(ctx, "2024-02-04", "龍", "獅子座", FacetDaily)
	if err != nil {
		t.Fatalf("Fortune failed: %v", err)
	}

	var score Score
	if err := json.Unmarshal(raw, &score); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	for name, v := range map[string]int{
		"overall": score.Overall, "study": score.Study, "career": score.Career, "love": score.Love,
	} {
		if v < 0 || v > 100 {
			t.Errorf("%s = %d, outside [0,100]", name, v)
		}
	}

	// The same factors with the solar term absent must score strictly lower:
	// 2024-02-05 shares the weekday-adjacent profile but carries no term.
	calc := NewCalculator()
	withTerm := calc.Calculate(Factors{Date: "2024-02-04", SolarTerm: "立春", Weekday: 0, LunarDay: 25, Zodiac: "龍", Constellation: "獅子座"})
	noTerm := calc.Calculate(Factors{Date: "2024-02-04", SolarTerm: "", Weekday: 0, LunarDay: 25, Zodiac: "龍", Constellation: "獅子座"})
	if withTerm.Overall <= noTerm.Overall {
		t.Errorf("立春 overall %d not greater than termless %d", withTerm.Overall, noTerm.Overall)
	}
	if score.Overall != withTerm.Overall {
		t.Errorf("service overall %d does not match direct calculation %d", score.Overall, withTerm.Overall)
	}

	// Second identical call is a cache hit with an identical payload.
	again, err := svc.Fortune(ctx, "2024-02-04", "龍", "獅子座", FacetDaily)
	if err != nil {
		t.Fatalf("Fortune failed: %v", err)
	}
	if !bytes.Equal(raw, again) {
		t.Error("cache hit payload not identical")
	}
}

func TestFortuneConversionError(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Fortune(context.Background(), "1899-05-01", "龍", "獅子座", FacetDaily)
	if err == nil {
		t.Fatal("expected error for date before table range")
	}
	var convErr *calendar.ConversionError
	if !errors.As(err, &convErr) {
		t.Errorf("expected ConversionError, got %T: %v", err, err)
	}
}

func TestFortuneUnknownFacet(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.Fortune(context.Background(), "2024-02-04", "龍", "獅子座", Facet("wealth")); err == nil {
		t.Error("expected error for unknown facet")
	}
}
