package almanac

import (
	"context"
	"testing"

	"github.com/alllucky/server/internal/calendar"
	"github.com/alllucky/server/internal/storage"
	"github.com/alllucky/server/pkg/logger"
)

func newTestService() (*Service, *storage.MemoryStore) {
	store := storage.NewMemoryStore()
	svc := NewService(calendar.NewConverter(), store, storage.TTLFortune, logger.NewNop())
	return svc, store
}

func contains(items []string, want string) bool {
	for _, item := range items {
		if item == want {
			return true
		}
	}
	return false
}

func TestDailyLunarFirst(t *testing.T) {
	svc, _ := newTestService()

	// 2024-02-10 is 甲辰年正月初一.
	rec, err := svc.Daily(context.Background(), "2024-02-10")
	if err != nil {
		t.Fatalf("Daily failed: %v", err)
	}

	if rec.LunarDate != "甲辰年正月初一" {
		t.Errorf("lunar date = %s, want 甲辰年正月初一", rec.LunarDate)
	}
	if rec.Zodiac != "龍" || rec.StemBranch != "甲辰" {
		t.Errorf("zodiac/stem-branch = %s/%s, want 龍/甲辰", rec.Zodiac, rec.StemBranch)
	}
	if !contains(rec.Suitable, "祭祀") || !contains(rec.Suitable, "開市") {
		t.Errorf("lunar day 1 should favor 祭祀 and 開市, got %v", rec.Suitable)
	}
}

func TestDailySolarTermActivities(t *testing.T) {
	svc, _ := newTestService()

	// 2024-04-04 is 清明.
	rec, err := svc.Daily(context.Background(), "2024-04-04")
	if err != nil {
		t.Fatalf("Daily failed: %v", err)
	}

	if !contains(rec.Suitable, "掃墓") {
		t.Errorf("清明 should favor 掃墓, got %v", rec.Suitable)
	}
	if !contains(rec.Suitable, "祭祀") {
		t.Errorf("solar term days should favor 祭祀, got %v", rec.Suitable)
	}
	if !contains(rec.Unsuitable, "嫁娶") {
		t.Errorf("清明 should avoid 嫁娶, got %v", rec.Unsuitable)
	}
}

func TestDailyDeduplicates(t *testing.T) {
	svc, _ := newTestService()

	// 2024-02-04 is 立春; any overlap between lunar-day and term activities
	// must collapse to a single entry.
	rec, err := svc.Daily(context.Background(), "2024-02-04")
	if err != nil {
		t.Fatalf("Daily failed: %v", err)
	}

	seen := map[string]int{}
	for _, a := range rec.Suitable {
		seen[a]++
	}
	for a, n := range seen {
		if n > 1 {
			t.Errorf("activity %s appears %d times", a, n)
		}
	}
}

func TestDailyCached(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	if _, err := svc.Daily(ctx, "2024-02-10"); err != nil {
		t.Fatalf("Daily failed: %v", err)
	}
	if _, found, _ := store.Get(ctx, "almanac:daily:2024-02-10"); !found {
		t.Error("expected cache entry after Daily")
	}

	// Second call served from cache.
	again, err := svc.Daily(ctx, "2024-02-10")
	if err != nil {
		t.Fatalf("Daily failed: %v", err)
	}
	if again.LunarDate != "甲辰年正月初一" {
		t.Errorf("cached record corrupted: %+v", again)
	}
}

func TestMonthly(t *testing.T) {
	svc, _ := newTestService()

	out, err := svc.Monthly(context.Background(), 2024, 2)
	if err != nil {
		t.Fatalf("Monthly failed: %v", err)
	}

	if len(out.Days) != 29 { // 2024 is a leap year
		t.Errorf("expected 29 days, got %d", len(out.Days))
	}
	if out.Days[0].Date != "2024-02-01" {
		t.Errorf("first day = %s, want 2024-02-01", out.Days[0].Date)
	}
	if out.Days[9].LunarDate != "甲辰年正月初一" {
		t.Errorf("2024-02-10 lunar = %s, want 甲辰年正月初一", out.Days[9].LunarDate)
	}
}

func TestSolarTermsCachedListing(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	out, err := svc.SolarTerms(ctx, 2024)
	if err != nil {
		t.Fatalf("SolarTerms failed: %v", err)
	}

	if len(out.Terms) != 24 {
		t.Fatalf("expected 24 terms, got %d", len(out.Terms))
	}
	if out.Terms[2].Name != "立春" || out.Terms[2].Date != "2024-02-04" {
		t.Errorf("third term = %+v, want 立春 2024-02-04", out.Terms[2])
	}

	if _, found, _ := store.Get(ctx, "almanac:terms:2024"); !found {
		t.Error("expected cache entry for the year scan")
	}

	if _, err := svc.SolarTerms(ctx, 1899); err == nil {
		t.Error("expected error for out-of-range year")
	}
}

func TestLunarDate(t *testing.T) {
	svc, _ := newTestService()

	out, err := svc.LunarDate(context.Background(), "2024-02-04")
	if err != nil {
		t.Fatalf("LunarDate failed: %v", err)
	}

	if out.LunarDate != "癸卯年十二月廿五" {
		t.Errorf("lunar date = %s, want 癸卯年十二月廿五", out.LunarDate)
	}
	if out.Zodiac != "兔" {
		t.Errorf("zodiac = %s, want 兔 (lunar year 2023)", out.Zodiac)
	}
}
