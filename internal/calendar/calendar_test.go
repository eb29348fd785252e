package calendar

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestToLunar(t *testing.T) {
	conv := NewConverter()

	tests := []struct {
		name string
		in   time.Time
		want LunarDate
	}{
		{"epoch", date(1900, time.January, 31), LunarDate{1900, 1, 1, false}},
		{"lunar new year 2000", date(2000, time.February, 5), LunarDate{2000, 1, 1, false}},
		{"lunar new year 2024", date(2024, time.February, 10), LunarDate{2024, 1, 1, false}},
		{"lunar new year 2025", date(2025, time.January, 29), LunarDate{2025, 1, 1, false}},
		{"year boundary", date(2024, time.February, 4), LunarDate{2023, 12, 25, false}},
		{"last day of lunar year", date(2024, time.February, 9), LunarDate{2023, 12, 30, false}},
		{"mid-autumn 2024", date(2024, time.September, 17), LunarDate{2024, 8, 15, false}},
		{"leap month start", date(2023, time.March, 22), LunarDate{2023, 2, 1, true}},
		{"host month before leap", date(2023, time.February, 20), LunarDate{2023, 2, 1, false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := conv.ToLunar(tt.in)
			if err != nil {
				t.Fatalf("ToLunar(%s) failed: %v", tt.in.Format("2006-01-02"), err)
			}
			if got != tt.want {
				t.Errorf("ToLunar(%s) = %+v, want %+v", tt.in.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestToLunarOutOfRange(t *testing.T) {
	conv := NewConverter()

	for _, in := range []time.Time{date(1899, time.December, 31), date(2050, time.June, 1)} {
		_, err := conv.ToLunar(in)
		if err == nil {
			t.Fatalf("expected error for %s", in.Format("2006-01-02"))
		}
		var convErr *ConversionError
		if !errors.As(err, &convErr) {
			t.Errorf("expected ConversionError, got %T", err)
		}
	}
}

func TestToLunarIgnoresTimeOfDay(t *testing.T) {
	conv := NewConverter()

	zone := time.FixedZone("CST", 8*3600)
	late := time.Date(2024, 2, 10, 23, 59, 0, 0, zone)

	got, err := conv.ToLunar(late)
	if err != nil {
		t.Fatalf("ToLunar failed: %v", err)
	}
	if got != (LunarDate{2024, 1, 1, false}) {
		t.Errorf("ToLunar with time of day = %+v, want 2024/1/1", got)
	}
}

func TestSolarTermOf(t *testing.T) {
	conv := NewConverter()

	tests := []struct {
		in   time.Time
		want string
		ok   bool
	}{
		{date(2024, time.February, 4), "立春", true},
		{date(2024, time.December, 21), "冬至", true},
		{date(2024, time.April, 4), "清明", true},
		{date(2024, time.June, 21), "夏至", true},
		{date(2024, time.February, 5), "", false},
		{date(2024, time.August, 1), "", false},
	}

	for _, tt := range tests {
		got, ok := conv.SolarTermOf(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("SolarTermOf(%s) = (%q, %v), want (%q, %v)",
				tt.in.Format("2006-01-02"), got, ok, tt.want, tt.ok)
		}
	}
}

func TestAllSolarTerms(t *testing.T) {
	conv := NewConverter()

	terms, err := conv.AllSolarTerms(2024)
	if err != nil {
		t.Fatalf("AllSolarTerms failed: %v", err)
	}

	if len(terms) != 24 {
		t.Fatalf("expected 24 terms, got %d", len(terms))
	}
	if terms[0].Name != "小寒" {
		t.Errorf("expected first term 小寒, got %s", terms[0].Name)
	}
	if terms[23].Name != "冬至" {
		t.Errorf("expected last term 冬至, got %s", terms[23].Name)
	}
	for i := 1; i < len(terms); i++ {
		if !terms[i].Date.After(terms[i-1].Date) {
			t.Errorf("terms out of order at %d: %s !> %s", i, terms[i].Date, terms[i-1].Date)
		}
	}

	if _, err := conv.AllSolarTerms(1899); err == nil {
		t.Error("expected error for out-of-range year")
	}
}

func TestStemBranchAndZodiac(t *testing.T) {
	tests := []struct {
		year   int
		stem   string
		zodiac string
	}{
		{2024, "甲辰", "龍"},
		{2023, "癸卯", "兔"},
		{1900, "庚子", "鼠"},
		{2000, "庚辰", "龍"},
	}

	for _, tt := range tests {
		if got := StemBranch(tt.year); got != tt.stem {
			t.Errorf("StemBranch(%d) = %s, want %s", tt.year, got, tt.stem)
		}
		if got := Zodiac(tt.year); got != tt.zodiac {
			t.Errorf("Zodiac(%d) = %s, want %s", tt.year, got, tt.zodiac)
		}
	}
}

func TestLunarDateFormat(t *testing.T) {
	tests := []struct {
		in   LunarDate
		want string
	}{
		{LunarDate{2023, 3, 1, false}, "癸卯年三月初一"},
		{LunarDate{2023, 2, 1, true}, "癸卯年閏二月初一"},
		{LunarDate{2024, 1, 1, false}, "甲辰年正月初一"},
		{LunarDate{2023, 12, 30, false}, "癸卯年十二月三十"},
	}

	for _, tt := range tests {
		if got := tt.in.Format(); got != tt.want {
			t.Errorf("Format(%+v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
