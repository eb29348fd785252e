package calendar

import (
	"fmt"
	"time"
)

const (
	minYear = 1900
	maxYear = minYear + len(lunarInfo) - 1
)

// lunarEpoch is 1900-01-31, the first day of the first lunar month of 1900.
var lunarEpoch = time.Date(1900, 1, 31, 0, 0, 0, 0, time.UTC)

// LunarDate is a date in the lunisolar calendar.
type LunarDate struct {
	Year   int  `json:"year"`
	Month  int  `json:"month"`
	Day    int  `json:"day"`
	IsLeap bool `json:"isLeap"` // true when Month is the year's leap month (閏月)
}

// Converter derives lunisolar dates and solar terms from Gregorian dates.
// Pure table lookups; safe for concurrent use.
type Converter struct{}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	return &Converter{}
}

// ToLunar converts a Gregorian date to its lunisolar equivalent.
// Returns a ConversionError when the date falls outside the table range.
func (c *Converter) ToLunar(t time.Time) (LunarDate, error) {
	day := midnightUTC(t)
	offset := int(day.Sub(lunarEpoch).Hours() / 24)
	if offset < 0 {
		return LunarDate{}, &ConversionError{Date: t, Reason: "before lunar table range"}
	}

	// Walk whole lunar years.
	year := minYear
	for year <= maxYear && offset >= lunarYearDays(year) {
		offset -= lunarYearDays(year)
		year++
	}
	if year > maxYear {
		return LunarDate{}, &ConversionError{Date: t, Reason: "after lunar table range"}
	}

	// Walk months, interleaving the leap month after its host month.
	leap := leapMonth(year)
	isLeap := false
	month := 1
	var days int
	for month < 13 && offset > 0 {
		if leap > 0 && month == leap+1 && !isLeap {
			month--
			isLeap = true
			days = leapDays(year)
		} else {
			days = lunarMonthDays(year, month)
		}
		if isLeap && month == leap+1 {
			isLeap = false
		}
		offset -= days
		month++
	}
	// Landing exactly on the boundary of the leap month needs a correction:
	// offset 0 at month leap+1 is the leap month's first day.
	if offset == 0 && leap > 0 && month == leap+1 {
		if isLeap {
			isLeap = false
		} else {
			isLeap = true
			month--
		}
	}
	if offset < 0 {
		offset += days
		month--
	}

	return LunarDate{Year: year, Month: month, Day: offset + 1, IsLeap: isLeap}, nil
}

// lunarYearDays returns the total day count of a lunar year.
func lunarYearDays(year int) int {
	days := 348 // 12 months x 29 days
	for mask := 0x8000; mask > 0x8; mask >>= 1 {
		if lunarInfo[year-minYear]&mask != 0 {
			days++
		}
	}
	return days + leapDays(year)
}

// leapMonth returns which month leaps in a lunar year, 0 for none.
func leapMonth(year int) int {
	return lunarInfo[year-minYear] & 0xf
}

// leapDays returns the day count of a lunar year's leap month, 0 for none.
func leapDays(year int) int {
	if leapMonth(year) == 0 {
		return 0
	}
	if lunarInfo[year-minYear]&0x10000 != 0 {
		return 30
	}
	return 29
}

// lunarMonthDays returns the day count of a regular lunar month (1-12).
func lunarMonthDays(year, month int) int {
	if lunarInfo[year-minYear]&(0x10000>>uint(month)) != 0 {
		return 30
	}
	return 29
}

// Format renders a lunar date in the traditional style, e.g. 癸卯年三月初一.
func (d LunarDate) Format() string {
	month := lunarMonthNames[d.Month-1]
	if d.IsLeap {
		month = "閏" + month
	}
	return fmt.Sprintf("%s年%s%s", StemBranch(d.Year), month, lunarDayNames[d.Day-1])
}

// StemBranch returns the 干支 label of a lunar year, e.g. 甲辰 for 2024.
func StemBranch(lunarYear int) string {
	return heavenlyStems[(lunarYear-4)%10] + earthlyBranches[(lunarYear-4)%12]
}

// Zodiac returns the 生肖 animal of a lunar year, e.g. 龍 for 2024.
func Zodiac(lunarYear int) string {
	return zodiacAnimals[(lunarYear-4)%12]
}

// midnightUTC truncates a time to its calendar date at UTC midnight, so that
// wall-clock and zone offsets never shift the conversion by a day.
func midnightUTC(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
