package calendar

import (
	"time"
)

// tropicalYearMs is the mean tropical year in milliseconds, anchored at the
// 1900 epoch used by solarTermInfo.
const tropicalYearMs = 31556925974.7

// solarTermEpoch is 1900-01-06 02:05, the reference instant for solarTermInfo.
var solarTermEpoch = time.Date(1900, 1, 6, 2, 5, 0, 0, time.UTC)

// SolarTermDate pairs a solar term label with the Gregorian date it falls on.
type SolarTermDate struct {
	Name string    `json:"name"`
	Date time.Time `json:"date"`
}

// SolarTermOf returns the solar term (節氣) falling exactly on the given date,
// or false when the date is not a term boundary.
func (c *Converter) SolarTermOf(t time.Time) (string, bool) {
	year, month, day := t.Date()
	if year < minYear || year > maxYear {
		return "", false
	}

	// Term n lands in Gregorian month n/2+1; only two candidates per month.
	for _, n := range []int{2 * (int(month) - 1), 2*(int(month)-1) + 1} {
		if solarTermDay(year, n) == day {
			return solarTermNames[n], true
		}
	}
	return "", false
}

// AllSolarTerms scans every day of a year through SolarTermOf and collects the
// term boundaries in calendar order. O(366) single-day lookups; callers are
// expected to cache the result.
func (c *Converter) AllSolarTerms(year int) ([]SolarTermDate, error) {
	if year < minYear || year > maxYear {
		return nil, &ConversionError{
			Date:   time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC),
			Reason: "year outside solar term table range",
		}
	}

	terms := make([]SolarTermDate, 0, 24)
	day := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	for day.Year() == year {
		if name, ok := c.SolarTermOf(day); ok {
			terms = append(terms, SolarTermDate{Name: name, Date: day})
		}
		day = day.AddDate(0, 0, 1)
	}
	return terms, nil
}

// solarTermDay returns the day-of-month on which term n (0-23) falls in the
// given year.
func solarTermDay(year, n int) int {
	ms := tropicalYearMs*float64(year-minYear) + float64(solarTermInfo[n])*60000
	return solarTermEpoch.Add(time.Duration(ms) * time.Millisecond).Day()
}
