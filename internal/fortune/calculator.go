package fortune

import (
	"fmt"
	"math"
)

const baseScore = 60.0

// Factor weights sum to 1.0.
const (
	weightSolarTerm     = 0.25
	weightWeekday       = 0.15
	weightLunarDay      = 0.20
	weightZodiac        = 0.20
	weightConstellation = 0.20
)

// Calculator turns Factors into a Score. Pure lookups and arithmetic; no
// state across calls, never fails. All table misses score 0.
type Calculator struct{}

// NewCalculator creates a new Calculator.
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Calculate scores all four facets for one set of factors.
func (c *Calculator) Calculate(f Factors) Score {
	base := c.baseScore(f)

	return Score{
		Overall: clamp(base),
		Study:   clamp(c.studyScore(base, f)),
		Career:  clamp(c.careerScore(base, f)),
		Love:    clamp(c.loveScore(base, f)),
		Details: c.explain(f),
	}
}

// baseScore is the weighted sum of the five factor effects over the baseline.
// Intermediate arithmetic stays real-valued; clamping happens last.
func (c *Calculator) baseScore(f Factors) float64 {
	score := baseScore

	if f.SolarTerm != "" {
		score += float64(solarTermEffects[f.SolarTerm]) * weightSolarTerm
	}
	score += float64(weekdayEffect(f.Weekday)) * weightWeekday
	score += lunarDayEffect(f.LunarDay) * weightLunarDay
	score += float64(zodiacEffects[f.Zodiac]) * weightZodiac
	score += float64(constellationEffects[f.Constellation]) * weightConstellation

	return score
}

// studyScore favors weekdays (週一到週五).
func (c *Calculator) studyScore(base float64, f Factors) float64 {
	score := base
	if f.SolarTerm != "" {
		score += float64(studySolarTermEffects[f.SolarTerm])
	}
	if f.Weekday >= 1 && f.Weekday <= 5 {
		score += 5
	}
	return score
}

// careerScore favors Tuesday and Thursday plus the zodiac pairing.
func (c *Calculator) careerScore(base float64, f Factors) float64 {
	score := base
	if f.SolarTerm != "" {
		score += float64(careerSolarTermEffects[f.SolarTerm])
	}
	if f.Weekday == 2 || f.Weekday == 4 {
		score += 5
	}
	score += float64(zodiacAffinity[f.Zodiac][f.Constellation]) * 2
	return score
}

// loveScore favors weekends plus the constellation pairing.
func (c *Calculator) loveScore(base float64, f Factors) float64 {
	score := base
	if f.SolarTerm != "" {
		score += float64(loveSolarTermEffects[f.SolarTerm])
	}
	if f.Weekday == 0 || f.Weekday == 6 {
		score += 5
	}
	score += float64(constellationAffinity[f.Zodiac][f.Constellation]) * 3
	return score
}

// weekdayEffect tolerates out-of-range weekdays as neutral.
func weekdayEffect(weekday int) int {
	if weekday < 0 || weekday > 6 {
		return 0
	}
	return weekdayEffects[weekday]
}

// lunarDayEffect models the monthly waxing/waning cycle. Evaluated
// unconditionally: an out-of-range day yields a real, merely unvalidated
// value rather than an error.
func lunarDayEffect(lunarDay int) float64 {
	return math.Sin(float64(lunarDay)*math.Pi/15) * 10
}

// clamp rounds to the nearest integer and bounds the result to [0,100].
func clamp(score float64) int {
	rounded := int(math.Round(score))
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}

// explain derives the positive/negative/advice lists by threshold-testing
// the same tables the numeric path reads. It never changes the scores.
func (c *Calculator) explain(f Factors) Details {
	d := Details{
		Positive: []string{},
		Negative: []string{},
		Advice:   []string{},
	}

	if f.SolarTerm != "" {
		effect := solarTermEffects[f.SolarTerm]
		if effect >= 8 {
			d.Positive = append(d.Positive, fmt.Sprintf("節氣「%s」帶來旺盛氣場", f.SolarTerm))
		} else if effect <= 5 {
			d.Negative = append(d.Negative, fmt.Sprintf("節氣「%s」氣場平淡", f.SolarTerm))
			d.Advice = append(d.Advice, "宜保持平常心，避免重大決定")
		}
	}

	affinity := zodiacAffinity[f.Zodiac][f.Constellation] + constellationAffinity[f.Zodiac][f.Constellation]
	if affinity > 0 {
		d.Positive = append(d.Positive, fmt.Sprintf("%s與%s相得益彰，人緣運佳", f.Zodiac, f.Constellation))
	} else if affinity < 0 {
		d.Advice = append(d.Advice, "人際上易生摩擦，凡事以和為貴")
	}

	if f.Weekday >= 0 && f.Weekday <= 6 {
		d.Advice = append(d.Advice, weekdayAdvice[f.Weekday])
	}

	if f.LunarDay == 1 || f.LunarDay == 15 {
		d.Positive = append(d.Positive, "農曆初一十五，諸事皆宜")
	}

	if effect := zodiacEffects[f.Zodiac]; effect >= 9 {
		d.Positive = append(d.Positive, fmt.Sprintf("生肖%s今日氣勢如虹", f.Zodiac))
	}

	return d
}
