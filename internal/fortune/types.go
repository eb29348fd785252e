package fortune

// Factors carries every signal the calculator scores for one date.
// Built once per request by the service; never mutated.
type Factors struct {
	Date          string `json:"date"`          // YYYY-MM-DD
	SolarTerm     string `json:"solarTerm"`     // 節氣, empty when the date is not a term boundary
	Weekday       int    `json:"weekday"`       // 0-6, 0 = Sunday
	LunarDay      int    `json:"lunarDay"`      // 農曆日, nominally 1-30
	Zodiac        string `json:"zodiac"`        // 生肖
	Constellation string `json:"constellation"` // 星座
}

// Details explains which factors moved a score. The lists are derived from
// the same tables as the numbers but never feed back into them.
type Details struct {
	Positive []string `json:"positive"`
	Negative []string `json:"negative"`
	Advice   []string `json:"advice"`
}

// Score is the scored result for one set of factors. Every score is clamped
// to [0,100].
type Score struct {
	Overall int     `json:"overall"` // 總運
	Study   int     `json:"study"`   // 學業運
	Career  int     `json:"career"`  // 事業運
	Love    int     `json:"love"`    // 愛情運
	Details Details `json:"details"`
}

// Facet names one scored life-domain, or "daily" for all four.
type Facet string

const (
	FacetDaily  Facet = "daily"
	FacetStudy  Facet = "study"
	FacetCareer Facet = "career"
	FacetLove   Facet = "love"
)

// Valid reports whether f is a recognized facet.
func (f Facet) Valid() bool {
	switch f {
	case FacetDaily, FacetStudy, FacetCareer, FacetLove:
		return true
	}
	return false
}

// Field returns the single score a non-daily facet projects.
func (s Score) Field(f Facet) int {
	switch f {
	case FacetStudy:
		return s.Study
	case FacetCareer:
		return s.Career
	case FacetLove:
		return s.Love
	default:
		return s.Overall
	}
}
