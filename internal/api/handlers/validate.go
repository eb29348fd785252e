package handlers

import (
	"regexp"
	"time"
)

var dateFormat = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// validDate accepts YYYY-MM-DD strings naming a real calendar date.
func validDate(date string) bool {
	if !dateFormat.MatchString(date) {
		return false
	}
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

// validYearMonth bounds year to [1900,2100] and month to [1,12]. The
// calendar tables reject years they cannot cover with their own error.
func validYearMonth(year, month int) bool {
	return year >= 1900 && year <= 2100 && month >= 1 && month <= 12
}

// Query parameters use English slugs; the scoring tables use the
// traditional labels. Slugs outside these maps are rejected upstream, and
// anything that slips past scores neutral.
var zodiacLabels = map[string]string{
	"rat":     "鼠",
	"ox":      "牛",
	"tiger":   "虎",
	"rabbit":  "兔",
	"dragon":  "龍",
	"snake":   "蛇",
	"horse":   "馬",
	"goat":    "羊",
	"monkey":  "猴",
	"rooster": "雞",
	"dog":     "狗",
	"pig":     "豬",
}

var constellationLabels = map[string]string{
	"aries":       "白羊座",
	"taurus":      "金牛座",
	"gemini":      "雙子座",
	"cancer":      "巨蟹座",
	"leo":         "獅子座",
	"virgo":       "處女座",
	"libra":       "天秤座",
	"scorpio":     "天蠍座",
	"sagittarius": "射手座",
	"capricorn":   "摩羯座",
	"aquarius":    "水瓶座",
	"pisces":      "雙魚座",
}

// zodiacLabel resolves a slug. Empty input is valid and stays empty.
func zodiacLabel(slug string) (string, bool) {
	if slug == "" {
		return "", true
	}
	label, ok := zodiacLabels[slug]
	return label, ok
}

func constellationLabel(slug string) (string, bool) {
	if slug == "" {
		return "", true
	}
	label, ok := constellationLabels[slug]
	return label, ok
}
