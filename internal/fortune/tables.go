package fortune

// Effect tables. Unknown labels resolve to 0 everywhere: invalid categorical
// input degrades to neutral instead of erroring.

// solarTermEffects maps the 24 節氣 to their base-score bonus.
var solarTermEffects = map[string]int{
	"立春": 10,
	"雨水": 5,
	"驚蟄": 8,
	"春分": 9,
	"清明": 7,
	"穀雨": 6,
	"立夏": 8,
	"小滿": 5,
	"芒種": 7,
	"夏至": 9,
	"小暑": 6,
	"大暑": 8,
	"立秋": 9,
	"處暑": 6,
	"白露": 7,
	"秋分": 8,
	"寒露": 5,
	"霜降": 6,
	"立冬": 7,
	"小雪": 5,
	"大雪": 6,
	"冬至": 8,
	"小寒": 5,
	"大寒": 7,
}

// weekdayEffects is indexed Sunday through Saturday.
var weekdayEffects = [7]int{5, 8, 10, 8, 10, 8, 5}

var zodiacEffects = map[string]int{
	"鼠": 8,
	"牛": 7,
	"虎": 9,
	"兔": 6,
	"龍": 10,
	"蛇": 7,
	"馬": 8,
	"羊": 6,
	"猴": 9,
	"雞": 7,
	"狗": 8,
	"豬": 6,
}

var constellationEffects = map[string]int{
	"白羊座": 8,
	"金牛座": 7,
	"雙子座": 9,
	"巨蟹座": 6,
	"獅子座": 10,
	"處女座": 7,
	"天秤座": 8,
	"天蠍座": 9,
	"射手座": 8,
	"摩羯座": 7,
	"水瓶座": 9,
	"雙魚座": 6,
}

// Per-facet solar term bonuses, disjoint from the base table.

var studySolarTermEffects = map[string]int{
	"立春": 8,
	"春分": 5,
	"立秋": 10,
	"秋分": 8,
}

var careerSolarTermEffects = map[string]int{
	"立春": 10,
	"立夏": 8,
	"立秋": 5,
	"立冬": 8,
}

var loveSolarTermEffects = map[string]int{
	"春分": 10,
	"夏至": 8,
	"秋分": 5,
	"冬至": 8,
}

// Pairwise affinity between 生肖 and 星座, ±1 or ±2 per entry, sparse.
// zodiacAffinity feeds the career score (x2), constellationAffinity the love
// score (x3). Pairs absent from a table contribute 0.

var zodiacAffinity = map[string]map[string]int{
	"鼠": {"水瓶座": 2, "雙子座": 1, "獅子座": -1},
	"牛": {"金牛座": 2, "摩羯座": 1, "射手座": -1},
	"虎": {"射手座": 2, "白羊座": 1, "摩羯座": -2},
	"兔": {"巨蟹座": 1, "雙魚座": 1, "天蠍座": -1},
	"龍": {"獅子座": 2, "白羊座": 1, "處女座": -1, "雙魚座": -2},
	"蛇": {"天蠍座": 2, "處女座": 1, "雙子座": -1},
	"馬": {"獅子座": 1, "天秤座": 1, "金牛座": -1},
	"羊": {"雙魚座": 1, "巨蟹座": 1, "處女座": -1},
	"猴": {"雙子座": 2, "水瓶座": 1, "天蠍座": -1},
	"雞": {"處女座": 2, "金牛座": 1, "雙魚座": -1},
	"狗": {"天秤座": 1, "白羊座": -1},
	"豬": {"巨蟹座": 2, "摩羯座": -1},
}

var constellationAffinity = map[string]map[string]int{
	"鼠": {"雙子座": 2, "天秤座": 1, "巨蟹座": -1},
	"牛": {"處女座": 2, "金牛座": 1, "水瓶座": -1},
	"虎": {"白羊座": 2, "獅子座": 1, "金牛座": -1},
	"兔": {"雙魚座": 2, "巨蟹座": 1, "射手座": -1},
	"龍": {"獅子座": 2, "射手座": 1, "摩羯座": -1},
	"蛇": {"天蠍座": 1, "摩羯座": 1, "白羊座": -1},
	"馬": {"射手座": 2, "白羊座": 1, "處女座": -2},
	"羊": {"巨蟹座": 2, "雙魚座": 1, "天秤座": -1},
	"猴": {"水瓶座": 2, "雙子座": 1, "金牛座": -1},
	"雞": {"金牛座": 1, "處女座": 1, "獅子座": -1},
	"狗": {"天秤座": 2, "水瓶座": 1, "巨蟹座": -1},
	"豬": {"雙魚座": 2, "天蠍座": 1, "雙子座": -1},
}

// weekdayAdvice is indexed Sunday through Saturday.
var weekdayAdvice = [7]string{
	"週日宜休養生息，為下週蓄力",
	"週一宜訂立計劃，循序漸進",
	"週二行動力強，宜主動出擊",
	"週三宜溝通協調，化解分歧",
	"週四貴人運旺，宜洽談合作",
	"週五宜收尾總結，勿開新局",
	"週六宜放鬆心情，與親友相聚",
}
