package almanac

// Activity tables for the daily almanac (黃曆). Membership is decided by
// lunar-day ranges and solar-term labels; results are deduplicated before
// they leave the service.

// suitableByLunarDay maps lunar days to 宜 activities.
var suitableByLunarDay = map[int][]string{
	1:  {"祭祀", "開市"},
	2:  {"祈福", "納財"},
	8:  {"出行"},
	15: {"祭祀", "開市", "求財"},
	16: {"祈福", "納財"},
	18: {"出行"},
	28: {"出行"},
}

// unsuitableByLunarDay maps lunar days to 忌 activities.
var unsuitableByLunarDay = map[int][]string{
	4:  {"嫁娶"},
	5:  {"動土", "安葬"},
	13: {"嫁娶"},
	14: {"動土", "安葬"},
	22: {"嫁娶"},
	23: {"動土", "安葬"},
}

// suitableBySolarTerm maps solar terms to their 宜 activities. Every term day
// additionally favors 祭祀.
var suitableBySolarTerm = map[string][]string{
	"立春": {"栽種"},
	"雨水": {"栽種"},
	"驚蟄": {"栽種"},
	"春分": {"栽種"},
	"清明": {"掃墓", "栽種"},
	"穀雨": {"栽種"},
	"冬至": {"進補"},
}

// unsuitableBySolarTerm maps solar terms to their 忌 activities.
var unsuitableBySolarTerm = map[string][]string{
	"清明": {"嫁娶"},
}
