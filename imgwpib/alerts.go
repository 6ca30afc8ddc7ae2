package imgwpib

import (
	"slices"
	"strings"
	"time"
)

// weatherAlertRecord is one entry of the warningsmeteo feed.
type weatherAlertRecord struct {
	EventName   string      `json:"nazwa_zdarzenia"`
	Level       string      `json:"stopien"`
	Probability optionalInt `json:"prawdopodobienstwo"`
	ValidFrom   string      `json:"obowiazuje_od"`
	ValidTo     string      `json:"obowiazuje_do"`
	Teryt       []string    `json:"teryt"`
}

// hydroAlertRecord is one entry of the warningshydro feed. Older payloads
// carry the basin description and province at the top level, newer ones as a
// list of per-basin areas; both shapes appear in the wild.
type hydroAlertRecord struct {
	EventName   string           `json:"zdarzenie"`
	Level       string           `json:"stopien"`
	Probability optionalInt      `json:"prawdopodobienstwo"`
	ValidFrom   string           `json:"obowiazuje_od"`
	ValidTo     string           `json:"obowiazuje_do"`
	Province    string           `json:"wojewodztwo"`
	Description string           `json:"opis"`
	Areas       []hydroAlertArea `json:"zlewnie"`
}

type hydroAlertArea struct {
	Province    string `json:"wojewodztwo"`
	Description string `json:"opis"`
}

// weatherAlertNames maps lowercased upstream event names to stable English
// labels. Unknown names pass through lowercased so new upstream categories
// surface without a library update.
var weatherAlertNames = map[string]string{
	"burze":                            "thunderstorms",
	"burze z gradem":                   "thunderstorms_with_hail",
	"gęsta mgła":                       "dense_fog",
	"gołoledź":                         "glaze",
	"intensywne opady deszczu":         "heavy_rainfall",
	"intensywne opady śniegu":          "heavy_snowfall",
	"mgła intensywnie osadzająca szadź": "fog_depositing_rime",
	"oblodzenie":                       "ice",
	"opady marznące":                   "freezing_rain",
	"przymrozki":                       "frost",
	"roztopy":                          "thaw",
	"silny deszcz z burzami":           "heavy_rain_with_thunderstorms",
	"silny mróz":                       "severe_frost",
	"silny wiatr":                      "strong_wind",
	"upał":                             "heat",
	"zawieje/zamiecie śnieżne":         "snow_drifts",
}

var hydroAlertNames = map[string]string{
	"gwałtowne wzrosty stanów wody":                     "rapid_water_level_rise",
	"susza hydrologiczna":                               "hydrological_drought",
	"wezbranie z przekroczeniem stanów alarmowych":      "exceeding_the_alarm_level",
	"wezbranie z przekroczeniem stanów ostrzegawczych":  "exceeding_the_warning_level",
}

// alertLevels maps the upstream warning degree to a severity level.
var alertLevels = map[string]AlertLevel{
	"1": AlertLevelYellow,
	"2": AlertLevelOrange,
	"3": AlertLevelRed,
}

// matchWeatherAlert finds the most relevant active weather warning for a
// TERYT territory code. Upstream appends newer warnings at the end of the
// list, so iteration runs in reverse and the first active match wins. The
// active window is widened backward by the measurement validity period
// because warnings are sometimes published after they take effect.
func matchWeatherAlert(alerts []weatherAlertRecord, teryt string, now time.Time) Alert {
	if teryt == "" {
		return noAlert()
	}

	for i := len(alerts) - 1; i >= 0; i-- {
		a := alerts[i]
		if !slices.Contains(a.Teryt, teryt) {
			continue
		}
		from := parseTimestamp(&a.ValidFrom, dateTimeLayout)
		to := parseTimestamp(&a.ValidTo, dateTimeLayout)
		if from == nil || to == nil {
			continue
		}
		if now.Before(from.Add(-measurementValidity)) || now.After(*to) {
			continue
		}
		return newAlert(a.EventName, weatherAlertNames, a.Level, from, to, a.Probability.value)
	}

	return noAlert()
}

// matchHydrologicalAlert finds the most relevant active hydrological warning
// for a river and province. The river key must appear in a basin description
// and the province must match; with the area-list payload shape the two
// conditions may be satisfied by different areas of the same warning. Unlike
// the weather variant the active window is strict.
func matchHydrologicalAlert(alerts []hydroAlertRecord, river, province string, now time.Time) Alert {
	key := riverMatchKey(river)
	if key == "" || province == "" {
		return noAlert()
	}
	province = strings.ToLower(province)

	for i := len(alerts) - 1; i >= 0; i-- {
		a := alerts[i]
		if !matchesBasin(a, key, province) {
			continue
		}
		from := parseTimestamp(&a.ValidFrom, dateTimeLayout)
		to := parseTimestamp(&a.ValidTo, dateTimeLayout)
		if from == nil || to == nil {
			continue
		}
		if now.Before(*from) || now.After(*to) {
			continue
		}
		return newAlert(a.EventName, hydroAlertNames, a.Level, from, to, a.Probability.value)
	}

	return noAlert()
}

func matchesBasin(a hydroAlertRecord, riverKey, province string) bool {
	riverOK := strings.Contains(strings.ToLower(a.Description), riverKey)
	provinceOK := strings.EqualFold(a.Province, province)
	for _, area := range a.Areas {
		if strings.Contains(strings.ToLower(area.Description), riverKey) {
			riverOK = true
		}
		if strings.EqualFold(area.Province, province) {
			provinceOK = true
		}
	}
	return riverOK && provinceOK
}

// riverMatchKey reduces a river name to the token searched for in basin
// descriptions: drop the trailing descriptor character and keep the last
// word, lowercased. This is best-effort text matching over free-form basin
// names, not an exact join.
func riverMatchKey(river string) string {
	river = strings.ToLower(strings.TrimSpace(river))
	if river == "" {
		return ""
	}
	runes := []rune(river)
	words := strings.Fields(string(runes[:len(runes)-1]))
	if len(words) == 0 {
		return ""
	}
	return words[len(words)-1]
}

// newAlert builds an Alert from a matched record, normalizing the event name
// through the known-label table.
func newAlert(eventName string, names map[string]string, level string, from, to *time.Time, probability *int) Alert {
	category := strings.ToLower(strings.TrimSpace(eventName))
	if normalized, ok := names[category]; ok {
		category = normalized
	}
	severity, ok := alertLevels[level]
	if !ok {
		severity = AlertLevelNone
	}
	return Alert{
		Category:    category,
		Level:       severity,
		ValidFrom:   from,
		ValidTo:     to,
		Probability: probability,
	}
}
