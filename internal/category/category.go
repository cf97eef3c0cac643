// Package category holds the fixed country/region catalog and the
// classifier that maps free-text country labels onto it.
package category

import (
	"strings"

	"receptari/internal/textnorm"
)

// Other is the fallback key for anything unrecognized.
const Other = "altres"

// Keys is the fixed internal order; every list the API returns follows it.
var Keys = []string{
	"mexic", "peru", "españa", "argentina", "colombia",
	"chile", "venezuela", "ecuador", "italia", "eua", Other,
}

// DisplayNames maps each key to its human-facing name.
var DisplayNames = map[string]string{
	"mexic":     "Mèxic",
	"peru":      "Perú",
	"españa":    "Espanya",
	"argentina": "Argentina",
	"colombia":  "Colòmbia",
	"chile":     "Xile",
	"venezuela": "Veneçuela",
	"ecuador":   "Equador",
	"italia":    "Itàlia",
	"eua":       "Estats Units (EUA)",
	Other:       "Altres",
}

type keywordRule struct {
	keyword string
	key     string
}

// Ordered: first containment match wins. Substring matching (not
// word-bounded) is intentional; "superusa" classifies as eua.
var countryKeywords = []keywordRule{
	{"espana", "españa"},
	{"peru", "peru"},
	{"mexico", "mexic"},
	{"argentina", "argentina"},
	{"colombia", "colombia"},
	{"chile", "chile"},
	{"venezuela", "venezuela"},
	{"ecuador", "ecuador"},
	{"italia", "italia"},
	{"estados unidos", "eua"},
	{"usa", "eua"},
	{"eeuu", "eua"},
}

// Valid reports whether key is one of the fixed internal keys.
func Valid(key string) bool {
	_, ok := DisplayNames[key]
	return ok
}

// Classify maps a raw country label to an internal key. It is total:
// anything unrecognized (including "internacional") lands on Other.
func Classify(rawCountry string) string {
	if rawCountry == "" {
		return Other
	}

	normalized := textnorm.Normalize(rawCountry)
	for _, rule := range countryKeywords {
		if strings.Contains(normalized, rule.keyword) {
			return rule.key
		}
	}
	return Other
}
